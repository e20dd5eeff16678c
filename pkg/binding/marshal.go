package binding

import (
    "encoding/base64"
    "fmt"
    "strconv"

    "taskbind/pkg/objstore"
    "taskbind/pkg/param"
    "taskbind/pkg/protocol/codec"
)

// TokensPerParam is the number of argv tokens each parameter occupies:
// type direction stream prefix name content-type value.
const TokensPerParam = 7

const (
    // nullToken marks an empty field and the absent value of out, void and
    // return slots. File paths and object ids are sent verbatim, so one
    // spelled "null" cannot be told apart from no value in those slots and
    // is refused there.
    nullToken   = "null"
    stringGuard = "#"
)

// Marshaller encodes invocations into worker argv tokens. Arrays and plain
// objects are serialized with codec and stored by reference in store.
type Marshaller struct {
    codec codec.Codec
    store *objstore.Store
}

func NewMarshaller(c codec.Codec, store *objstore.Store) *Marshaller {
    if c == nil { c = codec.JSON() }
    return &Marshaller{codec: c, store: store}
}

// Marshal renders inv as task, count and seven tokens per parameter. It
// fails on the first parameter that cannot be encoded; payloads already
// stored for earlier parameters are released.
func (m *Marshaller) Marshal(inv Invocation) ([]string, error) {
    args := make([]string, 0, 2+TokensPerParam*len(inv.Params))
    args = append(args, inv.Task, strconv.Itoa(len(inv.Params)))
    var stored []string
    for i, p := range inv.Params {
        ct, tok, ref, err := m.value(p)
        if err != nil {
            for _, id := range stored { m.store.Delete(id) }
            return nil, fmt.Errorf("%s param %d (%s): %w", inv.Task, i, p.Name, err)
        }
        if ref { stored = append(stored, tok) }
        args = append(args,
            strconv.Itoa(int(p.Desc.Type)),
            strconv.Itoa(int(p.Desc.Direction)),
            strconv.Itoa(int(p.Desc.Stream)),
            orNull(p.Prefix), orNull(p.Name), orNull(ct), tok)
    }
    return args, nil
}

// Token encodes a single parameter value.
func (m *Marshaller) Token(p Parameter) (string, error) {
    _, tok, _, err := m.value(p)
    return tok, err
}

func orNull(s string) string {
    if s == "" { return nullToken }
    return s
}

func (m *Marshaller) value(p Parameter) (contentType, tok string, stored bool, err error) {
    d := p.Desc
    if err := d.ValidateResolved(); err != nil { return "", "", false, err }
    if p.Value == nil {
        if d.Type == param.TypeVoid || d.Direction == param.DirOut || d.Return { return p.ContentType, nullToken, false, nil }
        return "", "", false, fmt.Errorf("%w: nil %s %s value", ErrValueMismatch, d.Direction, d.Type)
    }
    if !param.Compatible(d.Type, p.Value) {
        return "", "", false, fmt.Errorf("%w: %T as %s", ErrValueMismatch, p.Value, d.Type)
    }
    v := p.Value
    switch d.Type {
    case param.TypeBoolean:
        return p.ContentType, strconv.FormatBool(v.(bool)), false, nil
    case param.TypeChar:
        return p.ContentType, strconv.FormatUint(uint64(v.(param.Char)), 10), false, nil
    case param.TypeWideChar:
        return p.ContentType, strconv.FormatInt(int64(v.(param.WideChar)), 10), false, nil
    case param.TypeByte:
        return p.ContentType, strconv.FormatInt(int64(int8(integer(v))), 10), false, nil
    case param.TypeShort, param.TypeInt, param.TypeLong, param.TypeLongLong:
        return p.ContentType, strconv.FormatInt(integer(v), 10), false, nil
    case param.TypeFloat:
        return p.ContentType, strconv.FormatFloat(float64(v.(float32)), 'g', -1, 32), false, nil
    case param.TypeDouble:
        return p.ContentType, strconv.FormatFloat(double(v), 'g', -1, 64), false, nil
    case param.TypeString, param.TypeWideString:
        return p.ContentType, encodeString(text(v)), false, nil
    case param.TypeFile:
        return verbatim(p, text(v))
    case param.TypePersistentObject:
        return verbatim(p, v.(param.Persistent).PersistentID())
    case param.TypeExternalPersistentObject:
        return verbatim(p, v.(param.ExternalPersistent).ExternalPersistentID())
    case param.TypeBindingObject:
        if b, ok := v.(*param.BindingObject); ok { return p.ContentType, b.String(), false, nil }
        return p.ContentType, v.(param.BindingObject).String(), false, nil
    }
    if param.IsArray(d.Type) { v = cloneArray(v) }
    id, err := m.put(v)
    if err != nil { return "", "", false, err }
    return m.codec.ContentType(), id, true, nil
}

func verbatim(p Parameter, tok string) (string, string, bool, error) {
    if tok == nullToken && p.Desc.Direction == param.DirOut {
        return "", "", false, fmt.Errorf("%w: %s value %q is reserved for out slots", ErrValueMismatch, p.Desc.Type, tok)
    }
    return p.ContentType, tok, false, nil
}

func (m *Marshaller) put(v any) (string, error) {
    if m.store == nil { return "", ErrNoStore }
    b, err := m.codec.Marshal(v)
    if err != nil { return "", fmt.Errorf("serialize %T: %w", v, err) }
    id, err := m.store.Put(b)
    if err != nil { return "", fmt.Errorf("store %T: %w", v, err) }
    return id, nil
}

func encodeString(s string) string {
    return base64.StdEncoding.EncodeToString([]byte(stringGuard + s))
}

// integer widens every integral value Compatible admits to int64.
func integer(v any) int64 {
    switch x := v.(type) {
    case int8:
        return int64(x)
    case uint8:
        return int64(x)
    case int16:
        return int64(x)
    case uint16:
        return int64(x)
    case int32:
        return int64(x)
    case uint32:
        return int64(x)
    case int:
        return int64(x)
    case int64:
        return x
    case param.LongLong:
        return int64(x)
    }
    return 0
}

func double(v any) float64 {
    if f, ok := v.(float32); ok { return float64(f) }
    return v.(float64)
}

func text(v any) string {
    switch x := v.(type) {
    case param.WideString:
        return string(x)
    case param.FileRef:
        return string(x)
    }
    return v.(string)
}

// cloneArray copies the payload so later writes by the caller cannot leak
// into the serialized form.
func cloneArray(v any) any {
    switch x := v.(type) {
    case []param.Char:
        return clone(x)
    case []byte:
        return clone(x)
    case []int16:
        return clone(x)
    case []int32:
        return clone(x)
    case []int64:
        return clone(x)
    case []float32:
        return clone(x)
    case []float64:
        return clone(x)
    }
    return v
}

func clone[T any](s []T) []T { return append(make([]T, 0, len(s)), s...) }
