package binding

import (
    "encoding/base64"
    "fmt"
    "strconv"
    "strings"

    "taskbind/pkg/objstore"
    "taskbind/pkg/param"
    "taskbind/pkg/protocol/codec"
    "taskbind/pkg/registry"
)

// Unmarshaller decodes worker argv back into an invocation and loads
// by-reference payloads from the object store.
type Unmarshaller struct {
    codecs *codec.Registry
    store  *objstore.Store
}

func NewUnmarshaller(codecs *codec.Registry, store *objstore.Store) *Unmarshaller {
    if codecs == nil { codecs = codec.NewRegistry() }
    return &Unmarshaller{codecs: codecs, store: store}
}

// Unmarshal validates the token count, every ordinal and every descriptor
// before rebuilding scalar values. A trailing parameter with a null
// direction is the return slot. Arrays and objects decode to a Ref; use
// LoadArray or LoadObject to fetch their content.
func (u *Unmarshaller) Unmarshal(args []string) (Invocation, error) {
    if len(args) < 2 { return Invocation{}, fmt.Errorf("%w: %w: need task and count, got %d tokens", ErrTokenCount, registry.ErrArgCount, len(args)) }
    task := args[0]
    n, err := strconv.Atoi(args[1])
    if err != nil || n < 0 { return Invocation{}, fmt.Errorf("%w: parameter count %q", ErrBadToken, args[1]) }
    if want := 2 + TokensPerParam*n; len(args) != want {
        return Invocation{}, fmt.Errorf("%w: %w: %s declares %d parameters (%d tokens), got %d tokens", ErrTokenCount, registry.ErrArgCount, task, n, want, len(args))
    }
    inv := Invocation{Task: task, Params: make([]Parameter, 0, n)}
    for i := 0; i < n; i++ {
        p, err := decodeParam(args[2+i*TokensPerParam:2+(i+1)*TokensPerParam], i == n-1)
        if err != nil { return Invocation{}, fmt.Errorf("%s param %d: %w", task, i, err) }
        inv.Params = append(inv.Params, p)
    }
    return inv, nil
}

func decodeParam(tok []string, last bool) (Parameter, error) {
    ord := func(s, what string) (int, error) {
        o, err := strconv.Atoi(s)
        if err != nil { return 0, fmt.Errorf("%w: %s ordinal %q", ErrBadToken, what, s) }
        return o, nil
    }
    to, err := ord(tok[0], "datatype")
    if err != nil { return Parameter{}, err }
    do, err := ord(tok[1], "direction")
    if err != nil { return Parameter{}, err }
    so, err := ord(tok[2], "stream")
    if err != nil { return Parameter{}, err }

    var d param.Descriptor
    if d.Type, err = param.DatatypeFromOrdinal(to); err != nil { return Parameter{}, err }
    if d.Direction, err = param.DirectionFromOrdinal(do); err != nil { return Parameter{}, err }
    if d.Stream, err = param.StreamFromOrdinal(so); err != nil { return Parameter{}, err }
    d.Return = last && d.Direction == param.DirNull
    if err := d.ValidateResolved(); err != nil { return Parameter{}, err }

    p := Parameter{Desc: d, Prefix: fromNull(tok[3]), Name: fromNull(tok[4]), ContentType: fromNull(tok[5])}
    p.Value, err = decodeValue(d, tok[6])
    if err != nil { return Parameter{}, err }
    return p, nil
}

func fromNull(s string) string {
    if s == nullToken { return "" }
    return s
}

func decodeValue(d param.Descriptor, tok string) (any, error) {
    if tok == nullToken && (d.Type == param.TypeVoid || d.Direction == param.DirOut || d.Return) { return nil, nil }
    bad := func(err error) error { return fmt.Errorf("%w: %s value %q: %v", ErrBadToken, d.Type, tok, err) }
    switch d.Type {
    case param.TypeVoid:
        return nil, bad(fmt.Errorf("void carries no value"))
    case param.TypeBoolean:
        b, err := strconv.ParseBool(tok)
        if err != nil { return nil, bad(err) }
        return b, nil
    case param.TypeChar:
        n, err := strconv.ParseUint(tok, 10, 8)
        if err != nil { return nil, bad(err) }
        return param.Char(n), nil
    case param.TypeWideChar:
        n, err := strconv.ParseInt(tok, 10, 32)
        if err != nil { return nil, bad(err) }
        return param.WideChar(n), nil
    case param.TypeByte:
        n, err := strconv.ParseInt(tok, 10, 8)
        if err != nil { return nil, bad(err) }
        return int8(n), nil
    case param.TypeShort:
        n, err := strconv.ParseInt(tok, 10, 16)
        if err != nil { return nil, bad(err) }
        return int16(n), nil
    case param.TypeInt:
        n, err := strconv.ParseInt(tok, 10, 32)
        if err != nil { return nil, bad(err) }
        return int32(n), nil
    case param.TypeLong:
        n, err := strconv.ParseInt(tok, 10, 64)
        if err != nil { return nil, bad(err) }
        return n, nil
    case param.TypeLongLong:
        n, err := strconv.ParseInt(tok, 10, 64)
        if err != nil { return nil, bad(err) }
        return param.LongLong(n), nil
    case param.TypeFloat:
        f, err := strconv.ParseFloat(tok, 32)
        if err != nil { return nil, bad(err) }
        return float32(f), nil
    case param.TypeDouble:
        f, err := strconv.ParseFloat(tok, 64)
        if err != nil { return nil, bad(err) }
        return f, nil
    case param.TypeString, param.TypeWideString:
        s, err := decodeString(tok)
        if err != nil { return nil, bad(err) }
        if d.Type == param.TypeWideString { return param.WideString(s), nil }
        return s, nil
    case param.TypeFile:
        return param.FileRef(tok), nil
    case param.TypePersistentObject:
        return PersistentRef(tok), nil
    case param.TypeExternalPersistentObject:
        return ExternalRef(tok), nil
    case param.TypeBindingObject:
        b, err := param.ParseBindingObject(tok)
        if err != nil { return nil, bad(err) }
        return b, nil
    }
    return Ref(tok), nil
}

func decodeString(tok string) (string, error) {
    raw, err := base64.StdEncoding.DecodeString(tok)
    if err != nil { return "", err }
    s := string(raw)
    if !strings.HasPrefix(s, stringGuard) { return "", fmt.Errorf("missing %q guard", stringGuard) }
    return s[len(stringGuard):], nil
}

func (u *Unmarshaller) payload(p Parameter) (codec.Codec, []byte, error) {
    ref, ok := p.Value.(Ref)
    if !ok { return nil, nil, fmt.Errorf("%w: %s holds %T", ErrNotReference, p.Desc.Type, p.Value) }
    if u.store == nil { return nil, nil, ErrNoStore }
    c := u.codecs.Get(p.ContentType)
    if c == nil { return nil, nil, fmt.Errorf("%w: no codec for content type %q", ErrBadToken, p.ContentType) }
    b, ok := u.store.GetNoCopy(string(ref))
    if !ok { return nil, nil, fmt.Errorf("%w: object %s not found", ErrBadToken, ref) }
    return c, b, nil
}

// LoadArray fetches an array parameter's payload into a fresh slice of the
// Go type its datatype maps to.
func (u *Unmarshaller) LoadArray(p Parameter) (any, error) {
    if !param.IsArray(p.Desc.Type) { return nil, fmt.Errorf("%w: %s is not an array", ErrNotReference, p.Desc.Type) }
    c, b, err := u.payload(p)
    if err != nil { return nil, err }
    switch p.Desc.Type {
    case param.TypeArrayChar:
        return decodeSlice[param.Char](c, b)
    case param.TypeArrayByte:
        return decodeSlice[byte](c, b)
    case param.TypeArrayShort:
        return decodeSlice[int16](c, b)
    case param.TypeArrayInt:
        return decodeSlice[int32](c, b)
    case param.TypeArrayLong:
        return decodeSlice[int64](c, b)
    case param.TypeArrayFloat:
        return decodeSlice[float32](c, b)
    }
    return decodeSlice[float64](c, b)
}

func decodeSlice[T any](c codec.Codec, b []byte) (any, error) {
    var out []T
    if err := c.Unmarshal(b, &out); err != nil { return nil, fmt.Errorf("deserialize %T: %w", out, err) }
    return out, nil
}

// LoadObject fetches an object parameter's payload into v.
func (u *Unmarshaller) LoadObject(p Parameter, v any) error {
    c, b, err := u.payload(p)
    if err != nil { return err }
    if err := c.Unmarshal(b, v); err != nil { return fmt.Errorf("deserialize %T: %w", v, err) }
    return nil
}
