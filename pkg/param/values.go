package param

import (
    "fmt"
    "reflect"
    "strconv"
    "strings"
)

// Go representations for datatypes without a native twin.
type (
    Char       byte
    WideChar   rune
    WideString string
    LongLong   int64
    // FileRef is a path handed to the file collaborator.
    FileRef string
)

// BindingObject references an object owned by a binding runtime.
type BindingObject struct {
    ID       string
    Type     int
    Elements int
}

func (b BindingObject) String() string { return fmt.Sprintf("%s:%d:%d", b.ID, b.Type, b.Elements) }

// ParseBindingObject parses the id:type:elements form.
func ParseBindingObject(s string) (BindingObject, error) {
    i := strings.LastIndexByte(s, ':')
    if i < 0 { return BindingObject{}, fmt.Errorf("binding object %q: want id:type:elements", s) }
    j := strings.LastIndexByte(s[:i], ':')
    if j <= 0 { return BindingObject{}, fmt.Errorf("binding object %q: want id:type:elements", s) }
    typ, err := strconv.Atoi(s[j+1 : i])
    if err != nil { return BindingObject{}, fmt.Errorf("binding object %q type: %w", s, err) }
    n, err := strconv.Atoi(s[i+1:])
    if err != nil { return BindingObject{}, fmt.Errorf("binding object %q elements: %w", s, err) }
    return BindingObject{ID: s[:j], Type: typ, Elements: n}, nil
}

// Persistent is implemented by objects whose storage and identity are
// managed by a distributed store.
type Persistent interface{ PersistentID() string }

// ExternalPersistent is implemented by objects held by an external store.
type ExternalPersistent interface{ ExternalPersistentID() string }

// ResolveAny picks the concrete datatype for a value whose parameter was
// declared any. A nil pointer has no datatype: untyped nil is the only
// "no value".
func ResolveAny(v any) (Datatype, error) {
    if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
        return TypeNull, unsupportedf("nil %T carries no value", v)
    }
    switch x := v.(type) {
    case nil:
        return TypeVoid, nil
    case bool:
        return TypeBoolean, nil
    case Char:
        return TypeChar, nil
    case byte, int8:
        return TypeByte, nil
    case int16:
        return TypeShort, nil
    case int32, uint16:
        return TypeInt, nil
    case int, int64, uint32:
        return TypeLong, nil
    case LongLong:
        return TypeLongLong, nil
    case WideChar:
        return TypeWideChar, nil
    case float32:
        return TypeFloat, nil
    case float64:
        return TypeDouble, nil
    case string:
        return TypeString, nil
    case WideString:
        return TypeWideString, nil
    case FileRef:
        return TypeFile, nil
    case BindingObject, *BindingObject:
        return TypeBindingObject, nil
    case []Char:
        return TypeArrayChar, nil
    case []byte:
        return TypeArrayByte, nil
    case []int16:
        return TypeArrayShort, nil
    case []int32:
        return TypeArrayInt, nil
    case []int64:
        return TypeArrayLong, nil
    case []float32:
        return TypeArrayFloat, nil
    case []float64:
        return TypeArrayDouble, nil
    case ExternalPersistent:
        return TypeExternalPersistentObject, nil
    case Persistent:
        return TypePersistentObject, nil
    case uint, uint64, uintptr:
        return TypeNull, unsupportedf("%T does not fit a signed datatype", x)
    }
    switch reflect.TypeOf(v).Kind() {
    case reflect.Func, reflect.Chan, reflect.UnsafePointer:
        return TypeNull, unsupportedf("%T cannot be marshalled", v)
    }
    return TypeObject, nil
}

// Resolve replaces an any datatype with the one picked for v. Other
// descriptors are returned unchanged.
func Resolve(d Descriptor, v any) (Descriptor, error) {
    if d.Type != TypeAny { return d, nil }
    t, err := ResolveAny(v)
    if err != nil { return d, err }
    d.Type = t
    return d, nil
}

// widening lists the value datatypes a declared datatype accepts besides
// its own.
var widening = map[Datatype][]Datatype{
    TypeShort:      {TypeByte},
    TypeInt:        {TypeByte, TypeShort},
    TypeLong:       {TypeByte, TypeShort, TypeInt},
    TypeLongLong:   {TypeByte, TypeShort, TypeInt, TypeLong},
    TypeDouble:     {TypeFloat},
    TypeWideString: {TypeString},
    TypeFile:       {TypeString},
}

// Compatible reports whether v can be marshalled as datatype d.
func Compatible(d Datatype, v any) bool {
    switch d {
    case TypeAny:
        _, err := ResolveAny(v)
        return err == nil
    case TypeVoid:
        return v == nil
    case TypeObject:
        t, err := ResolveAny(v)
        return err == nil && v != nil && t != TypeFile
    }
    t, err := ResolveAny(v)
    if err != nil { return false }
    if t == d { return true }
    for _, w := range widening[d] {
        if t == w { return true }
    }
    return false
}
