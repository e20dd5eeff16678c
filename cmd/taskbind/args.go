package main

import (
    "encoding/json"
    "fmt"
    "strconv"
    "strings"
    "unicode/utf8"

    "taskbind/pkg/binding"
    "taskbind/pkg/param"
)

// parseArg splits [NAME@]TYPE:DIR[:STREAM][=VALUE] and converts VALUE to
// the Go type the datatype binds. Without a value the parameter is nil,
// which only out slots accept.
func parseArg(s string) (string, param.Descriptor, any, error) {
    lhs, raw, hasValue := strings.Cut(s, "=")
    var name string
    if i := strings.IndexByte(lhs, '@'); i >= 0 { name, lhs = lhs[:i], lhs[i+1:] }
    d, err := param.ParseDescriptor(lhs)
    if err != nil { return "", param.Descriptor{}, nil, err }
    if !hasValue { return name, d, nil, nil }
    v, err := parseValue(d.Type, raw)
    if err != nil { return "", param.Descriptor{}, nil, fmt.Errorf("%s value %q: %w", d.Type, raw, err) }
    return name, d, v, nil
}

func parseValue(t param.Datatype, raw string) (any, error) {
    if param.IsArray(t) { return parseArray(t, raw) }
    switch t {
    case param.TypeBoolean:
        return strconv.ParseBool(raw)
    case param.TypeChar:
        if len(raw) != 1 { return nil, fmt.Errorf("want a single byte") }
        return param.Char(raw[0]), nil
    case param.TypeWideChar:
        r, n := utf8.DecodeRuneInString(raw)
        if r == utf8.RuneError || n != len(raw) { return nil, fmt.Errorf("want a single character") }
        return param.WideChar(r), nil
    case param.TypeByte:
        n, err := strconv.ParseInt(raw, 10, 8)
        return int8(n), err
    case param.TypeShort:
        n, err := strconv.ParseInt(raw, 10, 16)
        return int16(n), err
    case param.TypeInt:
        n, err := strconv.ParseInt(raw, 10, 32)
        return int32(n), err
    case param.TypeLong:
        return strconv.ParseInt(raw, 10, 64)
    case param.TypeLongLong:
        n, err := strconv.ParseInt(raw, 10, 64)
        return param.LongLong(n), err
    case param.TypeFloat:
        f, err := strconv.ParseFloat(raw, 32)
        return float32(f), err
    case param.TypeDouble:
        return strconv.ParseFloat(raw, 64)
    case param.TypeString:
        return raw, nil
    case param.TypeWideString:
        return param.WideString(raw), nil
    case param.TypeFile:
        return param.FileRef(raw), nil
    case param.TypeVoid:
        return nil, nil
    case param.TypePersistentObject:
        return binding.PersistentRef(raw), nil
    case param.TypeExternalPersistentObject:
        return binding.ExternalRef(raw), nil
    case param.TypeBindingObject:
        return param.ParseBindingObject(raw)
    case param.TypeObject:
        var v any
        if err := json.Unmarshal([]byte(raw), &v); err != nil { return nil, fmt.Errorf("object values are JSON: %w", err) }
        return v, nil
    case param.TypeAny:
        return literal(raw), nil
    }
    return nil, fmt.Errorf("no literal form")
}

// literal guesses the narrowest value for an any slot.
func literal(raw string) any {
    if b, err := strconv.ParseBool(raw); err == nil { return b }
    if n, err := strconv.ParseInt(raw, 10, 64); err == nil { return n }
    if f, err := strconv.ParseFloat(raw, 64); err == nil { return f }
    return raw
}

func parseArray(t param.Datatype, raw string) (any, error) {
    switch t {
    case param.TypeArrayChar:
        out := make([]param.Char, len(raw))
        for i := 0; i < len(raw); i++ { out[i] = param.Char(raw[i]) }
        return out, nil
    case param.TypeArrayByte:
        return splitParse(raw, func(s string) (byte, error) {
            n, err := strconv.ParseInt(s, 10, 8)
            return byte(n), err
        })
    case param.TypeArrayShort:
        return splitParse(raw, func(s string) (int16, error) {
            n, err := strconv.ParseInt(s, 10, 16)
            return int16(n), err
        })
    case param.TypeArrayInt:
        return splitParse(raw, func(s string) (int32, error) {
            n, err := strconv.ParseInt(s, 10, 32)
            return int32(n), err
        })
    case param.TypeArrayLong:
        return splitParse(raw, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
    case param.TypeArrayFloat:
        return splitParse(raw, func(s string) (float32, error) {
            f, err := strconv.ParseFloat(s, 32)
            return float32(f), err
        })
    }
    return splitParse(raw, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// splitParse parses a comma separated list; an empty string is an empty array.
func splitParse[T any](raw string, parse func(string) (T, error)) ([]T, error) {
    if strings.TrimSpace(raw) == "" { return []T{}, nil }
    parts := strings.Split(raw, ",")
    out := make([]T, len(parts))
    for i, p := range parts {
        v, err := parse(strings.TrimSpace(p))
        if err != nil { return nil, fmt.Errorf("element %d: %w", i, err) }
        out[i] = v
    }
    return out, nil
}
