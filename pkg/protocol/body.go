package protocol

import (
    "fmt"
    "strings"

    "taskbind/pkg/protocol/codec"
)

// Format is a compact on-wire indicator of body encoding. It is carried
// in the header and as the first byte of the body.
type Format uint8

const (
    FormatUnknown Format = iota
    FormatJSON
    FormatCBOR
    FormatProto
)

// ContentType returns the codec content type of f.
func (f Format) ContentType() string {
    switch f {
    case FormatJSON:
        return codec.ContentJSON
    case FormatCBOR:
        return codec.ContentCBOR
    case FormatProto:
        return codec.ContentProto
    default:
        return "application/octet-stream"
    }
}

func (f Format) String() string {
    switch f {
    case FormatJSON:
        return "json"
    case FormatCBOR:
        return "cbor"
    case FormatProto:
        return "proto"
    default:
        return "unknown"
    }
}

// ParseFormat accepts the short names used in configuration.
func ParseFormat(name string) (Format, error) {
    switch strings.ToLower(strings.TrimSpace(name)) {
    case "json", "":
        return FormatJSON, nil
    case "cbor":
        return FormatCBOR, nil
    case "proto", "protobuf":
        return FormatProto, nil
    }
    return FormatUnknown, fmt.Errorf("unknown format %q (want json, cbor or proto)", name)
}

// CodecFor returns a codec instance for a given format.
func CodecFor(r *codec.Registry, f Format) (codec.Codec, error) {
    switch f {
    case FormatJSON:
        if c := r.Get(codec.ContentJSON); c != nil { return c, nil }
        return codec.JSON(), nil
    case FormatCBOR:
        if c := r.Get(codec.ContentCBOR); c != nil { return c, nil }
        return codec.CBOR()
    case FormatProto:
        if c := r.Get(codec.ContentProto); c != nil { return c, nil }
        return codec.Proto(), nil
    default:
        return nil, fmt.Errorf("unknown format: %d", f)
    }
}

// EncodeBody serializes v using the codec for f and prefixes the result
// with a single format byte.
func EncodeBody(r *codec.Registry, f Format, v any) ([]byte, error) {
    c, err := CodecFor(r, f)
    if err != nil { return nil, err }
    b, err := c.Marshal(v)
    if err != nil { return nil, err }
    out := make([]byte, 1+len(b))
    out[0] = byte(f)
    copy(out[1:], b)
    return out, nil
}

// DecodeBody decodes a body produced by EncodeBody into v.
func DecodeBody(r *codec.Registry, body []byte, v any) (Format, error) {
    if len(body) == 0 { return FormatUnknown, fmt.Errorf("%w: empty body", ErrShortFrame) }
    f := Format(body[0])
    c, err := CodecFor(r, f)
    if err != nil { return f, err }
    if err := c.Unmarshal(body[1:], v); err != nil { return f, err }
    return f, nil
}
