package codec

import (
    "fmt"
    "sync"

    "google.golang.org/protobuf/proto"
    "google.golang.org/protobuf/types/known/wrapperspb"
)

type protoCodec struct {
    mo proto.MarshalOptions
    uo proto.UnmarshalOptions
}

// Proto returns a deterministic Protocol Buffers codec. Values that are
// not proto messages travel as a google.protobuf.BytesValue holding their
// canonical CBOR encoding, so 64-bit integers and non-finite floats keep
// their exact value.
func Proto() Codec {
    return protoCodec{
        mo: proto.MarshalOptions{Deterministic: true},
        uo: proto.UnmarshalOptions{},
    }
}

var embedded = sync.OnceValues(CBOR)

func (p protoCodec) ContentType() string { return ContentProto }

func (p protoCodec) Marshal(v any) ([]byte, error) {
    if msg, ok := v.(proto.Message); ok { return p.mo.Marshal(msg) }
    c, err := embedded()
    if err != nil { return nil, fmt.Errorf("protobuf: %w", err) }
    raw, err := c.Marshal(v)
    if err != nil { return nil, fmt.Errorf("protobuf: %T: %w", v, err) }
    return p.mo.Marshal(wrapperspb.Bytes(raw))
}

func (p protoCodec) Unmarshal(data []byte, v any) error {
    if msg, ok := v.(proto.Message); ok { return p.uo.Unmarshal(data, msg) }
    var val wrapperspb.BytesValue
    if err := p.uo.Unmarshal(data, &val); err != nil { return err }
    c, err := embedded()
    if err != nil { return fmt.Errorf("protobuf: %w", err) }
    if err := c.Unmarshal(val.GetValue(), v); err != nil { return fmt.Errorf("protobuf: %T: %w", v, err) }
    return nil
}
