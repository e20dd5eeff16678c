package codec

import (
    "reflect"

    cbor "github.com/fxamacker/cbor/v2"
)

var mapStringAny = reflect.TypeOf(map[string]any(nil))

type cborCodec struct {
    enc cbor.EncMode
    dec cbor.DecMode
}

// CBOR returns a canonical (RFC 8949 core deterministic) CBOR codec. Maps
// decode to map[string]any so payloads read back like the JSON codec's.
func CBOR() (Codec, error) {
    em, err := cbor.CanonicalEncOptions().EncMode()
    if err != nil { return nil, err }
    dm, err := cbor.DecOptions{DefaultMapType: mapStringAny}.DecMode()
    if err != nil { return nil, err }
    return cborCodec{enc: em, dec: dm}, nil
}

func (c cborCodec) ContentType() string                { return ContentCBOR }
func (c cborCodec) Marshal(v any) ([]byte, error)      { return c.enc.Marshal(v) }
func (c cborCodec) Unmarshal(data []byte, v any) error { return c.dec.Unmarshal(data, v) }
