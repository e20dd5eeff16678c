package codec

import "encoding/json"

type jsonCodec struct{}

// JSON returns an RFC 8259 codec.
func JSON() Codec { return jsonCodec{} }

func (jsonCodec) ContentType() string                { return ContentJSON }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
