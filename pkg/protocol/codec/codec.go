// Package codec holds the serialization backends for frame bodies and for
// object and array payloads passed by reference.
package codec

import "sort"

const (
    ContentJSON  = "application/json"
    ContentCBOR  = "application/cbor"
    ContentProto = "application/x-protobuf"
)

// Codec marshals values. Implementations must be deterministic so that the
// same invocation always produces the same bytes.
type Codec interface {
    ContentType() string
    Marshal(v any) ([]byte, error)
    Unmarshal(data []byte, v any) error
}

// Registry maps content types to codecs.
type Registry struct{ byType map[string]Codec }

// NewRegistry returns a registry preloaded with JSON and Proto. CBOR needs
// an init step and is added with Register.
func NewRegistry() *Registry {
    r := &Registry{byType: make(map[string]Codec)}
    r.Register(JSON())
    r.Register(Proto())
    return r
}

// DefaultRegistry returns a registry with all three built-ins.
func DefaultRegistry() (*Registry, error) {
    r := NewRegistry()
    c, err := CBOR()
    if err != nil { return nil, err }
    r.Register(c)
    return r, nil
}

func (r *Registry) Register(c Codec) { r.byType[c.ContentType()] = c }

// Get returns the codec for a content type, or nil.
func (r *Registry) Get(contentType string) Codec { return r.byType[contentType] }

// ContentTypes lists registered content types, sorted.
func (r *Registry) ContentTypes() []string {
    out := make([]string, 0, len(r.byType))
    for k := range r.byType { out = append(out, k) }
    sort.Strings(out)
    return out
}
