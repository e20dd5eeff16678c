package codec

import (
    "bytes"
    "testing"

    "google.golang.org/protobuf/types/known/structpb"
)

func TestJSONCodec(t *testing.T) {
    c := JSON()
    in := map[string]any{"a": 1, "b": "x"}
    b, err := c.Marshal(in)
    if err != nil { t.Fatalf("marshal: %v", err) }
    var out map[string]any
    if err := c.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if out["a"].(float64) != 1 || out["b"].(string) != "x" { t.Fatalf("roundtrip mismatch: %#v", out) }
}

func TestCBORCodecIsDeterministic(t *testing.T) {
    c, err := CBOR()
    if err != nil { t.Fatalf("new cbor: %v", err) }
    a, _ := c.Marshal(map[string]any{"z": 1, "a": []int64{1, 2}})
    b, _ := c.Marshal(map[string]any{"a": []int64{1, 2}, "z": 1})
    if !bytes.Equal(a, b) { t.Fatalf("canonical encodings differ") }
    var out []float64
    raw, _ := c.Marshal([]float64{1.5, -2})
    if err := c.Unmarshal(raw, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if len(out) != 2 || out[0] != 1.5 || out[1] != -2 { t.Fatalf("roundtrip mismatch: %v", out) }
    var m any
    if err := c.Unmarshal(a, &m); err != nil { t.Fatalf("unmarshal map: %v", err) }
    if _, ok := m.(map[string]any); !ok { t.Fatalf("map decoded as %T", m) }
}

func TestProtoCodecMessage(t *testing.T) {
    c := Proto()
    s, err := structpb.NewStruct(map[string]any{"k": "v"})
    if err != nil { t.Fatalf("struct: %v", err) }
    b, err := c.Marshal(s)
    if err != nil { t.Fatalf("marshal: %v", err) }
    var out structpb.Struct
    if err := c.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if out.Fields["k"].GetStringValue() != "v" { t.Fatalf("roundtrip mismatch") }
}

func TestProtoCodecPlainValues(t *testing.T) {
    c := Proto()
    b, err := c.Marshal([]string{"4", "0", "#", "x"})
    if err != nil { t.Fatalf("marshal: %v", err) }
    var out []string
    if err := c.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if len(out) != 4 || out[2] != "#" { t.Fatalf("roundtrip mismatch: %v", out) }
}

func TestProtoCodecKeepsWideIntegers(t *testing.T) {
    c := Proto()
    b, err := c.Marshal([]int64{1<<60 + 1, -1<<53 - 1})
    if err != nil { t.Fatalf("marshal: %v", err) }
    var out []int64
    if err := c.Unmarshal(b, &out); err != nil { t.Fatalf("unmarshal: %v", err) }
    if len(out) != 2 || out[0] != 1<<60+1 || out[1] != -1<<53-1 { t.Fatalf("roundtrip mismatch: %v", out) }

    var wrong []int64
    if err := c.Unmarshal([]byte{0xff}, &wrong); err == nil { t.Fatalf("garbage accepted") }
}

func TestRegistry(t *testing.T) {
    r, err := DefaultRegistry()
    if err != nil { t.Fatalf("registry: %v", err) }
    for _, ct := range []string{ContentJSON, ContentCBOR, ContentProto} {
        if r.Get(ct) == nil { t.Fatalf("missing %s", ct) }
    }
    if got := r.ContentTypes(); len(got) != 3 || got[0] != ContentCBOR { t.Fatalf("content types = %v", got) }
    if NewRegistry().Get(ContentCBOR) != nil { t.Fatalf("NewRegistry should not preload CBOR") }
}
