package protocol

import (
    "reflect"
    "testing"

    "google.golang.org/protobuf/types/known/structpb"

    "taskbind/pkg/protocol/codec"
)

func TestEncodeDecodeBody(t *testing.T) {
    reg, err := codec.DefaultRegistry()
    if err != nil { t.Fatalf("registry: %v", err) }
    in := []string{"sum", "1", "22", "0", "3", "null", "xs", "application/json", "obj-01"}
    for _, f := range []Format{FormatJSON, FormatCBOR, FormatProto} {
        b, err := EncodeBody(reg, f, in)
        if err != nil { t.Fatalf("%s encode: %v", f, err) }
        if b[0] != byte(f) { t.Fatalf("%s format prefix mismatch", f) }
        var out []string
        got, err := DecodeBody(reg, b, &out)
        if err != nil { t.Fatalf("%s decode: %v", f, err) }
        if got != f || !reflect.DeepEqual(out, in) { t.Fatalf("%s: got %v %q", f, got, out) }
    }
}

func TestEncodeDecodeBodyProtoMessage(t *testing.T) {
    reg := codec.NewRegistry()
    s, err := structpb.NewStruct(map[string]any{"k": "v"})
    if err != nil { t.Fatalf("struct: %v", err) }
    b, err := EncodeBody(reg, FormatProto, s)
    if err != nil { t.Fatalf("encode: %v", err) }
    var out structpb.Struct
    if _, err := DecodeBody(reg, b, &out); err != nil { t.Fatalf("decode: %v", err) }
    if out.Fields["k"].GetStringValue() != "v" { t.Fatalf("value mismatch") }
}

func TestParseFormat(t *testing.T) {
    for name, want := range map[string]Format{"json": FormatJSON, "CBOR": FormatCBOR, "protobuf": FormatProto, "": FormatJSON} {
        got, err := ParseFormat(name)
        if err != nil || got != want { t.Fatalf("%q: %v %v", name, got, err) }
    }
    if _, err := ParseFormat("xml"); err == nil { t.Fatalf("xml accepted") }
    if _, err := CodecFor(codec.NewRegistry(), FormatUnknown); err == nil { t.Fatalf("unknown format accepted") }
}
