package protocol

import (
    "bytes"
    "errors"
    "reflect"
    "testing"

    "taskbind/pkg/binding"
    "taskbind/pkg/objstore"
    "taskbind/pkg/param"
    "taskbind/pkg/protocol/codec"
)

func sampleInvocation(t *testing.T) binding.Invocation {
    t.Helper()
    inv, err := binding.NewBuilder("stats.scale", nil).
        Add("xs", param.InOut(param.TypeArrayDouble), []float64{1.5, 2.5}).
        Add("factor", param.In(param.TypeInt), int32(3)).
        Add("log", param.StreamFile(param.DirOut, param.StdErr), param.FileRef("err.log")).
        Returns(param.TypeBoolean).
        Build()
    if err != nil { t.Fatalf("build: %v", err) }
    return inv
}

func TestInvocationFrameRoundTrip(t *testing.T) {
    reg, err := codec.DefaultRegistry()
    if err != nil { t.Fatalf("registry: %v", err) }
    store := objstore.New(objstore.Options{Shards: 2})
    m := binding.NewMarshaller(codec.JSON(), store)
    u := binding.NewUnmarshaller(reg, store)

    for _, f := range []Format{FormatJSON, FormatCBOR, FormatProto} {
        inv := sampleInvocation(t)
        e, err := EncodeInvocation(reg, f, m, inv)
        if err != nil { t.Fatalf("%s encode: %v", f, err) }
        if e.Header.ParamCount != 4 { t.Fatalf("param count %d", e.Header.ParamCount) }

        var buf bytes.Buffer
        if _, err := e.WriteTo(&buf); err != nil { t.Fatalf("write: %v", err) }
        var got Envelope
        if _, err := got.ReadFrom(&buf); err != nil { t.Fatalf("read: %v", err) }

        back, err := DecodeInvocation(reg, u, &got)
        if err != nil { t.Fatalf("%s decode: %v", f, err) }
        if !reflect.DeepEqual(back.Descriptors(), inv.Descriptors()) { t.Fatalf("descriptors %v", back.Descriptors()) }
        if back.Params[1].Value != int32(3) || back.Params[2].Value != param.FileRef("err.log") { t.Fatalf("values %+v", back.Params) }
        xs, err := u.LoadArray(back.Params[0])
        if err != nil || !reflect.DeepEqual(xs, []float64{1.5, 2.5}) { t.Fatalf("array %v %v", xs, err) }
    }
}

func TestInvocationFrameMismatch(t *testing.T) {
    reg := codec.NewRegistry()
    store := objstore.New(objstore.Options{})
    e, err := EncodeInvocation(reg, FormatJSON, binding.NewMarshaller(nil, store), sampleInvocation(t))
    if err != nil { t.Fatalf("encode: %v", err) }

    // retag the int slot as a long in the descriptor block only
    e.Payload[1*param.DescriptorSize] = byte(param.TypeLong)
    _, err = DecodeInvocation(reg, binding.NewUnmarshaller(reg, store), &e)
    if !errors.Is(err, ErrFrameMismatch) { t.Fatalf("err = %v", err) }

    e.Header.ParamCount = 60000
    if _, _, err := DecodeArgs(reg, &e); !errors.Is(err, param.ErrDescriptor) { t.Fatalf("short block: %v", err) }
}
