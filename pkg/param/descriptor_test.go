package param

import (
    "errors"
    "strings"
    "testing"
)

func TestValidateScenario(t *testing.T) {
    cases := []struct {
        name string
        d    Descriptor
        want error
    }{
        {"int in", Descriptor{TypeInt, DirIn, StreamUnspecified, false}, nil},
        {"int in stdout", Descriptor{TypeInt, DirIn, StdOut, false}, ErrInvalidStreamBinding},
        {"file out stdout", Descriptor{TypeFile, DirOut, StdOut, false}, nil},
        {"array-of-double null", Descriptor{TypeArrayDouble, DirNull, StreamUnspecified, false}, ErrInvalidDirection},
    }
    for _, c := range cases {
        err := c.d.Validate()
        if c.want == nil {
            if err != nil { t.Fatalf("%s: unexpected error: %v", c.name, err) }
            continue
        }
        if !errors.Is(err, c.want) { t.Fatalf("%s: err = %v, want %v", c.name, err, c.want) }
        if !errors.Is(err, ErrDescriptor) { t.Fatalf("%s: %v does not match ErrDescriptor", c.name, err) }
    }

    s, err := ScalarElementType(TypeArrayDouble)
    if err != nil || s != TypeDouble { t.Fatalf("ScalarElementType(array-of-double) = %s, %v", s, err) }
    if !IsObjectLike(TypePersistentObject) { t.Fatalf("persistent-object should be object-like") }
    if IsObjectLike(TypeInt) { t.Fatalf("int should not be object-like") }
}

func TestValidateStreamOnlyForFiles(t *testing.T) {
    for _, d := range Datatypes() {
        for _, s := range []Stream{StdIn, StdOut, StdErr} {
            err := Descriptor{Type: d, Direction: DirIn, Stream: s}.Validate()
            if d == TypeFile {
                if err != nil { t.Fatalf("file bound to %s rejected: %v", s, err) }
                continue
            }
            if err == nil { t.Fatalf("%s bound to %s accepted", d, s) }
        }
    }
}

func TestValidateNullDirectionNeedsReturnSlot(t *testing.T) {
    for _, d := range Datatypes() {
        if d == TypeNull { continue }
        err := Descriptor{Type: d, Direction: DirNull, Stream: StreamUnspecified}.Validate()
        if !errors.Is(err, ErrInvalidDirection) { t.Fatalf("%s with null direction: err = %v", d, err) }
        err = Return(d).Validate()
        if IsArray(d) {
            if !errors.Is(err, ErrInvalidDirection) { t.Fatalf("array return slot %s: err = %v", d, err) }
            continue
        }
        if err != nil { t.Fatalf("return slot %s: %v", d, err) }
    }
}

func TestValidateRejectsNullAndForeignOrdinals(t *testing.T) {
    if err := In(TypeNull).Validate(); !errors.Is(err, ErrUnsupportedDatatype) { t.Fatalf("null datatype: %v", err) }
    if err := In(Datatype(99)).Validate(); !errors.Is(err, ErrUnsupportedDatatype) { t.Fatalf("foreign datatype: %v", err) }
    if err := (Descriptor{Type: TypeInt, Direction: Direction(9)}).Validate(); !errors.Is(err, ErrInvalidDirection) {
        t.Fatalf("foreign direction: %v", err)
    }
    if err := (Descriptor{Type: TypeFile, Direction: DirIn, Stream: Stream(9)}).Validate(); !errors.Is(err, ErrInvalidStreamBinding) {
        t.Fatalf("foreign stream: %v", err)
    }
}

func TestValidateReportsOneRuleForWholeDescriptor(t *testing.T) {
    cases := []struct {
        name string
        d    Descriptor
        want error
        not  []error
    }{
        {"array null stdout", Descriptor{TypeArrayInt, DirNull, StdOut, false}, ErrInvalidStreamBinding, []error{ErrInvalidDirection, ErrUnsupportedDatatype}},
        {"array null return", Descriptor{TypeArrayInt, DirNull, StreamUnspecified, true}, ErrInvalidDirection, []error{ErrInvalidStreamBinding, ErrUnsupportedDatatype}},
        {"foreign type null stdout", Descriptor{Datatype(99), DirNull, StdOut, false}, ErrUnsupportedDatatype, []error{ErrInvalidDirection, ErrInvalidStreamBinding}},
        {"null type foreign direction", Descriptor{TypeNull, Direction(7), Stream(7), false}, ErrUnsupportedDatatype, []error{ErrInvalidDirection, ErrInvalidStreamBinding}},
        {"int foreign direction foreign stream", Descriptor{TypeInt, Direction(7), Stream(7), false}, ErrInvalidDirection, []error{ErrInvalidStreamBinding}},
    }
    for _, c := range cases {
        before := c.d
        err := c.d.Validate()
        var de *DescriptorError
        if !errors.As(err, &de) || de.Kind != c.want { t.Fatalf("%s: err = %v, want kind %v", c.name, err, c.want) }
        for _, other := range c.not {
            if errors.Is(err, other) { t.Fatalf("%s: %v also matches %v", c.name, err, other) }
        }
        if c.d != before { t.Fatalf("%s: descriptor changed to %v", c.name, c.d) }
        if err2 := c.d.Validate(); err2 == nil || err2.Error() != err.Error() { t.Fatalf("%s: second run %v != %v", c.name, err2, err) }
    }
}

func TestNullDirectionMessages(t *testing.T) {
    err := Descriptor{TypeInt, DirNull, StreamUnspecified, false}.Validate()
    if !errors.Is(err, ErrInvalidDirection) || !strings.Contains(err.Error(), "data flow") { t.Fatalf("int: %v", err) }
    err = Descriptor{TypeVoid, DirNull, StreamUnspecified, false}.Validate()
    if !errors.Is(err, ErrInvalidDirection) || !strings.Contains(err.Error(), "only legal as a return slot") { t.Fatalf("void: %v", err) }
}

func TestValidateResolvedRejectsAny(t *testing.T) {
    if err := In(TypeAny).Validate(); err != nil { t.Fatalf("declared any: %v", err) }
    if err := In(TypeAny).ValidateResolved(); !errors.Is(err, ErrUnsupportedDatatype) { t.Fatalf("unresolved any: %v", err) }
}

func TestParseDescriptor(t *testing.T) {
    cases := map[string]Descriptor{
        "int:in":              In(TypeInt),
        "file:out:stdout":     StreamFile(DirOut, StdOut),
        "array-of-long:inout": InOut(TypeArrayLong),
        "void::return":        Return(TypeVoid),
        "double:null:return":  Return(TypeDouble),
    }
    for s, want := range cases {
        got, err := ParseDescriptor(s)
        if err != nil { t.Fatalf("ParseDescriptor(%q): %v", s, err) }
        if got != want { t.Fatalf("ParseDescriptor(%q) = %+v, want %+v", s, got, want) }
    }
    if got := StreamFile(DirOut, StdErr).String(); got != "file:out:stderr" { t.Fatalf("String = %q", got) }
    if _, err := ParseDescriptor("int:sideways"); !errors.Is(err, ErrInvalidDirection) { t.Fatalf("bad direction: %v", err) }
}
