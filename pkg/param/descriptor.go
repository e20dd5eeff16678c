package param

import (
    "strings"
)

// Descriptor tags one task argument slot. It lives only as long as the
// invocation it describes: built right before marshalling, validated, then
// handed across the boundary and dropped.
//
// The zero Stream is stdin (ordinal 0 on the wire), so a literal such as
// Descriptor{Type: TypeFile, Direction: DirIn} is a stdin-redirected file.
// Build descriptors with In, Out, InOut, Return or StreamFile.
type Descriptor struct {
    Type      Datatype
    Direction Direction
    Stream    Stream
    // Return marks the task's return-value slot, the only place a null
    // direction is legal.
    Return bool
}

func In(d Datatype) Descriptor    { return Descriptor{Type: d, Direction: DirIn, Stream: DefaultStream()} }
func Out(d Datatype) Descriptor   { return Descriptor{Type: d, Direction: DirOut, Stream: DefaultStream()} }
func InOut(d Datatype) Descriptor { return Descriptor{Type: d, Direction: DirInOut, Stream: DefaultStream()} }

// Return builds a return-value slot descriptor with no direction.
func Return(d Datatype) Descriptor {
    return Descriptor{Type: d, Direction: DirNull, Stream: DefaultStream(), Return: true}
}

// StreamFile builds a file descriptor bound to a standard stream.
func StreamFile(dir Direction, s Stream) Descriptor {
    return Descriptor{Type: TypeFile, Direction: dir, Stream: s}
}

// Validate checks the descriptor as a whole; it either accepts it or
// returns the first violated rule.
func (d Descriptor) Validate() error {
    if !d.Type.Valid() { return unsupportedf("datatype ordinal %d is not in the table", uint8(d.Type)) }
    if d.Type == TypeNull { return unsupportedf("null datatype is not a payload tag") }
    if !d.Direction.Valid() { return invalidDirectionf("direction ordinal %d is not in the table", uint8(d.Direction)) }
    if !d.Stream.Valid() { return invalidStreamf("stream ordinal %d is not in the table", uint8(d.Stream)) }

    if d.Stream != StreamUnspecified && d.Type != TypeFile {
        return invalidStreamf("%s bound to %s; only file parameters can be redirected", d.Type, d.Stream)
    }
    if d.Direction == DirNull && !d.Return {
        if RequiresDirection(d.Type) { return invalidDirectionf("%s parameter carries data flow but has null direction", d.Type) }
        return invalidDirectionf("%s with null direction is only legal as a return slot", d.Type)
    }
    if IsArray(d.Type) && !d.Direction.Live() {
        return invalidDirectionf("%s requires in, out or inout, got %s", d.Type, d.Direction)
    }
    return nil
}

// ValidateResolved is Validate plus the rule that any must have been
// resolved to a concrete datatype; it guards the marshalling boundary.
func (d Descriptor) ValidateResolved() error {
    if err := d.Validate(); err != nil { return err }
    if d.Type == TypeAny { return unsupportedf("any must be resolved before marshalling") }
    return nil
}

// String renders type:direction[:stream][:return].
func (d Descriptor) String() string {
    var b strings.Builder
    b.WriteString(d.Type.String())
    b.WriteByte(':')
    b.WriteString(d.Direction.String())
    if d.Stream != StreamUnspecified {
        b.WriteByte(':')
        b.WriteString(d.Stream.String())
    }
    if d.Return { b.WriteString(":return") }
    return b.String()
}

// ParseDescriptor parses the String form. The direction may be omitted for
// return slots ("void::return" or "int:null:return").
func ParseDescriptor(s string) (Descriptor, error) {
    parts := strings.Split(strings.TrimSpace(s), ":")
    d := Descriptor{Direction: DirNull, Stream: StreamUnspecified}
    t, err := ParseDatatype(parts[0])
    if err != nil { return Descriptor{}, err }
    d.Type = t
    for i, p := range parts[1:] {
        switch {
        case p == "return":
            d.Return = true
        case p == "" && i == 0:
        case i == 0:
            dir, err := ParseDirection(p)
            if err != nil { return Descriptor{}, err }
            d.Direction = dir
        default:
            st, err := ParseStream(p)
            if err != nil { return Descriptor{}, err }
            d.Stream = st
        }
    }
    return d, nil
}
