package param

import "fmt"

// Direction identifies the data-flow intent of a parameter.
type Direction uint8

const (
    DirIn    Direction = 0 // read-only input
    DirOut   Direction = 1 // write-only output, undefined on entry
    DirInOut Direction = 2 // read-modify-write

    // DirNull marks slots without flow semantics, e.g. return values.
    DirNull Direction = 3
)

const NumDirections = int(DirNull) + 1

var directionNames = [NumDirections]string{
    DirIn:    "in",
    DirOut:   "out",
    DirInOut: "inout",
    DirNull:  "null",
}

func (d Direction) Valid() bool { return int(d) < NumDirections }

// Live reports whether d is one of in, out or inout.
func (d Direction) Live() bool { return d == DirIn || d == DirOut || d == DirInOut }

func (d Direction) String() string {
    if !d.Valid() { return fmt.Sprintf("direction(%d)", uint8(d)) }
    return directionNames[d]
}

func Directions() []Direction {
    out := make([]Direction, NumDirections)
    for i := range out { out[i] = Direction(i) }
    return out
}

func ParseDirection(name string) (Direction, error) {
    for i, n := range directionNames {
        if n == name { return Direction(i), nil }
    }
    return DirNull, invalidDirectionf("unknown direction name %q", name)
}

func DirectionFromOrdinal(o int) (Direction, error) {
    if o < 0 || o >= NumDirections {
        return DirNull, invalidDirectionf("direction ordinal %d out of range [0,%d)", o, NumDirections)
    }
    return Direction(o), nil
}
