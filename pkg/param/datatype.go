// Package param defines the parameter descriptor protocol shared with the
// task-execution runtime: datatype, direction and stream codes, the
// predicates the binding layer marshals by, and descriptor validation.
//
// Every ordinal below is part of the wire contract. The enumerations are
// append-only: new members go at the end (new array datatypes go at the end
// of the array block, before TypeNull) and no member is ever renumbered
// or removed. The init-time checksum in table.go fails the process when the
// compiled table drifts from TableChecksum.
package param

import "fmt"

// Datatype identifies the representation of a single parameter value.
type Datatype uint8

const (
    TypeBoolean                  Datatype = 0
    TypeChar                     Datatype = 1
    TypeByte                     Datatype = 2
    TypeShort                    Datatype = 3
    TypeInt                      Datatype = 4
    TypeLong                     Datatype = 5
    TypeFloat                    Datatype = 6
    TypeDouble                   Datatype = 7
    TypeString                   Datatype = 8
    TypeFile                     Datatype = 9
    TypeObject                   Datatype = 10
    TypePersistentObject         Datatype = 11
    TypeExternalPersistentObject Datatype = 12
    TypeBindingObject            Datatype = 13
    TypeWideChar                 Datatype = 14
    TypeWideString               Datatype = 15
    TypeLongLong                 Datatype = 16
    TypeVoid                     Datatype = 17
    TypeAny                      Datatype = 18

    // array block, mirrors the scalar order
    TypeArrayChar   Datatype = 19
    TypeArrayByte   Datatype = 20
    TypeArrayShort  Datatype = 21
    TypeArrayInt    Datatype = 22
    TypeArrayLong   Datatype = 23
    TypeArrayFloat  Datatype = 24
    TypeArrayDouble Datatype = 25

    // TypeNull terminates the table: datatype not resolved / absent.
    TypeNull Datatype = 26
)

// NumDatatypes is the number of datatype members, sentinel included.
const NumDatatypes = int(TypeNull) + 1

var datatypeNames = [NumDatatypes]string{
    TypeBoolean:                  "boolean",
    TypeChar:                     "char",
    TypeByte:                     "byte",
    TypeShort:                    "short",
    TypeInt:                      "int",
    TypeLong:                     "long",
    TypeFloat:                    "float",
    TypeDouble:                   "double",
    TypeString:                   "string",
    TypeFile:                     "file",
    TypeObject:                   "object",
    TypePersistentObject:         "persistent-object",
    TypeExternalPersistentObject: "external-persistent-object",
    TypeBindingObject:            "binding-object",
    TypeWideChar:                 "wide-char",
    TypeWideString:               "wide-string",
    TypeLongLong:                 "long-long",
    TypeVoid:                     "void",
    TypeAny:                      "any",
    TypeArrayChar:                "array-of-char",
    TypeArrayByte:                "array-of-byte",
    TypeArrayShort:               "array-of-short",
    TypeArrayInt:                 "array-of-int",
    TypeArrayLong:                "array-of-long",
    TypeArrayFloat:               "array-of-float",
    TypeArrayDouble:              "array-of-double",
    TypeNull:                     "null",
}

// Valid reports whether d is a member of the table (sentinel included).
func (d Datatype) Valid() bool { return int(d) < NumDatatypes }

func (d Datatype) String() string {
    if !d.Valid() { return fmt.Sprintf("datatype(%d)", uint8(d)) }
    return datatypeNames[d]
}

// Datatypes returns every member in ordinal order.
func Datatypes() []Datatype {
    out := make([]Datatype, NumDatatypes)
    for i := range out { out[i] = Datatype(i) }
    return out
}

// ParseDatatype maps a symbolic name back to its datatype.
func ParseDatatype(name string) (Datatype, error) {
    for i, n := range datatypeNames {
        if n == name { return Datatype(i), nil }
    }
    return TypeNull, unsupportedf("unknown datatype name %q", name)
}

// DatatypeFromOrdinal converts a wire ordinal, rejecting codes this table
// does not know (typically a runtime newer than the binding).
func DatatypeFromOrdinal(o int) (Datatype, error) {
    if o < 0 || o >= NumDatatypes {
        return TypeNull, unsupportedf("datatype ordinal %d out of range [0,%d)", o, NumDatatypes)
    }
    return Datatype(o), nil
}
