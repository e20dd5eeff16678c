package param

import (
    "fmt"
    "hash/fnv"
)

// TableVersion names the revision of the enumerations below. Bump it
// together with TableChecksum when members are appended.
const TableVersion = "2.10"

// TableChecksum is FNV-1a 64 over "<enum>:<ordinal>:<name>\n" for every
// member of every enumeration, in ordinal order.
const TableChecksum uint64 = 0xda723c19e654f7ed

func init() {
    if sum := Checksum(); sum != TableChecksum {
        panic(fmt.Sprintf("param: descriptor table drifted: checksum %#016x, want %#016x (version %s)", sum, TableChecksum, TableVersion))
    }
}

// Checksum recomputes the table checksum from the compiled enumerations.
func Checksum() uint64 {
    h := fnv.New64a()
    for i, n := range datatypeNames { fmt.Fprintf(h, "datatype:%d:%s\n", i, n) }
    for i, n := range directionNames { fmt.Fprintf(h, "direction:%d:%s\n", i, n) }
    for i, n := range streamNames { fmt.Fprintf(h, "stream:%d:%s\n", i, n) }
    return h.Sum64()
}

// Scalar/array pairing is explicit; nothing here depends on the distance
// between ordinals.
var arrayElem = map[Datatype]Datatype{
    TypeArrayChar:   TypeChar,
    TypeArrayByte:   TypeByte,
    TypeArrayShort:  TypeShort,
    TypeArrayInt:    TypeInt,
    TypeArrayLong:   TypeLong,
    TypeArrayFloat:  TypeFloat,
    TypeArrayDouble: TypeDouble,
}

var elemArray = func() map[Datatype]Datatype {
    m := make(map[Datatype]Datatype, len(arrayElem))
    for a, s := range arrayElem { m[s] = a }
    return m
}()

var objectLike = map[Datatype]bool{
    TypeObject:                   true,
    TypePersistentObject:         true,
    TypeExternalPersistentObject: true,
    TypeBindingObject:            true,
}

// IsArray is true exactly for the seven array datatypes.
func IsArray(d Datatype) bool {
    _, ok := arrayElem[d]
    return ok
}

// ScalarElementType returns the scalar paired with an array datatype.
func ScalarElementType(d Datatype) (Datatype, error) {
    if s, ok := arrayElem[d]; ok { return s, nil }
    return TypeNull, unsupportedf("%s has no element type", d)
}

// ArrayOf returns the array datatype whose elements are d.
func ArrayOf(d Datatype) (Datatype, error) {
    if a, ok := elemArray[d]; ok { return a, nil }
    return TypeNull, unsupportedf("%s has no array form", d)
}

// IsObjectLike reports datatypes whose payload belongs to the serialization
// backend rather than inline scalar marshalling.
func IsObjectLike(d Datatype) bool { return objectLike[d] }

// IsControl reports void, any and the null sentinel.
func IsControl(d Datatype) bool { return d == TypeVoid || d == TypeAny || d == TypeNull }

// IsScalar reports datatypes marshalled inline as a single token.
func IsScalar(d Datatype) bool {
    return d.Valid() && !IsArray(d) && !IsObjectLike(d) && !IsControl(d) && d != TypeFile
}

// RequiresDirection is false only for the return-value placeholders void
// and null.
func RequiresDirection(d Datatype) bool { return d != TypeVoid && d != TypeNull }
