package param

import "fmt"

// DescriptorSize is the fixed on-wire size of one descriptor:
//
//  0  Datatype  u8
//  1  Direction u8
//  2  Stream    u8
//  3  Flags     u8 (bit 0: return slot, others reserved and zero)
const DescriptorSize = 4

const flagReturn uint8 = 1 << 0

// MarshalBinary encodes the descriptor as four ordinal bytes. It does not
// validate; a round trip preserves every member of every enumeration.
func (d Descriptor) MarshalBinary() ([]byte, error) {
    return d.AppendBinary(make([]byte, 0, DescriptorSize))
}

// AppendBinary appends the encoded descriptor to b.
func (d Descriptor) AppendBinary(b []byte) ([]byte, error) {
    var flags uint8
    if d.Return { flags |= flagReturn }
    return append(b, uint8(d.Type), uint8(d.Direction), uint8(d.Stream), flags), nil
}

// UnmarshalBinary decodes four ordinal bytes, rejecting ordinals outside
// the table.
func (d *Descriptor) UnmarshalBinary(buf []byte) error {
    if len(buf) < DescriptorSize {
        return &DescriptorError{Kind: ErrDescriptor, Msg: fmt.Sprintf("short descriptor: %d bytes", len(buf))}
    }
    t, err := DatatypeFromOrdinal(int(buf[0]))
    if err != nil { return err }
    dir, err := DirectionFromOrdinal(int(buf[1]))
    if err != nil { return err }
    st, err := StreamFromOrdinal(int(buf[2]))
    if err != nil { return err }
    if buf[3]&^flagReturn != 0 {
        return &DescriptorError{Kind: ErrDescriptor, Msg: fmt.Sprintf("reserved flag bits set: %#02x", buf[3])}
    }
    *d = Descriptor{Type: t, Direction: dir, Stream: st, Return: buf[3]&flagReturn != 0}
    return nil
}

// AppendDescriptors encodes ds back to back.
func AppendDescriptors(b []byte, ds []Descriptor) []byte {
    for _, d := range ds { b, _ = d.AppendBinary(b) }
    return b
}

// ReadDescriptors decodes n descriptors from the front of buf.
func ReadDescriptors(buf []byte, n int) ([]Descriptor, error) {
    if n < 0 || len(buf) < n*DescriptorSize {
        return nil, &DescriptorError{Kind: ErrDescriptor, Msg: fmt.Sprintf("need %d descriptors, have %d bytes", n, len(buf))}
    }
    out := make([]Descriptor, n)
    for i := range out {
        if err := out[i].UnmarshalBinary(buf[i*DescriptorSize:]); err != nil {
            return nil, fmt.Errorf("descriptor %d: %w", i, err)
        }
    }
    return out, nil
}
