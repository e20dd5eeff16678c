package protocol

import (
    "encoding/binary"
    "fmt"

    "taskbind/pkg/param"
)

// Fixed header layout (32 bytes). All integer fields are little-endian.
//
//  0  ..1   Magic   'T''B'
//  2        Version u8
//  3        Format  u8
//  4  ..5   Flags   u16
//  6  ..13  TableChecksum u64
//  14 ..15  ParamCount u16
//  16 ..19  PayloadLen u32
//  20 ..27  Correlation [8]byte
//  28 ..31  Reserved
const (
    headerSize = 32
    magicWord  = uint16(0x4254) // 'T''B' on the wire
)

// HeaderSize is the encoded header length.
const HeaderSize = headerSize

// Header describes an invocation frame. TableChecksum pins the
// descriptor table the sender was built against.
type Header struct {
    Version       uint8
    Format        Format
    Flags         uint16
    TableChecksum uint64
    ParamCount    uint16
    PayloadLen    uint32
    Correlation   [8]byte
}

// NewHeader returns a header for the local table revision.
func NewHeader(f Format, params int) Header {
    return Header{Version: Version, Format: f, TableChecksum: param.TableChecksum, ParamCount: uint16(params)}
}

// MarshalBinary encodes header to a 32-byte buffer.
func (h *Header) MarshalBinary() ([]byte, error) {
    buf := make([]byte, headerSize)
    binary.LittleEndian.PutUint16(buf[0:2], magicWord)
    buf[2] = h.Version
    buf[3] = byte(h.Format)
    binary.LittleEndian.PutUint16(buf[4:6], h.Flags)
    binary.LittleEndian.PutUint64(buf[6:14], h.TableChecksum)
    binary.LittleEndian.PutUint16(buf[14:16], h.ParamCount)
    binary.LittleEndian.PutUint32(buf[16:20], h.PayloadLen)
    copy(buf[20:28], h.Correlation[:])
    // 28..31 reserved stays zero
    return buf, nil
}

// UnmarshalBinary decodes header from a 32-byte buffer. A frame built
// against a different descriptor table is rejected: its ordinals cannot
// be trusted.
func (h *Header) UnmarshalBinary(buf []byte) error {
    if len(buf) < headerSize { return fmt.Errorf("%w: header needs %d bytes, got %d", ErrShortFrame, headerSize, len(buf)) }
    if binary.LittleEndian.Uint16(buf[0:2]) != magicWord { return ErrBadMagic }
    h.Version = buf[2]
    if h.Version == 0 || h.Version > Version { return fmt.Errorf("%w: %d", ErrVersion, h.Version) }
    h.Format = Format(buf[3])
    h.Flags = binary.LittleEndian.Uint16(buf[4:6])
    h.TableChecksum = binary.LittleEndian.Uint64(buf[6:14])
    if h.TableChecksum != param.TableChecksum {
        return fmt.Errorf("%w: frame %#016x, local %#016x (table %s)", ErrTableMismatch, h.TableChecksum, param.TableChecksum, param.TableVersion)
    }
    h.ParamCount = binary.LittleEndian.Uint16(buf[14:16])
    h.PayloadLen = binary.LittleEndian.Uint32(buf[16:20])
    copy(h.Correlation[:], buf[20:28])
    return nil
}
