// Package protocol frames bound invocations for transfer between the
// binding layer and a worker: a fixed header, the descriptor block and a
// codec-encoded body carrying the argv tokens.
package protocol

import "errors"

// Version is the frame layout revision written by this package.
const Version uint8 = 1

// Flags bitmask (uint16)
const (
    FlagResult uint16 = 1 << 0 // frame carries task results back from a worker
)

// MaxPayload bounds the payload a reader will allocate.
const MaxPayload = 64 << 20

var (
    ErrShortFrame      = errors.New("short frame")
    ErrBadMagic        = errors.New("bad frame magic")
    ErrVersion         = errors.New("unsupported frame version")
    ErrTableMismatch   = errors.New("descriptor table checksum mismatch")
    ErrFrameMismatch   = errors.New("frame descriptors disagree with body")
    ErrPayloadTooLarge = errors.New("payload too large")
)
