package protocol

import (
    "crypto/rand"
    "fmt"
    "io"
)

// Envelope is a header + payload wrapper for a single frame.
type Envelope struct {
    Header  Header
    Payload []byte
}

// NewCorrelation generates a random 8-byte id.
func NewCorrelation() (out [8]byte, err error) {
    _, err = io.ReadFull(rand.Reader, out[:])
    return
}

// HasFlag checks whether a flag is set.
func (e *Envelope) HasFlag(flag uint16) bool { return (e.Header.Flags & flag) != 0 }

// SetFlag sets/unsets a flag.
func (e *Envelope) SetFlag(flag uint16, on bool) {
    if on {
        e.Header.Flags |= flag
    } else {
        e.Header.Flags &^= flag
    }
}

// WriteTo writes header + payload to w.
func (e *Envelope) WriteTo(w io.Writer) (int64, error) {
    e.Header.PayloadLen = uint32(len(e.Payload))
    hb, err := e.Header.MarshalBinary()
    if err != nil { return 0, err }
    n1, err := w.Write(hb)
    if err != nil { return int64(n1), err }
    n2, err := w.Write(e.Payload)
    return int64(n1 + n2), err
}

// ReadFrom reads header + payload from r.
func (e *Envelope) ReadFrom(r io.Reader) (int64, error) {
    hb := make([]byte, headerSize)
    if _, err := io.ReadFull(r, hb); err != nil { return 0, err }
    if err := e.Header.UnmarshalBinary(hb); err != nil { return int64(headerSize), err }
    if e.Header.PayloadLen > MaxPayload { return int64(headerSize), fmt.Errorf("%w: %d", ErrPayloadTooLarge, e.Header.PayloadLen) }
    if e.Header.PayloadLen > 0 {
        e.Payload = make([]byte, int(e.Header.PayloadLen))
        if _, err := io.ReadFull(r, e.Payload); err != nil { return int64(headerSize), err }
    } else {
        e.Payload = nil
    }
    return int64(headerSize + int(e.Header.PayloadLen)), nil
}

// EncodeFrame returns header+payload as a single byte slice.
func (e *Envelope) EncodeFrame() ([]byte, error) {
    e.Header.PayloadLen = uint32(len(e.Payload))
    hb, err := e.Header.MarshalBinary()
    if err != nil { return nil, err }
    out := make([]byte, headerSize+len(e.Payload))
    copy(out, hb)
    copy(out[headerSize:], e.Payload)
    return out, nil
}

// DecodeFrame parses a single frame from buf.
func (e *Envelope) DecodeFrame(buf []byte) error {
    if err := e.Header.UnmarshalBinary(buf); err != nil { return err }
    need := int(e.Header.PayloadLen)
    if headerSize+need > len(buf) { return fmt.Errorf("%w: payload needs %d bytes, got %d", ErrShortFrame, need, len(buf)-headerSize) }
    e.Payload = append(e.Payload[:0], buf[headerSize:headerSize+need]...)
    return nil
}
