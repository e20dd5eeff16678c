package binding

import "errors"

var (
    ErrValueMismatch = errors.New("value does not match datatype")
    ErrTokenCount    = errors.New("argument token count mismatch")
    ErrBadToken      = errors.New("malformed argument token")
    ErrNoStore       = errors.New("no object store configured for by-reference payload")
    ErrNotReference  = errors.New("parameter is not a by-reference payload")
)
