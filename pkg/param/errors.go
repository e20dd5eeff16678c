package param

import (
    "errors"
    "fmt"
)

var (
    // ErrDescriptor is the umbrella for every descriptor failure.
    ErrDescriptor = errors.New("invalid parameter descriptor")

    ErrUnsupportedDatatype  = errors.New("unsupported datatype")
    ErrInvalidDirection     = errors.New("invalid direction")
    ErrInvalidStreamBinding = errors.New("invalid stream binding")
)

// DescriptorError carries the failure kind and what was being checked.
// errors.Is matches both the kind and ErrDescriptor.
type DescriptorError struct {
    Kind error
    Msg  string
}

func (e *DescriptorError) Error() string {
    if e == nil { return "" }
    if e.Msg == "" { return e.Kind.Error() }
    return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *DescriptorError) Unwrap() []error { return []error{e.Kind, ErrDescriptor} }

func unsupportedf(format string, args ...any) error {
    return &DescriptorError{Kind: ErrUnsupportedDatatype, Msg: fmt.Sprintf(format, args...)}
}

func invalidDirectionf(format string, args ...any) error {
    return &DescriptorError{Kind: ErrInvalidDirection, Msg: fmt.Sprintf(format, args...)}
}

func invalidStreamf(format string, args ...any) error {
    return &DescriptorError{Kind: ErrInvalidStreamBinding, Msg: fmt.Sprintf(format, args...)}
}

// InvalidStreamf builds an ErrInvalidStreamBinding failure for collaborators
// enforcing stream rules across several descriptors.
func InvalidStreamf(format string, args ...any) error { return invalidStreamf(format, args...) }

// IsUnsupported reports whether err is an ErrUnsupportedDatatype failure.
func IsUnsupported(err error) bool { return errors.Is(err, ErrUnsupportedDatatype) }

// InvalidDirectionf builds an ErrInvalidDirection failure.
func InvalidDirectionf(format string, args ...any) error { return invalidDirectionf(format, args...) }
