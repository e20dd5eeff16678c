// Package binding is the binding layer: it turns Go values into validated
// task parameters, marshals them into the worker argument protocol and
// back, and assembles task invocations.
package binding

import (
    "fmt"

    "taskbind/pkg/param"
)

// Ref is the id of a payload kept in the object store.
type Ref string

// PersistentRef is a persistent object id decoded on the worker side.
type PersistentRef string

func (r PersistentRef) PersistentID() string { return string(r) }

// ExternalRef is an external persistent object id decoded on the worker side.
type ExternalRef string

func (r ExternalRef) ExternalPersistentID() string { return string(r) }

// Parameter is one bound task argument.
type Parameter struct {
    Desc        param.Descriptor
    Prefix      string
    Name        string
    ContentType string
    Value       any
}

// Bind resolves an any datatype against value, validates the descriptor
// and checks that value can be marshalled as its datatype. A nil value is
// accepted for out parameters, whose content is undefined on entry.
func Bind(name string, d param.Descriptor, value any) (Parameter, error) {
    rd, err := param.Resolve(d, value)
    if err != nil { return Parameter{}, fmt.Errorf("bind %s: %w", name, err) }
    if err := rd.ValidateResolved(); err != nil { return Parameter{}, fmt.Errorf("bind %s: %w", name, err) }
    if rd.Return { return Parameter{}, fmt.Errorf("bind %s: %w", name, param.InvalidDirectionf("return slots carry no value")) }
    switch {
    case value == nil && rd.Direction == param.DirOut:
    case !param.Compatible(rd.Type, value):
        return Parameter{}, fmt.Errorf("bind %s: %w: %T as %s", name, ErrValueMismatch, value, rd.Type)
    }
    return Parameter{Desc: rd, Name: name, Value: value}, nil
}

// ReturnSlot builds the parameter standing for the task's return value.
func ReturnSlot(d param.Datatype) (Parameter, error) {
    desc := param.Return(d)
    if err := desc.ValidateResolved(); err != nil { return Parameter{}, fmt.Errorf("return slot: %w", err) }
    return Parameter{Desc: desc, Name: returnName}, nil
}

const returnName = "$return"
