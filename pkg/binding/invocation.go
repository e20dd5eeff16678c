package binding

import (
    "errors"
    "fmt"

    "go.uber.org/zap"

    "taskbind/pkg/param"
    "taskbind/pkg/registry"
)

// Invocation is a fully bound task call. When the task returns a value its
// slot is the last parameter.
type Invocation struct {
    Task   string
    Params []Parameter
}

// Descriptors returns the descriptor of every parameter, return slot
// included.
func (inv Invocation) Descriptors() []param.Descriptor {
    out := make([]param.Descriptor, len(inv.Params))
    for i, p := range inv.Params { out[i] = p.Desc }
    return out
}

// Args returns the parameters without the return slot.
func (inv Invocation) Args() []Parameter {
    if _, ok := inv.Return(); ok { return inv.Params[:len(inv.Params)-1] }
    return inv.Params
}

// Return returns the return slot, if any.
func (inv Invocation) Return() (Parameter, bool) {
    if n := len(inv.Params); n > 0 && inv.Params[n-1].Desc.Return { return inv.Params[n-1], true }
    return Parameter{}, false
}

// Builder assembles an invocation parameter by parameter. The first
// failure sticks: Build reports it and no partial invocation escapes.
type Builder struct {
    task   string
    reg    *registry.Store
    params []Parameter
    ret    *Parameter
    err    error
}

// NewBuilder starts an invocation of task. With a nil registry only the
// per-parameter and stream rules are enforced.
func NewBuilder(task string, reg *registry.Store) *Builder {
    return &Builder{task: task, reg: reg}
}

// Add binds value to the next parameter slot.
func (b *Builder) Add(name string, d param.Descriptor, value any) *Builder {
    if b.err != nil { return b }
    p, err := Bind(name, d, value)
    if err != nil { b.err = err; return b }
    b.params = append(b.params, p)
    return b
}

// AddParam appends an already bound parameter, setting its prefix and
// content type as given.
func (b *Builder) AddParam(p Parameter) *Builder {
    if b.err != nil { return b }
    bound, err := Bind(p.Name, p.Desc, p.Value)
    if err != nil { b.err = err; return b }
    bound.Prefix, bound.ContentType = p.Prefix, p.ContentType
    b.params = append(b.params, bound)
    return b
}

// Returns declares the datatype of the task's return value.
func (b *Builder) Returns(t param.Datatype) *Builder {
    if b.err != nil { return b }
    r, err := ReturnSlot(t)
    if err != nil { b.err = err; return b }
    b.ret = &r
    return b
}

// Build checks the parameters against the registered signature and the
// stream rules and returns the invocation.
func (b *Builder) Build() (Invocation, error) {
    inv, err := b.build()
    if err != nil {
        zap.L().Warn("invocation rejected", zap.String("task", b.task), zap.Int("params", len(b.params)), zap.Error(err))
        return Invocation{}, err
    }
    zap.L().Debug("invocation built", zap.String("task", b.task), zap.Int("params", len(inv.Params)))
    return inv, nil
}

func (b *Builder) build() (Invocation, error) {
    if b.err != nil { return Invocation{}, fmt.Errorf("%s: %w", b.task, b.err) }
    if b.task == "" { return Invocation{}, errors.New("invocation: missing task name") }

    bound := make(map[param.Stream]string)
    descs := make([]param.Descriptor, len(b.params))
    for i, p := range b.params {
        descs[i] = p.Desc
        if !p.Desc.Stream.Redirected() { continue }
        if prev, dup := bound[p.Desc.Stream]; dup {
            return Invocation{}, fmt.Errorf("%s: %w", b.task, param.InvalidStreamf("%s and %s both bound to %s", prev, p.Name, p.Desc.Stream))
        }
        bound[p.Desc.Stream] = p.Name
    }

    ret := b.ret
    if b.reg != nil {
        sig, ok := b.reg.Lookup(b.task)
        if !ok { return Invocation{}, fmt.Errorf("%w: %s", registry.ErrUnknownTask, b.task) }
        if err := sig.Match(descs); err != nil { return Invocation{}, err }
        switch {
        case sig.Return == nil && ret != nil:
            return Invocation{}, fmt.Errorf("%w: %s returns nothing, got %s return", registry.ErrSignatureMismatch, b.task, ret.Desc.Type)
        case sig.Return != nil && ret == nil:
            r, err := ReturnSlot(sig.Return.Type)
            if err != nil { return Invocation{}, fmt.Errorf("%s: %w", b.task, err) }
            ret = &r
        case sig.Return != nil && sig.Return.Type != param.TypeAny && sig.Return.Type != ret.Desc.Type:
            return Invocation{}, fmt.Errorf("%w: %s returns %s, got %s", registry.ErrSignatureMismatch, b.task, sig.Return.Type, ret.Desc.Type)
        }
    }

    params := make([]Parameter, len(b.params), len(b.params)+1)
    copy(params, b.params)
    if ret != nil { params = append(params, *ret) }
    return Invocation{Task: b.task, Params: params}, nil
}
