package protocol

import (
    "fmt"

    "taskbind/pkg/binding"
    "taskbind/pkg/param"
    "taskbind/pkg/protocol/codec"
)

// EncodeInvocation marshals inv into argv tokens and frames them: the
// descriptor block first, then the body encoded as f.
func EncodeInvocation(reg *codec.Registry, f Format, m *binding.Marshaller, inv binding.Invocation) (Envelope, error) {
    if len(inv.Params) > 0xffff { return Envelope{}, fmt.Errorf("%s: %d parameters do not fit a frame", inv.Task, len(inv.Params)) }
    args, err := m.Marshal(inv)
    if err != nil { return Envelope{}, err }
    body, err := EncodeBody(reg, f, args)
    if err != nil { return Envelope{}, fmt.Errorf("encode body: %w", err) }

    descs := inv.Descriptors()
    payload := make([]byte, 0, len(descs)*param.DescriptorSize+len(body))
    payload = param.AppendDescriptors(payload, descs)
    payload = append(payload, body...)

    e := Envelope{Header: NewHeader(f, len(descs)), Payload: payload}
    e.Header.Correlation, err = NewCorrelation()
    if err != nil { return Envelope{}, err }
    e.Header.PayloadLen = uint32(len(payload))
    return e, nil
}

// DecodeArgs returns the descriptor block and the raw argv tokens of e.
func DecodeArgs(reg *codec.Registry, e *Envelope) ([]param.Descriptor, []string, error) {
    n := int(e.Header.ParamCount)
    descs, err := param.ReadDescriptors(e.Payload, n)
    if err != nil { return nil, nil, err }
    var args []string
    f, err := DecodeBody(reg, e.Payload[n*param.DescriptorSize:], &args)
    if err != nil { return nil, nil, fmt.Errorf("decode body: %w", err) }
    if f != e.Header.Format { return nil, nil, fmt.Errorf("%w: header format %s, body format %s", ErrFrameMismatch, e.Header.Format, f) }
    return descs, args, nil
}

// DecodeInvocation unframes e and rebuilds the invocation. The descriptors
// decoded from the argv tokens must agree with the descriptor block.
func DecodeInvocation(reg *codec.Registry, u *binding.Unmarshaller, e *Envelope) (binding.Invocation, error) {
    descs, args, err := DecodeArgs(reg, e)
    if err != nil { return binding.Invocation{}, err }
    inv, err := u.Unmarshal(args)
    if err != nil { return binding.Invocation{}, err }
    if len(inv.Params) != len(descs) {
        return binding.Invocation{}, fmt.Errorf("%w: %d descriptors, %d parameters", ErrFrameMismatch, len(descs), len(inv.Params))
    }
    for i, p := range inv.Params {
        if p.Desc != descs[i] { return binding.Invocation{}, fmt.Errorf("%w: param %d is %s in block, %s in body", ErrFrameMismatch, i, descs[i], p.Desc) }
    }
    return inv, nil
}
