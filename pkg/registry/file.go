package registry

import (
    "fmt"
    "io"

    "gopkg.in/yaml.v3"

    "taskbind/pkg/param"
)

// signatureFile is the YAML form of a signature list:
//
//  tasks:
//    - task: stats.sum
//      params: ["array-of-double:in", "file:out:stdout"]
//      returns: double
type signatureFile struct {
    Tasks []struct {
        Task    string            `yaml:"task"`
        Version string            `yaml:"version"`
        Params  []string          `yaml:"params"`
        Returns string            `yaml:"returns"`
        Meta    map[string]string `yaml:"meta"`
    } `yaml:"tasks"`
}

// LoadSignatures parses a YAML signature list. Descriptors use the
// type:direction[:stream] form.
func LoadSignatures(r io.Reader) ([]Signature, error) {
    var f signatureFile
    if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF { return nil, fmt.Errorf("decode signatures: %w", err) }
    out := make([]Signature, 0, len(f.Tasks))
    for _, t := range f.Tasks {
        sig := Signature{Task: t.Task, Version: t.Version, Meta: t.Meta}
        for i, p := range t.Params {
            d, err := param.ParseDescriptor(p)
            if err != nil { return nil, fmt.Errorf("%s param %d: %w", t.Task, i, err) }
            sig.Params = append(sig.Params, d)
        }
        if t.Returns != "" {
            rt, err := param.ParseDatatype(t.Returns)
            if err != nil { return nil, fmt.Errorf("%s returns: %w", t.Task, err) }
            ret := param.Return(rt)
            sig.Return = &ret
        }
        out = append(out, sig)
    }
    return out, nil
}

// RegisterAll registers every signature, stopping at the first invalid one.
func (s *Store) RegisterAll(sigs []Signature) error {
    for _, sig := range sigs {
        if err := s.Register(sig); err != nil { return err }
    }
    return nil
}
