// Package registry keeps the signatures of the tasks the binding layer may
// invoke. The invocation builder checks every call against them.
package registry

import (
    "errors"
    "fmt"
    "sort"
    "strings"
    "sync"
    "time"

    cbor "github.com/fxamacker/cbor/v2"
    "go.uber.org/zap"

    "taskbind/pkg/objstore"
    "taskbind/pkg/param"
)

var (
    ErrUnknownTask       = errors.New("unknown task")
    ErrInvalidSignature  = errors.New("invalid task signature")
    ErrArgCount          = errors.New("argument count mismatch")
    ErrSignatureMismatch = errors.New("parameter does not match signature")
)

// Signature declares the parameter slots of a task. A declared any slot
// accepts every concrete datatype.
type Signature struct {
    Task    string             `cbor:"task"`
    Version string             `cbor:"version,omitempty"`
    Params  []param.Descriptor `cbor:"params"`
    Return  *param.Descriptor  `cbor:"return,omitempty"`
    Meta    map[string]string  `cbor:"meta,omitempty"`
}

// Validate checks every slot and the stream rule: at most one parameter
// per standard stream.
func (s Signature) Validate() error {
    if strings.TrimSpace(s.Task) == "" { return fmt.Errorf("%w: missing task name", ErrInvalidSignature) }
    bound := make(map[param.Stream]int)
    for i, d := range s.Params {
        if d.Return { return fmt.Errorf("%w: %s param %d is marked as return slot", ErrInvalidSignature, s.Task, i) }
        if err := d.Validate(); err != nil { return fmt.Errorf("%s param %d: %w", s.Task, i, err) }
        if d.Stream.Redirected() {
            if j, dup := bound[d.Stream]; dup {
                return fmt.Errorf("%s params %d and %d: %w", s.Task, j, i, param.InvalidStreamf("both bound to %s", d.Stream))
            }
            bound[d.Stream] = i
        }
    }
    if s.Return != nil {
        if !s.Return.Return { return fmt.Errorf("%w: %s return descriptor not marked as return slot", ErrInvalidSignature, s.Task) }
        if err := s.Return.Validate(); err != nil { return fmt.Errorf("%s return: %w", s.Task, err) }
    }
    return nil
}

// Match checks the descriptors of an actual call against the signature.
func (s Signature) Match(actual []param.Descriptor) error {
    if len(actual) != len(s.Params) {
        return fmt.Errorf("%w: %s takes %d parameters, got %d", ErrArgCount, s.Task, len(s.Params), len(actual))
    }
    for i, want := range s.Params {
        got := actual[i]
        if want.Type != param.TypeAny && want.Type != got.Type {
            return fmt.Errorf("%w: %s param %d is %s, got %s", ErrSignatureMismatch, s.Task, i, want.Type, got.Type)
        }
        if want.Direction != got.Direction || want.Stream != got.Stream {
            return fmt.Errorf("%w: %s param %d is %s, got %s", ErrSignatureMismatch, s.Task, i, want, got)
        }
    }
    return nil
}

// Store keeps signatures as CBOR documents in an objstore.Store.
type Store struct {
    kv    *objstore.Store
    enc   cbor.EncMode
    mu    sync.RWMutex
    tasks map[string]struct{}
}

type signatureDoc struct {
    Signature     Signature `cbor:"sig"`
    UpdatedUnixMs int64     `cbor:"updated_unix_ms"`
}

func NewStore(kv *objstore.Store) *Store {
    em, _ := cbor.CanonicalEncOptions().EncMode()
    return &Store{kv: kv, enc: em, tasks: make(map[string]struct{})}
}

func keyTask(name string) string { return "reg:task:" + name }

// Register validates sig and replaces any previous signature of the task.
func (s *Store) Register(sig Signature) error {
    sig.Task = strings.TrimSpace(sig.Task)
    if err := sig.Validate(); err != nil {
        zap.L().Warn("task signature rejected", zap.String("task", sig.Task), zap.Error(err))
        return err
    }
    b, err := s.enc.Marshal(signatureDoc{Signature: sig, UpdatedUnixMs: time.Now().UnixMilli()})
    if err != nil { return fmt.Errorf("encode signature %s: %w", sig.Task, err) }
    if _, err := s.kv.Set(keyTask(sig.Task), b); err != nil { return fmt.Errorf("store signature %s: %w", sig.Task, err) }
    s.mu.Lock(); s.tasks[sig.Task] = struct{}{}; s.mu.Unlock()
    zap.L().Info("task registered", zap.String("task", sig.Task), zap.Int("params", len(sig.Params)), zap.Bool("returns", sig.Return != nil))
    return nil
}

// Deregister removes a task and reports whether it was known.
func (s *Store) Deregister(task string) bool {
    task = strings.TrimSpace(task)
    ok := s.kv.Delete(keyTask(task))
    s.mu.Lock(); delete(s.tasks, task); s.mu.Unlock()
    if ok { zap.L().Info("task deregistered", zap.String("task", task)) }
    return ok
}

// Lookup returns the signature of task.
func (s *Store) Lookup(task string) (Signature, bool) {
    b, ok := s.kv.GetNoCopy(keyTask(strings.TrimSpace(task)))
    if !ok { return Signature{}, false }
    var doc signatureDoc
    if err := cbor.Unmarshal(b, &doc); err != nil {
        zap.L().Error("corrupt signature document", zap.String("task", task), zap.Error(err))
        return Signature{}, false
    }
    return doc.Signature, true
}

// List returns all signatures sorted by task name.
func (s *Store) List() []Signature {
    s.mu.RLock()
    names := make([]string, 0, len(s.tasks))
    for n := range s.tasks { names = append(names, n) }
    s.mu.RUnlock()
    sort.Strings(names)
    out := make([]Signature, 0, len(names))
    for _, n := range names {
        if sig, ok := s.Lookup(n); ok { out = append(out, sig) }
    }
    return out
}
