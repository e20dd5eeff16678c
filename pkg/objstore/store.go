package objstore

import (
    "crypto/rand"
    "encoding/hex"
    "errors"
    "io"
    "sync"
    "sync/atomic"
)

// ErrFull is returned when a write would exceed Options.MaxBytes.
var ErrFull = errors.New("objstore: max bytes exceeded")

type Options struct {
    Shards   int    // shard count (default 256)
    NoCopy   bool   // store and return caller slices as-is
    MaxBytes uint64 // cap on total value bytes (0 = unlimited)
    IDPrefix string // prefix for ids generated by Put (default "obj-")
}

func (o Options) withDefaults() Options {
    if o.Shards <= 0 { o.Shards = 256 }
    if o.IDPrefix == "" { o.IDPrefix = "obj-" }
    return o
}

type Store struct {
    opts   Options
    shards []shard

    mKeys    atomic.Uint64
    mBytes   atomic.Uint64
    mSets    atomic.Uint64
    mGets    atomic.Uint64
    mHits    atomic.Uint64
    mMisses  atomic.Uint64
    mDels    atomic.Uint64
    mUpdates atomic.Uint64
}

type shard struct {
    mu sync.RWMutex
    m  map[string][]byte
}

func New(opts Options) *Store {
    opts = opts.withDefaults()
    s := &Store{opts: opts, shards: make([]shard, opts.Shards)}
    for i := range s.shards { s.shards[i].m = make(map[string][]byte) }
    return s
}

func (s *Store) shardFor(key string) *shard {
    // FNV-1a 64
    var h uint64 = 1469598103934665603
    for i := 0; i < len(key); i++ {
        h ^= uint64(key[i])
        h *= 1099511628211
    }
    return &s.shards[int(h%uint64(len(s.shards)))]
}

func (s *Store) copyIfNeeded(b []byte) []byte {
    if s.opts.NoCopy || b == nil { return b }
    out := make([]byte, len(b))
    copy(out, b)
    return out
}

// reserve accounts for a size change, failing when MaxBytes would be exceeded.
func (s *Store) reserve(oldLen, newLen int) error {
    if newLen <= oldLen {
        if d := oldLen - newLen; d > 0 { s.mBytes.Add(^uint64(d - 1)) }
        return nil
    }
    delta := uint64(newLen - oldLen)
    for {
        cur := s.mBytes.Load()
        if s.opts.MaxBytes > 0 && cur+delta > s.opts.MaxBytes { return ErrFull }
        if s.mBytes.CompareAndSwap(cur, cur+delta) { return nil }
    }
}

// Set stores val under key. It reports whether the key was created.
func (s *Store) Set(key string, val []byte) (bool, error) {
    sh := s.shardFor(key)
    sh.mu.Lock()
    defer sh.mu.Unlock()
    old, exists := sh.m[key]
    if err := s.reserve(len(old), len(val)); err != nil { return false, err }
    sh.m[key] = s.copyIfNeeded(val)
    s.mSets.Add(1)
    if exists {
        s.mUpdates.Add(1)
        return false, nil
    }
    s.mKeys.Add(1)
    return true, nil
}

// Put stores val under a freshly generated id and returns it.
func (s *Store) Put(val []byte) (string, error) {
    var raw [12]byte
    if _, err := io.ReadFull(rand.Reader, raw[:]); err != nil { return "", err }
    id := s.opts.IDPrefix + hex.EncodeToString(raw[:])
    if _, err := s.Set(id, val); err != nil { return "", err }
    return id, nil
}

func (s *Store) get(key string, doCopy bool) ([]byte, bool) {
    s.mGets.Add(1)
    sh := s.shardFor(key)
    sh.mu.RLock()
    v, ok := sh.m[key]
    sh.mu.RUnlock()
    if !ok {
        s.mMisses.Add(1)
        return nil, false
    }
    s.mHits.Add(1)
    if doCopy { return s.copyIfNeeded(v), true }
    return v, true
}

// Get returns a copy of the value (unless the store runs with NoCopy).
func (s *Store) Get(key string) ([]byte, bool) { return s.get(key, true) }

// GetNoCopy returns the stored slice; callers must not modify it.
func (s *Store) GetNoCopy(key string) ([]byte, bool) { return s.get(key, false) }

// GetDel atomically returns and removes the value.
func (s *Store) GetDel(key string) ([]byte, bool) {
    sh := s.shardFor(key)
    sh.mu.Lock()
    v, ok := sh.m[key]
    if ok { delete(sh.m, key) }
    sh.mu.Unlock()
    s.mGets.Add(1)
    if !ok {
        s.mMisses.Add(1)
        return nil, false
    }
    s.mHits.Add(1)
    s.dropped(len(v))
    return v, true
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(key string) bool {
    sh := s.shardFor(key)
    sh.mu.Lock()
    v, ok := sh.m[key]
    if ok { delete(sh.m, key) }
    sh.mu.Unlock()
    if ok { s.dropped(len(v)) }
    return ok
}

// Update replaces the value of an existing key with fn(old). It returns
// false when the key is missing.
func (s *Store) Update(key string, fn func(old []byte) []byte) (bool, error) {
    sh := s.shardFor(key)
    sh.mu.Lock()
    defer sh.mu.Unlock()
    old, ok := sh.m[key]
    if !ok { return false, nil }
    nv := fn(s.copyIfNeeded(old))
    if err := s.reserve(len(old), len(nv)); err != nil { return true, err }
    sh.m[key] = s.copyIfNeeded(nv)
    s.mUpdates.Add(1)
    return true, nil
}

func (s *Store) dropped(n int) {
    s.mDels.Add(1)
    s.mKeys.Add(^uint64(0))
    if n > 0 { s.mBytes.Add(^uint64(n - 1)) }
}

// Len returns the number of stored keys.
func (s *Store) Len() int { return int(s.mKeys.Load()) }

// Metrics is a point-in-time counter snapshot.
type Metrics struct {
    Keys, Bytes, Sets, Gets, Hits, Misses, Dels, Updates uint64
}

func (s *Store) Metrics() Metrics {
    return Metrics{
        Keys:    s.mKeys.Load(),
        Bytes:   s.mBytes.Load(),
        Sets:    s.mSets.Load(),
        Gets:    s.mGets.Load(),
        Hits:    s.mHits.Load(),
        Misses:  s.mMisses.Load(),
        Dels:    s.mDels.Load(),
        Updates: s.mUpdates.Load(),
    }
}
