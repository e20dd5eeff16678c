package objstore

import (
    "errors"
    "fmt"
    "strings"
    "sync"
    "testing"
)

func TestSetGetCopies(t *testing.T) {
    s := New(Options{})
    if created, err := s.Set("k1", []byte("abc")); !created || err != nil {
        t.Fatalf("first Set: created=%v err=%v", created, err)
    }
    v, ok := s.Get("k1")
    if !ok || string(v) != "abc" { t.Fatalf("Get mismatch: ok=%v v=%q", ok, v) }
    // modifying the copy must not leak into the store
    v[0] = 'X'
    v2, _ := s.Get("k1")
    if string(v2) != "abc" { t.Fatalf("store mutated through copy: %q", v2) }
    if created, _ := s.Set("k1", []byte("abcd")); created { t.Fatalf("overwrite reported created") }
    m := s.Metrics()
    if m.Keys != 1 || m.Bytes != 4 || m.Updates != 1 { t.Fatalf("metrics = %+v", m) }
}

func TestPutGeneratesIDs(t *testing.T) {
    s := New(Options{IDPrefix: "arr-"})
    a, err := s.Put([]byte{1})
    if err != nil { t.Fatalf("put: %v", err) }
    b, _ := s.Put([]byte{2})
    if a == b || !strings.HasPrefix(a, "arr-") { t.Fatalf("ids %q %q", a, b) }
    if s.Len() != 2 { t.Fatalf("len = %d", s.Len()) }
}

func TestGetDelAndDelete(t *testing.T) {
    s := New(Options{})
    s.Set("k2", []byte("42"))
    v, ok := s.GetDel("k2")
    if !ok || string(v) != "42" { t.Fatalf("GetDel mismatch: ok=%v v=%q", ok, v) }
    if _, ok := s.Get("k2"); ok { t.Fatalf("key survived GetDel") }
    if s.Delete("k2") { t.Fatalf("Delete of missing key reported true") }
    if m := s.Metrics(); m.Keys != 0 || m.Bytes != 0 || m.Misses != 1 { t.Fatalf("metrics = %+v", m) }
}

func TestMaxBytes(t *testing.T) {
    s := New(Options{MaxBytes: 8})
    if _, err := s.Set("a", make([]byte, 6)); err != nil { t.Fatalf("set: %v", err) }
    if _, err := s.Set("b", make([]byte, 3)); !errors.Is(err, ErrFull) { t.Fatalf("err = %v, want ErrFull", err) }
    // shrinking frees room
    if _, err := s.Set("a", make([]byte, 2)); err != nil { t.Fatalf("shrink: %v", err) }
    if _, err := s.Set("b", make([]byte, 3)); err != nil { t.Fatalf("set after shrink: %v", err) }
}

func TestUpdate(t *testing.T) {
    s := New(Options{})
    if ok, _ := s.Update("missing", func(b []byte) []byte { return b }); ok { t.Fatalf("update of missing key") }
    s.Set("c", []byte("1"))
    ok, err := s.Update("c", func(b []byte) []byte { return append(b, '2') })
    if !ok || err != nil { t.Fatalf("update: %v %v", ok, err) }
    if v, _ := s.Get("c"); string(v) != "12" { t.Fatalf("value = %q", v) }
}

func TestConcurrentAccess(t *testing.T) {
    s := New(Options{Shards: 4})
    var wg sync.WaitGroup
    for g := 0; g < 8; g++ {
        wg.Add(1)
        go func(g int) {
            defer wg.Done()
            for i := 0; i < 200; i++ {
                k := fmt.Sprintf("g%d-%d", g, i)
                s.Set(k, []byte(k))
                if v, ok := s.Get(k); !ok || string(v) != k { t.Errorf("get %s = %q", k, v) }
            }
        }(g)
    }
    wg.Wait()
    if s.Len() != 1600 { t.Fatalf("len = %d", s.Len()) }
}
