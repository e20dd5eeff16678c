package param

import (
    "bytes"
    "os"
    "testing"
)

// testdata/ordinals.yaml is the released table. New revisions may only
// append to it; refresh it with `taskbind snapshot write` after appending.
func TestOrdinalsAreAppendOnly(t *testing.T) {
    f, err := os.Open("testdata/ordinals.yaml")
    if err != nil { t.Fatalf("open golden: %v", err) }
    defer f.Close()
    golden, err := LoadSnapshot(f)
    if err != nil { t.Fatalf("load golden: %v", err) }
    if len(golden.Datatypes) > NumDatatypes {
        t.Fatalf("golden has %d datatypes, table has %d", len(golden.Datatypes), NumDatatypes)
    }
    for _, v := range CompareSnapshots(golden, CurrentSnapshot()) {
        t.Errorf("ordinal contract broken: %s", v)
    }
}

func TestSnapshotYAMLRoundTrip(t *testing.T) {
    var buf bytes.Buffer
    if err := WriteSnapshot(&buf, CurrentSnapshot()); err != nil { t.Fatalf("write: %v", err) }
    got, err := LoadSnapshot(&buf)
    if err != nil { t.Fatalf("load: %v", err) }
    if v := CompareSnapshots(CurrentSnapshot(), got); len(v) != 0 { t.Fatalf("violations: %v", v) }
    if got.Datatypes[len(got.Datatypes)-1].Name != "null" { t.Fatalf("sentinel lost in yaml: %+v", got.Datatypes[len(got.Datatypes)-1]) }
}

func TestCompareSnapshotsDetectsReassignment(t *testing.T) {
    old := CurrentSnapshot()
    cur := CurrentSnapshot()
    cur.Datatypes[4].Name, cur.Datatypes[5].Name = "long", "int"
    cur.Streams = cur.Streams[:3]
    v := CompareSnapshots(old, cur)
    if len(v) != 3 { t.Fatalf("violations = %v", v) }
    if v[0].Enum != "datatype" || v[0].Ordinal != 4 || v[0].Was != "int" || v[0].Now != "long" { t.Fatalf("first = %+v", v[0]) }
    if v[2].Enum != "stream" || v[2].Now != "" { t.Fatalf("removal = %+v", v[2]) }
}

func TestCompareSnapshotsAllowsAppends(t *testing.T) {
    old := CurrentSnapshot()
    cur := CurrentSnapshot()
    // a new array datatype goes before the sentinel, which moves up one
    n := len(cur.Datatypes)
    cur.Datatypes[n-1] = SnapshotEntry{Ordinal: n - 1, Name: "array-of-boolean"}
    cur.Datatypes = append(cur.Datatypes, SnapshotEntry{Ordinal: n, Name: "null"})
    cur.Directions = append(cur.Directions, SnapshotEntry{Ordinal: 4, Name: "commutative"})
    if v := CompareSnapshots(old, cur); len(v) != 0 { t.Fatalf("append flagged: %v", v) }

    // the sentinel may not be dropped or buried
    cur.Datatypes = append(cur.Datatypes, SnapshotEntry{Ordinal: n + 1, Name: "array-of-wide-char"})
    if v := CompareSnapshots(old, cur); len(v) != 1 { t.Fatalf("buried sentinel not flagged: %v", v) }
}
