package param

import (
    "fmt"
    "io"

    "gopkg.in/yaml.v3"
)

// SnapshotEntry is one ordinal assignment.
type SnapshotEntry struct {
    Ordinal int    `yaml:"ordinal" json:"ordinal"`
    Name    string `yaml:"name" json:"name"`
}

// Snapshot records every ordinal assignment of a table revision so later
// revisions can be diffed against it.
type Snapshot struct {
    Version    string          `yaml:"version" json:"version"`
    Checksum   string          `yaml:"checksum" json:"checksum"`
    Datatypes  []SnapshotEntry `yaml:"datatypes" json:"datatypes"`
    Directions []SnapshotEntry `yaml:"directions" json:"directions"`
    Streams    []SnapshotEntry `yaml:"streams" json:"streams"`
}

// CurrentSnapshot captures the compiled table.
func CurrentSnapshot() Snapshot {
    s := Snapshot{Version: TableVersion, Checksum: fmt.Sprintf("%#016x", TableChecksum)}
    for i, n := range datatypeNames { s.Datatypes = append(s.Datatypes, SnapshotEntry{i, n}) }
    for i, n := range directionNames { s.Directions = append(s.Directions, SnapshotEntry{i, n}) }
    for i, n := range streamNames { s.Streams = append(s.Streams, SnapshotEntry{i, n}) }
    return s
}

// LoadSnapshot reads a YAML snapshot.
func LoadSnapshot(r io.Reader) (Snapshot, error) {
    var s Snapshot
    if err := yaml.NewDecoder(r).Decode(&s); err != nil { return Snapshot{}, fmt.Errorf("decode snapshot: %w", err) }
    return s, nil
}

// WriteSnapshot writes s as YAML.
func WriteSnapshot(w io.Writer, s Snapshot) error {
    enc := yaml.NewEncoder(w)
    enc.SetIndent(2)
    if err := enc.Encode(s); err != nil { return fmt.Errorf("encode snapshot: %w", err) }
    return enc.Close()
}

// Violation is an ordinal that was reassigned or removed between revisions.
type Violation struct {
    Enum    string
    Ordinal int
    Was     string
    Now     string // empty when removed
}

func (v Violation) String() string {
    if v.Now == "" { return fmt.Sprintf("%s ordinal %d (%s) removed", v.Enum, v.Ordinal, v.Was) }
    return fmt.Sprintf("%s ordinal %d reassigned: was %q, now %q", v.Enum, v.Ordinal, v.Was, v.Now)
}

// sentinelName is the terminal datatype; appending to the array block moves
// it, so it is exempt as long as it stays last.
const sentinelName = "null"

// CompareSnapshots lists every ordinal of old that cur reassigns or drops.
// Appended members are not violations.
func CompareSnapshots(old, cur Snapshot) []Violation {
    var out []Violation
    out = append(out, compareEntries("datatype", old.Datatypes, cur.Datatypes, true)...)
    out = append(out, compareEntries("direction", old.Directions, cur.Directions, false)...)
    out = append(out, compareEntries("stream", old.Streams, cur.Streams, false)...)
    return out
}

func compareEntries(enum string, old, cur []SnapshotEntry, movableSentinel bool) []Violation {
    byOrd := make(map[int]string, len(cur))
    maxOrd := -1
    for _, e := range cur {
        byOrd[e.Ordinal] = e.Name
        if e.Ordinal > maxOrd { maxOrd = e.Ordinal }
    }
    var out []Violation
    for i, e := range old {
        if movableSentinel && e.Name == sentinelName && i == len(old)-1 {
            if byOrd[maxOrd] != sentinelName || maxOrd < e.Ordinal {
                out = append(out, Violation{Enum: enum, Ordinal: e.Ordinal, Was: e.Name, Now: byOrd[e.Ordinal]})
            }
            continue
        }
        now, ok := byOrd[e.Ordinal]
        if !ok {
            out = append(out, Violation{Enum: enum, Ordinal: e.Ordinal, Was: e.Name})
            continue
        }
        if now != e.Name {
            out = append(out, Violation{Enum: enum, Ordinal: e.Ordinal, Was: e.Name, Now: now})
        }
    }
    return out
}
