package output

import (
    "strings"
    "testing"
)

type row struct {
    Enum    string `json:"enum" yaml:"enum"`
    Ordinal int    `json:"ordinal" yaml:"ordinal"`
}

func TestFormatters(t *testing.T) {
    rows := []row{{"stream", 0}, {"stream", 1}}
    table := NewFormatter("table").Format(rows)
    lines := strings.Split(strings.TrimSpace(table), "\n")
    if len(lines) != 3 || !strings.HasPrefix(lines[0], "ENUM") || !strings.Contains(lines[0], "ORDINAL") { t.Fatalf("table:\n%s", table) }

    if got := NewFormatter("json").Format(rows); !strings.Contains(got, `"ordinal": 1`) { t.Fatalf("json:\n%s", got) }
    if got := NewFormatter("YAML").Format(rows); !strings.Contains(got, "- enum: stream") { t.Fatalf("yaml:\n%s", got) }
    if got := NewFormatter("").Format([]row{}); got != "(none)\n" { t.Fatalf("empty: %q", got) }
    if got := NewFormatter("table").Format(row{"direction", 3}); !strings.Contains(got, "ordinal:") { t.Fatalf("struct:\n%s", got) }
}
