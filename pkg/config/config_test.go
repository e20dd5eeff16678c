package config

import (
    "os"
    "path/filepath"
    "testing"
)

func TestLoadDefaults(t *testing.T) {
    cfg, err := Load("")
    if err != nil { t.Fatalf("load: %v", err) }
    if cfg.Binding.Format != "json" || cfg.Store.Shards != 16 || cfg.Log.Level != "warn" { t.Fatalf("defaults %+v", cfg) }
}

func TestLoadFileAndEnv(t *testing.T) {
    path := filepath.Join(t.TempDir(), "taskbind.yaml")
    doc := "log:\n  level: debug\nbinding:\n  format: CBOR\n  strict_signatures: true\nstore:\n  shards: 4\n  max_bytes: 1024\n"
    if err := os.WriteFile(path, []byte(doc), 0o600); err != nil { t.Fatalf("write: %v", err) }
    t.Setenv("TASKBIND_STORE_SHARDS", "8")

    cfg, err := Load(path)
    if err != nil { t.Fatalf("load: %v", err) }
    if cfg.Log.Level != "debug" || cfg.Binding.Format != "cbor" || !cfg.Binding.StrictSignatures { t.Fatalf("cfg %+v", cfg) }
    if cfg.Store.Shards != 8 || cfg.Store.MaxBytes != 1024 { t.Fatalf("store %+v", cfg.Store) }
}

func TestLoadRejects(t *testing.T) {
    dir := t.TempDir()
    for name, doc := range map[string]string{
        "level":  "log:\n  level: loud\n",
        "format": "binding:\n  format: xml\n",
        "shards": "store:\n  shards: -1\n",
    } {
        path := filepath.Join(dir, name+".yaml")
        if err := os.WriteFile(path, []byte(doc), 0o600); err != nil { t.Fatalf("write: %v", err) }
        if _, err := Load(path); err == nil { t.Fatalf("%s: accepted", name) }
    }
}
