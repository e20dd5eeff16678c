package config

import "fmt"

// StoreConfig sizes the object store holding by-reference payloads.
type StoreConfig struct {
    Shards   int    `mapstructure:"shards"`
    MaxBytes uint64 `mapstructure:"max_bytes"` // 0 = unlimited
}

func (s *StoreConfig) validate() error {
    if s.Shards < 0 { return fmt.Errorf("invalid store.shards: %d", s.Shards) }
    if s.Shards == 0 { s.Shards = 16 }
    return nil
}
