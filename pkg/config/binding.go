package config

import (
    "fmt"
    "strings"
)

// BindingConfig controls invocation encoding.
// Example YAML:
// binding:
//   format: cbor
//   strict_signatures: true
//   signatures: configs/tasks.yaml
type BindingConfig struct {
    // Format of frame bodies and stored payloads: json, cbor or proto
    Format string `mapstructure:"format"`
    // StrictSignatures rejects invocations of tasks with no registered signature
    StrictSignatures bool `mapstructure:"strict_signatures"`
    // Signatures is a YAML file of task signatures loaded at startup
    Signatures string `mapstructure:"signatures"`
}

func (b *BindingConfig) validate() error {
    b.Format = strings.ToLower(strings.TrimSpace(b.Format))
    switch b.Format {
    case "":
        b.Format = "json"
    case "json", "cbor", "proto":
    default:
        return fmt.Errorf("invalid binding.format: %q", b.Format)
    }
    return nil
}
