package main

import (
    "fmt"

    "github.com/spf13/cobra"

    "taskbind/pkg/param"
    "taskbind/pkg/protocol"
)

// version is set at build time via -ldflags "-X main.version=x.y.z"
var version = "0.1.0"

type versionInfo struct {
    Taskbind string `json:"taskbind" yaml:"taskbind"`
    Table    string `json:"table" yaml:"table"`
    Checksum string `json:"checksum" yaml:"checksum"`
    Frame    int    `json:"frame" yaml:"frame"`
}

func (c *cli) versionCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "version",
        Short: "Show taskbind, descriptor table and frame versions",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            fmt.Fprint(cmd.OutOrStdout(), c.app.out.Format(versionInfo{
                Taskbind: version,
                Table:    param.TableVersion,
                Checksum: fmt.Sprintf("%#016x", param.TableChecksum),
                Frame:    int(protocol.Version),
            }))
            return nil
        },
    }
}
