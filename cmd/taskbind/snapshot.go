package main

import (
    "fmt"
    "os"

    "github.com/spf13/cobra"

    "taskbind/pkg/param"
)

func (c *cli) snapshotPath(args []string) string {
    if len(args) > 0 { return args[0] }
    return c.app.cfg.SnapshotPath
}

func (c *cli) snapshotCmd() *cobra.Command {
    cmd := &cobra.Command{
        Use:   "snapshot",
        Short: "Record or check the ordinal assignments of the descriptor table",
    }
    cmd.AddCommand(&cobra.Command{
        Use:   "write [FILE]",
        Short: "Write the current ordinal assignments as YAML",
        Args:  cobra.MaximumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            path := c.snapshotPath(args)
            f, err := os.Create(path)
            if err != nil { return err }
            if err := param.WriteSnapshot(f, param.CurrentSnapshot()); err != nil {
                f.Close()
                return err
            }
            if err := f.Close(); err != nil { return err }
            fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (table %s, checksum %#016x)\n", path, param.TableVersion, param.TableChecksum)
            return nil
        },
    })
    cmd.AddCommand(&cobra.Command{
        Use:   "check [FILE]",
        Short: "Fail if the current table reassigns or drops an ordinal recorded in FILE",
        Args:  cobra.MaximumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            path := c.snapshotPath(args)
            f, err := os.Open(path)
            if err != nil { return err }
            defer f.Close()
            old, err := param.LoadSnapshot(f)
            if err != nil { return fmt.Errorf("%s: %w", path, err) }

            violations := param.CompareSnapshots(old, param.CurrentSnapshot())
            for _, v := range violations { fmt.Fprintln(cmd.OutOrStdout(), v.String()) }
            if len(violations) > 0 { return fmt.Errorf("%d ordinal violations against %s (table %s)", len(violations), path, old.Version) }
            fmt.Fprintf(cmd.OutOrStdout(), "ok: table %s is append-compatible with %s (table %s)\n", param.TableVersion, path, old.Version)
            return nil
        },
    })
    return cmd
}
