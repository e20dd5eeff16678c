package main

import (
    "fmt"
    "strings"

    "github.com/spf13/cobra"
)

type taskRow struct {
    Task    string `json:"task" yaml:"task"`
    Version string `json:"version" yaml:"version"`
    Params  string `json:"params" yaml:"params"`
    Returns string `json:"returns" yaml:"returns"`
}

func (c *cli) tasksCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "tasks",
        Short: "List the task signatures loaded from binding.signatures",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            var rows []taskRow
            for _, sig := range c.app.reg.List() {
                params := make([]string, len(sig.Params))
                for i, d := range sig.Params { params[i] = d.String() }
                ret := "-"
                if sig.Return != nil { ret = sig.Return.Type.String() }
                rows = append(rows, taskRow{sig.Task, sig.Version, strings.Join(params, " "), ret})
            }
            fmt.Fprint(cmd.OutOrStdout(), c.app.out.Format(rows))
            return nil
        },
    }
}
