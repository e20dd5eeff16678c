package main

import (
    "fmt"

    "github.com/spf13/cobra"
)

func (c *cli) encodeCmd() *cobra.Command {
    var returns string
    cmd := &cobra.Command{
        Use:   "encode TASK [NAME@]TYPE:DIR[:STREAM][=VALUE]...",
        Short: "Bind and validate a task call and print its worker arguments",
        Example: `  taskbind encode stats.sum xs@array-of-double:in=1,2,3 log@file:out:stdout=sum.log --returns double`,
        Args: cobra.MinimumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            inv, err := c.app.build(args[0], args[1:], returns)
            if err != nil { return err }
            m, err := c.app.marshaller()
            if err != nil { return err }
            tokens, err := m.Marshal(inv)
            if err != nil { return err }
            fmt.Fprint(cmd.OutOrStdout(), c.app.out.Format(tokens))
            return nil
        },
    }
    cmd.Flags().StringVar(&returns, "returns", "", "datatype of the task's return value")
    return cmd
}
