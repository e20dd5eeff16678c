package main

import (
    "fmt"

    "github.com/spf13/cobra"

    "taskbind/pkg/param"
)

type tableRow struct {
    Enum    string `json:"enum" yaml:"enum"`
    Ordinal int    `json:"ordinal" yaml:"ordinal"`
    Name    string `json:"name" yaml:"name"`
    Class   string `json:"class" yaml:"class"`
}

func datatypeClass(d param.Datatype) string {
    switch {
    case param.IsArray(d):
        e, _ := param.ScalarElementType(d)
        return "array of " + e.String()
    case param.IsObjectLike(d):
        return "object-like"
    case param.IsControl(d):
        return "control"
    case param.IsScalar(d):
        return "scalar"
    }
    return d.String()
}

func tableRows(enum string) ([]tableRow, error) {
    var rows []tableRow
    if enum == "" || enum == "datatype" {
        for _, d := range param.Datatypes() { rows = append(rows, tableRow{"datatype", int(d), d.String(), datatypeClass(d)}) }
    }
    if enum == "" || enum == "direction" {
        for _, d := range param.Directions() {
            class := "return-only"
            if d.Live() { class = "live" }
            rows = append(rows, tableRow{"direction", int(d), d.String(), class})
        }
    }
    if enum == "" || enum == "stream" {
        for _, s := range param.Streams() {
            class := "default"
            if s.Redirected() { class = "redirected" }
            rows = append(rows, tableRow{"stream", int(s), s.String(), class})
        }
    }
    if rows == nil { return nil, fmt.Errorf("unknown enum %q (want datatype, direction or stream)", enum) }
    return rows, nil
}

func (c *cli) tableCmd() *cobra.Command {
    var enum string
    cmd := &cobra.Command{
        Use:   "table",
        Short: "Print every enumeration member with its ordinal",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            rows, err := tableRows(enum)
            if err != nil { return err }
            fmt.Fprint(cmd.OutOrStdout(), c.app.out.Format(rows))
            return nil
        },
    }
    cmd.Flags().StringVar(&enum, "enum", "", "only print one enumeration: datatype, direction or stream")
    return cmd
}
