package main

import (
    "errors"
    "fmt"
    "io"
    "os"

    "github.com/spf13/cobra"

    "taskbind/pkg/binding"
    "taskbind/pkg/protocol"
    "taskbind/pkg/protocol/stream"
)

type paramRow struct {
    Frame      int    `json:"frame" yaml:"frame"`
    Kind       string `json:"kind" yaml:"kind"`
    Task       string `json:"task" yaml:"task"`
    Index      int    `json:"index" yaml:"index"`
    Name       string `json:"name" yaml:"name"`
    Descriptor string `json:"descriptor" yaml:"descriptor"`
    Value      string `json:"value" yaml:"value"`
}

func displayValue(v any) string {
    switch x := v.(type) {
    case nil:
        return "-"
    case binding.Ref:
        return "ref:" + string(x)
    case binding.PersistentRef:
        return "persistent:" + string(x)
    case binding.ExternalRef:
        return "external:" + string(x)
    }
    return fmt.Sprint(v)
}

func (c *cli) inspectCmd() *cobra.Command {
    return &cobra.Command{
        Use:   "inspect FILE",
        Short: "Decode and validate every invocation frame in FILE",
        Long: `inspect reads frames until the end of FILE, checks each against the local
descriptor table and prints its parameters. Arrays and objects show the
object store id they were stored under.`,
        Args: cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            f, err := os.Open(args[0])
            if err != nil { return err }
            defer f.Close()

            conn := stream.New(f)
            u := c.app.unmarshaller()
            var rows []paramRow
            for n := 0; ; n++ {
                var e protocol.Envelope
                if err := conn.Recv(&e); err != nil {
                    if errors.Is(err, io.EOF) { break }
                    return fmt.Errorf("frame %d: %w", n, err)
                }
                inv, err := protocol.DecodeInvocation(c.app.codecs, u, &e)
                if err != nil { return fmt.Errorf("frame %d: %w", n, err) }
                for i, p := range inv.Params {
                    rows = append(rows, paramRow{n, frameKind(&e), inv.Task, i, p.Name, p.Desc.String(), displayValue(p.Value)})
                }
            }
            fmt.Fprint(cmd.OutOrStdout(), c.app.out.Format(rows))
            return nil
        },
    }
}
