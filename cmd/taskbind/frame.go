package main

import (
    "encoding/hex"
    "fmt"
    "os"
    "strings"

    "github.com/spf13/cobra"

    "taskbind/pkg/protocol"
    "taskbind/pkg/protocol/stream"
)

type frameSummary struct {
    File        string `json:"file" yaml:"file"`
    Task        string `json:"task" yaml:"task"`
    Params      int    `json:"params" yaml:"params"`
    Format      string `json:"format" yaml:"format"`
    Kind        string `json:"kind" yaml:"kind"`
    Bytes       int    `json:"bytes" yaml:"bytes"`
    Correlation string `json:"correlation" yaml:"correlation"`
    Head        string `json:"head" yaml:"head"`
}

func (c *cli) frameCmd() *cobra.Command {
    var file, returns string
    var appendTo, result bool
    cmd := &cobra.Command{
        Use:   "frame -f FILE TASK [NAME@]TYPE:DIR[:STREAM][=VALUE]...",
        Short: "Encode a task call as an invocation frame and write it to FILE",
        Args:  cobra.MinimumNArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            inv, err := c.app.build(args[0], args[1:], returns)
            if err != nil { return err }
            m, err := c.app.marshaller()
            if err != nil { return err }
            e, err := protocol.EncodeInvocation(c.app.codecs, c.app.format, m, inv)
            if err != nil { return err }
            e.SetFlag(protocol.FlagResult, result)

            mode := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
            if appendTo { mode = os.O_CREATE | os.O_WRONLY | os.O_APPEND }
            f, err := os.OpenFile(file, mode, 0o644)
            if err != nil { return err }
            if err := stream.New(f).Send(&e); err != nil {
                f.Close()
                return fmt.Errorf("write frame: %w", err)
            }
            if err := f.Close(); err != nil { return err }

            hb, _ := e.Header.MarshalBinary()
            fmt.Fprint(cmd.OutOrStdout(), c.app.out.Format(frameSummary{
                File:        file,
                Task:        inv.Task,
                Params:      int(e.Header.ParamCount),
                Format:      e.Header.Format.String(),
                Kind:        frameKind(&e),
                Bytes:       protocol.HeaderSize + len(e.Payload),
                Correlation: hex.EncodeToString(e.Header.Correlation[:]),
                Head:        shortHex(hb, 16),
            }))
            return nil
        },
    }
    cmd.Flags().StringVarP(&file, "file", "f", "", "frame file to write")
    cmd.Flags().StringVar(&returns, "returns", "", "datatype of the task's return value")
    cmd.Flags().BoolVar(&appendTo, "append", false, "append to FILE instead of replacing it")
    cmd.Flags().BoolVar(&result, "result", false, "mark the frame as a worker reply carrying results")
    _ = cmd.MarkFlagRequired("file")
    return cmd
}

func frameKind(e *protocol.Envelope) string {
    if e.HasFlag(protocol.FlagResult) { return "result" }
    return "call"
}

// shortHex renders the first n bytes of b as 4-digit groups.
func shortHex(b []byte, n int) string {
    if n > len(b) { n = len(b) }
    enc := hex.EncodeToString(b[:n])
    var out []string
    for i := 0; i < len(enc); i += 4 { out = append(out, enc[i:min(i+4, len(enc))]) }
    s := strings.Join(out, " ")
    if len(b) > n { s += " ..." }
    return s
}
