package main

import (
    "fmt"

    "github.com/spf13/cobra"

    "taskbind/pkg/config"
)

// cli carries global flags and the app built from them in PersistentPreRunE.
type cli struct {
    configPath string
    output     string
    format     string
    verbose    bool

    app *app
}

func newRootCmd() *cobra.Command {
    c := &cli{}
    root := &cobra.Command{
        Use:   "taskbind",
        Short: "Parameter descriptor table and invocation encoding for task workers",
        Long: `taskbind prints the datatype, direction and stream tables shared with the
task runtime, guards their ordinals against reassignment, and encodes task
calls into worker arguments and framed invocations.`,
        SilenceUsage:  true,
        SilenceErrors: true,
        PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
            cfg, err := config.Load(c.configPath)
            if err != nil { return fmt.Errorf("failed to load config: %w", err) }
            if c.verbose { cfg.Log.Level = "debug" }
            if c.format != "" { cfg.Binding.Format = c.format }
            c.app, err = newApp(cfg, c.output)
            return err
        },
        PersistentPostRun: func(cmd *cobra.Command, args []string) {
            if c.app != nil { c.app.close() }
        },
    }
    root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default is ./taskbind.yaml)")
    root.PersistentFlags().StringVarP(&c.output, "output", "o", "", "output format: table, json, yaml (default \"table\")")
    root.PersistentFlags().StringVar(&c.format, "format", "", "body and payload encoding: json, cbor, proto (overrides binding.format)")
    root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")

    root.AddCommand(
        c.tableCmd(),
        c.snapshotCmd(),
        c.encodeCmd(),
        c.frameCmd(),
        c.inspectCmd(),
        c.tasksCmd(),
        c.versionCmd(),
    )
    return root
}
