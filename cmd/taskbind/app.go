package main

import (
    "fmt"
    "os"

    "go.uber.org/zap"

    "taskbind/pkg/binding"
    "taskbind/pkg/config"
    "taskbind/pkg/objstore"
    "taskbind/pkg/observability"
    "taskbind/pkg/output"
    "taskbind/pkg/param"
    "taskbind/pkg/protocol"
    "taskbind/pkg/protocol/codec"
    "taskbind/pkg/registry"
)

// app holds what every subcommand shares once configuration is loaded.
type app struct {
    cfg    *config.Config
    out    output.Formatter
    log    *zap.Logger
    store  *objstore.Store
    reg    *registry.Store
    codecs *codec.Registry
    format protocol.Format
}

func newApp(cfg *config.Config, outputFormat string) (*app, error) {
    logger, err := observability.SetupLogger(cfg.Log)
    if err != nil { return nil, fmt.Errorf("setup logger: %w", err) }

    codecs, err := codec.DefaultRegistry()
    if err != nil { return nil, err }
    f, err := protocol.ParseFormat(cfg.Binding.Format)
    if err != nil { return nil, err }

    a := &app{
        cfg:    cfg,
        out:    output.NewFormatter(outputFormat),
        log:    logger,
        store:  objstore.New(objstore.Options{Shards: cfg.Store.Shards, MaxBytes: cfg.Store.MaxBytes}),
        reg:    registry.NewStore(objstore.New(objstore.Options{Shards: 1})),
        codecs: codecs,
        format: f,
    }
    if cfg.Binding.Signatures != "" {
        if err := a.loadSignatures(cfg.Binding.Signatures); err != nil { return nil, err }
    }
    zap.L().Debug("effective configuration", zap.Any("config", cfg), zap.String("table", param.TableVersion))
    return a, nil
}

func (a *app) loadSignatures(path string) error {
    f, err := os.Open(path)
    if err != nil { return fmt.Errorf("open signatures: %w", err) }
    defer f.Close()
    sigs, err := registry.LoadSignatures(f)
    if err != nil { return fmt.Errorf("%s: %w", path, err) }
    return a.reg.RegisterAll(sigs)
}

func (a *app) close() { _ = a.log.Sync() }

func (a *app) marshaller() (*binding.Marshaller, error) {
    c, err := protocol.CodecFor(a.codecs, a.format)
    if err != nil { return nil, err }
    return binding.NewMarshaller(c, a.store), nil
}

func (a *app) unmarshaller() *binding.Unmarshaller { return binding.NewUnmarshaller(a.codecs, a.store) }

// registryFor returns the registry to check task against. Tasks without a
// signature are only checked locally unless signatures are strict.
func (a *app) registryFor(task string) *registry.Store {
    if _, ok := a.reg.Lookup(task); ok || a.cfg.Binding.StrictSignatures { return a.reg }
    return nil
}

// build binds every NAME@TYPE:DIR=VALUE argument and assembles the call.
func (a *app) build(task string, args []string, returns string) (binding.Invocation, error) {
    b := binding.NewBuilder(task, a.registryFor(task))
    for i, arg := range args {
        name, d, v, err := parseArg(arg)
        if err != nil { return binding.Invocation{}, fmt.Errorf("argument %d: %w", i, err) }
        if name == "" { name = fmt.Sprintf("arg%d", i) }
        b.Add(name, d, v)
    }
    if returns != "" {
        t, err := param.ParseDatatype(returns)
        if err != nil { return binding.Invocation{}, fmt.Errorf("--returns: %w", err) }
        b.Returns(t)
    }
    return b.Build()
}
