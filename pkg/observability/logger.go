// Package observability contains logging setup for taskbind.
package observability

import (
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "gopkg.in/natefinch/lumberjack.v2"

    "taskbind/pkg/config"
    "taskbind/pkg/param"
)

// SetupLogger builds a zap.Logger from the provided configuration, sets it as
// the global logger, and redirects the stdlib log package. The caller should
// defer logger.Sync().
func SetupLogger(c config.LogConfig) (*zap.Logger, error) {
    level, err := ParseLevel(c.Level)
    if err != nil { return nil, err }
    atom := zap.NewAtomicLevelAt(level)

    encCfg := defaultEncoderConfig(c.Development)
    var encoder zapcore.Encoder
    if strings.ToLower(c.Format) == "json" {
        encoder = zapcore.NewJSONEncoder(encCfg)
    } else {
        encoder = zapcore.NewConsoleEncoder(encCfg)
    }

    var cores []zapcore.Core
    for _, out := range c.Outputs {
        ws, err := sink(out, c)
        if err != nil { return nil, err }
        cores = append(cores, zapcore.NewCore(encoder, ws, atom))
    }

    opts := []zap.Option{
        zap.AddCaller(),
        zap.AddStacktrace(zap.ErrorLevel),
        zap.Fields(zap.String("table", "v"+param.TableVersion)),
    }
    if c.Development {
        opts = append(opts, zap.Development())
    }

    logger := zap.New(zapcore.NewTee(cores...), opts...)
    zap.ReplaceGlobals(logger)
    // redirect stdlib log to zap at Info level
    _, _ = zap.RedirectStdLogAt(logger, zap.InfoLevel)
    return logger, nil
}

// ParseLevel maps a configured level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
    switch strings.ToLower(strings.TrimSpace(s)) {
    case "debug":
        return zap.DebugLevel, nil
    case "info", "":
        return zap.InfoLevel, nil
    case "warn", "warning":
        return zap.WarnLevel, nil
    case "error":
        return zap.ErrorLevel, nil
    }
    return zap.InfoLevel, fmt.Errorf("unknown log level %q", s)
}

// sink opens one output: stdout, stderr or a file path. Files rotate
// through lumberjack when rotation is enabled.
func sink(out string, c config.LogConfig) (zapcore.WriteSyncer, error) {
    switch strings.ToLower(out) {
    case "stdout":
        return zapcore.Lock(os.Stdout), nil
    case "stderr":
        return zapcore.Lock(os.Stderr), nil
    }
    if c.Rotation.Enable {
        return zapcore.AddSync(&lumberjack.Logger{
            Filename:   chooseFilename(out, c),
            MaxSize:    max(c.Rotation.MaxSizeMB, 10),
            MaxBackups: max(c.Rotation.MaxBackups, 1),
            MaxAge:     max(c.Rotation.MaxAgeDays, 7),
            Compress:   c.Rotation.Compress,
        }), nil
    }
    if dir := filepath.Dir(out); dir != "." {
        if err := os.MkdirAll(dir, 0o755); err != nil { return nil, fmt.Errorf("log dir %s: %w", dir, err) }
    }
    f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
    if err != nil { return nil, fmt.Errorf("log output %s: %w", out, err) }
    return zapcore.AddSync(f), nil
}

func defaultEncoderConfig(dev bool) zapcore.EncoderConfig {
    if dev {
        cfg := zap.NewDevelopmentEncoderConfig()
        cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
        return cfg
    }
    return zap.NewProductionEncoderConfig()
}

// chooseFilename prefers the rotation filename when one is configured.
func chooseFilename(out string, c config.LogConfig) string {
    if strings.TrimSpace(c.Rotation.Filename) != "" {
        return c.Rotation.Filename
    }
    return out
}
