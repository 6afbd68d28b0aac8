package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/gql"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/report"
)

// Command errors.
var (
	ErrNoQueryFiles     = errors.New("no query files found")
	ErrDiagnosticErrors = errors.New("queries contain errors")
)

// environment carries what the global flags resolve to.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config *gql.Config
	logger *zap.Logger
}

func (e *environment) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logger, err := newLogger(e.stderr, cfg.Log.Level)
	if err != nil {
		return ctx, err
	}

	e.config = cfg
	e.logger = logger

	return ctx, nil
}

func (e *environment) close() {
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

// loadConfig reads path, or the nearest config above the working directory
// when path is empty. A missing config yields the defaults.
func loadConfig(path string) (*gql.Config, error) {
	if path != "" {
		return gql.LoadConfigFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting cwd: %w", err)
	}

	cfg, err := gql.LoadConfig(cwd)
	if errors.Is(err, gql.ErrConfigNotFound) {
		return gql.DefaultConfig(), nil
	}

	return cfg, err
}

// newLogger builds a development console logger writing to w.
func newLogger(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		lvl,
	)

	return zap.New(core), nil
}

// readInput reads the file named by the first argument, or stdin when it is
// missing or "-".
func (e *environment) readInput(cmd *cli.Command) (name, text string, err error) {
	name = cmd.Args().First()

	var data []byte

	if name == "" || name == "-" {
		name = "<stdin>"
		data, err = io.ReadAll(e.stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(name))
	}

	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}

	if err := e.config.CheckInput(len(data)); err != nil {
		return "", "", fmt.Errorf("%s: %w", name, err)
	}

	return name, string(data), nil
}

// reportDiagnostics writes diags as text to stderr and returns
// ErrDiagnosticErrors when any of them is an error.
func (e *environment) reportDiagnostics(name, text string, diags []diag.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}

	f := report.NewTextFormatter(e.stderr, report.ColorEnabled(e.stderr))
	if err := f.Format(report.NewFile(name, text, diags)); err != nil {
		return err
	}

	if diag.HasErrors(diags) {
		return ErrDiagnosticErrors
	}

	return nil
}
