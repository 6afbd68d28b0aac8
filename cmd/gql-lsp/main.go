// Command gql-lsp is a Language Server Protocol server publishing GQL parse
// diagnostics.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/gql"
	"github.com/rlch/gql/lsp"
)

func main() {
	app := &cli.Command{
		Name:  "gql-lsp",
		Usage: "Language server for GQL queries (speaks JSON-RPC on stdio)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to .gql.yaml",
				Sources: cli.EnvVars("GQL_CONFIG"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
			if cmd.Bool("debug") {
				level.SetLevel(zapcore.DebugLevel)
			}

			return serve(ctx, cfg, level, &readWriteCloser{os.Stdin, os.Stdout})
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// serve runs the server on rwc until the client exits or the stream closes.
func serve(ctx context.Context, cfg *gql.Config, level zap.AtomicLevel, rwc io.ReadWriteCloser) error {
	// Set up logging to stderr (stdout is for LSP communication)
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = level

	stderrLogger, err := config.Build()
	if err != nil {
		return err
	}

	// Create a JSON-RPC stream connection over stdio
	stream := jsonrpc2.NewStream(rwc)
	conn := jsonrpc2.NewConn(stream)

	// Create a client to send notifications to the editor
	client := protocol.ClientDispatcher(conn, stderrLogger)

	logger, stop := lsp.NewLogger(client, stderrLogger.Core(), level)
	defer stop()

	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting gql-lsp server", zap.Int("maxInputBytes", cfg.Limits.MaxInputBytes))

	server := lsp.NewServer(client, logger, cfg)
	conn.Go(ctx, server.Handle)

	select {
	case <-conn.Done():
	case <-server.Exited():
		_ = conn.Close()
		<-conn.Done()

		return nil
	}

	return conn.Err()
}

func loadConfig(path string) (*gql.Config, error) {
	if path != "" {
		return gql.LoadConfigFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := gql.LoadConfig(cwd)
	if errors.Is(err, gql.ErrConfigNotFound) {
		return gql.DefaultConfig(), nil
	}

	return cfg, err
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
