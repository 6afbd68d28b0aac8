// Command gql tokenizes, parses and checks GQL queries.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	env := &environment{stdin: stdin, stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "gql",
		Usage:     "Inspect and check GQL queries",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to .gql.yaml (default: nearest one walking up from the working directory)",
				Sources: cli.EnvVars("GQL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error (overrides config)",
				Sources: cli.EnvVars("GQL_LOG_LEVEL"),
			},
		},
		Before: env.setup,
		After: func(_ context.Context, _ *cli.Command) error {
			env.close()
			return nil
		},
		Commands: []*cli.Command{
			tokenizeCommand(env),
			parseCommand(env),
			checkCommand(env),
		},
	}
}
