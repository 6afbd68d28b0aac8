package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/boyter/gocodewalker"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/gql"
	"github.com/rlch/gql/diag"
	"github.com/rlch/gql/report"
)

func checkCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Report diagnostics for query files",
		ArgsUsage: "[files or directories...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   `expression selecting diagnostics, e.g. 'severity == "error"' (overrides config)`,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "text or json (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return env.runCheck(cmd)
		},
	}
}

func (e *environment) runCheck(cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	files, err := collectQueryFiles(args, e.config.Check.Extensions)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return ErrNoQueryFiles
	}

	expression := e.config.Check.Filter
	if cmd.IsSet("filter") {
		expression = cmd.String("filter")
	}

	filter, err := report.NewFilter(expression)
	if err != nil {
		return err
	}

	format := e.config.Check.Format
	if cmd.IsSet("format") {
		format = cmd.String("format")
	}

	color := !cmd.Bool("no-color") && report.ColorEnabled(e.stdout)

	formatter, err := report.NewFormatter(format, e.stdout, color)
	if err != nil {
		return err
	}

	var hasErrors bool

	for _, path := range files {
		file, err := e.checkFile(path)
		if err != nil {
			return err
		}

		file, err = filter.Apply(file)
		if err != nil {
			return err
		}

		if diag.HasErrors(file.Diagnostics) {
			hasErrors = true
		}

		if err := formatter.Format(file); err != nil {
			return err
		}
	}

	if err := formatter.Summary(); err != nil {
		return err
	}

	if hasErrors {
		return ErrDiagnosticErrors
	}

	return nil
}

// checkFile parses one file. Oversized files are reported as a diagnostic
// rather than failing the run.
func (e *environment) checkFile(path string) (*report.File, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text := string(data)

	if err := e.config.CheckInput(len(data)); err != nil {
		e.logger.Warn("Skipping oversized file", zap.String("path", path), zap.Error(err))

		return report.NewFile(path, text, []diag.Diagnostic{
			diag.Errorf("%v", err).WithPrimary(diag.Point(0), "file not parsed"),
		}), nil
	}

	res := gql.Parse(text, gql.WithLogger(e.logger.Named("parser").With(zap.String("path", path))))
	e.logger.Debug("checked file", zap.String("path", path), zap.Int("diagnostics", len(res.Diagnostics)))

	return report.NewFile(path, text, res.Diagnostics), nil
}

// collectQueryFiles expands directories into the files with one of the given
// extensions, respecting .gitignore. Files named explicitly are kept as is.
func collectQueryFiles(args, extensions []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		found, err := walkDir(arg, extensions)
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	return files, nil
}

// walkDir walks a directory for query files, respecting .gitignore.
func walkDir(root string, extensions []string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = extensions

	var walkErr error
	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e
		return true
	})

	var (
		wg    sync.WaitGroup
		files []string
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		for f := range fileListQueue {
			files = append(files, f.Location)
		}
	}()

	if err := fileWalker.Start(); err != nil {
		return nil, err
	}

	wg.Wait()

	// The walker is concurrent, so order is not stable.
	slices.Sort(files)

	return files, walkErr
}
