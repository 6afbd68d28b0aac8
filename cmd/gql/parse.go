package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/rlch/gql"
	"github.com/rlch/gql/ast"
)

func parseCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Print the syntax tree of a query",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "print node counts by type after the tree",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return env.runParse(cmd)
		},
	}
}

func (e *environment) runParse(cmd *cli.Command) error {
	name, text, err := e.readInput(cmd)
	if err != nil {
		return err
	}

	res := gql.Parse(text, gql.WithLogger(e.logger.Named("parser")))

	_, _ = fmt.Fprintln(e.stdout, ast.Format(res.Program))

	if cmd.Bool("stats") {
		counts := nodeCounts(res.Program)
		for _, kind := range slices.Sorted(maps.Keys(counts)) {
			_, _ = fmt.Fprintf(e.stdout, "%6d  %s\n", counts[kind], kind)
		}
	}

	return e.reportDiagnostics(name, text, res.Diagnostics)
}

// nodeCounts counts the nodes of the tree by their type name.
func nodeCounts(root ast.Node) map[string]int {
	counts := map[string]int{}

	ast.Inspect(root, func(n ast.Node) bool {
		counts[strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")]++
		return true
	})

	return counts
}
