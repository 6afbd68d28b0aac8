package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/rlch/gql"
	"github.com/rlch/gql/diag"
)

func tokenizeCommand(env *environment) *cli.Command {
	return &cli.Command{
		Name:      "tokenize",
		Aliases:   []string{"tok"},
		Usage:     "Print the token stream of a query",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "output tokens as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return env.runTokenize(cmd)
		},
	}
}

type jsonToken struct {
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Value string `json:"value,omitempty"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

func (e *environment) runTokenize(cmd *cli.Command) error {
	name, text, err := e.readInput(cmd)
	if err != nil {
		return err
	}

	res := gql.Tokenize(text)
	e.logger.Debug("tokenized", zap.String("input", name), zap.Int("tokens", len(res.Tokens)))

	if cmd.Bool("json") {
		out := make([]jsonToken, 0, len(res.Tokens))
		for _, tok := range res.Tokens {
			out = append(out, jsonToken{
				Kind:  tok.Kind.String(),
				Text:  tok.Text,
				Value: tok.Value,
				Start: tok.Span.Start,
				End:   tok.Span.End,
			})
		}

		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		src := diag.NewSource(name, text)
		tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)

		for _, tok := range res.Tokens {
			pos := src.Position(tok.Span.Start)
			_, _ = fmt.Fprintf(tw, "%d:%d\t%s\t%q\n", pos.Line, pos.Column, tok.Kind, tok.Text)
		}

		if err := tw.Flush(); err != nil {
			return err
		}
	}

	return e.reportDiagnostics(name, text, res.Diagnostics)
}
