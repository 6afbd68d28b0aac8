package gql

import "errors"

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .gql.yaml is found.
	ErrConfigNotFound = errors.New("gql: no .gql.yaml found")

	// ErrInputTooLarge is returned when an input exceeds limits.max_input_bytes.
	ErrInputTooLarge = errors.New("gql: input too large")
)
