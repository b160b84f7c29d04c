// Package logging constructs the slog loggers used across subtext.
//
// Two output formats are supported: a human-oriented console format with
// optional color when stderr is a terminal, and line-delimited JSON for
// machine consumption. NewFromConfig additionally tees output into a log
// file under the configured log directory.
package logging
