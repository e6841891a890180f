// Package cli holds what the arffutils commands share: logger setup, the
// input/output plumbing and the exit status convention (2 for usage errors,
// 1 for everything else).
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

// Version is reported by every command's --version flag.
var Version = "0.1.0-dev"

// UsageError marks a bad invocation.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// Args wraps a positional argument validator so its failures count as usage
// errors.
func Args(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// NewLogger returns a logfmt logger on w that drops records below lvl
// (debug, info, warn or error).
func NewLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "info", "":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, Usagef("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, opt), nil
}

// Common carries the flags every command has.
type Common struct {
	LogLevel string
}

// Register adds the shared flags to cmd.
func (c *Common) Register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.LogLevel, "log-level", "info", "diagnostic level: debug, info, warn or error")
}

// Logger builds the command's diagnostic logger on its error stream.
func (c *Common) Logger(cmd *cobra.Command) (log.Logger, error) {
	return NewLogger(cmd.ErrOrStderr(), c.LogLevel)
}

// Execute runs cmd and maps the outcome to an exit status. Errors are
// printed as "error: <err>" on the command's error stream.
func Execute(cmd *cobra.Command) int {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	if cmd.Version == "" {
		cmd.Version = Version
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
	var ue *UsageError
	if errors.As(err, &ue) {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return 2
	}
	return 1
}
