package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ngrange/pkgconf/resolve"
)

// reportError writes err to stderr (or stdout when flags.ErrorsToStdout
// was given) unless flags.SilenceErrors suppresses it, and returns the
// process exit code the caller should use. Verbose mode prints the full
// ResolutionError graph path; --short-errors collapses it to the
// underlying cause only (§6.3).
func reportError(flags *Flags, err error) int {
	if err == nil {
		return 0
	}

	if !flags.SilenceErrors {
		out := io.Writer(os.Stderr)
		if flags.ErrorsToStdout {
			out = os.Stdout
		}
		fmt.Fprintln(out, "pkg-config:", formatError(flags, err))
	}

	return 1
}

func formatError(flags *Flags, err error) string {
	if flags.ShortErrors {
		return errors.Unwrap(firstResolutionError(err)).Error()
	}
	if flags.PrintErrors || flags.Debug {
		return err.Error()
	}
	return rootCause(err).Error()
}

// firstResolutionError walks err looking for a *resolve.ResolutionError to
// unwrap one level past; if none is found, err itself is returned so
// callers can still call Unwrap safely.
func firstResolutionError(err error) error {
	var re *resolve.ResolutionError
	if errors.As(err, &re) {
		return re
	}
	return &resolve.ResolutionError{Err: err}
}

// rootCause walks the Unwrap chain to the deepest error, matching the
// original tool's default (non-verbose) error output of just the final
// cause without the graph path.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
