// Package vlog is the ambient verbose-logging helper shared across
// packages, carried over from the teacher's misc.go Vprint/Vprintf/
// Vprintln pattern: a package-level Verbose switch gating writes to
// standard error, rather than a structured logging library the rest of
// the example pack never pulls in for a CLI tool this size.
package vlog

import (
	"fmt"
	"os"
)

// Verbose gates every Vprint/Vprintf/Vprintln call. The CLI entry point
// sets it from the -verbose flag before any other package logs.
var Verbose = false

func Vprint(s string) {
	if !Verbose {
		return
	}
	fmt.Fprint(os.Stderr, s)
}

func Vprintf(format string, v ...interface{}) {
	if !Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format, v...)
}

func Vprintln(s string) {
	if !Verbose {
		return
	}
	fmt.Fprintln(os.Stderr, s)
}
