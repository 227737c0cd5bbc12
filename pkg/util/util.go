package util

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"minic/pkg/config"
)

var (
	output   io.Writer = os.Stderr
	useColor           = isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
)

// SetOutput redirects diagnostics, mainly for tests. Color is disabled for
// non-stderr writers.
func SetOutput(w io.Writer) {
	output = w
	useColor = w == os.Stderr && (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))
}

func prefix(line int, kind, color string) string {
	loc := "minic"
	if line > 0 {
		loc = fmt.Sprintf("minic: line %d", line)
	}
	if useColor {
		return fmt.Sprintf("%s: %s%s:\033[0m ", loc, color, kind)
	}
	return fmt.Sprintf("%s: %s: ", loc, kind)
}

// Error reports a semantic error. It never terminates the process; the
// translator propagates the failure itself.
func Error(line int, format string, args ...any) {
	fmt.Fprint(output, prefix(line, "error", "\033[31m"))
	fmt.Fprintf(output, format, args...)
	fmt.Fprintln(output)
}

// Warn reports a diagnostic gated by the corresponding warning toggle.
func Warn(cfg *config.Config, wt config.Warning, line int, format string, args ...any) {
	if !cfg.IsWarningEnabled(wt) {
		return
	}
	fmt.Fprint(output, prefix(line, "warning", "\033[33m"))
	fmt.Fprintf(output, format, args...)
	fmt.Fprintf(output, " [-W%s]\n", cfg.WarningName(wt))
}
