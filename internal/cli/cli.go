// Package cli provides the ambient logging and process-exit helpers
// used only by the cmd/proveit shell. The kernel, tactic engine, and
// elaborator never import this package; they stay pure and
// value-threaded, reporting failures as ordinary Go values instead of
// writing to a log.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Logger is a minimal verbosity-gated logger for the proof script
// shell. DebugMode additionally surfaces the category/code pulled out
// of a script's status line, so a failing run shows which layer
// (parse, kernel, tactic, elab) rejected it without the caller having
// to reach into the session's internals.
type Logger struct {
	Verbose   bool
	DebugMode bool
}

// NewLogger creates a new logger instance.
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{Verbose: verbose, DebugMode: debug}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		fmt.Printf("[DEBUG] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("[WARN] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Printf("[ERROR] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Result logs the outcome of a processed script. status is whatever
// core.Session.ProcessText returned: the success marker "all good", or
// the first failure message, which for a kernel/tactic/elab rejection
// is rendered as "[CATEGORY:CODE] message" by kernelerr.Error. Result
// picks that tag back apart so debug output can name the layer that
// rejected the script without importing kernelerr itself.
func (l *Logger) Result(status string) {
	if status == "all good" {
		l.Info("script accepted")
		return
	}
	category, code, message := splitTag(status)
	if category == "" {
		l.Error("%s", status)
		return
	}
	l.Debug("rejected by %s (%s)", category, code)
	l.Error("%s", message)
}

// splitTag pulls the "[CATEGORY:CODE] " prefix off a kernelerr-style
// status line, returning empty strings if status does not look like
// one (e.g. a parse failure reported before any Error value existed).
func splitTag(status string) (category, code, rest string) {
	if !strings.HasPrefix(status, "[") {
		return "", "", status
	}
	end := strings.Index(status, "] ")
	if end < 0 {
		return "", "", status
	}
	tag := status[1:end]
	parts := strings.SplitN(tag, ":", 2)
	if len(parts) != 2 {
		return "", "", status
	}
	return parts[0], parts[1], status[end+2:]
}

// ExitWithError prints an error message and exits with code 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
