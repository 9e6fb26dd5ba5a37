package lfscheck

import (
	"fmt"
	"os"
	"strings"
)

var verboseLevel int
var debugFlags map[string]bool

// SetVerbose sets the global verbosity level (0 = quiet).
func SetVerbose(level int) {
	verboseLevel = level
}

// Verbose returns the current verbosity level.
func Verbose() int {
	return verboseLevel
}

// Tracef writes a trace line to stderr when the global verbosity is at
// or above level.
func Tracef(level int, format string, args ...interface{}) {
	if verboseLevel < level {
		return
	}
	fmt.Fprintf(os.Stderr, "[trace] ")
	fmt.Fprintf(os.Stderr, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintln(os.Stderr)
	}
}

// SetDebugFlags enables named debug channels from a comma-separated
// list, e.g. "walk,state". An empty string clears all flags.
func SetDebugFlags(flagsStr string) {
	debugFlags = make(map[string]bool)
	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.ToLower(strings.TrimSpace(flag))
		if flag != "" {
			debugFlags[flag] = true
		}
	}
}

// DebugEnabled reports whether the named debug channel is on.
func DebugEnabled(flag string) bool {
	if debugFlags == nil {
		return false
	}
	return debugFlags[strings.ToLower(flag)]
}

// warnf prints a non-fatal warning to stderr. Warnings do not affect
// the outcome of a check.
func warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
}
