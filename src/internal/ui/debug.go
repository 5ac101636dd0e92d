package ui

import (
	"os"

	"github.com/fatih/color"
)

var (
	debugColor  = color.New(color.FgHiBlack)
	debugSymbol = "·"

	verboseMode bool
)

// SetVerbose enables or disables debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// IsVerbose reports whether debug output is enabled
func IsVerbose() bool {
	return verboseMode
}

// CheckVerboseEnv enables verbose mode when VVM_VERBOSE is set to 1 or true
func CheckVerboseEnv() {
	switch os.Getenv("VVM_VERBOSE") {
	case "1", "true":
		verboseMode = true
	}
}

// Debug prints a debug message when verbose mode is enabled
func Debug(format string, args ...any) {
	if !verboseMode {
		return
	}
	tagged(debugColor, debugSymbol, format, args)
}

// Debugf prints a debug message without a trailing newline when verbose mode is enabled
func Debugf(format string, args ...any) {
	if !verboseMode {
		return
	}
	_, _ = debugColor.Printf(format, args...)
}
