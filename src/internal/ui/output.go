// Package ui implements the colored terminal output shared by the vvm
// and vvm-switch commands
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

const (
	successSymbol = "✓"
	errorSymbol   = "✗"
	warningSymbol = "⚠"
	infoSymbol    = "→"
)

var (
	successColor   = color.New(color.FgGreen, color.Bold)
	errorColor     = color.New(color.FgRed, color.Bold)
	warningColor   = color.New(color.FgYellow, color.Bold)
	infoColor      = color.New(color.FgCyan)
	progressColor  = color.New(color.FgBlue)
	headerColor    = color.New(color.Bold)
	highlightColor = color.New(color.FgCyan, color.Bold)
	versionColor   = color.New(color.FgMagenta, color.Bold)
)

func tagged(c *color.Color, symbol, format string, args []any) {
	_, _ = c.Printf("%s %s\n", symbol, fmt.Sprintf(format, args...))
}

// Success prints a green message with a check mark
func Success(format string, args ...any) {
	tagged(successColor, successSymbol, format, args)
}

// Error prints a red message with a cross
func Error(format string, args ...any) {
	tagged(errorColor, errorSymbol, format, args)
}

// Warning prints a yellow message with a warning sign
func Warning(format string, args ...any) {
	tagged(warningColor, warningSymbol, format, args)
}

// Info prints a cyan message with an arrow
func Info(format string, args ...any) {
	tagged(infoColor, infoSymbol, format, args)
}

// Progress prints an indented blue progress message
func Progress(format string, args ...any) {
	tagged(progressColor, "  "+infoSymbol, format, args)
}

// Println prints a plain message followed by a newline
func Println(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Printf prints a plain message without a trailing newline
func Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}

// Header prints a bold heading
func Header(format string, args ...any) {
	_, _ = headerColor.Println(fmt.Sprintf(format, args...))
}

// Highlight colors command names and paths embedded in messages
func Highlight(text string) string {
	return highlightColor.Sprint(text)
}

// HighlightVersion colors a version tag
func HighlightVersion(version string) string {
	return versionColor.Sprint(version)
}
