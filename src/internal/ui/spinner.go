package ui

import (
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

const (
	spinnerCharset  = 14 // braille dots
	spinnerInterval = 100 * time.Millisecond
)

// Spinner animates a long-running step on a single terminal line.
// Commands run one Spinner per step and end it with Success, Error
// or Warning.
type Spinner struct {
	anim *spinner.Spinner
}

// NewSpinner prepares a spinner labeled with message. Nothing is
// drawn until Start.
func NewSpinner(message string) *Spinner {
	anim := spinner.New(
		spinner.CharSets[spinnerCharset],
		spinnerInterval,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &Spinner{anim: anim}
}

// Start begins the animation. Verbose mode prints the label once
// instead, so debug lines do not fight the animation for the cursor
// line.
func (s *Spinner) Start() {
	if IsVerbose() {
		Debug("%s", strings.TrimSpace(s.anim.Suffix))
		return
	}
	s.anim.Start()
}

// Stop clears the animation without printing a status line.
func (s *Spinner) Stop() {
	s.anim.Stop()
}

// Success ends the step with a success line.
func (s *Spinner) Success(message string) {
	s.finish(Success, message)
}

// Error ends the step with an error line.
func (s *Spinner) Error(message string) {
	s.finish(Error, message)
}

// Warning ends the step with a warning line.
func (s *Spinner) Warning(message string) {
	s.finish(Warning, message)
}

func (s *Spinner) finish(print func(string, ...any), message string) {
	s.anim.Stop()
	print("%s", message)
}
