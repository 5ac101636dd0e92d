package ui

import (
	"fmt"
	"strings"

	"github.com/vvm/vvm/src/internal/constants"
)

// Confirm asks a yes/no question and reads a single-line answer.
// An empty answer takes the default. Unrecognized answers count as no.
func Confirm(question string, defaultYes bool) bool {
	suffix := "[y/N]"
	if defaultYes {
		suffix = "[Y/n]"
	}
	Printf("%s %s: ", question, suffix)

	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes
	}
	return response == constants.ResponseY || response == constants.ResponseYes
}
