// Package internal contains internal methods and constants.
package internal

import (
	"strings"
)

var lineBreakRemover = strings.NewReplacer("\r", "", "\n", "")

// CollapseLineBreaks removes every CR and LF from text, so that a \r\n, \n or
// \r sequence of any length collapses to nothing.
func CollapseLineBreaks(text string) string {
	return lineBreakRemover.Replace(text)
}
