package output

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI colour sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const ellipsis = "..."

func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of s in terminal columns.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// truncateToWidth shortens plain text to maxWidth columns, ending in "...".
// It returns the result and its visible width.
func truncateToWidth(s string, maxWidth int) (string, int) {
	if w := displayWidth(s); w <= maxWidth {
		return s, w
	}
	out := runewidth.Truncate(stripAnsi(s), maxWidth, ellipsis)
	return out, runewidth.StringWidth(out)
}

// padRight pads s with spaces up to targetWidth visible columns.
func padRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// hyperlink wraps text in an OSC 8 terminal hyperlink.
func hyperlink(text, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}
