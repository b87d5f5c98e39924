// Package output renders planned actions and search queries for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/spiffcs/teamping/internal/dispatch"
	"github.com/spiffcs/teamping/internal/query"
)

// Format represents the output format
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s or %s)", s, FormatTable, FormatJSON)
	}
}

// Formatter defines the interface for output formatters
type Formatter interface {
	FormatActions(actions []dispatch.Action, w io.Writer) error
	FormatQueries(queries []*query.Query, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	default:
		return &TableFormatter{Hyperlinks: term.IsTerminal(int(os.Stdout.Fd()))}
	}
}
