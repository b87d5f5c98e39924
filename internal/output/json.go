package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/teamping/internal/dispatch"
	"github.com/spiffcs/teamping/internal/query"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

type actionJSON struct {
	ID        int64  `json:"id"`
	Item      string `json:"item"`
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	ContentID int64  `json:"contentId,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

type queryJSON struct {
	Mode    string `json:"mode"`
	Plain   string `json:"plain"`
	Encoded string `json:"encoded"`
}

// FormatActions outputs actions as a JSON array
func (f *JSONFormatter) FormatActions(actions []dispatch.Action, w io.Writer) error {
	out := make([]actionJSON, 0, len(actions))
	for _, a := range actions {
		out = append(out, actionJSON{
			ID:        a.Item.ID,
			Item:      a.Ref.String(),
			Kind:      string(a.Ref.Kind),
			Title:     a.Item.Title,
			URL:       a.Item.HTMLURL,
			ContentID: a.ContentID,
			Comment:   a.Comment,
		})
	}
	return f.encode(out, w)
}

// FormatQueries outputs queries as a JSON array
func (f *JSONFormatter) FormatQueries(queries []*query.Query, w io.Writer) error {
	out := make([]queryJSON, 0, len(queries))
	for _, q := range queries {
		out = append(out, queryJSON{
			Mode:    q.Mode.String(),
			Plain:   q.String(),
			Encoded: q.Encode(),
		})
	}
	return f.encode(out, w)
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
