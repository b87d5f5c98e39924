package dispatch

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/spiffcs/teamping/internal/model"
)

// Template is a comment body. A plain body is posted exactly as written;
// a templated body may reference the fields of CommentData, e.g.
// "Thanks! Added {{.Ref}} to our board."
type Template struct {
	body string
	tmpl *template.Template
}

// CommentData is the data a comment template is executed with.
type CommentData struct {
	Owner  string
	Repo   string
	Number int
	Kind   model.ContentKind
	Title  string
	URL    string
	Ref    string
}

// NewComment returns the comment posted on every item. Only when templated
// is set is the body parsed as a text/template. An empty or blank body
// returns nil, which disables commenting.
func NewComment(body string, templated bool) (*Template, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	if !templated {
		return &Template{body: body}, nil
	}
	return ParseTemplate(body)
}

// ParseTemplate parses a comment body as a text/template. An empty or blank
// body returns nil.
func ParseTemplate(body string) (*Template, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}

	tmpl, err := template.New("comment").Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("invalid comment body template: %w", err)
	}
	return &Template{body: body, tmpl: tmpl}, nil
}

// Render returns the comment for one item.
func (t *Template) Render(item model.Item, ref model.ItemRef) (string, error) {
	if t.tmpl == nil {
		return t.body, nil
	}

	data := CommentData{
		Owner:  ref.Owner,
		Repo:   ref.Repo,
		Number: ref.Number,
		Kind:   ref.Kind,
		Title:  item.Title,
		URL:    item.HTMLURL,
		Ref:    ref.String(),
	}

	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render comment for %s: %w", ref, err)
	}
	return buf.String(), nil
}
