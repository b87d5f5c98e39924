package dispatch

import (
	"testing"

	"github.com/spiffcs/teamping/internal/model"
)

func TestParseTemplateEmpty(t *testing.T) {
	for _, body := range []string{"", "   ", "\n"} {
		tmpl, err := ParseTemplate(body)
		if err != nil {
			t.Errorf("ParseTemplate(%q) error: %v", body, err)
		}
		if tmpl != nil {
			t.Errorf("ParseTemplate(%q) expected nil template", body)
		}
	}
}

func TestParseTemplateInvalid(t *testing.T) {
	if _, err := ParseTemplate("{{.Owner"); err == nil {
		t.Error("expected error for unterminated action")
	}
}

func TestRender(t *testing.T) {
	item := model.Item{ID: 1, Number: 7, Title: "Add feature", HTMLURL: "https://github.com/acme/gadgets/pull/7"}
	ref := model.ItemRef{Owner: "acme", Repo: "gadgets", Kind: model.KindPullRequest, Number: 7}

	tests := []struct {
		body string
		want string
	}{
		{"Plain body, no fields.", "Plain body, no fields."},
		{"{{.Kind}} {{.Owner}}/{{.Repo}}#{{.Number}}", "PullRequest acme/gadgets#7"},
		{"{{.Title}} at {{.URL}}", "Add feature at https://github.com/acme/gadgets/pull/7"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			tmpl, err := ParseTemplate(tt.body)
			if err != nil {
				t.Fatalf("ParseTemplate() error: %v", err)
			}
			got, err := tmpl.Render(item, ref)
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnknownField(t *testing.T) {
	tmpl, err := ParseTemplate("{{.Nope}}")
	if err != nil {
		t.Fatalf("ParseTemplate() error: %v", err)
	}
	if _, err := tmpl.Render(model.Item{}, model.ItemRef{}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestNewCommentPlainBodyIsVerbatim(t *testing.T) {
	item := model.Item{Number: 3, HTMLURL: "https://github.com/acme/charts/issues/3"}
	ref := model.ItemRef{Owner: "acme", Repo: "charts", Kind: model.KindIssue, Number: 3}

	bodies := []string{
		"Thanks! Note: Helm values use {{ .Values.x }} syntax.",
		"Reply with {{ to start a block",
		"Added {{.Ref}} to the board",
		"  keeps surrounding whitespace\n",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			tmpl, err := NewComment(body, false)
			if err != nil {
				t.Fatalf("NewComment() error: %v", err)
			}
			got, err := tmpl.Render(item, ref)
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != body {
				t.Errorf("Render() = %q, want body unchanged %q", got, body)
			}
		})
	}
}

func TestNewCommentTemplated(t *testing.T) {
	ref := model.ItemRef{Owner: "acme", Repo: "charts", Kind: model.KindIssue, Number: 3}

	tmpl, err := NewComment("Added {{.Ref}}", true)
	if err != nil {
		t.Fatalf("NewComment() error: %v", err)
	}
	got, err := tmpl.Render(model.Item{}, ref)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "Added acme/charts#3" {
		t.Errorf("Render() = %q", got)
	}

	if _, err := NewComment("Reply with {{ to start a block", true); err == nil {
		t.Error("expected a parse error when templating is enabled")
	}
}

func TestNewCommentEmpty(t *testing.T) {
	for _, templated := range []bool{false, true} {
		tmpl, err := NewComment("  \n", templated)
		if err != nil || tmpl != nil {
			t.Errorf("NewComment(blank, %v) = %v, %v; want nil, nil", templated, tmpl, err)
		}
	}
}
