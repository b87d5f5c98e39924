package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func envMap(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teamping.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{",", nil},
		{"a", []string{"a"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SplitList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitList(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlag(t *testing.T) {
	tests := map[string]bool{
		"true":  true,
		" true": true,
		"TRUE":  false,
		"yes":   false,
		"false": false,
		"":      false,
	}
	for in, want := range tests {
		if got := ParseFlag(in); got != want {
			t.Errorf("ParseFlag(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseColumn(t *testing.T) {
	if got, err := ParseColumn(" 123 "); err != nil || got != 123 {
		t.Errorf("ParseColumn() = %d, %v; want 123, nil", got, err)
	}
	for _, bad := range []string{"abc", "0", "-4", ""} {
		if _, err := ParseColumn(bad); err == nil {
			t.Errorf("ParseColumn(%q) expected error", bad)
		}
	}
}

func TestInputEnvName(t *testing.T) {
	tests := map[string]string{
		"token":                   "INPUT_TOKEN",
		"project-board":           "INPUT_PROJECT-BOARD",
		"include-review-requests": "INPUT_INCLUDE-REVIEW-REQUESTS",
		"with space":              "INPUT_WITH_SPACE",
	}
	for in, want := range tests {
		if got := InputEnvName(in); got != want {
			t.Errorf("InputEnvName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithEnv("", envMap(nil))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Since != "2020-01-01" {
		t.Errorf("Since = %q, want default", cfg.Since)
	}
	if cfg.IncludeReviewRequests {
		t.Error("expected review requests disabled by default")
	}
	if cfg.HasToken() {
		t.Error("expected no token")
	}
}

func TestLoadFromEnv(t *testing.T) {
	env := map[string]string{
		"INPUT_TOKEN":                   "secret",
		"INPUT_ORG":                     "acme",
		"INPUT_TEAM":                    "platform",
		"INPUT_SINCE":                   "2022-03-04",
		"INPUT_PROJECT-BOARD":           "https://github.com/orgs/acme/projects/5",
		"INPUT_PROJECT-COLUMN":          "987",
		"INPUT_IGNORE-TEAM":             "",
		"INPUT_IGNORE-BOT":              "ci-bot",
		"INPUT_INCLUDE-REVIEW-REQUESTS": "true",
		"INPUT_COMMENT-BODY":            "Thanks!\n",
		"INPUT_COMMENT-TEMPLATE":        "true",
		"INPUT_IGNORE-REPOS":            "acme/legacy, acme/old",
		"INPUT_IGNORE-LABELS":           "",
		"INPUT_IGNORE-AUTHORS":          "dependabot[bot]",
		"INPUT_IGNORE-COMMENTERS":       "",
	}

	cfg, err := LoadWithEnv("", envMap(env))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}

	want := &Config{
		Token:                 "secret",
		Org:                   "acme",
		Team:                  "platform",
		Since:                 "2022-03-04",
		ProjectBoard:          "https://github.com/orgs/acme/projects/5",
		ProjectColumn:         987,
		IgnoreBot:             "ci-bot",
		IncludeReviewRequests: true,
		CommentBody:           "Thanks!\n",
		CommentTemplate:       true,
		IgnoreRepos:           []string{"acme/legacy", "acme/old"},
		IgnoreAuthors:         []string{"dependabot[bot]"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadWithEnv() = %+v\nwant %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadTokenFallback(t *testing.T) {
	cfg, err := LoadWithEnv("", envMap(map[string]string{"GITHUB_TOKEN": "fallback"}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Token != "fallback" {
		t.Errorf("Token = %q, want fallback", cfg.Token)
	}

	cfg, err = LoadWithEnv("", envMap(map[string]string{"GITHUB_TOKEN": "fallback", "INPUT_TOKEN": "input"}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Token != "input" {
		t.Errorf("Token = %q, want input", cfg.Token)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `org: acme
team: platform
since: "2021-01-01"
project_board: https://github.com/acme/widgets/projects/2
project_column: 11
ignore_labels:
  - wontfix
  - needs triage
`)

	cfg, err := LoadWithEnv(path, envMap(map[string]string{"INPUT_TEAM": "infra"}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}

	if cfg.Org != "acme" {
		t.Errorf("Org = %q, want acme", cfg.Org)
	}
	if cfg.Team != "infra" {
		t.Errorf("Team = %q, want env override infra", cfg.Team)
	}
	if cfg.Since != "2021-01-01" {
		t.Errorf("Since = %q, want 2021-01-01", cfg.Since)
	}
	if cfg.ProjectColumn != 11 {
		t.Errorf("ProjectColumn = %d, want 11", cfg.ProjectColumn)
	}
	if !reflect.DeepEqual(cfg.IgnoreLabels, []string{"wontfix", "needs triage"}) {
		t.Errorf("IgnoreLabels = %v", cfg.IgnoreLabels)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil)); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeFile(t, "org: [unterminated")
		if _, err := LoadWithEnv(path, envMap(nil)); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})

	t.Run("invalid column", func(t *testing.T) {
		_, err := LoadWithEnv("", envMap(map[string]string{"INPUT_PROJECT-COLUMN": "first"}))
		if err == nil {
			t.Error("expected error for invalid column")
		}
	})
}

func TestValidate(t *testing.T) {
	err := (&Config{Org: "acme"}).Validate()
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	for _, name := range []string{"team", "project-board", "project-column"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected %q in %v", name, err)
		}
	}
	if strings.Contains(err.Error(), "org,") {
		t.Errorf("did not expect org to be reported missing: %v", err)
	}
}

func TestToYAMLOmitsToken(t *testing.T) {
	cfg := &Config{Token: "secret", Org: "acme"}
	out, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error: %v", err)
	}
	if strings.Contains(out, "secret") {
		t.Error("token must never be serialized")
	}
	if !strings.Contains(out, "org: acme") {
		t.Errorf("expected org in %q", out)
	}
}

func TestMinimalConfigParses(t *testing.T) {
	path := writeFile(t, MinimalConfig())
	cfg, err := LoadWithEnv(path, envMap(nil))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Org != "my-org" {
		t.Errorf("Org = %q, want my-org", cfg.Org)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "teamping.yaml")
	if err := SaveTo(path, "org: acme\n"); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "org: acme\n" {
		t.Errorf("unexpected content %q", data)
	}
}
