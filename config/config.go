package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/teamping/internal/constants"
	"github.com/spiffcs/teamping/internal/query"
)

// ErrMissingInput is returned by Validate when a required input is unset.
var ErrMissingInput = errors.New("missing required input")

// Config represents the run configuration
type Config struct {
	// Token is never read from or written to a config file.
	Token string `yaml:"-" json:"-"`

	Org                   string   `yaml:"org" json:"org"`
	Team                  string   `yaml:"team" json:"team"`
	Since                 string   `yaml:"since,omitempty" json:"since,omitempty"`
	ProjectBoard          string   `yaml:"project_board" json:"projectBoard"`
	ProjectColumn         int64    `yaml:"project_column" json:"projectColumn"`
	IgnoreTeam            string   `yaml:"ignore_team,omitempty" json:"ignoreTeam,omitempty"`
	IgnoreBot             string   `yaml:"ignore_bot,omitempty" json:"ignoreBot,omitempty"`
	IncludeReviewRequests bool     `yaml:"include_review_requests,omitempty" json:"includeReviewRequests,omitempty"`
	CommentBody           string   `yaml:"comment_body,omitempty" json:"commentBody,omitempty"`
	CommentTemplate       bool     `yaml:"comment_template,omitempty" json:"commentTemplate,omitempty"`
	IgnoreRepos           []string `yaml:"ignore_repos,omitempty" json:"ignoreRepos,omitempty"`
	IgnoreLabels          []string `yaml:"ignore_labels,omitempty" json:"ignoreLabels,omitempty"`
	IgnoreAuthors         []string `yaml:"ignore_authors,omitempty" json:"ignoreAuthors,omitempty"`
	IgnoreCommenters      []string `yaml:"ignore_commenters,omitempty" json:"ignoreCommenters,omitempty"`
}

// Input names, as declared by the action and passed through INPUT_* variables.
const (
	InputToken                 = "token"
	InputOrg                   = "org"
	InputTeam                  = "team"
	InputSince                 = "since"
	InputProjectBoard          = "project-board"
	InputProjectColumn         = "project-column"
	InputIgnoreTeam            = "ignore-team"
	InputIgnoreBot             = "ignore-bot"
	InputIncludeReviewRequests = "include-review-requests"
	InputCommentBody           = "comment-body"
	InputCommentTemplate       = "comment-template"
	InputIgnoreRepos           = "ignore-repos"
	InputIgnoreLabels          = "ignore-labels"
	InputIgnoreAuthors         = "ignore-authors"
	InputIgnoreCommenters      = "ignore-commenters"
)

// LookupFunc resolves an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// InputEnvName returns the environment variable GitHub Actions uses for an
// input: INPUT_ followed by the name upper-cased, spaces replaced by '_'.
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return constants.LocalConfigFile
}

// Default returns a Config holding only default values.
func Default() *Config {
	return &Config{
		Since: query.DefaultSince,
	}
}

// Load builds the configuration from defaults, then the config file, then
// the process environment. An empty path falls back to the local config
// file when it exists.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup.
func LoadWithEnv(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(LocalConfigPath()); err == nil {
			path = LocalConfigPath()
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}

	if cfg.Since == "" {
		cfg.Since = query.DefaultSince
	}

	return cfg, nil
}

// applyEnv overlays every INPUT_* variable that is set and non-empty.
// The token falls back to GITHUB_TOKEN.
func (c *Config) applyEnv(lookup LookupFunc) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(InputEnvName(name))
		if !ok || strings.TrimSpace(v) == "" {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := get(InputToken); ok {
		c.Token = v
	} else if v, ok := lookup("GITHUB_TOKEN"); ok && v != "" {
		c.Token = v
	}

	strs := map[string]*string{
		InputOrg:          &c.Org,
		InputTeam:         &c.Team,
		InputSince:        &c.Since,
		InputProjectBoard: &c.ProjectBoard,
		InputIgnoreTeam:   &c.IgnoreTeam,
		InputIgnoreBot:    &c.IgnoreBot,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	// The comment body keeps its whitespace.
	if v, ok := lookup(InputEnvName(InputCommentBody)); ok && strings.TrimSpace(v) != "" {
		c.CommentBody = v
	}

	if v, ok := get(InputProjectColumn); ok {
		column, err := ParseColumn(v)
		if err != nil {
			return err
		}
		c.ProjectColumn = column
	}

	if v, ok := get(InputIncludeReviewRequests); ok {
		c.IncludeReviewRequests = ParseFlag(v)
	}

	if v, ok := get(InputCommentTemplate); ok {
		c.CommentTemplate = ParseFlag(v)
	}

	lists := map[string]*[]string{
		InputIgnoreRepos:      &c.IgnoreRepos,
		InputIgnoreLabels:     &c.IgnoreLabels,
		InputIgnoreAuthors:    &c.IgnoreAuthors,
		InputIgnoreCommenters: &c.IgnoreCommenters,
	}
	for name, dst := range lists {
		if v, ok := get(name); ok {
			*dst = SplitList(v)
		}
	}

	return nil
}

// SplitList splits a comma-separated input, trimming entries and dropping
// blanks. An empty input yields nil, never a single empty entry.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseFlag interprets a boolean action input. Only "true" enables it.
func ParseFlag(s string) bool {
	return strings.TrimSpace(s) == "true"
}

// ParseColumn parses a project column id.
func ParseColumn(s string) (int64, error) {
	column, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || column <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", InputProjectColumn, s)
	}
	return column, nil
}

// Validate checks that every required input is present.
func (c *Config) Validate() error {
	var missing []string
	if c.Org == "" {
		missing = append(missing, InputOrg)
	}
	if c.Team == "" {
		missing = append(missing, InputTeam)
	}
	if c.ProjectBoard == "" {
		missing = append(missing, InputProjectBoard)
	}
	if c.ProjectColumn <= 0 {
		missing = append(missing, InputProjectColumn)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingInput, strings.Join(missing, ", "))
	}
	return nil
}

// HasToken reports whether a token was resolved.
func (c *Config) HasToken() bool {
	return c.Token != ""
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about the config file path
type ConfigPathInfo struct {
	LocalPath   string
	LocalExists bool
}

// GetConfigPaths returns path info for the local config
func GetConfigPaths() ConfigPathInfo {
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		LocalPath:   absLocalPath,
		LocalExists: localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# teamping configuration file
# Values here are overridden by INPUT_* environment variables and flags.
# The token is only read from the environment (INPUT_TOKEN or GITHUB_TOKEN).

org: my-org
team: my-team
project_board: https://github.com/orgs/my-org/projects/1
project_column: 0

# Only items created after this date are considered (YYYY-MM-DD, or relative like 90d).
since: "2020-01-01"

# Exclude members of a different team instead of the pinged one (optional)
# ignore_team: maintainers

# Also search for pull requests where the team's review was requested
# include_review_requests: true

# Comment posted on every matched item, exactly as written
# comment_body: "Thanks! This has been added to our triage board."

# Treat comment_body as a Go template with {{.Ref}}, {{.Title}}, {{.URL}}, ...
# comment_template: true

# ignore_repos:
#   - my-org/archived-repo
# ignore_labels:
#   - wontfix
# ignore_authors:
#   - dependabot[bot]
# ignore_commenters:
#   - some-bot
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
