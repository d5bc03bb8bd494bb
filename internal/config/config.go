package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	domainErrors "github.com/thomas-vilte/zendesk-sync/internal/errors"
	"github.com/thomas-vilte/zendesk-sync/internal/mapping"
	"github.com/thomas-vilte/zendesk-sync/internal/models"
)

// InputSource reads a named action input. *githubactions.Action satisfies it.
type InputSource interface {
	GetInput(name string) string
}

type (
	Config struct {
		GitHubToken  string `mapstructure:"token"`
		GitHubAPIURL string `mapstructure:"github_api_url"`

		Zendesk ZendeskConfig `mapstructure:",squash"`
		Audit   AuditConfig   `mapstructure:",squash"`

		// IssueNumber overrides the issue from the event payload.
		IssueNumber string `mapstructure:"issue_number"`
		Language    string `mapstructure:"language"`

		// Status tables are YAML text so that label names keep their case.
		LabelStatusesYAML  string `mapstructure:"label_statuses"`
		ColumnStatusesYAML string `mapstructure:"column_statuses"`

		LabelStatuses  mapping.LabelTable  `mapstructure:"-"`
		ColumnStatuses mapping.ColumnTable `mapstructure:"-"`
	}

	ZendeskConfig struct {
		BaseURL           string `mapstructure:"zendesk_base_url"`
		Email             string `mapstructure:"zendesk_email"`
		Token             string `mapstructure:"zendesk_token"`
		CaseStatusFieldID int64  `mapstructure:"case_status_field_id"`
		// FollowerID is added as a ticket follower; 0 disables followers.
		FollowerID int64 `mapstructure:"follower_id"`
	}

	AuditConfig struct {
		URL          string `mapstructure:"audit_log_url"`
		RefreshToken string `mapstructure:"audit_refresh_token"`
	}
)

// Inputs lists the action inputs, in action.yml spelling.
var Inputs = []string{
	"token",
	"zendesk-base-url",
	"zendesk-email",
	"zendesk-token",
	"case-status-field-id",
	"follower-id",
	"audit-log-url",
	"audit-refresh-token",
	"issue-number",
	"label-statuses",
	"column-statuses",
	"language",
}

const defaultLang = "en"

// Load layers defaults, the optional YAML file at path and the action inputs,
// in that order of precedence.
func Load(inputs InputSource, path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("github_api_url", "")
	for _, name := range Inputs {
		v.SetDefault(keyFor(name), "")
	}
	v.SetDefault("language", defaultLang)
	if err := v.BindEnv("github_api_url", "GITHUB_API_URL"); err != nil {
		return nil, fmt.Errorf("error binding GITHUB_API_URL: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
	}

	if inputs != nil {
		for _, name := range Inputs {
			if val := inputs.GetInput(name); val != "" {
				v.Set(keyFor(name), val)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeConfiguration, "configuration could not be decoded", err).
			WithSuggestion("case-status-field-id and follower-id must be numbers")
	}

	if err := cfg.buildTables(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func keyFor(input string) string {
	return strings.ReplaceAll(input, "-", "_")
}

func (c *Config) buildTables() error {
	labels := mapping.DefaultLabelStatuses()
	if c.LabelStatusesYAML != "" {
		parsed, err := mapping.ParseStatusTable[string](c.LabelStatusesYAML)
		if err != nil {
			return fmt.Errorf("label-statuses: %w", err)
		}
		labels = parsed
	}

	columns := map[int64]models.CaseStatus{}
	if c.ColumnStatusesYAML != "" {
		parsed, err := mapping.ParseStatusTable[int64](c.ColumnStatusesYAML)
		if err != nil {
			return fmt.Errorf("column-statuses: %w", err)
		}
		columns = parsed
	}

	var err error
	if c.LabelStatuses, err = mapping.NewStatusTable(labels); err != nil {
		return fmt.Errorf("label-statuses: %w", err)
	}
	if c.ColumnStatuses, err = mapping.NewStatusTable(columns); err != nil {
		return fmt.Errorf("column-statuses: %w", err)
	}
	return nil
}

// Validate checks the values a run cannot do without.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return domainErrors.ErrGitHubTokenMissing
	}
	if c.Zendesk.BaseURL == "" {
		return domainErrors.ErrZendeskURLMissing
	}
	if c.Zendesk.Token == "" {
		return domainErrors.ErrZendeskTokenMissing
	}
	if c.Zendesk.CaseStatusFieldID <= 0 {
		return domainErrors.ErrFieldIDMissing
	}
	return nil
}

// AuditEnabled reports whether both audit log settings are present.
func (c *Config) AuditEnabled() bool {
	return c.Audit.URL != "" && c.Audit.RefreshToken != ""
}

// Secrets returns the configured credentials so they can be masked in logs.
func (c *Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.GitHubToken, c.Zendesk.Token, c.Audit.RefreshToken} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
