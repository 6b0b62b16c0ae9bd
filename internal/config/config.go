package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ResearchDigest/internal/domain"
)

const (
	configPathEnv    = "RESEARCH_DIGEST_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	groqAPIKeyEnv    = "GROQ_API_KEY"
	groqModelEnv     = "GROQ_MODEL"
	smtpFromEnv      = "SMTP_FROM"
	smtpPasswordEnv  = "SMTP_PASSWORD"
	recipientsEnv    = "DIGEST_RECIPIENTS"
	recipientsPrefix = "DIGEST_RECIPIENTS_"

	defaultGroupName = "digest"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig   `yaml:"database"`
	Feeds         []string         `yaml:"feeds"`
	LookbackHours int              `yaml:"lookbackHours"`
	Topics        []string         `yaml:"topics"`
	Groups        []GroupConfig    `yaml:"groups"`
	RetentionDays int              `yaml:"retentionDays"`
	Enrichment    EnrichmentConfig `yaml:"enrichment"`
	Sentiment     SentimentConfig  `yaml:"sentiment"`
	LLM           LLMConfig        `yaml:"llm"`
	SMTP          SMTPConfig       `yaml:"smtp"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// DatabaseConfig describes Postgres connection details for the seen cache.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GroupConfig describes one named recipient group and its topics.
type GroupConfig struct {
	Name   string   `yaml:"name"`
	Topics []string `yaml:"topics"`
}

// EnrichmentConfig toggles full-text augmentation of relevant items.
type EnrichmentConfig struct {
	Enabled        bool `yaml:"enabled"`
	MaxChars       int  `yaml:"maxChars"`
	TimeoutSeconds int  `yaml:"timeoutSeconds"`
}

// Timeout converts the configured seconds into a duration.
func (e EnrichmentConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// SentimentConfig toggles the sentiment classification pass.
type SentimentConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LLMConfig defines how to contact the completion API.
type LLMConfig struct {
	BaseURL           string `yaml:"baseUrl"`
	Model             string `yaml:"model"`
	APIKey            string `yaml:"apiKey"`
	BatchDelaySeconds int    `yaml:"batchDelaySeconds"`
}

// BatchDelay is the mandatory pause between oracle batches.
func (l LLMConfig) BatchDelay() time.Duration {
	return time.Duration(l.BatchDelaySeconds) * time.Second
}

// SMTPConfig wires all data required to send digest mail.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Password string `yaml:"password"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if merged, err := mergeYAML(cfg, raw); err != nil {
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = merged
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate reports configuration states the pipeline cannot start from.
func (c Config) Validate() error {
	if len(c.Feeds) == 0 {
		return errors.New("config: no feeds configured")
	}
	if len(c.Topics) == 0 && len(c.Groups) == 0 {
		return errors.New("config: neither topics nor groups configured")
	}
	if c.Database.DSN == "" {
		return errors.New("config: database dsn is required")
	}
	return nil
}

// ResolveGroups turns the configured group list (or the flat topic list,
// treated as a single implicit group) into recipient groups. Addresses come
// from lookup, keyed by DIGEST_RECIPIENTS_<NORMALIZED NAME> with a fallback
// to the plain DIGEST_RECIPIENTS key. A group may resolve with zero
// recipients; the orchestrator skips those.
func (c Config) ResolveGroups(lookup func(string) string) []domain.RecipientGroup {
	defs := c.Groups
	if len(defs) == 0 {
		defs = []GroupConfig{{Name: defaultGroupName, Topics: c.Topics}}
	}

	groups := make([]domain.RecipientGroup, 0, len(defs))
	for _, def := range defs {
		raw := lookup(recipientsPrefix + NormalizeGroupKey(def.Name))
		if raw == "" {
			raw = lookup(recipientsEnv)
		}
		groups = append(groups, domain.RecipientGroup{
			Name:       def.Name,
			Recipients: SplitRecipients(raw),
			Topics:     def.Topics,
		})
	}
	return groups
}

// NormalizeGroupKey maps a group name onto an env-var-safe key fragment.
func NormalizeGroupKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SplitRecipients parses a delimiter-separated address string, splitting on
// commas or semicolons and trimming whitespace. Empty segments are dropped.
func SplitRecipients(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})

	recipients := make([]string, 0, len(fields))
	for _, field := range fields {
		if addr := strings.TrimSpace(field); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	return recipients
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(groqAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(groqModelEnv); v != "" {
		c.LLM.Model = v
	}

	if v := os.Getenv(smtpFromEnv); v != "" {
		c.SMTP.From = v
	}

	if v := os.Getenv(smtpPasswordEnv); v != "" {
		c.SMTP.Password = v
	}
}

// fileToggles shadows the boolean toggles with pointers. A plain bool
// cannot distinguish an explicit false in the file from the field being
// absent, so the toggles are decoded separately for presence.
type fileToggles struct {
	Enrichment struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"enrichment"`
	Sentiment struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"sentiment"`
}

// mergeYAML overlays the file settings onto base. Toggles present in the
// file win over the defaults even when set to false.
func mergeYAML(base Config, raw []byte) (Config, error) {
	var override Config
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return base, err
	}
	var toggles fileToggles
	if err := yaml.Unmarshal(raw, &toggles); err != nil {
		return base, err
	}

	merged := mergeConfig(base, override)
	if v := toggles.Enrichment.Enabled; v != nil {
		merged.Enrichment.Enabled = *v
	}
	if v := toggles.Sentiment.Enabled; v != nil {
		merged.Sentiment.Enabled = *v
	}
	return merged, nil
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if len(override.Feeds) > 0 {
		base.Feeds = override.Feeds
	}
	if override.LookbackHours > 0 {
		base.LookbackHours = override.LookbackHours
	}
	if len(override.Topics) > 0 {
		base.Topics = override.Topics
	}
	if len(override.Groups) > 0 {
		base.Groups = override.Groups
	}
	if override.RetentionDays > 0 {
		base.RetentionDays = override.RetentionDays
	}

	if override.Enrichment.MaxChars > 0 {
		base.Enrichment.MaxChars = override.Enrichment.MaxChars
	}
	if override.Enrichment.TimeoutSeconds > 0 {
		base.Enrichment.TimeoutSeconds = override.Enrichment.TimeoutSeconds
	}

	if override.LLM.BaseURL != "" {
		base.LLM.BaseURL = override.LLM.BaseURL
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.BatchDelaySeconds > 0 {
		base.LLM.BatchDelaySeconds = override.LLM.BatchDelaySeconds
	}

	if override.SMTP.Host != "" {
		base.SMTP.Host = override.SMTP.Host
	}
	if override.SMTP.Port > 0 {
		base.SMTP.Port = override.SMTP.Port
	}
	if override.SMTP.From != "" {
		base.SMTP.From = override.SMTP.From
	}
	if override.SMTP.Password != "" {
		base.SMTP.Password = override.SMTP.Password
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database:      DatabaseConfig{DSN: ""},
		Feeds:         nil,
		LookbackHours: 24,
		RetentionDays: 7,
		Enrichment: EnrichmentConfig{
			Enabled:        false,
			MaxChars:       2000,
			TimeoutSeconds: 10,
		},
		Sentiment: SentimentConfig{Enabled: true},
		LLM: LLMConfig{
			BaseURL:           "https://api.groq.com/openai/v1",
			Model:             "llama-3.3-70b-versatile",
			APIKey:            "",
			BatchDelaySeconds: 1,
		},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}
