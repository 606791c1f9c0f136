package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
type Config struct {
	Bot         BotConfig         `yaml:"bot"`
	Content     ContentConfig     `yaml:"content"`
	Replies     RepliesConfig     `yaml:"replies"`
	Credentials CredentialsConfig `yaml:"credentials"`
	API         APIConfig         `yaml:"api"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type BotConfig struct {
	Username          string `yaml:"username"`
	PostIntervalHours int    `yaml:"postIntervalHours"`
	MaxPostsPerDay    int    `yaml:"maxPostsPerDay"`
	// Quiet hours (UTC) during which scheduled posts are skipped
	QuietHours  []int `yaml:"quietHours"`
	PostOnStart bool  `yaml:"postOnStart"`
}

type ContentConfig struct {
	EnableAI         bool     `yaml:"enableAI"`
	EnableAgentropic bool     `yaml:"enableAgentropic"`
	EnableCrypto     bool     `yaml:"enableCrypto"`
	EnableMeme       bool     `yaml:"enableMeme"`
	BlockedTerms     []string `yaml:"blockedTerms"`
}

type RepliesConfig struct {
	Enabled             bool `yaml:"enabled"`
	PollIntervalSeconds int  `yaml:"pollIntervalSeconds"`
	// Pre-resolved account id; looked up from Bot.Username when empty
	AccountID string `yaml:"accountID"`
	// "before" or "after": when the mention cursor moves past a batch
	CursorPolicy string `yaml:"cursorPolicy"`
}

type CredentialsConfig struct {
	// If empty, read from env TWITTER_CONSUMER_KEY etc.
	ConsumerKey       string `yaml:"consumerKey"`
	ConsumerSecret    string `yaml:"consumerSecret"`
	AccessToken       string `yaml:"accessToken"`
	AccessTokenSecret string `yaml:"accessTokenSecret"`
}

type APIConfig struct {
	BaseURL        string  `yaml:"baseURL"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
	RPS            float64 `yaml:"rps"`
	Burst          int     `yaml:"burst"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// Optional JSON log file, written in addition to stdout
	File string `yaml:"file"`
}

// ConfigError is an invalid or missing setting; it is fatal at startup.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config %s: %s", e.Field, e.Msg) }

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Bot:     BotConfig{Username: "agentropic", PostIntervalHours: 6, MaxPostsPerDay: 4, PostOnStart: true},
		Content: ContentConfig{EnableAI: true, EnableAgentropic: true, EnableCrypto: true, EnableMeme: true},
		Replies: RepliesConfig{Enabled: false, PollIntervalSeconds: 300, CursorPolicy: "before"},
		API:     APIConfig{BaseURL: "https://api.x.com/2", TimeoutSeconds: 15, RPS: 1, Burst: 5},
		Logging: LoggingConfig{Level: "info"},
	}
}

// ResolveEnv overrides config fields from environment variables that are set.
func (c *Config) ResolveEnv() error {
	setString(&c.Bot.Username, "BOT_USERNAME")
	setString(&c.Replies.AccountID, "BOT_USER_ID")
	setString(&c.Replies.CursorPolicy, "MENTION_CURSOR_POLICY")
	setString(&c.Credentials.ConsumerKey, "TWITTER_CONSUMER_KEY")
	setString(&c.Credentials.ConsumerSecret, "TWITTER_CONSUMER_SECRET")
	setString(&c.Credentials.AccessToken, "TWITTER_ACCESS_TOKEN")
	setString(&c.Credentials.AccessTokenSecret, "TWITTER_ACCESS_TOKEN_SECRET")
	setString(&c.API.BaseURL, "X_API_BASE_URL")
	setString(&c.Metrics.Addr, "METRICS_ADDR")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setString(&c.Logging.File, "LOG_FILE")
	setBool(&c.Content.EnableAI, "ENABLE_AI_CONTENT")
	setBool(&c.Content.EnableAgentropic, "ENABLE_AGENTROPIC_CONTENT")
	setBool(&c.Content.EnableCrypto, "ENABLE_CRYPTO_CONTENT")
	setBool(&c.Content.EnableMeme, "ENABLE_MEME_CONTENT")
	setBool(&c.Replies.Enabled, "ENABLE_REPLIES")
	setBool(&c.Bot.PostOnStart, "POST_ON_START")
	return errors.Join(
		setInt(&c.Bot.PostIntervalHours, "POST_INTERVAL_HOURS"),
		setInt(&c.Bot.MaxPostsPerDay, "MAX_POSTS_PER_DAY"),
		setInt(&c.Replies.PollIntervalSeconds, "MENTION_POLL_SECONDS"),
		setInt(&c.API.Burst, "X_API_BURST"),
		setFloat(&c.API.RPS, "X_API_RPS"),
	)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = strings.EqualFold(strings.TrimSpace(v), "true")
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return &ConfigError{Field: key, Msg: fmt.Sprintf("not an integer: %q", v)}
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return &ConfigError{Field: key, Msg: fmt.Sprintf("not a number: %q", v)}
	}
	*dst = f
	return nil
}

// Validate checks the settings the bot cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.Bot.PostIntervalHours <= 0 {
		errs = append(errs, &ConfigError{Field: "POST_INTERVAL_HOURS", Msg: "must be greater than 0"})
	}
	if c.Bot.MaxPostsPerDay <= 0 {
		errs = append(errs, &ConfigError{Field: "MAX_POSTS_PER_DAY", Msg: "must be greater than 0"})
	}
	if len(c.Categories()) == 0 {
		errs = append(errs, &ConfigError{Field: "content", Msg: "at least one content type must be enabled"})
	}
	for _, h := range c.Bot.QuietHours {
		if h < 0 || h > 23 {
			errs = append(errs, &ConfigError{Field: "bot.quietHours", Msg: fmt.Sprintf("hour %d out of range", h)})
		}
	}
	creds := map[string]string{
		"TWITTER_CONSUMER_KEY":        c.Credentials.ConsumerKey,
		"TWITTER_CONSUMER_SECRET":     c.Credentials.ConsumerSecret,
		"TWITTER_ACCESS_TOKEN":        c.Credentials.AccessToken,
		"TWITTER_ACCESS_TOKEN_SECRET": c.Credentials.AccessTokenSecret,
	}
	for _, key := range []string{"TWITTER_CONSUMER_KEY", "TWITTER_CONSUMER_SECRET", "TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_TOKEN_SECRET"} {
		if strings.TrimSpace(creds[key]) == "" {
			errs = append(errs, &ConfigError{Field: key, Msg: "not set"})
		}
	}
	if c.Replies.Enabled {
		if c.Replies.PollIntervalSeconds <= 0 {
			errs = append(errs, &ConfigError{Field: "MENTION_POLL_SECONDS", Msg: "must be greater than 0"})
		}
		if c.Replies.AccountID == "" && c.Bot.Username == "" {
			errs = append(errs, &ConfigError{Field: "BOT_USERNAME", Msg: "needed to resolve the account id"})
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Replies.CursorPolicy)) {
	case "", "before", "after":
	default:
		errs = append(errs, &ConfigError{Field: "MENTION_CURSOR_POLICY", Msg: fmt.Sprintf("unknown policy %q", c.Replies.CursorPolicy)})
	}
	return errors.Join(errs...)
}

// Categories lists the enabled content categories by name, in selection order.
func (c Config) Categories() []string {
	var out []string
	if c.Content.EnableAI {
		out = append(out, "ai")
	}
	if c.Content.EnableAgentropic {
		out = append(out, "agentropic")
	}
	if c.Content.EnableCrypto {
		out = append(out, "crypto")
	}
	if c.Content.EnableMeme {
		out = append(out, "meme")
	}
	return out
}

// CronExpression renders the post interval in six-field cron syntax.
func (c Config) CronExpression() string {
	return fmt.Sprintf("0 0 */%d * * *", c.Bot.PostIntervalHours)
}

// Load reads an optional .env file and YAML config from path, then applies
// environment overrides. A missing file at path falls back to Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	if err := cfg.ResolveEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
