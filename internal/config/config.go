package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the folio API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Docstore   DocstoreConfig   `yaml:"docstore"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Mail       MailConfig       `yaml:"mail"`
	LLM        LLMConfig        `yaml:"llm"`
	Auth       AuthConfig       `yaml:"auth"`
	Site       SiteConfig       `yaml:"site"`
	Blog       BlogConfig       `yaml:"blog"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
	Forms      FormsConfig      `yaml:"forms"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DocstoreConfig holds document store connection settings.
type DocstoreConfig struct {
	ProjectID   string `yaml:"project_id"`
	Database    string `yaml:"database"`
	APIKey      string `yaml:"api_key"`
	AccessToken string `yaml:"access_token"`
	BaseURL     string `yaml:"base_url"`
	TimeoutSec  int    `yaml:"timeout_sec"` // 0 = no client timeout
}

// RateLimitConfig selects and tunes the form rate limiter.
type RateLimitConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis (default: memory)
	MaxRequests      int      `yaml:"max_requests"`
	WindowSec        int      `yaml:"window_sec"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// MailConfig holds outbound email settings.
type MailConfig struct {
	Provider    string `yaml:"provider"` // log, brevo (default: log)
	APIKey      string `yaml:"api_key"`
	SenderName  string `yaml:"sender_name"`
	SenderEmail string `yaml:"sender_email"`
	AdminEmail  string `yaml:"admin_email"` // contact form notifications
	TimeoutSec  int    `yaml:"timeout_sec"`
}

// LLMConfig holds the OpenAI-compatible provider settings.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// SiteConfig is used in email links and layouts.
type SiteConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// BlogConfig holds listing and notification settings.
type BlogConfig struct {
	DefaultPageSize   int  `yaml:"default_page_size"`
	MaxPageSize       int  `yaml:"max_page_size"`
	NotifySubscribers bool `yaml:"notify_subscribers"`
	NotifyDelayMs     int  `yaml:"notify_delay_ms"`
}

// NewsletterConfig holds broadcast settings.
type NewsletterConfig struct {
	SendDelayMs int `yaml:"send_delay_ms"`
}

// FormsConfig holds the bot heuristics for public forms.
type FormsConfig struct {
	MinSubmitMs int `yaml:"min_submit_ms"` // forms filled faster than this are soft-accepted
}

// TracingConfig selects the OTLP/HTTP collector. Empty endpoint disables export.
type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// Variables from config/envs/.env.<env> are loaded first when the file exists;
// they never override variables already set in the process environment.
func Load(env string) (Config, error) {
	if err := LoadEnvFile(env); err != nil {
		return Config{}, err
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads config/envs/.env.<env> into the process environment.
// A missing file is not an error.
func LoadEnvFile(env string) error {
	path := filepath.Join("config", "envs", ".env."+env)
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// newsletter broadcasts answer only after the last send
		c.HTTP.WriteTimeoutSec = 300
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.RateLimit.Driver == "" {
		c.RateLimit.Driver = "memory"
	}
	if c.RateLimit.MaxRequests <= 0 {
		c.RateLimit.MaxRequests = 5
	}
	if c.RateLimit.WindowSec <= 0 {
		c.RateLimit.WindowSec = 15 * 60
	}
	if c.RateLimit.KeyPrefix == "" {
		c.RateLimit.KeyPrefix = "folio:"
	}
	if c.RateLimit.ReadinessTimeout <= 0 {
		c.RateLimit.ReadinessTimeout = 10
	}
	if c.Mail.Provider == "" {
		c.Mail.Provider = "log"
	}
	if c.Site.Name == "" {
		c.Site.Name = "folio"
	}
	if c.Mail.SenderName == "" {
		c.Mail.SenderName = c.Site.Name
	}
	if c.Blog.DefaultPageSize <= 0 {
		c.Blog.DefaultPageSize = 10
	}
	if c.Blog.MaxPageSize <= 0 {
		c.Blog.MaxPageSize = 100
	}
	if c.Newsletter.SendDelayMs <= 0 {
		c.Newsletter.SendDelayMs = 100
	}
	if c.Forms.MinSubmitMs <= 0 {
		c.Forms.MinSubmitMs = 3000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Docstore.ProjectID == "" {
		return fmt.Errorf("docstore.project_id is required")
	}
	if c.Docstore.TimeoutSec < 0 {
		return fmt.Errorf("docstore.timeout_sec must not be negative, got %d", c.Docstore.TimeoutSec)
	}
	switch c.RateLimit.Driver {
	case "memory":
	case "redis":
		if len(c.RateLimit.Addrs) == 0 {
			return fmt.Errorf("rate_limit.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("rate_limit.driver must be \"memory\" or \"redis\", got %q", c.RateLimit.Driver)
	}
	switch c.Mail.Provider {
	case "log":
	case "brevo":
		if c.Mail.APIKey == "" {
			return fmt.Errorf("mail.api_key is required for the brevo provider")
		}
		if c.Mail.SenderEmail == "" {
			return fmt.Errorf("mail.sender_email is required for the brevo provider")
		}
	default:
		return fmt.Errorf("mail.provider must be \"log\" or \"brevo\", got %q", c.Mail.Provider)
	}
	if c.Blog.DefaultPageSize > c.Blog.MaxPageSize {
		return fmt.Errorf("blog.default_page_size (%d) exceeds blog.max_page_size (%d)",
			c.Blog.DefaultPageSize, c.Blog.MaxPageSize)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
