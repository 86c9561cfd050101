package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Docstore: DocstoreConfig{ProjectID: "portfolio-123"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 },
			"http.port must be between 1 and 65535, got 0"},
		{"missing project", func(c *Config) { c.Docstore.ProjectID = "" },
			"docstore.project_id is required"},
		{"negative timeout", func(c *Config) { c.Docstore.TimeoutSec = -1 },
			"docstore.timeout_sec must not be negative, got -1"},
		{"unknown limiter", func(c *Config) { c.RateLimit.Driver = "valkey" },
			`rate_limit.driver must be "memory" or "redis", got "valkey"`},
		{"redis without addrs", func(c *Config) { c.RateLimit.Driver = "redis" },
			"rate_limit.addrs is required for the redis driver"},
		{"unknown mailer", func(c *Config) { c.Mail.Provider = "smtp" },
			`mail.provider must be "log" or "brevo", got "smtp"`},
		{"brevo without key", func(c *Config) { c.Mail.Provider = "brevo"; c.Mail.SenderEmail = "a@b.co" },
			"mail.api_key is required for the brevo provider"},
		{"brevo without sender", func(c *Config) { c.Mail.Provider = "brevo"; c.Mail.APIKey = "k" },
			"mail.sender_email is required for the brevo provider"},
		{"page sizes", func(c *Config) { c.Blog.DefaultPageSize = 500 },
			"blog.default_page_size (500) exceeds blog.max_page_size (100)"},
		{"sample ratio", func(c *Config) { c.Tracing.SampleRatio = 2 },
			"tracing.sample_ratio must be between 0 and 1, got 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidate_RedisWithAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Driver = "redis"
	cfg.RateLimit.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 300 {
		t.Errorf("expected WriteTimeoutSec=300, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.RateLimit.Driver != "memory" || cfg.RateLimit.MaxRequests != 5 || cfg.RateLimit.WindowSec != 900 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.Mail.Provider != "log" {
		t.Errorf("expected mail provider log, got %q", cfg.Mail.Provider)
	}
	if cfg.Mail.SenderName != "folio" {
		t.Errorf("expected sender name to follow site name, got %q", cfg.Mail.SenderName)
	}
	if cfg.Blog.DefaultPageSize != 10 || cfg.Blog.MaxPageSize != 100 {
		t.Errorf("unexpected blog defaults: %+v", cfg.Blog)
	}
	if cfg.Newsletter.SendDelayMs != 100 {
		t.Errorf("expected SendDelayMs=100, got %d", cfg.Newsletter.SendDelayMs)
	}
	if cfg.Forms.MinSubmitMs != 3000 {
		t.Errorf("expected MinSubmitMs=3000, got %d", cfg.Forms.MinSubmitMs)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		RateLimit: RateLimitConfig{Driver: "redis", MaxRequests: 10, KeyPrefix: "custom:"},
		Site:      SiteConfig{Name: "Jane Doe"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.RateLimit.MaxRequests != 10 || cfg.RateLimit.KeyPrefix != "custom:" {
		t.Errorf("rate limit overridden: %+v", cfg.RateLimit)
	}
	if cfg.Mail.SenderName != "Jane Doe" {
		t.Errorf("expected sender name from site, got %q", cfg.Mail.SenderName)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FOLIO_TEST_SET", "value")
	got := string(expandEnvVars([]byte("a: ${FOLIO_TEST_SET}\nb: ${FOLIO_TEST_UNSET:-fallback}\nc: ${FOLIO_TEST_UNSET}")))
	want := "a: value\nb: fallback\nc: "
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoad_WithEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv("FOLIO_TEST_PROJECT") })

	writeFile(t, filepath.Join(dir, "config", "envs", ".env.cfgtest"), "FOLIO_TEST_PROJECT=from-dotenv\n")
	writeFile(t, filepath.Join(dir, "config", "cfgtest.yaml"), `
http:
  port: 9090
docstore:
  project_id: ${FOLIO_TEST_PROJECT}
  timeout_sec: ${FOLIO_TEST_TIMEOUT:-7}
auth:
  api_keys: ["k1"]
`)

	cfg, err := Load("cfgtest")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Docstore.ProjectID != "from-dotenv" {
		t.Errorf("project = %q", cfg.Docstore.ProjectID)
	}
	if cfg.Docstore.TimeoutSec != 7 {
		t.Errorf("timeout = %d", cfg.Docstore.TimeoutSec)
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "k1" {
		t.Errorf("api keys = %v", cfg.Auth.APIKeys)
	}
}

func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("FOLIO_TEST_PROJECT2", "from-process")

	writeFile(t, filepath.Join(dir, "config", "envs", ".env.cfgtest2"), "FOLIO_TEST_PROJECT2=from-dotenv\n")
	writeFile(t, filepath.Join(dir, "config", "cfgtest2.yaml"), "http:\n  port: 8080\ndocstore:\n  project_id: ${FOLIO_TEST_PROJECT2}\n")

	cfg, err := Load("cfgtest2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Docstore.ProjectID != "from-process" {
		t.Errorf("project = %q", cfg.Docstore.ProjectID)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "config", "cfgbad.yaml"), "http:\n  port: 8080\n")
	if _, err := Load("cfgbad"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("got %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("got %q, want prod", got)
	}
}
