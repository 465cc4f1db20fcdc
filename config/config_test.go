package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeTempConfig writes content to a config file in a temp dir and returns
// its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"KRAKEN_API_KEY", "KRAKEN_API_SECRET", "KRAKEN_HOST", "AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", appEnvVar} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	path := writeTempConfig(t, `app:
  name: "TestApp"
kraken:
  host: "api.example.com"
  timeout: 5s
  param_headers: false
logging:
  level: debug
  format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.App.Name != "TestApp" {
		t.Errorf("unexpected name: %s", cfg.App.Name)
	}
	if cfg.Kraken.Host != "api.example.com" {
		t.Errorf("unexpected host: %s", cfg.Kraken.Host)
	}
	if cfg.Kraken.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.Kraken.Timeout)
	}
	if cfg.Kraken.SendParamHeaders() {
		t.Error("expected param headers to be disabled")
	}
	// untouched fields keep their defaults
	if cfg.Kraken.Scheme != "https" || cfg.Kraken.Version != "0" {
		t.Errorf("defaults lost: scheme=%s version=%s", cfg.Kraken.Scheme, cfg.Kraken.Version)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected output: %s", cfg.Logging.Output)
	}
	if cfg.HasCredentials() {
		t.Error("expected no credentials")
	}
}

func TestParamHeadersDefaultOn(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(writeTempConfig(t, "app:\n  name: x\n"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Kraken.SendParamHeaders() {
		t.Error("expected param headers by default")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KRAKEN_API_KEY", " key ")
	t.Setenv("KRAKEN_API_SECRET", "c2VjcmV0")
	t.Setenv("KRAKEN_HOST", "sandbox.example.com")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := LoadConfig(writeTempConfig(t, `metrics:
  cloudwatch:
    enabled: true
`))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Kraken.APIKey != "key" {
		t.Errorf("api key not trimmed: %q", cfg.Kraken.APIKey)
	}
	if !cfg.HasCredentials() {
		t.Error("expected credentials from environment")
	}
	if cfg.Kraken.Host != "sandbox.example.com" {
		t.Errorf("host override ignored: %s", cfg.Kraken.Host)
	}
	if cfg.Metrics.CloudWatch.Region != "eu-west-1" {
		t.Errorf("region override ignored: %s", cfg.Metrics.CloudWatch.Region)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	cases := map[string]string{
		"scheme":          "kraken:\n  scheme: ftp\n",
		"host path":       "kraken:\n  host: api.kraken.com/0\n",
		"empty version":   "kraken:\n  version: \"\"\n",
		"half creds":      "kraken:\n  api_key: abc\n",
		"negative":        "kraken:\n  timeout: -1s\n",
		"max age":         "logging:\n  max_age: -2\n",
		"cw no region":    "metrics:\n  cloudwatch:\n    enabled: true\n",
		"cw half creds":   "metrics:\n  cloudwatch:\n    enabled: true\n    region: us-east-1\n    access_key_id: AKIA\n",
		"cw no namespace": "metrics:\n  cloudwatch:\n    enabled: true\n    region: us-east-1\n    namespace: \"\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadConfig(writeTempConfig(t, content))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	_, err := LoadConfig(writeTempConfig(t, "kraken: [unclosed"))
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("KRAKEN_HOST", "override.example.com")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Kraken.Host != "override.example.com" {
		t.Errorf("unexpected host: %s", cfg.Kraken.Host)
	}
	if cfg.Kraken.Timeout != 0 {
		t.Errorf("default timeout should defer to the transport, got %s", cfg.Kraken.Timeout)
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if err := os.MkdirAll("config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("config", "config.production.yml"), []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(appEnvVar, "prod")
	if got := ResolvePath(""); got != "config/config.production.yml" {
		t.Errorf("ResolvePath(\"\") = %s", got)
	}
	if got := ResolvePath("custom.yml"); got != "custom.yml" {
		t.Errorf("explicit path replaced: %s", got)
	}

	t.Setenv(appEnvVar, "staging")
	if got := ResolvePath(DefaultPath); got != DefaultPath {
		t.Errorf("missing env file should keep default, got %s", got)
	}
}

func TestAppEnvironment(t *testing.T) {
	cases := map[string]string{
		"":           EnvironmentDevelopment,
		" PROD ":     EnvironmentProduction,
		"stage":      EnvironmentStaging,
		"qa":         "qa",
		"production": EnvironmentProduction,
	}
	for in, want := range cases {
		t.Setenv(appEnvVar, in)
		if got := AppEnvironment(); got != want {
			t.Errorf("AppEnvironment(%q) = %s, want %s", in, got, want)
		}
	}
	if !IsProductionLike(EnvironmentStaging) || IsProductionLike(EnvironmentDevelopment) {
		t.Error("IsProductionLike mismatch")
	}
}
