package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Kraken  KrakenConfig  `yaml:"kraken"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type KrakenConfig struct {
	Scheme       string        `yaml:"scheme"`
	Host         string        `yaml:"host"`
	Version      string        `yaml:"version"`
	APIKey       string        `yaml:"api_key"`
	APISecret    string        `yaml:"api_secret"`
	UserAgent    string        `yaml:"user_agent"`
	// Timeout bounds each HTTP exchange; zero leaves it to the transport.
	Timeout      time.Duration `yaml:"timeout"`
	ParamHeaders *bool         `yaml:"param_headers"`
}

// SendParamHeaders reports whether private parameters are duplicated as
// headers. Unset means yes.
func (k KrakenConfig) SendParamHeaders() bool {
	return k.ParamHeaders == nil || *k.ParamHeaders
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

type MetricsConfig struct {
	CloudWatch CloudWatchConfig `yaml:"cloudwatch"`
}

type CloudWatchConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Region          string `yaml:"region"`
	Namespace       string `yaml:"namespace"`
	Dashboard       string `yaml:"dashboard"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		App: AppConfig{Name: "krakenrest", Version: "1.0"},
		Kraken: KrakenConfig{
			Scheme:  "https",
			Host:    "api.kraken.com",
			Version: "0",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			CloudWatch: CloudWatchConfig{
				Namespace: "KrakenREST",
				Dashboard: "KrakenREST",
			},
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	// Read configuration file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadOrDefault behaves like LoadConfig but falls back to Default, with env
// overrides applied, when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := Default()
		applyEnvOverrides(config)
		if err := validateConfig(config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return config, nil
	}
	return LoadConfig(path)
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("KRAKEN_API_KEY"); v != "" {
		config.Kraken.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("KRAKEN_API_SECRET"); v != "" {
		config.Kraken.APISecret = strings.TrimSpace(v)
	}
	if v := os.Getenv("KRAKEN_HOST"); v != "" {
		config.Kraken.Host = strings.TrimSpace(v)
	}
	if config.Metrics.CloudWatch.Enabled {
		if v := os.Getenv("AWS_REGION"); v != "" {
			config.Metrics.CloudWatch.Region = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
			config.Metrics.CloudWatch.AccessKeyID = strings.TrimSpace(v)
		}
		if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
			config.Metrics.CloudWatch.SecretAccessKey = strings.TrimSpace(v)
		}
	}
}

func validateConfig(cfg *Config) error {
	cfg.Kraken.Host = strings.TrimSpace(cfg.Kraken.Host)
	if cfg.Kraken.Host == "" {
		return fmt.Errorf("kraken.host is required")
	}
	if strings.ContainsAny(cfg.Kraken.Host, "/?#") {
		return fmt.Errorf("kraken.host %q must be a bare host name", cfg.Kraken.Host)
	}

	switch cfg.Kraken.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("kraken.scheme must be http or https, got %q", cfg.Kraken.Scheme)
	}

	if cfg.Kraken.Version == "" {
		return fmt.Errorf("kraken.version is required")
	}

	if cfg.Kraken.Timeout < 0 {
		return fmt.Errorf("kraken.timeout must not be negative")
	}

	if (cfg.Kraken.APIKey == "") != (cfg.Kraken.APISecret == "") {
		return fmt.Errorf("kraken.api_key and kraken.api_secret must be set together")
	}

	if cfg.Logging.MaxAge < 0 {
		return fmt.Errorf("logging.max_age must not be negative")
	}

	if cfg.Metrics.CloudWatch.Enabled {
		if cfg.Metrics.CloudWatch.Region == "" {
			return fmt.Errorf("metrics.cloudwatch.region is required when CloudWatch is enabled")
		}
		if cfg.Metrics.CloudWatch.Namespace == "" {
			return fmt.Errorf("metrics.cloudwatch.namespace is required when CloudWatch is enabled")
		}
		if (cfg.Metrics.CloudWatch.AccessKeyID == "") != (cfg.Metrics.CloudWatch.SecretAccessKey == "") {
			return fmt.Errorf("metrics.cloudwatch.access_key_id and metrics.cloudwatch.secret_access_key must be set together")
		}
	}

	return nil
}

// HasCredentials reports whether private endpoints can be signed.
func (c *Config) HasCredentials() bool {
	return c.Kraken.APIKey != "" && c.Kraken.APISecret != ""
}
