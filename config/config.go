// Package config loads the sigverify command line configuration.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/1F35C/signature-verifier/profile"
	"github.com/1F35C/signature-verifier/verifier"
)

// Config is the sigverify configuration. The trusted key is not part of it.
type Config struct {
	Log struct {
		Env   string `yaml:"env"`   // dev | prod
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Verify struct {
		// Timeout bounds one verification. 0 disables it.
		Timeout time.Duration `yaml:"timeout"`
		// Profile names the algorithm policy: default | rfc4880 | legacy.
		Profile string `yaml:"profile"`
	} `yaml:"verify"`

	Cache struct {
		// TTL of cached outcomes in watch mode. 0 disables the cache.
		TTL time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Watch struct {
		Debounce time.Duration `yaml:"debounce"`
	} `yaml:"watch"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.Log.Env = "dev"
	c.Log.Level = "info"
	c.Verify.Timeout = verifier.DefaultTimeout
	c.Verify.Profile = "default"
	c.Cache.TTL = 5 * time.Minute
	c.Watch.Debounce = 200 * time.Millisecond
	return &c
}

// Load reads the YAML file at path on top of the defaults, then applies
// SIGVERIFY_* environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path) //nolint
		if err != nil {
			return nil, errors.Wrap(err, "sigverify: unable to read config")
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, errors.Wrap(err, "sigverify: unable to parse config")
		}
	}

	c.applyEnvOverrides()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Log.Env {
	case "dev", "prod":
	default:
		return errors.Errorf("sigverify: log.env must be dev or prod, got %q", c.Log.Env)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.Errorf("sigverify: unknown log.level %q", c.Log.Level)
	}
	if c.Verify.Timeout < 0 {
		return errors.New("sigverify: verify.timeout must not be negative")
	}
	if _, err := profile.ByName(c.Verify.Profile); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return errors.New("sigverify: cache.ttl must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return errors.New("sigverify: watch.debounce must not be negative")
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(s); err == nil {
			return d, true
		}
	}
	return 0, false
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("SIGVERIFY_LOG_ENV"); ok {
		c.Log.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SIGVERIFY_LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvDur("SIGVERIFY_VERIFY_TIMEOUT"); ok {
		c.Verify.Timeout = v
	}
	if v, ok := getEnvStr("SIGVERIFY_VERIFY_PROFILE"); ok {
		c.Verify.Profile = strings.ToLower(v)
	}
	if v, ok := getEnvDur("SIGVERIFY_CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvDur("SIGVERIFY_WATCH_DEBOUNCE"); ok {
		c.Watch.Debounce = v
	}
}
