package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTranslation()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeServer()
	return c.normalizeLogging()
}

func (c *Config) normalizeTranslation() {
	t := &c.Translation
	t.Platform = strings.TrimSpace(t.Platform)
	if t.Platform == "" {
		t.Platform = defaultPlatform
	}
	if strings.TrimSpace(t.APIKey) == "" {
		if value, ok := os.LookupEnv("SUBTRANS_API_KEY"); ok {
			t.APIKey = value
		}
	}
	if strings.TrimSpace(t.APISecret) == "" {
		if value, ok := os.LookupEnv("SUBTRANS_API_SECRET"); ok {
			t.APISecret = value
		}
	}
	t.APIKey = strings.TrimSpace(t.APIKey)
	t.APISecret = strings.TrimSpace(t.APISecret)
	t.BaseURL = strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")
	t.SourceLanguage = strings.TrimSpace(t.SourceLanguage)
	if t.SourceLanguage == "" {
		t.SourceLanguage = defaultSourceLanguage
	}
	t.TargetLanguage = strings.TrimSpace(t.TargetLanguage)
	if t.TargetLanguage == "" {
		t.TargetLanguage = defaultTargetLanguage
	}
	if t.TimeoutSeconds == 0 {
		t.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	origins := c.Server.AllowedOrigins[:0]
	for _, origin := range c.Server.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	c.Server.AllowedOrigins = origins
	if strings.TrimSpace(c.Server.Token) == "" {
		if value, ok := os.LookupEnv("SUBTRANS_API_TOKEN"); ok {
			c.Server.Token = value
		}
	}
	c.Server.Token = strings.TrimSpace(c.Server.Token)
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaultServerMaxBodyBytes
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
