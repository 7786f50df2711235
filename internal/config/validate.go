package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranslation() error {
	if c.Translation.Platform == "" {
		return errors.New("translation.platform must be set")
	}
	if c.Translation.TimeoutSeconds < 0 {
		return errors.New("translation.timeout_seconds must be positive")
	}
	if c.Translation.TargetLanguage == "auto" {
		return errors.New("translation.target_language cannot be auto")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must be positive")
	}
	if c.Server.Token == "" && slices.Contains(c.Server.AllowedOrigins, "*") {
		return errors.New(`server.allowed_origins: "*" requires server.token (or SUBTRANS_API_TOKEN)`)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// RequireCredentials reports whether translation credentials are present.
// Commands that never reach the provider skip this check.
func (c *Config) RequireCredentials() error {
	var missing []string
	if strings.TrimSpace(c.Translation.APIKey) == "" {
		missing = append(missing, "translation.api_key (or SUBTRANS_API_KEY)")
	}
	if strings.TrimSpace(c.Translation.APISecret) == "" {
		missing = append(missing, "translation.api_secret (or SUBTRANS_API_SECRET)")
	}
	if len(missing) == 0 {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%s required. Edit %s (create with 'subtrans config init')", strings.Join(missing, " and "), defaultPath)
}
