package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services/volcengine"
	"subtrans/internal/session"
	"subtrans/internal/tmcache"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openTranslator builds the provider client, wrapped by the translation
// memory when it is enabled. The returned release func must be called when
// the command finishes.
func (c *commandContext) openTranslator() (session.Translator, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireCredentials(); err != nil {
		return nil, nil, err
	}
	creds := cfg.TranslationCredentials()
	client, err := volcengine.NewClient(volcengine.Config{
		Platform:       creds.Platform,
		APIKey:         creds.APIKey,
		APISecret:      creds.APISecret,
		BaseURL:        cfg.Translation.BaseURL,
		TimeoutSeconds: cfg.Translation.TimeoutSeconds,
	}, volcengine.WithLogger(logging.NewComponentLogger(logger, "volcengine")))
	if err != nil {
		return nil, nil, err
	}
	release := func() {}
	if !cfg.Cache.Enabled {
		return client, release, nil
	}

	store, err := tmcache.Open(cfg.Cache.Path)
	switch {
	case errors.Is(err, tmcache.ErrLocked):
		logging.WarnWithContext(logger, "translation cache in use by another process", "cache_locked",
			logging.String("path", cfg.Cache.Path),
			logging.String(logging.FieldErrorHint, "wait for the other subtrans process to finish"),
			logging.String(logging.FieldImpact, "translations are not cached for this run"),
		)
		return client, release, nil
	case err != nil:
		return nil, nil, fmt.Errorf("open translation cache: %w", err)
	}
	release = func() {
		if err := store.Close(); err != nil {
			logger.Warn("close translation cache", logging.Error(err))
		}
	}
	return tmcache.NewCachedTranslator(client, store, client.Platform(), logger), release, nil
}

// resolveLanguages applies config defaults and canonicalizes both codes.
func (c *commandContext) resolveLanguages(from, to string) (string, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(from) == "" {
		from = cfg.Translation.SourceLanguage
	}
	if strings.TrimSpace(to) == "" {
		to = cfg.Translation.TargetLanguage
	}
	normalizedFrom, err := language.Normalize(from)
	if err != nil {
		return "", "", fmt.Errorf("--from: %w", err)
	}
	if language.IsAuto(to) {
		return "", "", errors.New("--to: target language cannot be auto")
	}
	normalizedTo, err := language.Normalize(to)
	if err != nil {
		return "", "", fmt.Errorf("--to: %w", err)
	}
	return normalizedFrom, normalizedTo, nil
}

// newSession creates a session logging through the command's logger.
func (c *commandContext) newSession(opts ...session.Option) (*session.Session, error) {
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return session.New(logger, opts...), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
