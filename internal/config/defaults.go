package config

const (
	defaultConfigPath         = "~/.config/subtrans/config.toml"
	defaultPlatform           = "volcengine"
	defaultSourceLanguage     = "auto"
	defaultTargetLanguage     = "zh"
	defaultTimeoutSeconds     = 15
	defaultCachePath          = "~/.local/share/subtrans/translations.db"
	defaultServerBind         = "127.0.0.1:7788"
	defaultServerMaxBodyBytes = 4 << 20
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Translation: Translation{
			Platform:       defaultPlatform,
			SourceLanguage: defaultSourceLanguage,
			TargetLanguage: defaultTargetLanguage,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Cache: Cache{
			Path: defaultCachePath,
		},
		Server: Server{
			Bind:         defaultServerBind,
			MaxBodyBytes: defaultServerMaxBodyBytes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
