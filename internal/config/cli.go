package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ytget/yt-autofix/internal/i18n"
	"github.com/ytget/yt-autofix/internal/logging"
	"github.com/ytget/yt-autofix/internal/platform"
)

// CLI config file lookup
const (
	CLIConfigName = "ytfix"
	CLIEnvPrefix  = "YTFIX"
	CLIConfigDir  = "$HOME/.config/ytfix"

	DefaultCLIDownloadDir = "downloads"
)

// CLIConfig configures the terminal menu
type CLIConfig struct {
	DownloadDir  string         `mapstructure:"download_dir"`
	FFmpegBinary string         `mapstructure:"ffmpeg_binary"`
	AutoUpdate   bool           `mapstructure:"auto_update"`
	Language     string         `mapstructure:"language"`
	Log          logging.Config `mapstructure:"log"`
}

// DefaultCLIConfig returns the configuration used when nothing is set
func DefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		DownloadDir:  DefaultCLIDownloadDir,
		FFmpegBinary: platform.DefaultMediaBinary,
		AutoUpdate:   true,
		Language:     i18n.DefaultLanguage,
		Log: logging.Config{
			Level:      "warn",
			Format:     logging.FormatConsole,
			OutputPath: logging.OutputStderr,
		},
	}
}

// LoadCLI reads the optional ytfix.yaml and YTFIX_* environment overrides.
// A missing config file is not an error.
func LoadCLI(configPath string) (*CLIConfig, error) {
	config := DefaultCLIConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(CLIConfigName)
		v.AddConfigPath(".")
		v.AddConfigPath(CLIConfigDir)
	}

	// defaults make every key visible to AutomaticEnv during Unmarshal
	v.SetDefault("download_dir", config.DownloadDir)
	v.SetDefault("ffmpeg_binary", config.FFmpegBinary)
	v.SetDefault("auto_update", config.AutoUpdate)
	v.SetDefault("language", config.Language)
	v.SetDefault("log.level", config.Log.Level)
	v.SetDefault("log.format", config.Log.Format)
	v.SetDefault("log.output_path", config.Log.OutputPath)

	v.SetEnvPrefix(CLIEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.DownloadDir = platform.ExpandHome(config.DownloadDir)
	if config.DownloadDir == "" {
		return nil, fmt.Errorf("download_dir cannot be empty")
	}
	if config.FFmpegBinary == "" {
		config.FFmpegBinary = platform.DefaultMediaBinary
	}

	return config, nil
}
