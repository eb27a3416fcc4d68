package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-autofix/internal/i18n"
	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/platform"
)

// Theme variants
type ThemeVariant string

const (
	ThemeLight ThemeVariant = "light"
	ThemeDark  ThemeVariant = "dark"
)

// Settings keys for Fyne preferences
const (
	KeyOutputRoot   = "output_root"
	KeyTheme        = "theme"
	KeyLastMode     = "last_mode"
	KeyLanguage     = "app_language"
	KeyFFmpegBinary = "ffmpeg_binary"
	KeyAutoUpdate   = "auto_update"
)

// Default values
const (
	DefaultOutputFolderName = "YouTube Downloader"
	DefaultTheme            = ThemeLight
	DefaultLanguage         = i18n.DefaultLanguage
	DefaultAutoUpdate       = true
)

// Settings manages the desktop application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// DefaultOutputRoot returns <home videos dir>/YouTube Downloader
func DefaultOutputRoot() string {
	videos, err := platform.GetHomeVideosDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultOutputFolderName)
	}
	return filepath.Join(videos, DefaultOutputFolderName)
}

// GetOutputRoot returns the configured output root directory
func (s *Settings) GetOutputRoot() string {
	dir := s.app.Preferences().String(KeyOutputRoot)
	if dir == "" {
		dir = DefaultOutputRoot()
		s.SetOutputRoot(dir)
	}
	return dir
}

// SetOutputRoot sets the output root directory
func (s *Settings) SetOutputRoot(dir string) {
	s.app.Preferences().SetString(KeyOutputRoot, dir)
}

// GetTheme returns the configured theme variant
func (s *Settings) GetTheme() ThemeVariant {
	switch v := ThemeVariant(s.app.Preferences().String(KeyTheme)); v {
	case ThemeLight, ThemeDark:
		return v
	}
	return DefaultTheme
}

// SetTheme sets the theme variant
func (s *Settings) SetTheme(variant ThemeVariant) {
	s.app.Preferences().SetString(KeyTheme, string(variant))
}

// ToggleTheme flips between light and dark and returns the new variant
func (s *Settings) ToggleTheme() ThemeVariant {
	next := ThemeDark
	if s.GetTheme() == ThemeDark {
		next = ThemeLight
	}
	s.SetTheme(next)
	return next
}

// GetLastMode returns the mode selected at the last download
func (s *Settings) GetLastMode() model.Mode {
	if s.app.Preferences().Int(KeyLastMode) == int(model.ModeAudio) {
		return model.ModeAudio
	}
	return model.ModeVideo
}

// SetLastMode remembers the selected mode
func (s *Settings) SetLastMode(mode model.Mode) {
	s.app.Preferences().SetInt(KeyLastMode, int(mode))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetFFmpegBinary returns the media binary name or path to probe
func (s *Settings) GetFFmpegBinary() string {
	return s.app.Preferences().StringWithFallback(KeyFFmpegBinary, platform.DefaultMediaBinary)
}

// SetFFmpegBinary sets the media binary; empty restores the default
func (s *Settings) SetFFmpegBinary(name string) {
	if name == "" {
		name = platform.DefaultMediaBinary
	}
	s.app.Preferences().SetString(KeyFFmpegBinary, name)
}

// GetAutoUpdate returns whether yt-dlp is updated at startup
func (s *Settings) GetAutoUpdate() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoUpdate, DefaultAutoUpdate)
}

// SetAutoUpdate sets whether yt-dlp is updated at startup
func (s *Settings) SetAutoUpdate(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoUpdate, enabled)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	options := map[string]string{i18n.LangSystem: "System Default"}
	for code, name := range i18n.NewLocalization().GetAvailableLanguages() {
		options[code] = name
	}
	return options
}
