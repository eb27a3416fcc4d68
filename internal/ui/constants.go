package ui

// Project page opened by the GitHub button
const GitHubURL = "https://github.com/ytget/yt-autofix"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
)

// Window sizing
const (
	WindowWidth  float32 = 620
	WindowHeight float32 = 340

	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 320
)

// Progress gauge bounds, matching ProgressEvent.Percent
const (
	GaugeMin = 0
	GaugeMax = 100
)

// Status line truncation
const (
	StatusMaxRunes = 120
	Ellipsis       = "…"
)

