package download

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-autofix/internal/model"
)

// DefaultUpdateTimeout bounds the self-update at startup
const DefaultUpdateTimeout = 2 * time.Minute

// InstallFunc installs or refreshes the yt-dlp executable and reports its version
type InstallFunc func(ctx context.Context) (version string, err error)

// Updater keeps the extraction binary current
type Updater struct {
	install InstallFunc
	timeout time.Duration
	logger  *zap.Logger
}

// NewUpdater creates an updater using go-ytdlp's managed install
func NewUpdater(logger *zap.Logger) *Updater {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Updater{install: libraryInstall, timeout: DefaultUpdateTimeout, logger: logger}
}

// Update installs the pinned yt-dlp release when missing or outdated. Failure
// is returned as *model.UpdateWarning; the existing binary keeps being used.
func (u *Updater) Update(ctx context.Context) (string, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	version, err := u.install(ctx)
	if err != nil {
		warn := &model.UpdateWarning{Err: err}
		u.logger.Warn("yt-dlp update failed", zap.Error(err))
		return "", warn
	}

	u.logger.Info("yt-dlp ready", zap.String("version", version))
	return version, nil
}

func libraryInstall(ctx context.Context) (string, error) {
	resolved, err := ytdlp.Install(ctx, nil)
	if err != nil {
		return "", err
	}
	return resolved.Version, nil
}
