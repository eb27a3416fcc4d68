// Package output resolves and prepares destination directories for downloads.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/platform"
)

// Subfolder names under the downloads root
const (
	VideoSubdir = "video"
	AudioSubdir = "audio"
	LogsSubdir  = "logs"
)

const writeProbePattern = ".write-probe-*"

// Resolver maps a mode (or a custom folder) to a ready-to-use directory
type Resolver struct {
	root string
}

// NewResolver creates a resolver rooted at root. ~ is expanded.
func NewResolver(root string) *Resolver {
	return &Resolver{root: platform.ExpandHome(root)}
}

// Root returns the downloads root
func (r *Resolver) Root() string {
	return r.root
}

// LogsDir returns the sibling logs folder used by the desktop app
func (r *Resolver) LogsDir() string {
	return filepath.Join(r.root, LogsSubdir)
}

// DirFor returns the per-mode directory without creating it
func (r *Resolver) DirFor(mode model.Mode) string {
	if mode == model.ModeAudio {
		return filepath.Join(r.root, AudioSubdir)
	}
	return filepath.Join(r.root, VideoSubdir)
}

// Resolve returns customPath when given, else the per-mode directory. The
// directory and all missing parents are created and checked for writability.
func (r *Resolver) Resolve(mode model.Mode, customPath string) (string, error) {
	dir := r.DirFor(mode)
	if customPath != "" {
		dir = platform.ExpandHome(customPath)
	}
	return dir, Ensure(dir)
}

// ResolveCustom prepares a user supplied folder; empty means the root itself
func (r *Resolver) ResolveCustom(customPath string) (string, error) {
	dir := r.root
	if customPath != "" {
		dir = platform.ExpandHome(customPath)
	}
	return dir, Ensure(dir)
}

// Ensure creates dir if needed and verifies a file can be written into it.
// Failures are returned as *model.PathError.
func Ensure(dir string) error {
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return &model.PathError{Path: dir, Err: err}
	}

	info, err := os.Stat(dir)
	if err != nil {
		return &model.PathError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return &model.PathError{Path: dir, Err: fmt.Errorf("not a directory")}
	}

	f, err := os.CreateTemp(dir, writeProbePattern)
	if err != nil {
		return &model.PathError{Path: dir, Err: fmt.Errorf("not writable: %w", err)}
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	return nil
}
