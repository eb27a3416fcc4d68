package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	VideoParam     = "v"
	ParamSeparator = "&"
)

// Hosts and paths that carry a video ID outside the v= parameter
const (
	ShortLinkHost = "youtu.be"
	PlaylistPath  = "/playlist"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistItemsFunc lists the video IDs of a playlist
type PlaylistItemsFunc func(ctx context.Context, playlistID string) ([]string, error)

// PlaylistResolver turns a playlist-only URL into the URL of its first video,
// so a single request never downloads a whole playlist.
type PlaylistResolver struct {
	timeout time.Duration
	items   PlaylistItemsFunc
}

// NewPlaylistResolver creates a resolver backed by the ytdlp library
func NewPlaylistResolver() *PlaylistResolver {
	return &PlaylistResolver{
		timeout: DefaultPlaylistTimeout,
		items:   libraryPlaylistItems,
	}
}

// SetTimeout sets the timeout for playlist lookups
func (p *PlaylistResolver) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// ResolveURL returns rawURL unchanged unless it names a playlist without a
// video, in which case the first playlist entry is returned.
func (p *PlaylistResolver) ResolveURL(ctx context.Context, rawURL string) (string, error) {
	if !IsPlaylistOnlyURL(rawURL) {
		return rawURL, nil
	}

	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return "", fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	ids, err := p.items(ctx, playlistID)
	if err != nil {
		return "", fmt.Errorf("failed to get playlist items: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("playlist %s is empty", playlistID)
	}

	return fmt.Sprintf(YouTubeVideoURLTemplate, ids[0]), nil
}

// IsPlaylistOnlyURL reports whether the URL names a playlist without any
// video ID. Short links and /shorts, /live or /embed paths carry their ID in
// the path, so only a /playlist page with list= qualifies.
func IsPlaylistOnlyURL(rawURL string) bool {
	if !strings.Contains(rawURL, PlaylistParam) {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Query().Get(VideoParam) != "" {
		return false
	}
	if strings.EqualFold(strings.TrimPrefix(parsed.Hostname(), "www."), ShortLinkHost) {
		return false
	}
	return strings.TrimSuffix(parsed.Path, "/") == PlaylistPath
}

// ExtractPlaylistID extracts the playlist ID from various URL formats
func ExtractPlaylistID(rawURL string) string {
	if strings.Contains(rawURL, PlaylistParam) {
		parts := strings.Split(rawURL, PlaylistParam)
		if len(parts) > 1 {
			playlistPart := parts[1]
			if strings.Contains(playlistPart, ParamSeparator) {
				playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
			}
			return playlistPart
		}
	}
	return ""
}

func libraryPlaylistItems(ctx context.Context, playlistID string) ([]string, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.VideoID != "" {
			ids = append(ids, it.VideoID)
		}
	}
	return ids, nil
}
