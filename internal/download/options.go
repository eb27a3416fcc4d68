package download

import (
	"path/filepath"
	"strings"

	"github.com/ytget/yt-autofix/internal/model"
	"github.com/ytget/yt-autofix/internal/platform"
)

// Format selectors
const (
	FormatBestCombined = "best"
	FormatBestAudio    = "bestaudio/best"
)

// Output naming
const (
	DefaultOutputTemplate = "%(title)s - %(id)s.%(ext)s"
	ExtensionPlaceholder  = ".%(ext)s"
	MergeFormatMP4        = "mp4"
)

// Audio conversion
const (
	AudioCodecMP3   = "mp3"
	AudioQuality192 = "192K"
)

// PostProcessorKey names a post-processing step of the extraction library
type PostProcessorKey string

const (
	PostProcessorExtractAudio PostProcessorKey = "FFmpegExtractAudio"
)

// PostProcessorStep is one post-processing step and its parameters
type PostProcessorStep struct {
	Key              PostProcessorKey
	PreferredCodec   string
	PreferredQuality string
}

// Options is the complete, typed configuration of one extraction call.
// It is built per request by BuildOptions and never mutated afterwards.
type Options struct {
	OutputTemplate    string
	Format            string
	MergeOutputFormat string
	PostProcessors    []PostProcessorStep
	Quiet             bool
	NoPlaylist        bool
}

// BuildOptions derives the extraction options for req, whose DestinationDir
// must already be resolved. When ffmpeg is unavailable the audio conversion
// step is omitted; the returned warning records that.
func BuildOptions(req model.DownloadRequest, ffmpeg platform.ProbeResult) (Options, error) {
	opts := Options{
		OutputTemplate: filepath.Join(req.DestinationDir, outputName(req.CustomFilenameStem)),
		Quiet:          true,
		NoPlaylist:     true,
	}
	switch req.Mode {
	case model.ModeAudio:
		opts.Format = FormatBestAudio
		if !ffmpeg.Available {
			return opts, &model.PostProcessWarning{Err: model.ErrFFmpegMissing}
		}
		opts.PostProcessors = []PostProcessorStep{{
			Key:              PostProcessorExtractAudio,
			PreferredCodec:   AudioCodecMP3,
			PreferredQuality: AudioQuality192,
		}}
	default:
		opts.Format = FormatBestCombined
		opts.MergeOutputFormat = MergeFormatMP4
	}

	return opts, nil
}

// ExtractsAudio reports whether the options convert to an audio codec
func (o Options) ExtractsAudio() (PostProcessorStep, bool) {
	for _, step := range o.PostProcessors {
		if step.Key == PostProcessorExtractAudio {
			return step, true
		}
	}
	return PostProcessorStep{}, false
}

// outputName returns the file template for an optional custom stem
func outputName(stem string) string {
	stem = sanitizeStem(stem)
	if stem == "" {
		return DefaultOutputTemplate
	}
	return stem + ExtensionPlaceholder
}

var stemReplacer = strings.NewReplacer("/", "_", `\`, "_", "%", "%%")

var mediaExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".webm": true, ".mp3": true, ".m4a": true, ".opus": true,
}

// sanitizeStem keeps a user supplied name inside the destination folder and
// escapes template markers.
func sanitizeStem(stem string) string {
	stem = strings.TrimSpace(stem)
	if ext := filepath.Ext(stem); mediaExtensions[strings.ToLower(ext)] {
		stem = strings.TrimSuffix(stem, ext)
	}
	stem = strings.Trim(stemReplacer.Replace(stem), ". ")
	return stem
}
