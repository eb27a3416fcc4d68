// Package remux re-wraps a downloaded video into a fresh mp4 container with
// ffmpeg, copying the streams without re-encoding.
package remux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// FFmpeg constants for the container fix
const (
	// Stream copy, no re-encode
	CopyCodec = "copy"

	// Output suffix appended to the original stem
	FixedSuffix = "_corrigido"

	// Executable and I/O constants
	FFmpegCommand      = "ffmpeg"
	OutputExtensionMP4 = ".mp4"

	// Bytes of ffmpeg stderr kept for error messages
	stderrTailLimit = 512
)

// Service runs the container fix with an external ffmpeg binary
type Service struct {
	binary string
	logger *zap.Logger
}

// NewService creates a fixer invoking binary (ffmpeg when empty)
func NewService(binary string, logger *zap.Logger) *Service {
	if binary == "" {
		binary = FFmpegCommand
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{binary: binary, logger: logger}
}

// FixContainer writes <stem>_corrigido.mp4 next to inputPath and returns its
// path. The input file is never modified or removed; a partial output is
// removed on failure.
func (s *Service) FixContainer(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file does not exist: %s", inputPath)
	}

	outputPath := GenerateOutputPath(inputPath)
	args := BuildFFmpegArgs(inputPath, outputPath)

	s.logger.Info("fixing container",
		zap.String("input", inputPath),
		zap.String("output", outputPath))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.binary, args...)
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg failed: %w%s", err, stderrTail(stderr.String()))
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("ffmpeg produced no output: %s", outputPath)
	}

	return outputPath, nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-i", inputPath, // Input file
		"-c", CopyCodec, // Copy every stream
		outputPath, // Output file
		"-y",       // Overwrite output file
	}
}

// GenerateOutputPath returns <dir>/<stem>_corrigido.mp4 for inputPath
func GenerateOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	baseName := strings.TrimSuffix(inputPath, ext)
	return baseName + FixedSuffix + OutputExtensionMP4
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) > stderrTailLimit {
		s = s[len(s)-stderrTailLimit:]
	}
	return ": " + s
}
