package platform

import "os/exec"

// DefaultMediaBinary is the media-processing binary looked up on PATH
const DefaultMediaBinary = "ffmpeg"

// ProbeResult reports whether a binary is reachable on PATH
type ProbeResult struct {
	Available bool
	Path      string
}

// ProbeBinary looks the binary up on PATH. Absence is a normal outcome.
func ProbeBinary(name string) ProbeResult {
	if name == "" {
		name = DefaultMediaBinary
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return ProbeResult{}
	}
	return ProbeResult{Available: true, Path: path}
}

// FFmpegInstallCommand returns the package-manager command that installs
// ffmpeg on goos
func FFmpegInstallCommand(goos string) string {
	switch goos {
	case OSWindows:
		return "choco install ffmpeg-full -y"
	case OSDarwin:
		return "brew install ffmpeg"
	default:
		return "sudo apt install ffmpeg"
	}
}
