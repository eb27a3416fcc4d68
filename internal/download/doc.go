package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp): typed option building, extraction with
// progress propagation, the per-request state machine with container fix and
// history, and the single-slot service used by the desktop UI.
