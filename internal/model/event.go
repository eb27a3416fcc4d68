package model

import (
	"fmt"
	"time"
)

// EventKind tags a ProgressEvent
type EventKind int

const (
	EventDownloading EventKind = iota
	EventFinished
	EventPostProcessing
)

// ProgressEvent is a discrete status notification emitted during extraction.
// Percent is not guaranteed to increase between events.
type ProgressEvent struct {
	Kind    EventKind
	Percent float64       // 0 to 100, Downloading only
	Speed   string        // human readable speed (e.g., "1.2MB/s")
	ETA     time.Duration // zero or negative if unknown
}

// Downloading builds a Downloading event
func Downloading(percent float64, speed string, eta time.Duration) ProgressEvent {
	return ProgressEvent{Kind: EventDownloading, Percent: percent, Speed: speed, ETA: eta}
}

// Finished builds a Finished event
func Finished() ProgressEvent {
	return ProgressEvent{Kind: EventFinished}
}

// PostProcessing builds a PostProcessing event
func PostProcessing() ProgressEvent {
	return ProgressEvent{Kind: EventPostProcessing}
}

// Gauge returns Percent clamped to 0..100
func (e ProgressEvent) Gauge() float64 {
	switch {
	case e.Percent < 0:
		return 0
	case e.Percent > 100:
		return 100
	}
	return e.Percent
}

// ETAString returns ETA as mm:ss or hh:mm:ss, or a dash placeholder if unknown
func (e ProgressEvent) ETAString() string {
	secs := int(e.ETA.Seconds())
	if secs <= 0 {
		return "—"
	}

	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
