package model

import (
	"testing"
	"time"
)

func TestProgressEvent_ETAString(t *testing.T) {
	tests := []struct {
		eta      time.Duration
		expected string
	}{
		{-1 * time.Second, "—"},
		{0, "—"},
		{30 * time.Second, "00:30"},
		{90 * time.Second, "01:30"},
		{time.Hour, "01:00:00"},
		{3661 * time.Second, "01:01:01"},
		{7323 * time.Second, "02:02:03"},
	}

	for _, test := range tests {
		ev := Downloading(10, "", test.eta)
		result := ev.ETAString()
		if result != test.expected {
			t.Errorf("ETAString() with ETA=%v = %s, expected %s", test.eta, result, test.expected)
		}
	}
}

func TestProgressEvent_Gauge(t *testing.T) {
	tests := []struct {
		percent  float64
		expected float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{130, 100},
	}

	for _, test := range tests {
		result := Downloading(test.percent, "", 0).Gauge()
		if result != test.expected {
			t.Errorf("Gauge() with Percent=%v = %v, expected %v", test.percent, result, test.expected)
		}
	}
}

func TestExtractionResult_DisplayTitle(t *testing.T) {
	tests := []struct {
		title    string
		path     string
		expected string
	}{
		{"Video Title", "/videos/Video Title - abc.mp4", "Video Title"},
		{"", "/videos/Some Clip - abc.mp4", "Some Clip - abc"},
		{"", `C:\videos\Clip.webm`, "Clip"},
		{"http/2 explained", "/a/http_2 explained - abc.mp3", "http/2 explained"},
		{"", "", ""},
	}

	for _, test := range tests {
		r := &ExtractionResult{Title: test.title, ProducedPath: test.path}
		result := r.DisplayTitle()
		if result != test.expected {
			t.Errorf("DisplayTitle() with title='%s', path='%s' = '%s', expected '%s'",
				test.title, test.path, result, test.expected)
		}
	}
}

func TestMode_String(t *testing.T) {
	if ModeVideo.String() != "Video" {
		t.Errorf("Expected 'Video', got '%s'", ModeVideo.String())
	}
	if ModeAudio.String() != "Audio" {
		t.Errorf("Expected 'Audio', got '%s'", ModeAudio.String())
	}
	if Mode(7).String() != "Mode(7)" {
		t.Errorf("Expected 'Mode(7)', got '%s'", Mode(7).String())
	}
}

func TestHistoryRecord_Line(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 59, 0, time.Local)
	rec := HistoryRecord{
		Timestamp: ts,
		Kind:      ModeAudio,
		Title:     "Song \"Live\"\nEdit",
		URL:       "https://youtu.be/xyz",
	}

	expected := `[2024-03-09 14:05] Audio - "Song "Live" Edit" - https://youtu.be/xyz`
	if rec.Line() != expected {
		t.Errorf("Line() = %s, expected %s", rec.Line(), expected)
	}
}
