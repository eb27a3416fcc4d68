package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/ytget/yt-autofix/internal/model"
)

// Gauge bounds
const (
	gaugeMax   = 100
	gaugeWidth = 30
)

// Messages shown by the terminal relay
type TerminalMessages struct {
	Downloading    string // prefix, e.g. "Baixando"
	Finished       string
	PostProcessing string
}

// Terminal renders events as a single redrawn line with a gauge, percent,
// speed and ETA. Repeated or out-of-order percentages simply overwrite the
// previous state.
type Terminal struct {
	mu       sync.Mutex
	w        io.Writer
	msgs     TerminalMessages
	bar      *progressbar.ProgressBar
	last     model.ProgressEvent
	lastLine string
}

// NewTerminal creates a relay drawing to w
func NewTerminal(w io.Writer, msgs TerminalMessages) *Terminal {
	return &Terminal{w: w, msgs: msgs}
}

// OnEvent updates the display
func (t *Terminal) OnEvent(ev model.ProgressEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = ev

	switch ev.Kind {
	case model.EventDownloading:
		if t.bar == nil {
			t.bar = progressbar.NewOptions(gaugeMax,
				progressbar.OptionSetWriter(t.w),
				progressbar.OptionSetWidth(gaugeWidth),
				progressbar.OptionSetPredictTime(false),
				progressbar.OptionSetRenderBlankState(true),
			)
		}
		t.lastLine = FormatDownloading(t.msgs.Downloading, ev)
		t.bar.Describe(t.lastLine)
		_ = t.bar.Set(int(ev.Gauge()))
	case model.EventFinished:
		t.finishBar()
		t.lastLine = t.msgs.Finished
		fmt.Fprintln(t.w, t.lastLine)
	case model.EventPostProcessing:
		t.finishBar()
		t.lastLine = t.msgs.PostProcessing
		fmt.Fprintln(t.w, t.lastLine)
	}
}

// Last returns the most recent event and the text shown for it
func (t *Terminal) Last() (model.ProgressEvent, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.lastLine
}

func (t *Terminal) finishBar() {
	if t.bar == nil {
		return
	}
	_ = t.bar.Finish()
	fmt.Fprintln(t.w)
	t.bar = nil
}

// FormatDownloading renders "<prefix>: 42.0% | 1.2MB/s | ETA: 00:30"
func FormatDownloading(prefix string, ev model.ProgressEvent) string {
	speed := strings.TrimSpace(ev.Speed)
	if speed == "" {
		speed = "—"
	}
	return fmt.Sprintf("%s: %5.1f%% | %s | ETA: %s", prefix, ev.Gauge(), speed, ev.ETAString())
}
