package progress

import (
	"bytes"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-autofix/internal/model"
)

var testMessages = TerminalMessages{
	Downloading:    "Baixando",
	Finished:       "Download concluído!",
	PostProcessing: "Processando...",
}

func TestFormatDownloading(t *testing.T) {
	ev := model.Downloading(42, "1.2MB/s", 30*time.Second)
	assert.Equal(t, "Baixando:  42.0% | 1.2MB/s | ETA: 00:30", FormatDownloading("Baixando", ev))

	unknown := model.Downloading(150, "", 0)
	assert.Equal(t, "Baixando: 100.0% | — | ETA: —", FormatDownloading("Baixando", unknown))
}

func TestTerminal_OutOfOrderEventsLastWins(t *testing.T) {
	var buf bytes.Buffer
	relay := NewTerminal(&buf, testMessages)

	rng := rand.New(rand.NewSource(1))
	var last model.ProgressEvent
	for i := 0; i < 200; i++ {
		last = model.Downloading(rng.Float64()*120-10, "2.0MB/s", time.Duration(rng.Intn(100))*time.Second)
		require.NotPanics(t, func() { relay.OnEvent(last) })
	}

	got, line := relay.Last()
	assert.Equal(t, last, got)
	assert.Equal(t, FormatDownloading("Baixando", last), line)
}

func TestTerminal_FinishedAndPostProcessing(t *testing.T) {
	var buf bytes.Buffer
	relay := NewTerminal(&buf, testMessages)

	relay.OnEvent(model.Downloading(50, "1MB/s", time.Second))
	relay.OnEvent(model.Finished())
	relay.OnEvent(model.PostProcessing())

	got, line := relay.Last()
	assert.Equal(t, model.EventPostProcessing, got.Kind)
	assert.Equal(t, testMessages.PostProcessing, line)
	assert.True(t, strings.Contains(buf.String(), testMessages.Finished))
	assert.True(t, strings.Contains(buf.String(), testMessages.PostProcessing))
}

func TestTerminal_FinishedWithoutDownloading(t *testing.T) {
	var buf bytes.Buffer
	relay := NewTerminal(&buf, testMessages)

	relay.OnEvent(model.Finished())
	assert.Equal(t, testMessages.Finished+"\n", buf.String())
}

func TestMailbox_LatestWins(t *testing.T) {
	box := NewMailbox()

	_, ok := box.Take()
	assert.False(t, ok)

	box.OnEvent(model.Downloading(10, "", 0))
	box.OnEvent(model.Downloading(5, "", 0))
	box.OnEvent(model.Downloading(70, "", 0))

	select {
	case <-box.Ready():
	default:
		t.Fatal("expected ready signal")
	}

	ev, ok := box.Take()
	require.True(t, ok)
	assert.Equal(t, 70.0, ev.Percent)

	_, ok = box.Take()
	assert.False(t, ok)
}

func TestMailbox_NeverBlocksProducer(t *testing.T) {
	box := NewMailbox()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			box.OnEvent(model.Downloading(float64(i%100), "", 0))
		}
		box.OnEvent(model.Finished())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked without a consumer")
	}

	ev, ok := box.Take()
	require.True(t, ok)
	assert.Equal(t, model.EventFinished, ev.Kind)
}

func TestMailbox_ConsumerSeesLastEvent(t *testing.T) {
	box := NewMailbox()
	var (
		mu      sync.Mutex
		applied model.ProgressEvent
	)

	stop := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for {
			select {
			case <-box.Ready():
				if ev, ok := box.Take(); ok {
					mu.Lock()
					applied = ev
					mu.Unlock()
				}
			case <-stop:
				if ev, ok := box.Take(); ok {
					mu.Lock()
					applied = ev
					mu.Unlock()
				}
				return
			}
		}
	}()

	for i := 0; i < 500; i++ {
		box.OnEvent(model.Downloading(float64(i%37), "", 0))
	}
	final := model.Downloading(99, "9MB/s", time.Second)
	box.OnEvent(final)
	close(stop)
	<-drained

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, final, applied)
}

func TestRelayFunc(t *testing.T) {
	var got model.ProgressEvent
	RelayFunc(func(ev model.ProgressEvent) { got = ev }).OnEvent(model.Finished())
	assert.Equal(t, model.EventFinished, got.Kind)
	assert.NotPanics(t, func() { Discard.OnEvent(model.Finished()) })
}
