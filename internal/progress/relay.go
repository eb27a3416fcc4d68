// Package progress forwards extraction progress events to a display.
package progress

import "github.com/ytget/yt-autofix/internal/model"

// Relay receives progress events from the extraction client. Implementations
// must return quickly; the caller is the extraction worker.
type Relay interface {
	OnEvent(ev model.ProgressEvent)
}

// RelayFunc adapts a function to Relay
type RelayFunc func(ev model.ProgressEvent)

// OnEvent calls f(ev)
func (f RelayFunc) OnEvent(ev model.ProgressEvent) { f(ev) }

// Discard drops every event
var Discard Relay = RelayFunc(func(model.ProgressEvent) {})
