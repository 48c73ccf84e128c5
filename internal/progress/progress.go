// Package progress provides ProgressSink implementations: a no-op sink, a
// non-blocking channel sink for embedding front-ends, and a terminal bar.
package progress

import (
	"github.com/schollz/progressbar/v3"
)

type Nop struct{}

func (Nop) Init(string) {}
func (Nop) Update(int)  {}
func (Nop) Complete()   {}

type EventKind int

const (
	EventInit EventKind = iota
	EventUpdate
	EventComplete
)

type Event struct {
	Kind    EventKind
	Label   string
	Percent int
}

// Channel forwards events to a buffered channel without ever blocking the
// producer: when the consumer falls behind, events are dropped. Losing a
// progress event never affects pipeline correctness.
type Channel struct {
	ch chan Event
}

func NewChannel(buffer int) *Channel {
	if buffer < 1 {
		buffer = 1
	}
	return &Channel{ch: make(chan Event, buffer)}
}

func (c *Channel) Events() <-chan Event { return c.ch }

// Close releases the channel once the producer is done; callers must not
// emit events afterwards.
func (c *Channel) Close() { close(c.ch) }

func (c *Channel) Init(label string) { c.send(Event{Kind: EventInit, Label: label}) }
func (c *Channel) Update(p int)      { c.send(Event{Kind: EventUpdate, Percent: p}) }
func (c *Channel) Complete()         { c.send(Event{Kind: EventComplete, Percent: 100}) }

func (c *Channel) send(ev Event) {
	select {
	case c.ch <- ev:
	default:
	}
}

// Bar renders progress as a terminal bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

func NewBar() *Bar { return &Bar{} }

func (b *Bar) Init(label string) {
	b.bar = progressbar.NewOptions(100,
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowBytes(false),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *Bar) Update(percent int) {
	if b.bar != nil {
		_ = b.bar.Set(percent)
	}
}

func (b *Bar) Complete() {
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
}
