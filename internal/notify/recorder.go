package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Recorder keeps every published event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Publish(events ...Event) {
	r.mu.Lock()
	r.events = append(r.events, events...)
	r.mu.Unlock()
}

// Events returns a copy of what has been published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Names lists published event names in order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// LogPublisher writes events to the logger instead of delivering them.
// Used by the command line tool, which has no subscribers.
type LogPublisher struct {
	Logger *zap.Logger
}

func (p LogPublisher) Publish(events ...Event) {
	for _, e := range events {
		p.Logger.Info("event", zap.String("name", e.Name), zap.String("channel", e.Channel), zap.Any("data", e.Data))
	}
}

type discard struct{}

func (discard) Publish(...Event) {}

// Discard drops every event.
var Discard Publisher = discard{}
