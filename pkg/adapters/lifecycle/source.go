// Package lifecycle exposes document watch events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"sync/atomic"

	"github.com/aretw0/introspection"
	"github.com/aretw0/lifecycle"

	"github.com/aretw0/tusk/pkg/core"
)

// WatchSource relays core.Event values from a file watcher.
type WatchSource struct {
	in        <-chan core.Event
	out       chan lifecycle.Event
	forwarded atomic.Int64
	running   atomic.Bool
}

// NewSource wraps a watch channel. The source closes its Events channel
// when the watch channel closes or the context passed to Start ends.
func NewSource(events <-chan core.Event) *WatchSource {
	return &WatchSource{in: events, out: make(chan lifecycle.Event)}
}

func (s *WatchSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *WatchSource) Start(ctx context.Context) error {
	s.running.Store(true)
	lifecycle.Go(ctx, s.relay)
	return nil
}

func (s *WatchSource) relay(ctx context.Context) error {
	defer s.running.Store(false)
	defer close(s.out)
	for {
		var e core.Event
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.in:
			if !ok {
				return nil
			}
		}
		select {
		case s.out <- e:
			s.forwarded.Add(1)
		case <-ctx.Done():
			return nil
		}
	}
}

// SourceState is the introspection snapshot of a WatchSource.
type SourceState struct {
	Running   bool  `json:"running"`
	Forwarded int64 `json:"forwarded"`
}

func (s *WatchSource) State() any {
	return SourceState{Running: s.running.Load(), Forwarded: s.forwarded.Load()}
}

func (s *WatchSource) ComponentType() string { return "watch-source" }

var (
	_ lifecycle.Source             = (*WatchSource)(nil)
	_ introspection.Introspectable = (*WatchSource)(nil)
	_ introspection.Component      = (*WatchSource)(nil)
)
