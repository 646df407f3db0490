// Package lifecycle exposes stack change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/pilha/pkg/core"
)

// Option configures a stack source.
type Option func(*stackSource)

// WithSettle makes the source wait until no event has arrived for d before
// emitting. A burst of events (an atomic rewrite produces several) is
// delivered as its last event. Zero emits every event as it arrives.
func WithSettle(d time.Duration) Option {
	return func(s *stackSource) {
		s.settle = d
	}
}

type stackSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	settle time.Duration
}

// NewSource creates a lifecycle.Source that re-emits stack change events.
// The source's channel closes when the input closes or ctx is done.
func NewSource(events <-chan core.Event, opts ...Option) lifecycle.Source {
	s := &stackSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *stackSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *stackSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			e, ok := s.next(ctx)
			if !ok {
				return nil
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}

// next blocks for one event and then absorbs whatever follows it within the
// settle window. ok is false once the input is closed or ctx is done; a
// pending event is still delivered when the input closes mid-burst.
func (s *stackSource) next(ctx context.Context) (core.Event, bool) {
	var last core.Event
	select {
	case <-ctx.Done():
		return last, false
	case e, ok := <-s.events:
		if !ok {
			return last, false
		}
		last = e
	}

	if s.settle <= 0 {
		return last, true
	}

	timer := time.NewTimer(s.settle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return last, false
		case <-timer.C:
			return last, true
		case e, ok := <-s.events:
			if !ok {
				return last, true
			}
			last = e
			timer.Reset(s.settle)
		}
	}
}
