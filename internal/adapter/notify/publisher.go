package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"vitalsim/internal/app/ports"
	"vitalsim/internal/domain/conditions"
)

// LogPublisher writes one line per event. It is the default sink when the
// host has not wired a UI listener.
type LogPublisher struct {
	Logger *log.Logger
}

func (p LogPublisher) Publish(_ context.Context, sessionID string, e conditions.DomainEvent) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}
	logf := log.Printf
	if p.Logger != nil {
		logf = p.Logger.Printf
	}
	logf("event session=%s type=%s payload=%s", sessionID, e.Type, payload)
	return nil
}

// FanOut delivers to every publisher and joins their errors.
type FanOut []ports.Publisher

func (f FanOut) Publish(ctx context.Context, sessionID string, e conditions.DomainEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, sessionID, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps events in memory for tests and the debug feed.
type Recorder struct {
	mu     sync.Mutex
	events []Published
}

type Published struct {
	SessionID string
	Event     conditions.DomainEvent
}

func (r *Recorder) Publish(_ context.Context, sessionID string, e conditions.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Published{SessionID: sessionID, Event: e})
	return nil
}

func (r *Recorder) Events() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Published(nil), r.events...)
}
