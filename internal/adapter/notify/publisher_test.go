package notify

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"vitalsim/internal/domain/conditions"
)

type failingPublisher struct{ err error }

func (p failingPublisher) Publish(context.Context, string, conditions.DomainEvent) error {
	return p.err
}

func TestFanOut_DeliversToAllAndJoinsErrors(t *testing.T) {
	rec := &Recorder{}
	boom := errors.New("listener gone")
	fan := FanOut{failingPublisher{err: boom}, nil, rec}

	err := fan.Publish(context.Background(), "s1", conditions.DomainEvent{Type: conditions.EventVisualCue})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	got := rec.Events()
	if len(got) != 1 || got[0].SessionID != "s1" || got[0].Event.Type != conditions.EventVisualCue {
		t.Fatalf("recorded = %+v", got)
	}
}

func TestLogPublisher_WritesTypeAndPayload(t *testing.T) {
	var buf bytes.Buffer
	p := LogPublisher{Logger: log.New(&buf, "", 0)}
	err := p.Publish(context.Background(), "s1", conditions.DomainEvent{
		Type:    conditions.EventItemConsumed,
		Payload: map[string]any{"item": "Flask"},
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	line := buf.String()
	if !strings.Contains(line, "type=item-consumed") || !strings.Contains(line, `"item":"Flask"`) {
		t.Fatalf("log line = %q", line)
	}
}
