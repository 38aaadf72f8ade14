package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	skafka "github.com/segmentio/kafka-go"

	"shipment-tracker-web/internal/ports"
)

// fakeWriter is a test writer that records messages written.
type fakeWriter struct {
	msgs   []skafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...skafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublish(t *testing.T) {
	fw := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(fw)

	e := ports.Event{
		Type:       ports.EventStatusUpdateCreated,
		TrackingID: "TRK-1",
		At:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Data:       map[string]any{"status": "delivered"},
	}
	if err := p.Publish(context.Background(), "TRK-1", e); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(fw.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(fw.msgs))
	}
	msg := fw.msgs[0]
	if string(msg.Key) != "TRK-1" {
		t.Fatalf("key = %q, want TRK-1", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != ports.EventStatusUpdateCreated {
		t.Fatalf("unexpected headers: %+v", msg.Headers)
	}

	var decoded ports.Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Type != e.Type || decoded.Data["status"] != "delivered" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}

	if err := p.Close(); err != nil || !fw.closed {
		t.Fatalf("close: %v closed=%v", err, fw.closed)
	}
}

func TestKafkaPublishWriteError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")})

	if err := p.Publish(context.Background(), "k", ports.Event{Type: "x"}); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestNewKafkaPublisherValidation(t *testing.T) {
	if _, err := NewKafkaPublisher("", "topic"); err == nil {
		t.Fatalf("expected error without broker")
	}
}
