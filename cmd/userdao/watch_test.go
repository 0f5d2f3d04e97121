package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/exparity/userdao/internal/events"
)

// fakeSubscriber replays a fixed set of payloads then closes the channel.
type fakeSubscriber struct {
	payloads [][]byte
	topic    string
}

func (f *fakeSubscriber) Subscribe(_ context.Context, topic string) (<-chan []byte, error) {
	f.topic = topic
	ch := make(chan []byte, len(f.payloads))
	for _, p := range f.payloads {
		ch <- p
	}
	close(ch)
	return ch, nil
}

func (f *fakeSubscriber) Close() error { return nil }

func TestFormatEvent(t *testing.T) {
	data, err := json.Marshal(events.UserSaved{Op: "op-abc12345", User: sampleUser()})
	if err != nil {
		t.Fatal(err)
	}
	line, err := formatEvent(data)
	if err != nil {
		t.Fatalf("formatEvent: %v", err)
	}
	want := "op-abc12345 saved user 7 j.doe (Jane Doe, 1 comments)"
	if line != want {
		t.Fatalf("formatEvent = %q, want %q", line, want)
	}
}

func TestFormatEvent_Errors(t *testing.T) {
	if _, err := formatEvent([]byte("{")); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := formatEvent([]byte(`{"op":"op-1"}`)); err == nil {
		t.Error("expected error for an event without a user")
	}
}

func TestWatchEvents(t *testing.T) {
	good, _ := json.Marshal(events.UserSaved{Op: "op-1", User: sampleUser()})
	sub := &fakeSubscriber{payloads: [][]byte{good, []byte("garbage"), good}}

	var out bytes.Buffer
	if err := watchEvents(context.Background(), sub, &out); err != nil {
		t.Fatalf("watchEvents: %v", err)
	}
	if sub.topic != events.TopicAll {
		t.Errorf("subscribed to %q, want %q", sub.topic, events.TopicAll)
	}
	if got := strings.Count(out.String(), "saved user 7"); got != 2 {
		t.Fatalf("expected 2 printed events, got %d:\n%s", got, out.String())
	}
}
