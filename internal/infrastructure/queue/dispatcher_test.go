package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	fail map[string]bool
	done chan struct{}
	want int
}

func newRecordingSender(want int) *recordingSender {
	return &recordingSender{
		fail: make(map[string]bool),
		done: make(chan struct{}),
		want: want,
	}
}

func (s *recordingSender) Send(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	if len(s.sent) == s.want {
		close(s.done)
	}
	if s.fail[to] {
		return errors.New("smtp: connection refused")
	}
	return nil
}

func (s *recordingSender) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.sent))
	copy(out, s.sent)
	return out
}

func waitFor(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}
}

func TestDispatcher_DeliversNotifications(t *testing.T) {
	sender := newRecordingSender(2)
	d := NewDispatcher(2, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.OrderNotification{Reference: "r1", Recipient: "a@example.com", Subject: "Order summary", Body: "body"})
	d.Enqueue(ports.OrderNotification{Reference: "r2", Recipient: "b@example.com", Subject: "Order summary", Body: "body"})

	waitFor(t, sender.done)

	got := sender.recipients()
	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
}

func TestDispatcher_FailureDoesNotStopWorker(t *testing.T) {
	sender := newRecordingSender(2)
	sender.fail["broken@example.com"] = true

	// Single worker so both messages share a shard and ordering is fixed.
	d := NewDispatcher(1, sender, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.OrderNotification{Reference: "r1", Recipient: "broken@example.com"})
	d.Enqueue(ports.OrderNotification{Reference: "r2", Recipient: "ok@example.com"})

	waitFor(t, sender.done)

	got := sender.recipients()
	if len(got) != 2 || got[1] != "ok@example.com" {
		t.Fatalf("worker did not survive a failed delivery: %v", got)
	}
}

func TestDispatcher_ShardIsStablePerRecipient(t *testing.T) {
	d := NewDispatcher(4, newRecordingSender(0), zerolog.Nop())

	first := d.shardIndex("alice@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("alice@example.com") != first {
			t.Fatalf("shard index must be deterministic per recipient")
		}
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	// Workers are never started, so the single shard's buffer fills up and
	// every further Enqueue must drop instead of blocking the caller.
	d := NewDispatcher(1, newRecordingSender(0), zerolog.Nop())

	for i := 0; i < channelBuffer+10; i++ {
		d.Enqueue(ports.OrderNotification{Reference: "r", Recipient: "a@example.com"})
	}

	if got := len(d.workers[0]); got != channelBuffer {
		t.Fatalf("expected a full buffer of %d, got %d", channelBuffer, got)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newRecordingSender(0), zerolog.Nop())

	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
