package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/kawuz/coffee-shop-api/internal/api/metrics"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// MailSender delivers a single plain-text message.
type MailSender interface {
	Send(to, subject, body string) error
}

// Dispatcher fans order notifications out to a fixed set of workers, sharded
// by recipient so one slow mailbox cannot reorder another user's messages.
// Delivery is best-effort: failures are logged and counted, never retried
// and never reported back to the order workflow.
type Dispatcher struct {
	workers []chan ports.OrderNotification
	sender  MailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender MailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.OrderNotification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a notification to the worker responsible for its recipient.
// Never blocks: when the shard's buffer is full the notification is dropped,
// counted, and logged, keeping delivery strictly best-effort.
func (d *Dispatcher) Enqueue(n ports.OrderNotification) {
	select {
	case d.workers[d.shardIndex(n.Recipient)] <- n:
	default:
		metrics.EmailsSentTotal.WithLabelValues("dropped").Inc()
		d.log.Error().
			Str("order_ref", n.Reference).
			Msg("order notification dropped, worker queue full")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderNotification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.Send(n.Recipient, n.Subject, n.Body); err != nil {
				metrics.EmailsSentTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("order_ref", n.Reference).
					Int("worker_id", id).
					Msg("order notification delivery failed")
				continue
			}
			metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
			d.log.Info().
				Str("order_ref", n.Reference).
				Msg("order notification sent")
		}
	}
}
