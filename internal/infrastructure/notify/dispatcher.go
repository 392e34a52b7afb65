// Package notify implements the outbound mail boundary: a fire-and-forget
// dispatcher feeding a fixed set of workers, so a slow relay never blocks a
// password-reset request.
package notify

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

type resetMessage struct {
	recipient string
	token     string
}

// Dispatcher routes reset messages to workers by consistent hashing on the
// recipient, preserving per-recipient ordering (a newer token is always
// delivered after an older one).
type Dispatcher struct {
	workers []chan resetMessage
	sender  Sender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan resetMessage, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan resetMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueueReset hands off a reset token for delivery and returns immediately.
// Implements ports.Notifier.
func (d *Dispatcher) EnqueueReset(recipient, token string) {
	msg := resetMessage{recipient: recipient, token: token}
	select {
	case d.workers[d.shardIndex(recipient)] <- msg:
	default:
		// Queue full: drop rather than block the request path. The user can
		// simply request another reset.
		d.log.Warn().Str("recipient", recipient).Msg("reset mail queue full, message dropped")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan resetMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.SendReset(msg.recipient, msg.token); err != nil {
				d.log.Error().Int("worker_id", id).Str("recipient", msg.recipient).Err(err).Msg("reset mail delivery failed")
			}
		}
	}
}
