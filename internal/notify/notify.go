// Package notify is the fire-and-forget email side-channel. Lifecycle
// code enqueues and moves on; delivery failures are logged and
// swallowed, never surfaced to the caller and never retried.
package notify

import (
	"sync"

	"automart/internal/utils"
)

type Mail struct {
	Subject    string
	Body       string
	Recipients []string
	HTML       string
}

// Sender delivers a single message. Implementations must be safe for
// use from the single worker goroutine.
type Sender interface {
	Send(m Mail) error
}

// Enqueuer is what the lifecycle services depend on.
type Enqueuer interface {
	Enqueue(m Mail)
}

// Dispatcher pushes mail through a buffered queue to one worker.
type Dispatcher struct {
	sender Sender
	queue  chan Mail
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Mail, queueSize),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue hands a mail to the worker without blocking. When the queue
// is full or the dispatcher is closed the mail is dropped; this
// channel is best-effort by contract.
func (d *Dispatcher) Enqueue(m Mail) {
	if len(m.Recipients) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		utils.LogEvent("", "notify", "enqueue", "dropped (dispatcher closed): "+m.Subject)
		return
	}

	select {
	case d.queue <- m:
	default:
		utils.LogEvent("", "notify", "enqueue", "dropped (queue full): "+m.Subject)
	}
}

// Close stops intake, drains the queue and waits for the worker.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for m := range d.queue {
		if err := d.sender.Send(m); err != nil {
			utils.LogEvent("", "notify", "send", "delivery failed: "+err.Error())
		}
	}
}
