package notify

import (
	"errors"
	"sync"
	"testing"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Mail
	err  error
}

func (r *recordingSender) Send(m Mail) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m)
	return nil
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func TestDispatcherDeliversQueuedMail(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 8)

	d.Enqueue(Mail{Subject: "a", Recipients: []string{"x@example.com"}})
	d.Enqueue(Mail{Subject: "b", Recipients: []string{"y@example.com"}})
	d.Close()

	if sender.count() != 2 {
		t.Fatalf("delivered %d mails, want 2", sender.count())
	}
}

func TestDispatcherDropsWithoutRecipients(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 8)

	d.Enqueue(Mail{Subject: "no-recipient"})
	d.Close()

	if sender.count() != 0 {
		t.Fatalf("delivered %d mails, want 0", sender.count())
	}
}

func TestDispatcherEnqueueAfterCloseIsNoop(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 8)
	d.Close()

	// must not panic on the closed channel
	d.Enqueue(Mail{Subject: "late", Recipients: []string{"x@example.com"}})

	if sender.count() != 0 {
		t.Fatalf("delivered %d mails, want 0", sender.count())
	}
}

func TestDispatcherSwallowsSendErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, 8)

	d.Enqueue(Mail{Subject: "a", Recipients: []string{"x@example.com"}})
	d.Close()
	// no panic, no error surfaced; delivery failure is logged only
}
