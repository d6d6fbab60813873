package services

import (
	"sync"
	"testing"
)

type captureSender struct {
	mu   sync.Mutex
	sent []EmailJob
}

func (c *captureSender) Send(job EmailJob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, job)
	return nil
}

func TestMailQueueDeliversEnqueuedJobs(t *testing.T) {
	sender := &captureSender{}
	q := NewMailQueue(sender, 8)
	q.Start()

	q.Enqueue("driver@example.com", EmailBookingReceived, "subject", "body")
	q.Enqueue("passenger@example.com", EmailBookingConfirmed, "subject", "body")
	q.Stop()

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 delivered jobs, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "driver@example.com" || sender.sent[1].To != "passenger@example.com" {
		t.Fatalf("jobs delivered out of order: %+v", sender.sent)
	}
	if sender.sent[0].ID == "" || sender.sent[0].ID == sender.sent[1].ID {
		t.Fatal("each job needs a distinct non-empty id")
	}
}

func TestMailQueueDropsWhenFull(t *testing.T) {
	sender := &captureSender{}
	q := NewMailQueue(sender, 1)
	// worker not started: the buffer holds one job, the second is dropped
	q.Enqueue("a@example.com", EmailWelcome, "s", "b")
	q.Enqueue("b@example.com", EmailWelcome, "s", "b")

	q.Start()
	q.Stop()

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 delivered job, got %d", len(sender.sent))
	}
	if sender.sent[0].To != "a@example.com" {
		t.Fatalf("wrong job survived: %+v", sender.sent[0])
	}
}

func TestMailSubjectLocalization(t *testing.T) {
	en := MailSubject(EmailBookingConfirmed, "en")
	es := MailSubject(EmailBookingConfirmed, "es")
	if en == "" || es == "" {
		t.Fatal("subjects must exist for both languages")
	}
	if en == es {
		t.Fatal("expected distinct subjects per language")
	}
	// unknown language falls back to english
	if got := MailSubject(EmailBookingConfirmed, "fr"); got != en {
		t.Fatalf("expected english fallback, got %q", got)
	}
	// unknown type still yields a usable subject
	if got := MailSubject("unknown_type", "en"); got == "" {
		t.Fatal("unknown email type must not produce an empty subject")
	}
}
