package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"jombo/internal/utils"

	"github.com/google/uuid"
)

// EmailJob is one queued outbound email. The ID exists only for log
// correlation between enqueue and delivery.
type EmailJob struct {
	ID        string
	To        string
	EmailType string
	Subject   string
	Body      string
}

// MailSender delivers a single email. Implementations must be safe for use
// from the queue worker goroutine.
type MailSender interface {
	Send(job EmailJob) error
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	Addr string
	From string
}

func (s SMTPSender) Send(job EmailJob) error {
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + job.To,
		"Subject: " + job.Subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		job.Body,
	}, "\r\n")
	return smtp.SendMail(s.Addr, nil, s.From, []string{job.To}, []byte(msg))
}

// LogSender records emails in the log instead of delivering them. Default
// driver for development and tests.
type LogSender struct{}

func (LogSender) Send(job EmailJob) error {
	utils.LogEvent(job.ID, "mail", "deliver", fmt.Sprintf("to=%s type=%s subject=%q", job.To, job.EmailType, job.Subject))
	return nil
}

// MailQueue decouples email delivery from the request path. Enqueue never
// blocks: when the buffer is full the job is dropped and logged, because a
// slow relay must not stall or fail a booking transition.
type MailQueue struct {
	Sender MailSender
	jobs   chan EmailJob
	done   chan struct{}
}

func NewMailQueue(sender MailSender, buffer int) *MailQueue {
	if buffer <= 0 {
		buffer = 256
	}
	return &MailQueue{
		Sender: sender,
		jobs:   make(chan EmailJob, buffer),
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine draining the queue.
func (q *MailQueue) Start() {
	go func() {
		defer close(q.done)
		for job := range q.jobs {
			if err := q.Sender.Send(job); err != nil {
				utils.LogEvent(job.ID, "mail", "deliver_failed", fmt.Sprintf("to=%s err=%v", job.To, err))
			}
		}
	}()
}

// Enqueue hands a job to the worker, fire-and-forget.
func (q *MailQueue) Enqueue(to, emailType, subject, body string) {
	job := EmailJob{
		ID:        uuid.NewString(),
		To:        to,
		EmailType: emailType,
		Subject:   subject,
		Body:      body,
	}
	select {
	case q.jobs <- job:
		utils.LogEvent(job.ID, "mail", "enqueue", fmt.Sprintf("to=%s type=%s", to, emailType))
	default:
		utils.LogEvent(job.ID, "mail", "queue_full", fmt.Sprintf("dropped to=%s type=%s", to, emailType))
	}
}

// Stop drains remaining jobs and waits for the worker to exit.
func (q *MailQueue) Stop() {
	close(q.jobs)
	<-q.done
}

// Email types emitted by the core.
const (
	EmailWelcome          = "welcome"
	EmailBookingReceived  = "booking_received"
	EmailBookingConfirmed = "booking_confirmed"
	EmailBookingRejected  = "booking_rejected"
	EmailBookingCancelled = "booking_cancelled"
	EmailNewMessage       = "new_message"
)

var mailSubjects = map[string]map[string]string{
	"en": {
		EmailWelcome:          "Welcome to Jombo!",
		EmailBookingReceived:  "You have a new booking request",
		EmailBookingConfirmed: "Your booking has been confirmed",
		EmailBookingRejected:  "Your booking has been rejected",
		EmailBookingCancelled: "A booking has been cancelled",
		EmailNewMessage:       "New message in your trip conversation",
	},
	"es": {
		EmailWelcome:          "¡Bienvenido a Jombo!",
		EmailBookingReceived:  "Tienes una nueva solicitud de reserva",
		EmailBookingConfirmed: "Tu reserva ha sido confirmada",
		EmailBookingRejected:  "Tu reserva ha sido rechazada",
		EmailBookingCancelled: "Una reserva ha sido cancelada",
		EmailNewMessage:       "Nuevo mensaje en la conversación de tu viaje",
	},
}

// MailSubject resolves the localized subject for an email type, defaulting
// to English.
func MailSubject(emailType, language string) string {
	if subjects, ok := mailSubjects[language]; ok {
		if s, ok := subjects[emailType]; ok {
			return s
		}
	}
	if s, ok := mailSubjects["en"][emailType]; ok {
		return s
	}
	return "Notification from Jombo"
}
