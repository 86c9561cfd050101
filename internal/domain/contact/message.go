package contact

import (
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// Limits.
const (
	MaxNameLength    = 100
	MaxSubjectLength = 200
	MaxMessageLength = 5000
)

// Message is a contact form submission (immutable value object).
type Message struct {
	id        string
	name      string
	email     string
	subject   string
	body      string
	createdAt time.Time
	read      bool
}

// New validates a submission and creates a Message.
func New(name, email, subject, body string, now time.Time) (Message, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Message{}, domain.Validationf("name is required")
	}
	if len(name) > MaxNameLength {
		return Message{}, domain.Validationf("name too long (max %d)", MaxNameLength)
	}
	email = subscriber.NormalizeEmail(email)
	if !subscriber.ValidEmail(email) {
		return Message{}, domain.Validationf("invalid email address")
	}
	subject = strings.TrimSpace(subject)
	if len(subject) > MaxSubjectLength {
		return Message{}, domain.Validationf("subject too long (max %d)", MaxSubjectLength)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return Message{}, domain.Validationf("message is required")
	}
	if len(body) > MaxMessageLength {
		return Message{}, domain.Validationf("message too long (max %d)", MaxMessageLength)
	}
	return Message{name: name, email: email, subject: subject, body: body, createdAt: now.UTC()}, nil
}

// Reconstruct creates a Message without validation (storage hydration).
func Reconstruct(id, name, email, subject, body string, createdAt time.Time, read bool) Message {
	return Message{id: id, name: name, email: email, subject: subject, body: body, createdAt: createdAt, read: read}
}

// WithID returns a copy carrying the store-assigned id.
func (m Message) WithID(id string) Message {
	m.id = id
	return m
}

// ID returns the store document id.
func (m Message) ID() string { return m.id }

// Name returns the sender name.
func (m Message) Name() string { return m.name }

// Email returns the normalized sender address.
func (m Message) Email() string { return m.email }

// Subject returns the subject line (may be empty).
func (m Message) Subject() string { return m.subject }

// Body returns the message text.
func (m Message) Body() string { return m.body }

// CreatedAt returns the submission time.
func (m Message) CreatedAt() time.Time { return m.createdAt }

// Read reports whether the owner marked the message as read.
func (m Message) Read() bool { return m.read }
