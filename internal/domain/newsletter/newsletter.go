package newsletter

import (
	"strings"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Limits.
const (
	MaxSubjectLength = 200
	MaxContentSize   = 131072
)

// Issue is one newsletter to broadcast. Content is markdown.
type Issue struct {
	subject string
	content string
}

// New validates and creates an Issue.
func New(subject, content string) (Issue, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return Issue{}, domain.Validationf("subject is required")
	}
	if len(subject) > MaxSubjectLength {
		return Issue{}, domain.Validationf("subject too long (max %d)", MaxSubjectLength)
	}
	if strings.TrimSpace(content) == "" {
		return Issue{}, domain.Validationf("content is required")
	}
	if len(content) > MaxContentSize {
		return Issue{}, domain.Validationf("content too large (max %d bytes)", MaxContentSize)
	}
	return Issue{subject: subject, content: content}, nil
}

// Subject returns the subject line.
func (i Issue) Subject() string { return i.subject }

// Content returns the markdown body.
func (i Issue) Content() string { return i.content }
