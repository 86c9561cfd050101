package contact

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
)

func TestNew(t *testing.T) {
	m, err := New(" Ann ", "ANN@Example.org", " Hi ", " Hello there ", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name() != "Ann" || m.Email() != "ann@example.org" || m.Subject() != "Hi" || m.Body() != "Hello there" {
		t.Errorf("unexpected normalization: %+v", m)
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name, sender, email, body string
	}{
		{"missing name", "", "a@b.co", "x"},
		{"bad email", "A", "nope", "x"},
		{"missing body", "A", "a@b.co", "  "},
		{"body too long", "A", "a@b.co", strings.Repeat("x", MaxMessageLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sender, tt.email, "", tt.body, time.Now())
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}
