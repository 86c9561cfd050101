package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/folio/internal/docstore"
	domcontact "github.com/kailas-cloud/folio/internal/domain/contact"
)

// Collection is the store collection holding contact messages.
const Collection = "contactMessages"

const (
	fieldName      = "name"
	fieldEmail     = "email"
	fieldSubject   = "subject"
	fieldMessage   = "message"
	fieldCreatedAt = "createdAt"
	fieldRead      = "read"
)

type store interface {
	Create(ctx context.Context, collection, id string, fields docstore.Record) (docstore.Record, error)
}

// Repo implements usecase/contact.Repository.
type Repo struct {
	store store
}

// New creates a contact message repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a message under a store-minted id.
func (r *Repo) Create(ctx context.Context, m domcontact.Message) (domcontact.Message, error) {
	rec, err := r.store.Create(ctx, Collection, "", docstore.Record{
		fieldName:      m.Name(),
		fieldEmail:     m.Email(),
		fieldSubject:   m.Subject(),
		fieldMessage:   m.Body(),
		fieldCreatedAt: m.CreatedAt(),
		fieldRead:      m.Read(),
	})
	if err != nil {
		return domcontact.Message{}, fmt.Errorf("create contact message: %w", err)
	}
	if rec == nil || rec.ID() == "" {
		return domcontact.Message{}, errors.New("create contact message: store returned no id")
	}
	return m.WithID(rec.ID()), nil
}
