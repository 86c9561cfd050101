package subscriber

import (
	"github.com/kailas-cloud/folio/internal/docstore"
	domsub "github.com/kailas-cloud/folio/internal/domain/subscriber"
)

const (
	fieldEmail        = "email"
	fieldName         = "name"
	fieldSource       = "source"
	fieldSubscribedAt = "subscribedAt"
	fieldPreferences  = "preferences"
)

func subscriberToRecord(s domsub.Subscriber) docstore.Record {
	rec := docstore.Record{
		fieldEmail:        s.Email(),
		fieldSubscribedAt: s.SubscribedAt(),
		fieldPreferences:  s.Preferences(),
	}
	if s.Name() != "" {
		rec[fieldName] = s.Name()
	}
	if s.Source() != "" {
		rec[fieldSource] = s.Source()
	}
	return rec
}

// subscriberFromRecord hydrates a Subscriber. Older documents may lack the
// email field; the document id is the normalized address.
func subscriberFromRecord(rec docstore.Record) domsub.Subscriber {
	email := rec.String(fieldEmail)
	if email == "" {
		email = rec.ID()
	}
	return domsub.Reconstruct(
		email,
		rec.String(fieldName),
		rec.String(fieldSource),
		rec.Time(fieldSubscribedAt),
		rec.Bools(fieldPreferences),
	)
}
