package subscriber

import (
	"maps"
	"regexp"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
)

// Preference names with default-on semantics.
const (
	PrefNewsletter  = "newsletter"
	PrefBlogUpdates = "blogUpdates"
)

// MaxNameLength caps the optional display name.
const MaxNameLength = 100

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Subscriber is a newsletter subscriber (immutable value object). The
// normalized email doubles as the store document id.
type Subscriber struct {
	email        string
	name         string
	source       string
	subscribedAt time.Time
	preferences  map[string]bool
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether a normalized address looks deliverable.
func ValidEmail(email string) bool {
	return len(email) <= 254 && emailRegex.MatchString(email)
}

// DefaultPreferences returns a fresh preference map with every default on.
func DefaultPreferences() map[string]bool {
	return map[string]bool{PrefNewsletter: true, PrefBlogUpdates: true}
}

// New validates input and creates a Subscriber. Supplied preferences are
// merged over the defaults.
func New(email, name, source string, prefs map[string]bool, now time.Time) (Subscriber, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return Subscriber{}, domain.Validationf("email is required")
	}
	if !ValidEmail(email) {
		return Subscriber{}, domain.Validationf("invalid email address")
	}
	name = strings.TrimSpace(name)
	if len(name) > MaxNameLength {
		return Subscriber{}, domain.Validationf("name too long (max %d)", MaxNameLength)
	}

	merged := DefaultPreferences()
	maps.Copy(merged, prefs)

	return Subscriber{
		email:        email,
		name:         name,
		source:       strings.TrimSpace(source),
		subscribedAt: now.UTC(),
		preferences:  merged,
	}, nil
}

// Reconstruct creates a Subscriber without validation (storage hydration).
// Missing preferences fall back to the defaults.
func Reconstruct(email, name, source string, subscribedAt time.Time, prefs map[string]bool) Subscriber {
	merged := DefaultPreferences()
	maps.Copy(merged, prefs)
	return Subscriber{
		email:        email,
		name:         name,
		source:       source,
		subscribedAt: subscribedAt,
		preferences:  merged,
	}
}

// Email returns the normalized address.
func (s Subscriber) Email() string { return s.email }

// Name returns the display name (may be empty).
func (s Subscriber) Name() string { return s.name }

// Source returns where the subscription came from (may be empty).
func (s Subscriber) Source() string { return s.source }

// SubscribedAt returns the subscription time.
func (s Subscriber) SubscribedAt() time.Time { return s.subscribedAt }

// Preferences returns a copy of the preference map.
func (s Subscriber) Preferences() map[string]bool { return maps.Clone(s.preferences) }

// Wants reports whether a named preference is on. Unknown names count as on.
func (s Subscriber) Wants(pref string) bool {
	on, ok := s.preferences[pref]
	return !ok || on
}
