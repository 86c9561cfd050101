package post

import "strings"

// DeriveSlug normalizes a title into a URL-safe identifier: lowercase, drop
// everything except letters, digits, spaces and hyphens, turn space runs into
// one hyphen, collapse repeated hyphens and trim hyphens at both ends.
// DeriveSlug(DeriveSlug(s)) == DeriveSlug(s).
func DeriveSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := true // suppresses leading hyphens
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
