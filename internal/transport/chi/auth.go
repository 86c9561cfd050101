package chi

import (
	"context"
	"net/http"
	"strings"
)

type adminCtxKey struct{}

// IsAdmin reports whether the request carried a valid admin token.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminCtxKey{}).(bool)
	return ok
}

// AdminAuth validates admin Bearer tokens. If no keys are configured,
// authentication is disabled and every caller is treated as admin.
type AdminAuth struct {
	keys map[string]struct{}
}

// NewAdminAuth builds the checker from the configured keys.
func NewAdminAuth(apiKeys []string) *AdminAuth {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	return &AdminAuth{keys: keys}
}

// Identify marks admin callers in the request context and never rejects.
// Public routes that also serve admins (drafts in the blog list) use it.
func (a *AdminAuth) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.check(r) == "" {
			r = r.WithContext(context.WithValue(r.Context(), adminCtxKey{}, true))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects callers without a valid admin token.
func (a *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reason := a.check(r); reason != "" {
			writeError(w, http.StatusUnauthorized, reason)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminCtxKey{}, true)))
	})
}

// check returns the rejection reason, or "" for an admin caller.
func (a *AdminAuth) check(r *http.Request) string {
	if len(a.keys) == 0 {
		return ""
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "missing authorization header"
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(auth, bearerPrefix) {
		return "authorization header must use Bearer scheme"
	}

	if _, ok := a.keys[auth[len(bearerPrefix):]]; !ok {
		return "invalid api key"
	}
	return ""
}
