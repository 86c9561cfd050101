package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func adminProbe() (http.Handler, *bool) {
	var admin bool
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	}), &admin
}

func TestRequire_NoKeys_PassThrough(t *testing.T) {
	for _, keys := range [][]string{nil, {"", ""}} {
		next, admin := adminProbe()
		rr := httptest.NewRecorder()
		NewAdminAuth(keys).Require(next).ServeHTTP(rr, httptest.NewRequest("GET", "/api/subscribers", http.NoBody))

		if rr.Code != http.StatusOK {
			t.Errorf("keys %q: got %d, want %d", keys, rr.Code, http.StatusOK)
		}
		if !*admin {
			t.Errorf("keys %q: caller should be admin when auth is disabled", keys)
		}
	}
}

func TestRequire_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", "missing authorization header"},
		{"wrong scheme", "Basic c2VjcmV0", "authorization header must use Bearer scheme"},
		{"wrong key", "Bearer nope", "invalid api key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _ := adminProbe()
			req := httptest.NewRequest("GET", "/api/subscribers", http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			NewAdminAuth([]string{"secret"}).Require(next).ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("got %d, want %d", rr.Code, http.StatusUnauthorized)
			}
			var body envelope
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success || body.Message != tt.want {
				t.Errorf("body = %+v, want message %q", body, tt.want)
			}
		})
	}
}

func TestRequire_ValidKey(t *testing.T) {
	next, admin := adminProbe()
	req := httptest.NewRequest("GET", "/api/subscribers", http.NoBody)
	req.Header.Set("Authorization", "Bearer key2")
	rr := httptest.NewRecorder()
	NewAdminAuth([]string{"key1", "key2"}).Require(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !*admin {
		t.Errorf("got %d admin=%v", rr.Code, *admin)
	}
}

func TestIdentify_NeverRejects(t *testing.T) {
	auth := NewAdminAuth([]string{"secret"})

	next, admin := adminProbe()
	rr := httptest.NewRecorder()
	auth.Identify(next).ServeHTTP(rr, httptest.NewRequest("GET", "/api/blog", http.NoBody))
	if rr.Code != http.StatusOK || *admin {
		t.Errorf("anonymous: got %d admin=%v", rr.Code, *admin)
	}

	next, admin = adminProbe()
	req := httptest.NewRequest("GET", "/api/blog", http.NoBody)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	auth.Identify(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !*admin {
		t.Errorf("admin: got %d admin=%v", rr.Code, *admin)
	}
}
