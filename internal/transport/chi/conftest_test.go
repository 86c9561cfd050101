package chi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gochi "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/contact"
	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
	domnews "github.com/kailas-cloud/folio/internal/domain/newsletter"
	"github.com/kailas-cloud/folio/internal/domain/post"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
	bloguc "github.com/kailas-cloud/folio/internal/usecase/blog"
	contactuc "github.com/kailas-cloud/folio/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/folio/internal/usecase/health"
	subscribeuc "github.com/kailas-cloud/folio/internal/usecase/subscribe"
)

const testAdminKey = "admin-secret"

// --- blog ---

type mockBlog struct {
	createFn func(ctx context.Context, d post.Draft) (post.Post, error)
	getFn    func(ctx context.Context, slug string, admin bool) (post.Post, error)
	listFn   func(ctx context.Context, q bloguc.ListQuery) ([]post.Post, domain.Pagination, error)
	updateFn func(ctx context.Context, slug string, p *post.Patch) (post.Post, error)
	deleteFn func(ctx context.Context, slug string) error
	viewFn   func(ctx context.Context, slug string) (int64, error)
	likeFn   func(ctx context.Context, slug, liker string) (int, bool, error)
}

func (m *mockBlog) Create(ctx context.Context, d post.Draft) (post.Post, error) {
	return m.createFn(ctx, d)
}

func (m *mockBlog) Get(ctx context.Context, slug string, admin bool) (post.Post, error) {
	return m.getFn(ctx, slug, admin)
}

func (m *mockBlog) List(ctx context.Context, q bloguc.ListQuery) ([]post.Post, domain.Pagination, error) {
	return m.listFn(ctx, q)
}

func (m *mockBlog) Update(ctx context.Context, slug string, p *post.Patch) (post.Post, error) {
	return m.updateFn(ctx, slug, p)
}

func (m *mockBlog) Delete(ctx context.Context, slug string) error { return m.deleteFn(ctx, slug) }

func (m *mockBlog) View(ctx context.Context, slug string) (int64, error) { return m.viewFn(ctx, slug) }

func (m *mockBlog) Like(ctx context.Context, slug, liker string) (int, bool, error) {
	return m.likeFn(ctx, slug, liker)
}

// --- subscribe ---

type mockSubscribe struct {
	subscribeFn   func(ctx context.Context, req subscribeuc.Request) (subscribeuc.Result, error)
	unsubscribeFn func(ctx context.Context, email string) error
	listFn        func(ctx context.Context, page, limit int) ([]subscriber.Subscriber, domain.Pagination, error)
}

func (m *mockSubscribe) Subscribe(ctx context.Context, req subscribeuc.Request) (subscribeuc.Result, error) {
	return m.subscribeFn(ctx, req)
}

func (m *mockSubscribe) Unsubscribe(ctx context.Context, email string) error {
	return m.unsubscribeFn(ctx, email)
}

func (m *mockSubscribe) List(ctx context.Context, page, limit int) ([]subscriber.Subscriber, domain.Pagination, error) {
	return m.listFn(ctx, page, limit)
}

// --- newsletter ---

type mockNewsletter struct {
	sendFn func(ctx context.Context, subject, content string) (domnews.Report, error)
}

func (m *mockNewsletter) Send(ctx context.Context, subject, content string) (domnews.Report, error) {
	return m.sendFn(ctx, subject, content)
}

// --- linkedin ---

type mockLinkedIn struct {
	createFn   func(ctx context.Context, f domli.Fields) (domli.Item, error)
	getFn      func(ctx context.Context, id string) (domli.Item, error)
	listFn     func(ctx context.Context, f domli.ListFilter) ([]domli.Item, error)
	updateFn   func(ctx context.Context, id string, p domli.Patch) (domli.Item, error)
	deleteFn   func(ctx context.Context, id string) error
	generateFn func(ctx context.Context, req domli.GenerateRequest) (domli.Item, error)
}

func (m *mockLinkedIn) Create(ctx context.Context, f domli.Fields) (domli.Item, error) {
	return m.createFn(ctx, f)
}

func (m *mockLinkedIn) Get(ctx context.Context, id string) (domli.Item, error) { return m.getFn(ctx, id) }

func (m *mockLinkedIn) List(ctx context.Context, f domli.ListFilter) ([]domli.Item, error) {
	return m.listFn(ctx, f)
}

func (m *mockLinkedIn) Update(ctx context.Context, id string, p domli.Patch) (domli.Item, error) {
	return m.updateFn(ctx, id, p)
}

func (m *mockLinkedIn) Delete(ctx context.Context, id string) error { return m.deleteFn(ctx, id) }

func (m *mockLinkedIn) Generate(ctx context.Context, req domli.GenerateRequest) (domli.Item, error) {
	return m.generateFn(ctx, req)
}

// --- contact ---

type mockContact struct {
	submitFn func(ctx context.Context, req contactuc.Request) (contact.Message, bool, error)
}

func (m *mockContact) Submit(ctx context.Context, req contactuc.Request) (contact.Message, bool, error) {
	return m.submitFn(ctx, req)
}

// --- health ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- harness ---

type testAPI struct {
	blog       *mockBlog
	subscribe  *mockSubscribe
	newsletter *mockNewsletter
	linkedin   *mockLinkedIn
	contact    *mockContact
	health     *mockHealth
	router     http.Handler
}

func newTestAPI() *testAPI {
	a := &testAPI{
		blog:       &mockBlog{},
		subscribe:  &mockSubscribe{},
		newsletter: &mockNewsletter{},
		linkedin:   &mockLinkedIn{},
		contact:    &mockContact{},
		health:     &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}},
	}
	s := NewServer(Services{
		Blog:       a.blog,
		Subscribe:  a.subscribe,
		Newsletter: a.newsletter,
		LinkedIn:   a.linkedin,
		Contact:    a.contact,
		Health:     a.health,
	}, NewAdminAuth([]string{testAdminKey}), nil)

	r := gochi.NewRouter()
	s.Routes(r)
	a.router = r
	return a
}

// do sends a request; admin adds the bearer token.
func (a *testAPI) do(t *testing.T, method, target, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	req.RemoteAddr = "203.0.113.7:5555"
	if admin {
		req.Header.Set("Authorization", "Bearer "+testAdminKey)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

type testEnvelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *paginationJSON `json:"pagination"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}
