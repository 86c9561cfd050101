package newsletter

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/domain/subscriber"
)

// --- Mocks ---

type mockSubs struct {
	subs []subscriber.Subscriber
	err  error
}

func (m *mockSubs) ListAll(context.Context) ([]subscriber.Subscriber, error) { return m.subs, m.err }

type mockMailer struct {
	attempted []string
	fail      map[string]bool
	ctxErrs   []error
}

func (m *mockMailer) Send(ctx context.Context, e domain.Email) (domain.SendResult, error) {
	m.attempted = append(m.attempted, e.To)
	m.ctxErrs = append(m.ctxErrs, ctx.Err())
	if m.fail[e.To] {
		return domain.SendResult{}, errors.New("mailbox unavailable")
	}
	return domain.SendResult{MessageID: "id"}, nil
}

func subs(emails ...string) []subscriber.Subscriber {
	out := make([]subscriber.Subscriber, len(emails))
	for i, e := range emails {
		out[i] = subscriber.Reconstruct(e, "", "", time.Now(), nil)
	}
	return out
}

// --- Tests ---

func TestSend_PartialFailure(t *testing.T) {
	mailer := &mockMailer{fail: map[string]bool{"k@x.co": true}}
	svc := New(&mockSubs{subs: subs("a@x.co", "k@x.co", "c@x.co", "d@x.co")}, mailer).WithSendDelay(0)

	r, err := svc.Send(context.Background(), "Weekly", "# Hi")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if r.Total != 4 || r.SuccessCount != 3 || r.FailedCount != 1 {
		t.Errorf("report = %+v", r)
	}
	if len(r.Errors) != 1 || r.Errors[0].Email != "k@x.co" || r.Errors[0].Error != "mailbox unavailable" {
		t.Errorf("errors = %+v", r.Errors)
	}
	want := []string{"a@x.co", "k@x.co", "c@x.co", "d@x.co"}
	if !reflect.DeepEqual(mailer.attempted, want) {
		t.Errorf("attempted = %v, want %v", mailer.attempted, want)
	}
}

func TestSend_SkipsOptedOut(t *testing.T) {
	list := append(subs("a@x.co"),
		subscriber.Reconstruct("out@x.co", "", "", time.Now(), map[string]bool{subscriber.PrefNewsletter: false}))
	mailer := &mockMailer{}
	r, err := New(&mockSubs{subs: list}, mailer).WithSendDelay(0).Send(context.Background(), "S", "c")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if r.Total != 1 || !reflect.DeepEqual(mailer.attempted, []string{"a@x.co"}) {
		t.Errorf("report = %+v, attempted = %v", r, mailer.attempted)
	}
}

func TestSend_DelayBetweenSends(t *testing.T) {
	var slept []time.Duration
	svc := New(&mockSubs{subs: subs("a@x.co", "b@x.co", "c@x.co")}, &mockMailer{}).WithSendDelay(250 * time.Millisecond)
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }

	if _, err := svc.Send(context.Background(), "S", "c"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(slept) != 2 || slept[0] != 250*time.Millisecond {
		t.Errorf("slept = %v", slept)
	}
}

func TestSend_IgnoresCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mailer := &mockMailer{}
	r, err := New(&mockSubs{subs: subs("a@x.co", "b@x.co")}, mailer).WithSendDelay(0).Send(ctx, "S", "c")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if r.SuccessCount != 2 {
		t.Errorf("report = %+v", r)
	}
	for _, e := range mailer.ctxErrs {
		if e != nil {
			t.Errorf("send saw cancelled context: %v", e)
		}
	}
}

func TestSend_Validation(t *testing.T) {
	svc := New(&mockSubs{}, &mockMailer{})
	if _, err := svc.Send(context.Background(), "", "c"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestSend_ListError(t *testing.T) {
	boom := errors.New("store down")
	if _, err := New(&mockSubs{err: boom}, &mockMailer{}).Send(context.Background(), "S", "c"); !errors.Is(err, boom) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestSend_NoSubscribers(t *testing.T) {
	r, err := New(&mockSubs{}, &mockMailer{}).Send(context.Background(), "S", "c")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if r.Total != 0 || r.Errors == nil {
		t.Errorf("report = %+v", r)
	}
}
