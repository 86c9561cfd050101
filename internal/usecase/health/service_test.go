package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	r := New(&mockPinger{}, &mockPinger{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[ComponentDocstore] != CheckOK {
		t.Errorf("expected docstore %q, got %q", CheckOK, r.Checks[ComponentDocstore])
	}
	if r.Checks[ComponentRateLimit] != CheckOK {
		t.Errorf("expected ratelimit %q, got %q", CheckOK, r.Checks[ComponentRateLimit])
	}
}

func TestCheck_StoreDown(t *testing.T) {
	r := New(&mockPinger{err: errors.New("403")}, &mockPinger{}).Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[ComponentDocstore] != CheckError {
		t.Errorf("expected docstore %q, got %q", CheckError, r.Checks[ComponentDocstore])
	}
}

func TestCheck_RateLimitDown(t *testing.T) {
	r := New(&mockPinger{}, &mockPinger{err: errors.New("timeout")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[ComponentRateLimit] != CheckError {
		t.Errorf("expected ratelimit %q, got %q", CheckError, r.Checks[ComponentRateLimit])
	}
}

func TestCheck_BothFail(t *testing.T) {
	r := New(&mockPinger{err: errors.New("a")}, &mockPinger{err: errors.New("b")}).Check(context.Background())
	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}

func TestCheck_InProcessLimiter(t *testing.T) {
	r := New(&mockPinger{}, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[ComponentRateLimit]; ok {
		t.Error("ratelimit check should be absent for the in-process limiter")
	}
}
