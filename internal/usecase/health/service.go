package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the document store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in a report.
const (
	ComponentDocstore  = "docstore"
	ComponentRateLimit = "ratelimit"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store     Pinger
	rateLimit Pinger
}

// New creates a Service. rateLimit is nil when the limiter is in-process.
func New(store, rateLimit Pinger) *Service {
	return &Service{store: store, rateLimit: rateLimit}
}

// Check pings the document store and, when shared, the rate limit backend.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.store.Ping(ctx); err != nil {
		checks[ComponentDocstore] = CheckError
		status = Unhealthy
	} else {
		checks[ComponentDocstore] = CheckOK
	}

	if s.rateLimit != nil {
		if err := s.rateLimit.Ping(ctx); err != nil {
			checks[ComponentRateLimit] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks[ComponentRateLimit] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
