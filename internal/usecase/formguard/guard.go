// Package formguard screens public form submissions: a per-client rate limit,
// a honeypot field and a minimum fill time.
package formguard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/folio/internal/domain"
	"github.com/kailas-cloud/folio/internal/ratelimit"
)

// Limiter admits or rejects one hit per call.
type Limiter interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// Submission is the anti-abuse part of a form post.
type Submission struct {
	ClientIP string
	// Honeypot is a field hidden from humans; bots fill it.
	Honeypot string
	// StartedAt is when the form was rendered, if the client reported it.
	StartedAt *time.Time
}

// Verdict tells the caller how to proceed.
type Verdict int

// Verdicts.
const (
	// Accept means process the submission.
	Accept Verdict = iota
	// Suppress means answer with success but store and send nothing.
	Suppress
)

// Guard screens submissions.
type Guard struct {
	limiter   Limiter
	minSubmit time.Duration
	now       func() time.Time
}

// New creates a guard. limiter may be nil to disable rate limiting.
func New(limiter Limiter, minSubmit time.Duration) *Guard {
	return &Guard{limiter: limiter, minSubmit: minSubmit, now: time.Now}
}

// WithClock overrides the time source.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Check rate-limits by client IP, then applies the bot heuristics. A rate
// limit hit is an error wrapping domain.ErrRateLimited.
func (g *Guard) Check(ctx context.Context, s Submission) (Verdict, error) {
	if g.limiter != nil {
		d, err := g.limiter.Allow(ctx, clientKey(s.ClientIP))
		if err != nil {
			return Accept, fmt.Errorf("rate limit: %w", err)
		}
		if !d.Allowed {
			return Accept, &domain.Error{
				Kind: domain.ErrRateLimited,
				Msg:  "Too many requests. Please try again later.",
			}
		}
	}

	if strings.TrimSpace(s.Honeypot) != "" {
		return Suppress, nil
	}
	if s.StartedAt != nil && g.minSubmit > 0 && g.now().Sub(*s.StartedAt) < g.minSubmit {
		return Suppress, nil
	}
	return Accept, nil
}

func clientKey(ip string) string {
	if ip == "" {
		return "unknown"
	}
	return ip
}
