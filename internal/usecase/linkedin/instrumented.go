package linkedin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domli "github.com/kailas-cloud/folio/internal/domain/linkedin"
	"github.com/kailas-cloud/folio/internal/logger"
)

// InstrumentedGenerator wraps a Generator with request logging.
// Transport metrics (requests, tokens) are recorded in transport/openai.
type InstrumentedGenerator struct {
	inner  Generator
	model  string
	logger *zap.Logger
}

// NewInstrumentedGenerator wraps a generator with observability.
func NewInstrumentedGenerator(inner Generator, model string, logger *zap.Logger) *InstrumentedGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedGenerator{inner: inner, model: model, logger: logger}
}

// Generate delegates to the inner generator and logs the outcome.
func (g *InstrumentedGenerator) Generate(
	ctx context.Context, req domli.GenerateRequest,
) (domli.Generated, error) {
	log := logger.FromContextOr(ctx, g.logger)
	start := time.Now()

	out, err := g.inner.Generate(ctx, req)

	duration := time.Since(start)

	if err != nil {
		log.Error("Generation request failed",
			zap.String("model", g.model),
			zap.String("content_type", string(req.ContentType)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domli.Generated{}, fmt.Errorf("generate: %w", err)
	}

	log.Debug("Generation completed",
		zap.String("model", g.model),
		zap.String("content_type", string(req.ContentType)),
		zap.Int("slides", len(out.Slides)),
		zap.Int("hashtags", len(out.Hashtags)),
		zap.Duration("duration", duration),
	)
	return out, nil
}
