// Package validation normalizes candidate RFCs and checks them against the
// shared identifier pattern, one at a time or in bulk.
package validation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"validarfc/internal/platform/metrics"
	"validarfc/internal/rfc"
	dErrors "validarfc/pkg/domain-errors"
	"validarfc/pkg/requestcontext"
)

const (
	SourceSingle = "single"
	SourceBulk   = "bulk"

	defaultWorkers = 8
)

// Result is the outcome of validating one candidate.
type Result struct {
	RFC       string
	Valid     bool
	CreatedAt time.Time
}

// BatchResult holds bulk outcomes in input order.
type BatchResult struct {
	Results   []Result
	CreatedAt time.Time
}

// Service validates RFC candidates. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	pattern *rfc.Pattern
	metrics *metrics.Metrics
	tracer  trace.Tracer
	workers int
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records validation outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWorkers bounds bulk fan-out.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New builds a Service around a compiled pattern.
func New(pattern *rfc.Pattern, opts ...Option) *Service {
	s := &Service{
		pattern: pattern,
		tracer:  otel.Tracer("validarfc/internal/validation"),
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate normalizes raw and matches it. The timestamp is the request-scoped
// time in UTC.
func (s *Service) Validate(ctx context.Context, raw string) Result {
	ctx, span := s.tracer.Start(ctx, "validation.Validate")
	defer span.End()

	res := s.check(ctx, raw)
	span.SetAttributes(attribute.Bool("rfc.valid", res.Valid))
	s.metrics.IncrementValidation(res.Valid, SourceSingle)
	return res
}

// ValidateBatch validates every candidate, preserving order. It stops early
// only if ctx is cancelled.
func (s *Service) ValidateBatch(ctx context.Context, raws []string) (*BatchResult, error) {
	ctx, span := s.tracer.Start(ctx, "validation.ValidateBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("rfc.count", len(raws)))

	results := make([]Result, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.check(gctx, raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "bulk validation aborted")
	}

	valid := 0
	for _, r := range results {
		s.metrics.IncrementValidation(r.Valid, SourceBulk)
		if r.Valid {
			valid++
		}
	}
	s.metrics.ObserveBulkRows(len(raws))
	span.SetAttributes(attribute.Int("rfc.valid_count", valid))

	return &BatchResult{
		Results:   results,
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}, nil
}

func (s *Service) check(ctx context.Context, raw string) Result {
	normalized := rfc.Normalize(raw)
	return Result{
		RFC:       normalized,
		Valid:     s.pattern.Match(normalized),
		CreatedAt: requestcontext.Now(ctx).UTC(),
	}
}
