package statuscheck

import (
	"context"
	"log/slog"
	"net/http"

	"crsc/internal/platform/privacy"
	"crsc/internal/platform/tracer"
	dErrors "crsc/pkg/domain-errors"
	"crsc/pkg/platform/httputil"
	"crsc/pkg/requestcontext"
)

// Recorder receives per-request counters. *metrics.Metrics satisfies it.
type Recorder interface {
	IncrementStatusChecks(outcome string)
	AddValidationErrors(count int)
}

// Service wraps Handle with the request clock, tracing, metrics and logging.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	tracer  tracer.Tracer
	metrics Recorder
	logger  *slog.Logger
}

type Option func(*Service)

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func WithMetrics(m Recorder) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Respond answers req as of the request-scoped instant in ctx.
func (s *Service) Respond(ctx context.Context, req Request) Response {
	now := requestcontext.Now(ctx)
	refHash := privacy.HashReference(req.DisclosureRef)

	ctx, span := s.tracer.Start(ctx, tracer.SpanStatusRespond,
		tracer.String(tracer.AttrReferenceHash, refHash),
		tracer.String(tracer.AttrMethod, req.Method),
	)

	result, err := Check(req, now)
	resp := Response{Status: http.StatusOK, ContentType: httputil.ContentTypeXML, Body: result.Body}
	if err != nil {
		resp = ErrorResponse(err)
	}

	label := outcomeLabel(result, err)
	errs := validationErrors(err)
	if dErrors.HasCode(err, dErrors.CodeValidation) {
		span.AddEvent(tracer.EventValidationFailed, tracer.Int(tracer.AttrValidationErrors, len(errs)))
	}
	span.SetAttributes(
		tracer.String(tracer.AttrOutcome, label),
		tracer.Int(tracer.AttrStatusCode, resp.Status),
	)
	span.End(err)

	if s.metrics != nil {
		s.metrics.IncrementStatusChecks(label)
		s.metrics.AddValidationErrors(len(errs))
	}

	level := slog.LevelInfo
	if resp.Status >= http.StatusBadRequest {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "status check answered",
		"outcome", label,
		"status", resp.Status,
		"validation_errors", len(errs),
		"disclosure_ref_hash", refHash,
		"request_id", requestcontext.RequestID(ctx),
	)

	return resp
}
