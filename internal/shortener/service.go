package shortener

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sundayezeilo/shortlink/internal/errx"
	"github.com/sundayezeilo/shortlink/internal/logx"
	"github.com/sundayezeilo/shortlink/sluggen"
)

const (
	DefaultSlugLength = 6

	tracerName = "github.com/sundayezeilo/shortlink/internal/shortener"
)

// Commands are the operations that change the registry. Redirect is a
// command because it advances the link's redirect counter.
type Commands interface {
	CreateShortLink(ctx context.Context, req CreateLinkRequest) (ShortLink, error)
	Redirect(ctx context.Context, slug string) (ShortLink, error)
	ChangeURL(ctx context.Context, slug, newURL string) (ShortLink, error)
}

// Queries are the read-only operations on the registry.
type Queries interface {
	Stats(ctx context.Context, slug string) (Stats, error)
}

// Service implements Commands and Queries on top of a Repository.
type Service struct {
	repo       Repository
	slugs      sluggen.Generator
	slugLength int
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    *Metrics
}

var (
	_ Commands = (*Service)(nil)
	_ Queries  = (*Service)(nil)
)

// ServiceConfig holds configuration for the service. Zero fields take
// defaults.
type ServiceConfig struct {
	SlugGenerator  sluggen.Generator
	SlugLength     int
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Metrics        *Metrics
}

// NewService creates a new service instance.
func NewService(repo Repository, config *ServiceConfig) *Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	slugGen := config.SlugGenerator
	if slugGen == nil {
		slugGen = sluggen.New()
	}

	slugLength := config.SlugLength
	if slugLength <= 0 {
		slugLength = DefaultSlugLength
	}

	logger := config.Logger
	if logger == nil {
		logger = logx.Discard()
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &Service{
		repo:       repo,
		slugs:      slugGen,
		slugLength: slugLength,
		logger:     logger,
		tracer:     tp.Tracer(tracerName),
		metrics:    metrics,
	}
}

// CreateShortLink validates req.URL and registers a link under req.Slug, or
// under a freshly generated slug when req.Slug is empty.
func (s *Service) CreateShortLink(ctx context.Context, req CreateLinkRequest) (ShortLink, error) {
	const op = "shortener.service.CreateShortLink"

	ctx, call := s.begin(ctx, op, req.Slug)
	defer call.end()

	if err := validateURL(req.URL); err != nil {
		return ShortLink{}, call.fail(errx.E(op, errx.Invalid, err))
	}

	// Custom slug path: one atomic insert-if-absent
	if req.Slug != "" {
		link, err := s.repo.Insert(ctx, ShortLink{Slug: req.Slug, URL: req.URL})
		if err != nil {
			return ShortLink{}, call.fail(errx.E(op, errx.KindOf(err), err))
		}

		s.metrics.linksCreated.WithLabelValues(SlugSourceCustom).Inc()
		call.logger.InfoContext(ctx, "link created",
			"slug", link.Slug,
			"url", link.URL,
			"custom_slug", true,
		)
		return link, nil
	}

	// Generated slug path: the store retries until a candidate is free
	attempts := 0
	next := func() (string, error) {
		attempts++
		return s.slugs.Generate(s.slugLength)
	}

	link, err := s.repo.InsertGenerated(ctx, req.URL, next)
	if err != nil {
		return ShortLink{}, call.fail(errx.E(op, errx.KindOf(err), err))
	}

	if attempts > 1 {
		s.metrics.slugCollisions.Add(float64(attempts - 1))
	}
	s.metrics.linksCreated.WithLabelValues(SlugSourceGenerated).Inc()
	call.span.SetAttributes(
		attribute.String("shortener.slug", link.Slug),
		attribute.Int("shortener.slug_attempts", attempts),
	)
	call.logger.InfoContext(ctx, "link created",
		"slug", link.Slug,
		"url", link.URL,
		"custom_slug", false,
		"attempts", attempts,
	)
	return link, nil
}

// Redirect resolves slug to its link and counts the redirect.
func (s *Service) Redirect(ctx context.Context, slug string) (ShortLink, error) {
	const op = "shortener.service.Redirect"

	ctx, call := s.begin(ctx, op, slug)
	defer call.end()

	link, err := s.repo.IncrementRedirects(ctx, slug)
	if err != nil {
		return ShortLink{}, call.fail(errx.E(op, errx.KindOf(err), err))
	}

	s.metrics.redirects.Inc()
	call.logger.DebugContext(ctx, "slug resolved",
		"slug", link.Slug,
		"url", link.URL,
	)
	return link, nil
}

// ChangeURL points an existing slug at newURL. The URL is validated before
// the slug is looked up, so an invalid URL is reported as Invalid even for
// an unknown slug.
func (s *Service) ChangeURL(ctx context.Context, slug, newURL string) (ShortLink, error) {
	const op = "shortener.service.ChangeURL"

	ctx, call := s.begin(ctx, op, slug)
	defer call.end()

	if err := validateURL(newURL); err != nil {
		return ShortLink{}, call.fail(errx.E(op, errx.Invalid, err))
	}

	link, err := s.repo.SetURL(ctx, slug, newURL)
	if err != nil {
		return ShortLink{}, call.fail(errx.E(op, errx.KindOf(err), err))
	}

	s.metrics.urlChanges.Inc()
	call.logger.InfoContext(ctx, "link url changed",
		"slug", link.Slug,
		"url", link.URL,
	)
	return link, nil
}

// Stats returns a snapshot of the link's stats.
func (s *Service) Stats(ctx context.Context, slug string) (Stats, error) {
	const op = "shortener.service.Stats"

	ctx, call := s.begin(ctx, op, slug)
	defer call.end()

	stats, err := s.repo.GetStats(ctx, slug)
	if err != nil {
		return Stats{}, call.fail(errx.E(op, errx.KindOf(err), err))
	}

	call.span.SetAttributes(attribute.Int64("shortener.redirects", int64(stats.Redirects)))
	return stats, nil
}

// tracedCall bundles the span and logger of one service operation.
type tracedCall struct {
	ctx     context.Context
	op      string
	span    trace.Span
	logger  *slog.Logger
	metrics *Metrics
}

func (s *Service) begin(ctx context.Context, op, slug string) (context.Context, *tracedCall) {
	ctx, opID := logx.WithOperationID(ctx)
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(
		attribute.String("shortener.op_id", opID),
	))
	if slug != "" {
		span.SetAttributes(attribute.String("shortener.slug", slug))
	}

	return ctx, &tracedCall{
		ctx:     ctx,
		op:      op,
		span:    span,
		logger:  s.logger.With("op_id", opID),
		metrics: s.metrics,
	}
}

func (c *tracedCall) end() { c.span.End() }

// fail records err on the span, metrics and log and returns it unchanged.
func (c *tracedCall) fail(err error) error {
	kind := errx.KindOf(err)

	c.span.RecordError(err)
	c.span.SetStatus(codes.Error, kind.String())
	c.metrics.failures.WithLabelValues(c.op, kind.String()).Inc()

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind.String(),
		"operation", c.op,
	}
	switch kind {
	case errx.Invalid, errx.Conflict, errx.NotFound:
		c.logger.WarnContext(c.ctx, "operation rejected", logAttrs...)
	default:
		c.logger.ErrorContext(c.ctx, "operation failed", logAttrs...)
	}
	return err
}
