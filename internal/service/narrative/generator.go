package narrative

import (
	"context"
	"errors"
	"strings"
	"time"

	"CardPulse/internal/domain/models"
	drepo "CardPulse/internal/domain/repository"
	applogger "CardPulse/pkg/logger"
)

// SourceTemplate marks narratives produced by Template.
const SourceTemplate = "template"

var errShortAnswer = errors.New("provider answer shorter than five lines")

// Provider completes a prompt with a remote language model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Option configures Generator.
type Option func(*Generator)

// Generator produces five-line narratives, falling back to Template.
type Generator struct {
	provider Provider
	timeout  time.Duration
	log      *applogger.Logger
	metrics  drepo.Metrics
}

// New creates a generator. A nil provider always uses the template.
func New(provider Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		timeout:  20 * time.Second,
		log:      applogger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithLogger sets the generator logger.
func WithLogger(l *applogger.Logger) Option {
	return func(g *Generator) { g.log = l.Component("narrative") }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m drepo.Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// Generate returns exactly five lines of commentary for s. The only error is
// the caller's context being done; every provider failure degrades to Template.
func (g *Generator) Generate(ctx context.Context, s models.Summary) (models.Narrative, error) {
	if err := ctx.Err(); err != nil {
		return models.Narrative{}, err
	}
	if g.provider == nil {
		return g.template(s), nil
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.provider.Complete(callCtx, BuildPrompt(s))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.Narrative{}, ctxErr
	}
	if err == nil {
		var n int
		text, n = ClampLines(strings.TrimSpace(text), models.NarrativeLines)
		if n < models.NarrativeLines {
			err = errShortAnswer
		}
	}
	if err != nil {
		g.log.Warn("provider failed, using template",
			applogger.String("provider", g.provider.Name()),
			applogger.String("card", s.Name),
			applogger.Error(err),
		)
		if g.metrics != nil {
			g.metrics.RecordProviderError(g.provider.Name())
		}
		return g.template(s), nil
	}

	g.record(g.provider.Name())
	return models.Narrative{Text: text, Source: g.provider.Name()}, nil
}

func (g *Generator) template(s models.Summary) models.Narrative {
	g.record(SourceTemplate)
	text, _ := ClampLines(Template(s), models.NarrativeLines)
	return models.Narrative{Text: text, Source: SourceTemplate}
}

func (g *Generator) record(source string) {
	if g.metrics != nil {
		g.metrics.RecordNarrative(source)
	}
}
