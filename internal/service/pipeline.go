package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/logging"
	"github.com/pageza/mealfinder/backend/internal/metrics"
	"github.com/pageza/mealfinder/backend/internal/types"
)

// EffectiveTerm returns the first comma-delimited segment of raw, trimmed.
// Anything after the first comma is ignored.
func EffectiveTerm(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	return strings.TrimSpace(first)
}

// RecipePipeline resolves an ingredient to full recipe records: one filter
// request, then one concurrent lookup per match.
type RecipePipeline struct {
	source      RecipeSource
	metrics     *metrics.Metrics
	logger      *slog.Logger
	concurrency int
}

// PipelineOption configures a RecipePipeline.
type PipelineOption func(*RecipePipeline)

// WithConcurrency caps the number of simultaneous detail lookups. Zero means unbounded.
func WithConcurrency(n int) PipelineOption {
	return func(p *RecipePipeline) { p.concurrency = n }
}

// WithMetrics records pipeline metrics.
func WithMetrics(m *metrics.Metrics) PipelineOption {
	return func(p *RecipePipeline) { p.metrics = m }
}

// NewRecipePipeline creates a new RecipePipeline instance
func NewRecipePipeline(source RecipeSource, opts ...PipelineOption) *RecipePipeline {
	p := &RecipePipeline{
		source: source,
		logger: logging.WithComponent("recipe-pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchRecipes runs the pipeline for rawInput. The caller validates that
// the input is not blank. Exactly one outcome is produced; a failed detail
// lookup fails the whole run and no partial list is returned.
func (p *RecipePipeline) FetchRecipes(ctx context.Context, rawInput string) types.FetchOutcome {
	start := time.Now()
	term := EffectiveTerm(rawInput)

	outcome := p.fetch(ctx, term)

	if p.metrics != nil {
		p.metrics.SearchesTotal.WithLabelValues(string(outcome.Kind)).Inc()
		p.metrics.SearchLatency.Observe(time.Since(start).Seconds())
		if outcome.Kind == types.OutcomeSuccess {
			p.metrics.SearchResultsCount.Observe(float64(len(outcome.Recipes)))
		}
	}

	switch outcome.Kind {
	case types.OutcomeFailure:
		p.logger.Warn("recipe search failed",
			"term", term,
			"kind", apperrors.Kind(outcome.Err),
			"error", outcome.Err,
			"duration", time.Since(start))
	default:
		p.logger.Info("recipe search completed",
			"term", term,
			"outcome", outcome.Kind,
			"recipes", len(outcome.Recipes),
			"duration", time.Since(start))
	}
	return outcome
}

func (p *RecipePipeline) fetch(ctx context.Context, term string) types.FetchOutcome {
	summaries, err := p.source.FilterByIngredient(ctx, term)
	p.observe("filter", err)
	if err != nil {
		return types.Failure(term, err)
	}
	if len(summaries) == 0 {
		return types.Empty(term)
	}

	details, err := p.lookupAll(ctx, summaries)
	if err != nil {
		return types.Failure(term, err)
	}
	return types.Success(term, details)
}

// lookupAll fetches every summary's detail concurrently. Each result is
// written to its summary's index, so completion order does not matter. The
// first failure cancels the remaining lookups.
func (p *RecipePipeline) lookupAll(ctx context.Context, summaries []types.RecipeSummary) ([]types.RecipeDetail, error) {
	details := make([]types.RecipeDetail, len(summaries))

	g, gctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	for i, summary := range summaries {
		g.Go(func() error {
			detail, err := p.source.LookupByID(gctx, summary.ID)
			if err != nil {
				// Siblings cancelled by an earlier failure are not upstream errors.
				if gctx.Err() == nil {
					p.observe("lookup", err)
				}
				return err
			}
			p.observe("lookup", nil)
			if detail == nil {
				return apperrors.Dataf("lookup recipe %s: empty record", summary.ID)
			}
			if detail.ID != summary.ID {
				return apperrors.Dataf("lookup recipe %s: got record %s", summary.ID, detail.ID)
			}
			details[i] = *detail
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch recipe details: %w", err)
	}
	return details, nil
}

func (p *RecipePipeline) observe(stage string, err error) {
	if p.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = apperrors.Kind(err)
	}
	p.metrics.UpstreamRequests.WithLabelValues(stage, result).Inc()
}
