package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/pageza/mealfinder/backend/internal/errors"
	"github.com/pageza/mealfinder/backend/internal/events"
	"github.com/pageza/mealfinder/backend/internal/logging"
	"github.com/pageza/mealfinder/backend/internal/metrics"
	"github.com/pageza/mealfinder/backend/internal/model"
	"github.com/pageza/mealfinder/backend/internal/types"
)

// Placeholder messages shown instead of recipe cards.
const (
	MsgEmptyInput = "Please enter an ingredient."
	MsgNoRecipes  = "No recipes found."
	MsgFetchError = "Error fetching recipes. Please try again later."
)

// SearchResult is what the presentation layer renders for one search.
type SearchResult struct {
	Outcome types.FetchOutcome
	Seq     uint64
	// Stale is set when a newer search in the same session was issued
	// before this one finished; its recipes were not committed.
	Stale bool
	// Message is the placeholder text for empty and failed searches.
	Message string
}

// SearchService validates input, runs the pipeline and maintains each
// session's last successful result set.
type SearchService struct {
	pipeline IRecipePipeline
	store    IResultStore
	history  IHistoryService
	events   events.Publisher
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewSearchService creates a new SearchService instance. history and
// publisher may be nil.
func NewSearchService(pipeline IRecipePipeline, store IResultStore, history IHistoryService, publisher events.Publisher, m *metrics.Metrics) *SearchService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SearchService{
		pipeline: pipeline,
		store:    store,
		history:  history,
		events:   publisher,
		metrics:  m,
		now:      time.Now,
	}
}

// ValidateQuery rejects input that would not produce a search term.
func ValidateQuery(raw string) error {
	if strings.TrimSpace(raw) == "" || EffectiveTerm(raw) == "" {
		return apperrors.New(apperrors.ErrValidation, http.StatusBadRequest, MsgEmptyInput)
	}
	return nil
}

// Search runs one search for the session.
func (s *SearchService) Search(ctx context.Context, sessionID, rawInput string) (*SearchResult, error) {
	if err := ValidateQuery(rawInput); err != nil {
		return nil, err
	}
	ctx = logging.WithSessionID(ctx, sessionID)

	seq, err := s.store.Begin(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to begin search: %w", err)
	}

	start := s.now()
	outcome := s.pipeline.FetchRecipes(ctx, rawInput)
	result := &SearchResult{Outcome: outcome, Seq: seq}

	switch outcome.Kind {
	case types.OutcomeSuccess:
		committed, err := s.store.Commit(ctx, &types.ResultSet{
			SessionID: sessionID,
			Seq:       seq,
			Term:      outcome.Term,
			Recipes:   outcome.Recipes,
			UpdatedAt: s.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save result set: %w", err)
		}
		if !committed {
			result.Stale = true
			if s.metrics != nil {
				s.metrics.StaleResultsTotal.Inc()
			}
			logging.FromContext(ctx).Info("discarding stale search result", "seq", seq, "term", outcome.Term)
		}
	case types.OutcomeEmpty:
		result.Message = MsgNoRecipes
	default:
		result.Message = MsgFetchError
	}

	s.record(ctx, sessionID, rawInput, result, s.now().Sub(start))
	return result, nil
}

// Recipe looks up a recipe in the session's last successful result set.
func (s *SearchService) Recipe(ctx context.Context, sessionID, recipeID string) (*types.RecipeDetail, error) {
	set, err := s.store.Latest(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load result set: %w", err)
	}
	recipe, ok := set.Find(recipeID)
	if !ok {
		return nil, apperrors.Newf(apperrors.ErrNotFound, http.StatusNotFound, "recipe %s is not in the current results", recipeID)
	}
	return recipe, nil
}

// History lists the session's recent searches.
func (s *SearchService) History(ctx context.Context, sessionID string, limit int) ([]model.SearchLog, error) {
	if s.history == nil {
		return []model.SearchLog{}, nil
	}
	return s.history.Recent(ctx, sessionID, limit)
}

// record stores the search in history and publishes it. Failures are
// logged only; they never change the search result.
func (s *SearchService) record(ctx context.Context, sessionID, rawInput string, result *SearchResult, elapsed time.Duration) {
	ctx = context.WithoutCancel(ctx)
	logger := logging.FromContext(ctx)
	outcome := result.Outcome

	if s.history != nil {
		entry := &model.SearchLog{
			SessionID:   sessionID,
			Seq:         result.Seq,
			Query:       rawInput,
			Term:        outcome.Term,
			Outcome:     outcome.Kind,
			ResultCount: len(outcome.Recipes),
			RecipeIDs:   recipeIDList(outcome.Recipes),
			Error:       outcome.Reason,
			DurationMS:  elapsed.Milliseconds(),
			Stale:       result.Stale,
		}
		if err := s.history.Record(ctx, entry); err != nil {
			logger.Warn("failed to record search", "seq", result.Seq, "error", err)
		}
	}

	event := events.SearchEvent{
		SessionID:   sessionID,
		Seq:         result.Seq,
		Term:        outcome.Term,
		Outcome:     string(outcome.Kind),
		ResultCount: len(outcome.Recipes),
		Stale:       result.Stale,
		DurationMS:  elapsed.Milliseconds(),
		Timestamp:   s.now(),
	}
	if outcome.Err != nil {
		event.ErrorKind = apperrors.Kind(outcome.Err)
	}
	if err := s.events.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish search event", "seq", result.Seq, "error", err)
	}
}

func recipeIDList(recipes []types.RecipeDetail) model.JSONBStringArray {
	ids := make(model.JSONBStringArray, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}
