// Package selection orchestrates grocery-list generation: candidate
// retrieval from the catalog index, eligibility filtering, and greedy
// budget accumulation. One parametrized service covers both the
// multi-item and the recipe-driven workflows.
package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chop-n-shop/pantry/internal/domain"
	"github.com/chop-n-shop/pantry/internal/domain/bucket"
	"github.com/chop-n-shop/pantry/internal/domain/eligibility"
	"github.com/chop-n-shop/pantry/internal/index"
	"github.com/chop-n-shop/pantry/internal/metrics"
)

// Service runs selection workflows. Stateless across invocations: every
// run starts from empty accumulators, and nothing from one request leaks
// into the next.
type Service struct {
	search   Searcher
	catalog  Catalog
	recipes  RecipeReader
	lists    ListWriter
	filter   *eligibility.Filter
	reranker Reranker
	topK     int
	logger   *zap.Logger
}

// New creates a selection service. reranker may be nil (rank-only).
func New(
	search Searcher,
	catalog Catalog,
	recipes RecipeReader,
	lists ListWriter,
	filter *eligibility.Filter,
	reranker Reranker,
	topK int,
	logger *zap.Logger,
) *Service {
	return &Service{
		search:   search,
		catalog:  catalog,
		recipes:  recipes,
		lists:    lists,
		filter:   filter,
		reranker: reranker,
		topK:     topK,
		logger:   logger,
	}
}

// ItemsRequest is one multi-item generation request.
type ItemsRequest struct {
	UserID          string
	ListName        string
	Terms           []string
	Constraints     domain.Constraints
	StorePreference string
}

// GenerateGroceryList builds per-store grocery lists for the requested
// terms. Terms are processed in request order; each term accepts at most
// one item per store, the first candidate that matches the store, passes
// eligibility, and fits the remaining budget. Unaffordable candidates are
// skipped and the scan continues with the next candidate.
//
// With a store preference the result is a single-entry map; an unknown
// store yields an explanatory placeholder instead of an error, and
// nothing is persisted. Without a preference every known store is filled
// and the run is saved through the list writer. Persistence failure is
// logged; the computed result is returned regardless, so the returned
// list carries an ID only when the save succeeded.
func (s *Service) GenerateGroceryList(ctx context.Context, req ItemsRequest) (domain.SavedList, error) {
	if len(req.Terms) == 0 {
		return domain.SavedList{}, domain.ErrNoRequestTerms
	}

	stores, err := s.catalog.Stores(ctx)
	if err != nil {
		return domain.SavedList{}, fmt.Errorf("list stores: %w", err)
	}

	if req.StorePreference != "" && !containsStore(stores, req.StorePreference) {
		metrics.SelectionRunsTotal.WithLabelValues("items").Inc()
		return domain.SavedList{
			UserID: req.UserID,
			Name:   req.ListName,
			Payload: domain.ListPayload{
				Stores: map[string]domain.StoreResult{
					req.StorePreference: {
						Message: fmt.Sprintf("No items found for %s.", req.StorePreference),
					},
				},
			},
		}, nil
	}
	if req.StorePreference != "" {
		stores = []string{req.StorePreference}
	}

	results := make(map[string]domain.StoreResult, len(stores))
	for _, store := range stores {
		results[store] = s.fillStore(ctx, store, req)
	}
	metrics.SelectionRunsTotal.WithLabelValues("items").Inc()

	saved := domain.SavedList{
		UserID:  req.UserID,
		Name:    req.ListName,
		Payload: domain.ListPayload{Stores: results},
	}
	if req.StorePreference != "" {
		return saved, nil
	}

	saved.ID = uuid.NewString()
	saved.CreatedAt = time.Now().UTC()
	if err := s.lists.Insert(ctx, saved); err != nil {
		s.logger.Error("Failed to persist grocery list, returning computed result",
			zap.String("user_id", req.UserID), zap.Error(err))
		saved.ID = ""
		saved.CreatedAt = time.Time{}
	}
	return saved, nil
}

// fillStore runs every request term against one store's bucket.
func (s *Service) fillStore(ctx context.Context, store string, req ItemsRequest) domain.StoreResult {
	b := bucket.NewStore(store)

	for _, term := range req.Terms {
		for _, cand := range s.rank(ctx, term) {
			item, ok := s.resolve(ctx, cand)
			if !ok {
				continue
			}
			if item.Store != store {
				metrics.SelectionCandidatesRejected.WithLabelValues("store").Inc()
				continue
			}
			if !s.filter.Admissible(item, req.Constraints.Diet, req.Constraints.Allergens) {
				metrics.SelectionCandidatesRejected.WithLabelValues("eligibility").Inc()
				continue
			}
			if !b.Fits(item.Price, req.Constraints.Budget) {
				metrics.SelectionCandidatesRejected.WithLabelValues("budget").Inc()
				continue
			}
			b.Add(item)
			metrics.SelectionItemsAccepted.WithLabelValues(store).Inc()
			break
		}
	}

	return b.Result()
}

// GenerateFromRecipe resolves a recipe's ingredients into one flat
// grocery list with a global budget. Each ingredient accepts its first
// eligible, affordable candidate; the first eligible candidate that would
// exceed the ceiling records the transient overshoot and ends that
// ingredient's search. Later ingredients are still processed, so the run
// can keep filling cheaper items after an overshoot.
func (s *Service) GenerateFromRecipe(
	ctx context.Context, recipeID string, c domain.Constraints,
) (domain.Recipe, domain.RecipeList, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, domain.RecipeList{}, fmt.Errorf("get recipe: %w", err)
	}

	run := bucket.NewRecipeRun()

	for _, ingredient := range eligibility.NormalizeTokens(rec.Ingredients) {
		for _, cand := range s.rank(ctx, ingredient) {
			item, ok := s.resolve(ctx, cand)
			if !ok {
				continue
			}
			if !s.filter.Admissible(item, c.Diet, c.Allergens) {
				metrics.SelectionCandidatesRejected.WithLabelValues("eligibility").Inc()
				continue
			}
			if !run.Fits(item.Price, c.Budget) {
				run.NoteOvershoot(item.Price, c.Budget)
				metrics.SelectionCandidatesRejected.WithLabelValues("budget").Inc()
				break
			}
			run.Add(ingredient, item)
			metrics.SelectionItemsAccepted.WithLabelValues(item.Store).Inc()
			break
		}
	}
	metrics.SelectionRunsTotal.WithLabelValues("recipe").Inc()

	return rec, run.Result(c.Budget), nil
}

// rank retrieves candidates for a term, nearest first, and applies the
// optional reranker. A rerank failure keeps the distance order.
func (s *Service) rank(ctx context.Context, term string) []index.Candidate {
	candidates := s.search.Query(ctx, term, s.topK)
	if s.reranker == nil || len(candidates) == 0 {
		return candidates
	}

	reranked, err := s.reranker.Rerank(ctx, term, candidates)
	if err != nil {
		s.logger.Warn("Rerank failed, keeping distance order",
			zap.String("query", term), zap.Error(err))
		return candidates
	}
	return reranked
}

// resolve maps a candidate back to its catalog row. Index entries whose
// rows have disappeared are skipped, not fatal: the index may be stale
// relative to the catalog until the next rebuild.
func (s *Service) resolve(ctx context.Context, cand index.Candidate) (domain.CatalogItem, bool) {
	lookup, err := s.catalog.Get(ctx, cand.ID)
	if err != nil {
		s.logger.Warn("Candidate lookup failed", zap.String("item_id", cand.ID), zap.Error(err))
		return domain.CatalogItem{}, false
	}
	if !lookup.Found {
		metrics.SelectionCandidatesRejected.WithLabelValues("missing_item").Inc()
		return domain.CatalogItem{}, false
	}
	return lookup.Item, true
}

func containsStore(stores []string, store string) bool {
	for _, s := range stores {
		if s == store {
			return true
		}
	}
	return false
}
