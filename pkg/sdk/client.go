package pantry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chop-n-shop/pantry/internal/db/sqlite"
	"github.com/chop-n-shop/pantry/internal/domain"
	"github.com/chop-n-shop/pantry/internal/domain/eligibility"
	"github.com/chop-n-shop/pantry/internal/index"
	catalogrepo "github.com/chop-n-shop/pantry/internal/repository/catalog"
	groclistrepo "github.com/chop-n-shop/pantry/internal/repository/groclist"
	reciperepo "github.com/chop-n-shop/pantry/internal/repository/recipe"
	groclistuc "github.com/chop-n-shop/pantry/internal/usecase/groclist"
	healthuc "github.com/chop-n-shop/pantry/internal/usecase/health"
	recipeuc "github.com/chop-n-shop/pantry/internal/usecase/recipe"
	selectionuc "github.com/chop-n-shop/pantry/internal/usecase/selection"
)

const defaultTopK = 100

// Client is the embedded pantry engine entry point.
type Client struct {
	store     *sqlite.Store
	catalog   *catalogrepo.Repo
	search    *swapSearcher
	embed     domain.Embedder
	selSvc    *selectionuc.Service
	recipeSvc *recipeuc.Service
	listSvc   *groclistuc.Service
	healthSvc *healthuc.Service
	obs       *observer
}

// New opens the database, builds the catalog index from stored
// embeddings, and wires the selection services.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		dbPath: "pantry.db",
		policy: eligibility.MatchSubstring,
		topK:   defaultTopK,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.embedder == nil {
		return nil, errors.New("pantry: embedder required (use WithEmbedder)")
	}

	store, err := sqlite.Open(cfg.dbPath)
	if err != nil {
		return nil, fmt.Errorf("pantry: open database: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	c := wireClient(store, cfg, obs)
	if err := c.RefreshIndex(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return c, nil
}

func wireClient(store *sqlite.Store, cfg *clientConfig, obs *observer) *Client {
	embed := &embedderAdapter{inner: cfg.embedder}
	catalog := catalogrepo.New(store.DB())
	recipeRepo := reciperepo.New(store.DB())
	listRepo := groclistrepo.New(store.DB())
	search := &swapSearcher{}

	// Usecase logging stays quiet in embedded mode; the observer carries
	// the SDK's own logging.
	nop := zap.NewNop()
	selSvc := selectionuc.New(
		search, catalog, recipeRepo, listRepo,
		eligibility.New(cfg.policy), nil, cfg.topK, nop,
	)

	return &Client{
		store:     store,
		catalog:   catalog,
		search:    search,
		embed:     embed,
		selSvc:    selSvc,
		recipeSvc: recipeuc.New(recipeRepo, selSvc, listRepo),
		listSvc:   groclistuc.New(listRepo),
		healthSvc: healthuc.New(store, nil, nil, search),
		obs:       obs,
	}
}

// Close releases the database.
func (c *Client) Close() error {
	return c.store.Close()
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// PutItem embeds the item name and upserts it into the catalog. The new
// embedding reaches queries only after RefreshIndex.
func (c *Client) PutItem(ctx context.Context, item Item) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("put_item", start, err) }()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	res, err := c.embed.Embed(ctx, item.Name)
	if err != nil {
		return fmt.Errorf("embed item %q: %w", item.Name, err)
	}
	if err = c.catalog.Put(ctx, itemToDomain(item), res.Embedding); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// RefreshIndex rebuilds the catalog index from the stored embeddings and
// atomically swaps it in. Queries in flight finish on the old index.
func (c *Client) RefreshIndex(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("refresh_index", start, err) }()

	embedded, err := c.catalog.EmbeddedItems(ctx)
	if err != nil {
		return fmt.Errorf("read catalog embeddings: %w", err)
	}
	entries := make([]index.Entry, len(embedded))
	for i, e := range embedded {
		entries[i] = index.Entry{ID: e.ID, Vector: e.Vector}
	}

	idx, err := index.Build(entries, c.embed, zap.NewNop())
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	c.search.swap(idx)
	return nil
}

// Items lists the catalog.
func (c *Client) Items(ctx context.Context) (out []Item, err error) {
	start := time.Now()
	defer func() { c.obs.observe("items", start, err) }()

	items, err := c.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]Item, len(items))
	for i, it := range items {
		out[i] = itemFromDomain(it)
	}
	return out, nil
}

// Stores lists the known store names.
func (c *Client) Stores(ctx context.Context) (stores []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stores", start, err) }()
	return c.catalog.Stores(ctx)
}

// GenerateGroceryList runs the multi-item selection workflow.
func (c *Client) GenerateGroceryList(ctx context.Context, req ListRequest) (out GroceryList, err error) {
	start := time.Now()
	defer func() { c.obs.observe("generate_list", start, err) }()

	saved, err := c.selSvc.GenerateGroceryList(ctx, selectionuc.ItemsRequest{
		UserID:          req.Owner,
		ListName:        req.Name,
		Terms:           req.Items,
		StorePreference: req.Store,
		Constraints: domain.Constraints{
			Budget:    req.Budget,
			Diet:      domain.ParseDiet(req.Diet),
			Allergens: req.Allergens,
		},
	})
	if err != nil {
		return GroceryList{}, err
	}
	return groceryListFromDomain(saved), nil
}

// Recipes returns the recipe service scoped to one owner.
func (c *Client) Recipes(owner string) *RecipeService {
	return &RecipeService{owner: owner, svc: c.recipeSvc, obs: c.obs}
}

// Lists returns the saved-list service scoped to one owner.
func (c *Client) Lists(owner string) *ListService {
	return &ListService{owner: owner, svc: c.listSvc, obs: c.obs}
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status    string            // "ok" or "degraded"
	Checks    map[string]string // component -> "ok"/"error"
	IndexSize int
}

// Health checks the health of all wired components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:    string(report.Status),
		Checks:    checks,
		IndexSize: report.IndexSize,
	}
}

// embedderAdapter wraps the public Embedder to satisfy domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// swapSearcher serves index queries through an atomically replaceable
// index, so RefreshIndex never blocks readers.
type swapSearcher struct {
	mu  sync.RWMutex
	idx *index.Index
}

func (s *swapSearcher) swap(idx *index.Index) {
	s.mu.Lock()
	s.idx = idx
	s.mu.Unlock()
}

func (s *swapSearcher) Query(ctx context.Context, text string, topK int) []index.Candidate {
	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	if idx == nil {
		return nil
	}
	return idx.Query(ctx, text, topK)
}

func (s *swapSearcher) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.idx == nil {
		return 0
	}
	return s.idx.Len()
}
