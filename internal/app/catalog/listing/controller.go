package listing

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/pkg/clock"
	"github.com/light-bringer/procat-browser/internal/pkg/latest"
	"github.com/light-bringer/procat-browser/internal/pkg/logging"
	"github.com/light-bringer/procat-browser/internal/pkg/requestid"
)

// Status is the listing state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// DefaultPageSize is the initial page size of a new controller.
	DefaultPageSize = 10

	// LoadErrorMessage is the user-facing error set when a page fetch fails.
	LoadErrorMessage = "Failed to load products. Please try again."
)

// PageSizeOptions are the page sizes offered to the user.
var PageSizeOptions = []int{5, 10, 25, 50}

// State is a snapshot of the listing. Page is 0-based; the provider is asked
// for Page+1.
type State struct {
	Status         Status
	Page           int
	PageSize       int
	Items          []domain.Product
	TotalCount     int
	SearchText     string
	CategoryFilter string
	Sort           *domain.SortSpec
	Loading        bool
	Error          string
	CategoryFacets []string
	UpdatedAt      time.Time
}

// VisibleRows derives the displayed rows of this snapshot.
func (s State) VisibleRows() []domain.Product {
	return VisibleRows(s.Items, ViewFilter{
		SearchText:     s.SearchText,
		CategoryFilter: s.CategoryFilter,
		Sort:           s.Sort,
	})
}

// TotalPages returns the number of remote pages at the current page size.
func (s State) TotalPages() int {
	return domain.TotalPages(s.TotalCount, s.PageSize)
}

func (s State) clone() State {
	s.Items = slices.Clone(s.Items)
	s.CategoryFacets = slices.Clone(s.CategoryFacets)
	if s.Sort != nil {
		spec := *s.Sort
		s.Sort = &spec
	}
	return s
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrNop(l) }
}

// WithClock sets the clock used to stamp UpdatedAt.
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// WithPageSize sets the initial page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.state.PageSize = n
		}
	}
}

// WithObserver registers fn to receive a snapshot after every transition.
// fn runs while the controller is locked and must not call back into it.
func WithObserver(fn func(State)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller owns the listing state: paging against the provider, plus local
// search, category and sort applied to the current page.
type Controller struct {
	provider contracts.DataProvider
	logger   *zap.Logger
	clock    clock.Clock
	observer func(State)

	tracker  latest.Tracker
	inflight sync.WaitGroup

	mu    sync.Mutex
	state State
}

// NewController creates an idle controller. Nothing is fetched until the
// first SetPage, SetPageSize or Reload.
func NewController(provider contracts.DataProvider, opts ...Option) *Controller {
	c := &Controller{
		provider: provider,
		logger:   zap.NewNop(),
		clock:    clock.NewRealClock(),
		state: State{
			Status:         StatusIdle,
			PageSize:       DefaultPageSize,
			CategoryFacets: []string{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.UpdatedAt = c.clock.Now()
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// VisibleRows returns the rows to display for the current state.
func (c *Controller) VisibleRows() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.VisibleRows()
}

// SetPage moves to the 0-based page and fetches it. Setting the current page
// again is a no-op unless the controller is idle or failed, in which case it
// acts as a retry.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	if page < 0 {
		return domain.ErrInvalidPage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if page == c.state.Page && !c.acceptsRetryLocked() {
		return nil
	}
	c.state.Page = page
	c.startFetchLocked(ctx)
	return nil
}

// SetPageSize changes the page size and fetches with it. The retry rule of
// SetPage applies to an unchanged size.
func (c *Controller) SetPageSize(ctx context.Context, pageSize int) error {
	if pageSize <= 0 {
		return domain.ErrInvalidPageSize
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pageSize == c.state.PageSize && !c.acceptsRetryLocked() {
		return nil
	}
	c.state.PageSize = pageSize
	c.startFetchLocked(ctx)
	return nil
}

// Reload re-issues the fetch for the current page and page size
// unconditionally, superseding any outstanding request.
func (c *Controller) Reload(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startFetchLocked(ctx)
}

// SetSearchText updates the local name filter. It never fetches.
func (c *Controller) SetSearchText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SearchText = text
	c.touchLocked()
}

// SetCategoryFilter updates the local category filter; "" shows all. It never fetches.
func (c *Controller) SetCategoryFilter(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CategoryFilter = category
	c.touchLocked()
}

// SetSortSpec sets or clears (nil) the local sort override. It never fetches.
func (c *Controller) SetSortSpec(spec *domain.SortSpec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if spec != nil {
		s := *spec
		spec = &s
	}
	c.state.Sort = spec
	c.touchLocked()
}

// Wait blocks until every issued fetch, current or superseded, has resolved.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) acceptsRetryLocked() bool {
	return c.state.Status == StatusIdle || c.state.Status == StatusFailed
}

func (c *Controller) startFetchLocked(ctx context.Context) {
	tok := c.tracker.Issue()
	page, pageSize := c.state.Page, c.state.PageSize

	c.state.Status = StatusLoading
	c.state.Loading = true
	c.state.Error = ""
	c.touchLocked()

	c.inflight.Add(1)
	go c.fetch(ctx, tok, page, pageSize)
}

func (c *Controller) fetch(ctx context.Context, tok latest.Token, page, pageSize int) {
	defer c.inflight.Done()

	reqID := requestid.New()
	ctx = requestid.WithID(ctx, reqID)
	log := c.logger.With(
		zap.String("request_id", reqID),
		zap.Int("page", page),
		zap.Int("page_size", pageSize),
	)
	log.Debug("Fetching product page")

	env, err := c.provider.FetchPage(ctx, page+1, pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Current(tok) || c.state.Page != page || c.state.PageSize != pageSize {
		log.Debug("Discarding stale page response")
		return
	}

	c.state.Loading = false
	if err != nil {
		log.Warn("Failed to load products", zap.Error(err))
		c.state.Status = StatusFailed
		c.state.Error = LoadErrorMessage
		c.touchLocked()
		return
	}

	if env == nil {
		env = domain.NewPageEnvelope(nil, 0)
	}
	c.state.Status = StatusReady
	c.state.Error = ""
	c.state.Items = env.Items
	c.state.TotalCount = env.TotalCount
	c.state.CategoryFacets = CategoryFacets(env.Items)
	log.Debug("Loaded product page",
		zap.Int("items", len(env.Items)),
		zap.Int("total_count", env.TotalCount))
	c.touchLocked()
}

// touchLocked stamps the state and notifies the observer.
func (c *Controller) touchLocked() {
	c.state.UpdatedAt = c.clock.Now()
	if c.observer != nil {
		c.observer(c.state.clone())
	}
}
