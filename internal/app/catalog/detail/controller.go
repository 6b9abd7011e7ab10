// Package detail holds the product detail view state.
package detail

import (
	"context"
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

// Status is the detail view state machine position.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusNotFound
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
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadErrorMessage is the user-facing error set when a lookup fails.
const LoadErrorMessage = "Failed to load product details. Please try again."

// State is a snapshot of the detail view.
type State struct {
	Status    Status
	ID        int64
	Product   *domain.Product
	Loading   bool
	Error     string
	UpdatedAt time.Time
}

// Controller loads one product at a time; only the latest Load is applied.
type Controller struct {
	provider contracts.DataProvider
	logger   *zap.Logger
	clock    clock.Clock

	tracker  latest.Tracker
	inflight sync.WaitGroup

	mu    sync.Mutex
	state State
}

// NewController creates an idle detail controller.
func NewController(provider contracts.DataProvider, logger *zap.Logger, clk clock.Clock) *Controller {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Controller{
		provider: provider,
		logger:   logging.OrNop(logger),
		clock:    clk,
		state:    State{Status: StatusIdle, UpdatedAt: clk.Now()},
	}
}

// Load starts fetching product id, superseding any earlier Load.
// Reloading the same id is always allowed and doubles as a retry.
func (c *Controller) Load(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidProductID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tok := c.tracker.Issue()
	c.state = State{
		Status:    StatusLoading,
		ID:        id,
		Loading:   true,
		UpdatedAt: c.clock.Now(),
	}

	c.inflight.Add(1)
	go c.fetch(ctx, tok, id)
	return nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if s.Product != nil {
		p := *s.Product
		s.Product = &p
	}
	return s
}

// Wait blocks until every issued lookup has resolved.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) fetch(ctx context.Context, tok latest.Token, id int64) {
	defer c.inflight.Done()

	reqID := requestid.New()
	ctx = requestid.WithID(ctx, reqID)
	log := c.logger.With(zap.String("request_id", reqID), zap.Int64("id", id))

	product, err := c.provider.FetchByID(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tracker.Current(tok) {
		log.Debug("Discarding stale product response")
		return
	}

	c.state.Loading = false
	c.state.UpdatedAt = c.clock.Now()
	switch {
	case err != nil:
		log.Warn("Failed to load product details", zap.Error(err))
		c.state.Status = StatusFailed
		c.state.Error = LoadErrorMessage
	case product == nil:
		log.Debug("Product not found")
		c.state.Status = StatusNotFound
	default:
		c.state.Status = StatusReady
		c.state.Product = product
	}
}
