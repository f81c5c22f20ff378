package console

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
	"github.com/ragar/ragarctl/pkg/logger"
)

const defaultDiagnosticsLimit = 100

// State is the locally cached copy of remote data. Collections are replaced
// wholesale by fetches and never mutated in place, so a State may be shared.
type State struct {
	Datasets    []types.Dataset
	Pipelines   []types.Pipeline
	Analytics   *types.Analytics
	Games       []types.Game
	GameTags    []types.GameTag
	Providers   []types.Provider
	Connections []types.ProviderConnection
}

// FetchRequest is one issued fetch. Token identifies it among requests for the same operation.
type FetchRequest struct {
	Op        Operation
	Token     uint64
	RequestID string
	Filters   Filters
}

// Diagnostic is a recorded failure
type Diagnostic struct {
	Time      time.Time
	Op        Operation
	RequestID string
	Message   string
	Err       error
}

// Controller owns the active tab, the filters and the fetched state.
// Only the newest request per operation may update state or clear its loading flag.
type Controller struct {
	mu          sync.Mutex
	tab         Tab
	filters     Filters
	seq         uint64
	latest      map[Operation]uint64
	inflight    map[Operation]bool
	loaded      map[Operation]bool
	state       State
	diagnostics []Diagnostic
	limit       int
	logger      *slog.Logger
	now         func() time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the diagnostic logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDiagnosticsLimit bounds the number of retained diagnostics
func WithDiagnosticsLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithInitialTab selects the tab shown first
func WithInitialTab(tab Tab) Option {
	return func(c *Controller) { c.tab = tab }
}

// NewController creates a controller on the datasets tab with all filters cleared
func NewController(opts ...Option) *Controller {
	c := &Controller{
		tab:      TabDatasets,
		filters:  DefaultFilters(),
		latest:   map[Operation]uint64{},
		inflight: map[Operation]bool{},
		loaded:   map[Operation]bool{},
		limit:    defaultDiagnosticsLimit,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "console")
	return c
}

// Start returns the initial fetches for the active tab
func (c *Controller) Start() []FetchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(c.tabOperations()...)
}

// Tab returns the active tab
func (c *Controller) Tab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// Filters returns the current filter selections
func (c *Controller) Filters() Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetTab activates tab and returns its fetches. Re-selecting the active tab fetches nothing.
func (c *Controller) SetTab(tab Tab) []FetchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tab == c.tab {
		return nil
	}
	c.tab = tab
	return c.issue(c.tabOperations()...)
}

// SetFilter changes one filter and returns the active tab's fetches.
// An unchanged value fetches nothing.
func (c *Controller) SetFilter(kind FilterKind, value string) ([]FetchRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.filters.With(kind, value)
	if err != nil {
		return nil, err
	}
	if next == c.filters {
		return nil, nil
	}
	c.filters = next
	return c.issue(c.tabOperations()...), nil
}

// Refresh re-issues the active tab's fetches
func (c *Controller) Refresh() []FetchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(operationsFor(c.tab)...)
}

// ReferenceRequests returns fetches for the game form's autocomplete sources
// (tags and providers) that have not been loaded or requested yet.
// Used when a game form opens outside the providers tab.
func (c *Controller) ReferenceRequests() []FetchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(c.missingReferences()...)
}

// missingReferences lists reference operations neither loaded nor in flight. Callers hold mu.
func (c *Controller) missingReferences() []Operation {
	var ops []Operation
	for _, op := range []Operation{OpGameTags, OpProviders} {
		if !c.loaded[op] && !c.inflight[op] {
			ops = append(ops, op)
		}
	}
	return ops
}

// tabOperations returns the active tab's fetches. The games tab also loads
// tags and providers once; the table resolves company and platform names
// from them. Callers hold mu.
func (c *Controller) tabOperations() []Operation {
	ops := operationsFor(c.tab)
	if c.tab == TabGames {
		ops = append(ops, c.missingReferences()...)
	}
	return ops
}

// issue allocates tokens; callers hold mu
func (c *Controller) issue(ops ...Operation) []FetchRequest {
	reqs := make([]FetchRequest, 0, len(ops))
	for _, op := range ops {
		c.seq++
		c.latest[op] = c.seq
		c.inflight[op] = true
		reqs = append(reqs, FetchRequest{
			Op:        op,
			Token:     c.seq,
			RequestID: uuid.NewString(),
			Filters:   c.filters,
		})
	}
	return reqs
}

// Apply folds a completed fetch into state. It returns false when the result is
// stale, i.e. a newer request for the same operation has been issued since.
// A failed fetch records a diagnostic and leaves prior state untouched.
func (c *Controller) Apply(res FetchResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	op := res.Request.Op
	if c.latest[op] != res.Request.Token {
		c.logger.Debug("discarding stale response",
			"op", op, "token", res.Request.Token, "latest", c.latest[op])
		return false
	}
	c.inflight[op] = false

	if res.Err != nil {
		c.record(op, res.Request.RequestID, res.Err)
		return true
	}

	switch op {
	case OpDatasets:
		c.state.Datasets = res.Datasets
	case OpPipelines:
		c.state.Pipelines = res.Pipelines
	case OpAnalytics:
		c.state.Analytics = res.Analytics
	case OpGames:
		c.state.Games = res.Games
	case OpGameTags:
		c.state.GameTags = res.GameTags
	case OpProviders:
		c.state.Providers = res.Providers
	case OpConnections:
		c.state.Connections = res.Connections
	}
	c.loaded[op] = true
	return true
}

// Loading reports whether any of the active tab's latest requests is unresolved
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, op := range operationsFor(c.tab) {
		if c.inflight[op] {
			return true
		}
	}
	return false
}

// InFlight reports whether the latest request for op is unresolved
func (c *Controller) InFlight(op Operation) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[op]
}

// State returns the cached data
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Record stores a diagnostic for a failure outside the fetch path (uploads, saves)
func (c *Controller) Record(op Operation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record(op, "", err)
}

func (c *Controller) record(op Operation, requestID string, err error) {
	logger.WithError(logger.WithRequestID(c.logger, requestID), err).Error("operation failed", "op", op)

	c.diagnostics = append(c.diagnostics, Diagnostic{
		Time:      c.now(),
		Op:        op,
		RequestID: requestID,
		Message:   domain.UserMessage(err),
		Err:       err,
	})
	if over := len(c.diagnostics) - c.limit; over > 0 {
		c.diagnostics = append([]Diagnostic(nil), c.diagnostics[over:]...)
	}
}

// Diagnostics returns the retained diagnostics, oldest first
func (c *Controller) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic(nil), c.diagnostics...)
}

// LastDiagnostic returns the newest diagnostic, if any
func (c *Controller) LastDiagnostic() (Diagnostic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.diagnostics) == 0 {
		return Diagnostic{}, false
	}
	return c.diagnostics[len(c.diagnostics)-1], true
}
