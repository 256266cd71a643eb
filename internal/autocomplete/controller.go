// Package autocomplete owns the request side of a suggestion input: every
// change to the input supersedes the previous request, and only the result
// of the most recent request is allowed to reach the screen.
package autocomplete

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bookindex/autocomplete/internal/suggest"
	"go.uber.org/zap"
)

// ResultKind classifies how a query ended.
type ResultKind int

const (
	// ResultSuggestions means the query produced a (possibly empty) list.
	ResultSuggestions ResultKind = iota
	// ResultCancelled means the query was superseded and must be ignored.
	ResultCancelled
	// ResultRequestFailed means the request or its decoding failed.
	ResultRequestFailed
)

// String returns the string representation of the result kind.
func (k ResultKind) String() string {
	switch k {
	case ResultSuggestions:
		return "suggestions"
	case ResultCancelled:
		return "cancelled"
	case ResultRequestFailed:
		return "request_failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single query.
type Result struct {
	Kind ResultKind

	// StateID is the controller state when the query was issued.
	StateID int64

	// Value is the input value the query was computed from.
	Value string

	// Fragment is the active term that was (or would have been) sent.
	Fragment string

	// Suggestions is set for ResultSuggestions. Never nil for that kind.
	Suggestions []suggest.Suggestion

	// Err is set for ResultRequestFailed and ResultCancelled.
	Err error
}

// Config holds configuration for creating a Controller.
type Config struct {
	// Client fetches suggestions. Required.
	Client suggest.Client

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Controller issues suggestion requests for one input. A Controller is safe
// for concurrent use, but each input needs its own: the pending request is
// per controller.
type Controller struct {
	client suggest.Client
	logger *zap.Logger

	// stateID increments on every Query and Cancel.
	stateID atomic.Int64

	mu            sync.Mutex
	cancelPending context.CancelFunc
}

// New creates a Controller.
func New(cfg Config) *Controller {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		client: cfg.Client,
		logger: logger,
	}
}

// StateID returns the current state ID.
func (c *Controller) StateID() int64 {
	return c.stateID.Load()
}

// IsCurrent reports whether id belongs to the most recent query.
func (c *Controller) IsCurrent(id int64) bool {
	return c.stateID.Load() == id
}

// Cancel cancels the pending request, if any, without issuing a new one.
// Results of the cancelled request will no longer be current.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stateID.Add(1)
	c.cancelPendingLocked()
}

// cancelPendingLocked cancels any pending request.
// Must be called with mu held.
func (c *Controller) cancelPendingLocked() {
	if c.cancelPending != nil {
		c.cancelPending()
		c.cancelPending = nil
	}
}

// Query supersedes the pending request and starts a new one for the active
// fragment of value. The returned channel always receives exactly one
// Result and is then closed.
//
// Fragments shorter than MinFragmentLength resolve immediately to an empty
// list and make no request. The cancellation token is still replaced, so a
// slower request for an earlier value can never overwrite that empty list.
func (c *Controller) Query(value string) <-chan Result {
	ctx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.cancelPendingLocked()
	c.cancelPending = cancel
	stateID := c.stateID.Add(1)
	c.mu.Unlock()

	fragment := ActiveFragment(value)
	resultCh := make(chan Result, 1)

	if !ShouldQuery(fragment) {
		resultCh <- Result{
			Kind:        ResultSuggestions,
			StateID:     stateID,
			Value:       value,
			Fragment:    fragment,
			Suggestions: []suggest.Suggestion{},
		}
		close(resultCh)
		return resultCh
	}

	go func() {
		defer close(resultCh)
		resultCh <- c.fetch(ctx, stateID, value, fragment)
		c.release(stateID)
	}()

	return resultCh
}

// Run is the blocking form of Query.
func (c *Controller) Run(value string) Result {
	return <-c.Query(value)
}

// release drops the cancel func of a finished request if no newer request
// replaced it.
func (c *Controller) release(stateID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stateID.Load() == stateID {
		c.cancelPendingLocked()
	}
}

func (c *Controller) fetch(ctx context.Context, stateID int64, value, fragment string) Result {
	result := Result{
		StateID:  stateID,
		Value:    value,
		Fragment: fragment,
	}

	suggestions, err := c.client.Fetch(ctx, fragment)

	switch {
	case err != nil && (suggest.IsCancelled(err) || ctx.Err() != nil):
		c.logger.Debug("suggestion request superseded", zap.String("q", fragment), zap.Int64("stateID", stateID))
		result.Kind = ResultCancelled
		result.Err = err
	case err != nil:
		c.logger.Warn("suggestion request failed", zap.String("q", fragment), zap.Error(err))
		result.Kind = ResultRequestFailed
		result.Err = err
	case ctx.Err() != nil:
		// Response arrived after the request was superseded.
		result.Kind = ResultCancelled
		result.Err = ctx.Err()
	default:
		if suggestions == nil {
			suggestions = []suggest.Suggestion{}
		}
		result.Kind = ResultSuggestions
		result.Suggestions = suggestions
	}

	return result
}
