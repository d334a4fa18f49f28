// Package bookmark tracks the viewer's bookmark state for a set of recipes.
//
// Each id is Unknown until its status is loaded or toggled. A toggle flips
// the local value before the remote call completes and reverts it if the
// call fails. While the call is in flight the id is Pending and further
// toggles of that id are rejected.
package bookmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/tastetribe/internal/log"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

const DefaultMaxConcurrency = 8

var (
	ErrLoginRequired = errors.New("login required")
	ErrToggleFailed  = errors.New("bookmark toggle failed")
	ErrTogglePending = errors.New("bookmark toggle already in progress")
	ErrClosed        = errors.New("bookmark manager closed")
)

// Statuses is the outcome of a status fan-out. Ids whose status could not be
// determined are listed in Unknown instead of being given a default.
type Statuses struct {
	Known   map[recipe.ID]bool
	Unknown []recipe.ID
}

type Option func(*Manager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMaxConcurrency bounds the number of status queries in flight.
func WithMaxConcurrency(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxConcurrency = n
		}
	}
}

// Manager holds one viewer's bookmark state. It is safe for concurrent use.
type Manager struct {
	repo           repository.Repository
	logger         *slog.Logger
	maxConcurrency int

	mu      sync.Mutex
	states  map[recipe.ID]bool
	pending map[recipe.ID]bool
	closed  bool
}

func New(repo repository.Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:           repo,
		logger:         log.NullLogger(),
		maxConcurrency: DefaultMaxConcurrency,
		states:         make(map[recipe.ID]bool),
		pending:        make(map[recipe.ID]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadStatuses queries the status of every id concurrently. An auth failure
// means the viewer has no bookmarks, so those ids are known to be false. Any
// other failure leaves the id Unknown. Known results are merged into the
// manager, except for ids with a toggle in flight.
func (m *Manager) LoadStatuses(ctx context.Context, ids []recipe.ID) (Statuses, error) {
	if m.isClosed() {
		return Statuses{}, ErrClosed
	}

	ids = dedupe(ids)
	type result struct {
		value bool
		known bool
	}
	results := make([]result, len(ids))

	var g errgroup.Group
	g.SetLimit(m.maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			ok, err := m.repo.BookmarkStatus(ctx, id)
			switch {
			case err == nil:
				results[i] = result{value: ok, known: true}
			case errors.Is(err, repository.ErrAuth):
				results[i] = result{value: false, known: true}
			default:
				m.logger.WarnContext(ctx, "failed to load bookmark status",
					slog.String("recipe_id", id.String()), slog.Any("error", err))
			}
			// Never fail the group; one id must not cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()

	statuses := Statuses{Known: make(map[recipe.ID]bool, len(ids))}
	for i, id := range ids {
		if results[i].known {
			statuses.Known[id] = results[i].value
		} else {
			statuses.Unknown = append(statuses.Unknown, id)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Statuses{}, ErrClosed
	}
	m.mergeLocked(statuses.Known)
	return statuses, nil
}

// Merge records statuses learned elsewhere, such as a list of bookmarked
// recipes. Ids with a toggle in flight keep their optimistic value.
func (m *Manager) Merge(known map[recipe.ID]bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.mergeLocked(known)
}

func (m *Manager) mergeLocked(known map[recipe.ID]bool) {
	for id, v := range known {
		if _, busy := m.pending[id]; busy {
			continue
		}
		m.states[id] = v
	}
}

// Toggle flips the bookmark on id and returns the resulting value. On
// failure the previous state is restored and the returned value is the
// restored one. An Unknown id is treated as not bookmarked.
func (m *Manager) Toggle(ctx context.Context, id recipe.ID) (bool, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false, ErrClosed
	}
	if target, busy := m.pending[id]; busy {
		m.mu.Unlock()
		return target, ErrTogglePending
	}
	prev, known := m.states[id]
	target := !prev
	m.states[id] = target
	m.pending[id] = target
	m.mu.Unlock()

	var err error
	if target {
		err = m.repo.SetBookmark(ctx, id)
	} else {
		err = m.repo.ClearBookmark(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, id)
	if m.closed {
		return prev, ErrClosed
	}
	if err == nil {
		return target, nil
	}

	// Forget may have dropped the id while the call was in flight.
	if cur, ok := m.states[id]; ok && cur == target {
		if known {
			m.states[id] = prev
		} else {
			delete(m.states, id)
		}
	}

	m.logger.WarnContext(ctx, "failed to toggle bookmark",
		slog.String("recipe_id", id.String()),
		slog.Bool("target", target),
		slog.Any("error", err))

	if errors.Is(err, repository.ErrAuth) {
		return prev, fmt.Errorf("%w: %w", ErrLoginRequired, err)
	}
	return prev, fmt.Errorf("%w: %w", ErrToggleFailed, err)
}

// State reports the current value for id and whether it is known. While a
// toggle is pending the optimistic value is reported.
func (m *Manager) State(id recipe.ID) (value bool, known bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, known = m.states[id]
	return value, known
}

func (m *Manager) Pending(id recipe.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, busy := m.pending[id]
	return busy
}

// Snapshot returns a copy of every known state.
func (m *Manager) Snapshot() map[recipe.ID]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.states)
}

// Forget drops the state for id, returning it to Unknown.
func (m *Manager) Forget(id recipe.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, id)
}

// Close releases the manager. Results of calls still in flight are
// discarded and later calls fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	clear(m.states)
}

func (m *Manager) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func dedupe(ids []recipe.ID) []recipe.ID {
	seen := make(map[recipe.ID]struct{}, len(ids))
	out := make([]recipe.ID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
