package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/matt-dz/tastetribe/internal/bookmark"
	"github.com/matt-dz/tastetribe/internal/filter"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

// ExploreView is everything the explore screen renders.
type ExploreView struct {
	Criteria  filter.Criteria    `json:"criteria"`
	Recipes   []recipe.Recipe    `json:"recipes"`
	Total     int                `json:"total"`
	Countries []string           `json:"countries"`
	DietTypes []string           `json:"diet_types"`
	Bookmarks map[recipe.ID]bool `json:"bookmarks"`
	Unknown   []recipe.ID        `json:"unknown_bookmarks"`
}

// Explore is the searchable list of every recipe.
type Explore struct {
	repo      repository.Repository
	bookmarks *bookmark.Manager
	logger    *slog.Logger

	mu       sync.RWMutex
	source   []recipe.Recipe
	criteria filter.Criteria
	unknown  []recipe.ID
	loaded   bool
	closed   bool
}

func NewExplore(repo repository.Repository, cfg Config) *Explore {
	return &Explore{
		repo:      repo,
		bookmarks: cfg.newManager(repo),
		logger:    cfg.logger(),
		criteria:  filter.Neutral(),
	}
}

// Load fetches every recipe and then the viewer's bookmark status for each.
func (e *Explore) Load(ctx context.Context) error {
	if e.isClosed() {
		return ErrClosed
	}

	recipes, err := readList(ctx, e.logger, "list recipes", func() ([]recipe.Recipe, error) {
		return e.repo.ListRecipes(ctx, repository.ListOptions{})
	})
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}

	statuses, err := e.bookmarks.LoadStatuses(ctx, recipe.IDs(recipes))
	if errors.Is(err, bookmark.ErrClosed) {
		return ErrClosed
	}
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}
	if len(statuses.Unknown) > 0 {
		e.logger.WarnContext(ctx, "some bookmark statuses are unknown",
			slog.Int("unknown", len(statuses.Unknown)), slog.Int("total", len(recipes)))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.source = recipes
	e.unknown = statuses.Unknown
	e.loaded = true
	return nil
}

// SetCriteria replaces the active criteria.
func (e *Explore) SetCriteria(c filter.Criteria) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.criteria = c
	return nil
}

func (e *Explore) Criteria() filter.Criteria {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.criteria
}

// Visible applies the current criteria to the loaded recipes.
func (e *Explore) Visible() []recipe.Recipe {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return filter.Apply(e.source, e.criteria)
}

// Countries lists the country choices for the loaded recipes.
func (e *Explore) Countries() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return filter.DistinctCountries(e.source)
}

func (e *Explore) View() ExploreView {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewLocked(e.criteria)
}

// ViewWith renders the screen under c. The active criteria are left as they
// are.
func (e *Explore) ViewWith(c filter.Criteria) (ExploreView, error) {
	if err := c.Validate(); err != nil {
		return ExploreView{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.viewLocked(c), nil
}

func (e *Explore) viewLocked(c filter.Criteria) ExploreView {
	return ExploreView{
		Criteria:  c,
		Recipes:   filter.Apply(e.source, c),
		Total:     len(e.source),
		Countries: filter.DistinctCountries(e.source),
		DietTypes: filter.DietTypes,
		Bookmarks: e.bookmarks.Snapshot(),
		Unknown:   append([]recipe.ID{}, e.unknown...),
	}
}

// ToggleBookmark flips the bookmark on one of the loaded recipes.
func (e *Explore) ToggleBookmark(ctx context.Context, id recipe.ID) (bool, error) {
	e.mu.RLock()
	loaded, closed := e.loaded, e.closed
	e.mu.RUnlock()
	if closed {
		return false, ErrClosed
	}
	if !loaded {
		return false, ErrNotLoaded
	}

	v, err := e.bookmarks.Toggle(ctx, id)
	if errors.Is(err, bookmark.ErrClosed) {
		return v, ErrClosed
	}
	if err != nil {
		return v, err
	}

	e.mu.Lock()
	e.unknown = removeID(e.unknown, id)
	e.mu.Unlock()
	return v, nil
}

func (e *Explore) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.bookmarks.Close()
}

func (e *Explore) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

func removeID(ids []recipe.ID, id recipe.ID) []recipe.ID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
