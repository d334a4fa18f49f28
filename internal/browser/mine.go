package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/tastetribe/internal/bookmark"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

// Mine lists the viewer's own recipes and bookmarked recipes, and edits the
// former.
type Mine struct {
	repo      repository.Repository
	bookmarks *bookmark.Manager
	logger    *slog.Logger

	mu         sync.RWMutex
	own        []recipe.Recipe
	bookmarked []recipe.Recipe
	closed     bool
}

func NewMine(repo repository.Repository, cfg Config) *Mine {
	return &Mine{
		repo:      repo,
		bookmarks: cfg.newManager(repo),
		logger:    cfg.logger(),
	}
}

// Load fetches both lists concurrently.
func (m *Mine) Load(ctx context.Context) error {
	if m.isClosed() {
		return ErrClosed
	}

	var own, bookmarked []recipe.Recipe
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		own, err = readList(gctx, m.logger, "list own recipes", func() ([]recipe.Recipe, error) {
			return m.repo.ListOwnRecipes(gctx, repository.DefaultListLimit)
		})
		if err != nil {
			return fmt.Errorf("loading own recipes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bookmarked, err = readList(gctx, m.logger, "list bookmarked recipes", func() ([]recipe.Recipe, error) {
			return m.repo.ListBookmarked(gctx, repository.DefaultListLimit)
		})
		if err != nil {
			return fmt.Errorf("loading bookmarked recipes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.own = own
	m.bookmarked = bookmarked

	known := make(map[recipe.ID]bool, len(bookmarked))
	for _, r := range bookmarked {
		known[r.ID] = true
	}
	m.bookmarks.Merge(known)
	return nil
}

func (m *Mine) Own() []recipe.Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.own)
}

func (m *Mine) Bookmarked() []recipe.Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.bookmarked)
}

// Create publishes a new recipe and adds it to the viewer's list.
func (m *Mine) Create(ctx context.Context, draft recipe.Draft) (recipe.Recipe, error) {
	if m.isClosed() {
		return recipe.Recipe{}, ErrClosed
	}
	if err := draft.Validate(); err != nil {
		return recipe.Recipe{}, err
	}

	created, err := m.repo.CreateRecipe(ctx, draft)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to create recipe", slog.Any("error", err))
		return recipe.Recipe{}, writeError("creating recipe", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return recipe.Recipe{}, ErrClosed
	}
	m.own = append(m.own, created)
	return created, nil
}

// Update saves draft over one of the viewer's recipes. A draft equal to
// the current recipe is not sent.
func (m *Mine) Update(ctx context.Context, id recipe.ID, draft recipe.Draft) (recipe.Recipe, error) {
	m.mu.RLock()
	closed := m.closed
	i := indexOf(m.own, id)
	var current recipe.Recipe
	if i >= 0 {
		current = m.own[i]
	}
	m.mu.RUnlock()

	switch {
	case closed:
		return recipe.Recipe{}, ErrClosed
	case i < 0:
		return recipe.Recipe{}, ErrNotOwned
	case recipe.DraftOf(current) == draft:
		return current, ErrNoChanges
	}
	if err := draft.Validate(); err != nil {
		return recipe.Recipe{}, err
	}

	updated, err := m.repo.UpdateRecipe(ctx, id, draft)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to update recipe", slog.String("recipe_id", id.String()), slog.Any("error", err))
		return recipe.Recipe{}, writeError("updating recipe", err)
	}
	if updated.ID == "" {
		updated.ID = id
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return recipe.Recipe{}, ErrClosed
	}
	if i := indexOf(m.own, id); i >= 0 {
		m.own[i] = updated
	}
	return updated, nil
}

// Delete removes one of the viewer's recipes, then reloads the list.
func (m *Mine) Delete(ctx context.Context, id recipe.ID) error {
	m.mu.RLock()
	closed, owned := m.closed, indexOf(m.own, id) >= 0
	m.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if !owned {
		return ErrNotOwned
	}

	if err := m.repo.DeleteRecipe(ctx, id); err != nil {
		m.logger.WarnContext(ctx, "failed to delete recipe", slog.String("recipe_id", id.String()), slog.Any("error", err))
		return writeError("deleting recipe", err)
	}
	m.bookmarks.Forget(id)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.own = slices.DeleteFunc(m.own, func(r recipe.Recipe) bool { return r.ID == id })
	m.bookmarked = slices.DeleteFunc(m.bookmarked, func(r recipe.Recipe) bool { return r.ID == id })
	m.mu.Unlock()

	own, err := m.repo.ListOwnRecipes(ctx, repository.DefaultListLimit)
	if err != nil {
		// The delete went through; a stale list is the only consequence.
		m.logger.WarnContext(ctx, "failed to refresh own recipes", slog.Any("error", err))
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.own = own
	return nil
}

// RemoveBookmark clears the bookmark on a recipe from the bookmarked list.
func (m *Mine) RemoveBookmark(ctx context.Context, id recipe.ID) error {
	m.mu.RLock()
	closed, listed := m.closed, indexOf(m.bookmarked, id) >= 0
	m.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	if !listed {
		return ErrNotBookmarked
	}
	if v, known := m.bookmarks.State(id); known && !v {
		return ErrNotBookmarked
	}
	m.bookmarks.Merge(map[recipe.ID]bool{id: true})

	_, err := m.bookmarks.Toggle(ctx, id)
	if errors.Is(err, bookmark.ErrClosed) {
		return ErrClosed
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.bookmarked = slices.DeleteFunc(m.bookmarked, func(r recipe.Recipe) bool { return r.ID == id })
	return nil
}

func (m *Mine) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.bookmarks.Close()
}

func (m *Mine) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

func indexOf(recipes []recipe.Recipe, id recipe.ID) int {
	return slices.IndexFunc(recipes, func(r recipe.Recipe) bool { return r.ID == id })
}
