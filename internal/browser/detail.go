package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/tastetribe/internal/bookmark"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

// Detail shows one recipe with its comments, rating and bookmark.
type Detail struct {
	repo      repository.Repository
	bookmarks *bookmark.Manager
	logger    *slog.Logger

	mu     sync.RWMutex
	recipe recipe.Recipe
	loaded bool
	closed bool
}

func NewDetail(repo repository.Repository, cfg Config) *Detail {
	return &Detail{
		repo:      repo,
		bookmarks: cfg.newManager(repo),
		logger:    cfg.logger(),
	}
}

// Load fetches the recipe and its bookmark status concurrently.
func (d *Detail) Load(ctx context.Context, id recipe.ID) error {
	if d.isClosed() {
		return ErrClosed
	}

	var r recipe.Recipe
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r, err = d.repo.GetRecipe(gctx, id)
		if err != nil {
			return fmt.Errorf("loading recipe %s: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		// Status failures leave the bookmark Unknown; they never fail the load.
		if _, err := d.bookmarks.LoadStatuses(gctx, []recipe.ID{id}); err != nil {
			d.logger.DebugContext(ctx, "skipping bookmark status", slog.Any("error", err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if r.ID == "" {
		r.ID = id
	}
	d.recipe = r
	d.loaded = true
	return nil
}

// Recipe returns the loaded recipe.
func (d *Detail) Recipe() (recipe.Recipe, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.recipe, d.loaded
}

// Bookmarked reports the bookmark state of the loaded recipe.
func (d *Detail) Bookmarked() (value bool, known bool) {
	r, ok := d.Recipe()
	if !ok {
		return false, false
	}
	return d.bookmarks.State(r.ID)
}

// Rate submits a rating in [0, 5] and applies the updated recipe.
func (d *Detail) Rate(ctx context.Context, value float64) error {
	if value < 0 || value > 5 {
		return ErrInvalidRating
	}
	id, err := d.loadedID()
	if err != nil {
		return err
	}

	updated, err := d.repo.RateRecipe(ctx, id, value)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to rate recipe", slog.String("recipe_id", id.String()), slog.Any("error", err))
		return writeError("rating recipe", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if updated.ID == "" {
		d.recipe.Rating = value
		return nil
	}
	if updated.Comments == nil {
		updated.Comments = d.recipe.Comments
	}
	d.recipe = updated
	return nil
}

// AddComment posts a comment and appends it to the loaded recipe.
func (d *Detail) AddComment(ctx context.Context, text string) (recipe.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return recipe.Comment{}, ErrEmptyComment
	}
	id, err := d.loadedID()
	if err != nil {
		return recipe.Comment{}, err
	}

	c, err := d.repo.AddComment(ctx, id, text)
	if err != nil {
		d.logger.WarnContext(ctx, "failed to add comment", slog.String("recipe_id", id.String()), slog.Any("error", err))
		return recipe.Comment{}, writeError("adding comment", err)
	}
	if c.Content == "" {
		c.Content = text
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return recipe.Comment{}, ErrClosed
	}
	d.recipe.Comments = append(d.recipe.Comments, c)
	return c, nil
}

// ToggleBookmark flips the bookmark on the loaded recipe.
func (d *Detail) ToggleBookmark(ctx context.Context) (bool, error) {
	id, err := d.loadedID()
	if err != nil {
		return false, err
	}
	v, err := d.bookmarks.Toggle(ctx, id)
	if errors.Is(err, bookmark.ErrClosed) {
		return v, ErrClosed
	}
	return v, err
}

func (d *Detail) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.bookmarks.Close()
}

func (d *Detail) loadedID() (recipe.ID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	switch {
	case d.closed:
		return "", ErrClosed
	case !d.loaded:
		return "", ErrNotLoaded
	}
	return d.recipe.ID, nil
}

func (d *Detail) isClosed() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.closed
}
