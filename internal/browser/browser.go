// Package browser composes the filter engine, the bookmark manager and the
// carousel into the screens of the recipe client. Each screen owns its own
// state and is released with Close; results of calls that finish after
// Close are dropped.
package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matt-dz/tastetribe/internal/bookmark"
	"github.com/matt-dz/tastetribe/internal/carousel"
	"github.com/matt-dz/tastetribe/internal/log"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

// FeaturedDietType is the diet shown on the featured carousel.
const FeaturedDietType = "Dessert"

var (
	ErrClosed        = errors.New("screen closed")
	ErrNotLoaded     = errors.New("screen not loaded")
	ErrLoginRequired = bookmark.ErrLoginRequired
	ErrEmptyComment  = errors.New("comment is empty")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")
	ErrNoChanges     = errors.New("no changes to save")
	ErrNotOwned      = errors.New("recipe is not one of yours")
	ErrNotBookmarked = errors.New("recipe is not bookmarked")
)

// Config carries the tunables shared by all screens.
type Config struct {
	Logger         *slog.Logger
	MaxConcurrency int
	CarouselPeriod time.Duration
	Breakpoints    carousel.Breakpoints
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return log.NullLogger()
	}
	return c.Logger
}

func (c Config) breakpoints() carousel.Breakpoints {
	if c.Breakpoints.Narrow <= 0 || c.Breakpoints.Medium <= c.Breakpoints.Narrow {
		return carousel.DefaultBreakpoints()
	}
	return c.Breakpoints
}

func (c Config) newManager(repo repository.Repository) *bookmark.Manager {
	return bookmark.New(repo,
		bookmark.WithLogger(c.logger()),
		bookmark.WithMaxConcurrency(c.MaxConcurrency))
}

// readList runs a list query. Without a valid session the viewer simply
// sees nothing, so an auth failure yields an empty list.
func readList(ctx context.Context, logger *slog.Logger, op string, fn func() ([]recipe.Recipe, error)) ([]recipe.Recipe, error) {
	recipes, err := fn()
	if errors.Is(err, repository.ErrAuth) {
		logger.InfoContext(ctx, "not authorized, showing empty list", slog.String("op", op))
		return []recipe.Recipe{}, nil
	}
	return recipes, err
}

// writeError maps a failed command to the error a screen reports. Auth
// failures become ErrLoginRequired; the cause stays wrapped.
func writeError(op string, err error) error {
	if errors.Is(err, repository.ErrAuth) {
		return fmt.Errorf("%s: %w: %w", op, ErrLoginRequired, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
