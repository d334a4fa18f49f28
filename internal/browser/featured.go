package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/matt-dz/tastetribe/internal/carousel"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

// DefaultViewportWidth is assumed until the client reports its width.
const DefaultViewportWidth = 1280

// FeaturedPage is the current carousel page and the recipes on it.
type FeaturedPage struct {
	carousel.State
	Recipes []recipe.Recipe `json:"recipes"`
}

// Featured is the auto-advancing carousel of dessert recipes.
type Featured struct {
	repo        repository.Repository
	logger      *slog.Logger
	breakpoints carousel.Breakpoints
	scheduler   *carousel.Scheduler

	mu      sync.RWMutex
	recipes []recipe.Recipe
	closed  bool
}

func NewFeatured(repo repository.Repository, cfg Config) *Featured {
	bp := cfg.breakpoints()
	logger := cfg.logger()
	f := &Featured{
		repo:        repo,
		logger:      logger,
		breakpoints: bp,
		scheduler: carousel.NewScheduler(
			carousel.NewState(carousel.PageSizeForWidth(DefaultViewportWidth, bp)),
			carousel.WithPeriod(cfg.CarouselPeriod),
			carousel.WithLogger(logger),
		),
	}
	f.scheduler.OnChange(func(s carousel.State) {
		logger.Debug("carousel page changed",
			slog.Int("index", s.Index),
			slog.Int("page_count", s.PageCount),
			slog.Int("page_size", s.PageSize))
	})
	return f
}

// Start begins auto-advance. It runs until Close or until ctx is done.
func (f *Featured) Start(ctx context.Context) {
	if f.isClosed() {
		return
	}
	f.scheduler.Start(ctx)
}

// Load fetches the featured recipes and resets the carousel to them.
func (f *Featured) Load(ctx context.Context) error {
	if f.isClosed() {
		return ErrClosed
	}

	recipes, err := readList(ctx, f.logger, "list featured recipes", func() ([]recipe.Recipe, error) {
		return f.repo.ListRecipes(ctx, repository.ListOptions{DietType: FeaturedDietType})
	})
	if err != nil {
		return fmt.Errorf("loading featured recipes: %w", err)
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.recipes = recipes
	f.mu.Unlock()

	f.scheduler.Dispatch(carousel.ItemsChanged{Count: len(recipes)})
	return nil
}

// SetViewportWidth picks the page size for a viewport width.
func (f *Featured) SetViewportWidth(width int) carousel.State {
	return f.scheduler.Dispatch(carousel.Resize{PageSize: carousel.PageSizeForWidth(width, f.breakpoints)})
}

// JumpTo moves to page index. It reports false if index is out of range.
func (f *Featured) JumpTo(index int) bool {
	next := f.scheduler.Dispatch(carousel.JumpTo{Index: index})
	return index < next.PageCount && next.Index == index
}

func (f *Featured) Page() FeaturedPage {
	return f.page(f.scheduler.State())
}

// OnPageChange registers fn to be called with every new page.
func (f *Featured) OnPageChange(fn func(FeaturedPage)) {
	f.scheduler.OnChange(func(s carousel.State) {
		fn(f.page(s))
	})
}

func (f *Featured) page(s carousel.State) FeaturedPage {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FeaturedPage{
		State:   s,
		Recipes: append([]recipe.Recipe{}, carousel.Window(f.recipes, s)...),
	}
}

// Close stops auto-advance and releases the screen.
func (f *Featured) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.scheduler.Stop()
}

func (f *Featured) isClosed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}
