// Package repository is the client's view of the remote recipe API.
package repository

//go:generate mockgen -destination=repomock/repository.go -package=repomock . Repository

import (
	"context"

	"github.com/matt-dz/tastetribe/internal/recipe"
)

// DefaultListLimit is the page size used for the viewer's own lists.
const DefaultListLimit = 20

// ListOptions narrows ListRecipes on the server side.
type ListOptions struct {
	DietType string
}

// Repository is the remote source of recipes and the viewer's bookmarks,
// ratings and comments. Every method may fail with an *Error whose Kind is
// one of KindAuth, KindNotFound, KindNetwork or KindValidation.
type Repository interface {
	ListRecipes(ctx context.Context, opts ListOptions) ([]recipe.Recipe, error)
	GetRecipe(ctx context.Context, id recipe.ID) (recipe.Recipe, error)

	ListOwnRecipes(ctx context.Context, limit int) ([]recipe.Recipe, error)
	ListBookmarked(ctx context.Context, limit int) ([]recipe.Recipe, error)

	BookmarkStatus(ctx context.Context, id recipe.ID) (bool, error)
	SetBookmark(ctx context.Context, id recipe.ID) error
	ClearBookmark(ctx context.Context, id recipe.ID) error

	RateRecipe(ctx context.Context, id recipe.ID, value float64) (recipe.Recipe, error)
	AddComment(ctx context.Context, id recipe.ID, text string) (recipe.Comment, error)

	CreateRecipe(ctx context.Context, draft recipe.Draft) (recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, id recipe.ID, draft recipe.Draft) (recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, id recipe.ID) error
}
