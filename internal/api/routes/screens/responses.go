package screens

import (
	"github.com/matt-dz/tastetribe/internal/browser"
	"github.com/matt-dz/tastetribe/internal/recipe"
)

type MountResponse struct {
	ScreenID string `json:"screen_id"`
}

type ExploreResponse struct {
	ScreenID string `json:"screen_id"`
	browser.ExploreView
}

type ToggleBookmarkResponse struct {
	RecipeID   recipe.ID `json:"recipe_id"`
	Bookmarked bool      `json:"bookmarked"`
}

type FeaturedResponse struct {
	ScreenID string `json:"screen_id"`
	browser.FeaturedPage
}
