// Package screens contains handlers for mounting and driving browser screens.
package screens

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	apiError "github.com/matt-dz/tastetribe/internal/api/error"
	"github.com/matt-dz/tastetribe/internal/api/requestid"
	"github.com/matt-dz/tastetribe/internal/bookmark"
	"github.com/matt-dz/tastetribe/internal/browser"
	"github.com/matt-dz/tastetribe/internal/env"
	"github.com/matt-dz/tastetribe/internal/filter"
	mJson "github.com/matt-dz/tastetribe/internal/json"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
	"github.com/matt-dz/tastetribe/internal/session"
)

const (
	ScreenIDParam = "screenID"
	RecipeIDParam = "recipeID"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	e := env.EnvFromCtx(ctx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		e.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

func viewer(r *http.Request) session.Session {
	s, err := session.FromCtx(r.Context())
	if err != nil {
		return session.Anonymous()
	}
	return s
}

// repositoryFor returns the repository acting for the request's viewer.
func repositoryFor(r *http.Request) (repository.Repository, error) {
	e := env.EnvFromCtx(r.Context())
	if e.Repository == nil {
		return nil, errors.New("no repository configured")
	}
	return e.Repository(viewer(r)), nil
}

func decodeBody(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := mJson.DecodeJSON(dst, decoder); err != nil {
		return err
	}
	return requestValidator().Struct(dst)
}

// encodeScreenError writes the response for an error returned by a screen.
func encodeScreenError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := requestid.String(ctx)

	switch {
	case errors.Is(err, browser.ErrScreenNotFound), errors.Is(err, browser.ErrClosed),
		errors.Is(err, bookmark.ErrClosed):
		_ = apiError.EncodeError(w, apiError.ScreenNotFound, "screen not found", requestID)
	case errors.Is(err, browser.ErrTooManyScreens):
		e.Logger.WarnContext(ctx, "screen limit reached", slog.Int("screens", e.Screens.Len()))
		_ = apiError.EncodeError(w, apiError.TooManyScreens, "too many open screens", requestID)
	case errors.Is(err, browser.ErrNotLoaded):
		_ = apiError.EncodeError(w, apiError.ScreenNotLoaded, "screen not loaded", requestID)
	case errors.Is(err, bookmark.ErrTogglePending):
		_ = apiError.EncodeError(w, apiError.TogglePending, "bookmark change already in progress", requestID)
	case errors.Is(err, bookmark.ErrLoginRequired):
		_ = apiError.EncodeError(w, apiError.LoginRequired, "login required", requestID)
	case errors.Is(err, repository.ErrNotFound):
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
	case errors.Is(err, bookmark.ErrToggleFailed), errors.Is(err, repository.ErrNetwork):
		e.Logger.WarnContext(ctx, "upstream request failed", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UpstreamUnavailable, "recipe service unavailable", requestID)
	default:
		e.Logger.ErrorContext(ctx, "screen request failed", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
	}
}

func screenID(w http.ResponseWriter, r *http.Request) (ulid.ULID, bool) {
	id, err := ulid.ParseStrict(chi.URLParam(r, ScreenIDParam))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.ScreenNotFound, "screen not found", requestid.String(r.Context()))
		return ulid.ULID{}, false
	}
	return id, true
}

// MountExplore godoc
//
//	@Summary	Mount the explore screen.
//	@Tags		Explore
//	@Produce	json
//	@Security	BearerAuth
//
//	@Success	201	{object}	MountResponse
//	@Failure	401	{object}	apiError.Error	"Invalid access token"
//	@Failure	502	{object}	apiError.Error	"Recipe service unavailable"
//	@Failure	503	{object}	apiError.Error	"Too many open screens"
//	@Router		/api/screens/explore [POST]
func MountExplore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	repo, err := repositoryFor(r)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}

	e.Logger.DebugContext(ctx, "loading explore screen")
	explore := browser.NewExplore(repo, e.Browser())
	if err := explore.Load(ctx); err != nil {
		explore.Close()
		encodeScreenError(w, r, err)
		return
	}

	id, err := e.Screens.Mount(viewer(r).ViewerID, explore)
	if err != nil {
		explore.Close()
		encodeScreenError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusCreated, MountResponse{ScreenID: id.String()})
}

// GetExplore godoc
//
//	@Summary	Filter the recipes of an explore screen.
//	@Tags		Explore
//	@Produce	json
//
//	@Param		screenID		path		string	true	"Screen ID"
//	@Param		q				query		string	false	"Free-text query"
//	@Param		diet			query		string	false	"Diet type, or All"
//	@Param		country			query		string	false	"Country, or All"
//	@Param		min_rating		query		number	false	"Minimum rating"
//	@Param		min_servings	query		integer	false	"Minimum servings"
//	@Param		max_prep		query		integer	false	"Maximum prep time in minutes"
//
//	@Success	200				{object}	ExploreResponse
//	@Failure	404				{object}	apiError.Error	"Screen not found"
//	@Failure	422				{object}	apiError.Error	"Invalid criteria"
//	@Router		/api/screens/explore/{screenID} [GET]
func GetExplore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	id, ok := screenID(w, r)
	if !ok {
		return
	}
	explore, err := browser.Lookup[*browser.Explore](e.Screens, id, viewer(r).ViewerID)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}

	var view browser.ExploreView
	criteria, err := filter.CriteriaFromQuery(r.URL.Query())
	if err == nil {
		view, err = explore.ViewWith(criteria)
	}
	if err != nil {
		e.Logger.DebugContext(ctx, "invalid criteria", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidCriteria, "invalid search criteria", requestid.String(ctx))
		return
	}

	writeJSON(ctx, w, http.StatusOK, ExploreResponse{ScreenID: id.String(), ExploreView: view})
}

// ToggleExploreBookmark godoc
//
//	@Summary	Toggle the bookmark on a recipe of an explore screen.
//	@Tags		Explore
//	@Produce	json
//	@Security	BearerAuth
//
//	@Param		screenID	path		string	true	"Screen ID"
//	@Param		recipeID	path		string	true	"Recipe ID"
//
//	@Success	200			{object}	ToggleBookmarkResponse
//	@Failure	401			{object}	apiError.Error	"Login required"
//	@Failure	404			{object}	apiError.Error	"Screen not found"
//	@Failure	409			{object}	apiError.Error	"Toggle already in progress"
//	@Failure	502			{object}	apiError.Error	"Recipe service unavailable"
//	@Router		/api/screens/explore/{screenID}/bookmarks/{recipeID} [POST]
func ToggleExploreBookmark(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	id, ok := screenID(w, r)
	if !ok {
		return
	}
	recipeID, err := recipe.ParseID(chi.URLParam(r, RecipeIDParam))
	if err != nil {
		_ = apiError.EncodeError(w, apiError.InvalidRecipeID, "invalid recipe id", requestid.String(ctx))
		return
	}
	explore, err := browser.Lookup[*browser.Explore](e.Screens, id, viewer(r).ViewerID)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}

	bookmarked, err := explore.ToggleBookmark(ctx, recipeID)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, ToggleBookmarkResponse{RecipeID: recipeID, Bookmarked: bookmarked})
}

// MountFeatured godoc
//
//	@Summary	Mount the featured carousel and start auto-advance.
//	@Tags		Featured
//	@Produce	json
//
//	@Success	201	{object}	MountResponse
//	@Failure	502	{object}	apiError.Error	"Recipe service unavailable"
//	@Failure	503	{object}	apiError.Error	"Too many open screens"
//	@Router		/api/screens/featured [POST]
func MountFeatured(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	repo, err := repositoryFor(r)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}

	featured := browser.NewFeatured(repo, e.Browser())
	if err := featured.Load(ctx); err != nil {
		featured.Close()
		encodeScreenError(w, r, err)
		return
	}

	id, err := e.Screens.Mount(viewer(r).ViewerID, featured)
	if err != nil {
		featured.Close()
		encodeScreenError(w, r, err)
		return
	}
	// Auto-advance outlives this request and stops when the screen is
	// unmounted or swept after sitting idle.
	featured.Start(context.WithoutCancel(ctx))
	writeJSON(ctx, w, http.StatusCreated, MountResponse{ScreenID: id.String()})
}

// GetFeatured godoc
//
//	@Summary	Current page of the featured carousel.
//	@Tags		Featured
//	@Produce	json
//
//	@Param		screenID	path		string	true	"Screen ID"
//
//	@Success	200			{object}	FeaturedResponse
//	@Failure	404			{object}	apiError.Error	"Screen not found"
//	@Router		/api/screens/featured/{screenID} [GET]
func GetFeatured(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	id, ok := screenID(w, r)
	if !ok {
		return
	}
	featured, err := browser.Lookup[*browser.Featured](e.Screens, id, viewer(r).ViewerID)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, FeaturedResponse{ScreenID: id.String(), FeaturedPage: featured.Page()})
}

// SetFeaturedViewport godoc
//
//	@Summary	Report the client's viewport width.
//	@Tags		Featured
//	@Accept		json
//	@Produce	json
//
//	@Param		screenID	path		string			true	"Screen ID"
//	@Param		request		body		ViewportRequest	true	"Viewport"
//
//	@Success	200			{object}	FeaturedResponse
//	@Failure	400			{object}	apiError.Error	"Invalid request body"
//	@Failure	404			{object}	apiError.Error	"Screen not found"
//	@Router		/api/screens/featured/{screenID}/viewport [PUT]
func SetFeaturedViewport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	id, ok := screenID(w, r)
	if !ok {
		return
	}
	featured, err := browser.Lookup[*browser.Featured](e.Screens, id, viewer(r).ViewerID)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}

	var request ViewportRequest
	if err := decodeBody(r, &request); err != nil {
		e.Logger.DebugContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestid.String(ctx))
		return
	}

	featured.SetViewportWidth(request.Width)
	writeJSON(ctx, w, http.StatusOK, FeaturedResponse{ScreenID: id.String(), FeaturedPage: featured.Page()})
}

// SetFeaturedPage godoc
//
//	@Summary	Jump to a page of the featured carousel.
//	@Tags		Featured
//	@Accept		json
//	@Produce	json
//
//	@Param		screenID	path		string		true	"Screen ID"
//	@Param		request		body		PageRequest	true	"Page"
//
//	@Success	200			{object}	FeaturedResponse
//	@Failure	400			{object}	apiError.Error	"Invalid request body"
//	@Failure	404			{object}	apiError.Error	"Screen not found"
//	@Failure	422			{object}	apiError.Error	"Page out of range"
//	@Router		/api/screens/featured/{screenID}/page [PUT]
func SetFeaturedPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)

	id, ok := screenID(w, r)
	if !ok {
		return
	}
	featured, err := browser.Lookup[*browser.Featured](e.Screens, id, viewer(r).ViewerID)
	if err != nil {
		encodeScreenError(w, r, err)
		return
	}

	var request PageRequest
	if err := decodeBody(r, &request); err != nil {
		e.Logger.DebugContext(ctx, "failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestid.String(ctx))
		return
	}

	if !featured.JumpTo(request.Index) {
		_ = apiError.EncodeError(w, apiError.UnprocessibleEntity, "page out of range", requestid.String(ctx))
		return
	}
	writeJSON(ctx, w, http.StatusOK, FeaturedResponse{ScreenID: id.String(), FeaturedPage: featured.Page()})
}

// Unmount godoc
//
//	@Summary	Unmount a screen of any kind.
//	@Tags		Screens
//
//	@Param		screenID	path	string	true	"Screen ID"
//
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Screen not found"
//	@Router		/api/screens/{screenID} [DELETE]
func Unmount(w http.ResponseWriter, r *http.Request) {
	e := env.EnvFromCtx(r.Context())

	id, ok := screenID(w, r)
	if !ok {
		return
	}
	if err := e.Screens.Unmount(id, viewer(r).ViewerID); err != nil {
		encodeScreenError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
