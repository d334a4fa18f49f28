package error

import "net/http"

type ErrorCode string

const (
	UnknownError        ErrorCode = "unknown_error"
	InternalServerError ErrorCode = "internal_server_error"
	BadRequest          ErrorCode = "bad_request"
	UnprocessibleEntity ErrorCode = "unprocessible_entity"
	InvalidAccessToken  ErrorCode = "invalid_access_token"
	ExpiredAccessToken  ErrorCode = "expired_access_token"
	LoginRequired       ErrorCode = "login_required"
	ScreenNotFound      ErrorCode = "screen_not_found"
	ScreenNotLoaded     ErrorCode = "screen_not_loaded"
	RecipeNotFound      ErrorCode = "recipe_not_found"
	InvalidRecipeID     ErrorCode = "invalid_recipe_id"
	InvalidCriteria     ErrorCode = "invalid_criteria"
	TogglePending       ErrorCode = "toggle_pending"
	UpstreamUnavailable ErrorCode = "upstream_unavailable"
	TooManyScreens      ErrorCode = "too_many_screens"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:        0, // No error code - unknown
	InternalServerError: http.StatusInternalServerError,
	BadRequest:          http.StatusBadRequest,
	UnprocessibleEntity: http.StatusUnprocessableEntity,
	InvalidAccessToken:  http.StatusUnauthorized,
	ExpiredAccessToken:  http.StatusUnauthorized,
	LoginRequired:       http.StatusUnauthorized,
	ScreenNotFound:      http.StatusNotFound,
	ScreenNotLoaded:     http.StatusConflict,
	RecipeNotFound:      http.StatusNotFound,
	InvalidRecipeID:     http.StatusBadRequest,
	InvalidCriteria:     http.StatusUnprocessableEntity,
	TogglePending:       http.StatusConflict,
	UpstreamUnavailable: http.StatusBadGateway,
	TooManyScreens:      http.StatusServiceUnavailable,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
