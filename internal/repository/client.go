package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	apphttp "github.com/matt-dz/tastetribe/internal/http"
	appjson "github.com/matt-dz/tastetribe/internal/json"
	"github.com/matt-dz/tastetribe/internal/log"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/session"
)

// ClientConfig configures an HTTP-backed Repository.
type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RetryMax          int
	RequestsPerSecond float64
	Burst             int
	Logger            *slog.Logger
}

// Client implements Repository over the remote REST API. Reads are retried,
// writes are sent once. All requests share one rate limiter.
type Client struct {
	base    *url.URL
	reads   apphttp.HTTPDoer
	writes  apphttp.HTTPDoer
	limiter *rate.Limiter
	session session.Session
	logger  *slog.Logger
}

var _ Repository = (*Client)(nil)

func NewClient(cfg ClientConfig, s session.Session) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NullLogger()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		base: base,
		reads: apphttp.NewClient(apphttp.Options{
			Timeout:  cfg.Timeout,
			RetryMax: cfg.RetryMax,
			Logger:   logger,
		}),
		writes: apphttp.NewClient(apphttp.Options{
			Timeout:  cfg.Timeout,
			RetryMax: 0,
			Logger:   logger,
		}),
		limiter: rate.NewLimiter(limit, burst),
		session: s,
		logger:  logger,
	}, nil
}

// WithSession returns a copy of c that authenticates as s. The copy shares
// the transport and the rate limiter.
func (c *Client) WithSession(s session.Session) *Client {
	cp := *c
	cp.session = s
	return &cp
}

func (c *Client) Session() session.Session {
	return c.session
}

func (c *Client) ListRecipes(ctx context.Context, opts ListOptions) ([]recipe.Recipe, error) {
	const op = "list recipes"
	q := url.Values{}
	if opts.DietType != "" {
		q.Set("dietType", opts.DietType)
	}
	var out []recipe.Recipe
	if err := c.do(ctx, op, http.MethodGet, "/api/recipes", q, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) GetRecipe(ctx context.Context, id recipe.ID) (recipe.Recipe, error) {
	const op = "get recipe"
	var out recipe.Recipe
	if err := c.do(ctx, op, http.MethodGet, recipePath(id), nil, nil, &out); err != nil {
		return recipe.Recipe{}, err
	}
	return out, nil
}

func (c *Client) ListOwnRecipes(ctx context.Context, limit int) ([]recipe.Recipe, error) {
	return c.listLimited(ctx, "list own recipes", "/api/recipes/user", limit)
}

func (c *Client) ListBookmarked(ctx context.Context, limit int) ([]recipe.Recipe, error) {
	return c.listLimited(ctx, "list bookmarked recipes", "/api/recipes/bookmarked", limit)
}

func (c *Client) listLimited(ctx context.Context, op, path string, limit int) ([]recipe.Recipe, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []recipe.Recipe
	if err := c.do(ctx, op, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

type bookmarkStatusResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

func (c *Client) BookmarkStatus(ctx context.Context, id recipe.ID) (bool, error) {
	const op = "bookmark status"
	var out bookmarkStatusResponse
	if err := c.do(ctx, op, http.MethodGet, bookmarkPath(id), nil, nil, &out); err != nil {
		return false, err
	}
	return out.Bookmarked, nil
}

func (c *Client) SetBookmark(ctx context.Context, id recipe.ID) error {
	return c.do(ctx, "set bookmark", http.MethodPost, bookmarkPath(id), nil, nil, nil)
}

func (c *Client) ClearBookmark(ctx context.Context, id recipe.ID) error {
	return c.do(ctx, "clear bookmark", http.MethodDelete, bookmarkPath(id), nil, nil, nil)
}

type rateRequest struct {
	Rating float64 `json:"rating"`
}

func (c *Client) RateRecipe(ctx context.Context, id recipe.ID, value float64) (recipe.Recipe, error) {
	const op = "rate recipe"
	var out recipe.Recipe
	if err := c.do(ctx, op, http.MethodPut, recipePath(id), nil, rateRequest{Rating: value}, &out); err != nil {
		return recipe.Recipe{}, err
	}
	return out, nil
}

type commentRequest struct {
	Content string `json:"content"`
}

func (c *Client) AddComment(ctx context.Context, id recipe.ID, text string) (recipe.Comment, error) {
	const op = "add comment"
	var out recipe.Comment
	path := recipePath(id) + "/comment"
	if err := c.do(ctx, op, http.MethodPost, path, nil, commentRequest{Content: text}, &out); err != nil {
		return recipe.Comment{}, err
	}
	return out, nil
}

func (c *Client) CreateRecipe(ctx context.Context, draft recipe.Draft) (recipe.Recipe, error) {
	const op = "create recipe"
	var out recipe.Recipe
	if err := c.do(ctx, op, http.MethodPost, "/api/recipes", nil, draft, &out); err != nil {
		return recipe.Recipe{}, err
	}
	return out, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, id recipe.ID, draft recipe.Draft) (recipe.Recipe, error) {
	const op = "update recipe"
	var out recipe.Recipe
	if err := c.do(ctx, op, http.MethodPut, recipePath(id), nil, draft, &out); err != nil {
		return recipe.Recipe{}, err
	}
	return out, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id recipe.ID) error {
	return c.do(ctx, "delete recipe", http.MethodDelete, recipePath(id), nil, nil, nil)
}

func recipePath(id recipe.ID) string {
	return "/api/recipes/" + id.String()
}

func bookmarkPath(id recipe.ID) string {
	return recipePath(id) + "/bookmark"
}

func nonNil(rs []recipe.Recipe) []recipe.Recipe {
	if rs == nil {
		return []recipe.Recipe{}
	}
	return rs
}

// do sends one request and decodes a JSON response into out when out is
// non-nil. Failures come back as *Error.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf("encoding body: %w", err)}
		}
		payload = bytes.NewReader(buf)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h := c.session.Header(); h != "" {
		req.Header.Set(session.AuthorizationHeader, h)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: fmt.Errorf("waiting for rate limiter: %w", err)}
	}

	doer := c.writes
	if method == http.MethodGet {
		doer = c.reads
	}

	c.logger.DebugContext(ctx, "sending request", slog.String("op", op), slog.String("method", method), slog.String("path", path))
	resp, err := doer.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	if err := apphttp.ExpectStatus2xx(resp); err != nil {
		var statusErr *apphttp.StatusError
		if errors.As(err, &statusErr) {
			return &Error{Kind: KindForStatus(statusErr.Code), Op: op, Status: statusErr.Code, Err: err}
		}
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := appjson.DecodeJSON(out, json.NewDecoder(resp.Body)); err != nil {
		return &Error{Kind: KindNetwork, Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}
