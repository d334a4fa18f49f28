// Package http provides a wrapper around the retryablehttp.Client
// for talking to the remote recipe API.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type HTTPDoer interface {
	Do(*retryablehttp.Request) (*http.Response, error)
}

type HTTP struct {
	*retryablehttp.Client
}

var _ HTTPDoer = (*retryablehttp.Client)(nil)

// Options configure a client built by NewClient.
type Options struct {
	Timeout  time.Duration
	RetryMax int
	Logger   *slog.Logger
}

func DefaultConfig() *retryablehttp.Client {
	return retryablehttp.NewClient()
}

// NewClient builds a retrying client. RetryMax of zero disables retries,
// which is what non-idempotent requests use.
func NewClient(opts Options) *HTTP {
	client := DefaultConfig()
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	if opts.Timeout > 0 {
		client.HTTPClient.Timeout = opts.Timeout
	}
	if opts.Logger != nil {
		client.Logger = opts.Logger
	} else {
		client.Logger = nil
	}
	// Hand the final response back instead of a generic "giving up" error so
	// callers can classify it by status.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return New(client)
}

func New(client *retryablehttp.Client) *HTTP {
	return &HTTP{
		Client: client,
	}
}

func ExpectStatus2xx(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
