// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/matt-dz/tastetribe/internal/browser"
	"github.com/matt-dz/tastetribe/internal/config"
	"github.com/matt-dz/tastetribe/internal/log"
	"github.com/matt-dz/tastetribe/internal/repository"
	"github.com/matt-dz/tastetribe/internal/session"
)

// RepositoryFunc returns a repository acting on behalf of s.
type RepositoryFunc func(s session.Session) repository.Repository

type Env struct {
	Logger     *slog.Logger
	Config     config.Config
	Repository RepositoryFunc
	Screens    *browser.Registry
}

// New builds an Env whose repositories share client's transport.
func New(logger *slog.Logger, conf config.Config, client *repository.Client) *Env {
	if logger == nil {
		logger = log.NullLogger()
	}
	return &Env{
		Logger: logger,
		Config: conf,
		Repository: func(s session.Session) repository.Repository {
			return client.WithSession(s)
		},
		Screens: browser.NewRegistry(
			browser.WithTTL(conf.Server.ScreenTTL),
			browser.WithMaxScreens(conf.Server.MaxScreens),
			browser.WithRegistryLogger(logger),
		),
	}
}

func Null() *Env {
	return &Env{
		Logger:  log.NullLogger(),
		Screens: browser.NewRegistry(),
	}
}

// Browser returns the screen configuration derived from Config.
func (e *Env) Browser() browser.Config {
	return browser.Config{
		Logger:         e.Logger,
		MaxConcurrency: e.Config.Bookmarks.MaxConcurrency,
		CarouselPeriod: e.Config.Carousel.Period,
		Breakpoints:    e.Config.Carousel.Breakpoints(),
	}
}

type envKeyType struct{}

var envKey envKeyType

func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx returns the Env stored in ctx, or a null Env if there is none.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok {
		return e
	}
	return Null()
}
