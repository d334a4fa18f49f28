// Package setup is responsible for setting up components.
package setup

import (
	"fmt"
	"log/slog"

	"github.com/matt-dz/tastetribe/internal/config"
	"github.com/matt-dz/tastetribe/internal/log"
	"github.com/matt-dz/tastetribe/internal/repository"
	"github.com/matt-dz/tastetribe/internal/session"
)

// Logger creates the application logger at the configured level.
// Verbose forces debug logging.
func Logger(conf config.Config, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if conf.Log.Level != "" {
		var err error
		if level, err = log.ParseLevel(conf.Log.Level); err != nil {
			return nil, err
		}
	}
	if verbose {
		level = slog.LevelDebug
	}
	return log.New(&slog.HandlerOptions{Level: level}), nil
}

// Session reads the viewer's session from token, falling back to the
// configured token. An empty token is an anonymous session.
func Session(conf config.Config, token string) (session.Session, error) {
	if token == "" {
		token = conf.Session.Token
	}
	s, err := session.FromToken(token, []byte(conf.Session.Secret))
	if err != nil {
		return session.Session{}, fmt.Errorf("reading token: %w", err)
	}
	return s, nil
}

// Repository creates the remote API client acting for s.
func Repository(conf config.Config, s session.Session, logger *slog.Logger) (*repository.Client, error) {
	client, err := repository.NewClient(repository.ClientConfig{
		BaseURL:           conf.API.BaseURL,
		Timeout:           conf.API.Timeout,
		RetryMax:          conf.API.RetryMax,
		RequestsPerSecond: conf.API.RequestsPerSecond,
		Burst:             conf.API.Burst,
		Logger:            logger,
	}, s)
	if err != nil {
		return nil, fmt.Errorf("creating api client: %w", err)
	}
	return client, nil
}
