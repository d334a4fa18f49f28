package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matt-dz/tastetribe/internal/browser"
	"github.com/matt-dz/tastetribe/internal/config"
	"github.com/matt-dz/tastetribe/internal/repository"
	"github.com/matt-dz/tastetribe/internal/session"
	"github.com/matt-dz/tastetribe/internal/setup"
)

// app holds what every command needs once the root command has run.
type app struct {
	verbose bool
	token   string

	conf    config.Config
	logger  *slog.Logger
	session session.Session
	client  *repository.Client
}

func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	conf, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.conf = conf

	if a.logger, err = setup.Logger(conf, a.verbose); err != nil {
		return err
	}
	if a.session, err = setup.Session(conf, a.token); err != nil {
		return err
	}
	if a.session.Authenticated() {
		a.logger.Debug("signed in", slog.String("viewer_id", a.session.ViewerID))
	}
	a.client, err = setup.Repository(conf, a.session, a.logger)
	return err
}

func (a *app) browserConfig() browser.Config {
	return browser.Config{
		Logger:         a.logger,
		MaxConcurrency: a.conf.Bookmarks.MaxConcurrency,
		CarouselPeriod: a.conf.Carousel.Period,
		Breakpoints:    a.conf.Carousel.Breakpoints(),
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "tastetribe",
		Short:             "Browse, bookmark, rate and comment on TasteTribe recipes",
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.token, "token", "", "bearer token (defaults to TASTETRIBE_TOKEN)")

	rootCmd.AddCommand(exploreCmd(a))
	rootCmd.AddCommand(countriesCmd(a))
	rootCmd.AddCommand(bookmarkCmd(a))
	rootCmd.AddCommand(featuredCmd(a))
	rootCmd.AddCommand(showCmd(a))
	rootCmd.AddCommand(rateCmd(a))
	rootCmd.AddCommand(commentCmd(a))
	rootCmd.AddCommand(mineCmd(a))
	rootCmd.AddCommand(serveCmd(a))
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
