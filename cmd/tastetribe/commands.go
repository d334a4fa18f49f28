package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matt-dz/tastetribe/internal/api"
	"github.com/matt-dz/tastetribe/internal/browser"
	"github.com/matt-dz/tastetribe/internal/env"
	"github.com/matt-dz/tastetribe/internal/filter"
	"github.com/matt-dz/tastetribe/internal/recipe"
	"github.com/matt-dz/tastetribe/internal/repository"
)

func exploreCmd(a *app) *cobra.Command {
	c := filter.Neutral()

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "List recipes matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			explore := browser.NewExplore(a.client, a.browserConfig())
			defer explore.Close()

			if err := explore.SetCriteria(c); err != nil {
				return err
			}
			if err := explore.Load(cmd.Context()); err != nil {
				return err
			}

			renderExplore(cmd.OutOrStdout(), explore.View())
			return nil
		},
	}

	cmd.Flags().StringVarP(&c.Query, "query", "q", "", "free-text search")
	cmd.Flags().StringVar(&c.DietType, "diet", filter.All, "diet type")
	cmd.Flags().StringVar(&c.Country, "country", filter.All, "country of origin")
	cmd.Flags().Float64Var(&c.MinRating, "min-rating", 0, "minimum rating (0 for any)")
	cmd.Flags().IntVar(&c.MinServings, "min-servings", 0, "minimum servings (0 for any)")
	cmd.Flags().IntVar(&c.MaxPrepTimeMinutes, "max-prep", 0, "maximum prep time in minutes (0 for any)")
	return cmd
}

func countriesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the countries recipes come from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := a.client.ListRecipes(cmd.Context(), repository.ListOptions{})
			if err != nil {
				return err
			}
			for _, c := range filter.DistinctCountries(recipes) {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

// loadDetail parses id and loads the recipe detail screen for it.
func loadDetail(cmd *cobra.Command, a *app, rawID string) (*browser.Detail, error) {
	id, err := recipe.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	d := browser.NewDetail(a.client, a.browserConfig())
	if err := d.Load(cmd.Context(), id); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func bookmarkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <recipe-id>",
		Short: "Toggle the bookmark on a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDetail(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			bookmarked, err := d.ToggleBookmark(cmd.Context())
			if errors.Is(err, browser.ErrLoginRequired) {
				return fmt.Errorf("%w: pass --token or set TASTETRIBE_TOKEN", err)
			}
			if err != nil {
				return err
			}

			if bookmarked {
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark from %s\n", args[0])
			}
			return nil
		},
	}
}

func featuredCmd(a *app) *cobra.Command {
	var (
		width int
		pages int
	)

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show the featured dessert carousel as it advances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			f := browser.NewFeatured(a.client, a.browserConfig())
			defer f.Close()

			if err := f.Load(ctx); err != nil {
				return err
			}
			f.SetViewportWidth(width)

			page := f.Page()
			renderPage(out, page)
			if page.PageCount <= 1 || pages <= 1 {
				return nil
			}

			changes := make(chan browser.FeaturedPage, 1)
			f.OnPageChange(func(p browser.FeaturedPage) {
				select {
				case changes <- p:
				default:
				}
			})
			f.Start(ctx)

			for shown := 1; shown < pages; shown++ {
				select {
				case <-ctx.Done():
					return nil
				case p := <-changes:
					renderPage(out, p)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", browser.DefaultViewportWidth, "viewport width in pixels")
	cmd.Flags().IntVar(&pages, "pages", 3, "number of pages to show before exiting")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe with its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDetail(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			r, _ := d.Recipe()
			bookmarked, known := d.Bookmarked()
			renderRecipe(cmd.OutOrStdout(), r, bookmarked, known)
			return nil
		},
	}
}

func rateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <recipe-id> <value>",
		Short: "Rate a recipe from 0 to 5",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("parsing rating %q: %w", args[1], err)
			}

			d, err := loadDetail(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Rate(cmd.Context(), value); err != nil {
				return err
			}
			r, _ := d.Recipe()
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now rated %.1f\n", r.Title, r.Rating)
			return nil
		},
	}
}

func commentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <recipe-id> <text>",
		Short: "Comment on a recipe",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDetail(cmd, a, args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			c, err := d.AddComment(cmd.Context(), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Commented: %s\n", c.Content)
			return nil
		},
	}
}

func requireLogin(a *app) error {
	if !a.session.Authenticated() {
		return fmt.Errorf("%w: pass --token or set TASTETRIBE_TOKEN", browser.ErrLoginRequired)
	}
	return nil
}

// loadMine loads the signed-in viewer's recipes and bookmarks.
func loadMine(cmd *cobra.Command, a *app) (*browser.Mine, error) {
	if err := requireLogin(a); err != nil {
		return nil, err
	}
	m := browser.NewMine(a.client, a.browserConfig())
	if err := m.Load(cmd.Context()); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

func mineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your recipes and your bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMine(cmd, a)
			if err != nil {
				return err
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			own := m.Own()
			renderSection(out, fmt.Sprintf("My recipes (%d)", len(own)), own, nil)
			fmt.Fprintln(out)
			bookmarked := m.Bookmarked()
			renderSection(out, fmt.Sprintf("Bookmarked (%d)", len(bookmarked)), bookmarked, nil)
			return nil
		},
	}

	cmd.AddCommand(mineCreateCmd(a))
	cmd.AddCommand(mineUpdateCmd(a))
	cmd.AddCommand(mineDeleteCmd(a))
	cmd.AddCommand(mineUnbookmarkCmd(a))
	return cmd
}

type draftField struct {
	flag string
	copy func(dst *recipe.Draft, src recipe.Draft)
}

var draftFields = []draftField{
	{"title", func(d *recipe.Draft, s recipe.Draft) { d.Title = s.Title }},
	{"chef", func(d *recipe.Draft, s recipe.Draft) { d.ChefName = s.ChefName }},
	{"image", func(d *recipe.Draft, s recipe.Draft) { d.Image = s.Image }},
	{"ingredients", func(d *recipe.Draft, s recipe.Draft) { d.Ingredients = s.Ingredients }},
	{"instructions", func(d *recipe.Draft, s recipe.Draft) { d.Instructions = s.Instructions }},
	{"url", func(d *recipe.Draft, s recipe.Draft) { d.URL = s.URL }},
	{"more-info-url", func(d *recipe.Draft, s recipe.Draft) { d.MoreInfoURL = s.MoreInfoURL }},
	{"rating", func(d *recipe.Draft, s recipe.Draft) { d.Rating = s.Rating }},
	{"prep-time", func(d *recipe.Draft, s recipe.Draft) { d.PrepTime = s.PrepTime }},
	{"servings", func(d *recipe.Draft, s recipe.Draft) { d.Servings = s.Servings }},
	{"country", func(d *recipe.Draft, s recipe.Draft) { d.CountryOfOrigin = s.CountryOfOrigin }},
	{"diet", func(d *recipe.Draft, s recipe.Draft) { d.DietType = s.DietType }},
}

func addDraftFlags(cmd *cobra.Command, d *recipe.Draft) {
	f := cmd.Flags()
	f.StringVar(&d.Title, "title", "", "recipe title")
	f.StringVar(&d.ChefName, "chef", "", "chef name")
	f.StringVar(&d.Image, "image", "", "image URL")
	f.StringVar(&d.Ingredients, "ingredients", "", "ingredients")
	f.StringVar(&d.Instructions, "instructions", "", "instructions")
	f.StringVar(&d.URL, "url", "", "source URL")
	f.StringVar(&d.MoreInfoURL, "more-info-url", "", "more information URL")
	f.Float64Var(&d.Rating, "rating", 0, "rating from 0 to 5")
	f.StringVar(&d.PrepTime, "prep-time", "", `prep time, e.g. "1 hour 20 min"`)
	f.IntVar(&d.Servings, "servings", 0, "number of servings")
	f.StringVar(&d.CountryOfOrigin, "country", "", "country of origin")
	f.StringVar(&d.DietType, "diet", "", "diet type")
}

// overlayDraft returns base with every field whose flag was set on cmd taken
// from edits.
func overlayDraft(cmd *cobra.Command, base, edits recipe.Draft) recipe.Draft {
	for _, field := range draftFields {
		if cmd.Flags().Changed(field.flag) {
			field.copy(&base, edits)
		}
	}
	return base
}

func mineCreateCmd(a *app) *cobra.Command {
	var draft recipe.Draft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(a); err != nil {
				return err
			}
			m := browser.NewMine(a.client, a.browserConfig())
			defer m.Close()

			created, err := m.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", created.Title, created.ID)
			return nil
		},
	}

	addDraftFlags(cmd, &draft)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func mineUpdateCmd(a *app) *cobra.Command {
	var edits recipe.Draft

	cmd := &cobra.Command{
		Use:   "update <recipe-id>",
		Short: "Change fields of one of your recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := recipe.ParseID(args[0])
			if err != nil {
				return err
			}
			m, err := loadMine(cmd, a)
			if err != nil {
				return err
			}
			defer m.Close()

			i := slices.IndexFunc(m.Own(), func(r recipe.Recipe) bool { return r.ID == id })
			if i < 0 {
				return fmt.Errorf("recipe %s: %w", id, browser.ErrNotOwned)
			}
			draft := overlayDraft(cmd, recipe.DraftOf(m.Own()[i]), edits)

			updated, err := m.Update(cmd.Context(), id, draft)
			if errors.Is(err, browser.ErrNoChanges) {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to change in %s\n", updated.Title)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", updated.Title, updated.ID)
			return nil
		},
	}

	addDraftFlags(cmd, &edits)
	return cmd
}

func mineDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <recipe-id>",
		Short: "Delete one of your recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := recipe.ParseID(args[0])
			if err != nil {
				return err
			}
			m, err := loadMine(cmd, a)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}

func mineUnbookmarkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unbookmark <recipe-id>",
		Short: "Remove a recipe from your bookmarks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := recipe.ParseID(args[0])
			if err != nil {
				return err
			}
			m, err := loadMine(cmd, a)
			if err != nil {
				return err
			}
			defer m.Close()

			if err := m.RemoveBookmark(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark from %s\n", id)
			return nil
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the screens over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return api.Start(cmd.Context(), env.New(a.logger, a.conf, a.client))
		},
	}
}
