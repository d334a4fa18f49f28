package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matt-dz/tastetribe/internal/browser"
	"github.com/matt-dz/tastetribe/internal/recipe"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headerStyle  = cellStyle.Bold(true)
)

// bookmarkMark is "*" for bookmarked, "?" for unknown and " " otherwise.
func bookmarkMark(bookmarked, known bool) string {
	switch {
	case !known:
		return "?"
	case bookmarked:
		return "*"
	default:
		return " "
	}
}

func renderTable(w io.Writer, recipes []recipe.Recipe, mark func(recipe.ID) string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("", "ID", "TITLE", "COUNTRY", "DIET", "RATING", "SERVES", "PREP").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range recipes {
		m := " "
		if mark != nil {
			m = mark(r.ID)
		}
		t.Row(m, r.ID.String(), r.Title, r.CountryOfOrigin, r.DietType,
			strconv.FormatFloat(r.Rating, 'f', 1, 64), strconv.Itoa(r.Servings), r.PrepTime)
	}
	fmt.Fprintln(w, t.Render())
}

func renderSection(w io.Writer, title string, recipes []recipe.Recipe, mark func(recipe.ID) string) {
	fmt.Fprintln(w, headingStyle.Render(title))
	if len(recipes) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("nothing here yet"))
		return
	}
	renderTable(w, recipes, mark)
}

func renderExplore(w io.Writer, view browser.ExploreView) {
	unknown := make(map[recipe.ID]bool, len(view.Unknown))
	for _, id := range view.Unknown {
		unknown[id] = true
	}
	mark := func(id recipe.ID) string {
		if unknown[id] {
			return bookmarkMark(false, false)
		}
		return bookmarkMark(view.Bookmarks[id], true)
	}

	renderSection(w, fmt.Sprintf("Recipes %d of %d", len(view.Recipes), view.Total), view.Recipes, mark)
	if len(view.Unknown) > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("bookmark status unavailable for %d recipes", len(view.Unknown))))
	}
}

func renderPage(w io.Writer, page browser.FeaturedPage) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Featured page %d/%d", page.Index+1, max(page.PageCount, 1))))
	for _, r := range page.Recipes {
		fmt.Fprintf(w, "  %s  %s %s\n", r.ID, r.Title, mutedStyle.Render(fmt.Sprintf("(%.1f)", r.Rating)))
	}
}

func renderRecipe(w io.Writer, r recipe.Recipe, bookmarked, known bool) {
	fmt.Fprintf(w, "%s %s\n", headingStyle.Render(r.Title), bookmarkMark(bookmarked, known))
	if r.ChefName != "" {
		fmt.Fprintf(w, "by %s\n", r.ChefName)
	}
	fmt.Fprintf(w, "%s · %s · serves %d · %s · rated %.1f\n",
		r.CountryOfOrigin, r.DietType, r.Servings, r.PrepTime, r.Rating)

	if len(r.Ingredients) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Ingredients"))
		for _, in := range r.Ingredients {
			fmt.Fprintf(w, "  - %s\n", in)
		}
	}
	if r.Instructions != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headingStyle.Render("Instructions"))
		fmt.Fprintln(w, r.Instructions)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Comments (%d)", len(r.Comments))))
	for _, c := range r.Comments {
		author := c.Author
		if author == "" {
			author = "anonymous"
		}
		fmt.Fprintf(w, "  %s: %s\n", mutedStyle.Render(author), c.Content)
	}
}
