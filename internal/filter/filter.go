// Package filter implements recipe search and filtering over an in-memory
// collection.
package filter

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/matt-dz/tastetribe/internal/recipe"
)

// All is the sentinel for "no constraint" on categorical fields.
const All = "All"

// DietTypes are the diet values offered by the diet selector.
var DietTypes = []string{
	All,
	"Vegan",
	"Dash",
	"Keto",
	"Atkins",
	"Pescatarian",
	"Gluten-Free",
}

// Criteria is the full set of active constraints. A zero numeric field means
// the constraint is not set, which makes a literal 0 indistinguishable from
// "unset". The remote UI has always behaved this way.
type Criteria struct {
	Query              string  `json:"query"`
	DietType           string  `json:"diet_type"`
	Country            string  `json:"country"`
	MinRating          float64 `json:"min_rating" validate:"gte=0,lte=5"`
	MinServings        int     `json:"min_servings" validate:"gte=0"`
	MaxPrepTimeMinutes int     `json:"max_prep_time_minutes" validate:"gte=0"`
}

// Neutral returns criteria that retain every recipe.
func Neutral() Criteria {
	return Criteria{DietType: All, Country: All}
}

var (
	hourPattern   = regexp.MustCompile(`(\d+)\s*hour`)
	minutePattern = regexp.MustCompile(`(\d+)\s*min`)
)

// ParsePrepTime extracts "<N> hour" and "<N> min" tokens from a free-text
// duration and returns the total in minutes. Text with neither token is 0.
func ParsePrepTime(prepTime string) int {
	total := 0
	if m := hourPattern.FindStringSubmatch(prepTime); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n * 60
		}
	}
	if m := minutePattern.FindStringSubmatch(prepTime); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	return total
}

// Apply returns the recipes that satisfy every constraint in c, in input
// order. It never fails and never modifies recipes.
func Apply(recipes []recipe.Recipe, c Criteria) []recipe.Recipe {
	m := newMatcher(c.Query)
	out := make([]recipe.Recipe, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if !c.matchesFields(r) {
			continue
		}
		// Text match last, it is the most expensive predicate.
		if !m.matches(r) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func (c Criteria) matchesFields(r *recipe.Recipe) bool {
	if !isAll(c.DietType) && r.DietType != c.DietType {
		return false
	}
	if !isAll(c.Country) && r.CountryOfOrigin != c.Country {
		return false
	}
	if c.MinRating != 0 && r.Rating < c.MinRating {
		return false
	}
	if c.MinServings != 0 && r.Servings < c.MinServings {
		return false
	}
	if c.MaxPrepTimeMinutes != 0 && ParsePrepTime(r.PrepTime) > c.MaxPrepTimeMinutes {
		return false
	}
	return true
}

// isAll treats an empty categorical value like the sentinel.
func isAll(v string) bool {
	return v == "" || v == All
}

type matcher struct {
	caser  cases.Caser
	needle string
}

func newMatcher(query string) *matcher {
	if query == "" {
		return &matcher{}
	}
	m := &matcher{caser: cases.Fold()}
	m.needle = m.caser.String(query)
	return m
}

func (m *matcher) matches(r *recipe.Recipe) bool {
	if m.needle == "" {
		return true
	}
	if m.contains(r.Title) || m.contains(r.ChefName) || m.contains(r.CountryOfOrigin) ||
		m.contains(r.DietType) {
		return true
	}
	for _, ingredient := range r.Ingredients {
		if m.contains(ingredient) {
			return true
		}
	}
	return m.contains(r.Instructions)
}

func (m *matcher) contains(field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(m.caser.String(field), m.needle)
}

// DistinctCountries returns All followed by each country in first-seen
// order, without duplicates.
func DistinctCountries(recipes []recipe.Recipe) []string {
	seen := make(map[string]struct{}, len(recipes))
	out := []string{All}
	for _, r := range recipes {
		if r.CountryOfOrigin == "" || r.CountryOfOrigin == All {
			continue
		}
		if _, ok := seen[r.CountryOfOrigin]; ok {
			continue
		}
		seen[r.CountryOfOrigin] = struct{}{}
		out = append(out, r.CountryOfOrigin)
	}
	return out
}
