package filter

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Query parameter names understood by CriteriaFromQuery.
const (
	ParamQuery       = "q"
	ParamDiet        = "diet"
	ParamCountry     = "country"
	ParamMinRating   = "min_rating"
	ParamMinServings = "min_servings"
	ParamMaxPrep     = "max_prep"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func criteriaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the numeric ranges of c.
func (c Criteria) Validate() error {
	if err := criteriaValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}
	return nil
}

// CriteriaFromQuery builds criteria from URL query values. Numeric inputs
// are read the way the search form reads them: a leading number is used and
// anything unparsable counts as 0, which means "no constraint".
func CriteriaFromQuery(v url.Values) (Criteria, error) {
	c := Neutral()
	c.Query = v.Get(ParamQuery)
	if d := v.Get(ParamDiet); d != "" {
		c.DietType = d
	}
	if country := v.Get(ParamCountry); country != "" {
		c.Country = country
	}
	c.MinRating = leadingFloat(v.Get(ParamMinRating))
	c.MinServings = leadingInt(v.Get(ParamMinServings))
	c.MaxPrepTimeMinutes = leadingInt(v.Get(ParamMaxPrep))

	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}

// leadingInt parses an optional sign and the digits that follow it,
// ignoring any trailing text.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	// Longest prefix that parses wins, e.g. "4.5 stars" -> 4.5.
	for end := len(s); end > 0; end-- {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			if math.IsNaN(f) {
				return 0
			}
			return f
		}
	}
	return 0
}
