// Package recipe contains the recipe model shared by the client packages.
package recipe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID identifies a recipe. The remote API sends it as a number or a string;
// both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding recipe id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding recipe id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Ingredients is the canonical ingredient list. On the wire it is either a
// single free-text block or a list of strings.
type Ingredients []string

var ErrInvalidIngredients = errors.New("ingredients must be a string or a list of strings")

func (in *Ingredients) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*in = Ingredients{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding ingredients: %w", err)
		}
		if s == "" {
			*in = Ingredients{}
			return nil
		}
		*in = Ingredients{s}
		return nil
	case len(data) > 0 && data[0] == '[':
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding ingredients: %w", err)
		}
		out := make(Ingredients, 0, len(raw))
		for _, v := range raw {
			// Non-string entries are dropped, the same way the search skips them.
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		*in = out
		return nil
	}
	return ErrInvalidIngredients
}

// Text joins the list back into the single block the recipe form edits.
func (in Ingredients) Text() string {
	return strings.Join(in, "")
}

type Comment struct {
	ID        ID        `json:"id,omitempty"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

type Recipe struct {
	ID              ID          `json:"id"`
	Title           string      `json:"title"`
	ChefName        string      `json:"chefName"`
	ChefImage       string      `json:"chefImage"`
	Image           string      `json:"image"`
	Ingredients     Ingredients `json:"ingredients"`
	Instructions    string      `json:"instructions"`
	URL             string      `json:"url"`
	MoreInfoURL     string      `json:"moreInfoUrl"`
	Rating          float64     `json:"rating"`
	PrepTime        string      `json:"prepTime"`
	Servings        int         `json:"servings"`
	CountryOfOrigin string      `json:"countryOfOrigin"`
	DietType        string      `json:"dietType"`
	Comments        []Comment   `json:"comments,omitempty"`
}

// IDs returns the ids of recipes in order.
func IDs(recipes []Recipe) []ID {
	ids := make([]ID, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	return ids
}

// Draft is the payload of create and update commands. Ingredients are sent
// as a single text block, which is what the remote API stores.
type Draft struct {
	Title           string  `json:"title" validate:"required"`
	ChefName        string  `json:"chefName"`
	Image           string  `json:"image" validate:"omitempty,url"`
	Ingredients     string  `json:"ingredients"`
	Instructions    string  `json:"instructions"`
	URL             string  `json:"url" validate:"omitempty,url"`
	MoreInfoURL     string  `json:"moreInfoUrl" validate:"omitempty,url"`
	Rating          float64 `json:"rating" validate:"gte=0,lte=5"`
	PrepTime        string  `json:"prepTime"`
	Servings        int     `json:"servings" validate:"gte=0"`
	CountryOfOrigin string  `json:"countryOfOrigin"`
	DietType        string  `json:"dietType"`
}

// DraftOf returns the editable form of r.
func DraftOf(r Recipe) Draft {
	return Draft{
		Title:           r.Title,
		ChefName:        r.ChefName,
		Image:           r.Image,
		Ingredients:     r.Ingredients.Text(),
		Instructions:    r.Instructions,
		URL:             r.URL,
		MoreInfoURL:     r.MoreInfoURL,
		Rating:          r.Rating,
		PrepTime:        r.PrepTime,
		Servings:        r.Servings,
		CountryOfOrigin: r.CountryOfOrigin,
		DietType:        r.DietType,
	}
}

// ParseID accepts the id forms used on the command line and in URLs.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("recipe id should not be empty")
	}
	if strings.ContainsAny(s, "/?#") {
		return "", fmt.Errorf("recipe id %q contains reserved characters", s)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n < 0 {
		return "", errors.New("recipe id should be non-negative")
	}
	return ID(s), nil
}
