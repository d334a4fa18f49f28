package recipe

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecipeUnmarshal(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantID          ID
		wantIngredients Ingredients
		wantErr         bool
	}{
		{
			name:            "numeric id and ingredient list",
			body:            `{"id": 42, "title": "Tofu", "ingredients": ["tofu", "chili"]}`,
			wantID:          "42",
			wantIngredients: Ingredients{"tofu", "chili"},
		},
		{
			name:            "string id and ingredient block",
			body:            `{"id": "abc", "ingredients": "2 eggs, flour"}`,
			wantID:          "abc",
			wantIngredients: Ingredients{"2 eggs, flour"},
		},
		{
			name:            "null ingredients",
			body:            `{"id": 1, "ingredients": null}`,
			wantID:          "1",
			wantIngredients: Ingredients{},
		},
		{
			name:            "empty ingredient block",
			body:            `{"id": 1, "ingredients": ""}`,
			wantID:          "1",
			wantIngredients: Ingredients{},
		},
		{
			name:            "non-string entries dropped",
			body:            `{"id": 7, "ingredients": ["salt", 3, null, "pepper"]}`,
			wantID:          "7",
			wantIngredients: Ingredients{"salt", "pepper"},
		},
		{
			name:    "ingredients as object",
			body:    `{"id": 1, "ingredients": {"a": 1}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Recipe
			err := json.Unmarshal([]byte(tt.body), &r)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.ID != tt.wantID {
				t.Errorf("expected id %q, got %q", tt.wantID, r.ID)
			}
			if !reflect.DeepEqual(r.Ingredients, tt.wantIngredients) {
				t.Errorf("expected ingredients %v, got %v", tt.wantIngredients, r.Ingredients)
			}
		})
	}
}

func TestDraftOf(t *testing.T) {
	r := Recipe{
		ID:          "1",
		Title:       "Pancakes",
		Ingredients: Ingredients{"flour", "milk"},
		Rating:      4.5,
		Servings:    2,
	}
	d := DraftOf(r)
	if d.Ingredients != "flourmilk" {
		t.Errorf("expected joined ingredients, got %q", d.Ingredients)
	}
	if d.Title != r.Title || d.Rating != r.Rating || d.Servings != r.Servings {
		t.Errorf("draft does not match recipe: %+v", d)
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "12", want: "12"},
		{in: " 12 ", want: "12"},
		{in: "a1b2", want: "a1b2"},
		{in: "", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "1/2", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{name: "minimal", draft: Draft{Title: "Soup"}},
		{name: "missing title", draft: Draft{Rating: 3}, wantErr: true},
		{name: "rating too high", draft: Draft{Title: "Soup", Rating: 5.5}, wantErr: true},
		{name: "negative servings", draft: Draft{Title: "Soup", Servings: -1}, wantErr: true},
		{name: "bad image url", draft: Draft{Title: "Soup", Image: "not a url"}, wantErr: true},
		{name: "good urls", draft: Draft{Title: "Soup", Image: "https://img.example/soup.png", URL: "https://example.com/soup"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
