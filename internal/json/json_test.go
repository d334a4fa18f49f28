package json

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Width int `json:"width"`
	}

	tests := []struct {
		name      string
		input     string
		strict    bool
		want      int
		wantError bool
	}{
		{name: "single object", input: `{"width": 320}`, want: 320},
		{name: "trailing object", input: `{"width": 320}{"width": 1}`, wantError: true},
		{name: "malformed", input: `{"width":`, wantError: true},
		{name: "unknown field when strict", input: `{"height": 2}`, strict: true, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := json.NewDecoder(strings.NewReader(tt.input))
			if tt.strict {
				decoder.DisallowUnknownFields()
			}
			var got payload
			err := DecodeJSON(&got, decoder)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Width != tt.want {
				t.Errorf("Width = %d, want %d", got.Width, tt.want)
			}
		})
	}
}
