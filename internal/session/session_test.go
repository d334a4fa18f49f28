package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-32-bytes-long-123456"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestFromToken(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name       string
		token      func(*testing.T) string
		secret     string
		wantViewer string
		wantAnon   bool
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:     "empty token is anonymous",
			token:    func(*testing.T) string { return "" },
			wantAnon: true,
		},
		{
			name: "string subject verified",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": "17", "exp": future}, testSecret)
			},
			secret:     testSecret,
			wantViewer: "17",
		},
		{
			name: "numeric subject unverified",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": 42, "exp": future}, "some-other-secret")
			},
			wantViewer: "42",
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": "1", "exp": future}, "some-other-secret")
			},
			secret:     testSecret,
			wantAnyErr: true,
		},
		{
			name: "expired unverified",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": "1", "exp": past}, testSecret)
			},
			wantErr: jwt.ErrTokenExpired,
		},
		{
			name: "expired verified",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"sub": "1", "exp": past}, testSecret)
			},
			secret:  testSecret,
			wantErr: jwt.ErrTokenExpired,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"exp": future}, testSecret)
			},
			wantErr: ErrMissingSubject,
		},
		{
			name:       "garbage",
			token:      func(*testing.T) string { return "not-a-jwt" },
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.token(t)
			s, err := FromToken(raw, []byte(tt.secret))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.wantAnyErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantAnon {
				if s.Authenticated() {
					t.Errorf("expected anonymous session, got %+v", s)
				}
				return
			}
			if s.ViewerID != tt.wantViewer {
				t.Errorf("expected viewer %q, got %q", tt.wantViewer, s.ViewerID)
			}
			if s.Token != raw {
				t.Error("expected token to be kept on the session")
			}
			if s.Header() != "Bearer "+raw {
				t.Errorf("unexpected header %q", s.Header())
			}
		})
	}
}

func TestFromAuthorizationHeader(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"sub": "9"}, testSecret)

	s, err := FromAuthorizationHeader("Bearer "+token, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ViewerID != "9" {
		t.Errorf("expected viewer 9, got %q", s.ViewerID)
	}

	s, err = FromAuthorizationHeader("", nil)
	if err != nil || s.Authenticated() {
		t.Errorf("expected anonymous session, got %+v, %v", s, err)
	}

	if _, err := FromAuthorizationHeader("Basic abc", nil); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("expected ErrMalformedHeader, got %v", err)
	}
}

func TestSessionContext(t *testing.T) {
	if _, err := FromCtx(context.Background()); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	want := Session{ViewerID: "3", Token: "tok"}
	got, err := FromCtx(WithCtx(context.Background(), want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
