// Package session carries the viewer's identity and bearer token. A Session
// is passed explicitly to the components that talk to the remote API.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

var (
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrMissingSubject  = errors.New("token has no subject")
	ErrNoSession       = errors.New("no session in context")
)

// Session identifies the viewer. The zero value is an anonymous viewer.
type Session struct {
	ViewerID string
	Token    string
}

func Anonymous() Session {
	return Session{}
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// FromToken reads the viewer id from the token's subject claim. When secret
// is non-empty the HS256 signature and expiry are verified; otherwise the
// token is only decoded, since the remote API is the authority on it.
func FromToken(raw string, secret []byte) (Session, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Anonymous(), nil
	}

	claims := jwt.MapClaims{}
	if len(secret) > 0 {
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return Session{}, fmt.Errorf("validating token: %w", err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return Session{}, fmt.Errorf("parsing token: %w", err)
		}
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return Session{}, fmt.Errorf("reading expiry: %w", err)
		}
		if exp != nil && exp.Before(time.Now()) {
			return Session{}, jwt.ErrTokenExpired
		}
	}

	viewerID, err := subject(claims)
	if err != nil {
		return Session{}, err
	}
	return Session{ViewerID: viewerID, Token: raw}, nil
}

// subject accepts both string and numeric "sub" claims; some token issuers
// put the numeric user id there as-is.
func subject(claims jwt.MapClaims) (string, error) {
	switch v := claims["sub"].(type) {
	case string:
		if v == "" {
			return "", ErrMissingSubject
		}
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", ErrMissingSubject
	default:
		return "", fmt.Errorf("unexpected subject type %T", v)
	}
}

// FromAuthorizationHeader parses an "Authorization: Bearer <token>" value.
// An empty header is an anonymous session.
func FromAuthorizationHeader(header string, secret []byte) (Session, error) {
	if header == "" {
		return Anonymous(), nil
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return Session{}, ErrMalformedHeader
	}
	return FromToken(strings.TrimPrefix(header, bearerPrefix), secret)
}

// Header returns the Authorization header value, or "" when anonymous.
func (s Session) Header() string {
	if !s.Authenticated() {
		return ""
	}
	return bearerPrefix + s.Token
}

type sessionKeyType struct{}

var sessionKey sessionKeyType

func WithCtx(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromCtx(ctx context.Context) (Session, error) {
	if s, ok := ctx.Value(sessionKey).(Session); ok {
		return s, nil
	}
	return Session{}, ErrNoSession
}
