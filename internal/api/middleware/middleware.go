// Package middleware contains middleware functions for the API
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	apiError "github.com/matt-dz/tastetribe/internal/api/error"
	"github.com/matt-dz/tastetribe/internal/api/requestid"
	"github.com/matt-dz/tastetribe/internal/env"
	"github.com/matt-dz/tastetribe/internal/log"
	"github.com/matt-dz/tastetribe/internal/session"
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.String(r.Context()); id != "" {
				return []slog.Attr{slog.String("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Make()
		ctx := log.AppendCtx(r.Context(), slog.String("log_id", requestID.String()))
		ctx = requestid.InjectRequestID(ctx, requestID)
		w.Header().Set("X-Request-ID", requestID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AddCors allows the given origins to call the API with credentials.
func AddCors(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
}

// InjectSession reads the bearer token from the Authorization header and
// stores the viewer's session in the request context. Requests without
// the header carry an anonymous session.
func InjectSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		e := env.EnvFromCtx(ctx)
		requestID := requestid.String(ctx)

		s, err := session.FromAuthorizationHeader(
			r.Header.Get(session.AuthorizationHeader), []byte(e.Config.Session.Secret))
		if errors.Is(err, jwt.ErrTokenExpired) {
			e.Logger.WarnContext(ctx, "access token expired", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
			return
		} else if err != nil {
			e.Logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
			_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
			return
		}

		if s.Authenticated() {
			ctx = log.AppendCtx(ctx, slog.String("viewer_id", s.ViewerID))
		}
		next.ServeHTTP(w, r.WithContext(session.WithCtx(ctx, s)))
	})
}
