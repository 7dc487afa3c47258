package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/MKhiriev/go-history-sync/internal/service"
	"github.com/MKhiriev/go-history-sync/internal/utils"
	"github.com/go-chi/chi/v5"
)

// auth is an HTTP middleware that enforces bearer-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken] and stores the token's
// claims in the request context under [utils.ProjectClaimsCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value is not a bearer token ([ErrInvalidAuthorizationHeader]).
//   - The token has expired ([service.ErrTokenIsExpired]).
//   - The token is otherwise invalid or cannot be parsed.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				log.Err(err).Msg("token expired")
				http.Error(w, service.ErrTokenIsExpired.Error(), http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		claims := token.Claims
		ctx = context.WithValue(ctx, utils.ProjectClaimsCtxKey, &claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireProjectScope rejects with 403 a request whose token does not list
// the {remoteID} path parameter. It must run after auth.
func (h *Handler) requireProjectScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		remoteID := chi.URLParam(r, "remoteID")

		claims, ok := utils.GetProjectClaimsFromContext(r.Context())
		if !ok {
			log.Error().Str("func", "*Handler.requireProjectScope").Msg("no project claims in context")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		if !claims.Allows(remoteID) {
			log.Warn().
				Str("func", "*Handler.requireProjectScope").
				Str("subject", claims.Subject).
				Str("remote_id", remoteID).
				Msg("token is not scoped to project")
			http.Error(w, ErrProjectNotInToken.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
