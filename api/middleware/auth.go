package middleware

import (
	"net/http"
	"strings"

	"github.com/medimarket/storefront-backend/api/responses"
	pkgauth "github.com/medimarket/storefront-backend/pkg/auth"
	"github.com/medimarket/storefront-backend/pkg/config"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
)

// Auth validates the bearer token and seeds the request context with the
// resolved session. The raw token rides along so the backend client can
// forward the same credentials.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if !claims.Role.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown actor role"))
				return
			}

			session := pkgauth.Session{
				UserID: claims.UserID,
				Role:   claims.Role,
				Token:  token,
			}

			ctx := WithSession(r.Context(), session)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    session.UserID.String(),
					"actor_role": string(session.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
