package middleware

import (
	"net/http"
	"strings"

	"github.com/qitaat/seller-dashboard-backend/api/responses"
	pkgAuth "github.com/qitaat/seller-dashboard-backend/pkg/auth"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
// A seller id carried by the token is trusted as-is.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID)
			ctx = WithRole(ctx, claims.Role)
			if claims.SellerID != nil {
				ctx = WithSellerID(ctx, *claims.SellerID)
			}

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithField(ctx, "actor_role", claims.Role.String())
				if claims.SellerID != nil {
					ctx = logg.WithSellerID(ctx, claims.SellerID.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = raw[7:]
	}
	return strings.TrimSpace(raw)
}
