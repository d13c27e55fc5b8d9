package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/api/responses"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

type sellerResolver interface {
	SellerIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// SellerContext guarantees a seller id in the request context. Tokens minted
// before the user opened a store carry no seller claim, so the owning seller
// is looked up by user id.
func SellerContext(resolver sellerResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := SellerIDFromContext(ctx); ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := UserIDFromContext(ctx)
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if resolver == nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller account required"))
				return
			}

			sellerID, err := resolver.SellerIDForUser(ctx, userID)
			if err != nil {
				if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
					err = pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "seller account required")
				}
				responses.WriteError(ctx, logg, w, err)
				return
			}

			ctx = WithSellerID(ctx, sellerID)
			if logg != nil {
				ctx = logg.WithSellerID(ctx, sellerID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
