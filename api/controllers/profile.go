package controllers

import (
	"net/http"

	"github.com/qitaat/seller-dashboard-backend/api/middleware"
	"github.com/qitaat/seller-dashboard-backend/api/responses"
	"github.com/qitaat/seller-dashboard-backend/internal/sellers"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

func SellerProfile(svc sellers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sellerID, ok := middleware.SellerIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context required"))
			return
		}

		profile, err := svc.Profile(ctx, sellerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}
