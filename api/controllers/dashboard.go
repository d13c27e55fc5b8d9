package controllers

import (
	"net/http"

	"github.com/qitaat/seller-dashboard-backend/api/middleware"
	"github.com/qitaat/seller-dashboard-backend/api/responses"
	"github.com/qitaat/seller-dashboard-backend/api/validators"
	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

// SellerDashboard serves GET /api/v1/seller/dashboard?period=7d|30d|90d|1y.
// An empty period falls back to 7d inside the service.
func SellerDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sellerID, ok := middleware.SellerIDFromContext(ctx)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "seller context required"))
			return
		}

		payload, err := svc.Dashboard(ctx, sellerID, validators.QueryString(r, "period"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		w.Header().Set("Cache-Control", "private, no-store")
		responses.WriteSuccess(w, payload)
	}
}
