package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/api/responses"
	"github.com/qitaat/seller-dashboard-backend/api/validators"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

// recordEventRequest only admits storefront interactions. Orders and new
// listings carry revenue and inventory facts, so they arrive from the owning
// services over Pub/Sub and never through this unauthenticated route.
type recordEventRequest struct {
	Type      string     `json:"type" validate:"required,oneof=view inquiry"`
	ListingID *uuid.UUID `json:"listing_id"`
}

// RecordSellerEvent serves POST /api/public/v1/sellers/{sellerId}/events.
// The event is stamped with the server clock.
func RecordSellerEvent(svc tracking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sellerID, err := validators.PathUUID(r, "sellerId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req recordEventRequest
		if err := validators.DecodeJSONBody(w, r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		event := tracking.Event{
			SellerID:  sellerID,
			Type:      enums.SellerEventType(req.Type),
			ListingID: req.ListingID,
		}
		if err := svc.Record(ctx, event); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "recorded"})
	}
}
