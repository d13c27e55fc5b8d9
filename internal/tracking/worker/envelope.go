package worker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

// wireEnvelope is the JSON body other marketplace services publish for a seller event.
type wireEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SellerID      string          `json:"seller_id"`
	ListingID     string          `json:"listing_id,omitempty"`
	AmountHalalas int64           `json:"amount_halalas,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data,omitempty"`
}

// Envelope is a decoded seller event plus its delivery identity.
type Envelope struct {
	EventID uuid.UUID
	Event   tracking.Event
	Data    json.RawMessage
}

// decodeEnvelope reads the body and falls back to message attributes for identity fields.
func decodeEnvelope(msg *gcppubsub.Message) (*Envelope, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(msg.Data, &wire); err != nil {
		return nil, fmt.Errorf("decode seller event: %w", err)
	}

	rawID := firstNonEmpty(wire.EventID, msg.Attributes["event_id"])
	if rawID == "" {
		return nil, errors.New("event_id missing")
	}
	eventID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("event_id: %w", err)
	}

	eventType, err := enums.ParseSellerEventType(firstNonEmpty(wire.EventType, msg.Attributes["event_type"]))
	if err != nil {
		return nil, fmt.Errorf("event_type: %w", err)
	}

	sellerID, err := uuid.Parse(firstNonEmpty(wire.SellerID, msg.Attributes["seller_id"]))
	if err != nil {
		return nil, fmt.Errorf("seller_id: %w", err)
	}

	event := tracking.Event{
		SellerID:      sellerID,
		Type:          eventType,
		OccurredAt:    wire.OccurredAt,
		AmountHalalas: wire.AmountHalalas,
	}
	if id := strings.TrimSpace(wire.ListingID); id != "" {
		listingID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("listing_id: %w", err)
		}
		event.ListingID = &listingID
	}
	if event.OccurredAt.IsZero() && !msg.PublishTime.IsZero() {
		event.OccurredAt = msg.PublishTime
	}
	event.OccurredAt = event.OccurredAt.UTC()

	return &Envelope{EventID: eventID, Event: event, Data: wire.Data}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
