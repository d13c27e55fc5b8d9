package worker

import (
	"context"
	"errors"
	"time"

	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking/archive"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

type recorder interface {
	Record(ctx context.Context, event tracking.Event) error
}

type archiver interface {
	Insert(ctx context.Context, row archive.SellerEventRow) error
}

// EventHandler records the event into daily metrics and then archives the raw row.
// An archive failure is logged and does not fail the delivery: the counters are already applied.
type EventHandler struct {
	recorder recorder
	archive  archiver
	loc      *time.Location
	logg     *logger.Logger
	now      func() time.Time
}

// NewEventHandler wires the handler. archive may be nil when archiving is disabled.
func NewEventHandler(rec recorder, arch archiver, loc *time.Location, logg *logger.Logger) (*EventHandler, error) {
	if rec == nil {
		return nil, errors.New("recorder is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{recorder: rec, archive: arch, loc: loc, logg: logg, now: time.Now}, nil
}

func (h *EventHandler) Handle(ctx context.Context, envelope Envelope) error {
	if err := h.recorder.Record(ctx, envelope.Event); err != nil {
		return err
	}
	if h.archive == nil {
		return nil
	}

	row, err := h.row(envelope)
	if err != nil {
		h.logg.Error(ctx, "failed to build archive row", err)
		return nil
	}
	if err := h.archive.Insert(ctx, row); err != nil {
		h.logg.Error(ctx, "failed to archive seller event", err)
	}
	return nil
}

func (h *EventHandler) row(envelope Envelope) (archive.SellerEventRow, error) {
	event := envelope.Event
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = h.now()
	}

	payload, err := archive.EncodeJSON(envelope.Data)
	if err != nil {
		return archive.SellerEventRow{}, err
	}

	row := archive.SellerEventRow{
		EventID:       envelope.EventID.String(),
		EventType:     event.Type.String(),
		SellerID:      event.SellerID.String(),
		AmountHalalas: event.AmountHalalas,
		MetricDate:    analytics.DayKey(analytics.StartOfDay(occurred, h.loc)),
		OccurredAt:    occurred.UTC(),
		IngestedAt:    h.now().UTC(),
		Payload:       payload,
	}
	if event.ListingID != nil {
		row.ListingID.StringVal = event.ListingID.String()
		row.ListingID.Valid = true
	}
	return row, nil
}
