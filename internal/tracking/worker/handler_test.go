package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking/archive"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

type fakeRecorder struct {
	events []tracking.Event
	err    error
}

func (f *fakeRecorder) Record(_ context.Context, event tracking.Event) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeArchive struct {
	rows []archive.SellerEventRow
	err  error
}

func (f *fakeArchive) Insert(_ context.Context, row archive.SellerEventRow) error {
	f.rows = append(f.rows, row)
	return f.err
}

func TestEventHandlerRecordsAndArchives(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Riyadh")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	rec := &fakeRecorder{}
	arch := &fakeArchive{}
	h, err := NewEventHandler(rec, arch, loc, logger.Nop())
	if err != nil {
		t.Fatalf("NewEventHandler: %v", err)
	}

	listingID := uuid.New()
	env := Envelope{
		EventID: uuid.New(),
		Event: tracking.Event{
			SellerID:   uuid.New(),
			Type:       enums.SellerEventView,
			OccurredAt: time.Date(2024, 12, 16, 22, 30, 0, 0, time.UTC),
			ListingID:  &listingID,
		},
		Data: json.RawMessage(`{"source":"search"}`),
	}
	if err := h.Handle(context.Background(), env); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected one recorded event, got %d", len(rec.events))
	}
	if len(arch.rows) != 1 {
		t.Fatalf("expected one archived row, got %d", len(arch.rows))
	}
	row := arch.rows[0]
	if row.MetricDate != "2024-12-17" {
		t.Fatalf("metric date should follow the configured timezone, got %s", row.MetricDate)
	}
	if !row.ListingID.Valid || row.ListingID.StringVal != listingID.String() {
		t.Fatalf("unexpected listing id %+v", row.ListingID)
	}
	if !row.Payload.Valid || row.Payload.JSONVal != `{"source":"search"}` {
		t.Fatalf("unexpected payload %+v", row.Payload)
	}
}

func TestEventHandlerRecordErrorSkipsArchive(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("db down")}
	arch := &fakeArchive{}
	h, _ := NewEventHandler(rec, arch, time.UTC, logger.Nop())

	err := h.Handle(context.Background(), Envelope{EventID: uuid.New(), Event: tracking.Event{SellerID: uuid.New(), Type: enums.SellerEventInquiry}})
	if err == nil {
		t.Fatal("expected record error to propagate")
	}
	if len(arch.rows) != 0 {
		t.Fatal("nothing should be archived when recording fails")
	}
}

func TestEventHandlerArchiveFailureIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{}
	arch := &fakeArchive{err: errors.New("bigquery unavailable")}
	h, _ := NewEventHandler(rec, arch, time.UTC, logger.Nop())

	err := h.Handle(context.Background(), Envelope{EventID: uuid.New(), Event: tracking.Event{SellerID: uuid.New(), Type: enums.SellerEventOrder, AmountHalalas: 100}})
	if err != nil {
		t.Fatalf("archive failure should not fail the delivery: %v", err)
	}
}

func TestEventHandlerWithoutArchive(t *testing.T) {
	rec := &fakeRecorder{}
	h, err := NewEventHandler(rec, nil, nil, logger.Nop())
	if err != nil {
		t.Fatalf("NewEventHandler: %v", err)
	}
	if err := h.Handle(context.Background(), Envelope{EventID: uuid.New(), Event: tracking.Event{SellerID: uuid.New(), Type: enums.SellerEventNewListing}}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(rec.events) != 1 {
		t.Fatal("expected event to be recorded")
	}
}
