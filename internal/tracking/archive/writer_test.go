package archive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	cbigquery "cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type insertCall struct {
	table string
	rows  int
}

type fakeInserter struct {
	responses []error
	calls     []insertCall
}

func (f *fakeInserter) InsertRows(_ context.Context, table string, rows []any) error {
	f.calls = append(f.calls, insertCall{table: table, rows: len(rows)})
	if len(f.responses) == 0 {
		return nil
	}
	err := f.responses[0]
	f.responses = f.responses[1:]
	return err
}

func newTestWriter(t *testing.T, batch int) (*Writer, *fakeInserter) {
	t.Helper()
	fake := &fakeInserter{}
	w, err := newWriter(fake, Config{
		Table:     "seller_events",
		BatchSize: batch,
		RetryPolicy: RetryPolicy{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaximumBackoff: 2 * time.Millisecond,
		},
	})
	if err != nil {
		t.Fatalf("newWriter: %v", err)
	}
	return w, fake
}

func TestNewWriterValidation(t *testing.T) {
	if _, err := New(nil, Config{Table: "seller_events"}); err == nil {
		t.Fatal("expected error when client missing")
	}
	if _, err := newWriter(&fakeInserter{}, Config{Table: "  "}); err == nil {
		t.Fatal("expected error when table missing")
	}
}

func TestWriterRetriesOnTransientError(t *testing.T) {
	w, fake := newTestWriter(t, 1)
	fake.responses = []error{&googleapi.Error{Code: http.StatusServiceUnavailable}, nil}

	if err := w.Insert(context.Background(), SellerEventRow{EventID: "1"}); err != nil {
		t.Fatalf("unexpected error writing row: %v", err)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("expected two insert attempts, got %d", len(fake.calls))
	}
	if fake.calls[1].table != "seller_events" {
		t.Fatalf("unexpected table on retry: %s", fake.calls[1].table)
	}
	if len(w.buffer) != 0 {
		t.Fatal("expected buffer to be empty after success")
	}
}

func TestWriterStopsOnPermanentError(t *testing.T) {
	w, fake := newTestWriter(t, 1)
	fake.responses = []error{&googleapi.Error{Code: http.StatusBadRequest}}

	if err := w.Insert(context.Background(), SellerEventRow{EventID: "1"}); err == nil {
		t.Fatal("expected error for bad request")
	}
	if len(fake.calls) != 1 {
		t.Fatalf("expected a single attempt, got %d", len(fake.calls))
	}
	if len(w.buffer) != 1 {
		t.Fatal("failed rows stay buffered for the next flush")
	}
}

func TestWriterGivesUpAfterMaxAttempts(t *testing.T) {
	w, fake := newTestWriter(t, 1)
	transient := status.Error(codes.Unavailable, "try later")
	fake.responses = []error{transient, transient, transient, transient}

	err := w.Insert(context.Background(), SellerEventRow{EventID: "1"})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if len(fake.calls) != 3 {
		t.Fatalf("expected three attempts, got %d", len(fake.calls))
	}
}

func TestWriterBatching(t *testing.T) {
	w, fake := newTestWriter(t, 2)

	if err := w.Insert(context.Background(), SellerEventRow{EventID: "1"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatal("expected no flush before batch is full")
	}
	if err := w.Insert(context.Background(), SellerEventRow{EventID: "2"}); err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0].rows != 2 {
		t.Fatalf("expected one call with two rows, got %+v", fake.calls)
	}

	if err := w.Insert(context.Background(), SellerEventRow{EventID: "3"}); err != nil {
		t.Fatalf("third insert: %v", err)
	}
	if err := w.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(fake.calls) != 2 || fake.calls[1].rows != 1 {
		t.Fatalf("expected flush to send the remaining row, got %+v", fake.calls)
	}
}

func TestWriterHonorsCanceledContext(t *testing.T) {
	w, fake := newTestWriter(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Insert(ctx, SellerEventRow{EventID: "1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatal("no insert should be attempted on a canceled context")
	}
}

func TestIsRetryableBigQueryError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: true},
		{name: "forbidden", err: &googleapi.Error{Code: http.StatusForbidden}, want: false},
		{name: "grpc unavailable", err: status.Error(codes.Unavailable, "x"), want: true},
		{name: "grpc invalid argument", err: status.Error(codes.InvalidArgument, "x"), want: false},
		{name: "plain", err: errors.New("boom"), want: false},
		{name: "multi all transient", err: cbigquery.MultiError{&googleapi.Error{Code: 503}, &googleapi.Error{Code: 500}}, want: true},
		{name: "multi mixed", err: cbigquery.MultiError{&googleapi.Error{Code: 503}, &googleapi.Error{Code: 400}}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryableBigQueryError(tc.err); got != tc.want {
				t.Fatalf("isRetryableBigQueryError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	nj, err := EncodeJSON(map[string]any{"source": "search"})
	if err != nil || !nj.Valid {
		t.Fatalf("expected valid json, got %+v (%v)", nj, err)
	}

	nj, err = EncodeJSON(nil)
	if err != nil || nj.Valid {
		t.Fatalf("expected nil payload to be null, got %+v (%v)", nj, err)
	}

	raw := json.RawMessage(`{"source":"home"}`)
	nj, err = EncodeJSON(raw)
	if err != nil || nj.JSONVal != string(raw) {
		t.Fatalf("expected raw json passed through, got %+v (%v)", nj, err)
	}

	nj, _ = EncodeJSON(json.RawMessage(nil))
	if nj.Valid {
		t.Fatal("expected empty raw message to be null")
	}
}
