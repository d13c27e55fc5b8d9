package tracking

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

func TestEventValidate(t *testing.T) {
	seller := uuid.New()
	nilListing := uuid.Nil

	cases := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{name: "view", event: Event{SellerID: seller, Type: enums.SellerEventView}},
		{name: "order with amount", event: Event{SellerID: seller, Type: enums.SellerEventOrder, AmountHalalas: 1500}},
		{name: "missing seller", event: Event{Type: enums.SellerEventView}, wantErr: true},
		{name: "unknown type", event: Event{SellerID: seller, Type: "click"}, wantErr: true},
		{name: "negative amount", event: Event{SellerID: seller, Type: enums.SellerEventOrder, AmountHalalas: -1}, wantErr: true},
		{name: "amount on view", event: Event{SellerID: seller, Type: enums.SellerEventView, AmountHalalas: 10}, wantErr: true},
		{name: "nil listing id", event: Event{SellerID: seller, Type: enums.SellerEventView, ListingID: &nilListing}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.event.Validate()
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidEvent))
		})
	}
}

func TestDeltaFor(t *testing.T) {
	seller := uuid.New()
	assert.Equal(t, MetricDelta{Views: 1}, DeltaFor(Event{SellerID: seller, Type: enums.SellerEventView}))
	assert.Equal(t, MetricDelta{Inquiries: 1}, DeltaFor(Event{SellerID: seller, Type: enums.SellerEventInquiry}))
	assert.Equal(t, MetricDelta{Orders: 1, RevenueHalalas: 2599}, DeltaFor(Event{SellerID: seller, Type: enums.SellerEventOrder, AmountHalalas: 2599}))
	assert.Equal(t, MetricDelta{NewListings: 1}, DeltaFor(Event{SellerID: seller, Type: enums.SellerEventNewListing}))
}
