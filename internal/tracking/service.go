package tracking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
	"github.com/qitaat/seller-dashboard-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records seller events into the daily metric table.
type Service interface {
	Record(ctx context.Context, event Event) error
}

type ServiceParams struct {
	Repository Repository
	Tx         txRunner
	Location   *time.Location
	Metrics    *metrics.DashboardMetrics
	Logger     *logger.Logger
	Now        func() time.Time
}

type service struct {
	repo    Repository
	tx      txRunner
	loc     *time.Location
	metrics *metrics.DashboardMetrics
	logg    *logger.Logger
	now     func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("tracking repository is required")
	}
	if params.Tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	svc := &service{
		repo:    params.Repository,
		tx:      params.Tx,
		loc:     params.Location,
		metrics: params.Metrics,
		logg:    params.Logger,
		now:     params.Now,
	}
	if svc.loc == nil {
		svc.loc = time.UTC
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

// Record applies the event to the row for its calendar day in the configured location.
// A view that names a listing also bumps that listing's view counter in the same transaction.
func (s *service) Record(ctx context.Context, event Event) error {
	err := s.record(ctx, event)
	s.metrics.ObserveEvent(event.Type.String(), err)
	return err
}

func (s *service) record(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, err.Error())
	}

	now := s.now()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = now
	}
	day := analytics.DayKey(analytics.StartOfDay(event.OccurredAt, s.loc))
	delta := DeltaFor(event)

	ctx = s.logg.WithFields(ctx, map[string]any{
		"seller_id":  event.SellerID.String(),
		"event_type": event.Type.String(),
		"day":        day,
	})

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.IncrementDaily(ctx, event.SellerID, day, delta, now); err != nil {
			return err
		}
		if event.Type == enums.SellerEventView && event.ListingID != nil {
			return repo.IncrementListingViews(ctx, event.SellerID, *event.ListingID)
		}
		return nil
	})
	switch {
	case err == nil:
		s.logg.Debug(ctx, "seller event recorded")
		return nil
	case errors.Is(err, ErrSellerNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "seller not found")
	case errors.Is(err, ErrListingNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "listing not found")
	default:
		s.logg.Error(ctx, "failed to record seller event", err)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to record event")
	}
}

// IsPermanent reports whether retrying the same event can never succeed.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInvalidEvent) ||
		errors.Is(err, ErrSellerNotFound) ||
		errors.Is(err, ErrListingNotFound)
}
