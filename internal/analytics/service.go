package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
	"github.com/qitaat/seller-dashboard-backend/pkg/metrics"
)

const (
	defaultFetchTimeout      = 5 * time.Second
	defaultTopListingsLimit  = 5
	defaultRecentOrdersLimit = 5
)

// Service builds seller dashboards.
type Service interface {
	Dashboard(ctx context.Context, sellerID uuid.UUID, period string) (*DashboardPayload, error)
}

// ServiceParams wires the dashboard service. Repository and Logger are required.
type ServiceParams struct {
	Repository        Repository
	Cache             Cache
	CacheTTL          time.Duration
	Metrics           *metrics.DashboardMetrics
	Logger            *logger.Logger
	Location          *time.Location
	FetchTimeout      time.Duration
	TopListingsLimit  int
	RecentOrdersLimit int
	Now               func() time.Time
}

type service struct {
	repo              Repository
	cache             *payloadCache
	metrics           *metrics.DashboardMetrics
	logg              *logger.Logger
	loc               *time.Location
	fetchTimeout      time.Duration
	topListingsLimit  int
	recentOrdersLimit int
	now               func() time.Time
}

// NewService validates params and applies defaults.
func NewService(params ServiceParams) (Service, error) {
	if params.Repository == nil {
		return nil, errors.New("analytics repository is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}

	svc := &service{
		repo:              params.Repository,
		metrics:           params.Metrics,
		logg:              params.Logger,
		loc:               params.Location,
		fetchTimeout:      params.FetchTimeout,
		topListingsLimit:  params.TopListingsLimit,
		recentOrdersLimit: params.RecentOrdersLimit,
		now:               params.Now,
	}
	if params.Cache != nil && params.CacheTTL > 0 {
		svc.cache = &payloadCache{store: params.Cache, ttl: params.CacheTTL}
	}
	if svc.loc == nil {
		svc.loc = time.UTC
	}
	if svc.fetchTimeout <= 0 {
		svc.fetchTimeout = defaultFetchTimeout
	}
	if svc.topListingsLimit <= 0 {
		svc.topListingsLimit = defaultTopListingsLimit
	}
	if svc.recentOrdersLimit <= 0 {
		svc.recentOrdersLimit = defaultRecentOrdersLimit
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc, nil
}

func (s *service) Dashboard(ctx context.Context, sellerID uuid.UUID, selector string) (*DashboardPayload, error) {
	period, err := ResolvePeriod(selector, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"seller_id": sellerID.String(),
		"period":    period.Selector.String(),
	})

	cacheKey := ""
	if s.cache.enabled() {
		cacheKey = s.cache.store.DashboardKey(sellerID.String(), period.Selector.String(), DayKey(period.Today))
		if cached := s.cachedPayload(ctx, cacheKey); cached != nil {
			return cached, nil
		}
	}

	started := time.Now()
	payload, err := s.build(ctx, sellerID, period)
	s.metrics.ObserveBuild(period.Selector.String(), time.Since(started), err)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := s.cache.set(ctx, cacheKey, payload); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "dashboard cache write failed")
		}
	}
	return payload, nil
}

func (s *service) cachedPayload(ctx context.Context, key string) *DashboardPayload {
	payload, err := s.cache.get(ctx, key)
	switch {
	case err != nil:
		s.metrics.ObserveCache(metrics.CacheError)
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "dashboard cache read failed")
		return nil
	case payload == nil:
		s.metrics.ObserveCache(metrics.CacheMiss)
		return nil
	default:
		s.metrics.ObserveCache(metrics.CacheHit)
		return payload
	}
}

func (s *service) build(ctx context.Context, sellerID uuid.UUID, period Period) (*DashboardPayload, error) {
	in, err := s.fetch(ctx, sellerID, period)
	if err != nil {
		if errors.Is(err, ErrSellerNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "seller not found")
		}
		s.logg.Error(ctx, "dashboard data fetch failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("%w: %w", ErrDataFetch, err), "failed to load dashboard data")
	}

	for _, records := range [][]DailyMetricRecord{in.current, in.previous} {
		if err := ValidateRecords(records); err != nil {
			s.logg.Error(ctx, "malformed daily metrics", err)
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "malformed daily metrics")
		}
	}

	return BuildPayload(period, in), nil
}

// fetch runs every read concurrently under one deadline. The first failure cancels the rest.
func (s *service) fetch(ctx context.Context, sellerID uuid.UUID, period Period) (dashboardInputs, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	var in dashboardInputs
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		records, err := s.repo.FetchDailyMetrics(gctx, sellerID, period.Start, period.End)
		in.current = records
		return err
	})
	g.Go(func() error {
		records, err := s.repo.FetchDailyMetrics(gctx, sellerID, period.PrevStart, period.PrevEnd)
		in.previous = records
		return err
	})
	g.Go(func() error {
		listings, err := s.repo.FetchTopListings(gctx, sellerID, s.topListingsLimit)
		in.listings = listings
		return err
	})
	g.Go(func() error {
		orders, err := s.repo.FetchRecentOrders(gctx, sellerID, period.Start, s.recentOrdersLimit)
		in.orders = orders
		return err
	})
	g.Go(func() error {
		overview, err := s.repo.FetchSellerOverview(gctx, sellerID)
		in.overview = overview
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboardInputs{}, err
	}
	return in, nil
}
