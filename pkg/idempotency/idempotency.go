package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/qitaat/seller-dashboard-backend/pkg/redis"
)

const (
	stateProcessing = "processing"
	stateDone       = "done"

	// DefaultProcessingTTL bounds how long an in-flight claim blocks redeliveries.
	DefaultProcessingTTL = 10 * time.Minute
)

// ClaimState is the outcome of Manager.Claim.
type ClaimState int

const (
	// ClaimAcquired means this delivery owns the event and should apply it.
	ClaimAcquired ClaimState = iota
	// ClaimInFlight means another delivery is applying the event right now.
	ClaimInFlight
	// ClaimProcessed means the event was already applied.
	ClaimProcessed
)

func (s ClaimState) String() string {
	switch s {
	case ClaimAcquired:
		return "acquired"
	case ClaimInFlight:
		return "in_flight"
	case ClaimProcessed:
		return "processed"
	default:
		return "unknown"
	}
}

// Manager remembers which event IDs one consumer has already applied.
// Keys look like `sd:idempotency:evt:processed:<consumer>:<event_id>` and hold
// "processing" while a delivery runs and "done" once it is applied.
type Manager struct {
	store         redis.IdempotencyStore
	consumer      string
	ttl           time.Duration
	processingTTL time.Duration
}

// NewManager builds a guard for consumer whose completed claims expire after ttl. A zero ttl never expires.
func NewManager(store redis.IdempotencyStore, consumer string, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	consumer = strings.TrimSpace(consumer)
	if consumer == "" {
		return nil, errors.New("consumer name is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	return &Manager{store: store, consumer: consumer, ttl: ttl, processingTTL: DefaultProcessingTTL}, nil
}

// Claim takes a short-lived in-flight claim on eventID. A delivery that finds
// an in-flight claim should be retried later rather than dropped, because the
// holder may still fail and release it.
func (m *Manager) Claim(ctx context.Context, eventID uuid.UUID) (ClaimState, error) {
	key, err := m.key(eventID)
	if err != nil {
		return ClaimInFlight, err
	}
	ok, err := m.store.SetNX(ctx, key, stateProcessing, m.processingTTL)
	if err != nil {
		return ClaimInFlight, err
	}
	if ok {
		return ClaimAcquired, nil
	}

	state, err := m.store.Get(ctx, key)
	switch {
	case errors.Is(err, goredis.Nil):
		// Released or expired since SetNX; the redelivery will claim it.
		return ClaimInFlight, nil
	case err != nil:
		return ClaimInFlight, err
	case state == stateDone:
		return ClaimProcessed, nil
	default:
		return ClaimInFlight, nil
	}
}

// Complete marks eventID as applied for the manager's ttl.
func (m *Manager) Complete(ctx context.Context, eventID uuid.UUID) error {
	key, err := m.key(eventID)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, key, stateDone, m.ttl)
}

// Release drops the claim so a redelivery is applied again.
func (m *Manager) Release(ctx context.Context, eventID uuid.UUID) error {
	key, err := m.key(eventID)
	if err != nil {
		return err
	}
	return m.store.Del(ctx, key)
}

func (m *Manager) key(eventID uuid.UUID) (string, error) {
	if eventID == uuid.Nil {
		return "", errors.New("event id is required")
	}
	return m.store.IdempotencyKey("evt:processed:"+m.consumer, eventID.String()), nil
}
