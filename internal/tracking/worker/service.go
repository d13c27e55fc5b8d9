package worker

import (
	"context"
	"errors"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/idempotency"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

// Handler applies one decoded seller event.
type Handler interface {
	Handle(ctx context.Context, envelope Envelope) error
}

type HandlerFunc func(ctx context.Context, envelope Envelope) error

func (fn HandlerFunc) Handle(ctx context.Context, envelope Envelope) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, envelope)
}

type claimer interface {
	Claim(ctx context.Context, eventID uuid.UUID) (idempotency.ClaimState, error)
	Complete(ctx context.Context, eventID uuid.UUID) error
	Release(ctx context.Context, eventID uuid.UUID) error
}

// Service consumes seller events from Pub/Sub, applying each event id at most once.
type Service struct {
	subscription *gcppubsub.Subscriber
	handler      Handler
	claims       claimer
	logg         *logger.Logger
}

func NewService(subscription *gcppubsub.Subscriber, handler Handler, claims claimer, logg *logger.Logger) (*Service, error) {
	if subscription == nil {
		return nil, errors.New("seller events subscription is required")
	}
	if handler == nil {
		return nil, errors.New("seller event handler is required")
	}
	if claims == nil {
		return nil, errors.New("idempotency manager is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		subscription: subscription,
		handler:      handler,
		claims:       claims,
		logg:         logg,
	}, nil
}

type processResult struct {
	nack bool
}

// Run receives until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	return s.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if s.process(innerCtx, msg).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// process acks malformed and permanently rejected events, and nacks anything worth redelivering.
func (s *Service) process(ctx context.Context, msg *gcppubsub.Message) processResult {
	ctx = s.logg.WithField(ctx, "message_id", msg.ID)

	envelope, err := decodeEnvelope(msg)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "invalid seller event envelope")
		return processResult{}
	}
	ctx = s.logg.WithFields(ctx, map[string]any{
		"event_id":    envelope.EventID.String(),
		"event_type":  envelope.Event.Type.String(),
		"seller_id":   envelope.Event.SellerID.String(),
		"occurred_at": envelope.Event.OccurredAt.Format(time.RFC3339Nano),
	})

	state, err := s.claims.Claim(ctx, envelope.EventID)
	if err != nil {
		s.logg.Error(ctx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	switch state {
	case idempotency.ClaimProcessed:
		s.logg.Info(ctx, "event already processed")
		return processResult{}
	case idempotency.ClaimInFlight:
		// The other delivery may still fail and release, so this copy must come back.
		s.logg.Info(ctx, "event in flight elsewhere, redelivering later")
		return processResult{nack: true}
	}

	if err := s.handler.Handle(ctx, *envelope); err != nil {
		if !tracking.IsPermanent(err) {
			s.logg.Error(ctx, "handler error", err)
			if releaseErr := s.claims.Release(ctx, envelope.EventID); releaseErr != nil {
				s.logg.Error(ctx, "failed to release idempotency claim", releaseErr)
			}
			return processResult{nack: true}
		}
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "seller event rejected")
	} else {
		s.logg.Info(ctx, "seller event handled")
	}

	if err := s.claims.Complete(ctx, envelope.EventID); err != nil {
		s.logg.Error(ctx, "failed to mark seller event processed", err)
	}
	return processResult{}
}
