package attendees

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avein/ticketd/internal/domain"
	"github.com/avein/ticketd/internal/monitoring"
	redisx "github.com/avein/ticketd/internal/redis"
	"github.com/avein/ticketd/internal/repository"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
)

type Store interface {
	List(ctx context.Context, eventID, orderID string) ([]domain.Attendee, error)
	FindByToken(ctx context.Context, token string) (*domain.Attendee, error)
	MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error)
}

type Service struct {
	store   Store
	pubsub  *redisx.CheckinPubSub
	limiter *redisrepo.SlidingWindowLimiter
}

func New(
	store Store,
	pubsub *redisx.CheckinPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
) *Service {
	return &Service{
		store:   store,
		pubsub:  pubsub,
		limiter: limiter,
	}
}

// List returns attendees filtered by event and/or order; both filters empty
// returns everything.
func (s *Service) List(ctx context.Context, eventID, orderID string) ([]domain.Attendee, error) {
	const op = "service.attendees.List"

	out, err := s.store.List(ctx, eventID, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

const (
	StatusCheckedIn        = "checked_in"
	StatusAlreadyCheckedIn = "already_checked_in"
)

type CheckinResult struct {
	Status      string     `json:"status"`
	AttendeeID  string     `json:"attendee_id,omitempty"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

// CheckIn transitions an attendee from not-checked-in to checked-in exactly
// once. A second scan of the same token reads back the original timestamp
// instead of mutating anything, so the operation is idempotent from the
// scanner's point of view.
//
// rlKey scopes the optional rate limit (typically the scanner's IP); pass ""
// to skip it.
//
// Returns:
//   - ErrAttendeeNotFound for unknown (or forged) tokens.
//   - ErrRateLimited when the scanner exceeded the scan budget.
func (s *Service) CheckIn(ctx context.Context, qrToken, rlKey string) (*CheckinResult, error) {
	const op = "service.attendees.CheckIn"

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s:%w: retry in %s", op, ErrRateLimited, retry)
		}
	}

	a, err := s.store.FindByToken(ctx, qrToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			monitoring.TrackCheckin("unknown_token")
			return nil, fmt.Errorf("%s:%w", op, ErrAttendeeNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if a.CheckedIn {
		monitoring.TrackCheckin(StatusAlreadyCheckedIn)
		return &CheckinResult{
			Status:      StatusAlreadyCheckedIn,
			CheckedInAt: a.CheckedInAt,
		}, nil
	}

	now := time.Now().UTC()

	won, err := s.store.MarkCheckedIn(ctx, a.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if !won {
		// A concurrent scan got there first; answer with its timestamp.
		a, err = s.store.FindByToken(ctx, qrToken)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}

		monitoring.TrackCheckin(StatusAlreadyCheckedIn)
		return &CheckinResult{
			Status:      StatusAlreadyCheckedIn,
			CheckedInAt: a.CheckedInAt,
		}, nil
	}

	if s.pubsub != nil {
		_ = s.pubsub.PublishCheckin(ctx, a.EventID, a.ID)
	}

	monitoring.TrackCheckin(StatusCheckedIn)

	return &CheckinResult{
		Status:     StatusCheckedIn,
		AttendeeID: a.ID,
	}, nil
}
