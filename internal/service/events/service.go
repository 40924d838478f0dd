package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avein/ticketd/internal/domain"
	redisx "github.com/avein/ticketd/internal/redis"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
)

// Store is the slice of the document store the event service needs. It is
// injected explicitly so tests can substitute an in-memory double.
type Store interface {
	Insert(ctx context.Context, e *domain.Event) error
	List(ctx context.Context) ([]domain.Event, error)
}

type Config struct {
	ListTTL time.Duration
}

type Service struct {
	store Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 30 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Venue       string
	StartAt     *time.Time
	EndAt       *time.Time
	Currency    string
	Status      string
}

// Create persists a new event and returns it with its assigned identifier.
// Currency defaults to "USD" and status to "draft"; status is stored as
// given, there is no lifecycle machine behind it.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Event, error) {
	const op = "service.events.Create"

	if in.Currency == "" {
		in.Currency = "USD"
	}
	if in.Status == "" {
		in.Status = string(domain.EventDraft)
	}

	e := &domain.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Venue:       in.Venue,
		StartAt:     in.StartAt,
		EndAt:       in.EndAt,
		Currency:    in.Currency,
		Status:      domain.EventStatus(in.Status),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateEvents(ctx)
	}

	return e, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	const op = "service.events.List"

	if s.cache == nil {
		out, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		return out, nil
	}

	out, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyEventList(),
		s.cfg.ListTTL,
		func(ctx context.Context) ([]domain.Event, error) {
			return s.store.List(ctx)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
