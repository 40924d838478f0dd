package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avein/ticketd/internal/domain"
	redisx "github.com/avein/ticketd/internal/redis"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
)

type Store interface {
	Insert(ctx context.Context, t *domain.TicketType) error
	List(ctx context.Context, eventID string) ([]domain.TicketType, error)
}

// EventStore answers existence checks; the tables carry no foreign keys, so
// the reference from a ticket type to its event is validated here.
type EventStore interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Config struct {
	ListTTL time.Duration
}

type Service struct {
	store  Store
	events EventStore
	cache  *redisrepo.Cache
	cfg    Config
}

func New(store Store, events EventStore, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 15 * time.Second
	}

	return &Service{
		store:  store,
		events: events,
		cache:  cache,
		cfg:    cfg,
	}
}

type CreateInput struct {
	EventID       string
	Name          string
	Price         float64
	QuantityTotal int
}

// Create persists a ticket type with quantity_sold initialized to zero.
//
// Returns ErrEventNotFound when the referenced event does not exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.TicketType, error) {
	const op = "service.tickets.Create"

	ok, err := s.events.Exists(ctx, in.EventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
	}

	t := &domain.TicketType{
		ID:            uuid.NewString(),
		EventID:       in.EventID,
		Name:          in.Name,
		Price:         in.Price,
		QuantityTotal: in.QuantityTotal,
		QuantitySold:  0,
	}

	if err := s.store.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if s.cache != nil {
		_ = s.cache.InvalidateTicketTypes(ctx, in.EventID)
	}

	return t, nil
}

// List returns ticket types, optionally scoped to one event.
func (s *Service) List(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	const op = "service.tickets.List"

	if s.cache == nil {
		out, err := s.store.List(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		return out, nil
	}

	out, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyTicketTypeList(eventID),
		s.cfg.ListTTL,
		func(ctx context.Context) ([]domain.TicketType, error) {
			return s.store.List(ctx, eventID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
