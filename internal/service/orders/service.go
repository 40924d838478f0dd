package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avein/ticketd/internal/domain"
	"github.com/avein/ticketd/internal/monitoring"
	"github.com/avein/ticketd/internal/repository"
	redisrepo "github.com/avein/ticketd/internal/repository/redis"
	"github.com/avein/ticketd/internal/token"
)

type TicketTypeStore interface {
	Get(ctx context.Context, id string) (*domain.TicketType, error)
}

// Store persists an order with its attendees and reserves inventory in one
// atomic step. Implementations must return
// repository.ErrInsufficientInventory when the conditional reservation
// matches nothing and leave no partial writes behind.
type Store interface {
	Place(ctx context.Context, o *domain.Order, attendees []domain.Attendee) error
}

type Service struct {
	store       Store
	ticketTypes TicketTypeStore
	cache       *redisrepo.Cache
}

func New(store Store, ticketTypes TicketTypeStore, cache *redisrepo.Cache) *Service {
	return &Service{
		store:       store,
		ticketTypes: ticketTypes,
		cache:       cache,
	}
}

type PlaceInput struct {
	EventID      string
	TicketTypeID string
	BuyerName    string
	BuyerEmail   string
	Quantity     int
}

type PlaceResult struct {
	OrderID     string            `json:"order_id"`
	TotalAmount float64           `json:"total_amount"`
	Attendees   []domain.Attendee `json:"attendees"`
}

// Place runs the purchase flow: look up the ticket type, check remaining
// inventory, compute the total, then issue the order and one attendee per
// unit inside a single store transaction.
//
// The remaining-inventory read here is advisory; the store's conditional
// reservation is what actually prevents oversell under concurrent orders.
//
// Returns:
//   - ErrTicketTypeNotFound when the ticket type does not exist.
//   - ErrInsufficientInventory when quantity exceeds remaining inventory.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*PlaceResult, error) {
	const op = "service.orders.Place"

	start := time.Now()

	tt, err := s.ticketTypes.Get(ctx, in.TicketTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			monitoring.TrackOrderPlaced("not_found", 0, time.Since(start))
			return nil, fmt.Errorf("%s:%w", op, ErrTicketTypeNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if in.Quantity > tt.Remaining() {
		monitoring.TrackOrderPlaced("insufficient_inventory", 0, time.Since(start))
		return nil, fmt.Errorf("%s:%w", op, ErrInsufficientInventory)
	}

	total, _ := decimal.NewFromFloat(tt.Price).
		Mul(decimal.NewFromInt(int64(in.Quantity))).
		Float64()

	now := time.Now().UTC()

	order := &domain.Order{
		ID:           uuid.NewString(),
		EventID:      in.EventID,
		TicketTypeID: in.TicketTypeID,
		BuyerName:    in.BuyerName,
		BuyerEmail:   in.BuyerEmail,
		Quantity:     in.Quantity,
		TotalAmount:  total,
		Status:       domain.OrderPaid,
		CreatedAt:    now,
	}

	attendees := make([]domain.Attendee, 0, in.Quantity)
	for i := 0; i < in.Quantity; i++ {
		qr, err := token.New()
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}

		attendees = append(attendees, domain.Attendee{
			ID:           uuid.NewString(),
			EventID:      in.EventID,
			OrderID:      order.ID,
			TicketTypeID: in.TicketTypeID,
			Name:         in.BuyerName,
			Email:        in.BuyerEmail,
			QRToken:      qr,
			CheckedIn:    false,
		})
	}

	if err := s.store.Place(ctx, order, attendees); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientInventory):
			monitoring.TrackOrderPlaced("insufficient_inventory", 0, time.Since(start))
			return nil, fmt.Errorf("%s:%w", op, ErrInsufficientInventory)
		case errors.Is(err, repository.ErrNotFound):
			monitoring.TrackOrderPlaced("not_found", 0, time.Since(start))
			return nil, fmt.Errorf("%s:%w", op, ErrTicketTypeNotFound)
		default:
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	}

	if s.cache != nil {
		_ = s.cache.InvalidateTicketTypes(ctx, in.EventID)
	}

	monitoring.TrackOrderPlaced("ok", in.Quantity, time.Since(start))

	return &PlaceResult{
		OrderID:     order.ID,
		TotalAmount: total,
		Attendees:   attendees,
	}, nil
}
