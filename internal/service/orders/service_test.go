package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avein/ticketd/internal/domain"
	"github.com/avein/ticketd/internal/repository"
)

type fakeTicketTypes struct {
	tt *domain.TicketType
}

func (f *fakeTicketTypes) Get(_ context.Context, id string) (*domain.TicketType, error) {
	if f.tt == nil || f.tt.ID != id {
		return nil, repository.ErrNotFound
	}
	cp := *f.tt
	return &cp, nil
}

// fakeOrderStore mirrors the conditional reservation of the real store:
// the increment only applies while enough inventory remains, and a failed
// reservation leaves nothing behind.
type fakeOrderStore struct {
	tt        *domain.TicketType
	orders    []domain.Order
	attendees []domain.Attendee
}

func (f *fakeOrderStore) Place(_ context.Context, o *domain.Order, atts []domain.Attendee) error {
	if f.tt == nil || f.tt.ID != o.TicketTypeID {
		return repository.ErrNotFound
	}
	if f.tt.QuantitySold+o.Quantity > f.tt.QuantityTotal {
		return repository.ErrInsufficientInventory
	}
	f.tt.QuantitySold += o.Quantity
	f.orders = append(f.orders, *o)
	f.attendees = append(f.attendees, atts...)
	return nil
}

func newFixture(total, sold int) (*Service, *fakeOrderStore) {
	tt := &domain.TicketType{
		ID:            "t1",
		EventID:       "e1",
		Name:          "GA",
		Price:         50,
		QuantityTotal: total,
		QuantitySold:  sold,
	}
	store := &fakeOrderStore{tt: tt}
	return New(store, &fakeTicketTypes{tt: tt}, nil), store
}

func TestPlace_IssuesOneAttendeePerUnit(t *testing.T) {
	svc, store := newFixture(10, 0)

	res, err := svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "t1",
		BuyerName:    "Alice",
		BuyerEmail:   "alice@example.com",
		Quantity:     3,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Equal(t, float64(150), res.TotalAmount)
	require.Len(t, res.Attendees, 3)

	seen := make(map[string]struct{})
	for _, a := range res.Attendees {
		assert.Equal(t, res.OrderID, a.OrderID)
		assert.Equal(t, "t1", a.TicketTypeID)
		assert.Equal(t, "Alice", a.Name)
		assert.False(t, a.CheckedIn)
		assert.Nil(t, a.CheckedInAt)
		assert.NotEmpty(t, a.QRToken)

		_, dup := seen[a.QRToken]
		require.False(t, dup, "duplicate qr_token in batch")
		seen[a.QRToken] = struct{}{}
	}

	require.Len(t, store.orders, 1)
	assert.Equal(t, domain.OrderPaid, store.orders[0].Status)
	assert.Equal(t, 3, store.tt.QuantitySold)
}

func TestPlace_TokensDistinctAcrossOrders(t *testing.T) {
	svc, store := newFixture(10, 0)

	seen := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		res, err := svc.Place(context.Background(), PlaceInput{
			EventID:      "e1",
			TicketTypeID: "t1",
			BuyerName:    "B",
			BuyerEmail:   "b@example.com",
			Quantity:     2,
		})
		require.NoError(t, err)

		for _, a := range res.Attendees {
			_, dup := seen[a.QRToken]
			require.False(t, dup, "token reissued across orders")
			seen[a.QRToken] = struct{}{}
		}
	}

	assert.Equal(t, 6, store.tt.QuantitySold)
}

func TestPlace_TicketTypeNotFound(t *testing.T) {
	svc, store := newFixture(10, 0)

	_, err := svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "nope",
		BuyerName:    "A",
		BuyerEmail:   "a@example.com",
		Quantity:     1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTicketTypeNotFound)
	assert.Empty(t, store.orders)
	assert.Equal(t, 0, store.tt.QuantitySold)
}

func TestPlace_InsufficientInventory(t *testing.T) {
	svc, store := newFixture(2, 2)

	_, err := svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "t1",
		BuyerName:    "A",
		BuyerEmail:   "a@example.com",
		Quantity:     1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.attendees)
	assert.Equal(t, 2, store.tt.QuantitySold)
}

// The advisory read can pass while a concurrent order drains the remaining
// inventory; the store's conditional reservation must still refuse without
// partial writes.
func TestPlace_ReservationLostRace(t *testing.T) {
	tt := &domain.TicketType{ID: "t1", EventID: "e1", Price: 50, QuantityTotal: 2, QuantitySold: 0}
	// The service sees a stale snapshot with everything available.
	stale := *tt
	store := &fakeOrderStore{tt: tt}
	svc := New(store, &fakeTicketTypes{tt: &stale}, nil)

	// Another order takes the inventory between read and reservation.
	tt.QuantitySold = 2

	_, err := svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "t1",
		BuyerName:    "A",
		BuyerEmail:   "a@example.com",
		Quantity:     1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Empty(t, store.orders)
	assert.Empty(t, store.attendees)
	assert.Equal(t, 2, tt.QuantitySold)
}

func TestPlace_ExactTotals(t *testing.T) {
	tt := &domain.TicketType{ID: "t1", EventID: "e1", Price: 19.99, QuantityTotal: 100}
	store := &fakeOrderStore{tt: tt}
	svc := New(store, &fakeTicketTypes{tt: tt}, nil)

	res, err := svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "t1",
		BuyerName:    "A",
		BuyerEmail:   "a@example.com",
		Quantity:     3,
	})

	require.NoError(t, err)
	// 19.99 * 3 must be exactly 59.97, not 59.970000000000006.
	assert.Equal(t, 59.97, res.TotalAmount)
}

// Scenario: two seats total, an order for both succeeds, a follow-up order
// for one more is refused.
func TestPlace_SellsOutExactly(t *testing.T) {
	svc, store := newFixture(2, 0)

	res, err := svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "t1",
		BuyerName:    "A",
		BuyerEmail:   "a@x.com",
		Quantity:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(100), res.TotalAmount)
	assert.Len(t, res.Attendees, 2)
	assert.Equal(t, 2, store.tt.QuantitySold)

	_, err = svc.Place(context.Background(), PlaceInput{
		EventID:      "e1",
		TicketTypeID: "t1",
		BuyerName:    "B",
		BuyerEmail:   "b@x.com",
		Quantity:     1,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientInventory)
	assert.Equal(t, 2, store.tt.QuantitySold)
}
