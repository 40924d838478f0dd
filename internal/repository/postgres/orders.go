package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avein/ticketd/internal/domain"
	"github.com/avein/ticketd/internal/repository"
)

type OrderRepo struct {
	pool  *pgxpool.Pool
	store *Store
	db    DB
}

func (r *OrderRepo) With(db DB) *OrderRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *OrderRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Place persists an order together with its attendees and reserves inventory
// in a single transaction. The reservation is a conditional increment of
// quantity_sold that only matches while enough inventory remains, so two
// concurrent orders can never oversell: the losing update affects zero rows
// and the whole transaction rolls back.
//
// Returns:
//   - repository.ErrInsufficientInventory when the requested quantity exceeds
//     the remaining inventory at commit time.
//   - repository.ErrNotFound when the ticket type vanished since the caller
//     looked it up.
func (r *OrderRepo) Place(
	ctx context.Context,
	o *domain.Order,
	attendees []domain.Attendee,
) error {
	const op = "postgres.OrderRepo.Place"

	if r.db != nil {
		if err := r.placeCore(ctx, r.db, o, attendees); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		return nil
	}

	err := r.store.RunTx(ctx, nil, func(ctx context.Context, tx DB) error {
		return r.placeCore(ctx, tx, o, attendees)
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (r *OrderRepo) placeCore(
	ctx context.Context,
	db DB,
	o *domain.Order,
	attendees []domain.Attendee,
) error {
	tag, err := db.Exec(ctx,
		`UPDATE ticket_types
		 SET quantity_sold = quantity_sold + $2
		 WHERE id = $1
		 AND quantity_sold + $2 <= quantity_total`,
		o.TicketTypeID, o.Quantity,
	)
	if err != nil {
		return wrapDBErr("placeCore.reserve", err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a vanished ticket type from exhausted inventory.
		var one int
		err := db.QueryRow(ctx,
			`SELECT 1 FROM ticket_types WHERE id = $1`, o.TicketTypeID,
		).Scan(&one)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrNotFound
			}
			return wrapDBErr("placeCore.exists", err)
		}
		return repository.ErrInsufficientInventory
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO orders(id, event_id, ticket_type_id, buyer_name, buyer_email, quantity, total_amount, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.EventID, o.TicketTypeID, o.BuyerName, o.BuyerEmail, o.Quantity, o.TotalAmount, string(o.Status), o.CreatedAt,
	); err != nil {
		return wrapDBErr("placeCore.order", err)
	}

	batch := &pgx.Batch{}
	for _, a := range attendees {
		batch.Queue(
			`INSERT INTO attendees(id, event_id, order_id, ticket_type_id, name, email, qr_token, checked_in, checked_in_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.ID, a.EventID, a.OrderID, a.TicketTypeID, a.Name, a.Email, a.QRToken, a.CheckedIn, a.CheckedInAt,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr("placeCore.attendees", err)
	}

	return nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (*domain.Order, error) {
	const op = "postgres.OrderRepo.Get"

	db := r.handle()

	var o domain.Order
	var status string
	err := db.QueryRow(ctx,
		`SELECT id, event_id, ticket_type_id, buyer_name, buyer_email, quantity, total_amount, status, created_at
		 FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.EventID, &o.TicketTypeID, &o.BuyerName, &o.BuyerEmail, &o.Quantity, &o.TotalAmount, &status, &o.CreatedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	o.Status = domain.OrderStatus(status)

	return &o, nil
}
