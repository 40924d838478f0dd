package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avein/ticketd/internal/domain"
)

type TicketTypeRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TicketTypeRepo) With(db DB) *TicketTypeRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TicketTypeRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *TicketTypeRepo) Insert(ctx context.Context, t *domain.TicketType) error {
	const op = "postgres.TicketTypeRepo.Insert"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO ticket_types(id, event_id, name, price, quantity_total, quantity_sold)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.EventID, t.Name, t.Price, t.QuantityTotal, t.QuantitySold,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Get retrieves a ticket type by its ID.
//
// Returns repository.ErrNotFound when no ticket type matches.
func (r *TicketTypeRepo) Get(ctx context.Context, id string) (*domain.TicketType, error) {
	const op = "postgres.TicketTypeRepo.Get"

	db := r.handle()

	var t domain.TicketType
	err := db.QueryRow(ctx,
		`SELECT id, event_id, name, price, quantity_total, quantity_sold
		 FROM ticket_types WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.EventID, &t.Name, &t.Price, &t.QuantityTotal, &t.QuantitySold)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &t, nil
}

// List returns ticket types, optionally filtered by event. An empty eventID
// returns every ticket type.
func (r *TicketTypeRepo) List(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	const op = "postgres.TicketTypeRepo.List"

	db := r.handle()

	query := `SELECT id, event_id, name, price, quantity_total, quantity_sold
		 FROM ticket_types`
	args := []any{}
	if eventID != "" {
		query += ` WHERE event_id = $1`
		args = append(args, eventID)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.TicketType
	for rows.Next() {
		var t domain.TicketType
		if err := rows.Scan(
			&t.ID,
			&t.EventID,
			&t.Name,
			&t.Price,
			&t.QuantityTotal,
			&t.QuantitySold,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
