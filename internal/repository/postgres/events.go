package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avein/ticketd/internal/domain"
	"github.com/avein/ticketd/internal/repository"
)

type EventRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EventRepo) With(db DB) *EventRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EventRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *EventRepo) Insert(ctx context.Context, e *domain.Event) error {
	const op = "postgres.EventRepo.Insert"

	db := r.handle()

	_, err := db.Exec(ctx,
		`INSERT INTO events(id, title, description, venue, start_at, end_at, currency, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Title, e.Description, e.Venue, e.StartAt, e.EndAt, e.Currency, string(e.Status), e.CreatedAt,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	const op = "postgres.EventRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, title, description, venue, start_at, end_at, currency, status, created_at
		 FROM events
		 ORDER BY created_at`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		var status string
		if err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.Description,
			&e.Venue,
			&e.StartAt,
			&e.EndAt,
			&e.Currency,
			&status,
			&e.CreatedAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		e.Status = domain.EventStatus(status)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// Exists reports whether an event with the given id is present. Referential
// checks are app-level; the tables carry no foreign keys.
func (r *EventRepo) Exists(ctx context.Context, id string) (bool, error) {
	const op = "postgres.EventRepo.Exists"

	db := r.handle()

	var one int
	err := db.QueryRow(ctx, `SELECT 1 FROM events WHERE id = $1`, id).Scan(&one)
	if err != nil {
		err = wrapDBErr(op, err)
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
