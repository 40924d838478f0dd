package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avein/ticketd/internal/domain"
)

type AttendeeRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AttendeeRepo) With(db DB) *AttendeeRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AttendeeRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// List returns attendees filtered by event and/or order. Empty filters match
// everything.
func (r *AttendeeRepo) List(ctx context.Context, eventID, orderID string) ([]domain.Attendee, error) {
	const op = "postgres.AttendeeRepo.List"

	db := r.handle()

	query := `SELECT id, event_id, order_id, ticket_type_id, name, email, qr_token, checked_in, checked_in_at
		 FROM attendees`
	var args []any
	var where []string

	if eventID != "" {
		args = append(args, eventID)
		where = append(where, "event_id = $"+strconv.Itoa(len(args)))
	}
	if orderID != "" {
		args = append(args, orderID)
		where = append(where, "order_id = $"+strconv.Itoa(len(args)))
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Attendee
	for rows.Next() {
		var a domain.Attendee
		if err := rows.Scan(
			&a.ID,
			&a.EventID,
			&a.OrderID,
			&a.TicketTypeID,
			&a.Name,
			&a.Email,
			&a.QRToken,
			&a.CheckedIn,
			&a.CheckedInAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}

		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// FindByToken looks an attendee up by exact QR token match.
//
// Returns repository.ErrNotFound when the token is unknown; tokens are not
// guessable, so this also covers forged ones.
func (r *AttendeeRepo) FindByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	const op = "postgres.AttendeeRepo.FindByToken"

	db := r.handle()

	var a domain.Attendee
	err := db.QueryRow(ctx,
		`SELECT id, event_id, order_id, ticket_type_id, name, email, qr_token, checked_in, checked_in_at
		 FROM attendees WHERE qr_token = $1`,
		token,
	).Scan(&a.ID, &a.EventID, &a.OrderID, &a.TicketTypeID, &a.Name, &a.Email, &a.QRToken, &a.CheckedIn, &a.CheckedInAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

// MarkCheckedIn flips checked_in false->true and stamps checked_in_at. The
// update is conditional on the attendee not being checked in yet, so the
// timestamp is written exactly once; a false return means another scan won
// the race and the caller should re-read.
func (r *AttendeeRepo) MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error) {
	const op = "postgres.AttendeeRepo.MarkCheckedIn"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE attendees
		 SET checked_in = TRUE, checked_in_at = $2
		 WHERE id = $1 AND checked_in = FALSE`,
		id, at,
	)
	if err != nil {
		return false, wrapDBErr(op, err)
	}

	return tag.RowsAffected() > 0, nil
}
