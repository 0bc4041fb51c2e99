package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"carebook/internal/model"
)

const appointmentCols = `id, user_id, name, email, phone, appointment_date, timeslot, message, created_at`

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, user_id, name, email, phone, appointment_date, timeslot, message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.UserID, a.Name, a.Email, a.Phone, a.Date, a.Timeslot, a.Message,
	)
	// the (appointment_date, timeslot) unique index catches a race where
	// two requests both saw the slot as free
	if uniqueViolation(err, "appointments_date_timeslot_key") {
		return ErrSlotTaken
	}
	return err
}

// BookedTimeslots returns the timeslot labels already taken on a day,
// ordered by start time. Input for the slot allocator.
func (s *Store) BookedTimeslots(ctx context.Context, date time.Time) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT timeslot FROM appointments WHERE appointment_date = $1 ORDER BY timeslot`, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ts string
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (s *Store) ListForUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	return s.list(ctx, `WHERE user_id = $1`, userID)
}

func (s *Store) ListForDate(ctx context.Context, date time.Time) ([]model.Appointment, error) {
	return s.list(ctx, `WHERE appointment_date = $1 ORDER BY timeslot`, date)
}

// ListBefore returns appointments strictly before the given day ("recent").
func (s *Store) ListBefore(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	return s.list(ctx, `WHERE appointment_date < $1 ORDER BY appointment_date, timeslot`, day)
}

// ListAfter returns appointments strictly after the given day ("upcoming").
func (s *Store) ListAfter(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	return s.list(ctx, `WHERE appointment_date > $1 ORDER BY appointment_date, timeslot`, day)
}

func (s *Store) list(ctx context.Context, where string, args ...any) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+appointmentCols+` FROM appointments `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.Email, &a.Phone,
			&a.Date, &a.Timeslot, &a.Message, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.UserID, &a.Name, &a.Email, &a.Phone,
		&a.Date, &a.Timeslot, &a.Message, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAppointment removes the row. A missing id is a no-op, not an
// error.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}
