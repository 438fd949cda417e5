package postgres

import (
	"context"
	"time"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepo struct{ db *pgxpool.Pool }

func NewReservationRepo(db *pgxpool.Pool) repository.ReservationRepository {
	return &ReservationRepo{db: db}
}

const reservationCols = `r.id, r.user_id, r.equipment_id, r.start_time, r.end_time, r.status,
	r.purpose, r.is_recurring, r.recurring_pattern, r.recurring_end_date,
	r.created_at, r.updated_at, COALESCE(u.username, ''), COALESCE(e.name, '')`

const reservationJoins = `
	FROM reservations r
	LEFT JOIN users u ON u.id = r.user_id
	LEFT JOIN equipment e ON e.id = r.equipment_id`

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var res models.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.EquipmentID, &res.StartTime, &res.EndTime,
		&res.Status, &res.Purpose, &res.IsRecurring, &res.RecurringPattern, &res.RecurringEndDate,
		&res.CreatedAt, &res.UpdatedAt, &res.UserName, &res.EquipmentName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func collectReservations(rows pgx.Rows) ([]models.Reservation, error) {
	defer rows.Close()
	var out []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.EquipmentID, &res.StartTime, &res.EndTime,
			&res.Status, &res.Purpose, &res.IsRecurring, &res.RecurringPattern, &res.RecurringEndDate,
			&res.CreatedAt, &res.UpdatedAt, &res.UserName, &res.EquipmentName); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func blockingStatusStrings() []string {
	out := make([]string, len(models.BlockingStatuses))
	for i, s := range models.BlockingStatuses {
		out[i] = string(s)
	}
	return out
}

const overlapSQL = `
	SELECT ` + reservationCols + reservationJoins + `
	WHERE r.equipment_id::text = $1
	  AND r.status = ANY($2)
	  AND r.start_time < $3
	  AND r.end_time > $4
	ORDER BY r.start_time ASC`

// FindOverlapping returns blocking reservations whose [start_time, end_time)
// overlaps [start, end). Strict inequalities, so a reservation ending exactly
// at start (or starting exactly at end) is not a conflict.
func (r *ReservationRepo) FindOverlapping(ctx context.Context, equipmentID string, start, end time.Time) ([]models.Reservation, error) {
	rows, err := r.db.Query(ctx, overlapSQL, equipmentID, blockingStatusStrings(), end, start)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// Reserve performs the check-and-insert in one transaction. The equipment
// row is locked first so two concurrent requests for the same equipment
// serialize here; the overlap re-check then sees any reservation a competing
// transaction committed between the caller's availability check and now.
func (r *ReservationRepo) Reserve(ctx context.Context, res *models.Reservation) ([]models.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var lockID string
	if err := tx.QueryRow(ctx, `SELECT id FROM equipment WHERE id::text = $1 FOR UPDATE`, res.EquipmentID).Scan(&lockID); err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, overlapSQL, res.EquipmentID, blockingStatusStrings(), res.EndTime, res.StartTime)
	if err != nil {
		return nil, err
	}
	conflicts, err := collectReservations(rows)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return conflicts, nil
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO reservations (user_id, equipment_id, start_time, end_time, status, purpose,
			is_recurring, recurring_pattern, recurring_end_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at
	`, res.UserID, res.EquipmentID, res.StartTime, res.EndTime, res.Status, res.Purpose,
		res.IsRecurring, res.RecurringPattern, res.RecurringEndDate).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return nil, tx.Commit(ctx)
}

// Get compares the id as text, so a malformed path id reads as a miss
// rather than a uuid cast error.
func (r *ReservationRepo) Get(ctx context.Context, id string) (*models.Reservation, error) {
	return scanReservation(r.db.QueryRow(ctx, `
		SELECT `+reservationCols+reservationJoins+`
		WHERE r.id::text = $1
	`, id))
}

func (r *ReservationRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Reservation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationCols+reservationJoins+`
		ORDER BY r.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Reservation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+reservationCols+reservationJoins+`
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// UpdateStatus is a compare-and-swap: the row is only written while its
// status still equals from. Zero rows affected means the id is unknown or
// a competing transition landed first; the caller re-reads to tell which.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, from, to models.ReservationStatus) (*models.Reservation, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE reservations SET status=$1, updated_at=now()
		WHERE id::text=$2 AND status=$3
	`, to, id, from)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, nil
	}
	// re-read for the joined names
	return r.Get(ctx, id)
}

// CountByStatus counts reservations whose status is IN the given set.
func (r *ReservationRepo) CountByStatus(ctx context.Context, statuses []models.ReservationStatus) (int, error) {
	in := make([]string, len(statuses))
	for i, s := range statuses {
		in[i] = string(s)
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE status = ANY($1)`, in).Scan(&n)
	return n, err
}

// CountStartingBetween counts blocking reservations with start_time in [from, to).
func (r *ReservationRepo) CountStartingBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM reservations
		WHERE status = ANY($1) AND start_time >= $2 AND start_time < $3
	`, blockingStatusStrings(), from, to).Scan(&n)
	return n, err
}
