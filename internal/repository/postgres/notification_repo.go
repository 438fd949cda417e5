package postgres

import (
	"context"

	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/models"
	"github.com/Shreyansh-sys/NRC-lab-reservation-system/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepo struct{ db *pgxpool.Pool }

func NewNotificationRepo(db *pgxpool.Pool) repository.NotificationRepository {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	sql := `
		SELECT id, user_id, notification_type, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, sql, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO notifications (user_id, notification_type, title, message)
		VALUES ($1,$2,$3,$4)
		RETURNING id, is_read, created_at
	`, n.UserID, n.Type, n.Title, n.Message).
		Scan(&n.ID, &n.Read, &n.CreatedAt)
}

// MarkRead flips the read flag; scoped to the owning user so one user
// cannot touch another's notifications.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.QueryRow(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id::text = $1 AND user_id = $2
		RETURNING id, user_id, notification_type, title, message, is_read, created_at
	`, id, userID).
		Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}
