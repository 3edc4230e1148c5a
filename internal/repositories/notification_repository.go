package repositories

import (
	"context"

	"pg-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO notifications(user_id, message)
         VALUES($1, $2)
         RETURNING id, is_read, created_at`,
		n.UserID, n.Message,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// CreateBroadcast inserts one notification row per active user in a single
// transaction and returns the created rows.
func (r *NotificationRepository) CreateBroadcast(ctx context.Context, message string) ([]*models.Notification, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`INSERT INTO notifications(user_id, message)
         SELECT id, $1 FROM users
         RETURNING id, user_id, message, is_read, created_at`, message)
	if err != nil {
		return nil, err
	}

	var created []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		created = append(created, &n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID int) ([]*models.Notification, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, message, is_read, created_at
         FROM notifications WHERE user_id=$1
         ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead flips is_read for one notification, scoped to its owner so a user
// cannot mark someone else's.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flips every unread notification for the user
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE user_id=$1 AND is_read=FALSE`, userID)
	return err
}
