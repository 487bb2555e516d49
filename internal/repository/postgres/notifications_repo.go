package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopera/savings-backend/internal/models"
)

type notificationsRepo struct{ pool *pgxpool.Pool }

func (r *notificationsRepo) Create(ctx context.Context, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notifications(id, user_id, kind, message) VALUES($1,$2,$3,$4)`,
		n.ID, n.UserID, n.Kind, n.Message,
	)
	return err
}

func (r *notificationsRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, kind, message, read, created_at
		   FROM notifications
		  WHERE user_id=$1
		  ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
