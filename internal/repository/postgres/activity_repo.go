package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go-outreach-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type activityRepo struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) domain.ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("failed to encode log details: %w", err)
		}
	}

	query := `
		INSERT INTO activity_logs (user_id, level, action, message, details, related_entity_type, related_entity_id)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
	`
	_, err := r.db.Exec(ctx, query,
		entry.UserID, string(entry.Level), entry.Action, entry.Message,
		details, entry.RelatedEntityType, entry.RelatedEntityID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity log: %w", err)
	}
	return nil
}

func (r *activityRepo) List(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.ActivityLog, error) {
	query := `
		SELECT id, user_id, level, action, message, details, COALESCE(related_entity_type, ''), COALESCE(related_entity_id, ''), created_at
		FROM activity_logs
		WHERE user_id = $1
	`
	args := []any{userID}

	if filter.Level != "" {
		args = append(args, string(filter.Level))
		query += fmt.Sprintf(" AND level = $%d", len(args))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	results := []domain.ActivityLog{}
	for rows.Next() {
		var entry domain.ActivityLog
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Level, &entry.Action, &entry.Message, &details, &entry.RelatedEntityType, &entry.RelatedEntityID, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity log row: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("failed to decode log details: %w", err)
			}
		}
		results = append(results, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity log rows: %w", err)
	}
	return results, nil
}
