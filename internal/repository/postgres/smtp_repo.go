package postgres

import (
	"context"
	"fmt"

	"go-outreach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type smtpRepo struct {
	db *pgxpool.Pool
}

func NewSMTPRepository(db *pgxpool.Pool) domain.SMTPRepository {
	return &smtpRepo{db: db}
}

func (r *smtpRepo) Upsert(ctx context.Context, cfg *domain.SMTPConfig) (*domain.SMTPConfig, error) {
	query := `
		INSERT INTO smtp_credentials (user_id, smtp_host, smtp_port, smtp_user, smtp_password_encrypted, use_tls, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET
			smtp_host = EXCLUDED.smtp_host,
			smtp_port = EXCLUDED.smtp_port,
			smtp_user = EXCLUDED.smtp_user,
			smtp_password_encrypted = EXCLUDED.smtp_password_encrypted,
			use_tls = EXCLUDED.use_tls,
			is_active = TRUE,
			updated_at = now()
		RETURNING id, user_id, smtp_host, smtp_port, smtp_user, smtp_password_encrypted, use_tls, is_active, created_at
	`

	var saved domain.SMTPConfig
	err := r.db.QueryRow(ctx, query,
		cfg.UserID, cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.UseTLS,
	).Scan(&saved.ID, &saved.UserID, &saved.Host, &saved.Port, &saved.User, &saved.Password, &saved.UseTLS, &saved.IsActive, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert smtp credentials: %w", err)
	}
	return &saved, nil
}

func (r *smtpRepo) Get(ctx context.Context, userID string) (*domain.SMTPConfig, error) {
	query := `
		SELECT id, user_id, smtp_host, smtp_port, smtp_user, smtp_password_encrypted, use_tls, is_active, created_at
		FROM smtp_credentials
		WHERE user_id = $1 AND is_active = TRUE
	`

	var cfg domain.SMTPConfig
	err := r.db.QueryRow(ctx, query, userID).
		Scan(&cfg.ID, &cfg.UserID, &cfg.Host, &cfg.Port, &cfg.User, &cfg.Password, &cfg.UseTLS, &cfg.IsActive, &cfg.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get smtp credentials: %w", err)
	}
	return &cfg, nil
}

func (r *smtpRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM smtp_credentials WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete smtp credentials: %w", err)
	}
	return nil
}
