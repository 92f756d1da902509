package postgres

import (
	"context"
	"fmt"
	"time"

	"go-outreach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type emailRepo struct {
	db *pgxpool.Pool
}

func NewEmailRepository(db *pgxpool.Pool) domain.EmailRepository {
	return &emailRepo{db: db}
}

const emailColumns = `id, user_id, recipient_email, COALESCE(recipient_name, ''), subject, content,
	COALESCE(company_name, ''), COALESCE(company_website, ''), COALESCE(company_location, ''),
	COALESCE(position_title, ''), keywords, COALESCE(job_type, ''), COALESCE(salary_range, ''),
	status, generated_at, reviewed_at, sent_at, created_at, updated_at`

func scanEmail(row pgx.Row) (*domain.EmailItem, error) {
	var e domain.EmailItem
	err := row.Scan(
		&e.ID, &e.UserID, &e.RecipientEmail, &e.RecipientName, &e.Subject, &e.Content,
		&e.CompanyName, &e.CompanyWebsite, &e.CompanyLocation,
		&e.PositionTitle, &e.Keywords, &e.JobType, &e.SalaryRange,
		&e.Status, &e.GeneratedAt, &e.ReviewedAt, &e.SentAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *emailRepo) Create(ctx context.Context, item *domain.EmailItem) error {
	query := `
		INSERT INTO ai_emails
			(id, user_id, recipient_email, recipient_name, subject, content, company_name, company_website,
			 company_location, position_title, keywords, job_type, salary_range, status, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(ctx, query,
		item.ID, item.UserID, item.RecipientEmail, item.RecipientName, item.Subject, item.Content,
		item.CompanyName, item.CompanyWebsite, item.CompanyLocation, item.PositionTitle,
		item.Keywords, item.JobType, item.SalaryRange, string(item.Status), item.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert email: %w", err)
	}
	return nil
}

// List scopes to one status partition when status is non-empty.
func (r *emailRepo) List(ctx context.Context, userID string, status domain.EmailStatus) ([]domain.EmailItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_emails WHERE user_id = $1`, emailColumns)
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails: %w", err)
	}
	defer rows.Close()

	results := []domain.EmailItem{}
	for rows.Next() {
		item, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan email row: %w", err)
		}
		results = append(results, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating email rows: %w", err)
	}
	return results, nil
}

func (r *emailRepo) Get(ctx context.Context, userID, emailID string) (*domain.EmailItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_emails WHERE id = $1 AND user_id = $2`, emailColumns)

	item, err := scanEmail(r.db.QueryRow(ctx, query, emailID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get email: %w", err)
	}
	return item, nil
}

func (r *emailRepo) UpdateStatus(ctx context.Context, userID, emailID string, status domain.EmailStatus, reviewedAt *time.Time) (*domain.EmailItem, error) {
	query := fmt.Sprintf(`
		UPDATE ai_emails
		SET status = $1, reviewed_at = COALESCE($2, reviewed_at), updated_at = now()
		WHERE id = $3 AND user_id = $4
		RETURNING %s
	`, emailColumns)

	item, err := scanEmail(r.db.QueryRow(ctx, query, string(status), reviewedAt, emailID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update email status: %w", err)
	}
	return item, nil
}

func (r *emailRepo) UpdateContent(ctx context.Context, userID, emailID string, req *domain.EmailUpdateContentRequest) (*domain.EmailItem, error) {
	query := fmt.Sprintf(`
		UPDATE ai_emails
		SET subject = COALESCE($1, subject),
			content = COALESCE($2, content),
			recipient_email = COALESCE($3, recipient_email),
			recipient_name = COALESCE($4, recipient_name),
			updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING %s
	`, emailColumns)

	item, err := scanEmail(r.db.QueryRow(ctx, query, req.Subject, req.Content, req.RecipientEmail, req.RecipientName, emailID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update email content: %w", err)
	}
	return item, nil
}

func (r *emailRepo) MarkSent(ctx context.Context, userID, emailID string, sentAt time.Time) (*domain.EmailItem, error) {
	query := fmt.Sprintf(`
		UPDATE ai_emails
		SET status = 'sent', sent_at = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING %s
	`, emailColumns)

	item, err := scanEmail(r.db.QueryRow(ctx, query, sentAt, emailID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark email sent: %w", err)
	}
	return item, nil
}

func (r *emailRepo) Delete(ctx context.Context, userID, emailID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ai_emails WHERE id = $1 AND user_id = $2`, emailID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("email not found: %s", emailID)
	}
	return nil
}
