package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go-outreach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

const resumeColumns = `id, user_id, file_name, file_path, COALESCE(extracted_text, ''), parsed_data, is_upload_completed, is_parse_completed, created_at, updated_at`

func scanResume(row pgx.Row) (*domain.ResumeRecord, error) {
	var r domain.ResumeRecord
	var parsed []byte
	err := row.Scan(&r.ID, &r.UserID, &r.FileName, &r.FilePath, &r.ExtractedText, &parsed, &r.IsUploadCompleted, &r.IsParseCompleted, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &r.ParsedData); err != nil {
			return nil, fmt.Errorf("failed to decode parsed_data: %w", err)
		}
	}
	return &r, nil
}

func (r *resumeRepo) Create(ctx context.Context, record *domain.ResumeRecord) error {
	query := `
		INSERT INTO resumes (id, user_id, file_name, file_path, extracted_text, is_upload_completed, is_parse_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		record.ID, record.UserID, record.FileName, record.FilePath,
		record.ExtractedText, record.IsUploadCompleted, record.IsParseCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert resume: %w", err)
	}
	return nil
}

func (r *resumeRepo) GetByID(ctx context.Context, userID, resumeID string) (*domain.ResumeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE id = $1 AND user_id = $2`, resumeColumns)

	record, err := scanResume(r.db.QueryRow(ctx, query, resumeID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return record, nil
}

// GetCurrent returns the most recently uploaded resume, or (nil, nil) when
// the user has none.
func (r *resumeRepo) GetCurrent(ctx context.Context, userID string) (*domain.ResumeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, resumeColumns)

	record, err := scanResume(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current resume: %w", err)
	}
	return record, nil
}

func (r *resumeRepo) List(ctx context.Context, userID string) ([]domain.ResumeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`, resumeColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	results := []domain.ResumeRecord{}
	for rows.Next() {
		record, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		results = append(results, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resume rows: %w", err)
	}
	return results, nil
}

func (r *resumeRepo) SaveParsedData(ctx context.Context, userID, resumeID string, data domain.ProfileData) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode parsed data: %w", err)
	}

	query := `
		UPDATE resumes
		SET parsed_data = $1, is_parse_completed = TRUE, updated_at = now()
		WHERE id = $2 AND user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, encoded, resumeID, userID)
	if err != nil {
		return fmt.Errorf("failed to save parsed data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume not found: %s", resumeID)
	}
	return nil
}
