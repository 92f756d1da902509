package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"go-outreach-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextRepo struct {
	db *pgxpool.Pool
}

func NewContextRepository(db *pgxpool.Pool) domain.ContextRepository {
	return &contextRepo{db: db}
}

const contextColumns = `id, user_id, COALESCE(purpose, ''), target_roles, preferred_industries, pitch_tone, keywords, COALESCE(custom_message, ''), geography, COALESCE(resume_extracted_text, ''), resume_parsed_data, created_at, updated_at`

func scanContext(row pgx.Row) (*domain.ContextProfile, error) {
	var p domain.ContextProfile
	var parsed []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Purpose, &p.TargetRoles, &p.PreferredIndustries,
		&p.PitchTone, &p.Keywords, &p.CustomMessage, &p.Geography,
		&p.ResumeExtractedText, &parsed, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &p.ResumeParsedData); err != nil {
			return nil, fmt.Errorf("failed to decode resume_parsed_data: %w", err)
		}
	}
	return &p, nil
}

// Upsert keeps one profile per user. The conflict target is user_id so a
// second save overwrites instead of duplicating.
func (r *contextRepo) Upsert(ctx context.Context, profile *domain.ContextProfile) (*domain.ContextProfile, error) {
	var parsed []byte
	if profile.ResumeParsedData != nil {
		var err error
		parsed, err = json.Marshal(profile.ResumeParsedData)
		if err != nil {
			return nil, fmt.Errorf("failed to encode resume_parsed_data: %w", err)
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO context_profiles
			(user_id, purpose, target_roles, preferred_industries, pitch_tone, keywords, custom_message, geography, resume_extracted_text, resume_parsed_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
		ON CONFLICT (user_id) DO UPDATE SET
			purpose = EXCLUDED.purpose,
			target_roles = EXCLUDED.target_roles,
			preferred_industries = EXCLUDED.preferred_industries,
			pitch_tone = EXCLUDED.pitch_tone,
			keywords = EXCLUDED.keywords,
			custom_message = EXCLUDED.custom_message,
			geography = EXCLUDED.geography,
			resume_extracted_text = COALESCE(NULLIF(EXCLUDED.resume_extracted_text, ''), context_profiles.resume_extracted_text),
			resume_parsed_data = COALESCE(EXCLUDED.resume_parsed_data, context_profiles.resume_parsed_data),
			updated_at = now()
		RETURNING %s
	`, contextColumns)

	saved, err := scanContext(r.db.QueryRow(ctx, query,
		profile.UserID, profile.Purpose, profile.TargetRoles, profile.PreferredIndustries,
		string(profile.PitchTone), profile.Keywords, profile.CustomMessage, profile.Geography,
		profile.ResumeExtractedText, parsed,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert context profile: %w", err)
	}
	return saved, nil
}

func (r *contextRepo) Get(ctx context.Context, userID string) (*domain.ContextProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM context_profiles WHERE user_id = $1`, contextColumns)

	profile, err := scanContext(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get context profile: %w", err)
	}
	return profile, nil
}

func (r *contextRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM context_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete context profile: %w", err)
	}
	return nil
}

// UpdateResumeData mirrors parse results into the profile, creating a minimal
// row when the user has not built a context yet.
func (r *contextRepo) UpdateResumeData(ctx context.Context, userID, extractedText string, parsed domain.ProfileData) error {
	var encoded []byte
	if parsed != nil {
		var err error
		encoded, err = json.Marshal(parsed)
		if err != nil {
			return fmt.Errorf("failed to encode resume_parsed_data: %w", err)
		}
	}

	query := `
		INSERT INTO context_profiles (user_id, resume_extracted_text, resume_parsed_data)
		VALUES ($1, NULLIF($2, ''), $3)
		ON CONFLICT (user_id) DO UPDATE SET
			resume_extracted_text = COALESCE(NULLIF(EXCLUDED.resume_extracted_text, ''), context_profiles.resume_extracted_text),
			resume_parsed_data = COALESCE(EXCLUDED.resume_parsed_data, context_profiles.resume_parsed_data),
			updated_at = now()
	`
	if _, err := r.db.Exec(ctx, query, userID, extractedText, encoded); err != nil {
		return fmt.Errorf("failed to update resume data in context: %w", err)
	}
	return nil
}
