package usecase

import (
	"context"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type contextUsecase struct {
	repo     domain.ContextRepository
	activity domain.ActivityUsecase
	validate *validator.Validate
}

func NewContextUsecase(repo domain.ContextRepository, activity domain.ActivityUsecase, validate *validator.Validate) domain.ContextUsecase {
	return &contextUsecase{
		repo:     repo,
		activity: activity,
		validate: validate,
	}
}

func (u *contextUsecase) Save(ctx context.Context, userID string, req *domain.ContextBuildRequest) (*domain.ContextProfile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	tone := req.PitchTone
	if tone == "" {
		tone = domain.ToneProfessional
	}
	if !tone.IsValid() {
		return nil, apperror.BadRequest("Invalid pitch tone")
	}

	profile := &domain.ContextProfile{
		UserID:              userID,
		Purpose:             req.Purpose,
		TargetRoles:         dedupe(req.TargetRoles),
		PreferredIndustries: dedupe(req.PreferredIndustries),
		PitchTone:           tone,
		Keywords:            dedupe(req.Keywords),
		CustomMessage:       req.CustomMessage,
		Geography:           dedupe(req.Geography),
		ResumeExtractedText: req.ResumeExtractedText,
		ResumeParsedData:    req.ResumeParsedData,
	}

	saved, err := u.repo.Upsert(ctx, profile)
	if err != nil {
		return nil, err
	}

	u.activity.Record(ctx, userID, domain.LevelInfo, "context_saved",
		"Context profile saved", map[string]any{"purpose": req.Purpose})

	return saved, nil
}

func (u *contextUsecase) Get(ctx context.Context, userID string) (*domain.ContextProfile, error) {
	profile, err := u.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Context profile not found")
	}
	return profile, nil
}

func (u *contextUsecase) Delete(ctx context.Context, userID string) error {
	if err := u.repo.Delete(ctx, userID); err != nil {
		return err
	}
	u.activity.Record(ctx, userID, domain.LevelInfo, "context_deleted", "Context profile deleted", nil)
	return nil
}

func (u *contextUsecase) PredefinedTags() *domain.PredefinedTagsResponse {
	return &domain.PredefinedTagsResponse{
		Purposes:   domain.PurposeOptions,
		Roles:      domain.CommonTechRoles,
		Industries: domain.CommonTechIndustries,
		Keywords:   domain.CommonTechKeywords,
		Locations:  domain.CommonLocations,
	}
}

// dedupe drops blank and repeated entries while keeping first-seen order.
func dedupe(values []string) []string {
	set := domain.NewTagSet(values...)
	return set.Values()
}
