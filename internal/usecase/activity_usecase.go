package usecase

import (
	"context"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/logger"
)

const defaultLogLimit = 100

type activityUsecase struct {
	repo domain.ActivityRepository
}

func NewActivityUsecase(repo domain.ActivityRepository) domain.ActivityUsecase {
	return &activityUsecase{repo: repo}
}

// Record writes an audit entry. Failures are logged and swallowed so the
// audit trail never breaks the action it describes.
func (u *activityUsecase) Record(ctx context.Context, userID string, level domain.LogLevel, action, message string, details map[string]any) {
	u.RecordEntity(ctx, userID, level, action, message, "", "", details)
}

func (u *activityUsecase) RecordEntity(ctx context.Context, userID string, level domain.LogLevel, action, message, entityType, entityID string, details map[string]any) {
	entry := &domain.ActivityLog{
		UserID:            userID,
		Level:             level,
		Action:            action,
		Message:           message,
		Details:           details,
		RelatedEntityType: entityType,
		RelatedEntityID:   entityID,
	}
	if err := u.repo.Insert(ctx, entry); err != nil {
		logger.Log.Warn("failed to record activity", "user_id", userID, "action", action, "error", err)
	}
}

func (u *activityUsecase) List(ctx context.Context, userID string, filter domain.LogFilter) (*domain.LogsResponse, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = defaultLogLimit
	}

	logs, err := u.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return &domain.LogsResponse{Logs: logs, Total: len(logs)}, nil
}
