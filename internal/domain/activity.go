package domain

import (
	"context"
	"time"
)

// ============================================================================
// Activity Logs
// ============================================================================

type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

type ActivityLog struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	Level             LogLevel       `json:"level"`
	Action            string         `json:"action"`
	Message           string         `json:"message"`
	Details           map[string]any `json:"details,omitempty"`
	RelatedEntityType string         `json:"related_entity_type,omitempty"`
	RelatedEntityID   string         `json:"related_entity_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

type LogsResponse struct {
	Logs  []ActivityLog `json:"logs"`
	Total int           `json:"total"`
}

type LogFilter struct {
	Level  LogLevel
	Action string
	Limit  int
}

// ============================================================================
// Repository Interface
// ============================================================================

type ActivityRepository interface {
	Insert(ctx context.Context, entry *ActivityLog) error
	List(ctx context.Context, userID string, filter LogFilter) ([]ActivityLog, error)
}

// ============================================================================
// Usecase Interface
// ============================================================================

// ActivityUsecase records and queries the per-user audit trail. Record never
// fails the caller; a failed insert is logged and dropped.
type ActivityUsecase interface {
	Record(ctx context.Context, userID string, level LogLevel, action, message string, details map[string]any)
	RecordEntity(ctx context.Context, userID string, level LogLevel, action, message, entityType, entityID string, details map[string]any)
	List(ctx context.Context, userID string, filter LogFilter) (*LogsResponse, error)
}
