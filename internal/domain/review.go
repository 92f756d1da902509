package domain

import "context"

// ============================================================================
// Review Session
// ============================================================================

// ReviewSessionView is the snapshot handed to the triage UI. The item list is
// always a single status partition; SelectedID is empty only when the list is
// empty.
type ReviewSessionView struct {
	Filter     EmailStatus `json:"filter"`
	Items      []EmailItem `json:"items"`
	SelectedID string      `json:"selected_id"`
}

type ReviewSelectRequest struct {
	EmailID string `json:"email_id" binding:"required"`
}

type ReviewStatusRequest struct {
	EmailID string      `json:"email_id" binding:"required"`
	Status  EmailStatus `json:"status" binding:"required"`
}

type ReviewContentRequest struct {
	EmailID        string  `json:"email_id" binding:"required"`
	Subject        *string `json:"subject,omitempty"`
	Content        *string `json:"content,omitempty"`
	RecipientEmail *string `json:"recipient_email,omitempty"`
}

// ============================================================================
// Usecase Interface
// ============================================================================

// ReviewUsecase keeps one in-memory triage session per user over the
// persisted email collection. Mutations are confirm-then-apply: the backing
// store acknowledges first, then the cached list changes. Moving an item off
// the active filter removes it from the list; when the removed item was
// selected, selection falls back to the next remaining item. Switching the
// selection discards that email's revision chat.
type ReviewUsecase interface {
	Load(ctx context.Context, userID string, filter EmailStatus) (*ReviewSessionView, error)
	Select(ctx context.Context, userID, emailID string) (*ReviewSessionView, error)
	ChangeStatus(ctx context.Context, userID, emailID string, status EmailStatus) (*ReviewSessionView, error)
	UpdateContent(ctx context.Context, userID string, req *ReviewContentRequest) (*ReviewSessionView, error)
	Delete(ctx context.Context, userID, emailID string) (*ReviewSessionView, error)
	End(userID string)
}
