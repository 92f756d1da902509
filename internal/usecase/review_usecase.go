package usecase

import (
	"context"
	"sync"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"
)

// reviewSession is the per-user triage state: one status partition, its
// ordered items and the current selection. Selection is sticky across
// reloads as long as the selected item is still in the partition.
type reviewSession struct {
	mu       sync.Mutex
	filter   domain.EmailStatus
	items    []domain.EmailItem
	selected string
}

type reviewUsecase struct {
	emails domain.EmailUsecase
	chat   domain.ChatUsecase

	mu       sync.Mutex
	sessions map[string]*reviewSession
}

func NewReviewUsecase(emails domain.EmailUsecase, chat domain.ChatUsecase) domain.ReviewUsecase {
	return &reviewUsecase{
		emails:   emails,
		chat:     chat,
		sessions: make(map[string]*reviewSession),
	}
}

func (u *reviewUsecase) session(userID string) *reviewSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[userID]
	if !ok {
		s = &reviewSession{}
		u.sessions[userID] = s
	}
	return s
}

func (s *reviewSession) view() *domain.ReviewSessionView {
	items := make([]domain.EmailItem, len(s.items))
	copy(items, s.items)
	return &domain.ReviewSessionView{
		Filter:     s.filter,
		Items:      items,
		SelectedID: s.selected,
	}
}

func (s *reviewSession) indexOf(emailID string) int {
	for i := range s.items {
		if s.items[i].ID == emailID {
			return i
		}
	}
	return -1
}

// setSelected swaps the selection and discards the revision chat of the
// email being deselected.
func (u *reviewUsecase) setSelected(userID string, s *reviewSession, emailID string) {
	if s.selected == emailID {
		return
	}
	if s.selected != "" {
		u.chat.EndSession(userID, s.selected)
	}
	s.selected = emailID
}

// removeAt drops an item from the partition. When the removed item was
// selected, selection falls to the item now occupying its slot, to the new
// last item when the removed one was last, or to nothing on an empty list.
func (u *reviewUsecase) removeAt(userID string, s *reviewSession, idx int) {
	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)

	if s.selected != removed.ID {
		return
	}
	next := ""
	if len(s.items) > 0 {
		if idx >= len(s.items) {
			idx = len(s.items) - 1
		}
		next = s.items[idx].ID
	}
	u.setSelected(userID, s, next)
}

// Load replaces the partition with a fresh listing. Auto-selection picks the
// first item only when the current selection is empty or no longer present;
// it never overrides a still-valid explicit selection.
func (u *reviewUsecase) Load(ctx context.Context, userID string, filter domain.EmailStatus) (*domain.ReviewSessionView, error) {
	items, err := u.emails.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = filter
	s.items = items

	if s.selected != "" && s.indexOf(s.selected) < 0 {
		u.setSelected(userID, s, "")
	}
	if s.selected == "" && len(s.items) > 0 {
		s.selected = s.items[0].ID
	}
	return s.view(), nil
}

func (u *reviewUsecase) Select(ctx context.Context, userID, emailID string) (*domain.ReviewSessionView, error) {
	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(emailID) < 0 {
		return nil, apperror.NotFound("Email is not in the current list")
	}
	u.setSelected(userID, s, emailID)
	return s.view(), nil
}

// ChangeStatus persists the transition first. A status that leaves the
// active filter removes the item from the partition; a status equal to the
// filter keeps the item in place with its fields refreshed.
func (u *reviewUsecase) ChangeStatus(ctx context.Context, userID, emailID string, status domain.EmailStatus) (*domain.ReviewSessionView, error) {
	updated, err := u.emails.UpdateStatus(ctx, userID, emailID, status)
	if err != nil {
		return nil, err
	}

	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(emailID)
	if idx < 0 {
		return s.view(), nil
	}
	if status == s.filter {
		s.items[idx] = *updated
	} else {
		u.removeAt(userID, s, idx)
	}
	return s.view(), nil
}

// UpdateContent is confirm-then-apply: the cached copy mutates only after
// the store acknowledges. A failed update leaves the session untouched; the
// failure is logged, not surfaced to the caller.
func (u *reviewUsecase) UpdateContent(ctx context.Context, userID string, req *domain.ReviewContentRequest) (*domain.ReviewSessionView, error) {
	patch := &domain.EmailUpdateContentRequest{
		Subject:        req.Subject,
		Content:        req.Content,
		RecipientEmail: req.RecipientEmail,
	}

	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := u.emails.UpdateContent(ctx, userID, req.EmailID, patch)
	if err != nil {
		logger.Log.Warn("content update failed, keeping cached copy",
			"user_id", userID, "email_id", req.EmailID, "error", err)
		return s.view(), nil
	}

	if idx := s.indexOf(req.EmailID); idx >= 0 {
		s.items[idx] = *updated
	}
	return s.view(), nil
}

func (u *reviewUsecase) Delete(ctx context.Context, userID, emailID string) (*domain.ReviewSessionView, error) {
	if err := u.emails.Delete(ctx, userID, emailID); err != nil {
		return nil, err
	}
	u.chat.EndSession(userID, emailID)

	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(emailID); idx >= 0 {
		u.removeAt(userID, s, idx)
	}
	return s.view(), nil
}

func (u *reviewUsecase) End(userID string) {
	u.mu.Lock()
	s, ok := u.sessions[userID]
	delete(u.sessions, userID)
	u.mu.Unlock()

	if ok && s.selected != "" {
		u.chat.EndSession(userID, s.selected)
	}
}
