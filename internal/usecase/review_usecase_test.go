package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

// stubEmails is an in-memory EmailUsecase backing the review session tests.
type stubEmails struct {
	items       []domain.EmailItem
	failContent bool
	failStatus  bool
}

func (s *stubEmails) find(emailID string) *domain.EmailItem {
	for i := range s.items {
		if s.items[i].ID == emailID {
			return &s.items[i]
		}
	}
	return nil
}

func (s *stubEmails) Generate(ctx context.Context, userID string, req *domain.EmailGenerateRequest) (*domain.EmailItem, error) {
	return nil, errors.New("not implemented")
}

func (s *stubEmails) List(ctx context.Context, userID string, status domain.EmailStatus) ([]domain.EmailItem, error) {
	var out []domain.EmailItem
	for _, it := range s.items {
		if status == "" || it.Status == status {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *stubEmails) Get(ctx context.Context, userID, emailID string) (*domain.EmailItem, error) {
	if it := s.find(emailID); it != nil {
		cp := *it
		return &cp, nil
	}
	return nil, errors.New("not found")
}

func (s *stubEmails) UpdateStatus(ctx context.Context, userID, emailID string, status domain.EmailStatus) (*domain.EmailItem, error) {
	if s.failStatus {
		return nil, errors.New("store unavailable")
	}
	it := s.find(emailID)
	if it == nil {
		return nil, errors.New("not found")
	}
	it.Status = status
	cp := *it
	return &cp, nil
}

func (s *stubEmails) UpdateContent(ctx context.Context, userID, emailID string, req *domain.EmailUpdateContentRequest) (*domain.EmailItem, error) {
	if s.failContent {
		return nil, errors.New("store unavailable")
	}
	it := s.find(emailID)
	if it == nil {
		return nil, errors.New("not found")
	}
	if req.Subject != nil {
		it.Subject = *req.Subject
	}
	if req.Content != nil {
		it.Content = *req.Content
	}
	cp := *it
	return &cp, nil
}

func (s *stubEmails) Delete(ctx context.Context, userID, emailID string) error {
	for i := range s.items {
		if s.items[i].ID == emailID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (s *stubEmails) SendApproved(ctx context.Context, userID, emailID string) (*domain.EmailItem, error) {
	return nil, errors.New("not implemented")
}

// recordingChat tracks which sessions were discarded.
type recordingChat struct {
	ended []string
}

func (r *recordingChat) History(userID, emailID string) []domain.ChatMessage { return nil }
func (r *recordingChat) SendMessage(ctx context.Context, userID, emailID, message string) (*domain.ChatMessageResponse, error) {
	return nil, errors.New("not implemented")
}
func (r *recordingChat) QuickAction(ctx context.Context, userID, emailID string, action domain.QuickAction) (*domain.ChatMessageResponse, error) {
	return nil, errors.New("not implemented")
}
func (r *recordingChat) EndSession(userID, emailID string) {
	r.ended = append(r.ended, emailID)
}

func newTriageFixture(statuses ...domain.EmailStatus) (*stubEmails, *recordingChat, domain.ReviewUsecase) {
	emails := &stubEmails{}
	for i, st := range statuses {
		emails.items = append(emails.items, domain.EmailItem{
			ID:     string(rune('a' + i)),
			UserID: "user-1",
			Status: st,
		})
	}
	chat := &recordingChat{}
	return emails, chat, usecase.NewReviewUsecase(emails, chat)
}

func TestReviewSelection(t *testing.T) {
	ctx := context.Background()

	t.Run("Should auto-select the first item on load", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew, domain.StatusNew)

		view, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		assert.Len(t, view.Items, 2)
		assert.Equal(t, "a", view.SelectedID)
	})

	t.Run("Should keep an explicit selection across reloads", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew, domain.StatusNew, domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		_, err = uc.Select(ctx, "user-1", "b")
		assert.NoError(t, err)

		view, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		assert.Equal(t, "b", view.SelectedID)
	})

	t.Run("Should reject selecting an item outside the partition", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		_, err = uc.Select(ctx, "user-1", "zz")
		assert.Error(t, err)
	})

	t.Run("Should discard the previous chat when selection switches", func(t *testing.T) {
		_, chat, uc := newTriageFixture(domain.StatusNew, domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		_, err = uc.Select(ctx, "user-1", "b")
		assert.NoError(t, err)
		assert.Contains(t, chat.ended, "a")
	})

	t.Run("Should select the next remaining item after deleting the selected one", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew, domain.StatusNew, domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		_, err = uc.Select(ctx, "user-1", "b")
		assert.NoError(t, err)

		view, err := uc.Delete(ctx, "user-1", "b")
		assert.NoError(t, err)
		assert.Len(t, view.Items, 2)
		assert.Equal(t, "c", view.SelectedID)
	})

	t.Run("Should clear selection when the last item is deleted", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)

		view, err := uc.Delete(ctx, "user-1", "a")
		assert.NoError(t, err)
		assert.Empty(t, view.Items)
		assert.Empty(t, view.SelectedID)
	})
}

func TestReviewStatusPartition(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove an item moved off the active filter", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew, domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)

		view, err := uc.ChangeStatus(ctx, "user-1", "a", domain.StatusApproved)
		assert.NoError(t, err)
		assert.Len(t, view.Items, 1)
		assert.Equal(t, "b", view.SelectedID)
	})

	t.Run("Should keep an item whose new status matches the filter", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew, domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)

		view, err := uc.ChangeStatus(ctx, "user-1", "a", domain.StatusNew)
		assert.NoError(t, err)
		assert.Len(t, view.Items, 2)
		assert.Equal(t, "a", view.SelectedID)
	})

	t.Run("Should leave the session untouched when the store rejects the transition", func(t *testing.T) {
		emails, _, uc := newTriageFixture(domain.StatusNew, domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)

		emails.failStatus = true
		_, err = uc.ChangeStatus(ctx, "user-1", "a", domain.StatusApproved)
		assert.Error(t, err)

		emails.failStatus = false
		view, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)
		assert.Len(t, view.Items, 2)
	})
}

func TestReviewContentConfirmThenApply(t *testing.T) {
	ctx := context.Background()
	subject := "Updated subject"

	t.Run("Should apply the patch after the store acknowledges", func(t *testing.T) {
		_, _, uc := newTriageFixture(domain.StatusNew)

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)

		view, err := uc.UpdateContent(ctx, "user-1", &domain.ReviewContentRequest{
			EmailID: "a",
			Subject: &subject,
		})
		assert.NoError(t, err)
		assert.Equal(t, subject, view.Items[0].Subject)
	})

	t.Run("Should keep the cached copy when the store rejects the patch", func(t *testing.T) {
		emails, _, uc := newTriageFixture(domain.StatusNew)
		emails.items[0].Subject = "Original"
		emails.failContent = true

		_, err := uc.Load(ctx, "user-1", domain.StatusNew)
		assert.NoError(t, err)

		view, err := uc.UpdateContent(ctx, "user-1", &domain.ReviewContentRequest{
			EmailID: "a",
			Subject: &subject,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Original", view.Items[0].Subject)
	})
}
