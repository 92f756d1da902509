package usecase

import (
	"context"
	"sync"
	"time"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/ai"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"
)

// chatSession is the in-memory revision transcript for one (user, email)
// pair. A session admits one in-flight turn; the epoch counter invalidates
// responses that arrive after the session was ended so a stale AI reply is
// never appended to a newer transcript.
type chatSession struct {
	history  []domain.ChatMessage
	inFlight bool
	epoch    uint64
}

type chatUsecase struct {
	emails   domain.EmailUsecase
	aiClient ai.Client
	activity domain.ActivityUsecase

	mu       sync.Mutex
	sessions map[string]*chatSession
}

func NewChatUsecase(emails domain.EmailUsecase, aiClient ai.Client, activity domain.ActivityUsecase) domain.ChatUsecase {
	return &chatUsecase{
		emails:   emails,
		aiClient: aiClient,
		activity: activity,
		sessions: make(map[string]*chatSession),
	}
}

func sessionKey(userID, emailID string) string {
	return userID + "|" + emailID
}

func (u *chatUsecase) History(userID, emailID string) []domain.ChatMessage {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[sessionKey(userID, emailID)]
	if !ok {
		return []domain.ChatMessage{}
	}
	out := make([]domain.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// begin marks the session busy and returns its current epoch. The second
// return is false when another turn is already running.
func (u *chatUsecase) begin(key string) (*chatSession, uint64, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s, ok := u.sessions[key]
	if !ok {
		s = &chatSession{}
		u.sessions[key] = s
	}
	if s.inFlight {
		return nil, 0, false
	}
	s.inFlight = true
	return s, s.epoch, true
}

// finish appends the turn unless the session moved on while the AI call was
// running. A stale response is dropped on the floor.
func (u *chatUsecase) finish(key string, s *chatSession, epoch uint64, turns ...domain.ChatMessage) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	s.inFlight = false
	if s.epoch != epoch {
		return false
	}
	s.history = append(s.history, turns...)
	return true
}

func (u *chatUsecase) SendMessage(ctx context.Context, userID, emailID, message string) (*domain.ChatMessageResponse, error) {
	if message == "" {
		return nil, apperror.BadRequest("Message is required")
	}

	item, err := u.emails.Get(ctx, userID, emailID)
	if err != nil {
		return nil, err
	}

	key := sessionKey(userID, emailID)
	s, epoch, ok := u.begin(key)
	if !ok {
		return nil, apperror.Conflict("A message is already being processed for this email")
	}

	history := u.History(userID, emailID)
	turns := make([]ai.ChatTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, ai.ChatTurn{Role: string(m.Role), Content: m.Content})
	}

	reply, err := u.aiClient.Chat(ctx, ai.ChatInput{
		Subject: item.Subject,
		Body:    item.Content,
		History: turns,
		Message: message,
	})
	if err != nil {
		u.finish(key, s, epoch)
		logger.Log.Error("chat turn failed", "user_id", userID, "email_id", emailID, "error", err)
		return nil, apperror.Unavailable("Chat is temporarily unavailable")
	}

	now := time.Now().UTC()
	if !u.finish(key, s, epoch,
		domain.ChatMessage{Role: domain.RoleUser, Content: message, Timestamp: now},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: reply, Timestamp: now},
	) {
		return nil, apperror.Conflict("Session ended while the message was being processed")
	}

	return &domain.ChatMessageResponse{Message: reply, EmailUpdated: false}, nil
}

// QuickAction rewrites the draft with a canned instruction and persists the
// result. A content-update failure after a successful rewrite is logged and
// reported, never silently dropped.
func (u *chatUsecase) QuickAction(ctx context.Context, userID, emailID string, action domain.QuickAction) (*domain.ChatMessageResponse, error) {
	if !action.IsValid() {
		return nil, apperror.BadRequest("Invalid quick action")
	}

	item, err := u.emails.Get(ctx, userID, emailID)
	if err != nil {
		return nil, err
	}

	key := sessionKey(userID, emailID)
	s, epoch, ok := u.begin(key)
	if !ok {
		return nil, apperror.Conflict("A message is already being processed for this email")
	}

	draft, err := u.aiClient.ReviseEmail(ctx, item.Subject, item.Content, action.Prompt())
	if err != nil {
		u.finish(key, s, epoch)
		logger.Log.Error("quick action failed", "user_id", userID, "email_id", emailID, "action", action, "error", err)
		return nil, apperror.Unavailable("Revision is temporarily unavailable")
	}

	update := &domain.EmailUpdateContentRequest{Content: &draft.Body}
	if draft.Subject != "" && draft.Subject != item.Subject {
		update.Subject = &draft.Subject
	}

	updated, err := u.emails.UpdateContent(ctx, userID, emailID, update)
	if err != nil {
		u.finish(key, s, epoch)
		return nil, err
	}

	now := time.Now().UTC()
	reply := "Applied: " + action.Prompt()
	if !u.finish(key, s, epoch,
		domain.ChatMessage{Role: domain.RoleUser, Content: action.Prompt(), Timestamp: now},
		domain.ChatMessage{Role: domain.RoleAssistant, Content: reply, Timestamp: now},
	) {
		return nil, apperror.Conflict("Session ended while the action was being processed")
	}

	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "email_revised",
		"Quick action applied: "+string(action), "email", emailID, nil)

	return &domain.ChatMessageResponse{Message: reply, EmailUpdated: true, Email: updated}, nil
}

// EndSession discards the transcript. Any in-flight turn becomes stale and
// its response will be dropped when it settles.
func (u *chatUsecase) EndSession(userID, emailID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	key := sessionKey(userID, emailID)
	if s, ok := u.sessions[key]; ok {
		s.epoch++
		s.history = nil
		if !s.inFlight {
			delete(u.sessions, key)
		}
	}
}
