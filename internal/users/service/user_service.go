package service

import (
	"context"
	"log"

	"github.com/TaskHive-441/go-task-backend/internal/users/domain"
	"github.com/TaskHive-441/go-task-backend/internal/users/repository"
	"github.com/TaskHive-441/go-task-backend/internal/verification"
)

// TokenStore is the consume-once verification collaborator.
type TokenStore interface {
	Issue(ctx context.Context, data verification.Data) (string, error)
	Consume(ctx context.Context, token string) (*verification.Data, error)
}

// UserService is the user directory plus profile and chat-binding
// operations.
type UserService struct {
	repo   *repository.Repo
	tokens TokenStore
}

func NewUserService(repo *repository.Repo, tokens TokenStore) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (s *UserService) EnsureUser(ctx context.Context, u repository.UpsertUser) (*domain.User, error) {
	return s.repo.EnsureUser(ctx, u)
}

func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, nickName, firstName, lastName string) (*domain.User, error) {
	u, err := s.repo.UpdateProfile(ctx, userID, nickName, firstName, lastName)
	if err != nil {
		return nil, err
	}
	log.Printf("User profile updated for userId: %d", userID)
	return u, nil
}

// AllIDs exposes the full valid-id set for membership validation.
func (s *UserService) AllIDs(ctx context.Context) (map[int64]struct{}, error) {
	return s.repo.AllIDs(ctx)
}

// FindByIDs bulk-loads directory entries, used to expand member sets in
// responses.
func (s *UserService) FindByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	return s.repo.FindByIDs(ctx, ids)
}

// IssueChatToken starts a chat binding: the returned token is handed to
// the user out of band and is valid for one consumption within the TTL.
func (s *UserService) IssueChatToken(ctx context.Context, email string, chatID int64) (string, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		return "", err
	}
	return s.tokens.Issue(ctx, verification.Data{Email: email, ChatID: chatID})
}

// ConfirmChatToken consumes the token and binds the chat id to the user it
// was issued for.
func (s *UserService) ConfirmChatToken(ctx context.Context, token string) error {
	data, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByEmail(ctx, data.Email)
	if err != nil {
		return err
	}
	if err := s.repo.SetChatID(ctx, user.ID, data.ChatID); err != nil {
		return err
	}
	log.Printf("Chat %d bound to user %d", data.ChatID, user.ID)
	return nil
}
