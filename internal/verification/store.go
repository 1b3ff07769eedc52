package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "verification:token:" // verification:token:{token} -> Data, expires after tokenTTL
	tokenTTL       = time.Hour
)

var ErrTokenNotFound = errors.New("verification token not found or expired")

// Data is what a verification token resolves to: the email of the account
// being bound and the messenger chat id to bind it to.
type Data struct {
	Email  string `json:"email"`
	ChatID int64  `json:"chat_id"`
}

// Store is a consume-once expiring token store. Tokens live in redis under
// a TTL; consuming a token removes it atomically, so a second consume of
// the same token always fails.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Issue stores the data under a fresh token valid for one hour.
func (s *Store) Issue(ctx context.Context, data Data) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal verification data: %w", err)
	}

	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, tokenKeyPrefix+token, payload, tokenTTL).Result()
	if err != nil {
		return "", fmt.Errorf("store verification token: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("verification token collision")
	}
	return token, nil
}

// Consume atomically fetches and deletes the token. Expired or unknown
// tokens report ErrTokenNotFound.
func (s *Store) Consume(ctx context.Context, token string) (*Data, error) {
	raw, err := s.client.GetDel(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("consume verification token: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("unmarshal verification data: %w", err)
	}
	return &data, nil
}
