package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// User is the directory entry behind membership and notification
// addressing. ChatID is the messenger binding set through verification.
type User struct {
	ID        int64     `json:"id"`
	AuthUID   string    `json:"-"`
	Email     string    `json:"email"`
	NickName  string    `json:"nick_name"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	ChatID    *int64    `json:"chat_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
