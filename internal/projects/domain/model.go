package domain

import "time"

// Project is the core membership unit. It is storage-agnostic and shared
// across repository, service and HTTP layers.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      Status    `json:"status"`
	MemberIDs   []int64   `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the given user id is part of the member set.
func (p *Project) HasMember(userID int64) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Status is the closed set of project states. Transitions are not ordered:
// any valid status may follow any other.
type Status string

const (
	StatusInitiated  Status = "INITIATED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus matches the literal spelling of a status constant.
// Matching is exact and case-sensitive.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusInitiated, StatusInProgress, StatusCompleted:
		return Status(s), true
	}
	return "", false
}
