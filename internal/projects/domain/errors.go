package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("access to project is forbidden")
)

// InvalidMembersError carries the user ids that are unknown to the user
// directory so the caller can correct and resubmit.
type InvalidMembersError struct {
	IDs []int64
}

func (e *InvalidMembersError) Error() string {
	return fmt.Sprintf("invalid user ids: %v", e.IDs)
}

// InvalidStatusError carries the status string that did not match any
// member of the status set.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status %q doesn't exist", e.Value)
}
