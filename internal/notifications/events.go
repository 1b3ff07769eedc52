package notifications

// Kind tags the three outbound notification events.
type Kind string

const (
	KindMemberAdded      Kind = "MEMBER_ADDED"
	KindMemberRemoved    Kind = "MEMBER_REMOVED"
	KindDeadlineReminder Kind = "DEADLINE_REMINDER"
)

// Event is the ephemeral value handed to the composer. It is produced,
// composed and sent within one logical step and never persisted.
type Event struct {
	Kind        Kind
	ProjectID   int64
	ProjectName string
	UserID      int64
}

// Payload is the wire shape handed to the sink.
type Payload struct {
	Kind        Kind   `json:"kind"`
	ProjectID   int64  `json:"project_id"`
	ProjectName string `json:"project_name"`
	UserID      int64  `json:"user_id"`
	Message     string `json:"message"`
}
