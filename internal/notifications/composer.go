package notifications

import "fmt"

// Composer maps an event to its outbound payload. It is a pure function:
// identical events compose to identical payloads.
type Composer struct{}

func NewComposer() Composer {
	return Composer{}
}

func (Composer) Compose(e Event) Payload {
	var message string
	switch e.Kind {
	case KindMemberAdded:
		message = fmt.Sprintf("You have been added to project %q", e.ProjectName)
	case KindMemberRemoved:
		message = fmt.Sprintf("You have been removed from project %q", e.ProjectName)
	case KindDeadlineReminder:
		message = fmt.Sprintf("Project %q is due today", e.ProjectName)
	default:
		message = fmt.Sprintf("Update on project %q", e.ProjectName)
	}

	return Payload{
		Kind:        e.Kind,
		ProjectID:   e.ProjectID,
		ProjectName: e.ProjectName,
		UserID:      e.UserID,
		Message:     message,
	}
}
