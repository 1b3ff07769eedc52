package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/TaskHive-441/go-task-backend/internal/notifications"
	"github.com/TaskHive-441/go-task-backend/internal/projects/domain"
)

// DueProjectFinder is the slice of the project store the sweeper needs.
type DueProjectFinder interface {
	FindDueTodayNotCompleted(ctx context.Context, day time.Time) ([]domain.Project, error)
}

// Sweeper finds projects due today and fans out one deadline reminder per
// current member. It keeps no state across ticks: a project still due at
// the next tick produces reminders again.
type Sweeper struct {
	store    DueProjectFinder
	composer notifications.Composer
	sink     notifications.Sink
	now      func() time.Time
}

func New(store DueProjectFinder, sink notifications.Sink) *Sweeper {
	return &Sweeper{
		store:    store,
		composer: notifications.NewComposer(),
		sink:     sink,
		now:      time.Now,
	}
}

// Run executes one tick. A query failure aborts this tick only; the next
// scheduled tick runs independently.
func (s *Sweeper) Run(ctx context.Context) {
	today := s.now()

	projects, err := s.store.FindDueTodayNotCompleted(ctx, today)
	if err != nil {
		log.Printf("Deadline sweep aborted: %v", err)
		return
	}

	sent := 0
	for _, project := range projects {
		for _, userID := range project.MemberIDs {
			payload := s.composer.Compose(notifications.Event{
				Kind:        notifications.KindDeadlineReminder,
				ProjectID:   project.ID,
				ProjectName: project.Name,
				UserID:      userID,
			})
			if err := s.sink.Send(ctx, payload); err != nil {
				log.Printf("Failed to send deadline reminder to user %d for project %d: %v",
					userID, project.ID, err)
				continue
			}
			sent++
		}
	}

	if len(projects) > 0 {
		log.Printf("Deadline sweep: %d project(s) due, %d reminder(s) sent", len(projects), sent)
	}
}
