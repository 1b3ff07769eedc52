package sweeper

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule fires at 09:00 and 17:00 every day (seconds field first).
const DefaultSchedule = "0 0 9,17 * * *"

// Scheduler drives Sweeper.Run on a fixed wall-clock schedule.
type Scheduler struct {
	c       *cron.Cron
	sweeper *Sweeper
}

func NewScheduler(schedule string, sweeper *Sweeper) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(schedule, func() {
		sweeper.Run(context.Background())
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{c: c, sweeper: sweeper}, nil
}

func (s *Scheduler) Start() {
	log.Println("Deadline sweep scheduler started")
	s.c.Start()
}

// Stop halts scheduling; a tick already in flight finishes on its own.
func (s *Scheduler) Stop() {
	s.c.Stop()
	log.Println("Deadline sweep scheduler stopped")
}
