package service

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Scheduler runs the background maintenance jobs: the expired-session sweep and
// the midnight reset of daily ranking points.
type Scheduler struct {
	sched gocron.Scheduler
}

func NewScheduler(postbacks *PostbackService, ranking *RankingService, sweepEvery time.Duration, dailyReset bool) (*Scheduler, error) {
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		return nil, err
	}
	if sweepEvery <= 0 {
		sweepEvery = time.Minute
	}

	_, err = sched.NewJob(
		gocron.DurationJob(sweepEvery),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := postbacks.CleanupExpiredSessions(ctx); err != nil {
				log.Error().Err(err).Msg("[Scheduler] session sweep failed")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	if dailyReset {
		_, err = sched.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				defer cancel()
				n, err := ranking.ResetDaily(ctx)
				if err != nil {
					log.Error().Err(err).Msg("[Scheduler] daily points reset failed")
					return
				}
				log.Info().Int64("users", n).Msg("[Scheduler] daily points reset")
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, err
		}
	}
	return &Scheduler{sched: sched}, nil
}

func (s *Scheduler) Start() { s.sched.Start() }

func (s *Scheduler) Shutdown() error { return s.sched.Shutdown() }

// Jobs returns how many jobs are registered.
func (s *Scheduler) Jobs() int { return len(s.sched.Jobs()) }
