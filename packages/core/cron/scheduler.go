package cron

import (
	"core/services"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the periodic housekeeping jobs, currently just the hourly
// sweep that expires unanswered challenges.
type Scheduler struct {
	cron             *cron.Cron
	challengeService *services.ChallengeService
	logger           zerolog.Logger
}

func NewScheduler(challengeService *services.ChallengeService, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		challengeService: challengeService,
		logger:           logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	// At minute 0 of every hour. Responses between runs are covered by the
	// lazy expiry check in the challenge service.
	if _, err := s.cron.AddFunc("0 * * * *", s.runExpirySweep); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().Msg("scheduler started")

	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("scheduler stopped")
}

func (s *Scheduler) runExpirySweep() {
	swept, err := s.challengeService.SweepExpired()
	if err != nil {
		s.logger.Error().Err(err).Msg("expiry sweep failed")
		return
	}

	if swept > 0 {
		s.logger.Info().Int64("count", swept).Msg("expiry sweep completed")
	}
}

// RunNow triggers the expiry sweep outside the schedule.
func (s *Scheduler) RunNow() {
	s.runExpirySweep()
}
