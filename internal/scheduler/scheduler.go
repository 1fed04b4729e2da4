package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/retailsheet/internal/config"
	"github.com/mamadbah2/retailsheet/internal/domain/models"
	"github.com/mamadbah2/retailsheet/internal/repository/mongodb"
	"github.com/mamadbah2/retailsheet/internal/service/dataset"
	"github.com/mamadbah2/retailsheet/internal/service/session"
)

const (
	pruneSchedule  = "@every 15m"
	sessionMaxIdle = 2 * time.Hour
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	registry  *dataset.Registry
	snapshots mongodb.SnapshotRepository
	sessions  *session.Manager
	cfg       config.ReportingConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a new scheduler instance. Snapshots are only logged when
// snapshots is nil.
func NewScheduler(cfg config.ReportingConfig, registry *dataset.Registry, snapshots mongodb.SnapshotRepository, sessions *session.Manager, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		registry:  registry,
		snapshots: snapshots,
		sessions:  sessions,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule), zap.String("timezone", s.cfg.Timezone))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runSnapshots); err != nil {
		return fmt.Errorf("failed to schedule summary snapshots: %w", err)
	}
	if s.sessions != nil {
		if _, err := s.cron.AddFunc(pruneSchedule, s.pruneSessions); err != nil {
			return fmt.Errorf("failed to schedule session pruning: %w", err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runSnapshots() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.Snapshot(ctx); err != nil {
		s.logger.Error("summary snapshot failed", zap.Error(err))
	}
}

// Snapshot loads every kind, builds its summary and stores it. A failing kind does not
// stop the others; the first error is returned.
func (s *Scheduler) Snapshot(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, d := range s.registry.All() {
		coll, err := d.Load(ctx, nil)
		if err != nil {
			s.logger.Error("failed to load collection for snapshot", zap.String("kind", string(d.Kind())), zap.Error(err))
			keep(err)
			continue
		}

		snapshot := models.SummarySnapshot{
			Kind:      d.Kind(),
			Summary:   coll.Summary(),
			Records:   coll.Len(),
			CreatedAt: s.now().UTC(),
		}

		if s.snapshots == nil {
			s.logger.Info("summary snapshot", zap.String("kind", string(snapshot.Kind)), zap.Int("records", snapshot.Records), zap.Any("summary", snapshot.Summary))
			continue
		}
		if err := s.snapshots.SaveSummarySnapshot(ctx, snapshot); err != nil {
			s.logger.Error("failed to save summary snapshot", zap.String("kind", string(snapshot.Kind)), zap.Error(err))
			keep(err)
			continue
		}
		s.logger.Info("summary snapshot saved", zap.String("kind", string(snapshot.Kind)), zap.Int("records", snapshot.Records))
	}
	return firstErr
}

func (s *Scheduler) pruneSessions() {
	if n := s.sessions.Prune(sessionMaxIdle); n > 0 {
		s.logger.Info("idle sessions pruned", zap.Int("count", n))
	}
}
