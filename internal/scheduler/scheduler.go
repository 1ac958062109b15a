package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/saisie-livres/internal/domain/models"
)

// RecapExporter produces and exports the recap for a given day.
type RecapExporter interface {
	ExportDailyRecap(ctx context.Context, day time.Time) (models.DailyRecap, error)
}

// Scheduler runs the daily recap export.
type Scheduler struct {
	cron     *cron.Cron
	exporter RecapExporter
	spec     string
	now      func() time.Time
	logger   *zap.Logger
}

// NewScheduler creates a scheduler evaluating spec (5-field cron) in loc.
func NewScheduler(spec string, loc *time.Location, exporter RecapExporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		exporter: exporter,
		spec:     spec,
		now:      time.Now,
		logger:   logger,
	}
}

// Start registers the recap job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.exportDailyRecap); err != nil {
		return fmt.Errorf("schedule daily recap %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler", zap.String("recap_schedule", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running export to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) exportDailyRecap() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	recap, err := s.exporter.ExportDailyRecap(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to export daily recap", zap.Error(err))
		return
	}

	s.logger.Info("daily recap done", zap.String("date", recap.Date), zap.Int("total", recap.Total))
}
