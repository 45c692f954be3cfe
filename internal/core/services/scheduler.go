package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/regtrack/internal/core/domain"
	"github.com/custodia-labs/regtrack/internal/core/ports/driven"
	"github.com/custodia-labs/regtrack/internal/core/ports/driving"
	"github.com/custodia-labs/regtrack/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

const (
	// runRetention is the number of scheduled runs kept in the store.
	runRetention = 100

	// statusRuns is the number of runs reported by Status.
	statusRuns = 10

	defaultCheckInterval = time.Minute
)

// Scheduler ingests the whole catalog every configured interval.
// The schedule lives in the ScheduleStore so a restart does not trigger an
// early run.
type Scheduler struct {
	config     domain.SchedulerConfig
	store      driven.ScheduleStore
	ingest     driving.IngestService
	now        func() time.Time
	checkEvery time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// busy is set while an ingest is in flight so a slow run is not started twice.
	busy atomic.Bool
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.ScheduleStore,
	ingest driving.IngestService,
) *Scheduler {
	return &Scheduler{
		config:     config,
		store:      store,
		ingest:     ingest,
		now:        time.Now,
		checkEvery: defaultCheckInterval,
	}
}

// Start checks the schedule immediately and then once per check interval.
// It blocks until Stop is called or ctx ends.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return fmt.Errorf("%w: scheduler is disabled", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	if _, err := s.prepare(ctx); err != nil {
		logger.Error("scheduler: failed to prepare schedule: %v", err)
	}

	s.tick(ctx)

	ticker := time.NewTicker(s.checkEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = s.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Stop ends the loop and waits for an in-flight ingest to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// Status returns the saved schedule and the most recent runs.
func (s *Scheduler) Status(ctx context.Context) (*domain.SchedulerStatus, error) {
	schedule, err := s.store.LoadSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	runs, err := s.store.RecentRuns(ctx, statusRuns)
	if err != nil {
		return nil, fmt.Errorf("loading scheduled runs: %w", err)
	}
	return &domain.SchedulerStatus{Schedule: schedule, Recent: runs}, nil
}

// prepare loads the saved schedule, creating it or applying the configured
// interval, and saves the result.
func (s *Scheduler) prepare(ctx context.Context) (*domain.IngestSchedule, error) {
	schedule, err := s.store.LoadSchedule(ctx)
	if err != nil {
		return nil, err
	}

	if schedule == nil {
		schedule = domain.NewIngestSchedule(s.config.Interval, s.now())
	} else {
		schedule.SetInterval(s.config.Interval)
		schedule.Enabled = true
	}

	if err := s.store.SaveSchedule(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// tick starts an ingest in the background when the schedule is due.
func (s *Scheduler) tick(ctx context.Context) {
	if s.busy.Load() {
		logger.Debug("scheduler: ingest still running, skipping check")
		return
	}

	schedule, err := s.store.LoadSchedule(ctx)
	if err != nil {
		logger.Error("scheduler: failed to load schedule: %v", err)
		return
	}
	if schedule == nil {
		if schedule, err = s.prepare(ctx); err != nil {
			logger.Error("scheduler: failed to prepare schedule: %v", err)
			return
		}
	}

	if !schedule.Due(s.now()) {
		return
	}
	if !s.busy.CompareAndSwap(false, true) {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.busy.Store(false)
		s.execute(ctx, schedule)
	}()
}

// execute ingests today's UTC date and records the outcome.
func (s *Scheduler) execute(ctx context.Context, schedule *domain.IngestSchedule) {
	started := s.now()
	date := domain.TruncateDate(started.UTC())

	run, err := s.ingestAll(ctx, date)
	record := domain.NewScheduledRun(date, started, s.now(), run, err)

	switch {
	case err != nil:
		logger.Error("scheduler: ingest for %s failed: %v", domain.FormatDate(date), err)
	case record.Failed > 0:
		logger.Warn("scheduler: run %s finished with %d failed agencies", record.RunID, record.Failed)
	default:
		logger.Info("scheduler: run %s ingested %d agencies in %s",
			record.RunID, record.Processed, record.Duration().Round(time.Second))
	}

	schedule.Complete(record)

	// Persist even when ctx was cancelled mid-run, so the next start sees this run.
	persistCtx := context.WithoutCancel(ctx)
	if err := s.store.SaveSchedule(persistCtx, schedule); err != nil {
		logger.Error("scheduler: failed to save schedule: %v", err)
	}
	if err := s.store.AppendRun(persistCtx, &record); err != nil {
		logger.Error("scheduler: failed to record run: %v", err)
	}
	if err := s.store.PruneRuns(persistCtx, runRetention); err != nil {
		logger.Warn("scheduler: failed to prune runs: %v", err)
	}
}

// ingestAll calls IngestAll, turning a panic into an error so the loop survives.
func (s *Scheduler) ingestAll(ctx context.Context, date time.Time) (run *domain.IngestRun, err error) {
	if s.ingest == nil {
		return nil, nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("ingest panicked: %v", p)
		}
	}()
	return s.ingest.IngestAll(ctx, date)
}
