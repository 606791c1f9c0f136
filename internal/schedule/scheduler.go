package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"agentbot/internal/logging"
	"agentbot/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// Job is a named unit of work run on a trigger.
type Job struct {
	Name       string
	Trigger    Trigger
	Run        func(ctx context.Context) error
	RunOnStart bool
}

// Scheduler fires jobs on their triggers. Each firing runs in its own
// goroutine, so a slow run may overlap the next one; jobs guard their own
// shared state.
type Scheduler struct {
	jobs  []Job
	nowFn func() time.Time
	// Grace bounds how long in-flight runs may continue after shutdown
	// before their context is cancelled.
	Grace time.Duration

	wg sync.WaitGroup
}

func New(jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, nowFn: time.Now, Grace: 30 * time.Second}
}

// Run blocks until ctx is done, then waits for in-flight runs. Job failures
// are logged and never stop the scheduler.
func (s *Scheduler) Run(ctx context.Context) error {
	runCtx, cancelRuns := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelRuns()

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range s.jobs {
		g.Go(func() error {
			s.loop(gctx, runCtx, j)
			return nil
		})
	}
	_ = g.Wait()
	logging.Info("scheduler_stopping", map[string]any{"grace": s.Grace.String()})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	grace := time.NewTimer(s.Grace)
	defer grace.Stop()
	select {
	case <-done:
	case <-grace.C:
		cancelRuns()
		<-done
	}
	return ctx.Err()
}

func (s *Scheduler) loop(ctx, runCtx context.Context, j Job) {
	if j.RunOnStart {
		s.fire(runCtx, j)
	}
	for {
		now := s.nowFn()
		next := j.Trigger.Next(now)
		logging.Debug("job_scheduled", map[string]any{"job": j.Name, "next": next.UTC().Format(time.RFC3339)})
		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fire(runCtx, j)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, j Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		start := time.Now()
		defer metrics.ObserveCycle(j.Name, start)
		if err := runSafely(ctx, j); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error("job_failed", map[string]any{"job": j.Name, "error": err.Error()})
		}
	}()
}

func runSafely(ctx context.Context, j Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in job %s: %v", j.Name, r)
		}
	}()
	return j.Run(ctx)
}
