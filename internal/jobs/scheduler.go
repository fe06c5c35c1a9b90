package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"velora.id/homeserve/pkg/apperror"
)

// Job is a periodic batch task run independently of API traffic.
type Job interface {
	// Name returns the unique job name (for logging and on-demand runs).
	Name() string

	// Schedule returns the cron spec the job runs on. An empty string
	// registers the job as on-demand only.
	Schedule() string

	// Run executes the job. A run is never preempted mid-iteration; per
	// recipient failures are handled inside the job itself.
	Run(ctx context.Context) error
}

// Scheduler registers jobs on a shared cron runner. Jobs can also be
// triggered on demand by name, which is how the admin API invokes them
// outside their cadence.
type Scheduler struct {
	cron *cron.Cron
	jobs []Job
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make([]Job, 0),
	}
}

func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)

	spec := job.Schedule()
	if spec == "" {
		logrus.WithField("job", job.Name()).Info("registered as on-demand job (no schedule)")
		return
	}

	_, err := s.cron.AddFunc(spec, func() {
		runLogger := logrus.WithFields(logrus.Fields{
			"job":    job.Name(),
			"run_id": uuid.NewString(),
		})
		runLogger.Info("starting scheduled job")
		if err := job.Run(context.Background()); err != nil {
			runLogger.WithError(err).Error("job failed")
			return
		}
		runLogger.Info("job completed")
	})
	if err != nil {
		logrus.WithField("job", job.Name()).WithError(err).Warn("failed to schedule job")
		return
	}

	logrus.WithFields(logrus.Fields{"job": job.Name(), "cron": spec}).Info("job scheduled")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logrus.WithField("jobs", len(s.jobs)).Info("job scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	logrus.Info("job scheduler stopped")
}

// RunByName triggers a registered job immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			logrus.WithField("job", name).Info("running on-demand job")
			return job.Run(ctx)
		}
	}
	return fmt.Errorf("job %q not registered: %w", name, apperror.ErrNotFound)
}

// JobNames lists all registered jobs.
func (s *Scheduler) JobNames() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}
