package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/mailer"
)

const MonthlyReportJobName = "monthly-report"

// MonthlyReportJob sends every customer an activity report covering the
// current calendar month. Unlike the daily reminder, a customer with no
// activity still gets a (mostly empty) report.
type MonthlyReportJob struct {
	users    repository.UserRepository
	requests repository.RequestRepository
	mail     mailer.Mailer
	schedule string
	now      func() time.Time
}

func NewMonthlyReportJob(
	users repository.UserRepository,
	requests repository.RequestRepository,
	mail mailer.Mailer,
	schedule string,
) *MonthlyReportJob {
	return &MonthlyReportJob{
		users:    users,
		requests: requests,
		mail:     mail,
		schedule: schedule,
		now:      time.Now,
	}
}

func (j *MonthlyReportJob) Name() string     { return MonthlyReportJobName }
func (j *MonthlyReportJob) Schedule() string { return j.schedule }

func (j *MonthlyReportJob) Run(ctx context.Context) error {
	customers, err := j.users.FindByRole(ctx, model.RoleCustomer, false)
	if err != nil {
		return err
	}

	windowStart := monthStart(j.now().UTC())

	for _, customer := range customers {
		log := logrus.WithFields(logrus.Fields{
			"job":      j.Name(),
			"customer": customer.ID,
		})

		requested, err := j.requests.FindRequestedSince(ctx, customer.ID, windowStart)
		if err != nil {
			log.WithError(err).Error("failed to fetch requested services, skipping recipient")
			continue
		}

		closed, err := j.requests.FindClosedSince(ctx, customer.ID, windowStart)
		if err != nil {
			log.WithError(err).Error("failed to fetch closed services, skipping recipient")
			continue
		}

		body, err := renderTemplate("monthly_report.html", map[string]any{
			"Name":      customer.Username,
			"Requested": requested,
			"Closed":    closed,
		})
		if err != nil {
			log.WithError(err).Error("failed to render report, skipping recipient")
			continue
		}

		if err := j.mail.Send(customer.Email, "Monthly Activity Report", body); err != nil {
			log.WithError(err).Error("failed to send report")
			continue
		}
		log.Info("monthly report sent")
	}

	return nil
}

// monthStart returns midnight UTC on the first of the month containing t.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
