package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"velora.id/homeserve/internal/model"
	"velora.id/homeserve/internal/repository"
	"velora.id/homeserve/pkg/mailer"
)

const DailyReminderJobName = "daily-reminder"

// DailyReminderJob mails every active professional who has assigned requests
// still sitting at requested. Professionals with nothing pending get no
// mail. There is no persisted sent-flag; re-running the job sends again.
type DailyReminderJob struct {
	users    repository.UserRepository
	requests repository.RequestRepository
	mail     mailer.Mailer
	schedule string
}

func NewDailyReminderJob(
	users repository.UserRepository,
	requests repository.RequestRepository,
	mail mailer.Mailer,
	schedule string,
) *DailyReminderJob {
	return &DailyReminderJob{
		users:    users,
		requests: requests,
		mail:     mail,
		schedule: schedule,
	}
}

func (j *DailyReminderJob) Name() string     { return DailyReminderJobName }
func (j *DailyReminderJob) Schedule() string { return j.schedule }

func (j *DailyReminderJob) Run(ctx context.Context) error {
	professionals, err := j.users.FindByRole(ctx, model.RoleProfessional, true)
	if err != nil {
		return err
	}

	for _, professional := range professionals {
		log := logrus.WithFields(logrus.Fields{
			"job":          j.Name(),
			"professional": professional.ID,
		})

		pending, err := j.requests.CountByProfessionalAndStatus(ctx, professional.ID, model.StatusRequested)
		if err != nil {
			log.WithError(err).Error("failed to count pending requests, skipping recipient")
			continue
		}
		if pending == 0 {
			continue
		}

		body, err := renderTemplate("daily_reminder.html", map[string]any{
			"Name": professional.Username,
		})
		if err != nil {
			log.WithError(err).Error("failed to render reminder, skipping recipient")
			continue
		}

		if err := j.mail.Send(professional.Email, "Daily Reminder: Pending Service Requests", body); err != nil {
			log.WithError(err).Error("failed to send reminder")
			continue
		}
		log.WithField("pending", pending).Info("reminder sent")
	}

	return nil
}
