package service

import (
	"fmt"
	"os"
	"strconv"
	"time"

	logrus "github.com/sirupsen/logrus"

	"parkdesk/internal/db"
	"parkdesk/internal/entities"
	"parkdesk/internal/validation"
)

const defaultLongStayHours = 24

// Notifier delivers the operator notifications the jobs produce.
type Notifier interface {
	SendDailyReportEmail(report *entities.Report) error
	SendLongStayAlert(vehicles []db.Vehicle) error
}

// JobService runs the scheduled housekeeping: the daily report email
// and the long-stay sweep. It only reads; the state machine is never
// advanced from a job.
type JobService struct {
	Repo     VehicleRepository
	reports  *ReportService
	notify   Notifier
	longStay time.Duration
}

func NewJobService(repo VehicleRepository, reports *ReportService, notify Notifier) *JobService {
	hours := defaultLongStayHours
	if raw := os.Getenv("LONG_STAY_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			hours = parsed
		} else {
			logrus.Warnf("Invalid LONG_STAY_HOURS %q, using %d", raw, defaultLongStayHours)
		}
	}
	return &JobService{
		Repo:     repo,
		reports:  reports,
		notify:   notify,
		longStay: time.Duration(hours) * time.Hour,
	}
}

func (s *JobService) SendDailyReport() error {
	logrus.Info("Cron job: generating daily report")

	report, err := s.reports.GenerateReport()
	if err != nil {
		return fmt.Errorf("cron job: generating daily report: %w", err)
	}
	return s.notify.SendDailyReportEmail(report)
}

// AlertLongStays looks for sessions still parked past the configured
// limit and alerts the operator.
func (s *JobService) AlertLongStays() error {
	vehicles, err := s.Repo.All()
	if err != nil {
		return fmt.Errorf("cron job: loading vehicles for long-stay sweep: %w", err)
	}

	var overdue []db.Vehicle
	now := time.Now()
	for _, vehicle := range vehicles {
		if vehicle.Status() != db.StatusParked {
			continue
		}
		checkin, err := validation.ParseTimestamp(vehicle.Checkin)
		if err != nil {
			logrus.Warnf("Vehicle %d has an unparsable check-in %q, skipping", vehicle.ID, vehicle.Checkin)
			continue
		}
		if now.Sub(checkin) > s.longStay {
			overdue = append(overdue, vehicle)
		}
	}

	if len(overdue) == 0 {
		logrus.Info("Cron job: no long-stay vehicles found")
		return nil
	}

	logrus.Infof("Cron job: %d vehicle(s) parked past the long-stay limit", len(overdue))
	return s.notify.SendLongStayAlert(overdue)
}
