package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkdesk/internal/db"
	"parkdesk/internal/entities"
)

type recordingNotifier struct {
	reports  []*entities.Report
	longStay [][]db.Vehicle
}

func (n *recordingNotifier) SendDailyReportEmail(report *entities.Report) error {
	n.reports = append(n.reports, report)
	return nil
}

func (n *recordingNotifier) SendLongStayAlert(vehicles []db.Vehicle) error {
	n.longStay = append(n.longStay, vehicles)
	return nil
}

func TestAlertLongStaysFlagsOnlyOverdueParkedVehicles(t *testing.T) {
	repo := newFakeVehicleRepo()
	now := time.Now().UTC()
	seed := []db.Vehicle{
		{Plate: "OLD1234", VehicleType: "car", Checkin: now.Add(-30 * time.Hour).Format(time.RFC3339)},
		{Plate: "NEW1234", VehicleType: "car", Checkin: now.Add(-2 * time.Hour).Format(time.RFC3339)},
		{Plate: "DON1234", VehicleType: "truck", Checkin: now.Add(-40 * time.Hour).Format(time.RFC3339), Checkout: now.Format(time.RFC3339)},
		{Plate: "WAI1234", VehicleType: "motorcycle"},
	}
	for _, vehicle := range seed {
		_, err := repo.Create(vehicle)
		require.NoError(t, err)
	}

	notifier := &recordingNotifier{}
	job := NewJobService(repo, NewReportService(repo), notifier)

	require.NoError(t, job.AlertLongStays())
	require.Len(t, notifier.longStay, 1)
	require.Len(t, notifier.longStay[0], 1)
	assert.Equal(t, "OLD1234", notifier.longStay[0][0].Plate)
}

func TestAlertLongStaysStaysQuietWhenNothingIsOverdue(t *testing.T) {
	repo := newFakeVehicleRepo()
	notifier := &recordingNotifier{}
	job := NewJobService(repo, NewReportService(repo), notifier)

	require.NoError(t, job.AlertLongStays())
	assert.Empty(t, notifier.longStay)
}

func TestSendDailyReport(t *testing.T) {
	repo := newFakeVehicleRepo()
	_, err := repo.Create(db.Vehicle{Plate: "AAA1111", VehicleType: "car", Amount: 15.0,
		Checkin: "2024-01-01T10:00:00-03:00", Checkout: "2024-01-01T13:00:00-03:00"})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	job := NewJobService(repo, NewReportService(repo), notifier)

	require.NoError(t, job.SendDailyReport())
	require.Len(t, notifier.reports, 1)
	assert.Equal(t, 15.0, notifier.reports[0].TotalRevenue)
}
