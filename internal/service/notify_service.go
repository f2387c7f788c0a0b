package service

import (
	"fmt"
	"os"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"parkdesk/internal/db"
	"parkdesk/internal/entities"
)

// NotifyService delivers operator notifications. Vehicles carry no
// contact information, so everything goes to the front-desk operator
// configured through FRONTDESK_ALERT_EMAIL / FRONTDESK_ALERT_PHONE.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) SendDailyReportEmail(report *entities.Report) error {
	toEmail := os.Getenv("FRONTDESK_ALERT_EMAIL")
	if toEmail == "" {
		logrus.Warn("FRONTDESK_ALERT_EMAIL not configured, skipping daily report email")
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Daily parking report\n\n")
	fmt.Fprintf(&body, "Total vehicles: %d\n", report.TotalVehicles)
	fmt.Fprintf(&body, "Total revenue: %.2f\n\n", report.TotalRevenue)
	for _, vehicleType := range []string{"car", "motorcycle", "truck"} {
		bucket := report.ByType[vehicleType]
		fmt.Fprintf(&body, "%s: %d vehicles, revenue %.2f\n", vehicleType, bucket.Count, bucket.Revenue)
	}

	subject := fmt.Sprintf("ParkDesk daily report - %d vehicles, revenue %.2f", report.TotalVehicles, report.TotalRevenue)
	return SendEmailWithSendGrid(toEmail, "Front desk", subject, body.String())
}

func (s *NotifyService) SendLongStayAlert(vehicles []db.Vehicle) error {
	toPhone := os.Getenv("FRONTDESK_ALERT_PHONE")
	if toPhone == "" {
		logrus.Warn("FRONTDESK_ALERT_PHONE not configured, skipping long-stay alert")
		return nil
	}

	plates := make([]string, 0, len(vehicles))
	for _, vehicle := range vehicles {
		plates = append(plates, vehicle.Plate)
	}

	message := fmt.Sprintf("ParkDesk: %d vehicle(s) parked past the long-stay limit: %s",
		len(vehicles), strings.Join(plates, ", "))
	return SendSMS(toPhone, message)
}
