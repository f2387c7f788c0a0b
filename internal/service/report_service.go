package service

import (
	"fmt"
	"strings"

	"parkdesk/internal/entities"
)

type ReportService struct {
	Repo VehicleRepository
}

func NewReportService(repo VehicleRepository) *ReportService {
	return &ReportService{Repo: repo}
}

// GenerateReport reads the vehicles once and aggregates counts and
// revenue, overall and per known vehicle type. Sessions without a
// check-out contribute a zero amount.
func (s *ReportService) GenerateReport() (*entities.Report, error) {
	vehicles, err := s.Repo.All()
	if err != nil {
		return nil, fmt.Errorf("loading vehicles for report: %w", err)
	}

	report := &entities.Report{
		ByType: map[string]entities.TypeReport{
			"car":        {},
			"motorcycle": {},
			"truck":      {},
		},
	}

	for _, vehicle := range vehicles {
		report.TotalVehicles++
		report.TotalRevenue += vehicle.Amount

		key := strings.ToLower(vehicle.VehicleType)
		if bucket, ok := report.ByType[key]; ok {
			bucket.Count++
			bucket.Revenue += vehicle.Amount
			report.ByType[key] = bucket
		}
	}

	return report, nil
}
