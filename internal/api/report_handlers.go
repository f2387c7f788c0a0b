package api

import (
	"net/http"

	logrus "github.com/sirupsen/logrus"

	"parkdesk/internal/service"
)

type ReportHandler struct {
	Service *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{Service: svc}
}

func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.GenerateReport()
	if err != nil {
		logrus.Errorf("Generating report: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
