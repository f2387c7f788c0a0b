package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"

	"parkdesk/internal/api"
	"parkdesk/internal/logger"
	"parkdesk/internal/pricing"
	"parkdesk/internal/repository"
	"parkdesk/internal/service"
	"parkdesk/internal/validation"
)

func main() {
	godotenv.Load()
	logger.Setup()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	repo := repository.NewVehicleRepository(db)
	validator := validation.NewVehicleValidator()
	calculator := pricing.NewCalculator()

	parkingSvc := service.NewParkingService(repo, validator, calculator, stampingLocation())
	reportSvc := service.NewReportService(repo)
	notifySvc := service.NewNotifyService()
	jobSvc := service.NewJobService(repo, reportSvc, notifySvc)

	vehicleHandler := api.NewVehicleHandler(parkingSvc, calculator)
	reportHandler := api.NewReportHandler(reportSvc)

	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles", vehicleHandler.RegisterVehicle).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.GetVehicle).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods("PUT")
	r.HandleFunc("/api/vehicles/{id}", vehicleHandler.DeleteVehicle).Methods("DELETE")
	r.HandleFunc("/api/vehicles/{id}/checkin", vehicleHandler.CheckInVehicle).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}/checkout", vehicleHandler.CheckOutVehicle).Methods("POST")
	r.HandleFunc("/api/rates", vehicleHandler.ListRates).Methods("GET")
	r.HandleFunc("/api/report", reportHandler.GenerateReport).Methods("GET")

	startJobs(jobSvc)

	handler := handlers.LoggingHandler(os.Stdout, handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}

// stampingLocation is the timezone check-in/check-out timestamps are
// recorded in, so stored times stay consistent across server moves.
func stampingLocation() *time.Location {
	name := os.Getenv("PARKING_TIMEZONE")
	if name == "" {
		name = "America/Sao_Paulo"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.Warnf("Unknown timezone %q, falling back to BRT", name)
		loc = time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

func startJobs(jobSvc *service.JobService) {
	reportSpec := os.Getenv("REPORT_CRON")
	if reportSpec == "" {
		reportSpec = "0 20 * * *"
	}

	c := cron.New()
	if _, err := c.AddFunc(reportSpec, func() {
		if err := jobSvc.SendDailyReport(); err != nil {
			logrus.Errorf("Daily report job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule daily report job: %v", err)
	}
	if _, err := c.AddFunc("@every 1h", func() {
		if err := jobSvc.AlertLongStays(); err != nil {
			logrus.Errorf("Long-stay sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule long-stay sweep: %v", err)
	}
	c.Start()
}
