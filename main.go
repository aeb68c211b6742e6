package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"timesheet-kpi/internal/audit"
	calendarapp "timesheet-kpi/internal/calendar/application"
	calendarmemory "timesheet-kpi/internal/calendar/infrastructure/memory"
	calendarpostgres "timesheet-kpi/internal/calendar/infrastructure/postgres"
	calendarhttp "timesheet-kpi/internal/calendar/interfaces"
	"timesheet-kpi/internal/observability/metrics"
	rosterapp "timesheet-kpi/internal/roster/application"
	rostermemory "timesheet-kpi/internal/roster/infrastructure/memory"
	rosterpostgres "timesheet-kpi/internal/roster/infrastructure/postgres"
	rosterhttp "timesheet-kpi/internal/roster/interfaces"
	kpiapp "timesheet-kpi/internal/timesheet/application"
	kpihttp "timesheet-kpi/internal/timesheet/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	var (
		db          *sql.DB
		rosterRepo  rosterapp.EmployeeRepository
		holidayRepo calendarapp.HolidayRepository
		auditLogger audit.Logger
	)
	if cfg.DatabaseURL != "" {
		var err error
		db, err = sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Fatalf("db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("db ping error: %v", err)
		}
		rosterRepo = rosterpostgres.NewEmployeeRepository(db)
		holidayRepo = calendarpostgres.NewHolidayRepository(db)
		auditLogger = audit.NewRepository(db)
	} else {
		logger.Printf("DATABASE_URL not set, using in-memory stores")
		rosterRepo = rostermemory.NewEmployeeRepository()
		holidayRepo = calendarmemory.NewHolidayRepository()
	}

	metrics.Init(db)

	codes, err := kpiapp.LoadCodes(cfg.CodesConfigPath)
	if err != nil {
		logger.Fatalf("codes config error: %v", err)
	}

	rosterService, err := rosterapp.NewEmployeeService(rosterRepo, logger)
	if err != nil {
		logger.Fatalf("roster service error: %v", err)
	}
	calendarService, err := calendarapp.NewCalendarService(holidayRepo, logger)
	if err != nil {
		logger.Fatalf("calendar service error: %v", err)
	}
	kpiService, err := kpiapp.NewService(rosterService, calendarService, codes, logger)
	if err != nil {
		logger.Fatalf("kpi service error: %v", err)
	}

	rosterHandler, err := rosterhttp.NewEmployeeHandler(rosterService, auditLogger, logger)
	if err != nil {
		logger.Fatalf("roster handler error: %v", err)
	}
	calendarHandler, err := calendarhttp.NewCalendarHandler(calendarService, logger)
	if err != nil {
		logger.Fatalf("calendar handler error: %v", err)
	}
	kpiHandler, err := kpihttp.NewKPIHandler(kpiService, auditLogger, logger)
	if err != nil {
		logger.Fatalf("kpi handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/kpi/calculate", kpiHandler)
	mux.Handle("/api/v1/kpi/export", kpiHandler)
	mux.Handle("/api/v1/roster", rosterHandler)
	mux.Handle("/api/v1/roster/", rosterHandler)
	mux.Handle("/api/v1/calendar", calendarHandler)
	mux.Handle("/api/v1/calendar/holidays", calendarHandler)
	mux.Handle("/api/v1/calendar/holidays/", calendarHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL     string
	HTTPAddr        string
	CodesConfigPath string
}

func loadConfig() config {
	return config{
		DatabaseURL:     getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:        getenvDefault("HTTP_ADDR", ":8080"),
		CodesConfigPath: getenvDefault("KPI_CODES_CONFIG", ""),
	}
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
