package interfaces

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"timesheet-kpi/internal/audit"
	calendar "timesheet-kpi/internal/calendar/domain"
	"timesheet-kpi/internal/observability/metrics"
	"timesheet-kpi/internal/timesheet/application"
	timesheet "timesheet-kpi/internal/timesheet/domain"
)

const maxUploadBytes = 32 << 20

// KPIHandler serves calculation and export routes under /api/v1/kpi.
type KPIHandler struct {
	service     *application.Service
	auditLogger audit.Logger
	logger      *log.Logger
}

// NewKPIHandler constructs a handler.
func NewKPIHandler(service *application.Service, auditLogger audit.Logger, logger *log.Logger) (*KPIHandler, error) {
	if service == nil {
		return nil, errors.New("kpi handler: nil service")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &KPIHandler{service: service, auditLogger: auditLogger, logger: logger}, nil
}

// ServeHTTP routes KPI requests.
func (h *KPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/kpi/calculate" && r.Method == http.MethodPost:
		h.handleCalculate(w, r)
	case r.URL.Path == "/api/v1/kpi/export" && r.Method == http.MethodPost:
		h.handleExport(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *KPIHandler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	report, ok := h.runCalculation(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (h *KPIHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "general"
	}

	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveExport(format, result, time.Since(start))
	}()

	report, ok := h.runCalculation(w, r)
	if !ok {
		result = metrics.ResultError
		return
	}

	var (
		data []byte
		err  error
		mime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		name string
	)
	stamp := time.Now().Format("20060102_150405")
	switch format {
	case "general":
		data, err = BuildGeneralXLSX(report)
		name = "KPIfinal_" + stamp + ".xlsx"
	case "import1c":
		data, err = BuildImportXLSX(report)
		name = "KPI_for_1C_" + stamp + ".xlsx"
	case "accounting":
		data, err = BuildAccountingXLSX(report)
		name = "KPI_for_Buh_" + stamp + ".xlsx"
	case "pdf":
		data, err = BuildSummaryPDF(report)
		mime = "application/pdf"
		name = "KPIsummary_" + stamp + ".pdf"
	default:
		result = metrics.ResultError
		http.Error(w, "unknown export format", http.StatusBadRequest)
		return
	}
	if err != nil {
		result = metrics.ResultError
		h.logger.Printf("export %s failed: %v", format, err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, report.UploadID, "kpi.export", map[string]any{
		"format": format,
		"file":   name,
		"rows":   len(report.Results),
	})
}

// runCalculation parses the multipart form and runs the pipeline. On failure
// it writes the error response and returns false.
func (h *KPIHandler) runCalculation(w http.ResponseWriter, r *http.Request) (*application.Report, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return nil, false
	}
	file, _, err := r.FormFile("timesheet")
	if err != nil {
		http.Error(w, "timesheet file is required", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	req := application.CalculateRequest{
		File:     file,
		Holidays: r.FormValue("holidays"),
	}
	req.Year, _ = strconv.Atoi(r.FormValue("year"))
	req.Month, _ = strconv.Atoi(r.FormValue("month"))
	req.NormDay, _ = strconv.Atoi(r.FormValue("norm_day"))
	req.NormShift, _ = strconv.Atoi(r.FormValue("norm_shift"))

	report, err := h.service.Calculate(r.Context(), req)
	if err != nil {
		respondCalcError(w, err)
		return nil, false
	}
	h.logAudit(r, report.UploadID, "kpi.calculate", map[string]any{
		"year":    req.Year,
		"month":   req.Month,
		"results": len(report.Results),
		"errors":  len(report.Errors),
	})
	return report, true
}

func (h *KPIHandler) logAudit(r *http.Request, uploadID, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        r.Header.Get("X-Actor"),
		Action:       action,
		ResourceType: "upload",
		ResourceID:   uploadID,
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondCalcError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidPeriod),
		errors.Is(err, timesheet.ErrInvalidNorm),
		errors.Is(err, timesheet.ErrBadFormat),
		errors.Is(err, timesheet.ErrEmptyFile):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "calculation failed", http.StatusInternalServerError)
	}
}
