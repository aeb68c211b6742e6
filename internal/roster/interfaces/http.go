package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"timesheet-kpi/internal/audit"
	"timesheet-kpi/internal/roster/application"
	roster "timesheet-kpi/internal/roster/domain"
)

// EmployeeHandler serves roster CRUD under /api/v1/roster.
type EmployeeHandler struct {
	service     *application.EmployeeService
	auditLogger audit.Logger
	logger      *log.Logger
}

// NewEmployeeHandler constructs a handler.
func NewEmployeeHandler(service *application.EmployeeService, auditLogger audit.Logger, logger *log.Logger) (*EmployeeHandler, error) {
	if service == nil {
		return nil, errors.New("roster handler: nil service")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &EmployeeHandler{service: service, auditLogger: auditLogger, logger: logger}, nil
}

type employeePayload struct {
	FullName     string      `json:"full_name"`
	KPIBase      json.Number `json:"kpi_base"`
	Schedule     string      `json:"schedule"`
	Department   string      `json:"department"`
	CategoryCode string      `json:"category_code"`
}

type employeeView struct {
	ID           int64   `json:"id"`
	FullName     string  `json:"full_name"`
	KPIBase      float64 `json:"kpi_base"`
	Schedule     string  `json:"schedule"`
	Department   string  `json:"department"`
	CategoryCode string  `json:"category_code"`
	Deleted      bool    `json:"deleted"`
	DeleteReason string  `json:"delete_reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func viewOf(emp roster.Employee) employeeView {
	return employeeView{
		ID:           emp.ID,
		FullName:     emp.FullName,
		KPIBase:      emp.KPIBase.InexactFloat64(),
		Schedule:     string(emp.Schedule),
		Department:   emp.Department,
		CategoryCode: emp.CategoryCode,
		Deleted:      emp.Deleted(),
		DeleteReason: emp.DeleteReason,
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    emp.UpdatedAt.Format(time.RFC3339),
	}
}

// ServeHTTP routes roster requests.
func (h *EmployeeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/roster" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleAdd(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if rest, ok := strings.CutPrefix(r.URL.Path, "/api/v1/roster/"); ok && rest != "" {
		h.handleByID(w, r, rest)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *EmployeeHandler) handleByID(w http.ResponseWriter, r *http.Request, rest string) {
	parts := strings.Split(rest, "/")
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			h.handleGet(w, r, id)
		case http.MethodPut:
			h.handleEdit(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(parts) == 2 && parts[1] == "restore" && r.Method == http.MethodPost {
		h.handleRestore(w, r, id)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *EmployeeHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		list []roster.Employee
		err  error
	)
	if r.URL.Query().Get("include_deleted") == "true" {
		list, err = h.service.ListAll(r.Context())
	} else {
		list, err = h.service.ListActive(r.Context())
	}
	if err != nil {
		respondRosterError(w, err)
		return
	}
	views := make([]employeeView, 0, len(list))
	for _, emp := range list {
		views = append(views, viewOf(emp))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(views)
}

func (h *EmployeeHandler) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	emp, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondRosterError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(viewOf(*emp))
}

func (h *EmployeeHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	emp, ok := decodeEmployee(w, r)
	if !ok {
		return
	}
	if err := h.service.Add(r.Context(), emp); err != nil {
		respondRosterError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(viewOf(*emp))
	h.logAudit(r, emp.ID, "roster.add", map[string]any{"full_name": emp.FullName})
}

func (h *EmployeeHandler) handleEdit(w http.ResponseWriter, r *http.Request, id int64) {
	emp, ok := decodeEmployee(w, r)
	if !ok {
		return
	}
	emp.ID = id
	if err := h.service.Edit(r.Context(), emp); err != nil {
		respondRosterError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(viewOf(*emp))
	h.logAudit(r, id, "roster.edit", map[string]any{"full_name": emp.FullName})
}

func (h *EmployeeHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if err := h.service.Delete(r.Context(), id, req.Reason); err != nil {
		respondRosterError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, id, "roster.delete", map[string]any{"reason": req.Reason})
}

func (h *EmployeeHandler) handleRestore(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.service.Restore(r.Context(), id); err != nil {
		respondRosterError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	h.logAudit(r, id, "roster.restore", nil)
}

func decodeEmployee(w http.ResponseWriter, r *http.Request) (*roster.Employee, bool) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return nil, false
	}
	base := decimal.Zero
	if payload.KPIBase != "" {
		parsed, err := decimal.NewFromString(payload.KPIBase.String())
		if err != nil {
			http.Error(w, "invalid kpi_base", http.StatusBadRequest)
			return nil, false
		}
		base = parsed
	}
	return &roster.Employee{
		FullName:     payload.FullName,
		KPIBase:      base,
		Schedule:     roster.ParseScheduleKind(payload.Schedule),
		Department:   payload.Department,
		CategoryCode: payload.CategoryCode,
	}, true
}

func (h *EmployeeHandler) logAudit(r *http.Request, id int64, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		Actor:        r.Header.Get("X-Actor"),
		Action:       action,
		ResourceType: "employee",
		ResourceID:   strconv.FormatInt(id, 10),
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondRosterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, roster.ErrEmployeeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, roster.ErrEmptyFullName),
		errors.Is(err, roster.ErrNonPositiveKPIBase),
		errors.Is(err, roster.ErrUnknownSchedule),
		errors.Is(err, roster.ErrEmptyDepartment):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "roster operation failed", http.StatusInternalServerError)
	}
}
