package employeeshandler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrform/internal/domain/auth"
	"hrform/internal/domain/employee"
	"hrform/internal/platform/metrics"
	"hrform/internal/transport/http/api"
	"hrform/internal/transport/http/middleware"
	"hrform/internal/transport/http/shared"
)

type Handler struct {
	Store   employee.StoreAPI
	Metrics *metrics.Collector
}

func NewHandler(store employee.StoreAPI, collector *metrics.Collector) *Handler {
	return &Handler{Store: store, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/roster.pdf", h.handleRosterPDF)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/roster.xlsx", h.handleRosterXLSX)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermEmployeesRead)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite)).Put("/", h.handleUpdate)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.listFiltered(r)
	if err != nil {
		slog.Error("employee list failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

// listFiltered applies the optional branch query parameter.
func (h *Handler) listFiltered(r *http.Request) ([]employee.Employee, error) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		return nil, err
	}
	branch := employee.Branch(r.URL.Query().Get("branch"))
	if branch == "" {
		return employees, nil
	}
	filtered := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.Branch == branch {
			filtered = append(filtered, emp)
		}
	}
	return filtered, nil
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		slog.Error("employee get failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var payload employee.Employee
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	if payload.ID != "" {
		api.Fail(w, http.StatusBadRequest, "id_assigned", employee.ErrIDAssigned.Error(), reqID)
		return
	}
	draft := payload.Draft()
	if shared.RejectDraft(w, draft, reqID) {
		return
	}

	id, err := h.Store.Insert(r.Context(), draft.WithID(""))
	h.Metrics.RecordWrite(err == nil)
	if errors.Is(err, employee.ErrRejected) {
		api.Fail(w, http.StatusBadRequest, "invalid_record", err.Error(), reqID)
		return
	}
	if err != nil {
		slog.Error("employee create failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	slog.Info("employee created", "employeeId", id, "operatorId", operatorID(r), "requestId", reqID)
	api.Created(w, map[string]string{"id": id}, reqID)
}

// handleUpdate replaces the whole record; the identifier comes from the path.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id := chi.URLParam(r, "employeeID")
	var payload employee.Employee
	if !shared.DecodeJSON(w, r, &payload, reqID) {
		return
	}
	if payload.ID != "" && payload.ID != id {
		api.Fail(w, http.StatusBadRequest, "id_mismatch", "employee id does not match the path", reqID)
		return
	}
	draft := payload.Draft()
	if shared.RejectDraft(w, draft, reqID) {
		return
	}

	record := draft.WithID(id)
	err := h.Store.Update(r.Context(), record)
	h.Metrics.RecordWrite(err == nil)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if errors.Is(err, employee.ErrRejected) {
		api.Fail(w, http.StatusBadRequest, "invalid_record", err.Error(), reqID)
		return
	}
	if err != nil {
		slog.Error("employee update failed", "employeeId", id, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", reqID)
		return
	}
	slog.Info("employee updated", "employeeId", id, "operatorId", operatorID(r), "requestId", reqID)
	api.Success(w, record, reqID)
}

func (h *Handler) handleRosterPDF(w http.ResponseWriter, r *http.Request) {
	h.writeRoster(w, r, "application/pdf", "roster.pdf", employee.WriteRosterPDF)
}

func (h *Handler) handleRosterXLSX(w http.ResponseWriter, r *http.Request) {
	h.writeRoster(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "roster.xlsx", employee.WriteRosterXLSX)
}

func (h *Handler) writeRoster(w http.ResponseWriter, r *http.Request, contentType, name string, write func(io.Writer, []employee.Employee) error) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.listFiltered(r)
	if err != nil {
		slog.Error("roster list failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, employees); err != nil {
		slog.Error("roster render failed", "format", name, "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "roster_failed", "failed to render roster", reqID)
		return
	}
	filename := "employees-" + time.Now().Format("20060102") + "-" + name
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func operatorID(r *http.Request) string {
	op, _ := middleware.GetOperator(r.Context())
	return op.OperatorID
}
