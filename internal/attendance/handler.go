package attendance

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hrms-lite/internal/transport"
)

type ServiceAPI interface {
	Mark(ctx context.Context, dto *MarkAttendanceDTO) (*AttendanceResponse, error)
	Update(ctx context.Context, employeeID, date string, dto *UpdateAttendanceDTO) (*AttendanceResponse, error)
	ListForEmployee(ctx context.Context, employeeID string, filter ListFilter) ([]AttendanceResponse, error)
	ListAll(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var dto MarkAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("MarkAttendance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.Mark(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("MarkAttendance: service error", "error", err, "employee_id", dto.EmployeeID, "date", dto.Date)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("MarkAttendance: attendance marked",
		"employee_id", record.EmployeeID,
		"date", record.Date,
		"status", record.Status)

	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	date := chi.URLParam(r, "date")

	var dto UpdateAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAttendance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.Update(r.Context(), employeeID, date, &dto)
	if err != nil {
		h.Logger.Error("UpdateAttendance: service error", "error", err, "employee_id", employeeID, "date", date)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) ListEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	filter := filterFromQuery(r)

	records, err := h.Service.ListForEmployee(r.Context(), employeeID, filter)
	if err != nil {
		h.Logger.Error("ListEmployeeAttendance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) ListAllAttendance(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	records, err := h.Service.ListAll(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListAllAttendance: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

func filterFromQuery(r *http.Request) ListFilter {
	return ListFilter{
		Date:   r.URL.Query().Get("date"),
		Status: r.URL.Query().Get("status"),
	}
}
