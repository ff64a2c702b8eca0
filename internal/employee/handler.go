package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/hrms-lite/internal/transport"
)

type ServiceAPI interface {
	ListAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, employeeID string) (*EmployeeResponse, error)
	Create(ctx context.Context, dto *CreateEmployeeDTO) (*EmployeeResponse, error)
	Delete(ctx context.Context, employeeID string) error
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

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	emp, err := h.Service.GetByID(r.Context(), employeeID)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Create(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created",
		"employee_id", emp.EmployeeID,
		"department", emp.Department)

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), employeeID); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Employee '%s' deleted successfully", employeeID),
	})
}
