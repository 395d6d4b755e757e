package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/handler/http/response"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
	employeeService "github.com/pacificpay/payroll-backend-go/internal/service/employee"
	leaveService "github.com/pacificpay/payroll-backend-go/internal/service/leave"
	"github.com/shopspring/decimal"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	BackfillName(w http.ResponseWriter, r *http.Request)
	LeaveBalances(w http.ResponseWriter, r *http.Request)
	SetLeaveCarryOver(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService *employeeService.Service
	batchService    wage.BatchService
	balanceService  *leaveService.BalanceService
}

func NewEmployeeHandler(
	empSvc *employeeService.Service,
	batchSvc wage.BatchService,
	balanceSvc *leaveService.BalanceService,
) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: empSvc,
		batchService:    batchSvc,
		balanceService:  balanceSvc,
	}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreatePayProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	result, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	var req employee.UpdatePayProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// BackfillName propagates the directory's current name onto the employee's
// historical wage records. Explicit admin action, not a rename side effect.
func (h *employeeHandlerImpl) BackfillName(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	updated, err := h.batchService.BackfillEmployeeName(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee name backfilled", map[string]int64{
		"records_updated": updated,
	})
}

func (h *employeeHandlerImpl) LeaveBalances(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	result, err := h.balanceService.ComputeBalances(r.Context(), id, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

type setCarryOverRequest struct {
	Category string          `json:"category"`
	Year     int             `json:"year"`
	Days     decimal.Decimal `json:"days"`
}

func (h *employeeHandlerImpl) SetLeaveCarryOver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid employee ID", nil)
		return
	}

	var req setCarryOverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.balanceService.SetCarryOver(r.Context(), id, req.Category, req.Year, req.Days); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave carry-over saved", nil)
}
