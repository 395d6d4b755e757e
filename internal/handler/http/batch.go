package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/handler/http/response"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
)

type BatchHandler interface {
	CreateWageBatch(w http.ResponseWriter, r *http.Request)
	CreateLeaveBatch(w http.ResponseWriter, r *http.Request)
	GetBatchByToken(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	EditBatchRecords(w http.ResponseWriter, r *http.Request)
	DeleteBatch(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type batchHandlerImpl struct {
	batchService wage.BatchService
}

func NewBatchHandler(batchService wage.BatchService) BatchHandler {
	return &batchHandlerImpl{batchService: batchService}
}

func (h *batchHandlerImpl) CreateWageBatch(w http.ResponseWriter, r *http.Request) {
	initiator, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req wage.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.batchService.CreateWageBatch(r.Context(), req, initiator)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Approval batch created", result)
}

func (h *batchHandlerImpl) CreateLeaveBatch(w http.ResponseWriter, r *http.Request) {
	initiator, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req wage.CreateLeaveBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.batchService.CreateLeaveBatch(r.Context(), req, initiator)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave approval batch created", result)
}

// GetBatchByToken is the public decision page data source. The token in the
// query string is the only credential; fetching is side-effect free and may
// be repeated.
func (h *batchHandlerImpl) GetBatchByToken(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	result, err := h.batchService.GetBatchByToken(r.Context(), tok)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *batchHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	decider, err := identityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req wage.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.batchService.Decide(r.Context(), req, decider)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.AlreadyDecided {
		response.SuccessWithMessage(w, "Batch was already decided", result)
		return
	}

	response.Success(w, result)
}

func (h *batchHandlerImpl) EditBatchRecords(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(batchID) {
		response.BadRequest(w, "Invalid batch ID", nil)
		return
	}

	var req wage.EditBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.batchService.EditBatchRecords(r.Context(), batchID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch records updated, approval reset to pending", nil)
}

func (h *batchHandlerImpl) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(batchID) {
		response.BadRequest(w, "Invalid batch ID", nil)
		return
	}

	existed, err := h.batchService.DeleteBatch(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !existed {
		slog.Warn("Delete of nonexistent batch ignored", "batch_id", batchID)
	}

	response.SuccessWithMessage(w, "Batch deleted", nil)
}

func (h *batchHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	var filter wage.SummaryFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := wage.BatchStatus(s)
		switch status {
		case wage.BatchStatusPending, wage.BatchStatusApproved, wage.BatchStatusDeclined:
			filter.Status = &status
		default:
			response.BadRequest(w, "Invalid status filter", nil)
			return
		}
	}

	if s := r.URL.Query().Get("subject_type"); s != "" {
		subject := wage.SubjectType(s)
		switch subject {
		case wage.SubjectFinalWage, wage.SubjectTimesheetReview, wage.SubjectLeaveRequest:
			filter.SubjectType = &subject
		default:
			response.BadRequest(w, "Invalid subject_type filter", nil)
			return
		}
	}

	result, err := h.batchService.ListSummaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
