package wage

import (
	"time"

	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// CalcInput is the raw per-employee input to the pay calculator.
type CalcInput struct {
	TotalHours     decimal.Decimal `json:"total_hours"`
	MealAllowance  decimal.Decimal `json:"meal_allowance"`
	OtherDeduction decimal.Decimal `json:"other_deduction"`
}

func (in *CalcInput) Validate() error {
	var errs validator.ValidationErrors

	if in.TotalHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "must be non-negative"})
	}
	if in.MealAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "meal_allowance", Message: "must be non-negative"})
	}
	if in.OtherDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateBatchRecordInput struct {
	EmployeeID     string          `json:"employee_id"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	MealAllowance  decimal.Decimal `json:"meal_allowance"`
	OtherDeduction decimal.Decimal `json:"other_deduction"`
}

type CreateBatchRequest struct {
	SubjectType string                   `json:"subject_type"`
	PeriodStart string                   `json:"period_start"` // YYYY-MM-DD
	PeriodEnd   string                   `json:"period_end"`
	Records     []CreateBatchRecordInput `json:"records"`
	Note        *string                  `json:"note,omitempty"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	switch SubjectType(r.SubjectType) {
	case SubjectFinalWage, SubjectTimesheetReview, SubjectLeaveRequest:
	default:
		errs = append(errs, validator.ValidationError{Field: "subject_type", Message: "must be final_wage, timesheet_review or leave_request"})
	}

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if SubjectType(r.SubjectType) == SubjectFinalWage && len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{Field: "records", Message: "must contain at least one record"})
	}
	for _, rec := range r.Records {
		if validator.IsEmpty(rec.EmployeeID) {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "employee_id is required"})
			break
		}
		in := CalcInput{TotalHours: rec.TotalHours, MealAllowance: rec.MealAllowance, OtherDeduction: rec.OtherDeduction}
		if err := in.Validate(); err != nil {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "record " + rec.EmployeeID + ": " + err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveBatchRequest struct {
	EmployeeID string  `json:"employee_id"`
	Category   string  `json:"category"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateLeaveBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordEdit struct {
	RecordID       string          `json:"record_id"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	MealAllowance  decimal.Decimal `json:"meal_allowance"`
	OtherDeduction decimal.Decimal `json:"other_deduction"`
}

type EditBatchRequest struct {
	Edits []RecordEdit `json:"edits"`
}

func (r *EditBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Edits) == 0 {
		errs = append(errs, validator.ValidationError{Field: "edits", Message: "must contain at least one edit"})
	}
	for _, e := range r.Edits {
		if validator.IsEmpty(e.RecordID) {
			errs = append(errs, validator.ValidationError{Field: "edits", Message: "record_id is required"})
			break
		}
		in := CalcInput{TotalHours: e.TotalHours, MealAllowance: e.MealAllowance, OtherDeduction: e.OtherDeduction}
		if err := in.Validate(); err != nil {
			errs = append(errs, validator.ValidationError{Field: "edits", Message: "record " + e.RecordID + ": " + err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	Token   string `json:"token"`
	Verdict string `json:"verdict"` // "approved" or "declined"
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "is required"})
	}
	if !validator.IsInSlice(r.Verdict, []string{string(BatchStatusApproved), string(BatchStatusDeclined)}) {
		errs = append(errs, validator.ValidationError{Field: "verdict", Message: "must be 'approved' or 'declined'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateBatchResponse struct {
	BatchID     string `json:"batch_id"`
	ApprovalURL string `json:"approval_url"`
}

// ApprovalBatchResponse is the wire shape of a batch. The token is absent:
// it only ever travels inside the approval URL.
type ApprovalBatchResponse struct {
	ID          string      `json:"id"`
	SubjectType SubjectType `json:"subject_type"`
	PeriodStart time.Time   `json:"period_start"`
	PeriodEnd   time.Time   `json:"period_end"`
	Status      BatchStatus `json:"status"`
	InitiatedBy string      `json:"initiated_by"`
	DecidedBy   *string     `json:"decided_by,omitempty"`
	DecidedAt   *time.Time  `json:"decided_at,omitempty"`
	Note        *string     `json:"note,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type WageRecordResponse struct {
	ID                   string          `json:"id"`
	BatchID              string          `json:"batch_id"`
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
	NormalHoursThreshold decimal.Decimal `json:"normal_hours_threshold"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	NormalHours          decimal.Decimal `json:"normal_hours"`
	OvertimeHours        decimal.Decimal `json:"overtime_hours"`
	MealAllowance        decimal.Decimal `json:"meal_allowance"`
	FNPFDeduction        decimal.Decimal `json:"fnpf_deduction"`
	OtherDeduction       decimal.Decimal `json:"other_deduction"`
	GrossPay             decimal.Decimal `json:"gross_pay"`
	NetPay               decimal.Decimal `json:"net_pay"`
	FNPFEligible         bool            `json:"fnpf_eligible"`
	PaymentMethod        string          `json:"payment_method"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
}

type LeaveEntryResponse struct {
	ID           string    `json:"id"`
	BatchID      string    `json:"batch_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Category     string    `json:"category"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Reason       *string   `json:"reason,omitempty"`
}

type BatchResponse struct {
	Batch      ApprovalBatchResponse `json:"batch"`
	Records    []WageRecordResponse  `json:"records,omitempty"`
	LeaveEntry *LeaveEntryResponse   `json:"leave_entry,omitempty"`
}

// DecideResponse reports the batch state after a decision attempt.
// AlreadyDecided distinguishes "someone beat you to it" from a fresh
// decision; it is an expected race outcome, not a failure.
type DecideResponse struct {
	Batch          ApprovalBatchResponse `json:"batch"`
	AlreadyDecided bool                  `json:"already_decided"`
}

type SummaryFilter struct {
	Status      *BatchStatus
	SubjectType *SubjectType
}
