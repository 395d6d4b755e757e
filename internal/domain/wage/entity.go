package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubjectType enum: the kind of thing a batch gates approval for.
type SubjectType string

const (
	SubjectFinalWage       SubjectType = "final_wage"
	SubjectTimesheetReview SubjectType = "timesheet_review"
	SubjectLeaveRequest    SubjectType = "leave_request"
)

// BatchStatus enum
type BatchStatus string

const (
	BatchStatusPending  BatchStatus = "pending"
	BatchStatusApproved BatchStatus = "approved"
	BatchStatusDeclined BatchStatus = "declined"
)

// ApprovalBatch groups records under one lifecycle and one secret token.
// Status moves pending -> approved/declined exactly once; editing the
// records of a decided batch forces it back to pending.
type ApprovalBatch struct {
	ID          string
	Token       string
	SubjectType SubjectType
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      BatchStatus
	InitiatedBy string
	DecidedBy   *string
	DecidedAt   *time.Time
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WageRecord is one employee's computed pay for one period. EmployeeName,
// HourlyRate, NormalHoursThreshold and FNPFEligible are snapshots of the pay
// profile as it was at pay time: later profile changes never alter a stored
// record, and edits recompute with the snapshot, not the live profile. Only
// the explicit backfill operation rewrites EmployeeName.
type WageRecord struct {
	ID                   string
	BatchID              string
	EmployeeID           string
	EmployeeName         string
	HourlyRate           decimal.Decimal
	NormalHoursThreshold decimal.Decimal
	TotalHours           decimal.Decimal
	NormalHours          decimal.Decimal
	OvertimeHours        decimal.Decimal
	MealAllowance        decimal.Decimal
	FNPFDeduction        decimal.Decimal
	OtherDeduction       decimal.Decimal
	GrossPay             decimal.Decimal
	NetPay               decimal.Decimal
	FNPFEligible         bool
	PaymentMethod        string
	PeriodStart          time.Time
	PeriodEnd            time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// LeaveEntry is the single leave request owned by a leave_request batch.
type LeaveEntry struct {
	ID           string
	BatchID      string
	EmployeeID   string
	EmployeeName string
	Category     string
	StartDate    time.Time
	EndDate      time.Time
	Reason       *string
	CreatedAt    time.Time
}

// BatchSummary is a read-only per-batch rollup for reporting. It is already
// the wire shape, so it is tagged here rather than mapped through a DTO.
type BatchSummary struct {
	BatchID           string          `json:"batch_id"`
	SubjectType       SubjectType     `json:"subject_type"`
	Status            BatchStatus     `json:"status"`
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	RecordCount       int             `json:"record_count"`
	TotalNetPay       decimal.Decimal `json:"total_net_pay"`
	TotalCashPay      decimal.Decimal `json:"total_cash_pay"`
	TotalOnlinePay    decimal.Decimal `json:"total_online_pay"`
	TotalFNPFPay      decimal.Decimal `json:"total_fnpf_pay"`
	TotalNonFNPFPay   decimal.Decimal `json:"total_non_fnpf_pay"`
	TotalFNPFWithheld decimal.Decimal `json:"total_fnpf_withheld"`
}
