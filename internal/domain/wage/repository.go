package wage

import (
	"context"
	"time"
)

// BatchRepository owns persistence for approval batches and their records.
// Multi-row mutations are expected to run inside a transaction injected via
// context (see repository/postgresql.WithTransaction); a batch and its
// records always change state together.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch ApprovalBatch) (ApprovalBatch, error)
	CreateRecords(ctx context.Context, records []WageRecord) error
	CreateLeaveEntry(ctx context.Context, entry LeaveEntry) (LeaveEntry, error)

	GetBatchByID(ctx context.Context, id string) (ApprovalBatch, error)
	GetBatchByToken(ctx context.Context, token string) (ApprovalBatch, error)
	// GetBatchByTokenForUpdate locks the batch row until the surrounding
	// transaction commits; concurrent callers serialize here.
	GetBatchByTokenForUpdate(ctx context.Context, token string) (ApprovalBatch, error)
	GetBatchByIDForUpdate(ctx context.Context, id string) (ApprovalBatch, error)

	GetRecordsByBatchID(ctx context.Context, batchID string) ([]WageRecord, error)
	GetLeaveEntryByBatchID(ctx context.Context, batchID string) (LeaveEntry, error)

	UpdateRecordComputed(ctx context.Context, record WageRecord) error
	SetBatchStatus(ctx context.Context, batchID string, status BatchStatus, decidedBy *string, decidedAt *time.Time) error

	DeleteRecordsByBatchID(ctx context.Context, batchID string) (int64, error)
	DeleteBatch(ctx context.Context, batchID string) (bool, error)

	BackfillEmployeeName(ctx context.Context, employeeID, name string) (int64, error)

	ListSummaries(ctx context.Context, filter SummaryFilter) ([]BatchSummary, error)
	ListApprovedLeaveEntries(ctx context.Context, employeeID string, year int) ([]LeaveEntry, error)
}
