package wage

import "context"

// BatchService is the engine surface consumed by the HTTP layer.
type BatchService interface {
	CreateWageBatch(ctx context.Context, req CreateBatchRequest, initiator string) (CreateBatchResponse, error)
	CreateLeaveBatch(ctx context.Context, req CreateLeaveBatchRequest, initiator string) (CreateBatchResponse, error)
	GetBatchByToken(ctx context.Context, token string) (BatchResponse, error)
	Decide(ctx context.Context, req DecideRequest, decider string) (DecideResponse, error)
	EditBatchRecords(ctx context.Context, batchID string, req EditBatchRequest) error
	DeleteBatch(ctx context.Context, batchID string) (bool, error)
	ListSummaries(ctx context.Context, filter SummaryFilter) ([]BatchSummary, error)
	BackfillEmployeeName(ctx context.Context, employeeID string) (int64, error)
}
