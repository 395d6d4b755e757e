package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, profile PayProfile) (PayProfile, error)
	GetByID(ctx context.Context, id string) (PayProfile, error)
	GetActive(ctx context.Context) ([]PayProfile, error)
	Update(ctx context.Context, req UpdatePayProfileRequest) error
}
