package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// CarryOverRepository reads stored carry-over days per employee, category and
// year. Missing rows mean zero carry-over.
type CarryOverRepository interface {
	GetCarryOver(ctx context.Context, employeeID string, year int) (map[Category]decimal.Decimal, error)
	SetCarryOver(ctx context.Context, employeeID string, category Category, year int, days decimal.Decimal) error
}
