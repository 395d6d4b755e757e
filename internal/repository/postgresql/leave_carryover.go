package postgresql

import (
	"context"
	"fmt"

	"github.com/pacificpay/payroll-backend-go/internal/domain/leave"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type carryOverRepository struct {
	db *database.DB
}

func NewCarryOverRepository(db *database.DB) leave.CarryOverRepository {
	return &carryOverRepository{db: db}
}

func (r *carryOverRepository) GetCarryOver(ctx context.Context, employeeID string, year int) (map[leave.Category]decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT category, days
		FROM leave_carryovers
		WHERE employee_id = $1 AND year = $2
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave carry-over: %w", MapStorageError(err))
	}
	defer rows.Close()

	result := make(map[leave.Category]decimal.Decimal)
	for rows.Next() {
		var category leave.Category
		var days decimal.Decimal
		if err := rows.Scan(&category, &days); err != nil {
			return nil, fmt.Errorf("failed to scan leave carry-over: %w", err)
		}
		result[category] = days
	}

	return result, rows.Err()
}

func (r *carryOverRepository) SetCarryOver(ctx context.Context, employeeID string, category leave.Category, year int, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_carryovers (employee_id, category, year, days)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, category, year) DO UPDATE SET days = EXCLUDED.days
	`

	if _, err := q.Exec(ctx, query, employeeID, category, year, days); err != nil {
		return fmt.Errorf("failed to set leave carry-over: %w", MapStorageError(err))
	}

	return nil
}
