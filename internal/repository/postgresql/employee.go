package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, full_name, hourly_rate, payment_method, bank_name, bank_account,
	fnpf_eligible, normal_hours_override, is_active, created_at, updated_at`

func scanPayProfile(row pgx.Row) (employee.PayProfile, error) {
	var p employee.PayProfile
	err := row.Scan(
		&p.ID, &p.FullName, &p.HourlyRate, &p.PaymentMethod, &p.BankName, &p.BankAccount,
		&p.FNPFEligible, &p.NormalHoursOverride, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *employeeRepository) Create(ctx context.Context, profile employee.PayProfile) (employee.PayProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, full_name, hourly_rate, payment_method, bank_name, bank_account,
			fnpf_eligible, normal_hours_override, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + employeeColumns

	created, err := scanPayProfile(q.QueryRow(ctx, query,
		profile.ID, profile.FullName, profile.HourlyRate, profile.PaymentMethod,
		profile.BankName, profile.BankAccount, profile.FNPFEligible,
		profile.NormalHoursOverride, profile.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_full_name") {
			return employee.PayProfile{}, employee.ErrNameExists
		}
		return employee.PayProfile{}, fmt.Errorf("failed to create employee: %w", MapStorageError(err))
	}

	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.PayProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	p, err := scanPayProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.PayProfile{}, employee.ErrEmployeeNotFound
		}
		return employee.PayProfile{}, fmt.Errorf("failed to get employee: %w", MapStorageError(err))
	}

	return p, nil
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.PayProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active ORDER BY full_name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", MapStorageError(err))
	}
	defer rows.Close()

	var profiles []employee.PayProfile
	for rows.Next() {
		p, err := scanPayProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, req employee.UpdatePayProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	i := 1

	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	if req.FullName != nil {
		add("full_name", *req.FullName)
	}
	if req.HourlyRate != nil {
		add("hourly_rate", *req.HourlyRate)
	}
	if req.PaymentMethod != nil {
		add("payment_method", *req.PaymentMethod)
	}
	if req.BankName != nil {
		add("bank_name", *req.BankName)
	}
	if req.BankAccount != nil {
		add("bank_account", *req.BankAccount)
	}
	if req.FNPFEligible != nil {
		add("fnpf_eligible", *req.FNPFEligible)
	}
	if req.NormalHoursOverride != nil {
		add("normal_hours_override", *req.NormalHoursOverride)
	}
	if req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, req.ID)
	query := fmt.Sprintf(
		"UPDATE employees SET %s, updated_at = NOW() WHERE id = $%d",
		strings.Join(sets, ", "), i,
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_full_name") {
			return employee.ErrNameExists
		}
		return fmt.Errorf("failed to update employee: %w", MapStorageError(err))
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}
