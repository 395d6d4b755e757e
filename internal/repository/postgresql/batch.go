package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/database"
)

type batchRepository struct {
	db *database.DB
}

func NewBatchRepository(db *database.DB) wage.BatchRepository {
	return &batchRepository{db: db}
}

const batchColumns = `id, token, subject_type, period_start, period_end, status,
	initiated_by, decided_by, decided_at, note, created_at, updated_at`

func scanBatch(row pgx.Row) (wage.ApprovalBatch, error) {
	var b wage.ApprovalBatch
	err := row.Scan(
		&b.ID, &b.Token, &b.SubjectType, &b.PeriodStart, &b.PeriodEnd, &b.Status,
		&b.InitiatedBy, &b.DecidedBy, &b.DecidedAt, &b.Note, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *batchRepository) CreateBatch(ctx context.Context, batch wage.ApprovalBatch) (wage.ApprovalBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approval_batches (id, token, subject_type, period_start, period_end, status, initiated_by, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + batchColumns

	created, err := scanBatch(q.QueryRow(ctx, query,
		batch.ID, batch.Token, batch.SubjectType, batch.PeriodStart, batch.PeriodEnd,
		batch.Status, batch.InitiatedBy, batch.Note,
	))
	if err != nil {
		return wage.ApprovalBatch{}, fmt.Errorf("failed to create approval batch: %w", MapStorageError(err))
	}

	return created, nil
}

func (r *batchRepository) CreateRecords(ctx context.Context, records []wage.WageRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_records (
			id, batch_id, employee_id, employee_name, hourly_rate,
			normal_hours_threshold, total_hours, normal_hours, overtime_hours,
			meal_allowance, fnpf_deduction, other_deduction, gross_pay, net_pay,
			fnpf_eligible, payment_method, period_start, period_end
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	for _, rec := range records {
		_, err := q.Exec(ctx, query,
			rec.ID, rec.BatchID, rec.EmployeeID, rec.EmployeeName, rec.HourlyRate,
			rec.NormalHoursThreshold, rec.TotalHours, rec.NormalHours, rec.OvertimeHours,
			rec.MealAllowance, rec.FNPFDeduction, rec.OtherDeduction, rec.GrossPay, rec.NetPay,
			rec.FNPFEligible, rec.PaymentMethod, rec.PeriodStart, rec.PeriodEnd,
		)
		if err != nil {
			return fmt.Errorf("failed to create wage record for employee %s: %w", rec.EmployeeID, MapStorageError(err))
		}
	}

	return nil
}

func (r *batchRepository) CreateLeaveEntry(ctx context.Context, entry wage.LeaveEntry) (wage.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_entries (id, batch_id, employee_id, employee_name, category, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, batch_id, employee_id, employee_name, category, start_date, end_date, reason, created_at
	`

	var e wage.LeaveEntry
	err := q.QueryRow(ctx, query,
		entry.ID, entry.BatchID, entry.EmployeeID, entry.EmployeeName,
		entry.Category, entry.StartDate, entry.EndDate, entry.Reason,
	).Scan(
		&e.ID, &e.BatchID, &e.EmployeeID, &e.EmployeeName,
		&e.Category, &e.StartDate, &e.EndDate, &e.Reason, &e.CreatedAt,
	)
	if err != nil {
		return wage.LeaveEntry{}, fmt.Errorf("failed to create leave entry: %w", MapStorageError(err))
	}

	return e, nil
}

func (r *batchRepository) GetBatchByID(ctx context.Context, id string) (wage.ApprovalBatch, error) {
	return r.getBatch(ctx, "id = $1", id, false)
}

func (r *batchRepository) GetBatchByToken(ctx context.Context, tok string) (wage.ApprovalBatch, error) {
	return r.getBatch(ctx, "token = $1", tok, false)
}

func (r *batchRepository) GetBatchByTokenForUpdate(ctx context.Context, tok string) (wage.ApprovalBatch, error) {
	return r.getBatch(ctx, "token = $1", tok, true)
}

func (r *batchRepository) GetBatchByIDForUpdate(ctx context.Context, id string) (wage.ApprovalBatch, error) {
	return r.getBatch(ctx, "id = $1", id, true)
}

func (r *batchRepository) getBatch(ctx context.Context, where, arg string, forUpdate bool) (wage.ApprovalBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM approval_batches WHERE ` + where
	if forUpdate {
		query += ` FOR UPDATE`
	}

	b, err := scanBatch(q.QueryRow(ctx, query, arg))
	if err != nil {
		if err == pgx.ErrNoRows {
			return wage.ApprovalBatch{}, wage.ErrBatchNotFound
		}
		return wage.ApprovalBatch{}, fmt.Errorf("failed to get approval batch: %w", MapStorageError(err))
	}

	return b, nil
}

func (r *batchRepository) GetRecordsByBatchID(ctx context.Context, batchID string) ([]wage.WageRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, employee_id, employee_name, hourly_rate,
			   normal_hours_threshold, total_hours, normal_hours, overtime_hours,
			   meal_allowance, fnpf_deduction, other_deduction, gross_pay, net_pay,
			   fnpf_eligible, payment_method, period_start, period_end,
			   created_at, updated_at
		FROM wage_records
		WHERE batch_id = $1
		ORDER BY employee_name ASC
	`

	rows, err := q.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage records: %w", MapStorageError(err))
	}
	defer rows.Close()

	var records []wage.WageRecord
	for rows.Next() {
		var rec wage.WageRecord
		err := rows.Scan(
			&rec.ID, &rec.BatchID, &rec.EmployeeID, &rec.EmployeeName, &rec.HourlyRate,
			&rec.NormalHoursThreshold, &rec.TotalHours, &rec.NormalHours, &rec.OvertimeHours,
			&rec.MealAllowance, &rec.FNPFDeduction, &rec.OtherDeduction, &rec.GrossPay, &rec.NetPay,
			&rec.FNPFEligible, &rec.PaymentMethod, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *batchRepository) GetLeaveEntryByBatchID(ctx context.Context, batchID string) (wage.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, batch_id, employee_id, employee_name, category, start_date, end_date, reason, created_at
		FROM leave_entries
		WHERE batch_id = $1
	`

	var e wage.LeaveEntry
	err := q.QueryRow(ctx, query, batchID).Scan(
		&e.ID, &e.BatchID, &e.EmployeeID, &e.EmployeeName,
		&e.Category, &e.StartDate, &e.EndDate, &e.Reason, &e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return wage.LeaveEntry{}, wage.ErrRecordNotFound
		}
		return wage.LeaveEntry{}, fmt.Errorf("failed to get leave entry: %w", MapStorageError(err))
	}

	return e, nil
}

func (r *batchRepository) UpdateRecordComputed(ctx context.Context, record wage.WageRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wage_records
		SET total_hours = $1, normal_hours = $2, overtime_hours = $3,
			meal_allowance = $4, fnpf_deduction = $5, other_deduction = $6,
			gross_pay = $7, net_pay = $8, updated_at = NOW()
		WHERE id = $9 AND batch_id = $10
	`

	tag, err := q.Exec(ctx, query,
		record.TotalHours, record.NormalHours, record.OvertimeHours,
		record.MealAllowance, record.FNPFDeduction, record.OtherDeduction,
		record.GrossPay, record.NetPay,
		record.ID, record.BatchID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wage record %s: %w", record.ID, MapStorageError(err))
	}
	if tag.RowsAffected() == 0 {
		return wage.ErrRecordNotFound
	}

	return nil
}

func (r *batchRepository) SetBatchStatus(ctx context.Context, batchID string, status wage.BatchStatus, decidedBy *string, decidedAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_batches
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, status, decidedBy, decidedAt, batchID)
	if err != nil {
		return fmt.Errorf("failed to set batch status: %w", MapStorageError(err))
	}
	if tag.RowsAffected() == 0 {
		return wage.ErrBatchNotFound
	}

	return nil
}

func (r *batchRepository) DeleteRecordsByBatchID(ctx context.Context, batchID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM wage_records WHERE batch_id = $1`, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete wage records: %w", MapStorageError(err))
	}
	deleted := tag.RowsAffected()

	tag, err = q.Exec(ctx, `DELETE FROM leave_entries WHERE batch_id = $1`, batchID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leave entries: %w", MapStorageError(err))
	}

	return deleted + tag.RowsAffected(), nil
}

func (r *batchRepository) DeleteBatch(ctx context.Context, batchID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM approval_batches WHERE id = $1`, batchID)
	if err != nil {
		return false, fmt.Errorf("failed to delete approval batch: %w", MapStorageError(err))
	}

	return tag.RowsAffected() > 0, nil
}

func (r *batchRepository) BackfillEmployeeName(ctx context.Context, employeeID, name string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE wage_records
		SET employee_name = $1, updated_at = NOW()
		WHERE employee_id = $2 AND employee_name <> $1
	`

	tag, err := q.Exec(ctx, query, name, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill employee name: %w", MapStorageError(err))
	}

	return tag.RowsAffected(), nil
}

func (r *batchRepository) ListSummaries(ctx context.Context, filter wage.SummaryFilter) ([]wage.BatchSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.id, b.subject_type, b.status, b.period_start, b.period_end,
			   COUNT(w.id),
			   COALESCE(SUM(w.net_pay), 0),
			   COALESCE(SUM(w.net_pay) FILTER (WHERE w.payment_method = 'cash'), 0),
			   COALESCE(SUM(w.net_pay) FILTER (WHERE w.payment_method = 'online'), 0),
			   COALESCE(SUM(w.net_pay) FILTER (WHERE w.fnpf_eligible), 0),
			   COALESCE(SUM(w.net_pay) FILTER (WHERE NOT w.fnpf_eligible), 0),
			   COALESCE(SUM(w.fnpf_deduction), 0)
		FROM approval_batches b
		LEFT JOIN wage_records w ON w.batch_id = b.id
		WHERE ($1::text IS NULL OR b.status = $1)
		  AND ($2::text IS NULL OR b.subject_type = $2)
		GROUP BY b.id, b.subject_type, b.status, b.period_start, b.period_end
		ORDER BY b.period_start DESC, b.id
	`

	var status, subject *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	if filter.SubjectType != nil {
		s := string(*filter.SubjectType)
		subject = &s
	}

	rows, err := q.Query(ctx, query, status, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch summaries: %w", MapStorageError(err))
	}
	defer rows.Close()

	var summaries []wage.BatchSummary
	for rows.Next() {
		var s wage.BatchSummary
		err := rows.Scan(
			&s.BatchID, &s.SubjectType, &s.Status, &s.PeriodStart, &s.PeriodEnd,
			&s.RecordCount, &s.TotalNetPay, &s.TotalCashPay, &s.TotalOnlinePay,
			&s.TotalFNPFPay, &s.TotalNonFNPFPay, &s.TotalFNPFWithheld,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *batchRepository) ListApprovedLeaveEntries(ctx context.Context, employeeID string, year int) ([]wage.LeaveEntry, error) {
	q := GetQuerier(ctx, r.db)

	// Leave is bucketed by its start date's year only; a span crossing into
	// the next year counts entirely against the year it started.
	query := `
		SELECT e.id, e.batch_id, e.employee_id, e.employee_name, e.category,
			   e.start_date, e.end_date, e.reason, e.created_at
		FROM leave_entries e
		INNER JOIN approval_batches b ON e.batch_id = b.id
		WHERE e.employee_id = $1
		  AND b.status = 'approved'
		  AND EXTRACT(YEAR FROM e.start_date) = $2
		ORDER BY e.start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave entries: %w", MapStorageError(err))
	}
	defer rows.Close()

	var entries []wage.LeaveEntry
	for rows.Next() {
		var e wage.LeaveEntry
		err := rows.Scan(
			&e.ID, &e.BatchID, &e.EmployeeID, &e.EmployeeName, &e.Category,
			&e.StartDate, &e.EndDate, &e.Reason, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
