package batch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/database"
	"github.com/pacificpay/payroll-backend-go/internal/repository/postgresql"
	leaveService "github.com/pacificpay/payroll-backend-go/internal/service/leave"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

const testSchema = `
CREATE TABLE IF NOT EXISTS employees (
	id UUID PRIMARY KEY,
	full_name TEXT NOT NULL,
	hourly_rate NUMERIC(12,2) NOT NULL,
	payment_method TEXT NOT NULL,
	bank_name TEXT,
	bank_account TEXT,
	fnpf_eligible BOOLEAN NOT NULL DEFAULT FALSE,
	normal_hours_override NUMERIC(6,2),
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uk_employee_full_name UNIQUE (full_name)
);
CREATE TABLE IF NOT EXISTS approval_batches (
	id UUID PRIMARY KEY,
	token TEXT NOT NULL,
	subject_type TEXT NOT NULL,
	period_start DATE NOT NULL,
	period_end DATE NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	initiated_by TEXT NOT NULL,
	decided_by TEXT,
	decided_at TIMESTAMPTZ,
	note TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uk_approval_batches_token UNIQUE (token)
);
CREATE TABLE IF NOT EXISTS wage_records (
	id UUID PRIMARY KEY,
	batch_id UUID NOT NULL REFERENCES approval_batches(id),
	employee_id UUID NOT NULL,
	employee_name TEXT NOT NULL,
	hourly_rate NUMERIC(12,2) NOT NULL,
	normal_hours_threshold NUMERIC(6,2) NOT NULL,
	total_hours NUMERIC(8,2) NOT NULL,
	normal_hours NUMERIC(8,2) NOT NULL,
	overtime_hours NUMERIC(8,2) NOT NULL,
	meal_allowance NUMERIC(12,2) NOT NULL,
	fnpf_deduction NUMERIC(12,2) NOT NULL,
	other_deduction NUMERIC(12,2) NOT NULL,
	gross_pay NUMERIC(12,2) NOT NULL,
	net_pay NUMERIC(12,2) NOT NULL,
	fnpf_eligible BOOLEAN NOT NULL,
	payment_method TEXT NOT NULL,
	period_start DATE NOT NULL,
	period_end DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_wage_records_batch_id ON wage_records (batch_id);
CREATE TABLE IF NOT EXISTS leave_entries (
	id UUID PRIMARY KEY,
	batch_id UUID NOT NULL REFERENCES approval_batches(id),
	employee_id UUID NOT NULL,
	employee_name TEXT NOT NULL,
	category TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	reason TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS leave_carryovers (
	employee_id UUID NOT NULL,
	category TEXT NOT NULL,
	year INTEGER NOT NULL,
	days NUMERIC(6,2) NOT NULL DEFAULT 0,
	PRIMARY KEY (employee_id, category, year)
);
`

func batchTestInit(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database-backed tests")
	}

	testDBOnce.Do(func() {
		db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 10})
		if err != nil {
			panic("failed to connect to test database: " + err.Error())
		}
		for _, stmt := range strings.Split(testSchema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.Exec(context.Background(), stmt); err != nil {
				panic("failed to apply test schema: " + err.Error())
			}
		}
		testDB = db
	})

	return testDB
}

func newTestService(t *testing.T) (wage.BatchService, wage.BatchRepository, employee.EmployeeRepository, *database.DB) {
	db := batchTestInit(t)
	batchRepo := postgresql.NewBatchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	svc := NewBatchService(db, batchRepo, employeeRepo, nil, "http://localhost:8080", 10*time.Second)
	return svc, batchRepo, employeeRepo, db
}

func createTestEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, rate string, eligible bool) employee.PayProfile {
	t.Helper()

	profile := employee.PayProfile{
		ID:            uuid.NewString(),
		FullName:      fmt.Sprintf("Test Employee %s", uuid.NewString()[:8]),
		HourlyRate:    decimal.RequireFromString(rate),
		PaymentMethod: employee.PaymentMethodCash,
		FNPFEligible:  eligible,
		IsActive:      true,
	}

	created, err := repo.Create(ctx, profile)
	require.NoError(t, err)
	return created
}

func wageBatchRequest(employees []employee.PayProfile, hours string) wage.CreateBatchRequest {
	records := make([]wage.CreateBatchRecordInput, 0, len(employees))
	for _, e := range employees {
		records = append(records, wage.CreateBatchRecordInput{
			EmployeeID:     e.ID,
			TotalHours:     decimal.RequireFromString(hours),
			MealAllowance:  decimal.Zero,
			OtherDeduction: decimal.Zero,
		})
	}
	return wage.CreateBatchRequest{
		SubjectType: string(wage.SubjectFinalWage),
		PeriodStart: "2026-08-10",
		PeriodEnd:   "2026-08-16",
		Records:     records,
	}
}

func TestCreateWageBatch_AndFetchByToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, employeeRepo, _ := newTestService(t)

	emp := createTestEmployee(t, ctx, employeeRepo, "12.50", true)

	created, err := svc.CreateWageBatch(ctx, wageBatchRequest([]employee.PayProfile{emp}, "40"), "Payroll Officer")
	require.NoError(t, err)
	assert.NotEmpty(t, created.BatchID)
	require.Contains(t, created.ApprovalURL, "/approvals?token=")

	// The URL must not leak the batch id; the token is the only secret.
	assert.NotContains(t, created.ApprovalURL, created.BatchID)

	tok := created.ApprovalURL[strings.Index(created.ApprovalURL, "token=")+len("token="):]
	got, err := svc.GetBatchByToken(ctx, tok)
	require.NoError(t, err)

	assert.Equal(t, wage.BatchStatusPending, got.Batch.Status)
	assert.Equal(t, "Payroll Officer", got.Batch.InitiatedBy)
	require.Len(t, got.Records, 1)
	rec := got.Records[0]
	assert.Equal(t, emp.FullName, rec.EmployeeName)
	// 40h * $12.50, FNPF 8% of regular pay
	assert.True(t, rec.GrossPay.Equal(decimal.RequireFromString("500")), "got %s", rec.GrossPay)
	assert.True(t, rec.FNPFDeduction.Equal(decimal.RequireFromString("40")), "got %s", rec.FNPFDeduction)
	assert.True(t, rec.NetPay.Equal(decimal.RequireFromString("460")), "got %s", rec.NetPay)
}

func TestCreateWageBatch_EmptyRecordsRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	req := wage.CreateBatchRequest{
		SubjectType: string(wage.SubjectFinalWage),
		PeriodStart: "2026-08-10",
		PeriodEnd:   "2026-08-16",
	}

	_, err := svc.CreateWageBatch(ctx, req, "Payroll Officer")
	require.Error(t, err)
}

func TestGetBatchByToken_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetBatchByToken(ctx, "no-such-token")
	require.ErrorIs(t, err, wage.ErrBatchNotFound)
}

func tokenFromURL(t *testing.T, url string) string {
	t.Helper()
	i := strings.Index(url, "token=")
	require.GreaterOrEqual(t, i, 0)
	return url[i+len("token="):]
}

func TestDecide_AtMostOnceUnderConcurrency(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, batchRepo, employeeRepo, _ := newTestService(t)

	emp := createTestEmployee(t, ctx, employeeRepo, "10", false)
	created, err := svc.CreateWageBatch(ctx, wageBatchRequest([]employee.PayProfile{emp}, "38"), "Payroll Officer")
	require.NoError(t, err)
	tok := tokenFromURL(t, created.ApprovalURL)

	// Two racers with opposite verdicts; the row lock serializes them, so
	// exactly one mutation wins and the other observes the decided state.
	type outcome struct {
		resp wage.DecideResponse
		err  error
	}
	results := make([]outcome, 2)
	verdicts := []string{string(wage.BatchStatusApproved), string(wage.BatchStatusDeclined)}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.Decide(ctx, wage.DecideRequest{Token: tok, Verdict: verdicts[i]}, fmt.Sprintf("Approver %d", i))
			results[i] = outcome{resp: resp, err: err}
		}(i)
	}
	wg.Wait()

	require.NoError(t, results[0].err)
	require.NoError(t, results[1].err)

	winners := 0
	var winner wage.DecideResponse
	for _, r := range results {
		if !r.resp.AlreadyDecided {
			winners++
			winner = r.resp
		}
	}
	require.Equal(t, 1, winners, "exactly one decide call must win")

	stored, err := batchRepo.GetBatchByID(ctx, created.BatchID)
	require.NoError(t, err)
	assert.Equal(t, winner.Batch.Status, stored.Status)
	require.NotNil(t, stored.DecidedBy)
	assert.Equal(t, *winner.Batch.DecidedBy, *stored.DecidedBy)
	assert.NotNil(t, stored.DecidedAt)

	// The loser saw the winner's final state, not pending.
	for _, r := range results {
		if r.resp.AlreadyDecided {
			assert.Equal(t, stored.Status, r.resp.Batch.Status)
		}
	}
}

func TestDecide_RepeatedDecisionReturnsExistingState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, employeeRepo, _ := newTestService(t)

	emp := createTestEmployee(t, ctx, employeeRepo, "10", false)
	created, err := svc.CreateWageBatch(ctx, wageBatchRequest([]employee.PayProfile{emp}, "38"), "Payroll Officer")
	require.NoError(t, err)
	tok := tokenFromURL(t, created.ApprovalURL)

	first, err := svc.Decide(ctx, wage.DecideRequest{Token: tok, Verdict: string(wage.BatchStatusApproved)}, "Manager A")
	require.NoError(t, err)
	assert.False(t, first.AlreadyDecided)

	second, err := svc.Decide(ctx, wage.DecideRequest{Token: tok, Verdict: string(wage.BatchStatusDeclined)}, "Manager B")
	require.NoError(t, err)
	assert.True(t, second.AlreadyDecided)
	assert.Equal(t, wage.BatchStatusApproved, second.Batch.Status)
	require.NotNil(t, second.Batch.DecidedBy)
	assert.Equal(t, "Manager A", *second.Batch.DecidedBy)
}

func TestEditBatchRecords_ResetsApproval(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, batchRepo, employeeRepo, _ := newTestService(t)

	emp := createTestEmployee(t, ctx, employeeRepo, "10", true)
	created, err := svc.CreateWageBatch(ctx, wageBatchRequest([]employee.PayProfile{emp}, "40"), "Payroll Officer")
	require.NoError(t, err)
	tok := tokenFromURL(t, created.ApprovalURL)

	_, err = svc.Decide(ctx, wage.DecideRequest{Token: tok, Verdict: string(wage.BatchStatusApproved)}, "Manager")
	require.NoError(t, err)

	records, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	err = svc.EditBatchRecords(ctx, created.BatchID, wage.EditBatchRequest{
		Edits: []wage.RecordEdit{{
			RecordID:       records[0].ID,
			TotalHours:     decimal.RequireFromString("50"),
			MealAllowance:  decimal.RequireFromString("15"),
			OtherDeduction: decimal.Zero,
		}},
	})
	require.NoError(t, err)

	stored, err := batchRepo.GetBatchByID(ctx, created.BatchID)
	require.NoError(t, err)
	assert.Equal(t, wage.BatchStatusPending, stored.Status, "edit must force re-review")
	assert.Nil(t, stored.DecidedBy, "decision metadata must be cleared")
	assert.Nil(t, stored.DecidedAt)

	// Recomputed with the stored rate and eligibility: 45h*$10 + 5h*$15 + $15.
	edited, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	require.Len(t, edited, 1)
	assert.True(t, edited[0].GrossPay.Equal(decimal.RequireFromString("540")), "got %s", edited[0].GrossPay)
	assert.True(t, edited[0].FNPFDeduction.Equal(decimal.RequireFromString("36")), "got %s", edited[0].FNPFDeduction)
	assert.True(t, edited[0].OvertimeHours.Equal(decimal.RequireFromString("5")))
}

func TestEditBatchRecords_KeepsThresholdSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, batchRepo, employeeRepo, _ := newTestService(t)

	// Security-guard style profile: overtime only past 58 hours.
	override := decimal.RequireFromString("58")
	profile := employee.PayProfile{
		ID:                  uuid.NewString(),
		FullName:            fmt.Sprintf("Test Employee %s", uuid.NewString()[:8]),
		HourlyRate:          decimal.RequireFromString("10"),
		PaymentMethod:       employee.PaymentMethodCash,
		FNPFEligible:        true,
		NormalHoursOverride: &override,
		IsActive:            true,
	}
	emp, err := employeeRepo.Create(ctx, profile)
	require.NoError(t, err)

	created, err := svc.CreateWageBatch(ctx, wageBatchRequest([]employee.PayProfile{emp}, "50"), "Payroll Officer")
	require.NoError(t, err)

	records, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].NormalHoursThreshold.Equal(override))
	assert.True(t, records[0].OvertimeHours.IsZero(), "50h under a 58h threshold is all regular time")
	assert.True(t, records[0].NetPay.Equal(decimal.RequireFromString("460")), "got %s", records[0].NetPay)

	// Re-submitting identical hours must reproduce the identical pay; the
	// record's own threshold applies, not the 45h default.
	err = svc.EditBatchRecords(ctx, created.BatchID, wage.EditBatchRequest{
		Edits: []wage.RecordEdit{{
			RecordID:       records[0].ID,
			TotalHours:     decimal.RequireFromString("50"),
			MealAllowance:  decimal.Zero,
			OtherDeduction: decimal.Zero,
		}},
	})
	require.NoError(t, err)

	edited, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	require.Len(t, edited, 1)
	assert.True(t, edited[0].OvertimeHours.IsZero(), "got %s overtime", edited[0].OvertimeHours)
	assert.True(t, edited[0].NetPay.Equal(decimal.RequireFromString("460")), "got %s", edited[0].NetPay)

	// Hours past the snapshot threshold still earn overtime.
	err = svc.EditBatchRecords(ctx, created.BatchID, wage.EditBatchRequest{
		Edits: []wage.RecordEdit{{
			RecordID:       records[0].ID,
			TotalHours:     decimal.RequireFromString("60"),
			MealAllowance:  decimal.Zero,
			OtherDeduction: decimal.Zero,
		}},
	})
	require.NoError(t, err)

	edited, err = batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	assert.True(t, edited[0].OvertimeHours.Equal(decimal.RequireFromString("2")), "got %s", edited[0].OvertimeHours)
}

func TestEditBatchRecords_UnknownRecordRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, batchRepo, employeeRepo, _ := newTestService(t)

	emps := []employee.PayProfile{
		createTestEmployee(t, ctx, employeeRepo, "10", false),
		createTestEmployee(t, ctx, employeeRepo, "11", false),
	}
	created, err := svc.CreateWageBatch(ctx, wageBatchRequest(emps, "40"), "Payroll Officer")
	require.NoError(t, err)

	records, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	err = svc.EditBatchRecords(ctx, created.BatchID, wage.EditBatchRequest{
		Edits: []wage.RecordEdit{
			{RecordID: records[0].ID, TotalHours: decimal.RequireFromString("60")},
			{RecordID: uuid.NewString(), TotalHours: decimal.RequireFromString("60")},
		},
	})
	require.ErrorIs(t, err, wage.ErrRecordNotFound)

	// The first edit must not have landed.
	after, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	for _, rec := range after {
		assert.True(t, rec.TotalHours.Equal(decimal.RequireFromString("40")),
			"partial edit leaked: record %s has %s hours", rec.ID, rec.TotalHours)
	}
}

func TestDeleteBatch_CascadesAndIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, employeeRepo, db := newTestService(t)

	emps := []employee.PayProfile{
		createTestEmployee(t, ctx, employeeRepo, "10", false),
		createTestEmployee(t, ctx, employeeRepo, "11", true),
		createTestEmployee(t, ctx, employeeRepo, "12", false),
	}
	created, err := svc.CreateWageBatch(ctx, wageBatchRequest(emps, "42"), "Payroll Officer")
	require.NoError(t, err)

	existed, err := svc.DeleteBatch(ctx, created.BatchID)
	require.NoError(t, err)
	assert.True(t, existed)

	var orphans int
	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM wage_records WHERE batch_id = $1`, created.BatchID).Scan(&orphans)
	require.NoError(t, err)
	assert.Zero(t, orphans, "delete must leave no orphaned records")

	// Deleting again is a no-op, not an error.
	existed, err = svc.DeleteBatch(ctx, created.BatchID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestListSummaries_SumsExactly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, employeeRepo, _ := newTestService(t)

	// Fractional-cent inputs across 100 records; the summary total must
	// equal the record-level sum exactly.
	var emps []employee.PayProfile
	for i := 0; i < 5; i++ {
		emps = append(emps, createTestEmployee(t, ctx, employeeRepo, fmt.Sprintf("9.%02d", 13+i*7), i%2 == 0))
	}
	var records []wage.CreateBatchRecordInput
	for i := 0; i < 100; i++ {
		records = append(records, wage.CreateBatchRecordInput{
			EmployeeID:     emps[i%len(emps)].ID,
			TotalHours:     decimal.RequireFromString(fmt.Sprintf("4%d.25", i%10)),
			MealAllowance:  decimal.RequireFromString("3.33"),
			OtherDeduction: decimal.RequireFromString("0.07"),
		})
	}
	req := wage.CreateBatchRequest{
		SubjectType: string(wage.SubjectFinalWage),
		PeriodStart: "2026-07-06",
		PeriodEnd:   "2026-07-12",
		Records:     records,
	}

	created, err := svc.CreateWageBatch(ctx, req, "Payroll Officer")
	require.NoError(t, err)
	tok := tokenFromURL(t, created.ApprovalURL)

	got, err := svc.GetBatchByToken(ctx, tok)
	require.NoError(t, err)
	require.Len(t, got.Records, 100)

	expected := decimal.Zero
	for _, rec := range got.Records {
		expected = expected.Add(rec.NetPay)
	}

	status := wage.BatchStatusPending
	subject := wage.SubjectFinalWage
	summaries, err := svc.ListSummaries(ctx, wage.SummaryFilter{Status: &status, SubjectType: &subject})
	require.NoError(t, err)

	var found bool
	for _, s := range summaries {
		if s.BatchID == created.BatchID {
			found = true
			assert.True(t, s.TotalNetPay.Equal(expected),
				"summary total %s != record sum %s", s.TotalNetPay, expected)
			assert.True(t, s.TotalCashPay.Equal(expected), "all test employees are paid cash")
			assert.Equal(t, 100, s.RecordCount)
		}
	}
	assert.True(t, found, "summary for the created batch not returned")
}

func TestBackfillEmployeeName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, batchRepo, employeeRepo, _ := newTestService(t)

	emp := createTestEmployee(t, ctx, employeeRepo, "10", false)
	created, err := svc.CreateWageBatch(ctx, wageBatchRequest([]employee.PayProfile{emp}, "40"), "Payroll Officer")
	require.NoError(t, err)

	newName := fmt.Sprintf("Renamed Employee %s", uuid.NewString()[:8])
	err = employeeRepo.Update(ctx, employee.UpdatePayProfileRequest{ID: emp.ID, FullName: &newName})
	require.NoError(t, err)

	// The rename alone must not touch historical records.
	records, err := batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, emp.FullName, records[0].EmployeeName)

	updated, err := svc.BackfillEmployeeName(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	records, err = batchRepo.GetRecordsByBatchID(ctx, created.BatchID)
	require.NoError(t, err)
	assert.Equal(t, newName, records[0].EmployeeName)
}

func TestLeaveBatch_ApprovalFeedsBalances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, batchRepo, employeeRepo, db := newTestService(t)

	emp := createTestEmployee(t, ctx, employeeRepo, "10", false)

	created, err := svc.CreateLeaveBatch(ctx, wage.CreateLeaveBatchRequest{
		EmployeeID: emp.ID,
		Category:   "annual",
		StartDate:  "2026-04-06",
		EndDate:    "2026-04-10",
	}, "Payroll Officer")
	require.NoError(t, err)
	tok := tokenFromURL(t, created.ApprovalURL)

	got, err := svc.GetBatchByToken(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, got.LeaveEntry)
	assert.Equal(t, emp.FullName, got.LeaveEntry.EmployeeName)

	// Pending leave does not consume balance.
	balanceSvc := leaveService.NewBalanceService(batchRepo, postgresql.NewCarryOverRepository(db))
	balances, err := balanceSvc.ComputeBalances(ctx, emp.ID, 2026)
	require.NoError(t, err)
	for _, b := range balances {
		assert.True(t, b.DaysUsed.IsZero())
	}

	_, err = svc.Decide(ctx, wage.DecideRequest{Token: tok, Verdict: string(wage.BatchStatusApproved)}, "Manager")
	require.NoError(t, err)

	balances, err = balanceSvc.ComputeBalances(ctx, emp.ID, 2026)
	require.NoError(t, err)
	for _, b := range balances {
		if b.Category == "annual" {
			assert.True(t, b.DaysUsed.Equal(decimal.NewFromInt(5)), "got %s", b.DaysUsed)
			assert.True(t, b.Remaining.Equal(decimal.NewFromInt(5)))
		}
	}
}
