package leave

import (
	"context"
	"testing"
	"time"

	"github.com/pacificpay/payroll-backend-go/internal/domain/leave"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBatchRepo serves canned approved leave entries; only the method the
// balance service touches is implemented.
type stubBatchRepo struct {
	wage.BatchRepository
	entries []wage.LeaveEntry
}

func (s *stubBatchRepo) ListApprovedLeaveEntries(ctx context.Context, employeeID string, year int) ([]wage.LeaveEntry, error) {
	var out []wage.LeaveEntry
	for _, e := range s.entries {
		if e.EmployeeID == employeeID && e.StartDate.Year() == year {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubCarryOverRepo struct {
	days  map[leave.Category]decimal.Decimal
	saved map[leave.Category]decimal.Decimal
}

func (s *stubCarryOverRepo) GetCarryOver(ctx context.Context, employeeID string, year int) (map[leave.Category]decimal.Decimal, error) {
	if s.days == nil {
		return map[leave.Category]decimal.Decimal{}, nil
	}
	return s.days, nil
}

func (s *stubCarryOverRepo) SetCarryOver(ctx context.Context, employeeID string, category leave.Category, year int, days decimal.Decimal) error {
	if s.saved == nil {
		s.saved = make(map[leave.Category]decimal.Decimal)
	}
	s.saved[category] = days
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(emp, category string, start, end time.Time) wage.LeaveEntry {
	return wage.LeaveEntry{
		EmployeeID: emp,
		Category:   category,
		StartDate:  start,
		EndDate:    end,
	}
}

func balanceFor(t *testing.T, balances []leave.Balance, cat leave.Category) leave.Balance {
	t.Helper()
	for _, b := range balances {
		if b.Category == cat {
			return b
		}
	}
	t.Fatalf("no balance for category %s", cat)
	return leave.Balance{}
}

func TestDayCount_Inclusive(t *testing.T) {
	t.Parallel()

	assert.True(t, DayCount(date(2026, 3, 2), date(2026, 3, 2)).Equal(decimal.NewFromInt(1)),
		"same-day leave counts one day")
	assert.True(t, DayCount(date(2026, 3, 2), date(2026, 3, 6)).Equal(decimal.NewFromInt(5)))
}

func TestComputeBalances_NoLeaveReportsFullEntitlement(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(&stubBatchRepo{}, &stubCarryOverRepo{})

	balances, err := svc.ComputeBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)

	annual := balanceFor(t, balances, leave.CategoryAnnual)
	assert.True(t, annual.Remaining.Equal(decimal.NewFromInt(10)))
	assert.True(t, annual.DaysUsed.IsZero())
}

func TestComputeBalances_ExhaustedEntitlementFloorsAtZero(t *testing.T) {
	t.Parallel()

	// 10 days entitlement, one approved 10-day leave, plus one more day:
	// remaining reports zero, never negative.
	repo := &stubBatchRepo{entries: []wage.LeaveEntry{
		entry("emp-1", "annual", date(2026, 2, 2), date(2026, 2, 11)),
		entry("emp-1", "annual", date(2026, 6, 1), date(2026, 6, 1)),
	}}
	svc := NewBalanceService(repo, &stubCarryOverRepo{})

	balances, err := svc.ComputeBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)

	annual := balanceFor(t, balances, leave.CategoryAnnual)
	assert.True(t, annual.DaysUsed.Equal(decimal.NewFromInt(11)))
	assert.True(t, annual.Remaining.IsZero())
	assert.False(t, annual.Remaining.IsNegative())
}

func TestComputeBalances_CarryOverExtendsEntitlement(t *testing.T) {
	t.Parallel()

	repo := &stubBatchRepo{entries: []wage.LeaveEntry{
		entry("emp-1", "annual", date(2026, 2, 2), date(2026, 2, 13)), // 12 days
	}}
	carry := &stubCarryOverRepo{days: map[leave.Category]decimal.Decimal{
		leave.CategoryAnnual: decimal.NewFromInt(5),
	}}
	svc := NewBalanceService(repo, carry)

	balances, err := svc.ComputeBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)

	annual := balanceFor(t, balances, leave.CategoryAnnual)
	assert.True(t, annual.Entitlement.Equal(decimal.NewFromInt(15)))
	assert.True(t, annual.Remaining.Equal(decimal.NewFromInt(3)))
}

func TestComputeBalances_BucketedByStartYearOnly(t *testing.T) {
	t.Parallel()

	// A span starting in December and ending in January counts entirely
	// against the year it started.
	repo := &stubBatchRepo{entries: []wage.LeaveEntry{
		entry("emp-1", "annual", date(2026, 12, 28), date(2027, 1, 3)), // 7 days
	}}
	svc := NewBalanceService(repo, &stubCarryOverRepo{})

	balances2026, err := svc.ComputeBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)
	annual2026 := balanceFor(t, balances2026, leave.CategoryAnnual)
	assert.True(t, annual2026.DaysUsed.Equal(decimal.NewFromInt(7)))

	balances2027, err := svc.ComputeBalances(context.Background(), "emp-1", 2027)
	require.NoError(t, err)
	annual2027 := balanceFor(t, balances2027, leave.CategoryAnnual)
	assert.True(t, annual2027.DaysUsed.IsZero())
}

func TestComputeBalances_UnlimitedCategory(t *testing.T) {
	t.Parallel()

	repo := &stubBatchRepo{entries: []wage.LeaveEntry{
		entry("emp-1", "unpaid", date(2026, 3, 1), date(2026, 5, 30)),
	}}
	svc := NewBalanceService(repo, &stubCarryOverRepo{})

	balances, err := svc.ComputeBalances(context.Background(), "emp-1", 2026)
	require.NoError(t, err)

	unpaid := balanceFor(t, balances, leave.CategoryUnpaid)
	assert.True(t, unpaid.Unlimited)
	assert.True(t, unpaid.Remaining.IsZero(), "unbounded categories carry no numeric remaining")
	assert.False(t, unpaid.DaysUsed.IsZero(), "usage is still tracked")
}

func TestComputeBalances_RejectsAbsurdYear(t *testing.T) {
	t.Parallel()

	svc := NewBalanceService(&stubBatchRepo{}, &stubCarryOverRepo{})

	_, err := svc.ComputeBalances(context.Background(), "emp-1", 123)
	require.ErrorIs(t, err, leave.ErrInvalidYear)
}

func TestSetCarryOver_Validation(t *testing.T) {
	t.Parallel()

	carry := &stubCarryOverRepo{}
	svc := NewBalanceService(&stubBatchRepo{}, carry)
	ctx := context.Background()

	require.NoError(t, svc.SetCarryOver(ctx, "emp-1", "annual", 2026, decimal.NewFromInt(4)))
	assert.True(t, carry.saved["annual"].Equal(decimal.NewFromInt(4)))

	require.ErrorIs(t, svc.SetCarryOver(ctx, "emp-1", "holiday", 2026, decimal.NewFromInt(1)), leave.ErrInvalidCategory)
	require.ErrorIs(t, svc.SetCarryOver(ctx, "emp-1", "annual", 123, decimal.NewFromInt(1)), leave.ErrInvalidYear)
	require.ErrorIs(t, svc.SetCarryOver(ctx, "emp-1", "annual", 2026, decimal.NewFromInt(-1)), leave.ErrInvalidCarryOver)
}
