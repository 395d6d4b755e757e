package leave

import (
	"context"
	"time"

	"github.com/pacificpay/payroll-backend-go/internal/domain/leave"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// BalanceService derives leave balances on demand from approved leave
// batches. It never writes; balances are not persisted anywhere.
type BalanceService struct {
	batchRepo     wage.BatchRepository
	carryOverRepo leave.CarryOverRepository
	entitlements  []leave.Entitlement
}

func NewBalanceService(batchRepo wage.BatchRepository, carryOverRepo leave.CarryOverRepository) *BalanceService {
	return &BalanceService{
		batchRepo:     batchRepo,
		carryOverRepo: carryOverRepo,
		entitlements:  leave.DefaultEntitlements,
	}
}

// DayCount returns the inclusive day count of a leave span.
func DayCount(start, end time.Time) decimal.Decimal {
	days := int64(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(days)
}

// SetCarryOver stores the days carried into a year for one category.
// Subsequent ComputeBalances calls fold it into the entitlement.
func (s *BalanceService) SetCarryOver(ctx context.Context, employeeID, category string, year int, days decimal.Decimal) error {
	if year < 1900 || year > 2200 {
		return leave.ErrInvalidYear
	}
	if !leave.IsValidCategory(category) {
		return leave.ErrInvalidCategory
	}
	if days.IsNegative() {
		return leave.ErrInvalidCarryOver
	}

	return s.carryOverRepo.SetCarryOver(ctx, employeeID, leave.Category(category), year, days)
}

// ComputeBalances reports one balance per category for the employee and
// year. Leave spans are bucketed by their start date's year only; a span
// crossing into the next year counts entirely against the year it started.
// With no approved leave at all, every category reports its full
// entitlement.
func (s *BalanceService) ComputeBalances(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	if year < 1900 || year > 2200 {
		return nil, leave.ErrInvalidYear
	}

	entries, err := s.batchRepo.ListApprovedLeaveEntries(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	carryOver, err := s.carryOverRepo.GetCarryOver(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	used := make(map[leave.Category]decimal.Decimal)
	for _, e := range entries {
		cat := leave.Category(e.Category)
		used[cat] = used[cat].Add(DayCount(e.StartDate, e.EndDate))
	}

	balances := make([]leave.Balance, 0, len(s.entitlements))
	for _, ent := range s.entitlements {
		carry := carryOver[ent.Category]
		entitlement := decimal.NewFromInt(int64(ent.BaseDays)).Add(carry)

		remaining := entitlement.Sub(used[ent.Category])
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		if ent.Unlimited {
			// Unbounded categories have no numeric remaining balance.
			entitlement = decimal.Zero
			remaining = decimal.Zero
		}

		balances = append(balances, leave.Balance{
			Category:    ent.Category,
			Year:        year,
			BaseDays:    ent.BaseDays,
			CarriedOver: carry,
			Entitlement: entitlement,
			DaysUsed:    used[ent.Category],
			Remaining:   remaining,
			Unlimited:   ent.Unlimited,
		})
	}

	return balances, nil
}
