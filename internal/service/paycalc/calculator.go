package paycalc

import (
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// Statutory parameters. The FNPF contribution is withheld on regular pay
// only, never on overtime pay or allowances.
var (
	DefaultNormalHoursThreshold = decimal.NewFromInt(45)
	OvertimeMultiplier          = decimal.RequireFromString("1.5")
	FNPFRate                    = decimal.RequireFromString("0.08")
)

// Computed carries the calculator output for one employee over one period.
// Threshold reports the normal-hours threshold actually applied so callers
// can snapshot it alongside the result. All monetary fields are rounded to
// cents exactly once, here, so that summing records across a batch stays
// exact.
type Computed struct {
	Threshold     decimal.Decimal
	NormalHours   decimal.Decimal
	OvertimeHours decimal.Decimal
	GrossPay      decimal.Decimal
	FNPFDeduction decimal.Decimal
	NetPay        decimal.Decimal
}

// Calculate turns raw hours and allowances plus an employee's pay profile
// into a computed wage. Pure and deterministic: identical inputs always
// yield identical output.
func Calculate(profile employee.PayProfile, in wage.CalcInput) (Computed, error) {
	if err := in.Validate(); err != nil {
		return Computed{}, err
	}

	threshold := DefaultNormalHoursThreshold
	if profile.NormalHoursOverride != nil {
		threshold = *profile.NormalHoursOverride
	}

	normalHours := decimal.Min(in.TotalHours, threshold)
	overtimeHours := decimal.Max(decimal.Zero, in.TotalHours.Sub(threshold))

	regularPay := profile.HourlyRate.Mul(normalHours)
	overtimePay := profile.HourlyRate.Mul(overtimeHours).Mul(OvertimeMultiplier)
	grossPay := regularPay.Add(overtimePay).Add(in.MealAllowance).Round(2)

	fnpf := decimal.Zero
	if profile.FNPFEligible {
		fnpf = regularPay.Mul(FNPFRate).Round(2)
	}

	netPay := grossPay.Sub(fnpf).Sub(in.OtherDeduction)
	if netPay.IsNegative() {
		netPay = decimal.Zero
	}
	netPay = netPay.Round(2)

	return Computed{
		Threshold:     threshold,
		NormalHours:   normalHours,
		OvertimeHours: overtimeHours,
		GrossPay:      grossPay,
		FNPFDeduction: fnpf,
		NetPay:        netPay,
	}, nil
}
