package paycalc

import (
	"testing"

	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProfile(rate string, eligible bool) employee.PayProfile {
	return employee.PayProfile{
		ID:            "emp-1",
		FullName:      "Test Employee",
		HourlyRate:    dec(rate),
		PaymentMethod: employee.PaymentMethodCash,
		FNPFEligible:  eligible,
		IsActive:      true,
	}
}

func TestCalculate_NoOvertimeAtThreshold(t *testing.T) {
	t.Parallel()

	in := wage.CalcInput{
		TotalHours:     DefaultNormalHoursThreshold,
		MealAllowance:  decimal.Zero,
		OtherDeduction: decimal.Zero,
	}

	got, err := Calculate(testProfile("10", false), in)
	require.NoError(t, err)

	assert.True(t, got.OvertimeHours.IsZero(), "overtime at exactly the threshold must be zero")
	assert.True(t, got.NormalHours.Equal(DefaultNormalHoursThreshold))
	assert.True(t, got.GrossPay.Equal(dec("450")), "gross = 45h * $10, got %s", got.GrossPay)
}

func TestCalculate_OvertimePaidAtMultiplier(t *testing.T) {
	t.Parallel()

	in := wage.CalcInput{
		TotalHours:     DefaultNormalHoursThreshold.Add(dec("5")),
		MealAllowance:  decimal.Zero,
		OtherDeduction: decimal.Zero,
	}

	got, err := Calculate(testProfile("10", false), in)
	require.NoError(t, err)

	assert.True(t, got.OvertimeHours.Equal(dec("5")))
	// 45h * $10 + 5h * $10 * 1.5
	assert.True(t, got.GrossPay.Equal(dec("525")), "got %s", got.GrossPay)
}

func TestCalculate_ThresholdOverride(t *testing.T) {
	t.Parallel()

	override := dec("58")
	profile := testProfile("10", false)
	profile.NormalHoursOverride = &override

	in := wage.CalcInput{TotalHours: dec("60")}

	got, err := Calculate(profile, in)
	require.NoError(t, err)

	assert.True(t, got.NormalHours.Equal(dec("58")))
	assert.True(t, got.OvertimeHours.Equal(dec("2")))
}

func TestCalculate_FNPFOnRegularPayOnly(t *testing.T) {
	t.Parallel()

	// rate=$10, 40 normal + 10 overtime, meal=$20: the deduction base is
	// the $400 regular pay, never overtime pay or the allowance.
	override := dec("40")
	profile := testProfile("10", true)
	profile.NormalHoursOverride = &override

	in := wage.CalcInput{
		TotalHours:    dec("50"),
		MealAllowance: dec("20"),
	}

	got, err := Calculate(profile, in)
	require.NoError(t, err)

	assert.True(t, got.FNPFDeduction.Equal(dec("32")), "8%% of $400 regular pay, got %s", got.FNPFDeduction)
	// gross = 400 + 150 + 20
	assert.True(t, got.GrossPay.Equal(dec("570")))
	assert.True(t, got.NetPay.Equal(dec("538")))
}

func TestCalculate_IneligibleNoFNPF(t *testing.T) {
	t.Parallel()

	got, err := Calculate(testProfile("10", false), wage.CalcInput{TotalHours: dec("40")})
	require.NoError(t, err)

	assert.True(t, got.FNPFDeduction.IsZero())
}

func TestCalculate_NetPayFlooredAtZero(t *testing.T) {
	t.Parallel()

	in := wage.CalcInput{
		TotalHours:     dec("10"),
		OtherDeduction: dec("5000"),
	}

	got, err := Calculate(testProfile("10", true), in)
	require.NoError(t, err)

	assert.True(t, got.NetPay.IsZero(), "net pay must clamp to zero, got %s", got.NetPay)
	assert.False(t, got.NetPay.IsNegative())
}

func TestCalculate_Deterministic(t *testing.T) {
	t.Parallel()

	profile := testProfile("13.37", true)
	in := wage.CalcInput{
		TotalHours:     dec("47.25"),
		MealAllowance:  dec("12.5"),
		OtherDeduction: dec("3.33"),
	}

	first, err := Calculate(profile, in)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		again, err := Calculate(profile, in)
		require.NoError(t, err)
		assert.Equal(t, first, again, "identical inputs must yield identical output")
	}
}

func TestCalculate_SummingIsExact(t *testing.T) {
	t.Parallel()

	// Fractional cents in the inputs must not accumulate drift: the sum of
	// 1000 identical records is exactly 1000x one record.
	profile := testProfile("7.77", true)
	in := wage.CalcInput{
		TotalHours:     dec("46.5"),
		MealAllowance:  dec("4.99"),
		OtherDeduction: dec("0.01"),
	}

	one, err := Calculate(profile, in)
	require.NoError(t, err)

	sum := decimal.Zero
	for i := 0; i < 1000; i++ {
		got, err := Calculate(profile, in)
		require.NoError(t, err)
		sum = sum.Add(got.NetPay)
	}

	assert.True(t, sum.Equal(one.NetPay.Mul(dec("1000"))),
		"sum %s is not an exact multiple of %s", sum, one.NetPay)
}

func TestCalculate_RejectsNegativeInputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   wage.CalcInput
	}{
		{"negative hours", wage.CalcInput{TotalHours: dec("-1")}},
		{"negative meal", wage.CalcInput{TotalHours: dec("40"), MealAllowance: dec("-1")}},
		{"negative deduction", wage.CalcInput{TotalHours: dec("40"), OtherDeduction: dec("-1")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(testProfile("10", true), tc.in)
			require.Error(t, err)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestCalculate_MoneyRoundedToCents(t *testing.T) {
	t.Parallel()

	// 9.99 * 37.5 = 374.625; stored money must be rounded to cents once.
	got, err := Calculate(testProfile("9.99", true), wage.CalcInput{TotalHours: dec("37.5")})
	require.NoError(t, err)

	assert.True(t, got.GrossPay.Exponent() >= -2, "gross pay has sub-cent precision: %s", got.GrossPay)
	assert.True(t, got.NetPay.Exponent() >= -2, "net pay has sub-cent precision: %s", got.NetPay)
	assert.True(t, got.FNPFDeduction.Exponent() >= -2, "deduction has sub-cent precision: %s", got.FNPFDeduction)
}
