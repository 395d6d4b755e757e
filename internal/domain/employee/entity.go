package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enum
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// PayProfile is the slice of the employee directory the wage engine consumes:
// everything the calculator needs and nothing else. Bank fields are only
// populated for online payment.
type PayProfile struct {
	ID            string
	FullName      string
	HourlyRate    decimal.Decimal
	PaymentMethod PaymentMethod
	BankName      *string
	BankAccount   *string
	FNPFEligible  bool
	// NormalHoursOverride, when set, replaces the default weekly overtime
	// threshold for this employee.
	NormalHoursOverride *decimal.Decimal
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
