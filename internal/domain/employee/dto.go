package employee

import (
	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayProfileRequest struct {
	FullName            string           `json:"full_name"`
	HourlyRate          decimal.Decimal  `json:"hourly_rate"`
	PaymentMethod       string           `json:"payment_method"` // "cash" or "online"
	BankName            *string          `json:"bank_name,omitempty"`
	BankAccount         *string          `json:"bank_account,omitempty"`
	FNPFEligible        bool             `json:"fnpf_eligible"`
	NormalHoursOverride *decimal.Decimal `json:"normal_hours_override,omitempty"`
}

func (r *CreatePayProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	if r.PaymentMethod != string(PaymentMethodCash) && r.PaymentMethod != string(PaymentMethodOnline) {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'cash' or 'online'"})
	}
	if r.PaymentMethod == string(PaymentMethodOnline) {
		if r.BankName == nil || validator.IsEmpty(*r.BankName) {
			errs = append(errs, validator.ValidationError{Field: "bank_name", Message: "is required for online payment"})
		}
		if r.BankAccount == nil || validator.IsEmpty(*r.BankAccount) {
			errs = append(errs, validator.ValidationError{Field: "bank_account", Message: "is required for online payment"})
		}
	}
	if r.NormalHoursOverride != nil && !r.NormalHoursOverride.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "normal_hours_override", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayProfileRequest struct {
	ID                  string           `json:"-"`
	FullName            *string          `json:"full_name,omitempty"`
	HourlyRate          *decimal.Decimal `json:"hourly_rate,omitempty"`
	PaymentMethod       *string          `json:"payment_method,omitempty"`
	BankName            *string          `json:"bank_name,omitempty"`
	BankAccount         *string          `json:"bank_account,omitempty"`
	FNPFEligible        *bool            `json:"fnpf_eligible,omitempty"`
	NormalHoursOverride *decimal.Decimal `json:"normal_hours_override,omitempty"`
	IsActive            *bool            `json:"is_active,omitempty"`
}

func (r *UpdatePayProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.HourlyRate != nil && !r.HourlyRate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	if r.PaymentMethod != nil && *r.PaymentMethod != string(PaymentMethodCash) && *r.PaymentMethod != string(PaymentMethodOnline) {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'cash' or 'online'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayProfileResponse struct {
	ID                  string           `json:"id"`
	FullName            string           `json:"full_name"`
	HourlyRate          decimal.Decimal  `json:"hourly_rate"`
	PaymentMethod       string           `json:"payment_method"`
	BankName            *string          `json:"bank_name,omitempty"`
	BankAccount         *string          `json:"bank_account,omitempty"`
	FNPFEligible        bool             `json:"fnpf_eligible"`
	NormalHoursOverride *decimal.Decimal `json:"normal_hours_override,omitempty"`
	IsActive            bool             `json:"is_active"`
}
