package response

import (
	"errors"
	"net/http"

	"github.com/pacificpay/payroll-backend-go/internal/domain/auth"
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/domain/leave"
	"github.com/pacificpay/payroll-backend-go/internal/domain/user"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNameExists):
		Conflict(w, "Employee name already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is inactive", nil)

	// Wage domain errors
	case errors.Is(err, wage.ErrBatchNotFound):
		NotFound(w, "Approval batch not found")
	case errors.Is(err, wage.ErrRecordNotFound):
		NotFound(w, "Wage record not found")
	case errors.Is(err, wage.ErrStorageUnavailable):
		ServiceUnavailable(w, "Storage temporarily unavailable, retry later")

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidCategory):
		BadRequest(w, "Invalid leave category", nil)
	case errors.Is(err, leave.ErrInvalidYear):
		BadRequest(w, "Invalid leave year", nil)
	case errors.Is(err, leave.ErrInvalidCarryOver):
		BadRequest(w, "Carry-over days must be non-negative", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
