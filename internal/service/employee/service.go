package employee

import (
	"context"

	"github.com/google/uuid"
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
)

// Service exposes the slice of directory maintenance the wage engine needs:
// pay profiles in, rename backfill handled by the batch service.
type Service struct {
	repo employee.EmployeeRepository
}

func NewEmployeeService(repo employee.EmployeeRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req employee.CreatePayProfileRequest) (employee.PayProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.PayProfileResponse{}, err
	}

	profile := employee.PayProfile{
		ID:                  uuid.NewString(),
		FullName:            req.FullName,
		HourlyRate:          req.HourlyRate,
		PaymentMethod:       employee.PaymentMethod(req.PaymentMethod),
		FNPFEligible:        req.FNPFEligible,
		NormalHoursOverride: req.NormalHoursOverride,
		IsActive:            true,
	}
	if profile.PaymentMethod == employee.PaymentMethodOnline {
		profile.BankName = req.BankName
		profile.BankAccount = req.BankAccount
	}

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return employee.PayProfileResponse{}, err
	}

	return toResponse(created), nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.PayProfileResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.PayProfileResponse{}, err
	}
	return toResponse(p), nil
}

func (s *Service) ListActive(ctx context.Context) ([]employee.PayProfileResponse, error) {
	profiles, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]employee.PayProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, toResponse(p))
	}
	return result, nil
}

func (s *Service) Update(ctx context.Context, req employee.UpdatePayProfileRequest) (employee.PayProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.PayProfileResponse{}, err
	}

	if err := s.repo.Update(ctx, req); err != nil {
		return employee.PayProfileResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func toResponse(p employee.PayProfile) employee.PayProfileResponse {
	resp := employee.PayProfileResponse{
		ID:                  p.ID,
		FullName:            p.FullName,
		HourlyRate:          p.HourlyRate,
		PaymentMethod:       string(p.PaymentMethod),
		BankName:            p.BankName,
		BankAccount:         p.BankAccount,
		FNPFEligible:        p.FNPFEligible,
		NormalHoursOverride: p.NormalHoursOverride,
		IsActive:            p.IsActive,
	}
	return resp
}
