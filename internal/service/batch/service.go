package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pacificpay/payroll-backend-go/internal/domain/employee"
	"github.com/pacificpay/payroll-backend-go/internal/domain/leave"
	"github.com/pacificpay/payroll-backend-go/internal/domain/wage"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/database"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/token"
	"github.com/pacificpay/payroll-backend-go/internal/pkg/validator"
	"github.com/pacificpay/payroll-backend-go/internal/repository/postgresql"
	"github.com/pacificpay/payroll-backend-go/internal/service/paycalc"
)

// Notifier delivers the approval URL out-of-band after a batch is created.
// Delivery is best-effort; a failed notification never fails the create.
type Notifier interface {
	NotifyApprovalRequested(batch wage.ApprovalBatch, approvalURL string) error
}

type BatchServiceImpl struct {
	db           *database.DB
	batchRepo    wage.BatchRepository
	employeeRepo employee.EmployeeRepository
	notifier     Notifier
	baseURL      string
	opTimeout    time.Duration
}

func NewBatchService(
	db *database.DB,
	batchRepo wage.BatchRepository,
	employeeRepo employee.EmployeeRepository,
	notifier Notifier,
	baseURL string,
	opTimeout time.Duration,
) wage.BatchService {
	return &BatchServiceImpl{
		db:           db,
		batchRepo:    batchRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
		baseURL:      baseURL,
		opTimeout:    opTimeout,
	}
}

func batchToResponse(b wage.ApprovalBatch) wage.ApprovalBatchResponse {
	return wage.ApprovalBatchResponse{
		ID:          b.ID,
		SubjectType: b.SubjectType,
		PeriodStart: b.PeriodStart,
		PeriodEnd:   b.PeriodEnd,
		Status:      b.Status,
		InitiatedBy: b.InitiatedBy,
		DecidedBy:   b.DecidedBy,
		DecidedAt:   b.DecidedAt,
		Note:        b.Note,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func recordToResponse(rec wage.WageRecord) wage.WageRecordResponse {
	return wage.WageRecordResponse{
		ID:                   rec.ID,
		BatchID:              rec.BatchID,
		EmployeeID:           rec.EmployeeID,
		EmployeeName:         rec.EmployeeName,
		HourlyRate:           rec.HourlyRate,
		NormalHoursThreshold: rec.NormalHoursThreshold,
		TotalHours:           rec.TotalHours,
		NormalHours:          rec.NormalHours,
		OvertimeHours:        rec.OvertimeHours,
		MealAllowance:        rec.MealAllowance,
		FNPFDeduction:        rec.FNPFDeduction,
		OtherDeduction:       rec.OtherDeduction,
		GrossPay:             rec.GrossPay,
		NetPay:               rec.NetPay,
		FNPFEligible:         rec.FNPFEligible,
		PaymentMethod:        rec.PaymentMethod,
		PeriodStart:          rec.PeriodStart,
		PeriodEnd:            rec.PeriodEnd,
	}
}

func leaveEntryToResponse(e wage.LeaveEntry) wage.LeaveEntryResponse {
	return wage.LeaveEntryResponse{
		ID:           e.ID,
		BatchID:      e.BatchID,
		EmployeeID:   e.EmployeeID,
		EmployeeName: e.EmployeeName,
		Category:     e.Category,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Reason:       e.Reason,
	}
}

func (s *BatchServiceImpl) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opTimeout)
}

// ApprovalURL builds the out-of-band link for a token. The token is the only
// secret in the URL; the batch id never appears.
func (s *BatchServiceImpl) approvalURL(tok string) string {
	return s.baseURL + "/approvals?token=" + tok
}

func (s *BatchServiceImpl) CreateWageBatch(ctx context.Context, req wage.CreateBatchRequest, initiator string) (wage.CreateBatchResponse, error) {
	if err := req.Validate(); err != nil {
		return wage.CreateBatchResponse{}, err
	}

	periodStart, _ := validator.IsValidDate(req.PeriodStart)
	periodEnd, _ := validator.IsValidDate(req.PeriodEnd)

	tok, err := token.NewApprovalToken()
	if err != nil {
		return wage.CreateBatchResponse{}, err
	}

	newBatch := wage.ApprovalBatch{
		ID:          uuid.NewString(),
		Token:       tok,
		SubjectType: wage.SubjectType(req.SubjectType),
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      wage.BatchStatusPending,
		InitiatedBy: initiator,
		Note:        req.Note,
	}

	// Compute every record up front so calculation errors are rejected
	// before any persistence attempt.
	records := make([]wage.WageRecord, 0, len(req.Records))
	for _, in := range req.Records {
		ctxLookup, cancel := s.withTimeout(ctx)
		profile, err := s.employeeRepo.GetByID(ctxLookup, in.EmployeeID)
		cancel()
		if err != nil {
			return wage.CreateBatchResponse{}, err
		}
		if !profile.IsActive {
			return wage.CreateBatchResponse{}, employee.ErrEmployeeInactive
		}

		calcIn := wage.CalcInput{
			TotalHours:     in.TotalHours,
			MealAllowance:  in.MealAllowance,
			OtherDeduction: in.OtherDeduction,
		}
		computed, err := paycalc.Calculate(profile, calcIn)
		if err != nil {
			return wage.CreateBatchResponse{}, err
		}

		records = append(records, wage.WageRecord{
			ID:                   uuid.NewString(),
			BatchID:              newBatch.ID,
			EmployeeID:           profile.ID,
			EmployeeName:         profile.FullName,
			HourlyRate:           profile.HourlyRate,
			NormalHoursThreshold: computed.Threshold,
			TotalHours:           in.TotalHours,
			NormalHours:          computed.NormalHours,
			OvertimeHours:        computed.OvertimeHours,
			MealAllowance:        in.MealAllowance,
			FNPFDeduction:        computed.FNPFDeduction,
			OtherDeduction:       in.OtherDeduction,
			GrossPay:             computed.GrossPay,
			NetPay:               computed.NetPay,
			FNPFEligible:         profile.FNPFEligible,
			PaymentMethod:        string(profile.PaymentMethod),
			PeriodStart:          periodStart,
			PeriodEnd:            periodEnd,
		})
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.batchRepo.CreateBatch(txCtx, newBatch)
		if err != nil {
			return err
		}
		newBatch = created
		return s.batchRepo.CreateRecords(txCtx, records)
	})
	if err != nil {
		return wage.CreateBatchResponse{}, err
	}

	url := s.approvalURL(tok)
	if s.notifier != nil {
		_ = s.notifier.NotifyApprovalRequested(newBatch, url)
	}

	return wage.CreateBatchResponse{BatchID: newBatch.ID, ApprovalURL: url}, nil
}

func (s *BatchServiceImpl) CreateLeaveBatch(ctx context.Context, req wage.CreateLeaveBatchRequest, initiator string) (wage.CreateBatchResponse, error) {
	if err := req.Validate(); err != nil {
		return wage.CreateBatchResponse{}, err
	}
	if !leave.IsValidCategory(req.Category) {
		return wage.CreateBatchResponse{}, leave.ErrInvalidCategory
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	ctxLookup, cancel := s.withTimeout(ctx)
	profile, err := s.employeeRepo.GetByID(ctxLookup, req.EmployeeID)
	cancel()
	if err != nil {
		return wage.CreateBatchResponse{}, err
	}

	tok, err := token.NewApprovalToken()
	if err != nil {
		return wage.CreateBatchResponse{}, err
	}

	newBatch := wage.ApprovalBatch{
		ID:          uuid.NewString(),
		Token:       tok,
		SubjectType: wage.SubjectLeaveRequest,
		PeriodStart: startDate,
		PeriodEnd:   endDate,
		Status:      wage.BatchStatusPending,
		InitiatedBy: initiator,
	}

	entry := wage.LeaveEntry{
		ID:           uuid.NewString(),
		BatchID:      newBatch.ID,
		EmployeeID:   profile.ID,
		EmployeeName: profile.FullName,
		Category:     req.Category,
		StartDate:    startDate,
		EndDate:      endDate,
		Reason:       req.Reason,
	}

	ctx, cancel = s.withTimeout(ctx)
	defer cancel()

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err := s.batchRepo.CreateBatch(txCtx, newBatch)
		if err != nil {
			return err
		}
		newBatch = created
		_, err = s.batchRepo.CreateLeaveEntry(txCtx, entry)
		return err
	})
	if err != nil {
		return wage.CreateBatchResponse{}, err
	}

	url := s.approvalURL(tok)
	if s.notifier != nil {
		_ = s.notifier.NotifyApprovalRequested(newBatch, url)
	}

	return wage.CreateBatchResponse{BatchID: newBatch.ID, ApprovalURL: url}, nil
}

// GetBatchByToken is read-only and repeatable; only Decide mutates state.
func (s *BatchServiceImpl) GetBatchByToken(ctx context.Context, tok string) (wage.BatchResponse, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	b, err := s.batchRepo.GetBatchByToken(ctx, tok)
	if err != nil {
		return wage.BatchResponse{}, err
	}

	resp := wage.BatchResponse{Batch: batchToResponse(b)}

	switch b.SubjectType {
	case wage.SubjectLeaveRequest:
		entry, err := s.batchRepo.GetLeaveEntryByBatchID(ctx, b.ID)
		if err != nil {
			return wage.BatchResponse{}, err
		}
		entryResp := leaveEntryToResponse(entry)
		resp.LeaveEntry = &entryResp
	default:
		records, err := s.batchRepo.GetRecordsByBatchID(ctx, b.ID)
		if err != nil {
			return wage.BatchResponse{}, err
		}
		resp.Records = make([]wage.WageRecordResponse, 0, len(records))
		for _, rec := range records {
			resp.Records = append(resp.Records, recordToResponse(rec))
		}
	}

	return resp, nil
}

// Decide applies a pending batch's one-and-only terminal transition. The row
// lock taken by GetBatchByTokenForUpdate serializes concurrent callers: the
// first to see status=pending wins; everyone after observes the decided state
// and mutates nothing.
func (s *BatchServiceImpl) Decide(ctx context.Context, req wage.DecideRequest, decider string) (wage.DecideResponse, error) {
	if err := req.Validate(); err != nil {
		return wage.DecideResponse{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var resp wage.DecideResponse
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		b, err := s.batchRepo.GetBatchByTokenForUpdate(txCtx, req.Token)
		if err != nil {
			return err
		}

		if b.Status != wage.BatchStatusPending {
			resp = wage.DecideResponse{Batch: batchToResponse(b), AlreadyDecided: true}
			return nil
		}

		now := time.Now()
		if err := s.batchRepo.SetBatchStatus(txCtx, b.ID, wage.BatchStatus(req.Verdict), &decider, &now); err != nil {
			return err
		}

		b.Status = wage.BatchStatus(req.Verdict)
		b.DecidedBy = &decider
		b.DecidedAt = &now
		resp = wage.DecideResponse{Batch: batchToResponse(b)}
		return nil
	})
	if err != nil {
		return wage.DecideResponse{}, err
	}

	return resp, nil
}

// EditBatchRecords recomputes the edited records with each record's original
// rate, threshold and eligibility, then resets the batch to pending so it must be
// re-reviewed. The batch row is locked first, so an in-flight Decide cannot
// interleave; all updates and the status reset commit or roll back together.
func (s *BatchServiceImpl) EditBatchRecords(ctx context.Context, batchID string, req wage.EditBatchRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		b, err := s.batchRepo.GetBatchByIDForUpdate(txCtx, batchID)
		if err != nil {
			return err
		}

		records, err := s.batchRepo.GetRecordsByBatchID(txCtx, b.ID)
		if err != nil {
			return err
		}
		byID := make(map[string]wage.WageRecord, len(records))
		for _, rec := range records {
			byID[rec.ID] = rec
		}

		for _, edit := range req.Edits {
			rec, ok := byID[edit.RecordID]
			if !ok {
				return wage.ErrRecordNotFound
			}

			threshold := rec.NormalHoursThreshold
			profile := employee.PayProfile{
				ID:                  rec.EmployeeID,
				FullName:            rec.EmployeeName,
				HourlyRate:          rec.HourlyRate,
				FNPFEligible:        rec.FNPFEligible,
				NormalHoursOverride: &threshold,
			}
			calcIn := wage.CalcInput{
				TotalHours:     edit.TotalHours,
				MealAllowance:  edit.MealAllowance,
				OtherDeduction: edit.OtherDeduction,
			}
			computed, err := paycalc.Calculate(profile, calcIn)
			if err != nil {
				return err
			}

			rec.TotalHours = edit.TotalHours
			rec.NormalHours = computed.NormalHours
			rec.OvertimeHours = computed.OvertimeHours
			rec.MealAllowance = edit.MealAllowance
			rec.FNPFDeduction = computed.FNPFDeduction
			rec.OtherDeduction = edit.OtherDeduction
			rec.GrossPay = computed.GrossPay
			rec.NetPay = computed.NetPay

			if err := s.batchRepo.UpdateRecordComputed(txCtx, rec); err != nil {
				return err
			}
		}

		// Edited pay needs a fresh decision; clear the old one.
		return s.batchRepo.SetBatchStatus(txCtx, b.ID, wage.BatchStatusPending, nil, nil)
	})
}

// DeleteBatch removes a batch and everything it owns. Deleting a batch that
// does not exist is a no-op, not an error.
func (s *BatchServiceImpl) DeleteBatch(ctx context.Context, batchID string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var existed bool
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if _, err := s.batchRepo.DeleteRecordsByBatchID(txCtx, batchID); err != nil {
			return err
		}
		deleted, err := s.batchRepo.DeleteBatch(txCtx, batchID)
		if err != nil {
			return err
		}
		existed = deleted
		return nil
	})
	if err != nil {
		return false, err
	}

	return existed, nil
}

func (s *BatchServiceImpl) ListSummaries(ctx context.Context, filter wage.SummaryFilter) ([]wage.BatchSummary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.batchRepo.ListSummaries(ctx, filter)
}

// BackfillEmployeeName copies the directory's current name onto the
// employee's historical wage records. The copy only happens when this is
// called; a rename on its own never touches history.
func (s *BatchServiceImpl) BackfillEmployeeName(ctx context.Context, employeeID string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	profile, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}

	var updated int64
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		n, err := s.batchRepo.BackfillEmployeeName(txCtx, profile.ID, profile.FullName)
		if err != nil {
			return err
		}
		updated = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}
