package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/events"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/messaging/kafka"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"
	payrollerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/payroll/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	ProcessMonthEnd(ctx context.Context, actorID string, req ProcessMonthEndRequest) (ProcessMonthEndResponse, error)
	CurrentPeriod(ctx context.Context) (CurrentPeriodResponse, error)
	ListPeriods(ctx context.Context) ([]PeriodResponse, error)
	PeriodRecords(ctx context.Context, periodID string) ([]RecordResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver period.Resolver
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver period.Resolver, outbox kafka.OutboxRepository) Service {
	return &service{
		db:       db,
		repo:     repo,
		resolver: resolver,
		outbox:   outbox,
		logger:   zap.L().Named("payroll.service"),
	}
}

// ProcessMonthEnd closes the period for (year, month): one record per active
// driver/turnboy with original salary, the month's total fine cost, and the
// derived net. Guard check, record upserts, and the open->processed flip all
// commit together; a period is never marked processed with records missing.
func (s *service) ProcessMonthEnd(ctx context.Context, actorID string, req ProcessMonthEndRequest) (ProcessMonthEndResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Year == 0 || req.Month == 0 {
		return ProcessMonthEndResponse{}, payrollerrors.ErrYearMonthRequired
	}
	if req.Month < 1 || req.Month > 12 {
		return ProcessMonthEndResponse{}, payrollerrors.ErrInvalidMonth
	}

	var actor *uuid.UUID
	if actorID != "" {
		parsed, err := uuid.Parse(actorID)
		if err == nil {
			actor = &parsed
		}
	}

	ref := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	if _, err := s.resolver.Resolve(ctx, ref); err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.GetPeriodForUpdate(ctx, req.Year, req.Month)
	if err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}
	if p.Status == period.StatusProcessed {
		return ProcessMonthEndResponse{}, payrollerrors.ErrPeriodAlreadyProcessed
	}

	employees, err := qtx.ListActivePayableEmployees(ctx)
	if err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}

	tagged, err := qtx.TagFinesInWindow(ctx, p.ID, p.StartDate, p.EndDate)
	if err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}

	var totalNet int64
	records := make([]RecordResponse, 0, len(employees))
	for _, emp := range employees {
		totalFines, err := qtx.SumFinesByEmployee(ctx, emp.ID, p.StartDate, p.EndDate)
		if err != nil {
			return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
		}

		rec := &PayrollRecord{
			ID:              uuid.New(),
			PayrollPeriodID: p.ID,
			EmployeeID:      emp.ID,
			OriginalSalary:  emp.Salary,
			TotalFines:      totalFines,
			NetSalary:       emp.Salary - totalFines,
			Status:          RecordStatusProcessed,
		}
		if err := qtx.UpsertRecord(ctx, rec); err != nil {
			return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
		}
		totalNet += rec.NetSalary
		records = append(records, RecordResponse{
			ID:              rec.ID.String(),
			PayrollPeriodID: rec.PayrollPeriodID.String(),
			EmployeeID:      rec.EmployeeID.String(),
			EmployeeName:    emp.FullName,
			Role:            emp.Role,
			OriginalSalary:  rec.OriginalSalary,
			TotalFines:      rec.TotalFines,
			NetSalary:       rec.NetSalary,
			Status:          rec.Status,
		})
	}

	now := time.Now().UTC()
	flipped, err := qtx.MarkProcessed(ctx, p.ID, actor, now)
	if err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}
	if !flipped {
		return ProcessMonthEndResponse{}, payrollerrors.ErrPeriodAlreadyProcessed
	}

	if err := s.stagePeriodProcessedEvent(ctx, tx, rid, p, len(employees), totalNet); err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return ProcessMonthEndResponse{}, s.mapRepositoryError(err)
	}

	s.logger.Info("payroll period processed",
		zap.String("request_id", rid),
		zap.String("period_id", p.ID.String()),
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("records_created", len(employees)),
		zap.Int64("fines_backfilled", tagged),
	)

	p.Status = period.StatusProcessed
	p.ProcessedAt = &now
	p.ProcessedBy = actor
	resp := ProcessMonthEndResponse{
		Message:        "payroll period processed",
		Records:        records,
		RecordsCreated: len(employees),
	}
	resp.Period = mapPeriodResponse(PeriodWithCounts{Period: *p, RecordCount: int64(len(employees))})
	if pc, err := s.repo.GetPeriodWithCounts(ctx, p.ID.String()); err == nil {
		resp.Period = mapPeriodResponse(*pc)
	}
	return resp, nil
}

// CurrentPeriod finds or lazily creates the period covering today.
func (s *service) CurrentPeriod(ctx context.Context) (CurrentPeriodResponse, error) {
	p, err := s.resolver.Resolve(ctx, time.Now().UTC())
	if err != nil {
		return CurrentPeriodResponse{}, s.mapRepositoryError(err)
	}

	pc, err := s.repo.GetPeriodWithCounts(ctx, p.ID.String())
	if err != nil {
		return CurrentPeriodResponse{}, s.mapRepositoryError(err)
	}

	records, err := s.repo.RecordsByPeriod(ctx, p.ID.String())
	if err != nil {
		return CurrentPeriodResponse{}, s.mapRepositoryError(err)
	}

	return CurrentPeriodResponse{
		Period:  mapPeriodResponse(*pc),
		Records: mapRecordResponses(records),
	}, nil
}

func (s *service) ListPeriods(ctx context.Context) ([]PeriodResponse, error) {
	periods, err := s.repo.ListPeriodsWithCounts(ctx)
	if err != nil {
		return nil, s.mapRepositoryError(err)
	}

	resp := make([]PeriodResponse, len(periods))
	for i, pc := range periods {
		resp[i] = mapPeriodResponse(pc)
	}
	return resp, nil
}

func (s *service) PeriodRecords(ctx context.Context, periodID string) ([]RecordResponse, error) {
	if _, err := uuid.Parse(periodID); err != nil {
		return nil, payrollerrors.ErrInvalidPeriodID
	}

	if _, err := s.repo.GetPeriodWithCounts(ctx, periodID); err != nil {
		return nil, s.mapRepositoryError(err)
	}

	records, err := s.repo.RecordsByPeriod(ctx, periodID)
	if err != nil {
		return nil, s.mapRepositoryError(err)
	}
	return mapRecordResponses(records), nil
}

func (s *service) stagePeriodProcessedEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID string,
	p *period.PayrollPeriod,
	employeeCount int,
	totalNet int64,
) error {
	event := events.PayrollPeriodProcessedEvent{
		EventType:       "payroll.period.processed",
		PayrollPeriodID: p.ID.String(),
		Year:            p.Year,
		Month:           p.Month,
		EmployeeCount:   employeeCount,
		TotalNetPay:     totalNet,
		OccurredAt:      time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "payroll_period",
		AggregateID:   p.ID.String(),
		EventType:     event.EventType,
		Topic:         events.PayrollPeriodProcessedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) mapRepositoryError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return payrollerrors.ErrPeriodNotFound
	}
	s.logger.Error("payroll repository error", zap.Error(err))
	return apperror.ErrInternal
}

func mapPeriodResponse(pc PeriodWithCounts) PeriodResponse {
	p := pc.Period
	resp := PeriodResponse{
		ID:          p.ID.String(),
		Year:        p.Year,
		Month:       p.Month,
		PeriodName:  p.PeriodName,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		Status:      p.Status,
		RecordCount: pc.RecordCount,
		FineCount:   pc.FineCount,
	}
	if p.ProcessedAt != nil {
		v := p.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	if p.ProcessedBy != nil {
		v := p.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	return resp
}

func mapRecordResponses(records []RecordWithEmployee) []RecordResponse {
	resp := make([]RecordResponse, len(records))
	for i, rec := range records {
		resp[i] = RecordResponse{
			ID:              rec.ID.String(),
			PayrollPeriodID: rec.PayrollPeriodID.String(),
			EmployeeID:      rec.EmployeeID.String(),
			EmployeeName:    rec.EmployeeName,
			Role:            rec.Role,
			OriginalSalary:  rec.OriginalSalary,
			TotalFines:      rec.TotalFines,
			NetSalary:       rec.NetSalary,
			Status:          rec.Status,
		}
	}
	return resp
}
