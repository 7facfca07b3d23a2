package fine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	fineerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/fine/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/events"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/messaging/kafka"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=fine_service.go -destination=mock/fine_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateFineRequest) (FineResponse, error)
	GetAll(ctx context.Context, employeeID, payStatus string) ([]FineResponse, error)
	GetByID(ctx context.Context, id string) (FineResponse, error)
	Update(ctx context.Context, id string, req UpdateFineRequest) (FineResponse, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, fineID string, req RecordPaymentRequest) (RecordPaymentResponse, error)
	GetPaymentHistory(ctx context.Context, fineID string) (PaymentHistoryResponse, error)
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
		logger:   zap.L().Named("fine.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateFineRequest) (FineResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return FineResponse{}, fineerrors.ErrInvalidEmployeeID
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return FineResponse{}, fineerrors.ErrInvalidCarID
	}
	if req.FineCost <= 0 {
		return FineResponse{}, fineerrors.ErrInvalidFineCost
	}
	fineDate, err := parseDate(req.FineDate)
	if err != nil {
		return FineResponse{}, err
	}

	exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}
	if !exists {
		return FineResponse{}, fineerrors.ErrEmployeeNotFound
	}

	// Find-or-create the period covering fine_date. Safe outside the write
	// transaction: the upsert is idempotent and the row is never removed.
	p, err := s.resolver.Resolve(ctx, fineDate)
	if err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	f := &Fine{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		CarID:           carID,
		FineType:        req.FineType,
		Description:     req.Description,
		FineDate:        fineDate,
		FineCost:        req.FineCost,
		PaidAmount:      0,
		RemainingAmount: req.FineCost,
		PayStatus:       PayStatusUnpaid,
		PayrollPeriodID: &p.ID,
	}
	if req.DeliveryID != "" {
		deliveryUUID, err := uuid.Parse(req.DeliveryID)
		if err != nil {
			return FineResponse{}, fineerrors.ErrInvalidDeliveryID
		}
		f.DeliveryID = &deliveryUUID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.InsertFine(ctx, f); err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	if err := s.stageFineRecordedEvent(ctx, tx, rid, f); err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	s.logger.Info("fine created",
		zap.String("request_id", rid),
		zap.String("fine_id", f.ID.String()),
		zap.String("employee_id", f.EmployeeID.String()),
		zap.Int64("fine_cost", f.FineCost),
	)

	return mapToFineResponse(f), nil
}

func (s *service) GetAll(ctx context.Context, employeeID, payStatus string) ([]FineResponse, error) {
	fines, err := s.repo.FindAll(ctx, employeeID, payStatus)
	if err != nil {
		return nil, s.mapRepositoryError(err)
	}

	resp := make([]FineResponse, len(fines))
	for i := range fines {
		resp[i] = mapToFineResponse(&fines[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (FineResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return FineResponse{}, fineerrors.ErrInvalidFineID
	}

	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}
	return mapToFineResponse(f), nil
}

// Update edits a fine under the same row lock the payment path takes, so a
// payment committed mid-edit cannot be reverted by writing back a stale
// balance snapshot.
func (s *service) Update(ctx context.Context, id string, req UpdateFineRequest) (FineResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return FineResponse{}, fineerrors.ErrInvalidFineID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f, err := qtx.GetForUpdate(ctx, id)
	if err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	if req.EmployeeID != "" {
		employeeUUID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return FineResponse{}, fineerrors.ErrInvalidEmployeeID
		}
		exists, err := s.repo.EmployeeExists(ctx, req.EmployeeID)
		if err != nil {
			return FineResponse{}, s.mapRepositoryError(err)
		}
		if !exists {
			return FineResponse{}, fineerrors.ErrEmployeeNotFound
		}
		f.EmployeeID = employeeUUID
	}
	if req.CarID != "" {
		carUUID, err := uuid.Parse(req.CarID)
		if err != nil {
			return FineResponse{}, fineerrors.ErrInvalidCarID
		}
		f.CarID = carUUID
	}
	if req.FineType != "" {
		f.FineType = req.FineType
	}
	if req.Description != "" {
		f.Description = req.Description
	}
	if req.FineDate != "" {
		// The fine keeps its original payroll period even when the date moves.
		fineDate, err := parseDate(req.FineDate)
		if err != nil {
			return FineResponse{}, err
		}
		f.FineDate = fineDate
	}
	if req.FineCost > 0 && req.FineCost != f.FineCost {
		f.FineCost = req.FineCost
		f.Recompute()
	}

	if err := qtx.Update(ctx, f); err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return FineResponse{}, s.mapRepositoryError(err)
	}

	return mapToFineResponse(f), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fineerrors.ErrInvalidFineID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepositoryError(err)
	}
	return nil
}

// RecordPayment applies a partial or full settlement against a fine. The
// lock-validate-write sequence runs in one transaction: payment insert and
// balance update land together or not at all, and concurrent payments cannot
// jointly overdraw the balance.
func (s *service) RecordPayment(ctx context.Context, fineID string, req RecordPaymentRequest) (RecordPaymentResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount <= 0 {
		return RecordPaymentResponse{}, fineerrors.ErrInvalidAmount
	}
	fineUUID, err := uuid.Parse(fineID)
	if err != nil {
		return RecordPaymentResponse{}, fineerrors.ErrInvalidFineID
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != "" {
		paymentDate, err = parseDate(req.PaymentDate)
		if err != nil {
			return RecordPaymentResponse{}, err
		}
	}

	// The payment's period follows payment_date, which may differ from the
	// fine's own period.
	p, err := s.resolver.Resolve(ctx, paymentDate)
	if err != nil {
		return RecordPaymentResponse{}, s.mapRepositoryError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordPaymentResponse{}, s.mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	f, err := qtx.GetForUpdate(ctx, fineUUID.String())
	if err != nil {
		return RecordPaymentResponse{}, s.mapRepositoryError(err)
	}

	remaining := f.RemainingAmount
	if req.Amount > remaining {
		return RecordPaymentResponse{}, fineerrors.PaymentExceedsBalance(req.Amount, remaining)
	}

	payment := &Payment{
		ID:              uuid.New(),
		FineID:          f.ID,
		PayrollPeriodID: p.ID,
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		Notes:           req.Notes,
	}
	if principal, ok := contextutil.GetPrincipal(ctx); ok {
		if actor, parseErr := uuid.Parse(principal.UserID); parseErr == nil {
			payment.CreatedBy = &actor
		}
	}
	if err := qtx.InsertPayment(ctx, payment); err != nil {
		return RecordPaymentResponse{}, s.mapRepositoryError(err)
	}

	f.PaidAmount += req.Amount
	f.Recompute()
	if err := qtx.UpdateBalances(ctx, f.ID, f.PaidAmount, f.RemainingAmount, f.PayStatus); err != nil {
		return RecordPaymentResponse{}, s.mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return RecordPaymentResponse{}, s.mapRepositoryError(err)
	}

	s.logger.Info("payment recorded",
		zap.String("request_id", rid),
		zap.String("fine_id", f.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.Int64("amount", req.Amount),
		zap.Int64("remaining_amount", f.RemainingAmount),
	)

	return RecordPaymentResponse{
		Payment: mapToPaymentResponse(payment),
		Fine:    mapToFineResponse(f),
	}, nil
}

func (s *service) GetPaymentHistory(ctx context.Context, fineID string) (PaymentHistoryResponse, error) {
	if _, err := uuid.Parse(fineID); err != nil {
		return PaymentHistoryResponse{}, fineerrors.ErrInvalidFineID
	}

	f, err := s.repo.FindByID(ctx, fineID)
	if err != nil {
		return PaymentHistoryResponse{}, s.mapRepositoryError(err)
	}

	payments, err := s.repo.ListPaymentsByFine(ctx, fineID)
	if err != nil {
		return PaymentHistoryResponse{}, s.mapRepositoryError(err)
	}

	resp := PaymentHistoryResponse{
		Fine: FineBalance{
			ID:              f.ID.String(),
			FineCost:        f.FineCost,
			PaidAmount:      f.PaidAmount,
			RemainingAmount: f.RemainingAmount,
			PayStatus:       f.PayStatus,
		},
		Payments: make([]PaymentResponse, len(payments)),
	}
	for i := range payments {
		resp.Payments[i] = mapToPaymentResponse(&payments[i])
		resp.TotalPaid += payments[i].Amount
	}
	return resp, nil
}

func (s *service) stageFineRecordedEvent(ctx context.Context, tx *sql.Tx, requestID string, f *Fine) error {
	event := events.FineRecordedEvent{
		EventType:  "fine.recorded",
		FineID:     f.ID.String(),
		EmployeeID: f.EmployeeID.String(),
		FineCost:   f.FineCost,
		FineDate:   f.FineDate,
		OccurredAt: time.Now().UTC(),
	}
	if f.PayrollPeriodID != nil {
		event.PayrollPeriodID = f.PayrollPeriodID.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "fine",
		AggregateID:   f.ID.String(),
		EventType:     event.EventType,
		Topic:         events.FineRecordedTopic,
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
		return fineerrors.ErrFineNotFound
	}
	s.logger.Error("fine repository error", zap.Error(err))
	return apperror.ErrInternal
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fineerrors.ErrInvalidDateFormat
	}
	return t.UTC(), nil
}

func mapToFineResponse(f *Fine) FineResponse {
	resp := FineResponse{
		ID:              f.ID.String(),
		EmployeeID:      f.EmployeeID.String(),
		CarID:           f.CarID.String(),
		FineType:        f.FineType,
		FineDate:        f.FineDate.Format("2006-01-02"),
		FineCost:        f.FineCost,
		PaidAmount:      f.PaidAmount,
		RemainingAmount: f.RemainingAmount,
		PayStatus:       f.PayStatus,
		Description:     f.Description,
	}
	if f.DeliveryID != nil {
		v := f.DeliveryID.String()
		resp.DeliveryID = &v
	}
	if f.PayrollPeriodID != nil {
		v := f.PayrollPeriodID.String()
		resp.PayrollPeriodID = &v
	}
	return resp
}

func mapToPaymentResponse(p *Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:              p.ID.String(),
		FineID:          p.FineID.String(),
		PayrollPeriodID: p.PayrollPeriodID.String(),
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate.Format("2006-01-02"),
		Notes:           p.Notes,
	}
	if p.CreatedBy != nil {
		v := p.CreatedBy.String()
		resp.CreatedBy = &v
	}
	return resp
}
