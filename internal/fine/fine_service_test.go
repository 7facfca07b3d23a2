package fine_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/events"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/fine"
	fineerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/fine/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/messaging/kafka"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/contextutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeFineRepository struct {
	withTxFn             func(tx *sql.Tx) fine.Repository
	insertFineFn         func(ctx context.Context, f *fine.Fine) error
	getForUpdateFn       func(ctx context.Context, id string) (*fine.Fine, error)
	insertPaymentFn      func(ctx context.Context, p *fine.Payment) error
	updateBalancesFn     func(ctx context.Context, fineID uuid.UUID, paid, remaining int64, payStatus string) error
	findAllFn            func(ctx context.Context, employeeID, payStatus string) ([]fine.Fine, error)
	findByIDFn           func(ctx context.Context, id string) (*fine.Fine, error)
	updateFn             func(ctx context.Context, f *fine.Fine) error
	deleteFn             func(ctx context.Context, id string) error
	listPaymentsByFineFn func(ctx context.Context, fineID string) ([]fine.Payment, error)
	employeeExistsFn     func(ctx context.Context, id string) (bool, error)
}

func (f *fakeFineRepository) WithTx(tx *sql.Tx) fine.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeFineRepository) InsertFine(ctx context.Context, fi *fine.Fine) error {
	if f.insertFineFn != nil {
		return f.insertFineFn(ctx, fi)
	}
	return nil
}

func (f *fakeFineRepository) GetForUpdate(ctx context.Context, id string) (*fine.Fine, error) {
	if f.getForUpdateFn != nil {
		return f.getForUpdateFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeFineRepository) InsertPayment(ctx context.Context, p *fine.Payment) error {
	if f.insertPaymentFn != nil {
		return f.insertPaymentFn(ctx, p)
	}
	return nil
}

func (f *fakeFineRepository) UpdateBalances(ctx context.Context, fineID uuid.UUID, paid, remaining int64, payStatus string) error {
	if f.updateBalancesFn != nil {
		return f.updateBalancesFn(ctx, fineID, paid, remaining, payStatus)
	}
	return nil
}

func (f *fakeFineRepository) FindAll(ctx context.Context, employeeID, payStatus string) ([]fine.Fine, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, employeeID, payStatus)
	}
	return nil, nil
}

func (f *fakeFineRepository) FindByID(ctx context.Context, id string) (*fine.Fine, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeFineRepository) Update(ctx context.Context, fi *fine.Fine) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, fi)
	}
	return nil
}

func (f *fakeFineRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeFineRepository) ListPaymentsByFine(ctx context.Context, fineID string) ([]fine.Payment, error) {
	if f.listPaymentsByFineFn != nil {
		return f.listPaymentsByFineFn(ctx, fineID)
	}
	return nil, nil
}

func (f *fakeFineRepository) EmployeeExists(ctx context.Context, id string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, id)
	}
	return true, nil
}

type fakeResolver struct {
	resolveFn func(ctx context.Context, date time.Time) (*period.PayrollPeriod, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, date time.Time) (*period.PayrollPeriod, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, date)
	}
	return period.NewForMonth(date), nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fineServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service fine.Service
	repo    *fakeFineRepository
	outbox  *fakeOutboxRepository
}

func setupFineServiceTest(t *testing.T) *fineServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeFineRepository{}
	outbox := &fakeOutboxRepository{}
	svc := fine.NewService(db, repo, &fakeResolver{}, outbox)

	return &fineServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestFineService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	carID := uuid.New().String()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	var inserted *fine.Fine
	deps.repo.insertFineFn = func(ctx context.Context, f *fine.Fine) error {
		inserted = f
		return nil
	}
	var queued *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		queued = &event
		return nil
	}

	resp, err := deps.service.Create(ctx, fine.CreateFineRequest{
		EmployeeID: employeeID,
		CarID:      carID,
		FineType:   "overspeeding",
		FineDate:   "2025-11-14",
		FineCost:   50000,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(50000), resp.FineCost)
	assert.Equal(t, int64(0), resp.PaidAmount)
	assert.Equal(t, int64(50000), resp.RemainingAmount)
	assert.Equal(t, fine.PayStatusUnpaid, resp.PayStatus)
	assert.NotNil(t, resp.PayrollPeriodID)

	if assert.NotNil(t, inserted) {
		assert.Equal(t, int64(0), inserted.PaidAmount)
		if assert.NotNil(t, inserted.PayrollPeriodID) {
			assert.Equal(t, *resp.PayrollPeriodID, inserted.PayrollPeriodID.String())
		}
	}

	if assert.NotNil(t, queued) {
		assert.Equal(t, events.FineRecordedTopic, queued.Topic)
		var payload events.FineRecordedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, employeeID, payload.EmployeeID)
		assert.Equal(t, int64(50000), payload.FineCost)
	}

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_Create_EmployeeMissing(t *testing.T) {
	ctx := context.Background()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	deps.repo.employeeExistsFn = func(ctx context.Context, id string) (bool, error) {
		return false, nil
	}

	_, err := deps.service.Create(ctx, fine.CreateFineRequest{
		EmployeeID: uuid.New().String(),
		CarID:      uuid.New().String(),
		FineType:   "overloading",
		FineDate:   "2025-11-14",
		FineCost:   25000,
	})

	assert.ErrorIs(t, err, fineerrors.ErrEmployeeNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_RecordPayment_PartialThenFull(t *testing.T) {
	ctx := context.Background()
	fineID := uuid.New()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	// First payment: 20000 against a 50000 fine.
	expectTx(t, deps.sqlMock, true)
	deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
		return &fine.Fine{
			ID:              fineID,
			EmployeeID:      uuid.New(),
			CarID:           uuid.New(),
			FineCost:        50000,
			PaidAmount:      0,
			RemainingAmount: 50000,
			PayStatus:       fine.PayStatusUnpaid,
		}, nil
	}
	deps.repo.updateBalancesFn = func(ctx context.Context, id uuid.UUID, paid, remaining int64, payStatus string) error {
		assert.Equal(t, fineID, id)
		assert.Equal(t, int64(20000), paid)
		assert.Equal(t, int64(30000), remaining)
		assert.Equal(t, fine.PayStatusUnpaid, payStatus)
		return nil
	}

	resp, err := deps.service.RecordPayment(ctx, fineID.String(), fine.RecordPaymentRequest{
		Amount:      20000,
		PaymentDate: "2025-11-20",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(20000), resp.Payment.Amount)
	assert.Equal(t, int64(20000), resp.Fine.PaidAmount)
	assert.Equal(t, int64(30000), resp.Fine.RemainingAmount)
	assert.Equal(t, fine.PayStatusUnpaid, resp.Fine.PayStatus)

	// Second payment settles the rest.
	expectTx(t, deps.sqlMock, true)
	deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
		return &fine.Fine{
			ID:              fineID,
			EmployeeID:      uuid.New(),
			CarID:           uuid.New(),
			FineCost:        50000,
			PaidAmount:      20000,
			RemainingAmount: 30000,
			PayStatus:       fine.PayStatusUnpaid,
		}, nil
	}
	deps.repo.updateBalancesFn = func(ctx context.Context, id uuid.UUID, paid, remaining int64, payStatus string) error {
		assert.Equal(t, int64(50000), paid)
		assert.Equal(t, int64(0), remaining)
		assert.Equal(t, fine.PayStatusPaid, payStatus)
		return nil
	}

	resp, err = deps.service.RecordPayment(ctx, fineID.String(), fine.RecordPaymentRequest{
		Amount:      30000,
		PaymentDate: "2025-11-28",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.Fine.RemainingAmount)
	assert.Equal(t, fine.PayStatusPaid, resp.Fine.PayStatus)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_RecordPayment_ExceedsBalance(t *testing.T) {
	ctx := context.Background()
	fineID := uuid.New()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
		return &fine.Fine{
			ID:              fineID,
			FineCost:        50000,
			PaidAmount:      20000,
			RemainingAmount: 30000,
			PayStatus:       fine.PayStatusUnpaid,
		}, nil
	}
	paymentInserted := false
	deps.repo.insertPaymentFn = func(ctx context.Context, p *fine.Payment) error {
		paymentInserted = true
		return nil
	}

	_, err := deps.service.RecordPayment(ctx, fineID.String(), fine.RecordPaymentRequest{
		Amount:      40000,
		PaymentDate: "2025-11-20",
	})

	var appErr *apperror.AppError
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Contains(t, appErr.Message, "40000")
		assert.Contains(t, appErr.Message, "30000")
	}
	assert.False(t, paymentInserted)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_RecordPayment_StampsRecordingPrincipal(t *testing.T) {
	actorID := uuid.New()
	ctx := contextutil.WithPrincipal(context.Background(), contextutil.Principal{
		UserID: actorID.String(),
		Role:   "admin",
	})
	fineID := uuid.New()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
		return &fine.Fine{
			ID:              fineID,
			EmployeeID:      uuid.New(),
			CarID:           uuid.New(),
			FineCost:        50000,
			RemainingAmount: 50000,
			PayStatus:       fine.PayStatusUnpaid,
		}, nil
	}

	var inserted *fine.Payment
	deps.repo.insertPaymentFn = func(ctx context.Context, p *fine.Payment) error {
		inserted = p
		return nil
	}

	resp, err := deps.service.RecordPayment(ctx, fineID.String(), fine.RecordPaymentRequest{
		Amount:      10000,
		PaymentDate: "2025-11-20",
	})

	assert.NoError(t, err)
	if assert.NotNil(t, inserted) && assert.NotNil(t, inserted.CreatedBy) {
		assert.Equal(t, actorID, *inserted.CreatedBy)
	}
	if assert.NotNil(t, resp.Payment.CreatedBy) {
		assert.Equal(t, actorID.String(), *resp.Payment.CreatedBy)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_RecordPayment_InvalidAmount(t *testing.T) {
	ctx := context.Background()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.RecordPayment(ctx, uuid.New().String(), fine.RecordPaymentRequest{
		Amount: 0,
	})

	assert.ErrorIs(t, err, fineerrors.ErrInvalidAmount)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_Update_CostChangeRecomputes(t *testing.T) {
	ctx := context.Background()
	fineID := uuid.New()

	t.Run("raise keeps it unpaid", func(t *testing.T) {
		deps := setupFineServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
			return &fine.Fine{
				ID:              fineID,
				EmployeeID:      uuid.New(),
				CarID:           uuid.New(),
				FineCost:        50000,
				PaidAmount:      20000,
				RemainingAmount: 30000,
				PayStatus:       fine.PayStatusUnpaid,
			}, nil
		}

		resp, err := deps.service.Update(ctx, fineID.String(), fine.UpdateFineRequest{FineCost: 60000})

		assert.NoError(t, err)
		assert.Equal(t, int64(40000), resp.RemainingAmount)
		assert.Equal(t, fine.PayStatusUnpaid, resp.PayStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("cut below paid floors at zero and settles", func(t *testing.T) {
		deps := setupFineServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
			return &fine.Fine{
				ID:              fineID,
				EmployeeID:      uuid.New(),
				CarID:           uuid.New(),
				FineCost:        50000,
				PaidAmount:      20000,
				RemainingAmount: 30000,
				PayStatus:       fine.PayStatusUnpaid,
			}, nil
		}

		resp, err := deps.service.Update(ctx, fineID.String(), fine.UpdateFineRequest{FineCost: 15000})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), resp.RemainingAmount)
		assert.Equal(t, fine.PayStatusPaid, resp.PayStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestFineService_Update_KeepsBalancesFromLockedRow(t *testing.T) {
	ctx := context.Background()
	fineID := uuid.New()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	// The locked read already reflects a payment committed by another
	// request; an edit that only touches the description must carry those
	// balances through unchanged.
	expectTx(t, deps.sqlMock, true)
	deps.repo.getForUpdateFn = func(ctx context.Context, id string) (*fine.Fine, error) {
		return &fine.Fine{
			ID:              fineID,
			EmployeeID:      uuid.New(),
			CarID:           uuid.New(),
			FineCost:        50000,
			PaidAmount:      20000,
			RemainingAmount: 30000,
			PayStatus:       fine.PayStatusUnpaid,
		}, nil
	}

	var written *fine.Fine
	deps.repo.updateFn = func(ctx context.Context, f *fine.Fine) error {
		written = f
		return nil
	}

	resp, err := deps.service.Update(ctx, fineID.String(), fine.UpdateFineRequest{Description: "disputed, kept"})

	assert.NoError(t, err)
	if assert.NotNil(t, written) {
		assert.Equal(t, int64(20000), written.PaidAmount)
		assert.Equal(t, int64(30000), written.RemainingAmount)
		assert.Equal(t, fine.PayStatusUnpaid, written.PayStatus)
	}
	assert.Equal(t, int64(20000), resp.PaidAmount)
	assert.Equal(t, int64(30000), resp.RemainingAmount)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestFineService_GetPaymentHistory(t *testing.T) {
	ctx := context.Background()
	fineID := uuid.New()
	periodID := uuid.New()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*fine.Fine, error) {
		return &fine.Fine{
			ID:              fineID,
			FineCost:        50000,
			PaidAmount:      50000,
			RemainingAmount: 0,
			PayStatus:       fine.PayStatusPaid,
		}, nil
	}
	deps.repo.listPaymentsByFineFn = func(ctx context.Context, id string) ([]fine.Payment, error) {
		return []fine.Payment{
			{ID: uuid.New(), FineID: fineID, PayrollPeriodID: periodID, Amount: 30000, PaymentDate: time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)},
			{ID: uuid.New(), FineID: fineID, PayrollPeriodID: periodID, Amount: 20000, PaymentDate: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)},
		}, nil
	}

	resp, err := deps.service.GetPaymentHistory(ctx, fineID.String())

	assert.NoError(t, err)
	assert.Equal(t, int64(50000), resp.TotalPaid)
	assert.Equal(t, fine.PayStatusPaid, resp.Fine.PayStatus)
	assert.Len(t, resp.Payments, 2)
	assert.Equal(t, int64(30000), resp.Payments[0].Amount)
}

func TestFineService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupFineServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(ctx, uuid.New().String())

	assert.ErrorIs(t, err, fineerrors.ErrFineNotFound)
}
