package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/events"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/messaging/kafka"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/payroll"
	payrollerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/payroll/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePayrollRepository struct {
	withTxFn                     func(tx *sql.Tx) payroll.Repository
	getPeriodForUpdateFn         func(ctx context.Context, year, month int) (*period.PayrollPeriod, error)
	listActivePayableEmployeesFn func(ctx context.Context) ([]payroll.PayableEmployee, error)
	tagFinesInWindowFn           func(ctx context.Context, periodID uuid.UUID, start, end time.Time) (int64, error)
	sumFinesByEmployeeFn         func(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int64, error)
	upsertRecordFn               func(ctx context.Context, rec *payroll.PayrollRecord) error
	markProcessedFn              func(ctx context.Context, periodID uuid.UUID, actorID *uuid.UUID, at time.Time) (bool, error)
	listPeriodsWithCountsFn      func(ctx context.Context) ([]payroll.PeriodWithCounts, error)
	getPeriodWithCountsFn        func(ctx context.Context, id string) (*payroll.PeriodWithCounts, error)
	recordsByPeriodFn            func(ctx context.Context, periodID string) ([]payroll.RecordWithEmployee, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) GetPeriodForUpdate(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
	if f.getPeriodForUpdateFn != nil {
		return f.getPeriodForUpdateFn(ctx, year, month)
	}
	return nil, sql.ErrNoRows
}

func (f *fakePayrollRepository) ListActivePayableEmployees(ctx context.Context) ([]payroll.PayableEmployee, error) {
	if f.listActivePayableEmployeesFn != nil {
		return f.listActivePayableEmployeesFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) TagFinesInWindow(ctx context.Context, periodID uuid.UUID, start, end time.Time) (int64, error) {
	if f.tagFinesInWindowFn != nil {
		return f.tagFinesInWindowFn(ctx, periodID, start, end)
	}
	return 0, nil
}

func (f *fakePayrollRepository) SumFinesByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int64, error) {
	if f.sumFinesByEmployeeFn != nil {
		return f.sumFinesByEmployeeFn(ctx, employeeID, start, end)
	}
	return 0, nil
}

func (f *fakePayrollRepository) UpsertRecord(ctx context.Context, rec *payroll.PayrollRecord) error {
	if f.upsertRecordFn != nil {
		return f.upsertRecordFn(ctx, rec)
	}
	return nil
}

func (f *fakePayrollRepository) MarkProcessed(ctx context.Context, periodID uuid.UUID, actorID *uuid.UUID, at time.Time) (bool, error) {
	if f.markProcessedFn != nil {
		return f.markProcessedFn(ctx, periodID, actorID, at)
	}
	return true, nil
}

func (f *fakePayrollRepository) ListPeriodsWithCounts(ctx context.Context) ([]payroll.PeriodWithCounts, error) {
	if f.listPeriodsWithCountsFn != nil {
		return f.listPeriodsWithCountsFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) GetPeriodWithCounts(ctx context.Context, id string) (*payroll.PeriodWithCounts, error) {
	if f.getPeriodWithCountsFn != nil {
		return f.getPeriodWithCountsFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakePayrollRepository) RecordsByPeriod(ctx context.Context, periodID string) ([]payroll.RecordWithEmployee, error) {
	if f.recordsByPeriodFn != nil {
		return f.recordsByPeriodFn(ctx, periodID)
	}
	return nil, nil
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

type payrollServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.Service
	repo    *fakePayrollRepository
	outbox  *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payroll.NewService(db, repo, &fakeResolver{}, outbox)

	return &payrollServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
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

func openPeriodFor(year, month int) *period.PayrollPeriod {
	return period.NewForMonth(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
}

func TestPayrollService_ProcessMonthEnd(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	employeeID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	p := openPeriodFor(2025, 11)
	deps.repo.getPeriodForUpdateFn = func(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
		assert.Equal(t, 2025, year)
		assert.Equal(t, 11, month)
		return p, nil
	}
	deps.repo.listActivePayableEmployeesFn = func(ctx context.Context) ([]payroll.PayableEmployee, error) {
		return []payroll.PayableEmployee{
			{ID: employeeID, FullName: "John Mwangi", Role: "driver", Salary: 250000},
		}, nil
	}
	// Two fines of 10000 and 5000 in the window.
	deps.repo.sumFinesByEmployeeFn = func(ctx context.Context, id uuid.UUID, start, end time.Time) (int64, error) {
		assert.Equal(t, employeeID, id)
		return 15000, nil
	}

	var upserted *payroll.PayrollRecord
	deps.repo.upsertRecordFn = func(ctx context.Context, rec *payroll.PayrollRecord) error {
		upserted = rec
		return nil
	}

	resp, err := deps.service.ProcessMonthEnd(ctx, actorID, payroll.ProcessMonthEndRequest{Year: 2025, Month: 11})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.RecordsCreated)
	assert.Equal(t, period.StatusProcessed, resp.Period.Status)

	if assert.Len(t, resp.Records, 1) {
		rec := resp.Records[0]
		assert.Equal(t, employeeID.String(), rec.EmployeeID)
		assert.Equal(t, "John Mwangi", rec.EmployeeName)
		assert.Equal(t, "driver", rec.Role)
		assert.Equal(t, int64(250000), rec.OriginalSalary)
		assert.Equal(t, int64(15000), rec.TotalFines)
		assert.Equal(t, int64(235000), rec.NetSalary)
	}

	if assert.NotNil(t, upserted) {
		assert.Equal(t, int64(250000), upserted.OriginalSalary)
		assert.Equal(t, int64(15000), upserted.TotalFines)
		assert.Equal(t, int64(235000), upserted.NetSalary)
		assert.Equal(t, payroll.RecordStatusProcessed, upserted.Status)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_ProcessMonthEnd_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	p := openPeriodFor(2025, 11)
	p.Status = period.StatusProcessed
	deps.repo.getPeriodForUpdateFn = func(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
		return p, nil
	}
	recordWritten := false
	deps.repo.upsertRecordFn = func(ctx context.Context, rec *payroll.PayrollRecord) error {
		recordWritten = true
		return nil
	}
	flipped := false
	deps.repo.markProcessedFn = func(ctx context.Context, periodID uuid.UUID, actorID *uuid.UUID, at time.Time) (bool, error) {
		flipped = true
		return true, nil
	}

	_, err := deps.service.ProcessMonthEnd(ctx, "", payroll.ProcessMonthEndRequest{Year: 2025, Month: 11})

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodAlreadyProcessed)
	assert.False(t, recordWritten)
	assert.False(t, flipped)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_ProcessMonthEnd_RacingCloserLosesGuard(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.repo.getPeriodForUpdateFn = func(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
		return openPeriodFor(2025, 11), nil
	}
	deps.repo.markProcessedFn = func(ctx context.Context, periodID uuid.UUID, actorID *uuid.UUID, at time.Time) (bool, error) {
		return false, nil
	}

	_, err := deps.service.ProcessMonthEnd(ctx, "", payroll.ProcessMonthEndRequest{Year: 2025, Month: 11})

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodAlreadyProcessed)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_ProcessMonthEnd_YearMonthRequired(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.ProcessMonthEnd(ctx, "", payroll.ProcessMonthEndRequest{Year: 2025})
	assert.ErrorIs(t, err, payrollerrors.ErrYearMonthRequired)

	_, err = deps.service.ProcessMonthEnd(ctx, "", payroll.ProcessMonthEndRequest{Year: 2025, Month: 13})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidMonth)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_ProcessMonthEnd_QueuesProcessedEvent(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	p := openPeriodFor(2025, 11)
	deps.repo.getPeriodForUpdateFn = func(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
		return p, nil
	}
	deps.repo.listActivePayableEmployeesFn = func(ctx context.Context) ([]payroll.PayableEmployee, error) {
		return []payroll.PayableEmployee{
			{ID: uuid.New(), FullName: "Amina Hassan", Role: "turnboy", Salary: 180000},
		}, nil
	}
	deps.repo.sumFinesByEmployeeFn = func(ctx context.Context, id uuid.UUID, start, end time.Time) (int64, error) {
		return 30000, nil
	}

	var queued *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		queued = &event
		return nil
	}

	_, err := deps.service.ProcessMonthEnd(ctx, "", payroll.ProcessMonthEndRequest{Year: 2025, Month: 11})

	assert.NoError(t, err)
	if assert.NotNil(t, queued) {
		assert.Equal(t, events.PayrollPeriodProcessedTopic, queued.Topic)
		var payload events.PayrollPeriodProcessedEvent
		assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
		assert.Equal(t, 2025, payload.Year)
		assert.Equal(t, 11, payload.Month)
		assert.Equal(t, 1, payload.EmployeeCount)
		assert.Equal(t, int64(150000), payload.TotalNetPay)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_PeriodRecords(t *testing.T) {
	ctx := context.Background()
	periodID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	deps.repo.getPeriodWithCountsFn = func(ctx context.Context, id string) (*payroll.PeriodWithCounts, error) {
		return &payroll.PeriodWithCounts{Period: *openPeriodFor(2025, 11)}, nil
	}
	deps.repo.recordsByPeriodFn = func(ctx context.Context, id string) ([]payroll.RecordWithEmployee, error) {
		return []payroll.RecordWithEmployee{
			{ID: uuid.New(), PayrollPeriodID: periodID, EmployeeID: uuid.New(), EmployeeName: "Amina Hassan", Role: "turnboy", OriginalSalary: 180000, TotalFines: 0, NetSalary: 180000, Status: payroll.RecordStatusProcessed},
			{ID: uuid.New(), PayrollPeriodID: periodID, EmployeeID: uuid.New(), EmployeeName: "John Mwangi", Role: "driver", OriginalSalary: 250000, TotalFines: 15000, NetSalary: 235000, Status: payroll.RecordStatusProcessed},
		}, nil
	}

	resp, err := deps.service.PeriodRecords(ctx, periodID.String())

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "Amina Hassan", resp[0].EmployeeName)
	for _, rec := range resp {
		assert.Equal(t, rec.OriginalSalary-rec.TotalFines, rec.NetSalary)
	}
}

func TestPayrollService_PeriodRecords_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.PeriodRecords(ctx, uuid.New().String())

	assert.ErrorIs(t, err, payrollerrors.ErrPeriodNotFound)
}
