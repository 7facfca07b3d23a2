package report_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/report"
	reporterrors "github.com/zaincode21/Truck-management-backend-sub000/internal/report/errors"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeReportRepository struct {
	findPeriodFn         func(ctx context.Context, year, month int) (*period.PayrollPeriod, error)
	finesByEmployeeFn    func(ctx context.Context, start, end time.Time) ([]report.EmployeeFineSummary, error)
	deliveriesByStatusFn func(ctx context.Context, start, end time.Time) ([]report.DeliveryStatusSummary, error)
	expensesByTypeFn     func(ctx context.Context, start, end time.Time) ([]report.ExpenseTypeSummary, error)
	recordsByPeriodFn    func(ctx context.Context, periodID string) ([]report.PayrollRecordSummary, error)
}

func (f *fakeReportRepository) FindPeriod(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
	if f.findPeriodFn != nil {
		return f.findPeriodFn(ctx, year, month)
	}
	return nil, nil
}

func (f *fakeReportRepository) FinesByEmployee(ctx context.Context, start, end time.Time) ([]report.EmployeeFineSummary, error) {
	if f.finesByEmployeeFn != nil {
		return f.finesByEmployeeFn(ctx, start, end)
	}
	return []report.EmployeeFineSummary{}, nil
}

func (f *fakeReportRepository) DeliveriesByStatus(ctx context.Context, start, end time.Time) ([]report.DeliveryStatusSummary, error) {
	if f.deliveriesByStatusFn != nil {
		return f.deliveriesByStatusFn(ctx, start, end)
	}
	return []report.DeliveryStatusSummary{}, nil
}

func (f *fakeReportRepository) ExpensesByType(ctx context.Context, start, end time.Time) ([]report.ExpenseTypeSummary, error) {
	if f.expensesByTypeFn != nil {
		return f.expensesByTypeFn(ctx, start, end)
	}
	return []report.ExpenseTypeSummary{}, nil
}

func (f *fakeReportRepository) RecordsByPeriod(ctx context.Context, periodID string) ([]report.PayrollRecordSummary, error) {
	if f.recordsByPeriodFn != nil {
		return f.recordsByPeriodFn(ctx, periodID)
	}
	return []report.PayrollRecordSummary{}, nil
}

func TestReportService_MonthlySummary_EmptyMonth(t *testing.T) {
	ctx := context.Background()
	repo := &fakeReportRepository{}
	svc := report.NewService(repo, nil)

	resp, err := svc.MonthlySummary(ctx, 2025, 7)

	assert.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 7, resp.Month)
	assert.Equal(t, "July 2025", resp.PeriodName)
	assert.Equal(t, int64(0), resp.TotalFineCost)
	assert.Equal(t, int64(0), resp.TotalIncome)
	assert.Empty(t, resp.Fines)
	assert.Empty(t, resp.Deliveries)
	assert.Empty(t, resp.Expenses)
	assert.Empty(t, resp.PayrollRecords)
}

func TestReportService_MonthlySummary_Aggregates(t *testing.T) {
	ctx := context.Background()
	periodID := uuid.New()

	repo := &fakeReportRepository{
		finesByEmployeeFn: func(ctx context.Context, start, end time.Time) ([]report.EmployeeFineSummary, error) {
			return []report.EmployeeFineSummary{
				{EmployeeID: uuid.NewString(), EmployeeName: "Amina Hassan", FineCount: 1, TotalFineCost: 5000, TotalPaid: 5000},
				{EmployeeID: uuid.NewString(), EmployeeName: "John Mwangi", FineCount: 2, TotalFineCost: 15000, TotalPaid: 10000, TotalOutstanding: 5000},
			}, nil
		},
		deliveriesByStatusFn: func(ctx context.Context, start, end time.Time) ([]report.DeliveryStatusSummary, error) {
			return []report.DeliveryStatusSummary{
				{Status: "delivered", Count: 4, TotalIncome: 800000},
				{Status: "pending", Count: 1, TotalIncome: 0},
			}, nil
		},
		expensesByTypeFn: func(ctx context.Context, start, end time.Time) ([]report.ExpenseTypeSummary, error) {
			return []report.ExpenseTypeSummary{
				{ExpenseType: "fuel", Count: 3, TotalAmount: 120000},
			}, nil
		},
		findPeriodFn: func(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
			p := period.NewForMonth(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
			p.ID = periodID
			p.Status = period.StatusProcessed
			return p, nil
		},
		recordsByPeriodFn: func(ctx context.Context, id string) ([]report.PayrollRecordSummary, error) {
			assert.Equal(t, periodID.String(), id)
			return []report.PayrollRecordSummary{
				{EmployeeID: uuid.NewString(), EmployeeName: "John Mwangi", OriginalSalary: 250000, TotalFines: 15000, NetSalary: 235000},
			}, nil
		},
	}
	svc := report.NewService(repo, nil)

	resp, err := svc.MonthlySummary(ctx, 2025, 11)

	assert.NoError(t, err)
	assert.Equal(t, int64(20000), resp.TotalFineCost)
	assert.Equal(t, int64(800000), resp.TotalIncome)
	assert.Equal(t, int64(120000), resp.TotalExpenses)
	assert.Equal(t, period.StatusProcessed, resp.PeriodStatus)
	assert.Len(t, resp.PayrollRecords, 1)
	assert.Equal(t, int64(235000), resp.PayrollRecords[0].NetSalary)
}

func TestReportService_MonthlySummary_CacheHit(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()

	cached := report.MonthlySummaryResponse{
		Year:       2025,
		Month:      11,
		PeriodName: "November 2025",
	}
	payload, _ := json.Marshal(cached)
	redisMock.ExpectGet("reports:monthly:2025-11").SetVal(string(payload))

	queried := false
	repo := &fakeReportRepository{
		finesByEmployeeFn: func(ctx context.Context, start, end time.Time) ([]report.EmployeeFineSummary, error) {
			queried = true
			return nil, nil
		},
	}
	svc := report.NewService(repo, rdb)

	resp, err := svc.MonthlySummary(ctx, 2025, 11)

	assert.NoError(t, err)
	assert.Equal(t, "November 2025", resp.PeriodName)
	assert.False(t, queried)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestReportService_MonthlySummary_Validation(t *testing.T) {
	ctx := context.Background()
	svc := report.NewService(&fakeReportRepository{}, nil)

	_, err := svc.MonthlySummary(ctx, 0, 11)
	assert.ErrorIs(t, err, reporterrors.ErrYearMonthRequired)

	_, err = svc.MonthlySummary(ctx, 2025, 13)
	assert.ErrorIs(t, err, reporterrors.ErrInvalidMonth)
}
