package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"
	reporterrors "github.com/zaincode21/Truck-management-backend-sub000/internal/report/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const monthlySummaryTTL = 5 * time.Minute

func monthlySummaryKey(year, month int) string {
	return fmt.Sprintf("reports:monthly:%d-%02d", year, month)
}

type Service interface {
	MonthlySummary(ctx context.Context, year, month int) (MonthlySummaryResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client) Service {
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("report.service"),
	}
}

// MonthlySummary is a pure read: it never creates the period row, so asking
// about an untouched month returns zeros rather than minting state.
func (s *service) MonthlySummary(ctx context.Context, year, month int) (MonthlySummaryResponse, error) {
	if year == 0 || month == 0 {
		return MonthlySummaryResponse{}, reporterrors.ErrYearMonthRequired
	}
	if month < 1 || month > 12 {
		return MonthlySummaryResponse{}, reporterrors.ErrInvalidMonth
	}

	cacheKey := monthlySummaryKey(year, month)
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp MonthlySummaryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.buildSummary(ctx, year, month)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, monthlySummaryTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return MonthlySummaryResponse{}, err
	}

	return v.(MonthlySummaryResponse), nil
}

func (s *service) buildSummary(ctx context.Context, year, month int) (MonthlySummaryResponse, error) {
	start, end := period.MonthBounds(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))

	resp := MonthlySummaryResponse{
		Year:           year,
		Month:          month,
		PeriodName:     period.PeriodNameFor(year, time.Month(month)),
		Fines:          make([]EmployeeFineSummary, 0),
		Deliveries:     make([]DeliveryStatusSummary, 0),
		Expenses:       make([]ExpenseTypeSummary, 0),
		PayrollRecords: make([]PayrollRecordSummary, 0),
	}

	fines, err := s.repo.FinesByEmployee(ctx, start, end)
	if err != nil {
		return MonthlySummaryResponse{}, s.mapRepositoryError(err)
	}
	resp.Fines = fines
	for _, f := range fines {
		resp.TotalFineCost += f.TotalFineCost
	}

	deliveries, err := s.repo.DeliveriesByStatus(ctx, start, end)
	if err != nil {
		return MonthlySummaryResponse{}, s.mapRepositoryError(err)
	}
	resp.Deliveries = deliveries
	for _, d := range deliveries {
		resp.TotalIncome += d.TotalIncome
	}

	expenses, err := s.repo.ExpensesByType(ctx, start, end)
	if err != nil {
		return MonthlySummaryResponse{}, s.mapRepositoryError(err)
	}
	resp.Expenses = expenses
	for _, e := range expenses {
		resp.TotalExpenses += e.TotalAmount
	}

	p, err := s.repo.FindPeriod(ctx, year, month)
	if err != nil {
		return MonthlySummaryResponse{}, s.mapRepositoryError(err)
	}
	if p != nil {
		resp.PeriodName = p.PeriodName
		resp.PeriodStatus = p.Status

		records, err := s.repo.RecordsByPeriod(ctx, p.ID.String())
		if err != nil {
			return MonthlySummaryResponse{}, s.mapRepositoryError(err)
		}
		resp.PayrollRecords = records
	}

	return resp, nil
}

func (s *service) mapRepositoryError(err error) error {
	s.logger.Error("report repository error", zap.Error(err))
	return apperror.ErrInternal
}
