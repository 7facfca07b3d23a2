package report

import (
	"context"
	"errors"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"

	"gorm.io/gorm"
)

type Repository interface {
	FindPeriod(ctx context.Context, year, month int) (*period.PayrollPeriod, error)
	FinesByEmployee(ctx context.Context, start, end time.Time) ([]EmployeeFineSummary, error)
	DeliveriesByStatus(ctx context.Context, start, end time.Time) ([]DeliveryStatusSummary, error)
	ExpensesByType(ctx context.Context, start, end time.Time) ([]ExpenseTypeSummary, error)
	RecordsByPeriod(ctx context.Context, periodID string) ([]PayrollRecordSummary, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindPeriod returns nil without error when the month has never been touched.
func (r *repository) FindPeriod(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
	var p period.PayrollPeriod
	err := r.db.WithContext(ctx).First(&p, "year = ? AND month = ?", year, month).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FinesByEmployee(ctx context.Context, start, end time.Time) ([]EmployeeFineSummary, error) {
	query := `
        SELECT f.employee_id, e.full_name, COUNT(*), SUM(f.fine_cost),
               SUM(f.paid_amount), SUM(f.remaining_amount)
        FROM fines f
        JOIN employees e ON e.id = f.employee_id
        WHERE f.fine_date >= ? AND f.fine_date <= ?
        GROUP BY f.employee_id, e.full_name
        ORDER BY e.full_name ASC
    `

	rows, err := r.db.WithContext(ctx).Raw(query, start, end).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]EmployeeFineSummary, 0)
	for rows.Next() {
		var s EmployeeFineSummary
		if err := rows.Scan(
			&s.EmployeeID, &s.EmployeeName, &s.FineCount,
			&s.TotalFineCost, &s.TotalPaid, &s.TotalOutstanding,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *repository) DeliveriesByStatus(ctx context.Context, start, end time.Time) ([]DeliveryStatusSummary, error) {
	query := `
        SELECT status, COUNT(*), COALESCE(SUM(income), 0)
        FROM deliveries
        WHERE delivery_date >= ? AND delivery_date <= ?
        GROUP BY status
        ORDER BY status ASC
    `

	rows, err := r.db.WithContext(ctx).Raw(query, start, end).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]DeliveryStatusSummary, 0)
	for rows.Next() {
		var s DeliveryStatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalIncome); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *repository) ExpensesByType(ctx context.Context, start, end time.Time) ([]ExpenseTypeSummary, error) {
	query := `
        SELECT expense_type, COUNT(*), COALESCE(SUM(amount), 0)
        FROM expenses
        WHERE expense_date >= ? AND expense_date <= ?
        GROUP BY expense_type
        ORDER BY expense_type ASC
    `

	rows, err := r.db.WithContext(ctx).Raw(query, start, end).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]ExpenseTypeSummary, 0)
	for rows.Next() {
		var s ExpenseTypeSummary
		if err := rows.Scan(&s.ExpenseType, &s.Count, &s.TotalAmount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *repository) RecordsByPeriod(ctx context.Context, periodID string) ([]PayrollRecordSummary, error) {
	query := `
        SELECT r.employee_id, e.full_name, r.original_salary, r.total_fines, r.net_salary
        FROM payroll_records r
        JOIN employees e ON e.id = r.employee_id
        WHERE r.payroll_period_id = ?
        ORDER BY e.full_name ASC
    `

	rows, err := r.db.WithContext(ctx).Raw(query, periodID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]PayrollRecordSummary, 0)
	for rows.Next() {
		var rec PayrollRecordSummary
		if err := rows.Scan(
			&rec.EmployeeID, &rec.EmployeeName,
			&rec.OriginalSalary, &rec.TotalFines, &rec.NetSalary,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
