package period

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// UpsertByMonth inserts the period if (year, month) is new and is a no-op
	// otherwise. Single statement, so two racing first-touch callers cannot
	// create duplicate rows.
	UpsertByMonth(ctx context.Context, p *PayrollPeriod) error
	FindByMonth(ctx context.Context, year, month int) (*PayrollPeriod, error)
	FindByID(ctx context.Context, id string) (*PayrollPeriod, error)
	FindAll(ctx context.Context) ([]PayrollPeriod, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) UpsertByMonth(ctx context.Context, p *PayrollPeriod) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO payroll_periods (id, year, month, period_name, start_date, end_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, now(), now())
		ON CONFLICT (year, month) DO NOTHING
	`, p.ID, p.Year, p.Month, p.PeriodName, p.StartDate, p.EndDate, p.Status).Error
}

func (r *repository) FindByMonth(ctx context.Context, year, month int) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).
		First(&p, "year = ? AND month = ?", year, month).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*PayrollPeriod, error) {
	var p PayrollPeriod
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context) ([]PayrollPeriod, error) {
	var periods []PayrollPeriod
	err := r.db.WithContext(ctx).
		Order("year DESC, month DESC").
		Find(&periods).Error
	return periods, err
}

// NewForMonth builds an open period covering the month that contains ref.
func NewForMonth(ref time.Time) *PayrollPeriod {
	start, end := MonthBounds(ref)
	return &PayrollPeriod{
		ID:         uuid.New(),
		Year:       start.Year(),
		Month:      int(start.Month()),
		PeriodName: PeriodNameFor(start.Year(), start.Month()),
		StartDate:  start,
		EndDate:    end,
		Status:     StatusOpen,
	}
}
