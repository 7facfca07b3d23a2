package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/period"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PeriodWithCounts pairs a period with how many records and fines hang off it.
type PeriodWithCounts struct {
	Period      period.PayrollPeriod
	RecordCount int64
	FineCount   int64
}

// RecordWithEmployee is a payroll record joined with the employee's name and
// role for listing.
type RecordWithEmployee struct {
	ID              uuid.UUID
	PayrollPeriodID uuid.UUID
	EmployeeID      uuid.UUID
	EmployeeName    string
	Role            string
	OriginalSalary  int64
	TotalFines      int64
	NetSalary       int64
	Status          string
}

type Repository interface {
	// WithTx binds the closer's mutating methods to tx. Listing helpers keep
	// using the pool.
	WithTx(tx *sql.Tx) Repository

	GetPeriodForUpdate(ctx context.Context, year, month int) (*period.PayrollPeriod, error)
	ListActivePayableEmployees(ctx context.Context) ([]PayableEmployee, error)
	TagFinesInWindow(ctx context.Context, periodID uuid.UUID, start, end time.Time) (int64, error)
	SumFinesByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int64, error)
	UpsertRecord(ctx context.Context, rec *PayrollRecord) error
	MarkProcessed(ctx context.Context, periodID uuid.UUID, actorID *uuid.UUID, at time.Time) (bool, error)

	ListPeriodsWithCounts(ctx context.Context) ([]PeriodWithCounts, error)
	GetPeriodWithCounts(ctx context.Context, id string) (*PeriodWithCounts, error)
	RecordsByPeriod(ctx context.Context, periodID string) ([]RecordWithEmployee, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

// GetPeriodForUpdate locks the period row so the already-processed guard and
// the processed flip happen against the same version of the row. Two racing
// month-end calls serialize here; the loser sees status=processed.
func (r *repository) GetPeriodForUpdate(ctx context.Context, year, month int) (*period.PayrollPeriod, error) {
	query := `
        SELECT id, year, month, period_name, start_date, end_date, status, processed_at, processed_by
        FROM payroll_periods
        WHERE year = $1 AND month = $2
        FOR UPDATE
    `

	var (
		p           period.PayrollPeriod
		processedAt sql.NullTime
		processedBy uuid.NullUUID
	)
	err := r.execer().QueryRowContext(ctx, query, year, month).Scan(
		&p.ID, &p.Year, &p.Month, &p.PeriodName, &p.StartDate, &p.EndDate,
		&p.Status, &processedAt, &processedBy,
	)
	if err != nil {
		return nil, err
	}

	if processedAt.Valid {
		p.ProcessedAt = &processedAt.Time
	}
	if processedBy.Valid {
		p.ProcessedBy = &processedBy.UUID
	}
	return &p, nil
}

func (r *repository) ListActivePayableEmployees(ctx context.Context) ([]PayableEmployee, error) {
	query := `
        SELECT id, full_name, role, salary
        FROM employees
        WHERE status = 'active' AND role IN ('driver', 'turnboy')
        ORDER BY full_name ASC
    `

	rows, err := r.execer().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []PayableEmployee
	for rows.Next() {
		var e PayableEmployee
		if err := rows.Scan(&e.ID, &e.FullName, &e.Role, &e.Salary); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// TagFinesInWindow backfills the period id onto fines in the window that
// predate lazy period creation.
func (r *repository) TagFinesInWindow(ctx context.Context, periodID uuid.UUID, start, end time.Time) (int64, error) {
	query := `
        UPDATE fines
        SET payroll_period_id = $1, updated_at = NOW()
        WHERE fine_date >= $2 AND fine_date <= $3 AND payroll_period_id IS NULL
    `
	res, err := r.execer().ExecContext(ctx, query, periodID, start, end)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SumFinesByEmployee totals fine_cost over the window regardless of payment
// status. Paid fines still reduce net salary; payments are accounting-only.
func (r *repository) SumFinesByEmployee(ctx context.Context, employeeID uuid.UUID, start, end time.Time) (int64, error) {
	query := `
        SELECT COALESCE(SUM(fine_cost), 0)
        FROM fines
        WHERE employee_id = $1 AND fine_date >= $2 AND fine_date <= $3
    `
	var total int64
	err := r.execer().QueryRowContext(ctx, query, employeeID, start, end).Scan(&total)
	return total, err
}

func (r *repository) UpsertRecord(ctx context.Context, rec *PayrollRecord) error {
	query := `
        INSERT INTO payroll_records (
            id, payroll_period_id, employee_id, original_salary, total_fines,
            net_salary, status, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
        ON CONFLICT (payroll_period_id, employee_id) DO UPDATE SET
            original_salary = EXCLUDED.original_salary,
            total_fines = EXCLUDED.total_fines,
            net_salary = EXCLUDED.net_salary,
            status = EXCLUDED.status,
            updated_at = NOW()
    `
	_, err := r.execer().ExecContext(
		ctx, query,
		rec.ID, rec.PayrollPeriodID, rec.EmployeeID,
		rec.OriginalSalary, rec.TotalFines, rec.NetSalary, rec.Status,
	)
	return err
}

// MarkProcessed flips the period open -> processed. Returns false when the
// row was no longer open, which means another caller closed it first.
func (r *repository) MarkProcessed(ctx context.Context, periodID uuid.UUID, actorID *uuid.UUID, at time.Time) (bool, error) {
	query := `
        UPDATE payroll_periods
        SET status = 'processed', processed_at = $2, processed_by = $3, updated_at = NOW()
        WHERE id = $1 AND status = 'open'
    `
	var actor any
	if actorID != nil {
		actor = *actorID
	}
	res, err := r.execer().ExecContext(ctx, query, periodID, at, actor)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) ListPeriodsWithCounts(ctx context.Context) ([]PeriodWithCounts, error) {
	var periods []period.PayrollPeriod
	err := r.db.WithContext(ctx).
		Order("year DESC, month DESC").
		Find(&periods).Error
	if err != nil {
		return nil, err
	}

	recordCounts, err := r.countByPeriod(ctx, "payroll_records")
	if err != nil {
		return nil, err
	}
	fineCounts, err := r.countByPeriod(ctx, "fines")
	if err != nil {
		return nil, err
	}

	out := make([]PeriodWithCounts, len(periods))
	for i, p := range periods {
		out[i] = PeriodWithCounts{
			Period:      p,
			RecordCount: recordCounts[p.ID],
			FineCount:   fineCounts[p.ID],
		}
	}
	return out, nil
}

func (r *repository) GetPeriodWithCounts(ctx context.Context, id string) (*PeriodWithCounts, error) {
	var p period.PayrollPeriod
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}

	out := &PeriodWithCounts{Period: p}
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("payroll_period_id = ?", p.ID).
		Count(&out.RecordCount).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Table("fines").
		Where("payroll_period_id = ?", p.ID).
		Count(&out.FineCount).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) RecordsByPeriod(ctx context.Context, periodID string) ([]RecordWithEmployee, error) {
	query := `
        SELECT r.id, r.payroll_period_id, r.employee_id, e.full_name, e.role,
               r.original_salary, r.total_fines, r.net_salary, r.status
        FROM payroll_records r
        JOIN employees e ON e.id = r.employee_id
        WHERE r.payroll_period_id = ?
        ORDER BY e.full_name ASC
    `

	var records []RecordWithEmployee
	rows, err := r.db.WithContext(ctx).Raw(query, periodID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec RecordWithEmployee
		if err := rows.Scan(
			&rec.ID, &rec.PayrollPeriodID, &rec.EmployeeID, &rec.EmployeeName, &rec.Role,
			&rec.OriginalSalary, &rec.TotalFines, &rec.NetSalary, &rec.Status,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *repository) countByPeriod(ctx context.Context, table string) (map[uuid.UUID]int64, error) {
	type row struct {
		PayrollPeriodID uuid.UUID
		Total           int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table(table).
		Select("payroll_period_id, COUNT(*) AS total").
		Where("payroll_period_id IS NOT NULL").
		Group("payroll_period_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		counts[r.PayrollPeriodID] = r.Total
	}
	return counts, nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
