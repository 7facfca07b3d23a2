package fine

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// WithTx binds the transactional methods (InsertFine, GetForUpdate,
	// InsertPayment, UpdateBalances, Update) to tx. Read helpers keep using
	// the pool.
	WithTx(tx *sql.Tx) Repository

	InsertFine(ctx context.Context, f *Fine) error
	GetForUpdate(ctx context.Context, id string) (*Fine, error)
	InsertPayment(ctx context.Context, p *Payment) error
	UpdateBalances(ctx context.Context, fineID uuid.UUID, paidAmount, remainingAmount int64, payStatus string) error
	Update(ctx context.Context, f *Fine) error

	FindAll(ctx context.Context, employeeID, payStatus string) ([]Fine, error)
	FindByID(ctx context.Context, id string) (*Fine, error)
	Delete(ctx context.Context, id string) error
	ListPaymentsByFine(ctx context.Context, fineID string) ([]Payment, error)
	EmployeeExists(ctx context.Context, id string) (bool, error)
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

func (r *repository) InsertFine(ctx context.Context, f *Fine) error {
	query := `
        INSERT INTO fines (
            id, employee_id, car_id, delivery_id, fine_type, description,
            fine_date, fine_cost, paid_amount, remaining_amount, pay_status,
            payroll_period_id, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
    `

	var deliveryID, periodID any
	if f.DeliveryID != nil {
		deliveryID = *f.DeliveryID
	}
	if f.PayrollPeriodID != nil {
		periodID = *f.PayrollPeriodID
	}

	_, err := r.execer().ExecContext(
		ctx, query,
		f.ID, f.EmployeeID, f.CarID, deliveryID, f.FineType, f.Description,
		f.FineDate, f.FineCost, f.PaidAmount, f.RemainingAmount, f.PayStatus,
		periodID,
	)
	return err
}

// GetForUpdate locks the fine row for the duration of the surrounding
// transaction. Two concurrent payments against the same fine serialize here,
// so the balance check never runs against a stale figure.
func (r *repository) GetForUpdate(ctx context.Context, id string) (*Fine, error) {
	query := `
        SELECT id, employee_id, car_id, delivery_id, fine_type, description,
               fine_date, fine_cost, paid_amount, remaining_amount, pay_status,
               payroll_period_id
        FROM fines
        WHERE id = $1
        FOR UPDATE
    `

	var (
		f          Fine
		deliveryID uuid.NullUUID
		periodID   uuid.NullUUID
	)
	err := r.execer().QueryRowContext(ctx, query, id).Scan(
		&f.ID, &f.EmployeeID, &f.CarID, &deliveryID, &f.FineType, &f.Description,
		&f.FineDate, &f.FineCost, &f.PaidAmount, &f.RemainingAmount, &f.PayStatus,
		&periodID,
	)
	if err != nil {
		return nil, err
	}

	if deliveryID.Valid {
		f.DeliveryID = &deliveryID.UUID
	}
	if periodID.Valid {
		f.PayrollPeriodID = &periodID.UUID
	}
	return &f, nil
}

func (r *repository) InsertPayment(ctx context.Context, p *Payment) error {
	query := `
        INSERT INTO payments (
            id, fine_id, payroll_period_id, amount, payment_date, notes,
            created_by, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
    `

	var createdBy any
	if p.CreatedBy != nil {
		createdBy = *p.CreatedBy
	}

	_, err := r.execer().ExecContext(
		ctx, query,
		p.ID, p.FineID, p.PayrollPeriodID, p.Amount, p.PaymentDate, p.Notes,
		createdBy,
	)
	return err
}

func (r *repository) UpdateBalances(
	ctx context.Context,
	fineID uuid.UUID,
	paidAmount, remainingAmount int64,
	payStatus string,
) error {
	query := `
        UPDATE fines
        SET paid_amount = $2, remaining_amount = $3, pay_status = $4, updated_at = NOW()
        WHERE id = $1
    `
	res, err := r.execer().ExecContext(ctx, query, fineID, paidAmount, remainingAmount, payStatus)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context, employeeID, payStatus string) ([]Fine, error) {
	var fines []Fine
	db := r.db.WithContext(ctx).Order("fine_date DESC, created_at DESC")
	if employeeID != "" {
		db = db.Where("employee_id = ?", employeeID)
	}
	if payStatus != "" {
		db = db.Where("pay_status = ?", payStatus)
	}
	err := db.Find(&fines).Error
	return fines, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Fine, error) {
	var f Fine
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Update writes every mutable column, balances included. Callers must hold
// the row via GetForUpdate in the same transaction; a pool-read snapshot here
// would let a concurrently committed payment be overwritten with stale
// balance figures.
func (r *repository) Update(ctx context.Context, f *Fine) error {
	query := `
        UPDATE fines
        SET employee_id = $2, car_id = $3, delivery_id = $4, fine_type = $5,
            description = $6, fine_date = $7, fine_cost = $8, paid_amount = $9,
            remaining_amount = $10, pay_status = $11, updated_at = NOW()
        WHERE id = $1
    `

	var deliveryID any
	if f.DeliveryID != nil {
		deliveryID = *f.DeliveryID
	}

	res, err := r.execer().ExecContext(
		ctx, query,
		f.ID, f.EmployeeID, f.CarID, deliveryID, f.FineType, f.Description,
		f.FineDate, f.FineCost, f.PaidAmount, f.RemainingAmount, f.PayStatus,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Payment{}, "fine_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&Fine{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *repository) ListPaymentsByFine(ctx context.Context, fineID string) ([]Payment, error) {
	var payments []Payment
	err := r.db.WithContext(ctx).
		Where("fine_id = ?", fineID).
		Order("payment_date DESC, created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *repository) EmployeeExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
