package expense

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, e *Expense) error
	FindAll(ctx context.Context, expenseType string, from, to *time.Time) ([]Expense, error)
	FindByID(ctx context.Context, id string) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, expenseType string, from, to *time.Time) ([]Expense, error) {
	var expenses []Expense
	db := r.db.WithContext(ctx).Order("expense_date DESC")
	if expenseType != "" {
		db = db.Where("expense_type = ?", expenseType)
	}
	if from != nil && to != nil {
		db = db.Where("expense_date BETWEEN ? AND ?", from, to)
	}
	err := db.Find(&expenses).Error
	return expenses, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Expense, error) {
	var e Expense
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Expense{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
