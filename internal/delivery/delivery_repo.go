package delivery

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	FindAll(ctx context.Context, status string, from, to *time.Time) ([]Delivery, error)
	FindByID(ctx context.Context, id string) (*Delivery, error)
	Update(ctx context.Context, d *Delivery) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Delivery) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, status string, from, to *time.Time) ([]Delivery, error) {
	var deliveries []Delivery
	db := r.db.WithContext(ctx).Order("delivery_date DESC")
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if from != nil && to != nil {
		db = db.Where("delivery_date BETWEEN ? AND ?", from, to)
	}
	err := db.Find(&deliveries).Error
	return deliveries, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Delivery, error) {
	var d Delivery
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Delivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Delivery{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
