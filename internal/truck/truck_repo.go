package truck

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *Truck) error
	FindAll(ctx context.Context) ([]Truck, error)
	FindByID(ctx context.Context, id string) (*Truck, error)
	Update(ctx context.Context, t *Truck) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Truck) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Truck, error) {
	var trucks []Truck
	err := r.db.WithContext(ctx).Order("plate_number ASC").Find(&trucks).Error
	return trucks, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Truck, error) {
	var t Truck
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Truck) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Truck{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
