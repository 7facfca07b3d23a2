package employee

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	FindAll(ctx context.Context, role, status string) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id string) error
	CountActiveByTruck(ctx context.Context, truckID string, excludeEmployeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindAll(ctx context.Context, role, status string) ([]Employee, error) {
	var employees []Employee
	db := r.db.WithContext(ctx).Order("full_name ASC")
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountActiveByTruck(ctx context.Context, truckID string, excludeEmployeeID string) (int64, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("truck_id = ?", truckID).
		Where("status = ?", StatusActive)
	if excludeEmployeeID != "" {
		db = db.Where("id <> ?", excludeEmployeeID)
	}
	err := db.Count(&count).Error
	return count, err
}
