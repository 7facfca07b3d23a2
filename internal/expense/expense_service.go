package expense

import (
	"context"
	"errors"
	"time"

	expenseerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/expense/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	GetAll(ctx context.Context, expenseType string, from, to *time.Time) ([]ExpenseResponse, error)
	GetByID(ctx context.Context, id string) (ExpenseResponse, error)
	Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("expense.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error) {
	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}

	e := &Expense{
		ID:          uuid.New(),
		ExpenseType: req.ExpenseType,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Description: req.Description,
	}

	if req.TruckID != "" {
		truckUUID, err := uuid.Parse(req.TruckID)
		if err != nil {
			return ExpenseResponse{}, expenseerrors.ErrInvalidTruckID
		}
		e.TruckID = &truckUUID
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(e), nil
}

func (s *service) GetAll(ctx context.Context, expenseType string, from, to *time.Time) ([]ExpenseResponse, error) {
	expenses, err := s.repo.FindAll(ctx, expenseType, from, to)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = mapToResponse(&expenses[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateExpenseRequest) (ExpenseResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	if req.ExpenseType != "" {
		e.ExpenseType = req.ExpenseType
	}
	if req.Amount > 0 {
		e.Amount = req.Amount
	}
	if req.Description != "" {
		e.Description = req.Description
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return expenseerrors.ErrExpenseNotFound
	}
	return err
}

func mapToResponse(e *Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID.String(),
		ExpenseType: e.ExpenseType,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		Description: e.Description,
	}
	if e.TruckID != nil {
		v := e.TruckID.String()
		resp.TruckID = &v
	}
	return resp
}
