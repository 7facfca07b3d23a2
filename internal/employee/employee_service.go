package employee

import (
	"context"

	employeeerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/employee/errors"
	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, role, status string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("employee.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	emp := &Employee{
		ID:       uuid.New(),
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     req.Role,
		Status:   StatusActive,
		Salary:   req.Salary,
	}

	if req.TruckID != "" {
		truckUUID, err := uuid.Parse(req.TruckID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidTruckID
		}
		if err := s.checkTruckFree(ctx, req.TruckID, ""); err != nil {
			return EmployeeResponse{}, err
		}
		emp.TruckID = &truckUUID
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("create employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID.String()),
		zap.String("role", emp.Role),
	)

	return mapToResponse(emp), nil
}

func (s *service) GetAll(ctx context.Context, role, status string) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx, role, status)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = mapToResponse(&employees[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(emp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.FullName != "" {
		emp.FullName = req.FullName
	}
	if req.Phone != "" {
		emp.Phone = req.Phone
	}
	if req.Status != "" {
		emp.Status = req.Status
	}
	if req.TruckID != nil {
		if *req.TruckID == "" {
			emp.TruckID = nil
		} else {
			truckUUID, err := uuid.Parse(*req.TruckID)
			if err != nil {
				return EmployeeResponse{}, employeeerrors.ErrInvalidTruckID
			}
			if err := s.checkTruckFree(ctx, *req.TruckID, id); err != nil {
				return EmployeeResponse{}, err
			}
			emp.TruckID = &truckUUID
		}
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

// checkTruckFree enforces the soft exclusivity rule: one active employee per
// truck. Not a DB constraint, so the check happens on every assignment.
func (s *service) checkTruckFree(ctx context.Context, truckID, excludeEmployeeID string) error {
	count, err := s.repo.CountActiveByTruck(ctx, truckID, excludeEmployeeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if count > 0 {
		return employeeerrors.ErrTruckAlreadyAssigned
	}
	return nil
}

func mapToResponse(emp *Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:       emp.ID.String(),
		FullName: emp.FullName,
		Phone:    emp.Phone,
		Role:     emp.Role,
		Status:   emp.Status,
		Salary:   emp.Salary,
	}
	if emp.TruckID != nil {
		v := emp.TruckID.String()
		resp.TruckID = &v
	}
	return resp
}
