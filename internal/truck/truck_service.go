package truck

import (
	"context"
	"errors"
	"strings"

	truckerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/truck/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateTruckRequest) (TruckResponse, error)
	GetAll(ctx context.Context) ([]TruckResponse, error)
	GetByID(ctx context.Context, id string) (TruckResponse, error)
	Update(ctx context.Context, id string, req UpdateTruckRequest) (TruckResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("truck.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateTruckRequest) (TruckResponse, error) {
	t := &Truck{
		ID:          uuid.New(),
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Model:       req.Model,
		CapacityKG:  req.CapacityKG,
		Status:      StatusActive,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return TruckResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TruckResponse, error) {
	trucks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]TruckResponse, len(trucks))
	for i := range trucks {
		resp[i] = mapToResponse(&trucks[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TruckResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TruckResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTruckRequest) (TruckResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TruckResponse{}, mapRepositoryError(err)
	}

	if req.Model != "" {
		t.Model = req.Model
	}
	if req.CapacityKG > 0 {
		t.CapacityKG = req.CapacityKG
	}
	if req.Status != "" {
		t.Status = req.Status
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return TruckResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(t), nil
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
		return truckerrors.ErrTruckNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return truckerrors.ErrPlateAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_truck_plate") {
		return truckerrors.ErrPlateAlreadyExists
	}

	return err
}

func mapToResponse(t *Truck) TruckResponse {
	return TruckResponse{
		ID:          t.ID.String(),
		PlateNumber: t.PlateNumber,
		Model:       t.Model,
		CapacityKG:  t.CapacityKG,
		Status:      t.Status,
	}
}
