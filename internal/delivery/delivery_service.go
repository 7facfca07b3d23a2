package delivery

import (
	"context"
	"errors"
	"strings"
	"time"

	deliveryerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/delivery/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateDeliveryRequest) (DeliveryResponse, error)
	GetAll(ctx context.Context, status string, from, to *time.Time) ([]DeliveryResponse, error)
	GetByID(ctx context.Context, id string) (DeliveryResponse, error)
	Update(ctx context.Context, id string, req UpdateDeliveryRequest) (DeliveryResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: zap.L().Named("delivery.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateDeliveryRequest) (DeliveryResponse, error) {
	truckID, err := uuid.Parse(req.TruckID)
	if err != nil {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidReference
	}
	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidReference
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		return DeliveryResponse{}, deliveryerrors.ErrInvalidDateFormat
	}

	d := &Delivery{
		ID:           uuid.New(),
		TruckID:      truckID,
		DriverID:     driverID,
		DeliveryDate: deliveryDate,
		Origin:       req.Origin,
		Destination:  req.Destination,
		CargoDesc:    req.CargoDesc,
		Income:       req.Income,
		Status:       StatusPending,
	}

	if req.TurnboyID != "" {
		turnboyID, err := uuid.Parse(req.TurnboyID)
		if err != nil {
			return DeliveryResponse{}, deliveryerrors.ErrInvalidReference
		}
		d.TurnboyID = &turnboyID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return DeliveryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(d), nil
}

func (s *service) GetAll(ctx context.Context, status string, from, to *time.Time) ([]DeliveryResponse, error) {
	deliveries, err := s.repo.FindAll(ctx, status, from, to)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]DeliveryResponse, len(deliveries))
	for i := range deliveries {
		resp[i] = mapToResponse(&deliveries[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DeliveryResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DeliveryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDeliveryRequest) (DeliveryResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DeliveryResponse{}, mapRepositoryError(err)
	}

	if req.Destination != "" {
		d.Destination = req.Destination
	}
	if req.CargoDesc != "" {
		d.CargoDesc = req.CargoDesc
	}
	if req.Income > 0 {
		d.Income = req.Income
	}
	if req.Status != "" {
		d.Status = req.Status
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return DeliveryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(d), nil
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
		return deliveryerrors.ErrDeliveryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return deliveryerrors.ErrInvalidReference
	}
	if strings.Contains(strings.ToLower(err.Error()), "violates foreign key constraint") {
		return deliveryerrors.ErrInvalidReference
	}

	return err
}

func mapToResponse(d *Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		ID:           d.ID.String(),
		TruckID:      d.TruckID.String(),
		DriverID:     d.DriverID.String(),
		DeliveryDate: d.DeliveryDate.Format("2006-01-02"),
		Origin:       d.Origin,
		Destination:  d.Destination,
		CargoDesc:    d.CargoDesc,
		Income:       d.Income,
		Status:       d.Status,
	}
	if d.TurnboyID != nil {
		v := d.TurnboyID.String()
		resp.TurnboyID = &v
	}
	return resp
}
