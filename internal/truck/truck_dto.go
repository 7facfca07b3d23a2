package truck

type CreateTruckRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Model       string `json:"model"`
	CapacityKG  int64  `json:"capacity_kg"`
}

type UpdateTruckRequest struct {
	Model      string `json:"model"`
	CapacityKG int64  `json:"capacity_kg"`
	Status     string `json:"status" binding:"omitempty,oneof=active maintenance retired"`
}

type TruckResponse struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plate_number"`
	Model       string `json:"model,omitempty"`
	CapacityKG  int64  `json:"capacity_kg"`
	Status      string `json:"status"`
}
