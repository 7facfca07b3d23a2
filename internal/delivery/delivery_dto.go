package delivery

type CreateDeliveryRequest struct {
	TruckID      string `json:"truck_id" binding:"required"`
	DriverID     string `json:"driver_id" binding:"required"`
	TurnboyID    string `json:"turnboy_id"`
	DeliveryDate string `json:"delivery_date" binding:"required"`
	Origin       string `json:"origin"`
	Destination  string `json:"destination" binding:"required"`
	CargoDesc    string `json:"cargo_desc"`
	Income       int64  `json:"income" binding:"gte=0"`
}

type UpdateDeliveryRequest struct {
	Destination string `json:"destination"`
	CargoDesc   string `json:"cargo_desc"`
	Income      int64  `json:"income" binding:"gte=0"`
	Status      string `json:"status" binding:"omitempty,oneof=pending in_transit delivered cancelled"`
}

type DeliveryResponse struct {
	ID           string  `json:"id"`
	TruckID      string  `json:"truck_id"`
	DriverID     string  `json:"driver_id"`
	TurnboyID    *string `json:"turnboy_id,omitempty"`
	DeliveryDate string  `json:"delivery_date"`
	Origin       string  `json:"origin,omitempty"`
	Destination  string  `json:"destination"`
	CargoDesc    string  `json:"cargo_desc,omitempty"`
	Income       int64   `json:"income"`
	Status       string  `json:"status"`
}
