package fine

type CreateFineRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	CarID       string `json:"car_id" binding:"required"`
	DeliveryID  string `json:"delivery_id"`
	FineType    string `json:"fine_type" binding:"required"`
	FineDate    string `json:"fine_date" binding:"required"`
	FineCost    int64  `json:"fine_cost" binding:"required,gt=0"`
	Description string `json:"description"`
}

type UpdateFineRequest struct {
	EmployeeID  string `json:"employee_id"`
	CarID       string `json:"car_id"`
	FineType    string `json:"fine_type"`
	FineDate    string `json:"fine_date"`
	FineCost    int64  `json:"fine_cost" binding:"omitempty,gt=0"`
	Description string `json:"description"`
}

type RecordPaymentRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	PaymentDate string `json:"payment_date"`
	Notes       string `json:"notes"`
}

type FineResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	CarID           string  `json:"car_id"`
	DeliveryID      *string `json:"delivery_id,omitempty"`
	FineType        string  `json:"fine_type"`
	FineDate        string  `json:"fine_date"`
	FineCost        int64   `json:"fine_cost"`
	PaidAmount      int64   `json:"paid_amount"`
	RemainingAmount int64   `json:"remaining_amount"`
	PayStatus       string  `json:"pay_status"`
	PayrollPeriodID *string `json:"payroll_period_id,omitempty"`
	Description     string  `json:"description,omitempty"`
}

type PaymentResponse struct {
	ID              string  `json:"id"`
	FineID          string  `json:"fine_id"`
	PayrollPeriodID string  `json:"payroll_period_id"`
	Amount          int64   `json:"amount"`
	PaymentDate     string  `json:"payment_date"`
	Notes           string  `json:"notes,omitempty"`
	CreatedBy       *string `json:"created_by,omitempty"`
}

// RecordPaymentResponse returns the payment together with the fine it
// settled against, so the caller sees the new balance without a second read.
type RecordPaymentResponse struct {
	Payment PaymentResponse `json:"payment"`
	Fine    FineResponse    `json:"fine"`
}

type FineBalance struct {
	ID              string `json:"id"`
	FineCost        int64  `json:"fine_cost"`
	PaidAmount      int64  `json:"paid_amount"`
	RemainingAmount int64  `json:"remaining_amount"`
	PayStatus       string `json:"pay_status"`
}

type PaymentHistoryResponse struct {
	Fine      FineBalance       `json:"fine"`
	Payments  []PaymentResponse `json:"payments"`
	TotalPaid int64             `json:"total_paid"`
}
