package expense

type CreateExpenseRequest struct {
	TruckID     string `json:"truck_id"`
	ExpenseType string `json:"expense_type" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	ExpenseDate string `json:"expense_date" binding:"required"`
	Description string `json:"description"`
}

type UpdateExpenseRequest struct {
	ExpenseType string `json:"expense_type"`
	Amount      int64  `json:"amount" binding:"omitempty,gt=0"`
	Description string `json:"description"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	TruckID     *string `json:"truck_id,omitempty"`
	ExpenseType string  `json:"expense_type"`
	Amount      int64   `json:"amount"`
	ExpenseDate string  `json:"expense_date"`
	Description string  `json:"description,omitempty"`
}
