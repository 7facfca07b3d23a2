package report

type EmployeeFineSummary struct {
	EmployeeID       string `json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	FineCount        int64  `json:"fine_count"`
	TotalFineCost    int64  `json:"total_fine_cost"`
	TotalPaid        int64  `json:"total_paid"`
	TotalOutstanding int64  `json:"total_outstanding"`
}

type DeliveryStatusSummary struct {
	Status      string `json:"status"`
	Count       int64  `json:"count"`
	TotalIncome int64  `json:"total_income"`
}

type ExpenseTypeSummary struct {
	ExpenseType string `json:"expense_type"`
	Count       int64  `json:"count"`
	TotalAmount int64  `json:"total_amount"`
}

type PayrollRecordSummary struct {
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	OriginalSalary int64  `json:"original_salary"`
	TotalFines     int64  `json:"total_fines"`
	NetSalary      int64  `json:"net_salary"`
}

// MonthlySummaryResponse aggregates one calendar month. A month with no data
// comes back with zero totals and empty lists, not an error.
type MonthlySummaryResponse struct {
	Year           int                     `json:"year"`
	Month          int                     `json:"month"`
	PeriodName     string                  `json:"period_name"`
	PeriodStatus   string                  `json:"period_status,omitempty"`
	TotalFineCost  int64                   `json:"total_fine_cost"`
	TotalIncome    int64                   `json:"total_income"`
	TotalExpenses  int64                   `json:"total_expenses"`
	Fines          []EmployeeFineSummary   `json:"fines_by_employee"`
	Deliveries     []DeliveryStatusSummary `json:"deliveries_by_status"`
	Expenses       []ExpenseTypeSummary    `json:"expenses_by_type"`
	PayrollRecords []PayrollRecordSummary  `json:"payroll_records"`
}
