package payroll

type ProcessMonthEndRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

type PeriodResponse struct {
	ID          string  `json:"id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	PeriodName  string  `json:"period_name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	ProcessedAt *string `json:"processed_at,omitempty"`
	ProcessedBy *string `json:"processed_by,omitempty"`
	RecordCount int64   `json:"record_count"`
	FineCount   int64   `json:"fine_count"`
}

type RecordResponse struct {
	ID              string `json:"id"`
	PayrollPeriodID string `json:"payroll_period_id"`
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	Role            string `json:"role"`
	OriginalSalary  int64  `json:"original_salary"`
	TotalFines      int64  `json:"total_fines"`
	NetSalary       int64  `json:"net_salary"`
	Status          string `json:"status"`
}

type CurrentPeriodResponse struct {
	Period  PeriodResponse   `json:"period"`
	Records []RecordResponse `json:"records"`
}

type ProcessMonthEndResponse struct {
	Message        string           `json:"message"`
	Period         PeriodResponse   `json:"period"`
	Records        []RecordResponse `json:"records"`
	RecordsCreated int              `json:"records_created"`
}
