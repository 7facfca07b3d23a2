package employee

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=driver turnboy admin views"`
	Salary   int64  `json:"salary" binding:"required,gt=0"`
	TruckID  string `json:"truck_id"`
}

type UpdateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Status   string `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	TruckID  *string `json:"truck_id"`
}

type EmployeeResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone,omitempty"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	Salary   int64   `json:"salary"`
	TruckID  *string `json:"truck_id,omitempty"`
}
