package errors

import (
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrPeriodNotFound = apperror.New(apperror.CodeNotFound, "payroll period not found", http.StatusNotFound)
	ErrInvalidMonth   = apperror.New(apperror.CodeInvalidInput, "month must be between 1 and 12", http.StatusBadRequest)
)
