package errors

import (
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrPeriodNotFound         = apperror.New(apperror.CodeNotFound, "payroll period not found", http.StatusNotFound)
	ErrInvalidPeriodID        = apperror.New(apperror.CodeInvalidInput, "invalid payroll period id", http.StatusBadRequest)
	ErrYearMonthRequired      = apperror.New(apperror.CodeInvalidInput, "year and month are required", http.StatusBadRequest)
	ErrInvalidMonth           = apperror.New(apperror.CodeInvalidInput, "month must be between 1 and 12", http.StatusBadRequest)
	ErrPeriodAlreadyProcessed = apperror.New(apperror.CodeInvalidState, "payroll period already processed", http.StatusBadRequest)
)
