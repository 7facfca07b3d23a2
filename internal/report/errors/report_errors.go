package errors

import (
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrYearMonthRequired = apperror.New(apperror.CodeInvalidInput, "year and month query parameters are required", http.StatusBadRequest)
	ErrInvalidMonth      = apperror.New(apperror.CodeInvalidInput, "month must be between 1 and 12", http.StatusBadRequest)
)
