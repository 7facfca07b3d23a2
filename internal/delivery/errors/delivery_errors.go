package deliveryerrors

import (
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrDeliveryNotFound = apperror.New(
		apperror.CodeNotFound,
		"delivery not found",
		http.StatusNotFound,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"truck or employee reference is invalid",
		http.StatusBadRequest,
	)
)
