package truckerrors

import (
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrTruckNotFound = apperror.New(
		apperror.CodeNotFound,
		"truck not found",
		http.StatusNotFound,
	)
	ErrPlateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"plate number is already registered",
		http.StatusConflict,
	)
)
