package employeeerrors

import (
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidTruckID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid truck id",
		http.StatusBadRequest,
	)
	ErrTruckAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"truck already has an active employee assigned",
		http.StatusConflict,
	)
	ErrEmployeeReferenced = apperror.New(
		apperror.CodeConflict,
		"employee is referenced by deliveries or fines and cannot be deleted",
		http.StatusConflict,
	)
)
