package errors

import (
	"fmt"
	"net/http"

	"github.com/zaincode21/Truck-management-backend-sub000/internal/shared/apperror"
)

var (
	ErrFineNotFound     = apperror.New(apperror.CodeNotFound, "fine not found", http.StatusNotFound)
	ErrEmployeeNotFound = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)

	ErrInvalidFineID     = apperror.New(apperror.CodeInvalidInput, "invalid fine id", http.StatusBadRequest)
	ErrInvalidEmployeeID = apperror.New(apperror.CodeInvalidInput, "invalid employee id", http.StatusBadRequest)
	ErrInvalidCarID      = apperror.New(apperror.CodeInvalidInput, "invalid car id", http.StatusBadRequest)
	ErrInvalidDeliveryID = apperror.New(apperror.CodeInvalidInput, "invalid delivery id", http.StatusBadRequest)
	ErrInvalidFineCost   = apperror.New(apperror.CodeInvalidInput, "fine_cost must be greater than zero", http.StatusBadRequest)
	ErrInvalidAmount     = apperror.New(apperror.CodeInvalidInput, "payment amount must be greater than zero", http.StatusBadRequest)
	ErrInvalidDateFormat = apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", http.StatusBadRequest)
)

// PaymentExceedsBalance carries both figures so the caller can correct the
// request without a second round trip.
func PaymentExceedsBalance(amount, remaining int64) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidInput,
		fmt.Sprintf("payment amount (%d) exceeds remaining balance (%d)", amount, remaining),
		http.StatusBadRequest,
	)
}
