package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/zaincode21/Truck-management-backend-sub000/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 foreign_key_violation: deliveries/fines still point here
		if pgErr.Code == "23503" {
			return employeeerrors.ErrEmployeeReferenced
		}
	}

	if strings.Contains(strings.ToLower(err.Error()), "violates foreign key constraint") {
		return employeeerrors.ErrEmployeeReferenced
	}

	return err
}
