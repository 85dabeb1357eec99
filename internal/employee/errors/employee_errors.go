package employeeerrors

import (
	"net/http"

	"github.com/ap0309/leave-management-app/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be admin or employee",
		http.StatusBadRequest,
	)
	ErrEmptyBalances = apperror.New(
		apperror.CodeInvalidInput,
		"leave balances payload must not be empty",
		http.StatusBadRequest,
	)
	ErrNegativeBalance = apperror.New(
		apperror.CodeInvalidInput,
		"leave balances must not be negative",
		http.StatusBadRequest,
	)
)
