package autherrors

import (
	"net/http"

	"github.com/ap0309/leave-management-app/internal/shared/apperror"
)

var ErrInvalidCredentials = apperror.New(
	apperror.CodeUnauthorized,
	"invalid email or password",
	http.StatusUnauthorized,
)
