package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	autherrors "github.com/ap0309/leave-management-app/internal/auth/errors"
	"github.com/ap0309/leave-management-app/internal/employee"
	"github.com/ap0309/leave-management-app/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

type service struct {
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employeeRepo: employeeRepo, logger: l}
}

// Login checks credentials against the employee store. Unknown email and
// wrong password both map to the same error so the response does not leak
// which one failed.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	empl, err := s.employeeRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login unknown email", zap.String("request_id", rid))
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.String("request_id", rid), zap.Error(err))
		return LoginResponse{}, err
	}

	if subtle.ConstantTimeCompare([]byte(empl.Password), []byte(req.Password)) != 1 {
		s.logger.Warn("login wrong password",
			zap.String("request_id", rid),
			zap.String("email", req.Email),
		)
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	s.logger.Info("login success",
		zap.String("request_id", rid),
		zap.String("email", empl.Email),
		zap.String("role", empl.Role),
	)

	return LoginResponse{
		Email: empl.Email,
		Role:  empl.Role,
		Name:  empl.Name,
	}, nil
}
