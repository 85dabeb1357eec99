package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/ap0309/leave-management-app/internal/auth"
	autherrors "github.com/ap0309/leave-management-app/internal/auth/errors"
	"github.com/ap0309/leave-management-app/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	return f.findByEmailFn(ctx, email)
}

func (f *fakeEmployeeRepository) RoleExists(ctx context.Context, role string) (bool, error) {
	return false, nil
}

func (f *fakeEmployeeRepository) UpdateBalances(ctx context.Context, id uuid.UUID, balances employee.BalanceMap) error {
	return nil
}

func (f *fakeEmployeeRepository) AppendHistory(ctx context.Context, employeeID, leaveID uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeEmployeeRepository) FindHistory(ctx context.Context, employeeID uuid.UUID) ([]employee.HistoryApplication, error) {
	return nil, nil
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				assert.Equal(t, "admin@brainybeam.com", email)
				return &employee.Employee{
					ID:       uuid.New(),
					Name:     "Admin",
					Email:    email,
					Password: "admin123",
					Role:     employee.RoleAdmin,
				}, nil
			},
		}

		svc := auth.NewService(repo)
		resp, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "admin@brainybeam.com",
			Password: "admin123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "admin@brainybeam.com", resp.Email)
		assert.Equal(t, employee.RoleAdmin, resp.Role)
		assert.Equal(t, "Admin", resp.Name)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return &employee.Employee{
					Email:    email,
					Password: "admin123",
					Role:     employee.RoleAdmin,
				}, nil
			},
		}

		svc := auth.NewService(repo)
		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "admin@brainybeam.com",
			Password: "wrong",
		})

		assert.Error(t, err)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}

		svc := auth.NewService(repo)
		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})

		assert.Error(t, err)
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative repo failure", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return nil, errors.New("db down")
			},
		}

		svc := auth.NewService(repo)
		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "admin@brainybeam.com",
			Password: "admin123",
		})

		assert.Error(t, err)
		assert.NotErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}
