package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "github.com/ap0309/leave-management-app/internal/employee/errors"
	"github.com/ap0309/leave-management-app/internal/events"
	"github.com/ap0309/leave-management-app/internal/messaging/kafka"
	"github.com/ap0309/leave-management-app/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const BalancesKeyPrefix = "employees:balances:"

func GetBalancesKey(email string) string {
	return BalancesKeyPrefix + email
}

// Credentials of the admin account seeded on first boot.
const (
	DefaultAdminName     = "Admin"
	DefaultAdminEmail    = "admin@brainybeam.com"
	DefaultAdminPassword = "admin123"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByEmail(ctx context.Context, email string) (EmployeeResponse, error)
	GetBalances(ctx context.Context, email string) (BalanceMap, error)
	SetBalances(ctx context.Context, email string, balances BalanceMap) (BalanceMap, error)
	GetHistory(ctx context.Context, email string) ([]HistoryApplicationResponse, error)
	EnsureDefaultAdmin(ctx context.Context) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		LeaveBalances: DefaultBalances(),
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:  "employee_created",
			RequestID:  rid,
			EmployeeID: empl.ID.String(),
			Email:      empl.Email,
			Role:       empl.Role,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal employee_created event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "employee",
			AggregateID:   empl.ID.String(),
			EventType:     event.EventType,
			Topic:         events.EmployeeLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) GetBalances(ctx context.Context, email string) (BalanceMap, error) {
	cacheKey := GetBalancesKey(email)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var balances BalanceMap
			if json.Unmarshal([]byte(cached), &balances) == nil {
				return balances, nil
			}
		}
	}

	// Singleflight collapses the thundering herd on a cold key.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empl, err := s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		balances := empl.LeaveBalances

		if s.rdb != nil {
			if jsonData, err := json.Marshal(balances); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return balances, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(BalanceMap), nil
}

func (s *service) SetBalances(ctx context.Context, email string, balances BalanceMap) (BalanceMap, error) {
	s.logger.Debug("set balances requested",
		zap.String("email", email),
		zap.Int("categories", len(balances)),
	)

	if len(balances) == 0 {
		return nil, employeeerrors.ErrEmptyBalances
	}
	for _, days := range balances {
		if days < 0 {
			return nil, employeeerrors.ErrNegativeBalance
		}
	}

	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	// Full overwrite of the mapping, not a merge.
	if err := s.repo.UpdateBalances(ctx, empl.ID, balances); err != nil {
		s.logger.Error("set balances persist failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.invalidateBalancesCache(ctx, email)

	s.logger.Info("set balances success", zap.String("email", email))
	return balances, nil
}

func (s *service) GetHistory(ctx context.Context, email string) ([]HistoryApplicationResponse, error) {
	empl, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	apps, err := s.repo.FindHistory(ctx, empl.ID)
	if err != nil {
		s.logger.Error("get history failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	resp := make([]HistoryApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = HistoryApplicationResponse{
			ID:            a.ID.String(),
			EmployeeName:  a.EmployeeName,
			EmployeeEmail: a.EmployeeEmail,
			LeaveType:     a.LeaveType,
			FromDate:      a.FromDate.Format("2006-01-02"),
			ToDate:        a.ToDate.Format("2006-01-02"),
			NumberOfDays:  a.NumberOfDays,
			Reason:        a.Reason,
			Status:        a.Status,
			AppliedDate:   a.AppliedDate.Format(time.RFC3339),
		}
	}
	return resp, nil
}

// EnsureDefaultAdmin seeds the bootstrap admin account when no admin row
// exists yet.
func (s *service) EnsureDefaultAdmin(ctx context.Context) error {
	exists, err := s.repo.RoleExists(ctx, RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	empl := &Employee{
		ID:            uuid.New(),
		Name:          DefaultAdminName,
		Email:         DefaultAdminEmail,
		Password:      DefaultAdminPassword,
		Role:          RoleAdmin,
		LeaveBalances: DefaultBalances(),
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		// Another instance may have seeded concurrently.
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, employeeerrors.ErrEmployeeAlreadyExists) {
			return nil
		}
		return mapped
	}

	s.logger.Info("default admin created", zap.String("email", DefaultAdminEmail))
	return nil
}

func (s *service) invalidateBalancesCache(ctx context.Context, email string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetBalancesKey(email)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate balances cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            empl.ID.String(),
		Name:          empl.Name,
		Email:         empl.Email,
		Role:          empl.Role,
		LeaveBalances: empl.LeaveBalances,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
