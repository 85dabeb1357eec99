package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ap0309/leave-management-app/internal/employee"
	"github.com/ap0309/leave-management-app/internal/events"
	leaveerrors "github.com/ap0309/leave-management-app/internal/leave/errors"
	"github.com/ap0309/leave-management-app/internal/messaging/kafka"
	"github.com/ap0309/leave-management-app/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outbox       kafka.OutboxRepository
	rdb          *redis.Client
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, employeeRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outbox:       outboxRepo,
		rdb:          rdb,
		logger:       l,
	}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("email", req.EmployeeEmail),
		zap.String("leave_type", req.LeaveType),
	)

	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}

	days := req.NumberOfDays
	if days < 1 {
		days = inclusiveDays(from, to)
	}

	l := &LeaveApplication{
		ID:            uuid.New(),
		EmployeeName:  req.EmployeeName,
		EmployeeEmail: req.EmployeeEmail,
		LeaveType:     req.LeaveType,
		FromDate:      from,
		ToDate:        to,
		NumberOfDays:  days,
		Reason:        req.Reason,
		Status:        StatusPending,
		AppliedDate:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	apps, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*l), nil
}

// Update merges the provided fields into the stored application and, when
// the resulting status is Approved, runs the one-time approval side effects
// in the same transaction: a history entry for the owning employee and a
// clamped decrement of the matching balance category.
func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update leave requested",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
	)

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := mergeUpdate(l, req); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	var decrementedEmail string
	if req.Status != nil && *req.Status == StatusApproved {
		decrementedEmail, err = s.applyApproval(ctx, tx, l)
		if err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if decrementedEmail != "" {
		s.invalidateBalancesCache(ctx, decrementedEmail)
	}

	s.logger.Info("update leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

// applyApproval runs on the update transaction. The history insert doubles
// as the idempotence guard: when the application is already linked, every
// side effect is skipped, so re-approving never decrements twice. Returns
// the email whose balances changed, or "" when nothing was decremented.
func (s *service) applyApproval(ctx context.Context, tx *sql.Tx, l *LeaveApplication) (string, error) {
	empl, err := s.employeeRepo.FindByEmail(ctx, l.EmployeeEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No matching employee record: the status change still stands,
			// there is just no balance to adjust.
			s.logger.Warn("approval without employee record",
				zap.String("leave_id", l.ID.String()),
				zap.String("email", l.EmployeeEmail),
			)
			return "", nil
		}
		return "", err
	}

	emplRepo := s.employeeRepo.WithTx(tx)
	inserted, err := emplRepo.AppendHistory(ctx, empl.ID, l.ID)
	if err != nil {
		s.logger.Error("approval history insert failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return "", err
	}
	if !inserted {
		s.logger.Debug("approval already applied, skipping",
			zap.String("leave_id", l.ID.String()),
		)
		return "", nil
	}

	days := l.NumberOfDays
	if days < 1 {
		days = 1
	}

	category := strings.ToLower(l.LeaveType)
	balances := empl.LeaveBalances
	current, tracked := balances[category]
	if tracked {
		remaining := current - days
		if remaining < 0 {
			remaining = 0
		}
		balances[category] = remaining

		if err := emplRepo.UpdateBalances(ctx, empl.ID, balances); err != nil {
			s.logger.Error("approval balance update failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			return "", err
		}
	} else {
		s.logger.Warn("approval for untracked category",
			zap.String("leave_id", l.ID.String()),
			zap.String("category", category),
		)
	}

	if s.outbox != nil {
		if err := s.queueApprovedEvent(ctx, tx, l); err != nil {
			return "", err
		}
	}

	s.logger.Info("approval applied",
		zap.String("leave_id", l.ID.String()),
		zap.String("email", empl.Email),
		zap.String("category", category),
		zap.Int("days", days),
	)

	if tracked {
		return empl.Email, nil
	}
	return "", nil
}

func (s *service) queueApprovedEvent(ctx context.Context, tx *sql.Tx, l *LeaveApplication) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveApprovedEvent{
		EventType:     "leave_approved",
		RequestID:     rid,
		LeaveID:       l.ID.String(),
		EmployeeEmail: l.EmployeeEmail,
		LeaveType:     l.LeaveType,
		NumberOfDays:  l.NumberOfDays,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave_approved event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     event.EventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("approval outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) invalidateBalancesCache(ctx context.Context, email string) {
	if s.rdb == nil {
		return
	}
	cacheKey := employee.GetBalancesKey(email)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate balances cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mergeUpdate(l *LeaveApplication, req UpdateLeaveRequest) error {
	if req.EmployeeName != nil {
		l.EmployeeName = *req.EmployeeName
	}
	if req.EmployeeEmail != nil {
		l.EmployeeEmail = *req.EmployeeEmail
	}
	if req.LeaveType != nil {
		l.LeaveType = *req.LeaveType
	}
	if req.FromDate != nil {
		from, err := time.Parse(dateLayout, *req.FromDate)
		if err != nil {
			return leaveerrors.ErrInvalidDateFormat
		}
		l.FromDate = from
	}
	if req.ToDate != nil {
		to, err := time.Parse(dateLayout, *req.ToDate)
		if err != nil {
			return leaveerrors.ErrInvalidDateFormat
		}
		l.ToDate = to
	}
	if req.NumberOfDays != nil {
		l.NumberOfDays = *req.NumberOfDays
	}
	if req.Reason != nil {
		l.Reason = *req.Reason
	}
	if req.Status != nil {
		l.Status = *req.Status
	}
	return nil
}

func inclusiveDays(from, to time.Time) int {
	days := int(to.Sub(from).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	return LeaveResponse{
		ID:            l.ID.String(),
		EmployeeName:  l.EmployeeName,
		EmployeeEmail: l.EmployeeEmail,
		LeaveType:     l.LeaveType,
		FromDate:      l.FromDate.Format(dateLayout),
		ToDate:        l.ToDate.Format(dateLayout),
		NumberOfDays:  l.NumberOfDays,
		Reason:        l.Reason,
		Status:        l.Status,
		AppliedDate:   l.AppliedDate.Format(time.RFC3339),
	}
}
