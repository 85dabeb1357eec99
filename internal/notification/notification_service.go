package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ap0309/leave-management-app/internal/events"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Service interface {
	RecordLeaveApproved(ctx context.Context, event events.LeaveApprovedEvent) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

// RecordLeaveApproved persists a notification for an approved application.
// A redelivered event hits the unique index on leave_id and is treated as
// already handled.
func (s *service) RecordLeaveApproved(ctx context.Context, event events.LeaveApprovedEvent) error {
	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		s.logger.Error("invalid leave id in event",
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return err
	}

	n := &Notification{
		ID:            uuid.New(),
		LeaveID:       leaveID,
		EmployeeEmail: event.EmployeeEmail,
		Message: fmt.Sprintf("Your %s leave for %d day(s) has been approved",
			event.LeaveType, event.NumberOfDays),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if isDuplicateNotification(err) {
			s.logger.Debug("notification already recorded",
				zap.String("leave_id", event.LeaveID),
			)
			return nil
		}
		return err
	}

	s.logger.Info("notification recorded",
		zap.String("leave_id", event.LeaveID),
		zap.String("email", event.EmployeeEmail),
	)
	return nil
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}
