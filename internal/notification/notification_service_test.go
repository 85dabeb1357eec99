package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ap0309/leave-management-app/internal/events"
	"github.com/ap0309/leave-management-app/internal/notification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeRepository struct {
	createFn      func(ctx context.Context, n *notification.Notification) error
	findByEmailFn func(ctx context.Context, email string) ([]notification.Notification, error)
}

func (f *fakeRepository) Create(ctx context.Context, n *notification.Notification) error {
	return f.createFn(ctx, n)
}

func (f *fakeRepository) FindByEmail(ctx context.Context, email string) ([]notification.Notification, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func TestNotificationService_RecordLeaveApproved(t *testing.T) {
	ctx := context.Background()
	event := events.LeaveApprovedEvent{
		EventType:     "leave_approved",
		LeaveID:       uuid.New().String(),
		EmployeeEmail: "riya@example.com",
		LeaveType:     "Sick",
		NumberOfDays:  3,
		OccurredAt:    time.Now().UTC(),
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				assert.Equal(t, event.LeaveID, n.LeaveID.String())
				assert.Equal(t, "riya@example.com", n.EmployeeEmail)
				assert.Contains(t, n.Message, "Sick")
				assert.Contains(t, n.Message, "3 day(s)")
				return nil
			},
		}

		svc := notification.NewService(repo)
		err := svc.RecordLeaveApproved(ctx, event)

		assert.NoError(t, err)
	})

	t.Run("success duplicate delivery is ignored", func(t *testing.T) {
		repo := &fakeRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_notifications_leave"}
			},
		}

		svc := notification.NewService(repo)
		err := svc.RecordLeaveApproved(ctx, event)

		assert.NoError(t, err)
	})

	t.Run("negative invalid leave id", func(t *testing.T) {
		svc := notification.NewService(&fakeRepository{})
		err := svc.RecordLeaveApproved(ctx, events.LeaveApprovedEvent{LeaveID: "not-a-uuid"})

		assert.Error(t, err)
	})

	t.Run("negative repo failure", func(t *testing.T) {
		repo := &fakeRepository{
			createFn: func(ctx context.Context, n *notification.Notification) error {
				return errors.New("db down")
			},
		}

		svc := notification.NewService(repo)
		err := svc.RecordLeaveApproved(ctx, event)

		assert.Error(t, err)
	})
}
