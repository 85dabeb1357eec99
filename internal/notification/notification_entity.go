package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one delivered lifecycle message. The unique index on
// leave_id keeps redelivered events from producing duplicates.
type Notification struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_notifications_leave"`
	EmployeeEmail string    `gorm:"type:varchar(255);not null"`
	Message       string    `gorm:"type:text;not null"`
	CreatedAt     time.Time
}
