package leave

import (
	"time"

	"github.com/google/uuid"
)

// LeaveApplication keeps a snapshot of the submitting employee's identity
// (employee_name, employee_email) taken at submission time, so history stays
// accurate when an employee record changes later.
type LeaveApplication struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeName  string    `gorm:"type:varchar(120);not null"`
	EmployeeEmail string    `gorm:"type:varchar(255);not null;index:idx_leave_applications_email"`
	LeaveType     string    `gorm:"type:varchar(30);not null"`
	FromDate      time.Time `gorm:"type:date;not null"`
	ToDate        time.Time `gorm:"type:date;not null"`
	NumberOfDays  int       `gorm:"type:int;not null;default:1"`
	Reason        string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_applications_status"`
	AppliedDate   time.Time `gorm:"not null"`
}
