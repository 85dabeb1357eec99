package employee

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Balance categories. Leave types on applications are matched against
// these keys case-insensitively at approval time.
const (
	CategorySick      = "sick"
	CategoryCasual    = "casual"
	CategoryAnnual    = "annual"
	CategoryMaternity = "maternity"
	CategoryPaternity = "paternity"
	CategoryEmergency = "emergency"
)

// BalanceMap maps a leave category to the remaining entitlement in days.
// Stored as jsonb.
type BalanceMap map[string]int

func (m BalanceMap) Value() (driver.Value, error) {
	if m == nil {
		m = BalanceMap{}
	}
	return json.Marshal(m)
}

func (m *BalanceMap) Scan(value any) error {
	if value == nil {
		*m = BalanceMap{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for BalanceMap")
	}

	return json.Unmarshal(raw, m)
}

// DefaultBalances seeds a new employee's entitlements.
func DefaultBalances() BalanceMap {
	return BalanceMap{
		CategorySick:      5,
		CategoryCasual:    5,
		CategoryAnnual:    7,
		CategoryMaternity: 0,
		CategoryPaternity: 0,
		CategoryEmergency: 2,
	}
}

type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"type:varchar(120);not null"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	Password      string     `gorm:"type:varchar(255);not null"`
	Role          string     `gorm:"type:varchar(20);not null;default:'employee'"`
	LeaveBalances BalanceMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LeaveHistoryEntry is the append-only link between an employee and an
// approved application. The unique index on leave_id doubles as the
// idempotence guard for the approval side effect.
type LeaveHistoryEntry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_history_employee"`
	LeaveID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_history_leave"`
	CreatedAt  time.Time
}

func (LeaveHistoryEntry) TableName() string {
	return "employee_leave_history"
}

// HistoryApplication is the projection of a leave application row returned
// when resolving an employee's history.
type HistoryApplication struct {
	ID            uuid.UUID
	EmployeeName  string
	EmployeeEmail string
	LeaveType     string
	FromDate      time.Time
	ToDate        time.Time
	NumberOfDays  int
	Reason        string
	Status        string
	AppliedDate   time.Time
}
