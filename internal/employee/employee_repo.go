package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	RoleExists(ctx context.Context, role string) (bool, error)
	UpdateBalances(ctx context.Context, id uuid.UUID, balances BalanceMap) error
	AppendHistory(ctx context.Context, employeeID, leaveID uuid.UUID) (bool, error)
	FindHistory(ctx context.Context, employeeID uuid.UUID) ([]HistoryApplication, error)
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	sqlDB, _ := db.DB()
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

// Create runs on the transaction when one is attached so the row commits
// together with its employee_created outbox event.
func (r *repository) Create(ctx context.Context, empl *Employee) error {
	query := `
INSERT INTO employees (id, name, email, password, role, leave_balances, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
`
	_, err := r.execer().ExecContext(ctx, query,
		empl.ID, empl.Name, empl.Email, empl.Password, empl.Role, empl.LeaveBalances,
	)
	return err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "email = ?", email).Error
	return &empl, err
}

func (r *repository) RoleExists(ctx context.Context, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("role = ?", role).
		Count(&count).Error
	return count > 0, err
}

// UpdateBalances overwrites the whole balances mapping. Runs on the
// transaction when one is attached so the approval side effect stays
// atomic with its history entry.
func (r *repository) UpdateBalances(ctx context.Context, id uuid.UUID, balances BalanceMap) error {
	query := `
UPDATE employees
SET leave_balances = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, balances)
	return err
}

// AppendHistory inserts the history link for one application. The unique
// index on leave_id makes the insert a compare-and-swap: a second approval
// of the same application hits the conflict clause and reports false.
func (r *repository) AppendHistory(ctx context.Context, employeeID, leaveID uuid.UUID) (bool, error) {
	query := `
INSERT INTO employee_leave_history (employee_id, leave_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (leave_id) DO NOTHING
`
	res, err := r.execer().ExecContext(ctx, query, employeeID, leaveID)
	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return inserted > 0, nil
}

func (r *repository) FindHistory(ctx context.Context, employeeID uuid.UUID) ([]HistoryApplication, error) {
	var apps []HistoryApplication
	err := r.db.WithContext(ctx).Raw(`
SELECT
	la.id,
	la.employee_name,
	la.employee_email,
	la.leave_type,
	la.from_date,
	la.to_date,
	la.number_of_days,
	la.reason,
	la.status,
	la.applied_date
FROM employee_leave_history h
JOIN leave_applications la ON la.id = h.leave_id
WHERE h.employee_id = ?
ORDER BY h.id ASC
`, employeeID).Scan(&apps).Error
	return apps, err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
