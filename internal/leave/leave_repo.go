package leave

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	FindAll(ctx context.Context) ([]LeaveApplication, error)
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveApplication, error) {
	var apps []LeaveApplication
	err := r.db.WithContext(ctx).
		Order("applied_date DESC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.db.WithContext(ctx).
		First(&l, "id = ?", id).Error
	return &l, err
}

// Update overwrites the full row. Runs on the transaction when one is
// attached so a status change commits together with its approval side
// effects.
func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	query := `
UPDATE leave_applications
SET employee_name = $2,
    employee_email = $3,
    leave_type = $4,
    from_date = $5,
    to_date = $6,
    number_of_days = $7,
    reason = $8,
    status = $9
WHERE id = $1
`
	res, err := r.execer().ExecContext(ctx, query,
		l.ID, l.EmployeeName, l.EmployeeEmail, l.LeaveType,
		l.FromDate, l.ToDate, l.NumberOfDays, l.Reason, l.Status,
	)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Delete(&LeaveApplication{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}
