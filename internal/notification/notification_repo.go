package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByEmail(ctx context.Context, email string) ([]Notification, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindByEmail(ctx context.Context, email string) ([]Notification, error) {
	var ns []Notification
	err := r.db.WithContext(ctx).
		Where("employee_email = ?", email).
		Order("created_at DESC").
		Find(&ns).Error
	return ns, err
}
