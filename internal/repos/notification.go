package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/campusforge/campusforge-backend/internal/pkg/errors"
	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type NotificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, notification *types.Notification) (*types.Notification, error)
	ListForRecipient(ctx context.Context, tx *gorm.DB, recipientType, recipientID string) ([]*types.Notification, error)
	ListUnread(ctx context.Context, tx *gorm.DB, recipientType, recipientID string) ([]*types.Notification, error)
	MarkRead(ctx context.Context, tx *gorm.DB, notificationID uuid.UUID) error
}

type notificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{db: db, log: baseLog.With("repo", "NotificationRepo")}
}

func (nr *notificationRepo) Create(ctx context.Context, tx *gorm.DB, notification *types.Notification) (*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (nr *notificationRepo) ListForRecipient(ctx context.Context, tx *gorm.DB, recipientType, recipientID string) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var results []*types.Notification
	if err := transaction.WithContext(ctx).
		Where("recipient_type = ? AND recipient_id = ?", recipientType, recipientID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificationRepo) ListUnread(ctx context.Context, tx *gorm.DB, recipientType, recipientID string) ([]*types.Notification, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	var results []*types.Notification
	if err := transaction.WithContext(ctx).
		Where("recipient_type = ? AND recipient_id = ? AND is_read = ?", recipientType, recipientID, false).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *notificationRepo) MarkRead(ctx context.Context, tx *gorm.DB, notificationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, pkgerrors.ErrNotFound)
	}
	return nil
}
