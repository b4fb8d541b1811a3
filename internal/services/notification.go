package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusforge/campusforge-backend/internal/pkg/logger"
	"github.com/campusforge/campusforge-backend/internal/repos"
	"github.com/campusforge/campusforge-backend/internal/types"
)

type NotificationService interface {
	Notify(ctx context.Context, notification *types.Notification) (*types.Notification, error)
	ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]*types.Notification, error)
	ListUnread(ctx context.Context, recipientType, recipientID string) ([]*types.Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
}

func NewNotificationService(db *gorm.DB, log *logger.Logger, notificationRepo repos.NotificationRepo) NotificationService {
	return &notificationService{
		db:               db,
		log:              log.With("service", "NotificationService"),
		notificationRepo: notificationRepo,
	}
}

func (ns *notificationService) Notify(ctx context.Context, notification *types.Notification) (*types.Notification, error) {
	return ns.notificationRepo.Create(ctx, nil, notification)
}

func (ns *notificationService) ListForRecipient(ctx context.Context, recipientType, recipientID string) ([]*types.Notification, error) {
	return ns.notificationRepo.ListForRecipient(ctx, nil, recipientType, recipientID)
}

func (ns *notificationService) ListUnread(ctx context.Context, recipientType, recipientID string) ([]*types.Notification, error) {
	return ns.notificationRepo.ListUnread(ctx, nil, recipientType, recipientID)
}

func (ns *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	return ns.notificationRepo.MarkRead(ctx, nil, notificationID)
}
