package types

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RecipientType string    `gorm:"not null;index:idx_notification_recipient;column:recipient_type" json:"recipient_type"`
	RecipientID   string    `gorm:"not null;index:idx_notification_recipient;column:recipient_id" json:"recipient_id"`
	SenderType    string    `gorm:"column:sender_type" json:"sender_type"`
	SenderID      string    `gorm:"column:sender_id" json:"sender_id"`
	EntityType    string    `gorm:"column:entity_type" json:"entity_type"`
	EntityID      string    `gorm:"column:entity_id" json:"entity_id"`
	Message       string    `gorm:"not null;column:message" json:"message"`
	IsRead        bool      `gorm:"not null;default:false;column:is_read" json:"is_read"`
	CreatedAt     time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
