package model

import (
	"time"
)

// Notification is owned by the recipient; the actor never mutates it.
// The de_usuario_id column name is kept for schema compatibility with
// the original service.
type Notification struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	RecipientID uint64    `gorm:"not null;index:idx_recipient" json:"recipient_id"`
	ActorID     uint64    `gorm:"not null;column:de_usuario_id" json:"actor_id"`
	Kind        string    `gorm:"type:varchar(20);not null;column:type" json:"kind"`
	TargetID    *uint64   `gorm:"column:target_id" json:"target_id"` // post id for like/comment, nil for follow
	Message     string    `gorm:"type:varchar(255);not null" json:"message"`
	Read        bool      `gorm:"not null;default:0;column:read" json:"read"`
	CreatedAt   time.Time `gorm:"index:idx_created_at" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
