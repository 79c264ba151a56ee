package model

import (
	"time"
)

type Post struct {
	ID       uint64  `gorm:"primaryKey"`
	UserID   uint64  `gorm:"not null;index:idx_user_id" json:"user_id"`
	Content  string  `gorm:"type:varchar(2000);not null" json:"content"`
	Category string  `gorm:"type:varchar(50)" json:"category"`
	ImageURL *string `gorm:"type:varchar(512);column:image_url" json:"image_url"`
	Status   int8    `gorm:"not null;default:1" json:"status"` // 1:publicado, 2:revision, 3:rechazado

	// Moderation decision embedded at submission time. Recomputed only
	// when the content is edited.
	ModerationAction     string   `gorm:"type:varchar(20)" json:"moderation_action"`
	ModerationReason     string   `gorm:"type:varchar(500)" json:"moderation_reason"`
	ModerationConfidence int      `gorm:"not null;default:0" json:"moderation_confidence"`
	FlaggedCategories    []string `gorm:"type:json;serializer:json" json:"flagged_categories"`

	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
