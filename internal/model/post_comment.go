package model

import (
	"time"
)

type PostComment struct {
	ID      uint64 `gorm:"primaryKey"`
	PostID  uint64 `gorm:"not null;index:idx_post_id" json:"post_id"`
	UserID  uint64 `gorm:"not null" json:"user_id"`
	Content string `gorm:"type:varchar(1000);not null" json:"content"` // censored form

	WasRedacted  bool   `gorm:"type:tinyint(1);not null;default:0" json:"was_redacted"`
	Severity     string `gorm:"type:varchar(10);not null;default:'ninguno'" json:"severity"`
	FlaggedCount int    `gorm:"not null;default:0" json:"flagged_count"`
	NeedsReview  bool   `gorm:"type:tinyint(1);not null;default:0" json:"needs_review"`

	IsDeleted bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostComment) TableName() string {
	return "post_comments"
}
