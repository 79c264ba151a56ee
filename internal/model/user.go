package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"type:varchar(50);not null;uniqueIndex:idx_username"`
	Nickname  string `gorm:"type:varchar(50);not null"`
	AvatarURL string `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'"`
	Password  string `gorm:"type:varchar(255);not null"`
	IsBan     bool   `gorm:"type:tinyint(1);default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
