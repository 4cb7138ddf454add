package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin 可以登录后台的账号，只能通过 seed_admin 创建
type Admin struct {
	ID           string `gorm:"type:char(36);primaryKey"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_email"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
