package models

import (
	"time"
)

type User struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Nickname    string     `gorm:"size:60;uniqueIndex" json:"nickname"`
	FirstName   string     `gorm:"size:255" json:"first_name"`
	LastName    string     `gorm:"size:255" json:"last_name"`
	Password    string     `gorm:"size:255" json:"-"`
	City        string     `gorm:"size:255" json:"city"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type UserTokens struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64  `gorm:"index:user_token_idx,unique" json:"user_id"`
	Token  string `gorm:"size:255;index:user_token_idx,unique" json:"token"`
}

func (UserTokens) TableName() string {
	return "user_tokens"
}
