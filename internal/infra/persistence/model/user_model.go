// Package model holds the GORM persistence models. They mirror the database tables and never leave
// the infra layer; repositories map them to domain entities.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	Username   string `gorm:"type:varchar(100);uniqueIndex:idx_users_username;not null"`
	Email      string `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Password   string `gorm:"type:varchar(255);not null"`
	IsLoggedIn bool   `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
