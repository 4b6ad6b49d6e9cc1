package model

import "time"

// TaskModel mirrors the 'tasks' table. Owner stores the owning user's username; there is no
// foreign key, so callers resolve the user before writing.
type TaskModel struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text;not null"`
	Completed   bool   `gorm:"not null"`
	Owner       string `gorm:"type:varchar(100);index:idx_tasks_owner;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
