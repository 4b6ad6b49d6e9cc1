package entity

import "time"

// Task is a dashboard item owned by exactly one user.
type Task struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Owner       string    `json:"owner"` // Username of the owning user, not its numeric ID.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether the task belongs to the given user.
func (t *Task) IsOwnedBy(user *User) bool {
	return t != nil && user != nil && t.Owner == user.Username
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	Owner       *string
}

// IsEmpty reports whether the patch would change nothing.
func (p *TaskPatch) IsEmpty() bool {
	return p == nil || (p.Title == nil && p.Description == nil && p.Completed == nil && p.Owner == nil)
}

// TaskFilter narrows list, count and bulk update queries. Zero values match everything.
type TaskFilter struct {
	Owner     string
	Completed *bool
	Limit     int
	Offset    int
}
