// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account that can log in and own tasks.
type User struct {
	ID         uint64    // Generated by the store on creation, immutable afterwards.
	Username   string    // Unique across all users; tasks reference it through Task.Owner.
	Email      string    // Unique contact email, used as the login identifier.
	Password   string    // Bcrypt hash of the password. Never holds plaintext once persisted.
	IsLoggedIn bool      // Toggled by login and logout. Shared by every client of the account.
	CreatedAt  time.Time // Timestamp of when this user account was created.
	UpdatedAt  time.Time // Timestamp of the last modification to this user's data.
}

// UserPatch carries a partial update. Nil fields are left untouched.
type UserPatch struct {
	Username   *string
	Email      *string
	Password   *string
	IsLoggedIn *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p *UserPatch) IsEmpty() bool {
	return p == nil || (p.Username == nil && p.Email == nil && p.Password == nil && p.IsLoggedIn == nil)
}

// UserFilter narrows list, count and bulk update queries. Zero values match everything.
type UserFilter struct {
	Username   string
	Email      string
	IsLoggedIn *bool
	Limit      int
	Offset     int
}
