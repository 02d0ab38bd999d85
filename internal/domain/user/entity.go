package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages users, tasks and exports
	RoleEmployee Role = "employee" // Clocks in and out
)

var RoleValues = []string{
	string(RoleAdmin),
	string(RoleEmployee),
}

type User struct {
	Email        string
	Name         string
	Role         Role
	Schedule     string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user administers the workspace
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEmployee checks if user tracks attendance
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// NeedsPassword reports a first login: the account has no password yet.
func (u *User) NeedsPassword() bool {
	return u.PasswordHash == nil || *u.PasswordHash == ""
}
