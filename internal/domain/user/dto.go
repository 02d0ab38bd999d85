package user

import (
	"github.com/workholic/workholic-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Schedule string `json:"schedule"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		Schedule: u.Schedule,
	}
}

// EmployeeResponse is the short form used by task assignment pickers
type EmployeeResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUserRequest represents request to create a new user.
// An empty password lets the user choose one on first login.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Schedule string `json:"schedule"`
	Password string `json:"password"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	validateEmail(&errs, r.Email)
	validateRole(&errs, r.Role)

	if validator.IsEmpty(r.Schedule) {
		errs.Add("schedule", "schedule is required")
	}

	if r.Password != "" && len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters")
	}

	return errs.Err()
}

// UpdateUserRequest replaces name, role and schedule; the password only
// changes when provided.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Schedule string `json:"schedule"`
	Password string `json:"password,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	validateEmail(&errs, r.Email)
	validateRole(&errs, r.Role)

	if validator.IsEmpty(r.Schedule) {
		errs.Add("schedule", "schedule is required")
	}

	if r.Password != "" && len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters")
	}

	return errs.Err()
}

type DeleteUserRequest struct {
	Email string `json:"email"`
}

func (r *DeleteUserRequest) Validate() error {
	var errs validator.ValidationErrors
	validateEmail(&errs, r.Email)
	return errs.Err()
}

func validateEmail(errs *validator.ValidationErrors, email string) {
	if validator.IsEmpty(email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "invalid email format")
	}
}

func validateRole(errs *validator.ValidationErrors, role string) {
	if !validator.IsInSlice(role, RoleValues) {
		errs.Add("role", "role must be one of: admin, employee")
	}
}
