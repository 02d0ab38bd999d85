package user

import "context"

// UserService covers the admin user management screens.
type UserService interface {
	List(ctx context.Context) ([]UserResponse, error)
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	Get(ctx context.Context, email string) (UserResponse, error)
	Create(ctx context.Context, req CreateUserRequest) error
	Update(ctx context.Context, req UpdateUserRequest) error
	// Delete removes a user; admins cannot delete their own account.
	Delete(ctx context.Context, actorEmail string, req DeleteUserRequest) error
}
