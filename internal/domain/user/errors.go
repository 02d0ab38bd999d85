package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("user already exists")
	ErrInvalidEmailFormat      = errors.New("invalid email format")
	ErrInvalidPasswordLength   = errors.New("password must be at least 6 characters")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrEmployeeRoleRequired    = errors.New("employee role required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrUnknownSchedule         = errors.New("unknown schedule")
	ErrCannotDeleteSelf        = errors.New("cannot delete your own account")
)
