package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workholic/workholic-go/internal/domain/schedule"
	"github.com/workholic/workholic-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type userServiceImpl struct {
	userRepo        user.UserRepository
	scheduleService schedule.ScheduleService
}

func NewUserService(userRepo user.UserRepository, scheduleService schedule.ScheduleService) user.UserService {
	return &userServiceImpl{
		userRepo:        userRepo,
		scheduleService: scheduleService,
	}
}

// List implements user.UserService.
func (s *userServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}

// ListEmployees implements user.UserService.
func (s *userServiceImpl) ListEmployees(ctx context.Context) ([]user.EmployeeResponse, error) {
	employees, err := s.userRepo.ListByRole(ctx, user.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]user.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, user.EmployeeResponse{Email: e.Email, Name: e.Name})
	}
	return responses, nil
}

// Get implements user.UserService.
func (s *userServiceImpl) Get(ctx context.Context, email string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// Create implements user.UserService.
func (s *userServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !s.scheduleService.IsKnown(ctx, req.Schedule) {
		return user.ErrUnknownSchedule
	}

	newUser := user.User{
		Email:    req.Email,
		Name:     req.Name,
		Role:     user.Role(req.Role),
		Schedule: req.Schedule,
	}
	if req.Password != "" {
		hashed, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		newUser.PasswordHash = &hashed
	}

	if _, err := s.userRepo.Create(ctx, newUser); err != nil {
		return err
	}

	slog.Info("user created", "email", newUser.Email, "role", newUser.Role)
	return nil
}

// Update implements user.UserService.
func (s *userServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !s.scheduleService.IsKnown(ctx, req.Schedule) {
		return user.ErrUnknownSchedule
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	existing.Name = req.Name
	existing.Role = user.Role(req.Role)
	existing.Schedule = req.Schedule
	if err := s.userRepo.Update(ctx, existing); err != nil {
		return err
	}

	if req.Password != "" {
		hashed, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		if err := s.userRepo.UpdatePassword(ctx, req.Email, hashed); err != nil {
			return err
		}
	}
	return nil
}

// Delete implements user.UserService.
func (s *userServiceImpl) Delete(ctx context.Context, actorEmail string, req user.DeleteUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Email == actorEmail {
		return user.ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, req.Email); err != nil {
		return err
	}

	slog.Info("user deleted", "email", req.Email, "by", actorEmail)
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
