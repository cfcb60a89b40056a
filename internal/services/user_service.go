package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kwame-owusu/staybay/internal/helpers"
	"github.com/kwame-owusu/staybay/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) CreateUser(ctx context.Context, user *models.User) (interface{}, error) {
	if err := models.Validate.Var(user.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}

	if !helpers.IsPasswordStrong(user.Password) {
		return nil, fmt.Errorf("password is not strong enough")
	}

	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	return us.userRepo.CreateUser(ctx, user)
}

func (us *UserService) AuthenticateUser(ctx context.Context, email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}

	response, err := us.userRepo.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}
	return response, nil
}

func (us *UserService) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := us.userRepo.RefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

func (us *UserService) GetUser(ctx context.Context, id uuid.UUID, accessToken string) (*models.User, error) {
	res, err := us.userRepo.GetUser(ctx, id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return res, nil
}

func (us *UserService) UpdateUser(ctx context.Context, user map[string]interface{}, userID uuid.UUID, accessToken string) (*models.User, error) {
	user["updated_at"] = time.Now()

	updatedUser, err := us.userRepo.UpdateUser(ctx, user, userID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	return updatedUser, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id uuid.UUID, accessToken string) error {
	if err := us.userRepo.DeleteUser(ctx, id, accessToken); err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	return nil
}

func (us *UserService) UploadAvatar(ctx context.Context, userID uuid.UUID, avatarURL string, accessToken string) (string, error) {
	if userID == uuid.Nil {
		return "", fmt.Errorf("no valid UUID provided")
	}

	url, err := us.userRepo.UploadAvatar(ctx, userID, avatarURL, accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %v", err)
	}
	return url, nil
}
