package user

import (
	"context"
	"strconv"
	"time"

	"devMart/domain"
	redisrepo "devMart/internal/repository/redis"
	"devMart/pkg/apperr"
	"devMart/pkg/logger"
	"devMart/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenStore caches issued tokens so they can be validated and revoked.
type TokenStore interface {
	StoreToken(ctx context.Context, userID, token string, data redisrepo.TokenData, ttl time.Duration) error
	RevokeToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo   UserRepository
	validate   *validator.Validate
	tokenStore TokenStore
}

const RoleCustomer = "customer"

func NewUserService(userRepo UserRepository, validate *validator.Validate, tokenStore TokenStore) *userService {
	return &userService{
		userRepo:   userRepo,
		validate:   validate,
		tokenStore: tokenStore,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if user.Username == "" {
		return domain.User{}, apperr.Validation("username is required")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		return domain.User{}, apperr.Validation("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		return domain.User{}, apperr.Validation("password must be at least 6 characters")
	}

	// Check uniqueness on both username and email
	if existing, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil && existing.ID > 0 {
		return domain.User{}, apperr.Conflict("username already exists")
	}

	if existing, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && existing.ID > 0 {
		return domain.User{}, apperr.Conflict("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, apperr.Persistence("failed to hash password", err)
	}

	newUser := domain.User{
		Username: user.Username,
		Email:    user.Email,
		Password: passwordHash,
		Role:     RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	logger.Info("user registered", "user_id", newUser.ID)

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, apperr.Permission("invalid email or password")
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		logger.Error("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, apperr.Permission("invalid email or password")
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, apperr.Persistence("failed to generate token", err)
	}

	now := time.Now()
	err = s.tokenStore.StoreToken(ctx, userIDStr, token, redisrepo.TokenData{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(utils.TokenTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}, utils.TokenTTL)
	if err != nil {
		logger.Warn("Failed to cache login token", err)
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIDStr := strconv.FormatUint(uint64(userID), 10)

	if err := s.tokenStore.RevokeToken(ctx, userIDStr, token); err != nil {
		logger.Error("Failed to revoke token", err)
		return apperr.Persistence("failed to revoke token", err)
	}

	logger.Info("user logged out", "user_id", userID)

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
