package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"procureBack/internal/models"
	"procureBack/utils"
)

type UserStore interface {
	CreateUser(ctx context.Context, user models.User, passwordHash string) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, string, error)
}

type UserService struct {
	UserRepo UserStore
	Tokens   *utils.Manager
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.SignInResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return models.SignInResponse{}, models.Validationf("email and password are required")
	}

	user, hash, err := s.UserRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNoRecord) {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.SignInResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	token, err := s.Tokens.NewToken(user)
	if err != nil {
		return models.SignInResponse{}, err
	}
	return models.SignInResponse{Token: token, User: user}, nil
}

// CreateSubUser adds a user acting on behalf of the caller's account. Only an
// OWNER may create sub-users, and a sub-user can never own sub-users of its
// own, so the hierarchy stays two levels deep.
func (s *UserService) CreateSubUser(ctx context.Context, claims models.Claims, req models.CreateSubUserRequest) (models.User, error) {
	if claims.Role != models.RoleOwner || claims.MainAccountID != 0 {
		return models.User{}, models.ErrForbidden
	}
	if strings.TrimSpace(req.Name) == "" {
		return models.User{}, models.Validationf("name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, models.Validationf("invalid email address %q", req.Email)
	}
	if len(req.Password) < 8 {
		return models.User{}, models.Validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		MainAccountID: claims.UserID,
		Role:          models.RoleSub,
		Type:          claims.Type,
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
	}
	return s.UserRepo.CreateUser(ctx, user, string(hash))
}

func (s *UserService) Profile(ctx context.Context, userID int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, userID)
}
