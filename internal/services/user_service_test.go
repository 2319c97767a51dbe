package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"procureBack/internal/models"
	"procureBack/utils"
)

type fakeUserStore struct {
	user models.User
	hash string

	created models.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user models.User, passwordHash string) (models.User, error) {
	if user.Email == f.user.Email {
		return models.User{}, models.ErrDuplicateEmail
	}
	user.ID = 42
	f.created = user
	return user, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int) (models.User, error) {
	if f.user.ID != id {
		return models.User{}, models.ErrNoRecord
	}
	return f.user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	if f.user.Email != email {
		return models.User{}, "", models.ErrNoRecord
	}
	return f.user, f.hash, nil
}

func newUserService(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	tokens, err := utils.NewManager("test-signing-key", time.Hour)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	store := &fakeUserStore{
		user: models.User{ID: 1, Email: "owner@one.test", Type: models.TypeBuyer, Role: models.RoleOwner, Name: "Owner"},
		hash: string(hash),
	}
	return &UserService{UserRepo: store, Tokens: tokens}, store
}

func TestSignIn(t *testing.T) {
	svc, _ := newUserService(t)

	resp, err := svc.SignIn(context.Background(), models.SignInRequest{Email: "Owner@One.test", Password: "correct horse"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("want a signed token")
	}

	claims, err := svc.Tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 1 || claims.Type != models.TypeBuyer || claims.Role != models.RoleOwner {
		t.Fatalf("claims do not match the user: %+v", claims)
	}
}

func TestSignInInvalidCredentials(t *testing.T) {
	svc, _ := newUserService(t)

	tests := []struct {
		name string
		req  models.SignInRequest
	}{
		{"unknown email", models.SignInRequest{Email: "ghost@one.test", Password: "correct horse"}},
		{"wrong password", models.SignInRequest{Email: "owner@one.test", Password: "wrong"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignIn(context.Background(), tt.req)
			if !errors.Is(err, models.ErrInvalidCredentials) {
				t.Fatalf("want ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestCreateSubUser(t *testing.T) {
	svc, store := newUserService(t)

	owner := models.Claims{UserID: 1, Email: "owner@one.test", Type: models.TypeBuyer, Role: models.RoleOwner}
	user, err := svc.CreateSubUser(context.Background(), owner, models.CreateSubUserRequest{
		Name: "Assistant", Email: "Assistant@One.test", Password: "long enough",
	})
	if err != nil {
		t.Fatalf("CreateSubUser: %v", err)
	}
	if user.MainAccountID != 1 || user.Role != models.RoleSub || user.Type != models.TypeBuyer {
		t.Fatalf("sub-user not scoped under the owner: %+v", user)
	}
	if store.created.Email != "assistant@one.test" {
		t.Fatalf("email not normalized: %q", store.created.Email)
	}
}

func TestCreateSubUserRejections(t *testing.T) {
	svc, _ := newUserService(t)
	owner := models.Claims{UserID: 1, Email: "owner@one.test", Type: models.TypeBuyer, Role: models.RoleOwner}

	t.Run("sub-user may not create sub-users", func(t *testing.T) {
		sub := models.Claims{UserID: 7, MainAccountID: 1, Type: models.TypeBuyer, Role: models.RoleSub}
		_, err := svc.CreateSubUser(context.Background(), sub, models.CreateSubUserRequest{Name: "X", Email: "x@one.test", Password: "long enough"})
		if !errors.Is(err, models.ErrForbidden) {
			t.Fatalf("want ErrForbidden, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.CreateSubUser(context.Background(), owner, models.CreateSubUserRequest{Name: "X", Email: "x@one.test", Password: "short"})
		var validation *models.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateSubUser(context.Background(), owner, models.CreateSubUserRequest{Name: "X", Email: "owner@one.test", Password: "long enough"})
		if !errors.Is(err, models.ErrDuplicateEmail) {
			t.Fatalf("want ErrDuplicateEmail, got %v", err)
		}
	})
}
