package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleOwner = "OWNER"
	RoleSub   = "SUB_USER"

	TypeAdmin  = "admin"
	TypeBuyer  = "buyer"
	TypeSeller = "seller"
)

type User struct {
	ID            int        `json:"id"`
	MainAccountID int        `json:"main_account_id,omitempty"`
	Role          string     `json:"role_id"`
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Password      string     `json:"password,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// EffectiveAccountID is the owning organization of the user: the parent
// account for sub-users, the user itself otherwise. All business objects are
// scoped by this id, never by the acting user id.
func (u User) EffectiveAccountID() int {
	if u.MainAccountID != 0 {
		return u.MainAccountID
	}
	return u.ID
}

func (u User) IsOwner() bool {
	return u.Role == RoleOwner
}

type Claims struct {
	UserID        int    `json:"id"`
	Email         string `json:"email"`
	Type          string `json:"type"`
	Role          string `json:"role_id"`
	MainAccountID int    `json:"main_account_id"`
	jwt.StandardClaims
}

func (c Claims) EffectiveAccountID() int {
	if c.MainAccountID != 0 {
		return c.MainAccountID
	}
	return c.UserID
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateSubUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
