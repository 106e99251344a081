package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MarcGrol/shopcart/services/shopapi"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is stored under its normalized email address.
type User struct {
	UID          string
	Email        string
	PasswordHash []byte `datastore:",noindex"`
	Role         string
	CreatedAt    time.Time
}

func (u User) toAPI() *shopapi.User {
	return &shopapi.User{
		UID:   u.UID,
		Email: u.Email,
		Role:  u.Role,
	}
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
