package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

const (
	tokenLifetime = 24 * time.Hour
	bcryptCost    = 10
)

var (
	errInvalidCredentials = errors.New("Invalid credentials")
	errTokenMissing       = errors.New("Authorization token missing")
	errTokenInvalid       = errors.New("Invalid or expired token")
	errUserNotFound       = errors.New("User not found")
)

type service struct {
	secret    []byte
	userStore mystore.Store[User]
	nower     mytime.Nower
	uuider    myuuid.UUIDer
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(secret []byte, store mystore.Store[User], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		secret:    secret,
		userStore: store,
		nower:     nower,
		uuider:    uuider,
		logger:    logger,
	}
}

func (s *service) register(c context.Context, req shopapi.RegisterRequest) (User, shopapi.Tokens, error) {
	if !validRole(req.Role) {
		return User{}, shopapi.Tokens{}, myerrors.NewInvalidInputErrorf("Invalid role. Allowed roles: admin, user.")
	}
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return User{}, shopapi.Tokens{}, myerrors.NewInvalidInputErrorf("Email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return User{}, shopapi.Tokens{}, myerrors.NewInvalidInputError(fmt.Errorf("error hashing password: %s", err))
	}

	user := User{
		UID:          s.uuider.Create(),
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    s.nower.Now(),
	}

	s.logger.Log(c, user.UID, mylog.SeverityInfo, "Register user with role %s", user.Role)

	err = s.userStore.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := s.userStore.Get(c, email)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if exists {
			return myerrors.New(http.StatusConflict, fmt.Errorf("User already exists"))
		}

		err = s.userStore.Put(c, email, user)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return User{}, shopapi.Tokens{}, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return User{}, shopapi.Tokens{}, err
	}

	return user, tokens, nil
}

func (s *service) login(c context.Context, req shopapi.LoginRequest) (User, shopapi.Tokens, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return User{}, shopapi.Tokens{}, myerrors.NewInvalidInputErrorf("Email and password are required")
	}

	user, found, err := s.userStore.Get(c, email)
	if err != nil {
		return User{}, shopapi.Tokens{}, myerrors.NewInternalError(err)
	}
	if !found {
		return User{}, shopapi.Tokens{}, myerrors.NewInvalidInputError(errInvalidCredentials)
	}

	err = bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password))
	if err != nil {
		s.logger.Log(c, user.UID, mylog.SeverityWarn, "Login with wrong password")
		return User{}, shopapi.Tokens{}, myerrors.NewUnauthorizedError(errInvalidCredentials)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return User{}, shopapi.Tokens{}, err
	}

	s.logger.Log(c, user.UID, mylog.SeverityInfo, "User logged in")

	return user, tokens, nil
}

func (s *service) issueTokens(user User) (shopapi.Tokens, error) {
	now := s.nower.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return shopapi.Tokens{}, myerrors.NewInternalError(fmt.Errorf("error signing token: %s", err))
	}

	return shopapi.Tokens{AccessToken: signed}, nil
}

// authenticate resolves a bearer token into the user it was issued to.
func (s *service) authenticate(c context.Context, tokenString string) (User, error) {
	if tokenString == "" {
		return User{}, myerrors.NewUnauthorizedError(errTokenMissing)
	}

	parsed := claims{}
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.nower.Now))
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityInfo, "Rejected token: %s", err)
		return User{}, myerrors.NewUnauthorizedError(errTokenInvalid)
	}

	user, found, err := s.userStore.Get(c, parsed.Email)
	if err != nil {
		return User{}, myerrors.NewInternalError(err)
	}
	if !found || user.UID != parsed.Subject {
		return User{}, myerrors.NewUnauthorizedError(errUserNotFound)
	}

	return user, nil
}
