// Package auth implements registration, login and JWT issuance.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/smartacademy/academy/internal/errors"
	"github.com/smartacademy/academy/store"
)

// accessTokenDuration is the lifetime of an issued token.
const accessTokenDuration = 24 * time.Hour

// Claims are the JWT claims carried by an access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies access tokens backed by the user store.
type Service struct {
	store  *store.Store
	secret []byte
}

// NewService creates an auth service signing tokens with secret.
func NewService(st *store.Store, secret string) *Service {
	return &Service{store: st, secret: []byte(secret)}
}

// RegisterParams are the inputs of Register.
type RegisterParams struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Password  string
	Role      store.Role
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, params *RegisterParams) (*store.User, error) {
	email := strings.TrimSpace(strings.ToLower(params.Email))
	if email == "" {
		return nil, errors.InvalidArgument("email is required")
	}
	if len(params.Password) < 6 {
		return nil, errors.InvalidArgument("password must be at least 6 characters")
	}

	if _, err := s.store.GetUser(ctx, &store.FindUser{Email: &email}); err == nil {
		return nil, errors.InvalidArgument("email is already registered")
	} else if !errors.IsCode(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageFailure, "failed to hash password")
	}

	role := params.Role
	if role == "" {
		role = store.RoleUser
	}

	return s.store.CreateUser(ctx, &store.User{
		UID:          shortuuid.New(),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
}

// Login verifies credentials and returns the user plus a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (*store.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.store.GetUser(ctx, &store.FindUser{Email: &email})
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, "", errors.Unauthorized("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.Unauthorized("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) issueToken(user *store.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeUnauthorized, "failed to sign token")
	}
	return signed, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*store.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Unauthorized("invalid or expired token")
	}

	email := claims.Subject
	user, err := s.store.GetUser(ctx, &store.FindUser{Email: &email})
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, errors.Unauthorized("user no longer exists")
		}
		return nil, err
	}
	return user, nil
}
