package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartacademy/academy/server/service/auth"
	"github.com/smartacademy/academy/store"
)

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int32  `json:"id"`
	UID       string `json:"uid"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func toUserResponse(user *store.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		UID:       user.UID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
	}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates a new account.
// POST /api/v1/auth/register
func (s *APIV1Service) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	user, err := s.Auth.Register(c.Request().Context(), &auth.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// Login verifies credentials and issues a JWT.
// POST /api/v1/auth/login
func (s *APIV1Service) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}

	user, token, err := s.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        toUserResponse(user),
	})
}

// GetMe returns the authenticated user.
// GET /api/v1/users/me
func (s *APIV1Service) GetMe(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}
