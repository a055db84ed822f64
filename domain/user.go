package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister     = "user registered successfully"
	MessageSuccessLogin        = "user logged in successfully"
	MessageSuccessRefreshToken = "token refreshed successfully"

	MessageFailedRegister     = "failed to register user"
	MessageFailedLogin        = "failed to login"
	MessageFailedRefreshToken = "failed to refresh token"

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUserNotFound           = errors.New("user not found")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Name     string `json:"name" validate:"required,max=255"`
		Language string `json:"language" validate:"omitempty,oneof=th en"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserResponse struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name"`
		Language  string    `json:"language"`
		CreatedAt time.Time `json:"created_at"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
)
