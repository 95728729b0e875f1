package dto

import "github.com/hongminglow/authgate/internal/models"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

type ProtectedResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}
