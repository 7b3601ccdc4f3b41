package dto

import "time"

// RegisterRequest entrada para registro. La empresa se crea si no existe.
type RegisterRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	UserID      string `json:"user_id" validate:"required,min=1,max=100"`
	Password    string `json:"password" validate:"required,min=6"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Role        string `json:"role" validate:"required,oneof=admin manager worker"`
}

// LoginRequest entrada para login: empresa, usuario y contraseña.
type LoginRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	UserID      string `json:"user_id" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
