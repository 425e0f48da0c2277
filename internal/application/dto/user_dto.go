package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=50"`
	StoreName string `json:"store_name" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest igual que create pero con password opcional.
type UpdateUserRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=50"`
	StoreName string  `json:"store_name" validate:"required,min=2,max=50"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StoreName string    `json:"store_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResponse token emitido para el usuario.
type LoginResponse struct {
	Token string
	User  UserResponse
}
