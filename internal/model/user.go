package model

// User role constants
const (
	UserRoleAdmin        = "admin"
	UserRoleReceptionist = "receptionist"
)

// User represents a staff account. PasswordHash never serializes.
type User struct {
	Base
	Name         string `json:"name" db:"name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
}

// RegisterUserRequest represents staff account creation parameters
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,staffrole"`
}

// LoginRequest represents authentication parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
