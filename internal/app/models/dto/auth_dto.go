package dto

import "github.com/yigit/coursehub/internal/app/models"

// LoginRequest represents login credentials for one role
type LoginRequest struct {
	Email    string      `json:"email" binding:"required,email" example:"jdoe@example.com"`
	Password string      `json:"password" binding:"required" example:"secret123"`
	Role     models.Role `json:"role" binding:"required,oneof=student instructor admin" example:"student"`
}

// RegisterRequest registers a student or an instructor. Student accounts use
// the name and phone fields, instructor accounts use FullName.
type RegisterRequest struct {
	Role      models.Role `json:"role" binding:"required,oneof=student instructor" example:"student"`
	UserName  string      `json:"userName" binding:"required,min=3,max=50" example:"jdoe"`
	Email     string      `json:"email" binding:"required,email" example:"jdoe@example.com"`
	Password  string      `json:"password" binding:"required,min=8" example:"secret123"`
	PhoneNo   *string     `json:"phoneNo" binding:"omitempty,max=20" example:"+90 555 000 0000"`
	FirstName string      `json:"firstName" binding:"required_if=Role student" example:"John"`
	LastName  string      `json:"lastName" binding:"required_if=Role student" example:"Doe"`
	FullName  string      `json:"fullName" binding:"required_if=Role instructor" example:"Dr. Jane Smith"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"86400"`
}

// AuthResponse is returned by a successful login
type AuthResponse struct {
	Msg   string           `json:"msg" example:"Login successful"`
	Token TokenResponse    `json:"token"`
	User  models.Principal `json:"user" swaggertype:"object"`
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Msg  string           `json:"msg" example:"Registration successful"`
	ID   int64            `json:"id" example:"1"`
	User models.Principal `json:"user" swaggertype:"object"`
}
