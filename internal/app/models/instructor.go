package models

import "time"

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	UserName     string    `json:"userName" db:"user_name" example:"prof.smith"`
	Email        string    `json:"email" db:"email" example:"smith@example.com"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name" example:"Dr. Jane Smith"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (i *Instructor) PrincipalID() int64 { return i.ID }
func (i *Instructor) Role() Role         { return RoleInstructor }

// Admin defines the administrator model based on the 'admins' table
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	UserName     string    `json:"userName" db:"user_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (a *Admin) PrincipalID() int64 { return a.ID }
func (a *Admin) Role() Role         { return RoleAdmin }
