package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	UserName     string    `json:"userName" db:"user_name" example:"jdoe"`
	Email        string    `json:"email" db:"email" example:"jdoe@example.com"`
	PasswordHash string    `json:"-" db:"password_hash"`
	PhoneNo      *string   `json:"phoneNo,omitempty" db:"phone_no" example:"+90 555 000 0000"`
	FirstName    string    `json:"firstName" db:"first_name" example:"John"`
	LastName     string    `json:"lastName" db:"last_name" example:"Doe"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

func (s *Student) PrincipalID() int64 { return s.ID }
func (s *Student) Role() Role         { return RoleStudent }

// StudentCourseProgress summarises a student's completed work in one enrolled course
type StudentCourseProgress struct {
	CourseID             int64  `json:"courseId"`
	CourseTitle          string `json:"courseTitle"`
	TotalAssignments     int64  `json:"totalAssignments"`
	SubmittedAssignments int64  `json:"submittedAssignments"`
	TotalQuizzes         int64  `json:"totalQuizzes"`
	AttemptedQuizzes     int64  `json:"attemptedQuizzes"`
}
