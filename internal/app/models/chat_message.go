package models

import "time"

// ChatMessage is an append-only entry of a course chat. Exactly one of
// StudentID and InstructorID is set.
type ChatMessage struct {
	ID           int64     `json:"id" db:"id"`
	CourseID     int64     `json:"courseId" db:"course_id"`
	StudentID    *int64    `json:"studentId" db:"student_id"`
	InstructorID *int64    `json:"instructorId" db:"instructor_id"`
	Message      string    `json:"message" db:"message"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// SenderRole returns the role of whoever posted the message
func (m *ChatMessage) SenderRole() Role {
	if m.InstructorID != nil {
		return RoleInstructor
	}
	return RoleStudent
}

// Review is a student's rating of a course
type Review struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Enrollment links a student to a course; existence means enrolled
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
