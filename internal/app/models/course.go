package models

import "time"

// CourseStatus is the publication state of a course
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "draft"
	CourseStatusPublished CourseStatus = "published"
)

// Valid reports whether s is a known status
func (s CourseStatus) Valid() bool {
	return s == CourseStatusDraft || s == CourseStatusPublished
}

// Course is owned by exactly one instructor. Only published courses are
// visible in the public listing.
type Course struct {
	ID           int64        `json:"id" db:"id" example:"1"`
	InstructorID int64        `json:"instructorId" db:"instructor_id" example:"3"`
	Title        string       `json:"title" db:"title" example:"Intro to Go"`
	Description  string       `json:"description" db:"description"`
	Category     string       `json:"category" db:"category" example:"Programming"`
	Language     string       `json:"language" db:"language" example:"En"`
	Price        float64      `json:"price" db:"price" example:"10"`
	Status       CourseStatus `json:"status" db:"status" example:"draft"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// IsPublished reports whether the course is publicly visible
func (c *Course) IsPublished() bool {
	return c.Status == CourseStatusPublished
}

// CourseStats holds per-course counters computed at read time
type CourseStats struct {
	CourseID         int64  `json:"courseId"`
	CourseTitle      string `json:"courseTitle"`
	EnrolledStudents int64  `json:"enrolledStudents"`
	TotalAssignments int64  `json:"totalAssignments"`
	TotalQuizzes     int64  `json:"totalQuizzes"`
	TotalSubmissions int64  `json:"totalSubmissions"`
}
