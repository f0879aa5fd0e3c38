package dto

import (
	"time"

	"github.com/yigit/coursehub/internal/app/models"
)

// CourseRequest creates or replaces a course
type CourseRequest struct {
	Title       string              `json:"title" binding:"required,max=255" example:"Intro to Go"`
	Description string              `json:"description" example:"Learn Go from scratch"`
	Category    string              `json:"category" binding:"required,max=100" example:"Programming"`
	Language    string              `json:"language" binding:"required,max=50" example:"En"`
	Price       float64             `json:"price" binding:"gte=0" example:"10"`
	Status      models.CourseStatus `json:"status" binding:"omitempty,oneof=draft published" example:"draft"`
}

// ToModel converts the request to a course
func (r *CourseRequest) ToModel() *models.Course {
	return &models.Course{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Language:    r.Language,
		Price:       r.Price,
		Status:      r.Status,
	}
}

// CreateModuleRequest adds a module to a course
type CreateModuleRequest struct {
	CourseID    int64  `json:"courseId" binding:"required,min=1" example:"1"`
	Title       string `json:"title" binding:"required,max=255" example:"Getting started"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"gte=0" example:"1"`
}

// UpdateModuleRequest replaces a module's editable fields
type UpdateModuleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Position    int    `json:"position" binding:"gte=0"`
}

// CreateLessonRequest adds a lesson to a module
type CreateLessonRequest struct {
	ModuleID int64   `json:"moduleId" binding:"required,min=1" example:"1"`
	Title    string  `json:"title" binding:"required,max=255" example:"Hello, world"`
	Content  string  `json:"content"`
	VideoURL *string `json:"videoUrl" binding:"omitempty,url" example:"https://videos.example.com/1.mp4"`
	Position int     `json:"position" binding:"gte=0"`
}

// UpdateLessonRequest replaces a lesson's editable fields
type UpdateLessonRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Content  string  `json:"content"`
	VideoURL *string `json:"videoUrl" binding:"omitempty,url"`
	Position int     `json:"position" binding:"gte=0"`
}

// CreateQuizRequest adds a quiz to a module
type CreateQuizRequest struct {
	ModuleID   int64  `json:"moduleId" binding:"required,min=1" example:"1"`
	Title      string `json:"title" binding:"required,max=255" example:"Basics quiz"`
	TotalMarks int    `json:"totalMarks" binding:"required,min=1" example:"100"`
	TimeLimit  int    `json:"timeLimit" binding:"gte=0" example:"30"`
}

// UpdateQuizRequest replaces a quiz's editable fields
type UpdateQuizRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	TotalMarks int    `json:"totalMarks" binding:"required,min=1"`
	TimeLimit  int    `json:"timeLimit" binding:"gte=0"`
}

// SubmitQuizRequest records a quiz attempt. Score is a pointer so that a
// score of zero is distinguishable from a missing one.
type SubmitQuizRequest struct {
	QuizID    int64 `json:"quizId" binding:"required,min=1" example:"1"`
	Score     *int  `json:"score" binding:"required,gte=0" example:"80"`
	AttemptNo int   `json:"attemptNo" binding:"required,min=1" example:"1"`
}

// CreateAssignmentRequest adds an assignment to a module
type CreateAssignmentRequest struct {
	ModuleID    int64      `json:"moduleId" binding:"required,min=1" example:"1"`
	Title       string     `json:"title" binding:"required,max=255" example:"Build a CLI"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate" example:"2025-06-01T00:00:00Z"`
	MaxScore    int        `json:"maxScore" binding:"gte=0" example:"100"`
}

// UpdateAssignmentRequest replaces an assignment's editable fields
type UpdateAssignmentRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	MaxScore    int        `json:"maxScore" binding:"gte=0"`
}

// SubmitAssignmentRequest hands in an assignment
type SubmitAssignmentRequest struct {
	AssignmentID int64  `json:"assignmentId" binding:"required,min=1" example:"1"`
	ContentURL   string `json:"contentUrl" binding:"required,url" example:"https://github.com/jdoe/cli"`
}

// CreateReviewRequest rates a course
type CreateReviewRequest struct {
	CourseID int64  `json:"courseId" binding:"required,min=1" example:"1"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment  string `json:"comment" example:"Great course"`
}

// SendMessageRequest posts to a course chat
type SendMessageRequest struct {
	CourseID int64  `json:"courseId" binding:"required,min=1" example:"1"`
	Message  string `json:"message" binding:"required,max=2000" example:"When is the deadline?"`
}

// EnrollRequest enrolls the caller in a course
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1" example:"1"`
}
