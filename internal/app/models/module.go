package models

import "time"

// Module belongs to one course. Position is an ordering hint only.
type Module struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Lesson belongs to one module
type Lesson struct {
	ID        int64     `json:"id" db:"id"`
	ModuleID  int64     `json:"moduleId" db:"module_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	VideoURL  *string   `json:"videoUrl" db:"video_url"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Quiz belongs to one module. TimeLimit is in minutes.
type Quiz struct {
	ID         int64     `json:"id" db:"id"`
	ModuleID   int64     `json:"moduleId" db:"module_id"`
	Title      string    `json:"title" db:"title"`
	TotalMarks int       `json:"totalMarks" db:"total_marks"`
	TimeLimit  int       `json:"timeLimit" db:"time_limit"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// QuizAttempt is unique per (quiz, student, attempt number)
type QuizAttempt struct {
	ID        int64     `json:"id" db:"id"`
	QuizID    int64     `json:"quizId" db:"quiz_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	Score     int       `json:"score" db:"score"`
	AttemptNo int       `json:"attemptNo" db:"attempt_no"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Populated by the instructor listing
	FirstName string `json:"firstName,omitempty" db:"first_name"`
	LastName  string `json:"lastName,omitempty" db:"last_name"`
}

// Assignment belongs to one module and, denormalised, to its course
type Assignment struct {
	ID          int64      `json:"id" db:"id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	ModuleID    int64      `json:"moduleId" db:"module_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
	MaxScore    int        `json:"maxScore" db:"max_score"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// Submission is immutable and unique per (assignment, student)
type Submission struct {
	ID           int64     `json:"id" db:"id"`
	AssignmentID int64     `json:"assignmentId" db:"assignment_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	ContentURL   string    `json:"contentUrl" db:"content_url"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
