package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
)

// ICourseRepository defines course persistence
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	DeleteCascade(ctx context.Context, id int64) error
	ListPublished(ctx context.Context) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error)
	InstructorStats(ctx context.Context, instructorID int64) ([]models.CourseStats, error)
}

// IModuleRepository defines module persistence
type IModuleRepository interface {
	Create(ctx context.Context, module *models.Module) error
	GetByID(ctx context.Context, id int64) (*models.Module, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Module, error)
	Update(ctx context.Context, module *models.Module) error
	DeleteCascade(ctx context.Context, id int64) error
}

// ILessonRepository defines lesson persistence
type ILessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
}

// IQuizRepository defines quiz and quiz attempt persistence
type IQuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id int64) (*models.Quiz, error)
	ListByModule(ctx context.Context, moduleID int64) ([]models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	SubmitAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	ListAttempts(ctx context.Context, quizID int64) ([]models.QuizAttempt, error)
}

// IAssignmentRepository defines assignment persistence
type IAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListByModule(ctx context.Context, moduleID int64) ([]models.Assignment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	DeleteCascade(ctx context.Context, id int64) error
}

// ISubmissionRepository defines submission persistence
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Submission, error)
	GetForStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error)
}

// IReviewRepository defines review persistence
type IReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByCourse(ctx context.Context, courseID int64) ([]models.Review, error)
}

// IChatRepository defines chat message persistence
type IChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	ListByCourse(ctx context.Context, courseID int64) ([]models.ChatMessage, error)
}

// IEnrollmentRepository defines enrollment persistence
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	ListCoursesByStudent(ctx context.Context, studentID int64) ([]models.Course, error)
	ProgressByStudent(ctx context.Context, studentID int64) ([]models.StudentCourseProgress, error)
}

// IPrincipalRepository defines principal lookup and registration
type IPrincipalRepository interface {
	Lookup(ctx context.Context, role models.Role, id int64) (models.Principal, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetAdminByID(ctx context.Context, id int64) (*models.Admin, error)
	GetCredentialsByEmail(ctx context.Context, role models.Role, email string) (*models.Credentials, error)
	CreateStudent(ctx context.Context, student *models.Student) error
	CreateInstructor(ctx context.Context, instructor *models.Instructor) error
	CreateAdmin(ctx context.Context, admin *models.Admin) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Course     *CourseRepository
	Module     *ModuleRepository
	Lesson     *LessonRepository
	Quiz       *QuizRepository
	Assignment *AssignmentRepository
	Submission *SubmissionRepository
	Review     *ReviewRepository
	Chat       *ChatRepository
	Enrollment *EnrollmentRepository
	Principal  *PrincipalRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Course:     NewCourseRepository(db),
		Module:     NewModuleRepository(db),
		Lesson:     NewLessonRepository(db),
		Quiz:       NewQuizRepository(db),
		Assignment: NewAssignmentRepository(db),
		Submission: NewSubmissionRepository(db),
		Review:     NewReviewRepository(db),
		Chat:       NewChatRepository(db),
		Enrollment: NewEnrollmentRepository(db),
		Principal:  NewPrincipalRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
