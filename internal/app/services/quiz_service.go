package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// QuizService manages quizzes and records student attempts
type QuizService interface {
	CreateQuiz(ctx context.Context, p models.Principal, quiz *models.Quiz) (*models.Quiz, error)
	GetQuiz(ctx context.Context, id int64, p models.Principal) (*models.Quiz, error)
	ListByModule(ctx context.Context, moduleID int64, p models.Principal) ([]models.Quiz, error)
	UpdateQuiz(ctx context.Context, p models.Principal, quiz *models.Quiz) (*models.Quiz, error)
	SubmitAttempt(ctx context.Context, p models.Principal, attempt *models.QuizAttempt) (*models.QuizAttempt, error)
	ListAttempts(ctx context.Context, p models.Principal, quizID int64) ([]models.QuizAttempt, error)
}

type quizServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	moduleRepo     repositories.IModuleRepository
	quizRepo       repositories.IQuizRepository
	enrollmentRepo repositories.IEnrollmentRepository
	authz          *appauth.AuthorizationService
	logger         zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	quizRepo repositories.IQuizRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) QuizService {
	return &quizServiceImpl{
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		quizRepo:       quizRepo,
		enrollmentRepo: enrollmentRepo,
		authz:          authz,
		logger:         logger,
	}
}

func validateQuiz(quiz *models.Quiz) error {
	quiz.Title = strings.TrimSpace(quiz.Title)
	if err := required("title", quiz.Title); err != nil {
		return err
	}
	if quiz.TotalMarks < 1 {
		return apperrors.NewValidationError("totalMarks must be at least 1")
	}
	if quiz.TimeLimit < 0 {
		return apperrors.NewValidationError("timeLimit cannot be negative")
	}
	return nil
}

func (s *quizServiceImpl) CreateQuiz(ctx context.Context, p models.Principal, quiz *models.Quiz) (*models.Quiz, error) {
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}
	if _, err := s.authz.ModuleForOwner(ctx, quiz.ModuleID, p); err != nil {
		return nil, err
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("quizID", quiz.ID).Int64("moduleID", quiz.ModuleID).Msg("Quiz created")
	return quiz, nil
}

func (s *quizServiceImpl) GetQuiz(ctx context.Context, id int64, p models.Principal) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := visibleModule(ctx, s.moduleRepo, s.courseRepo, quiz.ModuleID, p); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *quizServiceImpl) ListByModule(ctx context.Context, moduleID int64, p models.Principal) ([]models.Quiz, error) {
	if _, err := visibleModule(ctx, s.moduleRepo, s.courseRepo, moduleID, p); err != nil {
		return nil, err
	}
	return s.quizRepo.ListByModule(ctx, moduleID)
}

func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, p models.Principal, quiz *models.Quiz) (*models.Quiz, error) {
	if _, err := s.authz.QuizForOwner(ctx, quiz.ID, p); err != nil {
		return nil, err
	}
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}
	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return s.quizRepo.GetByID(ctx, quiz.ID)
}

// SubmitAttempt records a scored attempt for an enrolled student. The
// (quiz, student, attempt number) uniqueness is enforced by the store.
func (s *quizServiceImpl) SubmitAttempt(ctx context.Context, p models.Principal, attempt *models.QuizAttempt) (*models.QuizAttempt, error) {
	student, err := requireStudent(p)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	if attempt.Score < 0 || attempt.Score > quiz.TotalMarks {
		return nil, apperrors.NewValidationError("score must be between 0 and the quiz's total marks")
	}
	if attempt.AttemptNo < 1 {
		return nil, apperrors.NewValidationError("attemptNo must be at least 1")
	}

	module, err := s.moduleRepo.GetByID(ctx, quiz.ModuleID)
	if err != nil {
		return nil, err
	}
	if err := requireEnrolled(ctx, s.enrollmentRepo, student.ID, module.CourseID); err != nil {
		return nil, err
	}

	attempt.StudentID = student.ID
	if err := s.quizRepo.SubmitAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("quizID", attempt.QuizID).
		Int64("studentID", student.ID).
		Int("attemptNo", attempt.AttemptNo).
		Msg("Quiz attempt recorded")
	return attempt, nil
}

// ListAttempts returns every attempt at an owned quiz with the students' names
func (s *quizServiceImpl) ListAttempts(ctx context.Context, p models.Principal, quizID int64) ([]models.QuizAttempt, error) {
	if _, err := s.authz.QuizForOwner(ctx, quizID, p); err != nil {
		return nil, err
	}
	return s.quizRepo.ListAttempts(ctx, quizID)
}
