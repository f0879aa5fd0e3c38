package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/monitoring"
	"golang.org/x/sync/errgroup"
)

// CourseDetailsService assembles the nested course view
type CourseDetailsService interface {
	GetCourseDetails(ctx context.Context, courseID int64, p models.Principal) (*models.CourseDetails, error)
}

type courseDetailsServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	moduleRepo     repositories.IModuleRepository
	lessonRepo     repositories.ILessonRepository
	quizRepo       repositories.IQuizRepository
	assignmentRepo repositories.IAssignmentRepository
	enrollmentRepo repositories.IEnrollmentRepository
	maxConcurrency int
	logger         zerolog.Logger
}

// NewCourseDetailsService creates a new CourseDetailsService. maxConcurrency
// bounds the number of in-flight repository calls per request.
func NewCourseDetailsService(
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	lessonRepo repositories.ILessonRepository,
	quizRepo repositories.IQuizRepository,
	assignmentRepo repositories.IAssignmentRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	maxConcurrency int,
	logger zerolog.Logger,
) CourseDetailsService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &courseDetailsServiceImpl{
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		quizRepo:       quizRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// GetCourseDetails returns the course with its modules in position order,
// each carrying its lessons, quizzes and assignments. A failed content
// fetch for a module is logged and served as an empty list; the enrollment
// check and the course and module reads fail the request.
func (s *courseDetailsServiceImpl) GetCourseDetails(ctx context.Context, courseID int64, p models.Principal) (*models.CourseDetails, error) {
	course, err := visibleCourse(ctx, s.courseRepo, courseID, p)
	if err != nil {
		return nil, err
	}

	modules, err := s.moduleRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	details := make([]models.ModuleDetails, len(modules))
	for i, m := range modules {
		details[i] = models.ModuleDetails{
			Module:      m,
			Lessons:     []models.Lesson{},
			Quizzes:     []models.Quiz{},
			Assignments: []models.Assignment{},
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	var enrolled bool
	if student, ok := models.IsStudent(p); ok {
		g.Go(func() error {
			var err error
			enrolled, err = s.enrollmentRepo.Exists(gctx, student.ID, courseID)
			return err
		})
	}

	for i := range details {
		d := &details[i]
		g.Go(func() error {
			d.Lessons = orEmpty(gctx, s.logger, "lessons", d.ID, s.lessonRepo.ListByModule)
			return nil
		})
		g.Go(func() error {
			d.Quizzes = orEmpty(gctx, s.logger, "quizzes", d.ID, s.quizRepo.ListByModule)
			return nil
		})
		g.Go(func() error {
			d.Assignments = orEmpty(gctx, s.logger, "assignments", d.ID, s.assignmentRepo.ListByModule)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.CourseDetails{
		Course:     *course,
		Modules:    details,
		IsEnrolled: enrolled,
	}, nil
}

// orEmpty runs a per-module fetch and substitutes an empty list on failure
func orEmpty[T any](
	ctx context.Context,
	logger zerolog.Logger,
	resource string,
	moduleID int64,
	fetch func(context.Context, int64) ([]T, error),
) []T {
	items, err := fetch(ctx, moduleID)
	if err != nil {
		monitoring.AggregationDegraded.WithLabelValues(resource).Inc()
		logger.Warn().Err(err).Str("resource", resource).Int64("moduleID", moduleID).Msg("Module content fetch failed, serving empty list")
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
