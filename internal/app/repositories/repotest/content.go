package repotest

import (
	"context"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// CourseRepo is an in-memory ICourseRepository
type CourseRepo struct{ s *Store }

func (r *CourseRepo) Create(_ context.Context, c *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("courses.Create", c.InstructorID); err != nil {
		return err
	}
	c.ID, c.CreatedAt = r.s.tick()
	r.s.courses[c.ID] = *c
	return nil
}

func (r *CourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("courses.GetByID", id); err != nil {
		return nil, err
	}
	c, ok := r.s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &c, nil
}

func (r *CourseRepo) Update(_ context.Context, c *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.courses[c.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.InstructorID, c.CreatedAt = old.InstructorID, old.CreatedAt
	r.s.courses[c.ID] = *c
	return nil
}

func (r *CourseRepo) DeleteCascade(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	for mid, m := range r.s.modules {
		if m.CourseID == id {
			r.s.deleteModuleLocked(mid)
		}
	}
	r.s.chat = filter(r.s.chat, func(m models.ChatMessage) bool { return m.CourseID != id })
	r.s.reviews = filter(r.s.reviews, func(rv models.Review) bool { return rv.CourseID != id })
	r.s.enrollments = filter(r.s.enrollments, func(e models.Enrollment) bool { return e.CourseID != id })
	delete(r.s.courses, id)
	return nil
}

func (r *CourseRepo) ListPublished(_ context.Context) ([]models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.courses,
		func(c models.Course) bool { return c.IsPublished() },
		func(a, b models.Course) bool { return a.ID > b.ID }), nil
}

func (r *CourseRepo) ListByInstructor(_ context.Context, instructorID int64) ([]models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.courses,
		func(c models.Course) bool { return c.InstructorID == instructorID },
		func(a, b models.Course) bool { return a.ID > b.ID }), nil
}

func (r *CourseRepo) InstructorStats(_ context.Context, instructorID int64) ([]models.CourseStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	courses := sortedValues(r.s.courses,
		func(c models.Course) bool { return c.InstructorID == instructorID },
		func(a, b models.Course) bool { return a.ID < b.ID })

	stats := []models.CourseStats{}
	for _, c := range courses {
		st := models.CourseStats{CourseID: c.ID, CourseTitle: c.Title}
		for _, e := range r.s.enrollments {
			if e.CourseID == c.ID {
				st.EnrolledStudents++
			}
		}
		for _, a := range r.s.assignments {
			if a.CourseID == c.ID {
				st.TotalAssignments++
				for _, sub := range r.s.submissions {
					if sub.AssignmentID == a.ID {
						st.TotalSubmissions++
					}
				}
			}
		}
		for _, q := range r.s.quizzes {
			if r.s.modules[q.ModuleID].CourseID == c.ID {
				st.TotalQuizzes++
			}
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// ModuleRepo is an in-memory IModuleRepository
type ModuleRepo struct{ s *Store }

func (r *ModuleRepo) Create(_ context.Context, m *models.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[m.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	m.ID, m.CreatedAt = r.s.tick()
	r.s.modules[m.ID] = *m
	return nil
}

func (r *ModuleRepo) GetByID(_ context.Context, id int64) (*models.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.modules[id]
	if !ok {
		return nil, apperrors.ErrModuleNotFound
	}
	return &m, nil
}

func (r *ModuleRepo) ListByCourse(_ context.Context, courseID int64) ([]models.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("modules.ListByCourse", courseID); err != nil {
		return nil, err
	}
	return sortedValues(r.s.modules,
		func(m models.Module) bool { return m.CourseID == courseID },
		func(a, b models.Module) bool {
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.ID < b.ID
		}), nil
}

func (r *ModuleRepo) Update(_ context.Context, m *models.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.modules[m.ID]
	if !ok {
		return apperrors.ErrModuleNotFound
	}
	m.CourseID, m.CreatedAt = old.CourseID, old.CreatedAt
	r.s.modules[m.ID] = *m
	return nil
}

func (r *ModuleRepo) DeleteCascade(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.modules[id]; !ok {
		return apperrors.ErrModuleNotFound
	}
	r.s.deleteModuleLocked(id)
	return nil
}

func (s *Store) deleteModuleLocked(id int64) {
	for aid, a := range s.assignments {
		if a.ModuleID == id {
			s.deleteAssignmentLocked(aid)
		}
	}
	for qid, q := range s.quizzes {
		if q.ModuleID == id {
			s.attempts = filter(s.attempts, func(a models.QuizAttempt) bool { return a.QuizID != qid })
			delete(s.quizzes, qid)
		}
	}
	for lid, l := range s.lessons {
		if l.ModuleID == id {
			delete(s.lessons, lid)
		}
	}
	delete(s.modules, id)
}

func (s *Store) deleteAssignmentLocked(id int64) {
	s.submissions = filter(s.submissions, func(sub models.Submission) bool { return sub.AssignmentID != id })
	delete(s.assignments, id)
}

// LessonRepo is an in-memory ILessonRepository
type LessonRepo struct{ s *Store }

func (r *LessonRepo) Create(_ context.Context, l *models.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.modules[l.ModuleID]; !ok {
		return apperrors.ErrModuleNotFound
	}
	l.ID, l.CreatedAt = r.s.tick()
	r.s.lessons[l.ID] = *l
	return nil
}

func (r *LessonRepo) GetByID(_ context.Context, id int64) (*models.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lessons[id]
	if !ok {
		return nil, apperrors.ErrLessonNotFound
	}
	return &l, nil
}

func (r *LessonRepo) ListByModule(_ context.Context, moduleID int64) ([]models.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("lessons.ListByModule", moduleID); err != nil {
		return nil, err
	}
	return sortedValues(r.s.lessons,
		func(l models.Lesson) bool { return l.ModuleID == moduleID },
		func(a, b models.Lesson) bool {
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.ID < b.ID
		}), nil
}

func (r *LessonRepo) Update(_ context.Context, l *models.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.lessons[l.ID]
	if !ok {
		return apperrors.ErrLessonNotFound
	}
	l.ModuleID, l.CreatedAt = old.ModuleID, old.CreatedAt
	r.s.lessons[l.ID] = *l
	return nil
}

// QuizRepo is an in-memory IQuizRepository
type QuizRepo struct{ s *Store }

func (r *QuizRepo) Create(_ context.Context, q *models.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.modules[q.ModuleID]; !ok {
		return apperrors.ErrModuleNotFound
	}
	q.ID, q.CreatedAt = r.s.tick()
	r.s.quizzes[q.ID] = *q
	return nil
}

func (r *QuizRepo) GetByID(_ context.Context, id int64) (*models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quizzes[id]
	if !ok {
		return nil, apperrors.ErrQuizNotFound
	}
	return &q, nil
}

func (r *QuizRepo) ListByModule(_ context.Context, moduleID int64) ([]models.Quiz, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("quizzes.ListByModule", moduleID); err != nil {
		return nil, err
	}
	return sortedValues(r.s.quizzes,
		func(q models.Quiz) bool { return q.ModuleID == moduleID },
		func(a, b models.Quiz) bool { return a.ID < b.ID }), nil
}

func (r *QuizRepo) Update(_ context.Context, q *models.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.quizzes[q.ID]
	if !ok {
		return apperrors.ErrQuizNotFound
	}
	q.ModuleID, q.CreatedAt = old.ModuleID, old.CreatedAt
	r.s.quizzes[q.ID] = *q
	return nil
}

// SubmitAttempt mirrors the stored function: the quiz must exist, the score
// must be in range and the (quiz, student, attempt) triple must be new.
func (r *QuizRepo) SubmitAttempt(_ context.Context, a *models.QuizAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.quizzes[a.QuizID]
	if !ok {
		return apperrors.ErrQuizNotFound
	}
	if a.Score < 0 || a.Score > q.TotalMarks || a.AttemptNo < 1 {
		return apperrors.NewValidationError("Score or attempt number out of range")
	}
	for _, existing := range r.s.attempts {
		if existing.QuizID == a.QuizID && existing.StudentID == a.StudentID && existing.AttemptNo == a.AttemptNo {
			return apperrors.ErrDuplicateAttempt
		}
	}
	a.ID, a.CreatedAt = r.s.tick()
	r.s.attempts = append(r.s.attempts, *a)
	return nil
}

func (r *QuizRepo) ListAttempts(_ context.Context, quizID int64) ([]models.QuizAttempt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.QuizAttempt{}
	for _, a := range r.s.attempts {
		if a.QuizID == quizID {
			st := r.s.students[a.StudentID]
			a.FirstName, a.LastName = st.FirstName, st.LastName
			out = append(out, a)
		}
	}
	return out, nil
}

// AssignmentRepo is an in-memory IAssignmentRepository
type AssignmentRepo struct{ s *Store }

func (r *AssignmentRepo) Create(_ context.Context, a *models.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.modules[a.ModuleID]; !ok {
		return apperrors.ErrModuleNotFound
	}
	a.ID, a.CreatedAt = r.s.tick()
	r.s.assignments[a.ID] = *a
	return nil
}

func (r *AssignmentRepo) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return &a, nil
}

func (r *AssignmentRepo) ListByModule(_ context.Context, moduleID int64) ([]models.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("assignments.ListByModule", moduleID); err != nil {
		return nil, err
	}
	return sortedValues(r.s.assignments,
		func(a models.Assignment) bool { return a.ModuleID == moduleID },
		func(a, b models.Assignment) bool { return a.ID < b.ID }), nil
}

func (r *AssignmentRepo) ListByCourse(_ context.Context, courseID int64) ([]models.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.assignments,
		func(a models.Assignment) bool { return a.CourseID == courseID },
		func(a, b models.Assignment) bool { return a.ID < b.ID }), nil
}

func (r *AssignmentRepo) Update(_ context.Context, a *models.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.assignments[a.ID]
	if !ok {
		return apperrors.ErrAssignmentNotFound
	}
	a.CourseID, a.ModuleID, a.CreatedAt = old.CourseID, old.ModuleID, old.CreatedAt
	r.s.assignments[a.ID] = *a
	return nil
}

func (r *AssignmentRepo) DeleteCascade(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assignments[id]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	r.s.deleteAssignmentLocked(id)
	return nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
