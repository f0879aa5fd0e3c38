package repotest

import (
	"context"
	"sort"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// SubmissionRepo is an in-memory ISubmissionRepository
type SubmissionRepo struct{ s *Store }

func (r *SubmissionRepo) Create(_ context.Context, sub *models.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assignments[sub.AssignmentID]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	for _, existing := range r.s.submissions {
		if existing.AssignmentID == sub.AssignmentID && existing.StudentID == sub.StudentID {
			return apperrors.ErrAlreadySubmitted
		}
	}
	sub.ID, sub.CreatedAt = r.s.tick()
	r.s.submissions = append(r.s.submissions, *sub)
	return nil
}

func (r *SubmissionRepo) ListByAssignment(_ context.Context, assignmentID int64) ([]models.Submission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Submission{}
	for _, sub := range r.s.submissions {
		if sub.AssignmentID == assignmentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *SubmissionRepo) ListByStudent(_ context.Context, studentID int64) ([]models.Submission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Submission{}
	for _, sub := range r.s.submissions {
		if sub.StudentID == studentID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *SubmissionRepo) GetForStudent(_ context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.submissions {
		if sub.AssignmentID == assignmentID && sub.StudentID == studentID {
			return &sub, nil
		}
	}
	return nil, apperrors.ErrSubmissionNotFound
}

// ReviewRepo is an in-memory IReviewRepository
type ReviewRepo struct{ s *Store }

func (r *ReviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rv.Rating < 1 || rv.Rating > 5 {
		return apperrors.NewValidationError("Rating must be between 1 and 5")
	}
	if _, ok := r.s.courses[rv.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	rv.ID, rv.CreatedAt = r.s.tick()
	r.s.reviews = append(r.s.reviews, *rv)
	return nil
}

func (r *ReviewRepo) ListByCourse(_ context.Context, courseID int64) ([]models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Review{}
	for i := len(r.s.reviews) - 1; i >= 0; i-- {
		if r.s.reviews[i].CourseID == courseID {
			out = append(out, r.s.reviews[i])
		}
	}
	return out, nil
}

// ChatRepo is an in-memory IChatRepository
type ChatRepo struct{ s *Store }

func (r *ChatRepo) Create(_ context.Context, m *models.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if (m.StudentID == nil) == (m.InstructorID == nil) {
		return apperrors.NewValidationError("A message must have exactly one sender")
	}
	if _, ok := r.s.courses[m.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	m.ID, m.CreatedAt = r.s.tick()
	r.s.chat = append(r.s.chat, *m)
	return nil
}

func (r *ChatRepo) ListByCourse(_ context.Context, courseID int64) ([]models.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.ChatMessage{}
	for _, m := range r.s.chat {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

// EnrollmentRepo is an in-memory IEnrollmentRepository
type EnrollmentRepo struct{ s *Store }

func (r *EnrollmentRepo) Create(_ context.Context, e *models.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.courses[e.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	if r.s.enrolledLocked(e.StudentID, e.CourseID) {
		return apperrors.ErrAlreadyEnrolled
	}
	e.ID, e.CreatedAt = r.s.tick()
	r.s.enrollments = append(r.s.enrollments, *e)
	return nil
}

func (r *EnrollmentRepo) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("enrollments.Exists", courseID); err != nil {
		return false, err
	}
	return r.s.enrolledLocked(studentID, courseID), nil
}

func (s *Store) enrolledLocked(studentID, courseID int64) bool {
	for _, e := range s.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true
		}
	}
	return false
}

func (r *EnrollmentRepo) ListCoursesByStudent(_ context.Context, studentID int64) ([]models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Course{}
	for _, e := range r.s.enrollments {
		if e.StudentID == studentID {
			out = append(out, r.s.courses[e.CourseID])
		}
	}
	return out, nil
}

func (r *EnrollmentRepo) ProgressByStudent(_ context.Context, studentID int64) ([]models.StudentCourseProgress, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.StudentCourseProgress{}
	for _, e := range r.s.enrollments {
		if e.StudentID != studentID {
			continue
		}
		c := r.s.courses[e.CourseID]
		p := models.StudentCourseProgress{CourseID: c.ID, CourseTitle: c.Title}
		for _, a := range r.s.assignments {
			if a.CourseID != c.ID {
				continue
			}
			p.TotalAssignments++
			for _, sub := range r.s.submissions {
				if sub.AssignmentID == a.ID && sub.StudentID == studentID {
					p.SubmittedAssignments++
				}
			}
		}
		for _, q := range r.s.quizzes {
			if r.s.modules[q.ModuleID].CourseID != c.ID {
				continue
			}
			p.TotalQuizzes++
			for _, a := range r.s.attempts {
				if a.QuizID == q.ID && a.StudentID == studentID {
					p.AttemptedQuizzes++
					break
				}
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// PrincipalRepo is an in-memory IPrincipalRepository
type PrincipalRepo struct{ s *Store }

func (r *PrincipalRepo) Lookup(ctx context.Context, role models.Role, id int64) (models.Principal, error) {
	switch role {
	case models.RoleStudent:
		st, err := r.GetStudentByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return st, nil
	case models.RoleInstructor:
		inst, err := r.GetInstructorByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return inst, nil
	case models.RoleAdmin:
		a, err := r.GetAdminByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, apperrors.ErrInvalidRole
}

func (r *PrincipalRepo) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.students[id]
	if !ok {
		return nil, apperrors.ErrPrincipalNotFound
	}
	return &st, nil
}

func (r *PrincipalRepo) GetInstructorByID(_ context.Context, id int64) (*models.Instructor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inst, ok := r.s.instructors[id]
	if !ok {
		return nil, apperrors.ErrPrincipalNotFound
	}
	return &inst, nil
}

func (r *PrincipalRepo) GetAdminByID(_ context.Context, id int64) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return nil, apperrors.ErrPrincipalNotFound
	}
	return &a, nil
}

func (r *PrincipalRepo) GetCredentialsByEmail(_ context.Context, role models.Role, email string) (*models.Credentials, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var creds []models.Credentials
	switch role {
	case models.RoleStudent:
		for _, st := range r.s.students {
			creds = append(creds, models.Credentials{ID: st.ID, Role: role, Email: st.Email, PasswordHash: st.PasswordHash})
		}
	case models.RoleInstructor:
		for _, inst := range r.s.instructors {
			creds = append(creds, models.Credentials{ID: inst.ID, Role: role, Email: inst.Email, PasswordHash: inst.PasswordHash})
		}
	case models.RoleAdmin:
		for _, a := range r.s.admins {
			creds = append(creds, models.Credentials{ID: a.ID, Role: role, Email: a.Email, PasswordHash: a.PasswordHash})
		}
	default:
		return nil, apperrors.ErrInvalidRole
	}
	sort.Slice(creds, func(i, j int) bool { return creds[i].ID < creds[j].ID })
	for _, c := range creds {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, apperrors.ErrPrincipalNotFound
}

func (r *PrincipalRepo) CreateStudent(_ context.Context, st *models.Student) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.students {
		if existing.Email == st.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	st.ID, st.CreatedAt = r.s.tick()
	r.s.students[st.ID] = *st
	return nil
}

func (r *PrincipalRepo) CreateInstructor(_ context.Context, inst *models.Instructor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.instructors {
		if existing.Email == inst.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	inst.ID, inst.CreatedAt = r.s.tick()
	r.s.instructors[inst.ID] = *inst
	return nil
}

func (r *PrincipalRepo) CreateAdmin(_ context.Context, a *models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if existing.Email == a.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	a.ID, a.CreatedAt = r.s.tick()
	r.s.admins[a.ID] = *a
	return nil
}
