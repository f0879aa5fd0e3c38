// Package repotest provides in-memory implementations of the repository
// interfaces for tests. They enforce the same uniqueness and ordering rules
// as the Postgres schema and can be told to fail specific calls.
package repotest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// Store is the shared state behind all in-memory repositories
type Store struct {
	mu     sync.Mutex
	nextID int64
	clock  time.Time
	fails  map[string]error
	calls  map[string]int

	courses     map[int64]models.Course
	modules     map[int64]models.Module
	lessons     map[int64]models.Lesson
	quizzes     map[int64]models.Quiz
	attempts    []models.QuizAttempt
	assignments map[int64]models.Assignment
	submissions []models.Submission
	reviews     []models.Review
	chat        []models.ChatMessage
	enrollments []models.Enrollment
	students    map[int64]models.Student
	instructors map[int64]models.Instructor
	admins      map[int64]models.Admin
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		fails:       map[string]error{},
		calls:       map[string]int{},
		courses:     map[int64]models.Course{},
		modules:     map[int64]models.Module{},
		lessons:     map[int64]models.Lesson{},
		quizzes:     map[int64]models.Quiz{},
		assignments: map[int64]models.Assignment{},
		students:    map[int64]models.Student{},
		instructors: map[int64]models.Instructor{},
		admins:      map[int64]models.Admin{},
	}
}

// FailOn makes the named operation fail with err for the given key. Keys are
// operation names such as "lessons.ListByModule" and the parent id.
func (s *Store) FailOn(op string, id int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fails[failKey(op, id)] = err
}

// Calls returns how many times op was invoked
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func failKey(op string, id int64) string { return fmt.Sprintf("%s:%d", op, id) }

// enter records the call and returns an injected failure; callers hold s.mu
func (s *Store) enter(op string, id int64) error {
	s.calls[op]++
	return s.fails[failKey(op, id)]
}

// tick assigns ids and strictly increasing timestamps; callers hold s.mu
func (s *Store) tick() (int64, time.Time) {
	s.nextID++
	s.clock = s.clock.Add(time.Second)
	return s.nextID, s.clock
}

// Repositories exposes the store through every repository interface
type Repositories struct {
	Course     *CourseRepo
	Module     *ModuleRepo
	Lesson     *LessonRepo
	Quiz       *QuizRepo
	Assignment *AssignmentRepo
	Submission *SubmissionRepo
	Review     *ReviewRepo
	Chat       *ChatRepo
	Enrollment *EnrollmentRepo
	Principal  *PrincipalRepo
}

// Repos builds the repository set over s
func (s *Store) Repos() Repositories {
	return Repositories{
		Course:     &CourseRepo{s},
		Module:     &ModuleRepo{s},
		Lesson:     &LessonRepo{s},
		Quiz:       &QuizRepo{s},
		Assignment: &AssignmentRepo{s},
		Submission: &SubmissionRepo{s},
		Review:     &ReviewRepo{s},
		Chat:       &ChatRepo{s},
		Enrollment: &EnrollmentRepo{s},
		Principal:  &PrincipalRepo{s},
	}
}

var (
	_ repositories.ICourseRepository     = (*CourseRepo)(nil)
	_ repositories.IModuleRepository     = (*ModuleRepo)(nil)
	_ repositories.ILessonRepository     = (*LessonRepo)(nil)
	_ repositories.IQuizRepository       = (*QuizRepo)(nil)
	_ repositories.IAssignmentRepository = (*AssignmentRepo)(nil)
	_ repositories.ISubmissionRepository = (*SubmissionRepo)(nil)
	_ repositories.IReviewRepository     = (*ReviewRepo)(nil)
	_ repositories.IChatRepository       = (*ChatRepo)(nil)
	_ repositories.IEnrollmentRepository = (*EnrollmentRepo)(nil)
	_ repositories.IPrincipalRepository  = (*PrincipalRepo)(nil)
)

func sortedValues[T any](m map[int64]T, keep func(T) bool, less func(a, b T) bool) []T {
	out := []T{}
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
