package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories/repotest"
)

type fixture struct {
	store *repotest.Store
	repos repotest.Repositories
	authz *appauth.AuthorizationService

	instructor *models.Instructor
	rival      *models.Instructor
	student    *models.Student
	outsider   *models.Student
	admin      *models.Admin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repotest.NewStore()
	r := store.Repos()

	f := &fixture{
		store: store,
		repos: r,
		authz: appauth.NewAuthorizationService(r.Course, r.Module, r.Lesson, r.Quiz, r.Assignment, r.Enrollment, zerolog.Nop()),

		instructor: &models.Instructor{UserName: "ada", Email: "ada@example.com", FullName: "Dr. Ada Lovelace"},
		rival:      &models.Instructor{UserName: "alan", Email: "alan@example.com", FullName: "Dr. Alan Turing"},
		student:    &models.Student{UserName: "jdoe", Email: "jdoe@example.com", FirstName: "John", LastName: "Doe"},
		outsider:   &models.Student{UserName: "msmith", Email: "msmith@example.com", FirstName: "Mary", LastName: "Smith"},
		admin:      &models.Admin{UserName: "admin", Email: "admin@example.com"},
	}
	require.NoError(t, r.Principal.CreateInstructor(ctx, f.instructor))
	require.NoError(t, r.Principal.CreateInstructor(ctx, f.rival))
	require.NoError(t, r.Principal.CreateStudent(ctx, f.student))
	require.NoError(t, r.Principal.CreateStudent(ctx, f.outsider))
	require.NoError(t, r.Principal.CreateAdmin(ctx, f.admin))
	return f
}

func (f *fixture) course(t *testing.T, owner *models.Instructor, status models.CourseStatus) *models.Course {
	t.Helper()
	c := &models.Course{
		InstructorID: owner.ID,
		Title:        "Intro to Go",
		Category:     "Programming",
		Language:     "En",
		Price:        10,
		Status:       status,
	}
	require.NoError(t, f.repos.Course.Create(context.Background(), c))
	return c
}

func (f *fixture) module(t *testing.T, courseID int64, title string, position int) *models.Module {
	t.Helper()
	m := &models.Module{CourseID: courseID, Title: title, Position: position}
	require.NoError(t, f.repos.Module.Create(context.Background(), m))
	return m
}

func (f *fixture) quiz(t *testing.T, moduleID int64, totalMarks int) *models.Quiz {
	t.Helper()
	q := &models.Quiz{ModuleID: moduleID, Title: "Quiz", TotalMarks: totalMarks, TimeLimit: 30}
	require.NoError(t, f.repos.Quiz.Create(context.Background(), q))
	return q
}

func (f *fixture) assignment(t *testing.T, module *models.Module) *models.Assignment {
	t.Helper()
	a := &models.Assignment{CourseID: module.CourseID, ModuleID: module.ID, Title: "Build a CLI", MaxScore: 100}
	require.NoError(t, f.repos.Assignment.Create(context.Background(), a))
	return a
}

func (f *fixture) enroll(t *testing.T, student *models.Student, courseID int64) {
	t.Helper()
	require.NoError(t, f.repos.Enrollment.Create(context.Background(), &models.Enrollment{StudentID: student.ID, CourseID: courseID}))
}

// recordingPublisher captures pushed events
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	roomID    int64
	eventType string
	data      interface{}
}

func (p *recordingPublisher) Publish(roomID int64, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{roomID, eventType, data})
}
