package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/controllers"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories/repotest"
	"github.com/yigit/coursehub/internal/app/routes"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
	pkgauth "github.com/yigit/coursehub/internal/pkg/auth"
)

type noopSubscriber struct{}

func (noopSubscriber) Subscribe(w http.ResponseWriter, _ *http.Request, _, _ int64) error {
	w.WriteHeader(http.StatusSwitchingProtocols)
	return nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(int64, string, interface{}) {}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	repos  repotest.Repositories
	jwt    *pkgauth.JWTService

	instructor *models.Instructor
	rival      *models.Instructor
	student    *models.Student
	admin      *models.Admin
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := repotest.NewStore().Repos()
	lgr := zerolog.Nop()
	jwt := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "coursehub.test"})
	authz := appauth.NewAuthorizationService(r.Course, r.Module, r.Lesson, r.Quiz, r.Assignment, r.Enrollment, lgr)

	authService := services.NewAuthService(r.Principal, jwt, lgr)
	courseService := services.NewCourseService(r.Course, r.Principal, authz, lgr)

	c := routes.Controllers{
		Auth:       controllers.NewAuthController(authService, lgr),
		Course:     controllers.NewCourseController(courseService, services.NewCourseDetailsService(r.Course, r.Module, r.Lesson, r.Quiz, r.Assignment, r.Enrollment, 4, lgr), lgr),
		Module:     controllers.NewModuleController(services.NewModuleService(r.Course, r.Module, authz, lgr), lgr),
		Lesson:     controllers.NewLessonController(services.NewLessonService(r.Course, r.Module, r.Lesson, authz, lgr), lgr),
		Quiz:       controllers.NewQuizController(services.NewQuizService(r.Course, r.Module, r.Quiz, r.Enrollment, authz, lgr), lgr),
		Assignment: controllers.NewAssignmentController(services.NewAssignmentService(r.Course, r.Module, r.Assignment, authz, lgr), lgr),
		Submission: controllers.NewSubmissionController(services.NewSubmissionService(r.Assignment, r.Submission, r.Enrollment, authz, lgr), lgr),
		Review:     controllers.NewReviewController(services.NewReviewService(r.Course, r.Review, r.Enrollment, lgr), lgr),
		Chat:       controllers.NewChatController(services.NewChatService(r.Course, r.Chat, authz, nopPublisher{}, lgr), noopSubscriber{}, lgr),
		Enrollment: controllers.NewEnrollmentController(services.NewEnrollmentService(r.Course, r.Enrollment, r.Principal, lgr), lgr),
		Instructor: controllers.NewInstructorController(courseService, lgr),
	}

	router := gin.New()
	router.NoRoute(middleware.NotFound)
	routes.SetupRouter(router, c, middleware.NewAuthMiddleware(authService))

	api := &testAPI{
		t:          t,
		router:     router,
		repos:      r,
		jwt:        jwt,
		instructor: &models.Instructor{UserName: "ada", Email: "ada@example.com", FullName: "Dr. Ada Lovelace"},
		rival:      &models.Instructor{UserName: "alan", Email: "alan@example.com", FullName: "Dr. Alan Turing"},
		student:    &models.Student{UserName: "jdoe", Email: "jdoe@example.com", FirstName: "John", LastName: "Doe"},
		admin:      &models.Admin{UserName: "admin", Email: "admin@example.com"},
	}
	ctx := context.Background()
	require.NoError(t, r.Principal.CreateInstructor(ctx, api.instructor))
	require.NoError(t, r.Principal.CreateInstructor(ctx, api.rival))
	require.NoError(t, r.Principal.CreateStudent(ctx, api.student))
	require.NoError(t, r.Principal.CreateAdmin(ctx, api.admin))
	return api
}

func (a *testAPI) token(p models.Principal) string {
	a.t.Helper()
	tok, _, err := a.jwt.GenerateToken(p)
	require.NoError(a.t, err)
	return tok
}

func (a *testAPI) do(method, path string, as models.Principal, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+a.token(as))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) course(status models.CourseStatus) *models.Course {
	a.t.Helper()
	c := &models.Course{InstructorID: a.instructor.ID, Title: "Intro to Go", Category: "Programming", Language: "En", Status: status}
	require.NoError(a.t, a.repos.Course.Create(context.Background(), c))
	return c
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/auth/register", nil, dto.RegisterRequest{
		Role: models.RoleStudent, UserName: "msmith", Email: "MSmith@Example.com", Password: "password1",
		FirstName: "Mary", LastName: "Smith",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		Msg string `json:"msg"`
		ID  int64  `json:"id"`
	}
	decode(t, w, &reg)
	assert.NotZero(t, reg.ID)

	w = api.do(http.MethodPost, "/api/v1/auth/login", nil, dto.LoginRequest{
		Email: "msmith@example.com", Password: "password1", Role: models.RoleStudent,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token dto.TokenResponse `json:"token"`
	}
	decode(t, w, &login)
	assert.NotEmpty(t, login.Token.AccessToken)
	assert.Equal(t, "Bearer", login.Token.TokenType)

	w = api.do(http.MethodPost, "/api/v1/auth/login", nil, dto.LoginRequest{
		Email: "msmith@example.com", Password: "wrong-password", Role: models.RoleStudent,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodPost, "/api/v1/auth/register", nil, map[string]string{
		"role": "student", "userName": "x", "email": "not-an-email", "password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Code)
	assert.NotEmpty(t, resp.Fields)
}

func TestCourseCreationRequiresInstructor(t *testing.T) {
	api := newTestAPI(t)
	body := dto.CourseRequest{Title: "Intro to Go", Category: "Programming", Language: "En", Price: 10}

	w := api.do(http.MethodPost, "/api/v1/courses", nil, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(http.MethodPost, "/api/v1/courses", api.student, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPost, "/api/v1/courses", api.instructor, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Msg    string        `json:"msg"`
		ID     int64         `json:"id"`
		Course models.Course `json:"course"`
	}
	decode(t, w, &created)
	assert.Equal(t, "Course created successfully", created.Msg)
	assert.Equal(t, created.ID, created.Course.ID)
	assert.Equal(t, api.instructor.ID, created.Course.InstructorID)
	assert.Equal(t, models.CourseStatusDraft, created.Course.Status)
}

func TestCourseOwnershipOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	c := api.course(models.CourseStatusPublished)
	path := fmt.Sprintf("/api/v1/courses/%d", c.ID)
	update := dto.CourseRequest{Title: "Advanced Go", Category: "Programming", Language: "En", Price: 20}

	w := api.do(http.MethodPut, path, api.rival, update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodPut, path, api.instructor, update)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodDelete, path, api.rival, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodDelete, path, api.instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msg dto.MessageResponse
	decode(t, w, &msg)
	assert.Equal(t, "Course deleted successfully", msg.Msg)

	w = api.do(http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCourseHidesDraftsFromAnonymous(t *testing.T) {
	api := newTestAPI(t)
	draft := api.course(models.CourseStatusDraft)
	path := fmt.Sprintf("/api/v1/courses/%d", draft.ID)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path, nil, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, path, api.student, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, path, api.instructor, nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, path, api.admin, nil).Code)

	w := api.do(http.MethodGet, "/api/v1/courses", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Course
	decode(t, w, &listed)
	assert.Empty(t, listed)
}

func TestInvalidIDParameter(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(http.MethodGet, "/api/v1/courses/abc", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, "Invalid course ID", resp.Msg)
}

func TestMalformedBearerHeader(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/student/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseDetailsOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	c := api.course(models.CourseStatusPublished)
	m := &models.Module{CourseID: c.ID, Title: "Basics", Position: 1}
	require.NoError(t, api.repos.Module.Create(context.Background(), m))
	require.NoError(t, api.repos.Enrollment.Create(context.Background(), &models.Enrollment{StudentID: api.student.ID, CourseID: c.ID}))

	w := api.do(http.MethodGet, fmt.Sprintf("/api/v1/courses/%d/details", c.ID), api.student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var details models.CourseDetails
	decode(t, w, &details)
	assert.True(t, details.IsEnrolled)
	require.Len(t, details.Modules, 1)
	assert.Equal(t, "Basics", details.Modules[0].Title)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/courses/%d/details", c.ID), nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEnrollSubmitAndDuplicate(t *testing.T) {
	api := newTestAPI(t)
	c := api.course(models.CourseStatusPublished)
	m := &models.Module{CourseID: c.ID, Title: "Basics", Position: 1}
	require.NoError(t, api.repos.Module.Create(context.Background(), m))
	a := &models.Assignment{CourseID: c.ID, ModuleID: m.ID, Title: "Build a CLI", MaxScore: 100}
	require.NoError(t, api.repos.Assignment.Create(context.Background(), a))
	submit := dto.SubmitAssignmentRequest{AssignmentID: a.ID, ContentURL: "https://github.com/jdoe/cli"}

	w := api.do(http.MethodPost, "/api/v1/submissions", api.student, submit)
	assert.Equal(t, http.StatusForbidden, w.Code, "submitting requires enrollment")

	w = api.do(http.MethodPost, "/api/v1/enrollments", api.student, dto.EnrollRequest{CourseID: c.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/v1/submissions", api.student, submit)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/v1/submissions", api.student, submit)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, dto.ErrorCodeConflict, resp.Code)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/submissions/assignment/%d", a.ID), api.instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []models.Submission
	decode(t, w, &subs)
	assert.Len(t, subs, 1)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/submissions/assignment/%d", a.ID), api.rival, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChatSendAndPoll(t *testing.T) {
	api := newTestAPI(t)
	c := api.course(models.CourseStatusPublished)
	require.NoError(t, api.repos.Enrollment.Create(context.Background(), &models.Enrollment{StudentID: api.student.ID, CourseID: c.ID}))

	for _, m := range []string{"M1", "M2"} {
		w := api.do(http.MethodPost, "/api/v1/chat/send", api.student, dto.SendMessageRequest{CourseID: c.ID, Message: m})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := api.do(http.MethodPost, "/api/v1/chat/send", api.admin, dto.SendMessageRequest{CourseID: c.ID, Message: "hi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/chat/course/%d", c.ID), api.instructor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []models.ChatMessage
	decode(t, w, &msgs)
	require.Len(t, msgs, 2)
	assert.Equal(t, "M1", msgs[0].Message)
	assert.Equal(t, "M2", msgs[1].Message)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/chat/course/%d", c.ID), api.rival, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChatSubscribeAcceptsQueryToken(t *testing.T) {
	api := newTestAPI(t)
	c := api.course(models.CourseStatusPublished)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/chat/course/%d/ws?token=%s", c.ID, api.token(api.instructor)), nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSwitchingProtocols, w.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/chat/course/%d/ws?token=%s", c.ID, api.token(api.student)), nil)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/chat/course/%d?token=%s", c.ID, api.token(api.instructor)), nil)
	w = httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "polling requires the Authorization header")
}

func TestStudentRoutesRequireStudentRole(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/v1/student/me", api.instructor, nil).Code)

	w := api.do(http.MethodGet, "/api/v1/student/me", api.student, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/api/v1/nowhere", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
