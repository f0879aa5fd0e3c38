package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/coursehub/internal/app/controllers"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/middleware"
)

// Controllers groups the HTTP handlers mounted under /api/v1
type Controllers struct {
	Auth       *controllers.AuthController
	Course     *controllers.CourseController
	Module     *controllers.ModuleController
	Lesson     *controllers.LessonController
	Quiz       *controllers.QuizController
	Assignment *controllers.AssignmentController
	Submission *controllers.SubmissionController
	Review     *controllers.ReviewController
	Chat       *controllers.ChatController
	Enrollment *controllers.EnrollmentController
	Instructor *controllers.InstructorController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	student := authMiddleware.Authorize(models.RoleStudent)
	instructor := authMiddleware.Authorize(models.RoleInstructor)

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
	}

	v1.GET("/courses", c.Course.ListPublished)
	v1.GET("/courses/:course_id", authMiddleware.OptionalAuthenticate(), c.Course.Get)
	v1.GET("/reviews/course/:course_id", c.Review.ListByCourse)

	// Browsers cannot set headers on a websocket upgrade
	v1.GET("/chat/course/:course_id/ws", authMiddleware.AuthenticateUpgrade(), c.Chat.Subscribe)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.Authenticate())

	courses := authenticated.Group("/courses")
	{
		courses.GET("/:course_id/details", c.Course.GetDetails)
		courses.POST("", instructor, c.Course.Create)
		courses.PUT("/:course_id", instructor, c.Course.Update)
		courses.DELETE("/:course_id", instructor, c.Course.Delete)
	}

	modules := authenticated.Group("/modules")
	{
		modules.GET("/course/:course_id", c.Module.ListByCourse)
		modules.GET("/:module_id", c.Module.Get)
		modules.POST("", instructor, c.Module.Create)
		modules.PUT("/:module_id", instructor, c.Module.Update)
		modules.DELETE("/:module_id", instructor, c.Module.Delete)
	}

	lessons := authenticated.Group("/lessons")
	{
		lessons.GET("/module/:module_id", c.Lesson.ListByModule)
		lessons.GET("/:lesson_id", c.Lesson.Get)
		lessons.POST("", instructor, c.Lesson.Create)
		lessons.PUT("/:lesson_id", instructor, c.Lesson.Update)
	}

	quiz := authenticated.Group("/quiz")
	{
		quiz.GET("/module/:module_id", c.Quiz.ListByModule)
		quiz.GET("/attempts/:quiz_id", instructor, c.Quiz.ListAttempts)
		quiz.GET("/:quiz_id", c.Quiz.Get)
		quiz.POST("", instructor, c.Quiz.Create)
		quiz.POST("/submit", student, c.Quiz.Submit)
		quiz.PUT("/:quiz_id", instructor, c.Quiz.Update)
	}

	assignments := authenticated.Group("/assignments")
	{
		assignments.GET("/module/:module_id", c.Assignment.ListByModule)
		assignments.GET("/course/:course_id", c.Assignment.ListByCourse)
		assignments.GET("/:assignment_id", c.Assignment.Get)
		assignments.POST("", instructor, c.Assignment.Create)
		assignments.PUT("/:assignment_id", instructor, c.Assignment.Update)
		assignments.DELETE("/:assignment_id", instructor, c.Assignment.Delete)
	}

	submissions := authenticated.Group("/submissions")
	{
		submissions.POST("", student, c.Submission.Submit)
		submissions.GET("/assignment/:assignment_id", instructor, c.Submission.ListByAssignment)
		submissions.GET("/assignment/:assignment_id/student/:student_id", c.Submission.GetForStudent)
		submissions.GET("/student/:student_id", c.Submission.ListByStudent)
	}

	authenticated.POST("/reviews", student, c.Review.Create)

	chat := authenticated.Group("/chat")
	{
		chat.POST("/send", authMiddleware.Authorize(models.RoleStudent, models.RoleInstructor), c.Chat.Send)
		chat.GET("/course/:course_id", c.Chat.ListByCourse)
	}

	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.POST("", student, c.Enrollment.Enroll)
		enrollments.GET("/:student_id", c.Enrollment.ListCourses)
	}

	instructorRoutes := authenticated.Group("/instructor")
	{
		instructorRoutes.GET("/courses", instructor, c.Instructor.OwnCourses)
		instructorRoutes.GET("/:instructor_id/courses", c.Instructor.Stats)
	}

	studentRoutes := authenticated.Group("/student", student)
	{
		studentRoutes.GET("/me", c.Enrollment.Me)
		studentRoutes.GET("/progress", c.Enrollment.Progress)
	}
}
