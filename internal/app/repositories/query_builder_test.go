package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
)

func TestListPublishedFiltersOnStatus(t *testing.T) {
	sql, args, err := NewCourseRepository(nil).listPublishedQuery().ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM courses WHERE status = $1")
	assert.Contains(t, sql, "ORDER BY created_at DESC, id DESC")
	assert.Equal(t, []interface{}{models.CourseStatusPublished}, args)
}

func TestModulesOrderedByPositionThenID(t *testing.T) {
	sql, args, err := NewModuleRepository(nil).listByCourseQuery(9).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, course_id, title, description, position, created_at FROM modules WHERE course_id = $1 ORDER BY position ASC, id ASC",
		sql)
	assert.Equal(t, []interface{}{int64(9)}, args)
}

func TestChatOrderedByCreationTime(t *testing.T) {
	sql, _, err := NewChatRepository(nil).listByCourseQuery(3).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY created_at ASC, id ASC")
}

func TestReviewsNewestFirst(t *testing.T) {
	sql, _, err := NewReviewRepository(nil).listByCourseQuery(3).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY created_at DESC, id DESC")
}

func TestInstructorStatsUsesCorrelatedCounts(t *testing.T) {
	sql, args, err := NewCourseRepository(nil).instructorStatsQuery(4).ToSql()
	require.NoError(t, err)

	for _, alias := range []string{"enrolled_students", "total_assignments", "total_quizzes", "total_submissions"} {
		assert.Contains(t, sql, "AS "+alias)
	}
	assert.Contains(t, sql, "WHERE c.instructor_id = $1")
	assert.Equal(t, []interface{}{int64(4)}, args)
}

func TestAttemptsJoinStudentNames(t *testing.T) {
	sql, _, err := NewQuizRepository(nil).listAttemptsQuery(2).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "JOIN students s ON s.id = qa.student_id")
	assert.Contains(t, sql, "s.first_name, s.last_name")
}

func TestProgressScopedToStudent(t *testing.T) {
	sql, args, err := NewEnrollmentRepository(nil).progressQuery(11).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE e.student_id = $1")
	assert.Contains(t, sql, "COUNT(DISTINCT qa.quiz_id)")
	assert.Equal(t, []interface{}{int64(11)}, args)
}

func TestCourseCascadeDeletesLeavesFirst(t *testing.T) {
	steps := courseCascade(statementBuilder(), 5)

	var tables []string
	for _, step := range steps {
		sql, args, err := step.ToSql()
		require.NoError(t, err)
		assert.Equal(t, []interface{}{int64(5)}, args, sql)
		tables = append(tables, tableOf(sql))
	}

	assert.Equal(t, []string{
		"chat_messages", "reviews", "enrollments", "submissions", "assignments",
		"quiz_attempts", "quizzes", "lessons", "modules", "courses",
	}, tables)
}

func TestModuleAndAssignmentCascadeEndWithRoot(t *testing.T) {
	moduleSteps := moduleCascade(statementBuilder(), 1)
	sql, _, err := moduleSteps[len(moduleSteps)-1].ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM modules WHERE id = $1", sql)

	assignmentSteps := assignmentCascade(statementBuilder(), 1)
	require.Len(t, assignmentSteps, 2)
	sql, _, err = assignmentSteps[0].ToSql()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM submissions WHERE assignment_id = $1", sql)
}

func TestPrincipalTableDispatch(t *testing.T) {
	table, err := principalTable(models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, "instructors", table)

	_, err = principalTable(models.Role("students; DROP TABLE courses"))
	assert.Error(t, err)
}

// tableOf extracts the table from "DELETE FROM <table> WHERE ..."
func tableOf(sql string) string {
	const prefix = "DELETE FROM "
	rest := sql[len(prefix):]
	for i, r := range rest {
		if r == ' ' {
			return rest[:i]
		}
	}
	return rest
}
