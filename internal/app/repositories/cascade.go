package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/db"
)

// Foreign keys carry no ON DELETE CASCADE, so removing an aggregate root
// deletes its dependents explicitly, leaves first, inside one transaction.

func courseCascade(sb squirrel.StatementBuilderType, courseID int64) []squirrel.DeleteBuilder {
	return []squirrel.DeleteBuilder{
		sb.Delete("chat_messages").Where(squirrel.Eq{"course_id": courseID}),
		sb.Delete("reviews").Where(squirrel.Eq{"course_id": courseID}),
		sb.Delete("enrollments").Where(squirrel.Eq{"course_id": courseID}),
		sb.Delete("submissions").Where("assignment_id IN (SELECT id FROM assignments WHERE course_id = ?)", courseID),
		sb.Delete("assignments").Where(squirrel.Eq{"course_id": courseID}),
		sb.Delete("quiz_attempts").Where("quiz_id IN (SELECT q.id FROM quizzes q JOIN modules m ON m.id = q.module_id WHERE m.course_id = ?)", courseID),
		sb.Delete("quizzes").Where("module_id IN (SELECT id FROM modules WHERE course_id = ?)", courseID),
		sb.Delete("lessons").Where("module_id IN (SELECT id FROM modules WHERE course_id = ?)", courseID),
		sb.Delete("modules").Where(squirrel.Eq{"course_id": courseID}),
		sb.Delete("courses").Where(squirrel.Eq{"id": courseID}),
	}
}

func moduleCascade(sb squirrel.StatementBuilderType, moduleID int64) []squirrel.DeleteBuilder {
	return []squirrel.DeleteBuilder{
		sb.Delete("submissions").Where("assignment_id IN (SELECT id FROM assignments WHERE module_id = ?)", moduleID),
		sb.Delete("assignments").Where(squirrel.Eq{"module_id": moduleID}),
		sb.Delete("quiz_attempts").Where("quiz_id IN (SELECT id FROM quizzes WHERE module_id = ?)", moduleID),
		sb.Delete("quizzes").Where(squirrel.Eq{"module_id": moduleID}),
		sb.Delete("lessons").Where(squirrel.Eq{"module_id": moduleID}),
		sb.Delete("modules").Where(squirrel.Eq{"id": moduleID}),
	}
}

func assignmentCascade(sb squirrel.StatementBuilderType, assignmentID int64) []squirrel.DeleteBuilder {
	return []squirrel.DeleteBuilder{
		sb.Delete("submissions").Where(squirrel.Eq{"assignment_id": assignmentID}),
		sb.Delete("assignments").Where(squirrel.Eq{"id": assignmentID}),
	}
}

// runCascade executes the steps in one transaction and returns the rows
// removed by the last one, the aggregate root itself.
func runCascade(ctx context.Context, pool *pgxpool.Pool, steps []squirrel.DeleteBuilder) (int64, error) {
	var rootRows int64
	err := db.WithTransaction(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		rootRows, err = execCascade(ctx, tx, steps)
		return err
	})
	return rootRows, err
}

// execCascade stops at the first failing step.
func execCascade(ctx context.Context, q db.DBTX, steps []squirrel.DeleteBuilder) (int64, error) {
	var rootRows int64
	for i, step := range steps {
		sql, args, err := step.ToSql()
		if err != nil {
			return 0, fmt.Errorf("failed to build cascade delete query: %w", err)
		}
		tag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			return 0, fmt.Errorf("cascade delete step %d: %w", i, err)
		}
		rootRows = tag.RowsAffected()
	}
	return rootRows, nil
}
