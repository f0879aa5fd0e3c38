package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

// PrincipalRepository reads and registers students, instructors and admins.
// Each role has its own table; the table is selected by a switch on the role
// tag, never from caller-supplied text.
type PrincipalRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPrincipalRepository creates a new PrincipalRepository
func NewPrincipalRepository(db *pgxpool.Pool) *PrincipalRepository {
	return &PrincipalRepository{db: db, sb: statementBuilder()}
}

func principalTable(role models.Role) (string, error) {
	switch role {
	case models.RoleStudent:
		return "students", nil
	case models.RoleInstructor:
		return "instructors", nil
	case models.RoleAdmin:
		return "admins", nil
	}
	return "", apperrors.ErrInvalidRole
}

// Lookup resolves a (role, id) pair to its principal
func (r *PrincipalRepository) Lookup(ctx context.Context, role models.Role, id int64) (models.Principal, error) {
	var (
		p   models.Principal
		err error
	)
	switch role {
	case models.RoleStudent:
		var s *models.Student
		s, err = r.GetStudentByID(ctx, id)
		p = s
	case models.RoleInstructor:
		var i *models.Instructor
		i, err = r.GetInstructorByID(ctx, id)
		p = i
	case models.RoleAdmin:
		var a *models.Admin
		a, err = r.GetAdminByID(ctx, id)
		p = a
	default:
		return nil, apperrors.ErrInvalidRole
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetStudentByID retrieves a student profile
func (r *PrincipalRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select("id", "user_name", "email", "phone_no", "first_name", "last_name", "created_at").
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.UserName, &s.Email, &s.PhoneNo, &s.FirstName, &s.LastName, &s.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &s, nil
}

// GetInstructorByID retrieves an instructor profile
func (r *PrincipalRepository) GetInstructorByID(ctx context.Context, id int64) (*models.Instructor, error) {
	sql, args, err := r.sb.Select("id", "user_name", "email", "full_name", "created_at").
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get instructor query: %w", err)
	}

	var i models.Instructor
	err = r.db.QueryRow(ctx, sql, args...).Scan(&i.ID, &i.UserName, &i.Email, &i.FullName, &i.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return &i, nil
}

// GetAdminByID retrieves an admin profile
func (r *PrincipalRepository) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	sql, args, err := r.sb.Select("id", "user_name", "email", "created_at").
		From("admins").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin query: %w", err)
	}

	var a models.Admin
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.UserName, &a.Email, &a.CreatedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error retrieving admin: %w", err)
	}
	return &a, nil
}

// GetCredentialsByEmail returns the stored hash for a login attempt in the given role
func (r *PrincipalRepository) GetCredentialsByEmail(ctx context.Context, role models.Role, email string) (*models.Credentials, error) {
	table, err := principalTable(role)
	if err != nil {
		return nil, err
	}

	sql, args, err := r.sb.Select("id", "email", "password_hash").
		From(table).
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build credentials query: %w", err)
	}

	creds := models.Credentials{Role: role}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&creds.ID, &creds.Email, &creds.PasswordHash); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("error retrieving credentials: %w", err)
	}
	return &creds, nil
}

// CreateStudent registers a student
func (r *PrincipalRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("user_name", "email", "password_hash", "phone_no", "first_name", "last_name").
		Values(student.UserName, student.Email, student.PasswordHash, student.PhoneNo, student.FirstName, student.LastName).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintStudentEmail) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// CreateInstructor registers an instructor
func (r *PrincipalRepository) CreateInstructor(ctx context.Context, instructor *models.Instructor) error {
	sql, args, err := r.sb.Insert("instructors").
		Columns("user_name", "email", "password_hash", "full_name").
		Values(instructor.UserName, instructor.Email, instructor.PasswordHash, instructor.FullName).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create instructor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&instructor.ID, &instructor.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintInstructorEmail) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}
	return nil
}

// CreateAdmin registers an administrator
func (r *PrincipalRepository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	sql, args, err := r.sb.Insert("admins").
		Columns("user_name", "email", "password_hash").
		Values(admin.UserName, admin.Email, admin.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create admin query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintAdminEmail) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating admin: %w", err)
	}
	return nil
}
