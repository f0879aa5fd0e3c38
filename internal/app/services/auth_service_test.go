package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/auth"
)

func newAuthService(f *fixture) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "coursehub.test",
	})
	return NewAuthService(f.repos.Principal, jwtService, zerolog.Nop())
}

func TestRegisterAndLoginStudent(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	p, err := svc.Register(ctx, &dto.RegisterRequest{
		Role:      models.RoleStudent,
		UserName:  "newbie",
		Email:     "Newbie@Example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "Bie",
	})
	require.NoError(t, err)
	student, ok := models.IsStudent(p)
	require.True(t, ok)
	assert.Equal(t, "newbie@example.com", student.Email)
	assert.NotEqual(t, "password123", student.PasswordHash)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "newbie@example.com", Password: "password123", Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, 3600, resp.Token.ExpiresIn)

	resolved, err := svc.Authenticate(ctx, resp.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, resolved.Role())
	assert.Equal(t, student.ID, resolved.PrincipalID())
}

func TestRegisterInstructorRequiresFullName(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Role:     models.RoleInstructor,
		UserName: "prof",
		Email:    "prof@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterRejectsAdminAndDuplicates(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Role: models.RoleAdmin, UserName: "root", Email: "root@example.com", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Role:      models.RoleStudent,
		UserName:  "copy",
		Email:     f.student.Email,
		Password:  "password123",
		FirstName: "Copy",
		LastName:  "Cat",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestLoginFailuresAreUnauthenticated(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Role: models.RoleInstructor, UserName: "prof", Email: "prof@example.com", Password: "password123", FullName: "Prof"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "prof@example.com", Password: "wrong-password", Role: models.RoleInstructor})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	// Right email in the wrong role table
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "prof@example.com", Password: "password123", Role: models.RoleStudent})
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	msg, ok := apperrors.UserMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid email or password", msg)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour, TokenIssuer: "coursehub.test"})
	token, _, err := other.GenerateToken(f.student)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthenticateUnknownPrincipal(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)

	signer := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "coursehub.test"})
	token, _, err := signer.GenerateToken(&models.Student{ID: 999})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
