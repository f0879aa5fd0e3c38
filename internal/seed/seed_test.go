package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories/repotest"
	"github.com/yigit/coursehub/internal/pkg/auth"
)

func TestCreateDefaultAdminIsIdempotent(t *testing.T) {
	repo := repotest.NewStore().Repos().Principal
	ctx := context.Background()
	cfg := AdminConfig{UserName: "admin", Email: " Admin@CourseHub.local ", Password: "change-me-please"}

	require.NoError(t, CreateDefaultAdmin(ctx, repo, cfg, zerolog.Nop()))
	require.NoError(t, CreateDefaultAdmin(ctx, repo, cfg, zerolog.Nop()))

	creds, err := repo.GetCredentialsByEmail(ctx, models.RoleAdmin, "admin@coursehub.local")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, creds.Role)
	assert.True(t, auth.CheckPassword(creds.PasswordHash, "change-me-please"))

	admin, err := repo.GetAdminByID(ctx, creds.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.UserName)

	_, err = repo.GetAdminByID(ctx, creds.ID+1)
	assert.Error(t, err, "only one admin is created")
}
