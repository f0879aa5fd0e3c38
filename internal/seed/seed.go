package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/coursehub/internal/app/models"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/auth"
)

// AdminConfig describes the default administrator account
type AdminConfig struct {
	UserName string
	Email    string
	Password string
}

// CreateDefaultAdmin creates the default administrator unless an admin with
// the same email already exists. Admins cannot register through the API.
func CreateDefaultAdmin(ctx context.Context, principalRepo appRepos.IPrincipalRepository, cfg AdminConfig, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))

	_, err := principalRepo.GetCredentialsByEmail(ctx, appModels.RoleAdmin, email)
	if err == nil {
		lgr.Info().Str("email", email).Msg("Admin user already exists, skipping creation")
		return nil
	}
	if !errors.Is(err, apperrors.ErrPrincipalNotFound) {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}

	hash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &appModels.Admin{
		UserName:     cfg.UserName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := principalRepo.CreateAdmin(ctx, admin); err != nil {
		// Another instance may have seeded concurrently
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Str("email", email).Msg("Default admin user created successfully")
	return nil
}
