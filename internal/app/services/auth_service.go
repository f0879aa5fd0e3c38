package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/auth"
)

// AuthService handles registration, login and bearer token resolution
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (models.Principal, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Authenticate(ctx context.Context, token string) (models.Principal, error)
}

type authServiceImpl struct {
	principalRepo repositories.IPrincipalRepository
	jwtService    *auth.JWTService
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	principalRepo repositories.IPrincipalRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		principalRepo: principalRepo,
		jwtService:    jwtService,
		logger:        logger,
	}
}

var errBadLogin = apperrors.NewUnauthenticatedError("Invalid email or password", apperrors.ErrInvalidCredentials)

// Register creates a student or instructor account. Admins are seeded, never registered.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (models.Principal, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := required("userName", req.UserName, "email", email, "password", req.Password); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters long")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	switch req.Role {
	case models.RoleStudent:
		if err := required("firstName", req.FirstName, "lastName", req.LastName); err != nil {
			return nil, err
		}
		student := &models.Student{
			UserName:     strings.TrimSpace(req.UserName),
			Email:        email,
			PasswordHash: hash,
			PhoneNo:      req.PhoneNo,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
		}
		if err := s.principalRepo.CreateStudent(ctx, student); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("studentID", student.ID).Msg("Student registered")
		return student, nil

	case models.RoleInstructor:
		if err := required("fullName", req.FullName); err != nil {
			return nil, err
		}
		instructor := &models.Instructor{
			UserName:     strings.TrimSpace(req.UserName),
			Email:        email,
			PasswordHash: hash,
			FullName:     strings.TrimSpace(req.FullName),
		}
		if err := s.principalRepo.CreateInstructor(ctx, instructor); err != nil {
			return nil, err
		}
		s.logger.Info().Int64("instructorID", instructor.ID).Msg("Instructor registered")
		return instructor, nil
	}

	return nil, apperrors.NewValidationError("role must be student or instructor")
}

// Login checks the password against the role's table and issues a token.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if !req.Role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	creds, err := s.principalRepo.GetCredentialsByEmail(ctx, req.Role, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, errBadLogin
		}
		return nil, err
	}
	if !auth.CheckPassword(creds.PasswordHash, req.Password) {
		s.logger.Warn().Str("role", string(req.Role)).Int64("principalID", creds.ID).Msg("Failed login attempt")
		return nil, errBadLogin
	}

	principal, err := s.principalRepo.Lookup(ctx, creds.Role, creds.ID)
	if err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateToken(principal)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("role", string(creds.Role)).Int64("principalID", creds.ID).Msg("Login successful")
	return &dto.AuthResponse{
		Msg: "Login successful",
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: principal,
	}, nil
}

// Authenticate resolves a bearer token to its principal. Every failure,
// including a principal deleted after the token was issued, is Unauthenticated.
func (s *authServiceImpl) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			return nil, apperrors.NewUnauthenticatedError("Token has expired", apperrors.ErrTokenExpired)
		case errors.Is(err, auth.ErrUnknownRole):
			return nil, apperrors.NewUnauthenticatedError("Unknown role", err)
		}
		return nil, apperrors.NewUnauthenticatedError("Invalid token", apperrors.ErrTokenInvalid)
	}

	principal, err := s.principalRepo.Lookup(ctx, claims.Role, claims.PrincipalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) || errors.Is(err, apperrors.ErrValidationFailed) {
			return nil, apperrors.NewUnauthenticatedError("User not found", err)
		}
		return nil, err
	}
	return principal, nil
}
