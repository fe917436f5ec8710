package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/auth"
	"github.com/jobboard-dev/jobboard/internal/logger"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/jobboard-dev/jobboard/internal/repositories"
	"github.com/jobboard-dev/jobboard/internal/validator"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,role"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is a partial update; nil fields keep their current value.
type ProfileInput struct {
	Name             *string   `json:"name" validate:"omitnil,min=1,max=100"`
	Email            *string   `json:"email" validate:"omitnil,email"`
	Password         *string   `json:"password" validate:"omitnil,min=6"`
	Skills           *[]string `json:"skills"`
	Experience       *string   `json:"experience"`
	Education        *string   `json:"education"`
	Resume           *string   `json:"resume"`
	Company          *string   `json:"company"`
	About            *string   `json:"about"`
	ProfessionalRole *string   `json:"professionalRole"`
}

// Session is an identity together with a freshly issued bearer token.
type Session struct {
	User  *models.User
	Token string
}

type IdentityService struct {
	users    repositories.UserRepository
	tokens   *auth.TokenManager
	validate *validator.Validator
}

func NewIdentityService(users repositories.UserRepository, tokens *auth.TokenManager, validate *validator.Validator) *IdentityService {
	return &IdentityService{users: users, tokens: tokens, validate: validate}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.Conflict("User already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, unexpected("checking existing user", err)
	}

	passwordHash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, unexpected("hashing password", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Role:         models.Role(in.Role),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, unexpected("creating user", err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID, "role", user.Role)

	return s.session(user)
}

func (s *IdentityService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)

	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, unexpected("fetching user", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		logger.CtxWarn(ctx, "failed login", "user_id", user.ID)
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	return s.session(user)
}

// Authenticate verifies a bearer token and loads its identity. The token's role must still
// match the stored one.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthorized("User not found")
		}
		return nil, unexpected("loading token user", err)
	}

	if claims.Role != "" && claims.Role != user.Role {
		return nil, apperrors.Unauthorized("Invalid or expired token")
	}

	return user, nil
}

func (s *IdentityService) GetProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, unexpected("fetching user", err)
	}

	return user, nil
}

// UpdateProfile only ever touches the requester's own record.
func (s *IdentityService) UpdateProfile(ctx context.Context, requester access.Identity, in ProfileInput) (*Session, error) {
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		in.Name = &name
	}

	if err := s.validate.Validate(in); err != nil {
		return nil, invalid(err)
	}

	user, err := s.GetProfile(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *in.Email); err == nil {
			return nil, apperrors.Conflict("Email already in use")
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, unexpected("checking existing email", err)
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		passwordHash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, unexpected("hashing password", err)
		}
		user.PasswordHash = passwordHash
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Skills != nil {
		user.Skills = *in.Skills
	}
	assign(&user.Experience, in.Experience)
	assign(&user.Education, in.Education)
	assign(&user.Resume, in.Resume)
	assign(&user.Company, in.Company)
	assign(&user.About, in.About)
	assign(&user.ProfessionalRole, in.ProfessionalRole)

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already in use")
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, unexpected("updating user", err)
	}

	logger.CtxInfo(ctx, "profile updated", "user_id", user.ID)

	return s.session(user)
}

func (s *IdentityService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, unexpected("generating token", err)
	}
	return &Session{User: user, Token: token}, nil
}

func assign(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
