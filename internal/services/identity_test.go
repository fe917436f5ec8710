package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/jobboard-dev/jobboard/internal/access"
	"github.com/jobboard-dev/jobboard/internal/apperrors"
	"github.com/jobboard-dev/jobboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNormalizesAndIssuesToken(t *testing.T) {
	f := newFixture(t, "", "")
	ctx := context.Background()

	session, err := f.identity.Register(ctx, RegisterInput{
		Name:     "  Acme HR ",
		Email:    " HR@Acme.TEST ",
		Password: "secret123",
		Role:     "Employer",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme HR", session.User.Name)
	assert.Equal(t, "hr@acme.test", session.User.Email)
	assert.Equal(t, models.RoleEmployer, session.User.Role)
	assert.NotEqual(t, "secret123", session.User.PasswordHash)
	assert.NotEmpty(t, session.Token)

	user, err := f.identity.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, user.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t, "", "")
	f.register(t, "jane", models.RoleSeeker)

	_, err := f.identity.Register(context.Background(), RegisterInput{
		Name: "Jane Again", Email: "JANE@example.test", Password: "secret123", Role: "seeker",
	})

	appErr := assertAppError(t, err, apperrors.CodeConflict, http.StatusBadRequest)
	assert.Equal(t, "User already exists", appErr.Message)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, "", "")

	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"short password", RegisterInput{Name: "a", Email: "a@example.test", Password: "123", Role: "seeker"}, "password"},
		{"bad email", RegisterInput{Name: "a", Email: "nope", Password: "secret123", Role: "seeker"}, "email"},
		{"unknown role", RegisterInput{Name: "a", Email: "a@example.test", Password: "secret123", Role: "admin"}, "role"},
		{"missing name", RegisterInput{Email: "a@example.test", Password: "secret123", Role: "seeker"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.identity.Register(context.Background(), tt.in)
			appErr := assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t, "", "")
	f.register(t, "jane", models.RoleSeeker)
	ctx := context.Background()

	session, err := f.identity.Login(ctx, LoginInput{Email: "Jane@Example.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.test", session.User.Email)

	_, err = f.identity.Login(ctx, LoginInput{Email: "jane@example.test", Password: "wrong-password"})
	appErr := assertAppError(t, err, apperrors.CodeUnauthorized, http.StatusUnauthorized)
	assert.Equal(t, "Invalid email or password", appErr.Message)

	_, err = f.identity.Login(ctx, LoginInput{Email: "nobody@example.test", Password: "secret123"})
	assertAppError(t, err, apperrors.CodeUnauthorized, http.StatusUnauthorized)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newFixture(t, "", "")
	ctx := context.Background()

	_, err := f.identity.Authenticate(ctx, "not-a-token")
	assertAppError(t, err, apperrors.CodeUnauthorized, http.StatusUnauthorized)

	token, err := f.identity.tokens.Generate("ghost", models.RoleSeeker)
	require.NoError(t, err)

	_, err = f.identity.Authenticate(ctx, token)
	assertAppError(t, err, apperrors.CodeUnauthorized, http.StatusUnauthorized)

	seeker := f.register(t, "jane", models.RoleSeeker)
	forged, err := f.identity.tokens.Generate(seeker.ID, models.RoleEmployer)
	require.NoError(t, err)

	_, err = f.identity.Authenticate(ctx, forged)
	assertAppError(t, err, apperrors.CodeUnauthorized, http.StatusUnauthorized)
}

func TestUpdateProfileIsPartial(t *testing.T) {
	f := newFixture(t, "", "")
	employer := f.register(t, "acme", models.RoleEmployer)
	ctx := context.Background()

	company := "Acme Corp"
	skills := []string{"hiring", "go"}
	session, err := f.identity.UpdateProfile(ctx, employer, ProfileInput{Company: &company, Skills: &skills})
	require.NoError(t, err)

	assert.Equal(t, "acme", session.User.Name)
	assert.Equal(t, "Acme Corp", session.User.Company)
	assert.Equal(t, []string{"hiring", "go"}, []string(session.User.Skills))
	assert.NotEmpty(t, session.Token)

	profile, err := f.identity.GetProfile(ctx, employer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", profile.Company)
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	f := newFixture(t, "", "")
	jane := f.register(t, "jane", models.RoleSeeker)
	ctx := context.Background()

	blank := "   "
	_, err := f.identity.UpdateProfile(ctx, jane, ProfileInput{Name: &blank})
	appErr := assertAppError(t, err, apperrors.CodeValidation, http.StatusBadRequest)
	assert.Equal(t, "name", appErr.Field)

	padded := "  Jane Doe  "
	session, err := f.identity.UpdateProfile(ctx, jane, ProfileInput{Name: &padded})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", session.User.Name)

	profile, err := f.identity.GetProfile(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestUpdateProfilePasswordAndEmail(t *testing.T) {
	f := newFixture(t, "", "")
	jane := f.register(t, "jane", models.RoleSeeker)
	f.register(t, "john", models.RoleSeeker)
	ctx := context.Background()

	taken := "john@example.test"
	_, err := f.identity.UpdateProfile(ctx, jane, ProfileInput{Email: &taken})
	assertAppError(t, err, apperrors.CodeConflict, http.StatusBadRequest)

	password := "new-secret"
	email := "Jane.Doe@example.test"
	_, err = f.identity.UpdateProfile(ctx, jane, ProfileInput{Password: &password, Email: &email})
	require.NoError(t, err)

	_, err = f.identity.Login(ctx, LoginInput{Email: "jane.doe@example.test", Password: "new-secret"})
	assert.NoError(t, err)
}

func TestGetProfileNotFound(t *testing.T) {
	f := newFixture(t, "", "")

	_, err := f.identity.GetProfile(context.Background(), "missing")
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)

	_, err = f.identity.UpdateProfile(context.Background(), access.Identity{ID: "missing", Role: models.RoleSeeker}, ProfileInput{})
	assertAppError(t, err, apperrors.CodeNotFound, http.StatusNotFound)
}
