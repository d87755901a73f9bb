package services

import (
	"context"
	"testing"

	"assochub/internal/config"
	"assochub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeRefreshTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	return NewAuthService(users, tokens, testAuthConfig()), users, tokens
}

func registerInput(username string) *RegisterInput {
	return &RegisterInput{
		Username: username,
		Email:    username + "@assochub.local",
		Password: "passw0rd123",
		FullName: "Test User",
	}
}

func TestAuthServiceRegister(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, domain.RoleStaff, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.Empty(t, resp.User.Password)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Len(t, tokens.tokens, 1)
}

func TestAuthServiceRegisterAdminRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	in := registerInput("boss")
	in.Role = "ADMIN"
	resp, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
}

func TestAuthServiceRegisterUnknownRoleFallsBackToStaff(t *testing.T) {
	svc, _, _ := newAuthFixture()

	in := registerInput("weird")
	in.Role = "SUPERUSER"
	resp, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStaff, resp.User.Role)
}

func TestAuthServiceRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	in := registerInput("alice")
	in.Password = "short1"
	_, err := svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrWeakPassword)

	// Long enough but no digit
	in.Password = "onlyletters"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("alice"))
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Same email under a different username
	in := registerInput("alice2")
	in.Email = "alice@assochub.local"
	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginInput{Username: "alice", Password: "passw0rd123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.Password)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthServiceLoginFailures(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Username: "alice", Password: "wrongpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "passw0rd123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, err := users.GetByID(ctx, reg.User.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, users.Update(ctx, stored))

	_, err = svc.Login(ctx, &LoginInput{Username: "alice", Password: "passw0rd123"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestAuthServiceRefreshRotation(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, reg.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation and cannot be replayed
	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// The rotated token still works
	_, err = svc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)

	assert.Len(t, tokens.tokens, 3)
}

func TestAuthServiceRefreshGarbageToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, reg.RefreshToken))

	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	// Logging out an unknown token is a no-op
	assert.NoError(t, svc.Logout(ctx, "never-issued"))
}

func TestAuthServiceLogoutAll(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)
	login, err := svc.Login(ctx, &LoginInput{Username: "alice", Password: "passw0rd123"})
	require.NoError(t, err)

	require.NoError(t, svc.LogoutAll(ctx, reg.User.ID))

	_, err = svc.RefreshToken(ctx, reg.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthServiceGetUserByID(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)

	user, err := svc.GetUserByID(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Password)

	_, err = svc.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
