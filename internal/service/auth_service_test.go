package service

import (
	"context"
	"testing"

	"casebook/internal/infrastructure/cache"
	"casebook/internal/model"
	"casebook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoginFlow(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, cache.NewMemorySessionStore(), zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, "bob", "correct horse", model.UserRoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, []byte("correct horse"), created.PasswordHash)

	_, _, err = svc.Login(ctx, &LoginRequest{Username: "bob", Password: "wrong password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sessionID, user, err := svc.Login(ctx, &LoginRequest{Username: " bob ", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.True(t, user.IsAdmin())

	got, err := svc.Authenticate(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, svc.Logout(ctx, sessionID))
	_, err = svc.Authenticate(ctx, sessionID)
	assert.ErrorIs(t, err, cache.ErrSessionNotFound)
	_, err = svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, cache.ErrSessionNotFound)
}

func TestCreateUserValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAuthService(db, cache.NewMemorySessionStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "carol", "short", model.UserRoleUser)
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = svc.CreateUser(ctx, "  ", "long enough", model.UserRoleUser)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.CreateUser(ctx, "carol", "long enough", model.UserRoleUser)
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, "carol", "long enough", model.UserRoleUser)
	assert.Error(t, err)
}
