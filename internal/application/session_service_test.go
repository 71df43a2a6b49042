package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

func newSessionService(t *testing.T) (*SessionService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewSessionService(rdb, jwt, helpers.NewNopLogger()), mr
}

func adminAccount() *entity.Account {
	a := entity.NewAccount("admin@todo.list")
	a.ID = "3f0c4f5e-6b61-4d59-9a5e-3c1b0b7d2c11"
	a.Roles = []string{entity.RoleAdmin}
	return a
}

func TestSession_OpenResolveClose(t *testing.T) {
	s, mr := newSessionService(t)
	ctx := context.Background()

	token, exp, err := s.Open(ctx, adminAccount())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
	assert.True(t, mr.Exists("account:session:3f0c4f5e-6b61-4d59-9a5e-3c1b0b7d2c11"))

	p, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "admin@todo.list", p.Email)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleUser}, p.Roles)
	assert.True(t, p.HasRole(entity.RoleAdmin))

	require.NoError(t, s.Close(ctx, p))
	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSession_NewLoginReplacesPrevious(t *testing.T) {
	s, _ := newSessionService(t)
	ctx := context.Background()

	first, _, err := s.Open(ctx, adminAccount())
	require.NoError(t, err)
	second, _, err := s.Open(ctx, adminAccount())
	require.NoError(t, err)

	_, err = s.Resolve(ctx, first)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = s.Resolve(ctx, second)
	assert.NoError(t, err)
}

func TestSession_ResolveRejectsGarbage(t *testing.T) {
	s, _ := newSessionService(t)

	for _, token := range []string{"", "not-a-jwt"} {
		_, err := s.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	}

	other := helpers.NewJWTManager("other-secret", time.Hour)
	forged, _, err := other.GenerateSessionToken("3f0c4f5e-6b61-4d59-9a5e-3c1b0b7d2c11", "sid")
	require.NoError(t, err)
	_, err = s.Resolve(context.Background(), forged)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSession_ExpiresWithTTL(t *testing.T) {
	s, mr := newSessionService(t)
	ctx := context.Background()

	token, _, err := s.Open(ctx, adminAccount())
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPrincipal_HasRoleNil(t *testing.T) {
	var p *Principal
	assert.False(t, p.HasRole(entity.RoleUser))
}
