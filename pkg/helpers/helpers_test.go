package helpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("$1234Abcd", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "$1234Abcd", hash)

	assert.True(t, CompareHashAndPassword(hash, "$1234Abcd"))
	assert.False(t, CompareHashAndPassword(hash, "password_error"))
	assert.False(t, CompareHashAndPassword(hash, ""))
	assert.False(t, CompareHashAndPassword("not-a-hash", "$1234Abcd"))
}

func TestNewActivationToken(t *testing.T) {
	a := NewActivationToken()
	b := NewActivationToken()

	assert.NotEqual(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestJWTManager_SessionRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	tok, exp, err := m.GenerateSessionToken("user-1", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseSessionToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	tok, _, err := NewJWTManager("other", time.Hour).GenerateSessionToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour).ParseSessionToken(tok)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	tok, _, err := m.GenerateSessionToken("user-1", "sid-1")
	require.NoError(t, err)

	_, err = m.ParseSessionToken(tok)
	assert.Error(t, err)
}

func TestFlashSigner(t *testing.T) {
	s := NewFlashSigner("flash")
	in := Flash{
		Messages:  []FlashMessage{{Type: "success", Text: "Please check your mailbox"}},
		LoginErr:  "Invalid credentials.",
		LastEmail: "user@todo.list",
	}

	tok, err := s.Sign(in)
	require.NoError(t, err)
	out, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = NewFlashSigner("forged").Parse(tok)
	assert.Error(t, err)
	assert.True(t, Flash{}.Empty())
}
