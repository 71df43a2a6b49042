package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestNewAccount_StampsCreatedAt(t *testing.T) {
	at := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	freezeNow(t, at)

	a := NewAccount("oldEnoughUser@todo.list")

	assert.Equal(t, at, a.CreatedAt)
	assert.False(t, a.HasValidAccount())
	assert.False(t, a.HasActivationToken())
}

func TestAccount_SetBirthDate(t *testing.T) {
	freezeNow(t, time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC))

	cases := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{"nineteen years old", time.Date(2005, 5, 10, 0, 0, 0, 0, time.UTC), false},
		{"eighteen today", time.Date(2006, 5, 10, 0, 0, 0, 0, time.UTC), false},
		{"eighteen tomorrow", time.Date(2006, 5, 11, 0, 0, 0, 0, time.UTC), true},
		{"seventeen", time.Date(2007, 5, 10, 0, 0, 0, 0, time.UTC), true},
		{"fixture birth date", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAccount("someone@todo.list")
			err := a.SetBirthDate(tc.date)
			if tc.wantErr {
				var ace *AccountCreationError
				require.ErrorAs(t, err, &ace)
				assert.True(t, a.BirthDate.IsZero(), "birth date must stay unset on failure")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.date, a.BirthDate)
		})
	}
}

func TestAccount_SetBirthDate_Immutable(t *testing.T) {
	a := NewAccount("someone@todo.list")
	first := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, a.SetBirthDate(first))

	err := a.SetBirthDate(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, ErrBirthDateImmutable)
	assert.Equal(t, first, a.BirthDate)
}

func TestAccount_GetRoles(t *testing.T) {
	cases := []struct {
		stored []string
		want   []string
	}{
		{nil, []string{RoleUser}},
		{[]string{}, []string{RoleUser}},
		{[]string{RoleAdmin}, []string{RoleAdmin, RoleUser}},
		{[]string{RoleUser, RoleAdmin, RoleAdmin}, []string{RoleUser, RoleAdmin}},
	}
	for _, tc := range cases {
		a := &Account{Roles: tc.stored}
		got := a.GetRoles()
		assert.Equal(t, tc.want, got)
		assert.Contains(t, got, RoleUser)
	}
}

func TestAccount_GetRoles_DoesNotMutateStoredRoles(t *testing.T) {
	stored := make([]string, 1, 4)
	stored[0] = RoleAdmin
	a := &Account{Roles: stored}

	_ = a.GetRoles()

	assert.Equal(t, []string{RoleAdmin}, a.Roles)
}

func TestAccount_ActivationLimit(t *testing.T) {
	at := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	freezeNow(t, at)
	a := NewAccount("someone@todo.list")

	assert.Nil(t, a.ActivationLimitAt())
	assert.False(t, a.ActivationExpired(at.Add(365*24*time.Hour)))

	a.RequestAccountActivation("token-1")

	limit := a.ActivationLimitAt()
	require.NotNil(t, limit)
	assert.Equal(t, at.Add(48*time.Hour), *limit)
	assert.True(t, a.HasActivationToken())
	assert.Equal(t, "token-1", a.GetActivationToken())
	assert.False(t, a.ActivationExpired(at.Add(48*time.Hour)))
	assert.True(t, a.ActivationExpired(at.Add(48*time.Hour+time.Second)))
}

func TestAccount_RequestAccountActivation_OverwritesToken(t *testing.T) {
	a := NewAccount("someone@todo.list")
	a.RequestAccountActivation("first")
	a.RequestAccountActivation("second")

	assert.Equal(t, "second", a.GetActivationToken())
}

func TestAccount_ValidateAccount(t *testing.T) {
	at := time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)
	freezeNow(t, at)
	a := NewAccount("someone@todo.list")
	a.RequestAccountActivation("token-1")

	a.ValidateAccount()

	assert.True(t, a.HasValidAccount())
	require.NotNil(t, a.AccountValidatedAt)
	assert.Equal(t, at, *a.AccountValidatedAt)
	assert.False(t, a.HasActivationToken())
	assert.Equal(t, "", a.GetActivationToken())
}

func TestAccount_EraseCredentials(t *testing.T) {
	a := NewAccount("someone@todo.list")
	a.SetPlainPassword("$1234Abcd")
	assert.Equal(t, "$1234Abcd", a.PlainPassword())

	a.EraseCredentials()

	assert.Empty(t, a.PlainPassword())
}

func TestAccount_HasRole(t *testing.T) {
	a := &Account{Roles: []string{RoleAdmin}}
	assert.True(t, a.HasRole(RoleAdmin))
	assert.True(t, a.HasRole(RoleUser))
	assert.False(t, a.HasRole("ROLE_EDITOR"))
}
