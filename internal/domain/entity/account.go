package entity

import (
	"errors"
	"fmt"
	"time"
)

const (
	// MinimumAgeToCreateAccount is the age in years required at registration time.
	MinimumAgeToCreateAccount = 18
	// ActivationLimit is how long an activation token stays usable after it was issued.
	ActivationLimit = 2 * 24 * time.Hour
)

var ErrBirthDateImmutable = errors.New("birth date is already set")

// now is swapped in tests.
var now = time.Now

// AccountCreationError is returned when an account cannot be created with the given data.
type AccountCreationError struct {
	Reason string
}

func (e *AccountCreationError) Error() string {
	return "account creation: " + e.Reason
}

// Account is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash; the plaintext only lives in memory until EraseCredentials.
//
// ActivationToken is set between RequestAccountActivation and ValidateAccount.
type Account struct {
	ID                    string
	Email                 string
	PasswordHash          string
	Roles                 []string
	BirthDate             time.Time
	CreatedAt             time.Time
	IsAccountValid        bool
	AccountValidatedAt    *time.Time
	ActivationToken       *string
	ActivationRequestedAt *time.Time

	plainPassword string
}

func NewAccount(email string) *Account {
	return &Account{
		Email:     email,
		Roles:     []string{},
		CreatedAt: now().UTC(),
	}
}

// GetRoles returns the stored roles plus the baseline RoleUser, without duplicates.
func (a *Account) GetRoles() []string {
	out := make([]string, 0, len(a.Roles)+1)
	seen := make(map[string]struct{}, len(a.Roles)+1)
	for _, r := range append(append([]string{}, a.Roles...), RoleUser) {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func (a *Account) HasRole(role string) bool {
	for _, r := range a.GetRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// SetBirthDate rejects dates after today (00:00 UTC) minus MinimumAgeToCreateAccount years.
func (a *Account) SetBirthDate(birthDate time.Time) error {
	if !a.BirthDate.IsZero() {
		return ErrBirthDateImmutable
	}
	if birthDate.After(BirthDateLimit()) {
		return &AccountCreationError{Reason: fmt.Sprintf("user is not old enough to create an account (minimum %d)", MinimumAgeToCreateAccount)}
	}
	a.BirthDate = birthDate
	return nil
}

// BirthDateLimit is the latest birth date accepted today.
func BirthDateLimit() time.Time {
	t := now().UTC()
	today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(-MinimumAgeToCreateAccount, 0, 0)
}

func (a *Account) SetPlainPassword(p string) { a.plainPassword = p }
func (a *Account) PlainPassword() string     { return a.plainPassword }
func (a *Account) EraseCredentials()         { a.plainPassword = "" }

func (a *Account) HasValidAccount() bool {
	return a.IsAccountValid
}

// ValidateAccount marks the account as valid and consumes the activation token.
// A second call restamps AccountValidatedAt.
func (a *Account) ValidateAccount() {
	t := now().UTC()
	a.IsAccountValid = true
	a.AccountValidatedAt = &t
	a.ActivationToken = nil
}

// RequestAccountActivation replaces any outstanding token.
func (a *Account) RequestAccountActivation(token string) {
	t := now().UTC()
	a.ActivationRequestedAt = &t
	a.ActivationToken = &token
}

func (a *Account) HasActivationToken() bool {
	return a.ActivationToken != nil
}

func (a *Account) GetActivationToken() string {
	if a.ActivationToken == nil {
		return ""
	}
	return *a.ActivationToken
}

// ActivationLimitAt returns nil if activation was never requested.
func (a *Account) ActivationLimitAt() *time.Time {
	if a.ActivationRequestedAt == nil {
		return nil
	}
	limit := a.ActivationRequestedAt.Add(ActivationLimit)
	return &limit
}

func (a *Account) ActivationExpired(at time.Time) bool {
	limit := a.ActivationLimitAt()
	return limit != nil && at.After(*limit)
}
