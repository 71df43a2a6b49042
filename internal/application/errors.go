package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotFound      = errors.New("email could not be found")
	// ErrAccountNotActivated matches ErrInvalidCredentials so callers can treat both alike.
	ErrAccountNotActivated = fmt.Errorf("%w: account not activated", ErrInvalidCredentials)

	ErrEmailTaken              = errors.New("email already registered")
	ErrActivationTokenNotFound = errors.New("invalid token")
	ErrActivationTokenExpired  = errors.New("activation token expired")
	ErrSessionNotFound         = errors.New("session not found")
	ErrUnattendedRoles         = errors.New("account holds neither admin nor baseline role")
	ErrSearchUnavailable       = errors.New("account search not configured")
)
