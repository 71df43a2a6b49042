package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager signs and parses the session token kept in the session cookie.
type JWTManager struct {
	SessionSecret []byte
	SessionTTL    time.Duration
}

func NewJWTManager(sessionSecret string, sessionTTL time.Duration) *JWTManager {
	return &JWTManager{
		SessionSecret: []byte(sessionSecret),
		SessionTTL:    sessionTTL,
	}
}

type Claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func (m *JWTManager) GenerateSessionToken(userID, sessionID string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.SessionTTL)
	claims := &Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.SessionSecret)
	return s, exp, err
}

func (m *JWTManager) ParseSessionToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := parseToken(tokenStr, m.SessionSecret, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func parseToken(tokenStr string, secret []byte, claims jwt.Claims) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return errors.New("invalid token")
	}
	return nil
}
