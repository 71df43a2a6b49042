package helpers

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const flashTTL = 5 * time.Minute

// FlashMessage is a one-shot notice shown on the next rendered page.
type FlashMessage struct {
	Type string `json:"type"` // success, danger
	Text string `json:"text"`
}

// Flash carries notices plus the last failed login attempt across a redirect.
type Flash struct {
	Messages  []FlashMessage `json:"messages,omitempty"`
	LoginErr  string         `json:"login_err,omitempty"`
	LastEmail string         `json:"last_email,omitempty"`
}

func (f Flash) Empty() bool {
	return len(f.Messages) == 0 && f.LoginErr == "" && f.LastEmail == ""
}

type flashClaims struct {
	Flash Flash `json:"f"`
	jwt.RegisteredClaims
}

// FlashSigner signs flash payloads so clients cannot forge notices.
type FlashSigner struct {
	secret []byte
}

func NewFlashSigner(secret string) *FlashSigner {
	return &FlashSigner{secret: []byte(secret)}
}

func (s *FlashSigner) Sign(f Flash) (string, error) {
	now := time.Now()
	claims := &flashClaims{
		Flash: f,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(flashTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *FlashSigner) Parse(tokenStr string) (Flash, error) {
	claims := &flashClaims{}
	if err := parseToken(tokenStr, s.secret, claims); err != nil {
		return Flash{}, err
	}
	return claims.Flash, nil
}
