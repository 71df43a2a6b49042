package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session_token"
	FlashCookie   = "flash"
)

type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

func (m *Manager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
}

func (m *Manager) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func (m *Manager) SetFlash(c *gin.Context, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, value, int(flashTTL.Seconds()), "/", m.Domain, m.Secure, true)
}

func (m *Manager) ClearFlash(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
