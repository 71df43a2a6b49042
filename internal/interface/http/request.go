package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/application"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: clientIP(c), UserAgent: c.GetHeader("User-Agent")}
}

// flasher moves one-shot notices across redirects in a signed cookie.
type flasher struct {
	Signer  *helpers.FlashSigner
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func (f flasher) set(c *gin.Context, fl helpers.Flash) {
	v, err := f.Signer.Sign(fl)
	if err != nil {
		f.Logger.WithError(err).Warn("sign flash failed")
		return
	}
	f.Cookies.SetFlash(c, v)
}

func (f flasher) notice(c *gin.Context, typ, text string) {
	f.set(c, helpers.Flash{Messages: []helpers.FlashMessage{{Type: typ, Text: text}}})
}

// pop reads and clears the pending flash. A missing or tampered cookie yields an empty Flash.
func (f flasher) pop(c *gin.Context) helpers.Flash {
	v, err := c.Cookie(helpers.FlashCookie)
	if err != nil || v == "" {
		return helpers.Flash{}
	}
	f.Cookies.ClearFlash(c)
	fl, err := f.Signer.Parse(v)
	if err != nil {
		return helpers.Flash{}
	}
	return fl
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func renderError(c *gin.Context, logger *logrus.Logger, msg string, err error) {
	logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{"Title": "Error"})
}
