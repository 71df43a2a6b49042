package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/application"
	repo "github.com/oksasatya/todolist-auth/internal/domain/repository"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/response"
)

// AccountHandler serves the pages reached after sign in.
type AccountHandler struct {
	Accounts *application.AccountService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, cookies *helpers.Manager, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Cookies: cookies, Logger: logger}
}

// Profile GET /profile
func (h *AccountHandler) Profile(c *gin.Context, p *application.Principal) {
	a, err := h.Accounts.GetAccount(c.Request.Context(), p.AccountID)
	if errors.Is(err, repo.ErrAccountNotFound) {
		h.Cookies.ClearSession(c)
		redirect(c, LoginPath)
		return
	}
	if err != nil {
		renderError(c, h.Logger, "load profile failed", err)
		return
	}
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"Title":   "Profile",
		"Account": a,
	})
}

// Admin GET /admin
func (h *AccountHandler) Admin(c *gin.Context, p *application.Principal) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":     "Administration",
		"Principal": p,
	})
}

// Search GET /admin/accounts/search?q=&size=
func (h *AccountHandler) Search(c *gin.Context, p *application.Principal) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Accounts.SearchAccounts(c.Request.Context(), q, size)
	if errors.Is(err, application.ErrSearchUnavailable) {
		response.Error[any](c, http.StatusServiceUnavailable, "search unavailable", nil)
		return
	}
	if err != nil {
		h.Logger.WithError(err).WithField("q", q).Warn("account search failed")
		response.Error[any](c, http.StatusBadGateway, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "accounts", map[string]any{"q": q, "count": len(hits), "requested_by": p.Email})
}
