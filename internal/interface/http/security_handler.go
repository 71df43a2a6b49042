package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/application"
	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/validation"
)

const (
	LoginPath = "/login"

	dateLayout = "2006-01-02"

	MsgInvalidCredentials = "Invalid credentials."
	MsgEmailNotFound      = "Email could not be found."
	MsgRegistered         = "User %s is registered. Please check your mailbox"
	MsgInvalidToken       = "Invalid token"
	MsgTokenExpired       = "This activation link has expired. Please request a new one."
	MsgValidated          = "Your account is now validated, please sign in!"
	MsgResent             = "If %s is waiting for activation, a new link has been sent. Please check your mailbox"
)

// SecurityHandler serves sign in, registration, activation and sign out.
type SecurityHandler struct {
	Accounts *application.AccountService
	Sessions *application.SessionService
	Cookies  *helpers.Manager
	Logger   *logrus.Logger

	// RevealUnknownEmail keeps "Email could not be found." distinct from bad passwords.
	RevealUnknownEmail bool

	flash flasher
}

func NewSecurityHandler(accounts *application.AccountService, sessions *application.SessionService, cookies *helpers.Manager, signer *helpers.FlashSigner, logger *logrus.Logger, revealUnknownEmail bool) *SecurityHandler {
	return &SecurityHandler{
		Accounts:           accounts,
		Sessions:           sessions,
		Cookies:            cookies,
		Logger:             logger,
		RevealUnknownEmail: revealUnknownEmail,
		flash:              flasher{Signer: signer, Cookies: cookies, Logger: logger},
	}
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type registerForm struct {
	Email           string `form:"email" binding:"required,email,max=180"`
	Password        string `form:"password" binding:"required,strongpwd"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
	BirthDate       string `form:"birth_date" binding:"required,datetime=2006-01-02"`
	Accepted        bool   `form:"accepted" binding:"required"`
}

type resendForm struct {
	Email string `form:"email" binding:"required,email"`
}

// LoginPage GET /login
func (h *SecurityHandler) LoginPage(c *gin.Context, p *application.Principal) {
	if p != nil {
		h.land(c, p.Roles)
		return
	}
	fl := h.flash.pop(c)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title":     "Log in!",
		"Messages":  fl.Messages,
		"Error":     fl.LoginErr,
		"LastEmail": fl.LastEmail,
	})
}

// Login POST /login
// Failures go back to the login page through a flash holding the message and the email typed.
func (h *SecurityHandler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)

	a, err := h.Accounts.Authenticate(c.Request.Context(), form.Email, form.Password, requestMeta(c))
	if err != nil {
		msg, ok := h.loginMessage(err)
		if !ok {
			renderError(c, h.Logger, "authenticate failed", err)
			return
		}
		h.flash.set(c, helpers.Flash{LoginErr: msg, LastEmail: form.Email})
		redirect(c, LoginPath)
		return
	}

	token, exp, err := h.Sessions.Open(c.Request.Context(), a)
	if err != nil {
		renderError(c, h.Logger, "open session failed", err)
		return
	}
	h.Cookies.SetSession(c, token, exp)
	h.land(c, a.GetRoles())
}

func (h *SecurityHandler) loginMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, application.ErrEmailNotFound):
		if h.RevealUnknownEmail {
			return MsgEmailNotFound, true
		}
		return MsgInvalidCredentials, true
	case errors.Is(err, application.ErrInvalidCredentials):
		return MsgInvalidCredentials, true
	}
	return "", false
}

func (h *SecurityHandler) land(c *gin.Context, roles []string) {
	path, err := application.LandingPath(roles)
	if err != nil {
		renderError(c, h.Logger, "no landing page for roles", err)
		return
	}
	redirect(c, path)
}

// RegisterPage GET /register
func (h *SecurityHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title":  "Register",
		"Form":   registerForm{},
		"Errors": map[string]string{},
	})
}

// Register POST /register
func (h *SecurityHandler) Register(c *gin.Context) {
	var form registerForm
	errs := validation.ToDetails(c.ShouldBind(&form))
	if errs == nil {
		errs = map[string]string{}
	}

	if len(errs) == 0 {
		birthDate, _ := time.Parse(dateLayout, form.BirthDate)
		_, err := h.Accounts.Register(c.Request.Context(), application.RegisterInput{
			Email:     form.Email,
			Password:  form.Password,
			BirthDate: birthDate,
			Meta:      requestMeta(c),
		})

		var ce *entity.AccountCreationError
		switch {
		case err == nil:
			h.flash.notice(c, "success", fmt.Sprintf(MsgRegistered, form.Email))
			redirect(c, LoginPath)
			return
		case errors.As(err, &ce):
			errs["birth_date"] = fmt.Sprintf("You must be at least %d years old", entity.MinimumAgeToCreateAccount)
		case errors.Is(err, application.ErrEmailTaken):
			errs["email"] = "There is already an account with this email"
		default:
			renderError(c, h.Logger, "register failed", err)
			return
		}
	}

	form.Password, form.PasswordConfirm = "", ""
	c.HTML(http.StatusUnprocessableEntity, "register.html", gin.H{
		"Title":  "Register",
		"Form":   form,
		"Errors": errs,
	})
}

// Validate GET /validate/:token
func (h *SecurityHandler) Validate(c *gin.Context) {
	_, err := h.Accounts.Activate(c.Request.Context(), c.Param("token"), requestMeta(c))
	switch {
	case err == nil:
		h.flash.notice(c, "success", MsgValidated)
		redirect(c, LoginPath)
	case errors.Is(err, application.ErrActivationTokenNotFound):
		h.notFound(c, MsgInvalidToken, false)
	case errors.Is(err, application.ErrActivationTokenExpired):
		h.notFound(c, MsgTokenExpired, true)
	default:
		renderError(c, h.Logger, "activate failed", err)
	}
}

func (h *SecurityHandler) notFound(c *gin.Context, notice string, resend bool) {
	c.HTML(http.StatusNotFound, "notice.html", gin.H{
		"Title":    "Account activation",
		"Messages": []helpers.FlashMessage{{Type: "danger", Text: notice}},
		"Notice":   notice,
		"Resend":   resend,
	})
}

// Resend POST /validate/resend
// The answer is the same whether or not the email belongs to a pending account.
func (h *SecurityHandler) Resend(c *gin.Context) {
	var form resendForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash.set(c, helpers.Flash{LoginErr: "Please enter a valid email address."})
		redirect(c, LoginPath)
		return
	}
	if err := h.Accounts.ResendActivation(c.Request.Context(), form.Email, requestMeta(c)); err != nil {
		renderError(c, h.Logger, "resend activation failed", err)
		return
	}
	h.flash.notice(c, "success", fmt.Sprintf(MsgResent, form.Email))
	redirect(c, LoginPath)
}

// Logout POST /logout
func (h *SecurityHandler) Logout(c *gin.Context, p *application.Principal) {
	if p != nil {
		if err := h.Sessions.Close(c.Request.Context(), p); err != nil {
			h.Logger.WithError(err).WithField("account_id", p.AccountID).Warn("close session failed")
		}
		h.Accounts.RecordLogout(c.Request.Context(), p, requestMeta(c))
	}
	h.Cookies.ClearSession(c)
	redirect(c, LoginPath)
}
