package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/todolist-auth/internal/domain/entity"
	repo "github.com/oksasatya/todolist-auth/internal/domain/repository"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
	"github.com/oksasatya/todolist-auth/pkg/mailer"
	tpl "github.com/oksasatya/todolist-auth/pkg/mailer/templates"
)

// JobPublisher puts email jobs on the outbound queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AccountIndexer keeps a searchable copy of accounts.
type AccountIndexer interface {
	Index(ctx context.Context, a *entity.Account) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// RequestMeta identifies the client behind an operation, for the audit log.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type AccountServiceConfig struct {
	AppName                 string
	ActivationURL           func(token string) string
	BcryptCost              int
	EnforceActivationExpiry bool
	MailSendEnabled         bool
}

type AccountService struct {
	Repo    repo.AccountRepository
	Audit   repo.AuditRepository
	Pub     JobPublisher
	Indexer AccountIndexer
	Logger  *logrus.Logger
	Cfg     AccountServiceConfig

	now func() time.Time
}

func NewAccountService(accounts repo.AccountRepository, audit repo.AuditRepository, pub JobPublisher, indexer AccountIndexer, logger *logrus.Logger, cfg AccountServiceConfig) *AccountService {
	return &AccountService{
		Repo:    accounts,
		Audit:   audit,
		Pub:     pub,
		Indexer: indexer,
		Logger:  logger,
		Cfg:     cfg,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	BirthDate time.Time
	Meta      RequestMeta
}

// Register creates an unvalidated account and mails its activation link.
// The account is persisted before the mail job is published; a publish failure
// is logged and audited but does not undo the registration.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	a := entity.NewAccount(in.Email)
	if err := a.SetBirthDate(in.BirthDate); err != nil {
		return nil, err
	}

	a.SetPlainPassword(in.Password)
	hash, err := helpers.HashPassword(a.PlainPassword(), s.Cfg.BcryptCost)
	a.EraseCredentials()
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash

	a.RequestAccountActivation(helpers.NewActivationToken())

	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		s.Logger.WithError(err).WithField("email", a.Email).Error("create account failed")
		return nil, err
	}
	registrations.Add(1)

	s.audit(ctx, in.Meta, a, "register", nil)
	s.sendActivation(ctx, in.Meta, a)
	s.index(ctx, a)
	return a, nil
}

// Activate consumes an activation token and validates its account.
func (s *AccountService) Activate(ctx context.Context, token string, meta RequestMeta) (*entity.Account, error) {
	a, err := s.Repo.FindByActivationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			return nil, ErrActivationTokenNotFound
		}
		return nil, err
	}
	if s.Cfg.EnforceActivationExpiry && a.ActivationExpired(s.now()) {
		s.audit(ctx, meta, a, "activate_expired", map[string]any{"limit": a.ActivationLimitAt()})
		return nil, ErrActivationTokenExpired
	}

	a.ValidateAccount()
	if err := s.Repo.Save(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Error("save validated account failed")
		return nil, err
	}
	activations.Add(1)

	s.audit(ctx, meta, a, "activate", nil)
	s.index(ctx, a)
	return a, nil
}

// ResendActivation issues a fresh token for a pending account. Unknown or already
// validated emails are ignored so callers cannot probe which addresses exist.
func (s *AccountService) ResendActivation(ctx context.Context, email string, meta RequestMeta) error {
	a, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			s.audit(ctx, meta, &entity.Account{Email: email}, "activation_resend_unknown", nil)
			return nil
		}
		return err
	}
	if a.HasValidAccount() {
		return nil
	}

	a.RequestAccountActivation(helpers.NewActivationToken())
	if err := s.Repo.Save(ctx, a); err != nil {
		return err
	}
	s.audit(ctx, meta, a, "activation_resend", nil)
	s.sendActivation(ctx, meta, a)
	return nil
}

// Authenticate checks credentials. The activation state is only looked at once the
// password matched.
func (s *AccountService) Authenticate(ctx context.Context, email, password string, meta RequestMeta) (*entity.Account, error) {
	a, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrAccountNotFound) {
			s.loginFailed(ctx, meta, &entity.Account{Email: email}, ErrEmailNotFound)
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		s.loginFailed(ctx, meta, a, ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}
	if !a.HasValidAccount() {
		s.loginFailed(ctx, meta, a, ErrAccountNotActivated)
		return nil, ErrAccountNotActivated
	}
	loginSuccesses.Add(1)
	s.audit(ctx, meta, a, "login_success", nil)
	return a, nil
}

// RecordLogout audits the end of a session.
func (s *AccountService) RecordLogout(ctx context.Context, p *Principal, meta RequestMeta) {
	if p == nil {
		return
	}
	s.audit(ctx, meta, &entity.Account{ID: p.AccountID, Email: p.Email}, "logout", nil)
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *AccountService) SearchAccounts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Indexer == nil {
		return nil, ErrSearchUnavailable
	}
	return s.Indexer.Search(ctx, q, size)
}

func (s *AccountService) loginFailed(ctx context.Context, meta RequestMeta, a *entity.Account, reason error) {
	loginFailures.Add(1)
	s.audit(ctx, meta, a, "login_failure", map[string]any{"reason": reason.Error()})
}

func (s *AccountService) sendActivation(ctx context.Context, meta RequestMeta, a *entity.Account) {
	if s.Pub == nil || !s.Cfg.MailSendEnabled {
		s.Logger.WithField("email", a.Email).Debug("mail sending disabled; activation email skipped")
		return
	}
	opts := []tpl.Option{tpl.WithAppName(s.Cfg.AppName)}
	if limit := a.ActivationLimitAt(); limit != nil {
		opts = append(opts, tpl.WithExpiresAt(*limit))
	}
	data := tpl.NewActivationData(a.Email, s.Cfg.ActivationURL(a.GetActivationToken()), opts...)
	job := mailer.EmailJob{To: a.Email, Template: tpl.Activation, Data: data}

	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		activationMailErr.Add(1)
		s.Logger.WithError(err).WithField("email", a.Email).Warn("failed to publish activation email")
		s.audit(ctx, meta, a, "activation_mail_failed", map[string]any{"error": err.Error()})
	}
}

func (s *AccountService) audit(ctx context.Context, meta RequestMeta, a *entity.Account, action string, metadata map[string]any) {
	if s.Audit == nil {
		return
	}
	entry := repo.AuditEntry{
		AccountID: a.ID,
		Email:     a.Email,
		Action:    action,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Metadata:  metadata,
	}
	if err := s.Audit.Insert(ctx, entry); err != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}

func (s *AccountService) index(ctx context.Context, a *entity.Account) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, a); err != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("es index failed")
	}
}
