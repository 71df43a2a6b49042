package router

import (
	"github.com/oksasatya/todolist-auth/internal/application"
	"github.com/oksasatya/todolist-auth/internal/container"
	pginfra "github.com/oksasatya/todolist-auth/internal/infrastructure/postgres"
	"github.com/oksasatya/todolist-auth/internal/infrastructure/search"
	handlers "github.com/oksasatya/todolist-auth/internal/interface/http"
	"github.com/oksasatya/todolist-auth/internal/interface/middleware"
	"github.com/oksasatya/todolist-auth/internal/router/modules"
	"github.com/oksasatya/todolist-auth/pkg/helpers"
)

type AccountModuleDeps struct {
	Accounts *application.AccountService
	Sessions *application.SessionService
	Cookies  *helpers.Manager
	Security *handlers.SecurityHandler
	Account  *handlers.AccountHandler
}

func buildAccountDeps() AccountModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	var pub application.JobPublisher
	if q := container.GetEmailQueue(); q != nil {
		pub = q
	}
	var indexer application.AccountIndexer
	if es := container.GetES(); es != nil {
		indexer = search.NewAccountIndexer(es, cfg.ESAccountsIndex, logger)
	}

	accounts := application.NewAccountService(
		pginfra.NewAccountRepository(container.GetPGPool()),
		pginfra.NewAuditRepository(container.GetPGPool()),
		pub,
		indexer,
		logger,
		application.AccountServiceConfig{
			AppName:                 cfg.AppName,
			ActivationURL:           cfg.ActivationURL,
			BcryptCost:              cfg.BcryptCost,
			EnforceActivationExpiry: cfg.ActivationEnforceExpiry,
			MailSendEnabled:         cfg.MailSendEnabled,
		},
	)
	sessions := application.NewSessionService(container.GetRedis(), container.GetJWT(), logger)
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	return AccountModuleDeps{
		Accounts: accounts,
		Sessions: sessions,
		Cookies:  cookies,
		Security: handlers.NewSecurityHandler(accounts, sessions, cookies, container.GetFlash(), logger, cfg.LoginRevealUnknownEmail),
		Account:  handlers.NewAccountHandler(accounts, cookies, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildAccountDeps()
	rdb := container.GetRedis()

	r.Use(middleware.Session(deps.Sessions, deps.Cookies, container.GetLogger()))
	r.Add(modules.NewSecurityModule(deps.Security, rdb))
	r.Add(modules.NewAccountModule(deps.Account, rdb))
	if container.GetConfig().DebugMetricsEnabled {
		r.AddAPI(modules.NewDebugModule(rdb))
	}
}
