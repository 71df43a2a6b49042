package application

import "expvar"

// Exposed on /api/debug/vars.
var (
	registrations     = expvar.NewInt("accounts_registered")
	activations       = expvar.NewInt("accounts_activated")
	activationMailErr = expvar.NewInt("activation_mail_failures")
	loginSuccesses    = expvar.NewInt("logins_succeeded")
	loginFailures     = expvar.NewInt("logins_failed")
)
