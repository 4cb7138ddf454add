package consts

const (
	SessionCookie = "portfolio_session"
	SessionCtxKey = "session"
)

const (
	SessionSignedIn  = "SIGNED_IN"
	SessionSignedOut = "SIGNED_OUT"
)

const (
	LoginPath     = "/admin/login"
	DashboardPath = "/admin/dashboard"
)
