package rental

import (
	"net/http"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// SessionLocalsKey is where Protect stores the decoded session for
// downstream handlers.
const SessionLocalsKey = "session"

// RouteGuard classifies every incoming path and applies the
// authorization guard before the request reaches its handler.
type RouteGuard struct {
	auth                   Authenticator
	cfg                    Config
	classifier             *Classifier
	guard                  *Guard
	cookieDuration         time.Duration
	extendedCookieDuration time.Duration
	Logger                 Logger
	ErrorHandler           func(c router.Context, err error) error
}

func NewRouteGuard(auther Authenticator, cfg Config, opts ...ClassifierOption) (*RouteGuard, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	extendedCookieDuration := cookieDuration
	if cfg.GetExtendedTokenDuration() > 0 {
		extendedCookieDuration = time.Duration(cfg.GetExtendedTokenDuration()) * time.Hour
	}

	g := &RouteGuard{
		cfg:                    cfg,
		auth:                   auther,
		classifier:             NewClassifier(opts...),
		guard:                  NewGuard(),
		Logger:                 defLogger{},
		cookieDuration:         cookieDuration,
		extendedCookieDuration: extendedCookieDuration,
	}

	g.ErrorHandler = g.defaultErrHandler

	return g, nil
}

func (a RouteGuard) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

func (a RouteGuard) GetExtendedCookieDuration() time.Duration {
	return a.extendedCookieDuration
}

// Protect returns the middleware that enforces route access. Every
// path gets a class; unknown paths are restricted, so a new page is
// protected before anyone remembers to register it.
func (a *RouteGuard) Protect() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			path := c.Path()
			rc := a.classifier.Classify(path)

			session, err := a.SessionFromRequest(c)
			if err != nil && rc.RequiresSession() {
				a.Logger.Debug("no usable session", "path", path, "error", err)
			}

			decision := a.guard.Authorize(session, rc, path)

			switch decision.Kind {
			case DecisionAllow:
				if decision.Session != nil {
					c.Locals(SessionLocalsKey, decision.Session)
				}
				return hf(c)
			case DecisionRedirect:
				return c.Redirect(decision.Target, redirectStatus(c))
			case DecisionDeny:
				return a.ErrorHandler(c, decision.Err)
			}

			return a.ErrorHandler(c, ErrSessionRequired)
		}
	}
}

// SessionFromRequest resolves the session from the token cookie, if any
func (a *RouteGuard) SessionFromRequest(c router.Context) (Session, error) {
	raw := c.Cookies(a.cfg.GetContextKey())
	if raw == "" {
		return nil, ErrUnableToFindSession
	}

	session, err := a.auth.SessionFromToken(raw)
	if err != nil {
		// a stale cookie should behave like no cookie at all
		a.cookieDel(c, a.cfg.GetContextKey())
		return nil, err
	}

	return session, nil
}

func (a *RouteGuard) Login(c router.Context, payload LoginPayload) error {
	token, err := a.auth.Login(c.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	duration := a.cookieDuration
	if payload.GetExtendedSession() {
		duration = a.extendedCookieDuration
	}

	a.setCookieToken(c, token, duration)
	return nil
}

func (a *RouteGuard) Logout(c router.Context) {
	a.cookieDel(c, a.cfg.GetContextKey())
}

func (a *RouteGuard) setCookieToken(c router.Context, val string, duration time.Duration) {
	c.Cookie(&router.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteGuard) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func (a *RouteGuard) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Guard error handler",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	code := richErr.Code
	if code == 0 {
		code = http.StatusInternalServerError
	}

	return c.JSON(code, map[string]any{
		"error": richErr.Message,
		"code":  richErr.TextCode,
	})
}

func redirectStatus(c router.Context) int {
	if c.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}

var _ HTTPGuard = (*RouteGuard)(nil)
