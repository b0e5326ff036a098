package rental

import (
	"net/url"

	"github.com/goliatone/go-errors"
)

// CallbackParam carries the originally requested path through a login
// redirect so the user lands where they were headed.
const CallbackParam = "callbackUrl"

// DecisionKind is the guard's verdict for one request
type DecisionKind int

const (
	// DecisionAllow lets the request through to its handler
	DecisionAllow DecisionKind = iota
	// DecisionDeny short-circuits with a status-coded error
	DecisionDeny
	// DecisionRedirect short-circuits with a redirect target
	DecisionRedirect
)

// Decision is the outcome of one authorization check. The guard never
// performs the redirect or writes the response; callers do.
type Decision struct {
	Kind    DecisionKind
	Session Session
	Err     *errors.Error
	Target  string
}

// Allowed reports whether the request may proceed
func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Guard decides, for a session (or its absence) and a route class,
// whether a request is allowed, denied, or redirected. It is pure:
// no storage access, no side effects.
type Guard struct{}

// NewGuard returns the authorization guard
func NewGuard() *Guard {
	return &Guard{}
}

// Authorize maps (session, route class) to a Decision.
//
// Unauthenticated vs wrong-role outcomes are deliberately distinct:
// a missing session redirects to the role-appropriate login with the
// original path as callback, while a wrong-role session redirects to
// the dashboard of the role it actually holds (403 on API routes).
func (g *Guard) Authorize(session Session, rc RouteClass, originalPath string) Decision {
	switch rc.Kind {
	case RoutePublic, RouteAuthSubsystem:
		return Decision{Kind: DecisionAllow, Session: session}

	case RouteLogin:
		if session != nil {
			return Decision{
				Kind:    DecisionRedirect,
				Session: session,
				Target:  session.GetRole().DashboardPath(),
			}
		}
		return Decision{Kind: DecisionAllow}

	case RouteRestricted:
		if session == nil {
			if rc.API {
				return Decision{Kind: DecisionDeny, Err: ErrSessionRequired}
			}
			return Decision{
				Kind:   DecisionRedirect,
				Target: loginRedirect(rc.Roles, originalPath),
			}
		}

		role := session.GetRole()
		if !rc.Roles.Contains(role) {
			if rc.API {
				return Decision{
					Kind:    DecisionDeny,
					Session: session,
					Err: ErrRoleForbidden.WithMetadata(map[string]any{
						"role": role,
						"path": originalPath,
					}),
				}
			}
			// cross-role page access is a soft redirect, not a 403
			return Decision{
				Kind:    DecisionRedirect,
				Session: session,
				Target:  role.DashboardPath(),
			}
		}

		return Decision{Kind: DecisionAllow, Session: session}
	}

	// unreachable given a total classifier, still fail closed
	return Decision{Kind: DecisionDeny, Err: ErrSessionRequired}
}

func loginRedirect(roles RoleSet, originalPath string) string {
	target := roles.LoginPath()
	if originalPath == "" {
		return target
	}
	return target + "?" + CallbackParam + "=" + url.QueryEscape(originalPath)
}
