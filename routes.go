package rental

import "strings"

// RouteKind partitions every request path into exactly one class
type RouteKind int

const (
	// RoutePublic needs no session
	RoutePublic RouteKind = iota
	// RouteLogin is public but redirects an authenticated visitor to
	// their dashboard
	RouteLogin
	// RouteAuthSubsystem covers the session issuer's own endpoints,
	// always public since they are what produce sessions
	RouteAuthSubsystem
	// RouteRestricted requires a session with a role in the route's set
	RouteRestricted
)

// RouteClass is the classification of one request path
type RouteClass struct {
	Kind RouteKind
	// Roles admitted when Kind is RouteRestricted; empty means any
	// authenticated role
	Roles RoleSet
	// API routes get status-coded denials instead of redirects
	API bool
}

// RequiresSession reports whether the class needs an authenticated session
func (rc RouteClass) RequiresSession() bool {
	return rc.Kind == RouteRestricted
}

const authSubsystemPrefix = "/api/auth"

// Classifier maps inbound paths to route classes. The zero-config
// classifier uses the application's conventional namespaces; extra
// public paths can be added for static assets and the like.
type Classifier struct {
	public map[string]struct{}
	login  map[string]struct{}
}

// ClassifierOption customizes classifier construction
type ClassifierOption func(*Classifier)

// WithPublicPaths adds exact-match paths to the public allow-list
func WithPublicPaths(paths ...string) ClassifierOption {
	return func(c *Classifier) {
		for _, p := range paths {
			c.public[p] = struct{}{}
		}
	}
}

// NewClassifier builds the route classifier with the default allow-list
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		public: map[string]struct{}{
			"/":                {},
			"/tenant/signup":   {},
			"/landlord/signup": {},
		},
		login: map[string]struct{}{
			"/login":          {},
			"/tenant/login":   {},
			"/landlord/login": {},
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Classify is total: every path maps to exactly one class and anything
// unmatched falls through to "any authenticated role", never to public.
func (c *Classifier) Classify(path string) RouteClass {
	path = normalizePath(path)
	api := strings.HasPrefix(path, "/api/")

	if strings.HasPrefix(path, authSubsystemPrefix) {
		return RouteClass{Kind: RouteAuthSubsystem, API: true}
	}

	if _, ok := c.login[path]; ok {
		return RouteClass{Kind: RouteLogin}
	}

	if _, ok := c.public[path]; ok {
		return RouteClass{Kind: RoutePublic, API: api}
	}

	switch {
	case hasNamespace(path, "/landlord"), hasNamespace(path, "/api/landlord"):
		return RouteClass{Kind: RouteRestricted, Roles: RoleSet{RoleLandlord}, API: api}
	case hasNamespace(path, "/tenant"), hasNamespace(path, "/api/tenant"):
		return RouteClass{Kind: RouteRestricted, Roles: RoleSet{RoleTenant}, API: api}
	}

	// fail closed
	return RouteClass{Kind: RouteRestricted, API: api}
}

// hasNamespace matches "/landlord" and "/landlord/..." but not
// "/landlording"
func hasNamespace(path, ns string) bool {
	if path == ns {
		return true
	}
	return strings.HasPrefix(path, ns+"/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
