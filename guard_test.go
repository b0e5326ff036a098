package rental_test

import (
	"testing"

	rental "github.com/goliatone/go-rental"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func landlordSession() testSession {
	return testSession{
		id:    uuid.NewString(),
		role:  rental.RoleLandlord,
		email: "owner@example.com",
		name:  "Owner",
	}
}

func tenantSession() testSession {
	return testSession{
		id:    uuid.NewString(),
		role:  rental.RoleTenant,
		email: "renter@example.com",
		name:  "Renter",
	}
}

func TestAuthorizePublicRouteAllowsAnyone(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(nil, c.Classify("/"), "/")
	assert.True(t, d.Allowed())

	d = g.Authorize(landlordSession(), c.Classify("/"), "/")
	assert.True(t, d.Allowed())
}

func TestAuthorizeAuthSubsystemAllowsAnyone(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(nil, c.Classify("/api/auth/signup"), "/api/auth/signup")
	assert.True(t, d.Allowed())
}

func TestAuthorizeRestrictedPageWithoutSessionRedirectsToLogin(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(nil, c.Classify("/landlord/dashboard"), "/landlord/dashboard")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/landlord/login?callbackUrl=%2Flandlord%2Fdashboard", d.Target)

	d = g.Authorize(nil, c.Classify("/tenant/dashboard"), "/tenant/dashboard")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/tenant/login?callbackUrl=%2Ftenant%2Fdashboard", d.Target)
}

func TestAuthorizeRestrictedAPIWithoutSessionDenies(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(nil, c.Classify("/api/landlord/onboarding"), "/api/landlord/onboarding")
	require.Equal(t, rental.DecisionDeny, d.Kind)
	require.NotNil(t, d.Err)
	assert.Equal(t, "SESSION_REQUIRED", d.Err.TextCode)
}

func TestAuthorizeWrongRolePageRedirectsToOwnDashboard(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	// a tenant wandering into the landlord area lands on their own
	// dashboard, not an error page
	d := g.Authorize(tenantSession(), c.Classify("/landlord/dashboard"), "/landlord/dashboard")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/tenant/dashboard", d.Target)

	d = g.Authorize(landlordSession(), c.Classify("/tenant/dashboard"), "/tenant/dashboard")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/landlord/dashboard", d.Target)
}

func TestAuthorizeWrongRoleAPIDenies(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(tenantSession(), c.Classify("/api/landlord/onboarding"), "/api/landlord/onboarding")
	require.Equal(t, rental.DecisionDeny, d.Kind)
	require.NotNil(t, d.Err)
	assert.Equal(t, "ROLE_FORBIDDEN", d.Err.TextCode)
}

func TestAuthorizeMatchingRoleAllows(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(landlordSession(), c.Classify("/landlord/dashboard"), "/landlord/dashboard")
	assert.True(t, d.Allowed())

	d = g.Authorize(tenantSession(), c.Classify("/api/tenant/onboarding"), "/api/tenant/onboarding")
	assert.True(t, d.Allowed())
}

func TestAuthorizeLoginPageRedirectsAuthenticatedVisitor(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(landlordSession(), c.Classify("/landlord/login"), "/landlord/login")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/landlord/dashboard", d.Target)

	// even the other role's login page bounces to the session's own dashboard
	d = g.Authorize(tenantSession(), c.Classify("/landlord/login"), "/landlord/login")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/tenant/dashboard", d.Target)

	d = g.Authorize(nil, c.Classify("/landlord/login"), "/landlord/login")
	assert.True(t, d.Allowed())
}

func TestAuthorizeUnknownRestrictedPathAdmitsAnyRole(t *testing.T) {
	g := rental.NewGuard()
	c := rental.NewClassifier()

	d := g.Authorize(tenantSession(), c.Classify("/settings"), "/settings")
	assert.True(t, d.Allowed())

	d = g.Authorize(nil, c.Classify("/settings"), "/settings")
	require.Equal(t, rental.DecisionRedirect, d.Kind)
	assert.Equal(t, "/login?callbackUrl=%2Fsettings", d.Target)
}
