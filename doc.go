// Package rental provides the access-control and onboarding core for a
// property rental application: role-scoped sessions, route
// classification, an authorization guard, and the signup and
// onboarding flows that move an account from registered to complete.
//
// Route classification:
//   - Classifier maps every request path to exactly one RouteClass.
//     Unmatched paths are restricted to authenticated sessions, so new
//     routes are protected by default.
//
// Authorization:
//   - Guard is pure. It maps a session (or its absence) and a
//     RouteClass to a Decision: allow, deny with a status-coded error,
//     or redirect. API routes get 401/403 JSON errors; page routes get
//     login or dashboard redirects.
//
// Onboarding:
//   - Accounts are created together with an empty role profile in one
//     transaction. OnboardingMachine derives completeness from the
//     profile on every read and validates the transition inputs,
//     including the tenant minimum-age rule.
package rental
