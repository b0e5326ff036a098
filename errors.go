package rental

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
)

// ErrAccountNotFound is returned when no account matches an identifier
var ErrAccountNotFound = errors.New("account not found", errors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// ErrProfileNotFound is returned when a role profile is missing for an
// account. Signup creates both atomically so this should not happen,
// but onboarding checks for it defensively.
var ErrProfileNotFound = errors.New("role profile not found", errors.CategoryNotFound).
	WithTextCode("PROFILE_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// ErrDuplicateEmail is returned when a signup collides with an existing
// account. Surfaced distinctly from validation so clients can offer
// "sign in instead".
var ErrDuplicateEmail = errors.New("an account with this email already exists", errors.CategoryConflict).
	WithTextCode("DUPLICATE_EMAIL").
	WithCode(errors.CodeConflict)

// ErrSessionRequired is the unauthenticated outcome. Kept distinct from
// ErrRoleForbidden: the redirect targets differ.
var ErrSessionRequired = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode("SESSION_REQUIRED").
	WithCode(errors.CodeUnauthorized)

// ErrRoleForbidden is the wrong-role outcome for an authenticated session
var ErrRoleForbidden = errors.New("role not permitted for this resource", errors.CategoryAuthz).
	WithTextCode("ROLE_FORBIDDEN").
	WithCode(errors.CodeForbidden)

// ErrUnderage is returned when a tenant's date of birth computes to an
// age below 18 at submission time
var ErrUnderage = errors.New("you must be at least 18 years old", errors.CategoryValidation).
	WithTextCode("UNDERAGE").
	WithCode(errors.CodeBadRequest)

// ErrIdentityNotFound is returned when verification yields no identity
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
	WithTextCode("IDENTITY_NOT_FOUND").
	WithCode(errors.CodeUnauthorized)

// ErrMismatchedHashAndPassword is the credential failure. Deliberately
// indistinguishable from an unknown identifier.
var ErrMismatchedHashAndPassword = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty input to the password hasher
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryValidation).
	WithTextCode("EMPTY_STRING").
	WithCode(errors.CodeBadRequest)

// ErrTooManyLoginAttempts is returned during the login cooldown window
var ErrTooManyLoginAttempts = errors.New("too many login attempts", errors.CategoryRateLimit).
	WithTextCode("TOO_MANY_ATTEMPTS").
	WithCode(errors.CodeTooManyRequests)

// ErrTokenExpired is returned for expired session tokens
var ErrTokenExpired = errors.New("session token expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens we cannot parse
var ErrTokenMalformed = errors.New("malformed session token", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrUnableToFindSession is returned when the request carries no session
var ErrUnableToFindSession = errors.New("unable to find session", errors.CategoryAuth).
	WithTextCode("SESSION_MISSING").
	WithCode(errors.CodeUnauthorized)

// ErrUnableToDecodeSession is returned when the session token fails to decode
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithTextCode("SESSION_DECODE").
	WithCode(errors.CodeUnauthorized)

// ErrUnableToMapClaims is returned when token claims have the wrong shape
var ErrUnableToMapClaims = errors.New("unable to map claims", errors.CategoryAuth).
	WithTextCode("CLAIMS_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsUniqueViolation detects a storage-level uniqueness constraint error.
// The email uniqueness invariant is enforced by the database, not by
// application locking; concurrent duplicate signups surface here.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value violates unique constraint") // postgres
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field => message map for field-level rendering.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		out["error"] = err.Error()
		return out
	}

	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}
	return out
}
