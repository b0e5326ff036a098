package rental

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured session token claims
type AuthClaims interface {
	Subject() string
	AccountID() string
	Role() Role
	Email() string
	Name() string
	Issuer() string
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID          string `json:"uid,omitempty"`
	AccountRole  Role   `json:"role,omitempty"`
	AccountEmail string `json:"email,omitempty"`
	AccountName  string `json:"name,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// AccountID returns the account ID
func (c *JWTClaims) AccountID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Role returns the account role
func (c *JWTClaims) Role() Role {
	return c.AccountRole
}

// Email returns the account email
func (c *JWTClaims) Email() string {
	return c.AccountEmail
}

// Name returns the account display name
func (c *JWTClaims) Name() string {
	return c.AccountName
}

// Issuer returns the token issuer, falling back to the subject
func (c *JWTClaims) Issuer() string {
	if c.RegisteredClaims.Issuer != "" {
		return c.RegisteredClaims.Issuer
	}
	return c.Subject()
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
