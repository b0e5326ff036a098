package rental

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is the account's role. The set is closed: every authorization
// decision switches exhaustively over the two variants so a future
// third role breaks loudly, not silently.
type Role string

const (
	// RoleLandlord owns properties and manages rentals
	RoleLandlord Role = "LANDLORD"
	// RoleTenant rents a property
	RoleTenant Role = "TENANT"
)

// Account is the core identity record
type Account struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name           string     `bun:"name" json:"name,omitempty"`
	Email          string     `bun:"email,notnull,unique" json:"email,omitempty"`
	EmailVerified  *time.Time `bun:"email_verified,nullzero" json:"email_verified,omitempty"`
	Image          string     `bun:"image" json:"image,omitempty"`
	PasswordHash   string     `bun:"password_hash" json:"-"`
	Phone          string     `bun:"phone" json:"phone,omitempty"`
	Role           Role       `bun:"role,notnull" json:"role,omitempty"`
	LoginAttempts  int        `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	LoggedInAt     *time.Time `bun:"loggedin_at" json:"loggedin_at,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt      *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// HasPassword reports whether the account can authenticate with
// credentials. OAuth and magic-link only accounts have no hash.
func (a *Account) HasPassword() bool {
	return a != nil && a.PasswordHash != ""
}

// NormalizeEmail lowercases and trims the email so uniqueness checks
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LandlordProfile is the landlord variant of the role profile. It is
// created with its Account and stays 1:1 with it.
type LandlordProfile struct {
	bun.BaseModel `bun:"table:landlord_profiles,alias:lpr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID     uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	Account       *Account   `bun:"rel:belongs-to,join:user_id=id" json:"account,omitempty"`
	BusinessName  *string    `bun:"business_name" json:"business_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsComplete is the single source of truth for landlord onboarding
// completeness. Derived on every read, never stored.
func (p *LandlordProfile) IsComplete() bool {
	if p == nil || p.BusinessName == nil {
		return false
	}
	return strings.TrimSpace(*p.BusinessName) != ""
}

// TenantProfile is the tenant variant of the role profile.
type TenantProfile struct {
	bun.BaseModel      `bun:"table:tenant_profiles,alias:tpr"`
	ID                 uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID          uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	Account            *Account   `bun:"rel:belongs-to,join:user_id=id" json:"account,omitempty"`
	DateOfBirth        *time.Time `bun:"date_of_birth,nullzero" json:"date_of_birth,omitempty"`
	Occupation         *string    `bun:"occupation" json:"occupation,omitempty"`
	AssignedPropertyID *uuid.UUID `bun:"assigned_property_id,type:uuid" json:"assigned_property_id,omitempty"`
	RentalID           *uuid.UUID `bun:"rental_id,type:uuid" json:"rental_id,omitempty"`
	CreatedAt          *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt          *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// IsComplete is the single source of truth for tenant onboarding
// completeness.
func (p *TenantProfile) IsComplete() bool {
	if p == nil || p.DateOfBirth == nil || p.Occupation == nil {
		return false
	}
	return strings.TrimSpace(*p.Occupation) != ""
}
