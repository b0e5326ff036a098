package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PropertyType classifies a listed property
type PropertyType = string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyHouse     PropertyType = "HOUSE"
	PropertyCondo     PropertyType = "CONDO"
	PropertyStudio    PropertyType = "STUDIO"
	PropertyRoom      PropertyType = "ROOM"
)

// PropertyStatus is the property's occupancy status
type PropertyStatus = string

const (
	PropertyAvailable   PropertyStatus = "AVAILABLE"
	PropertyOccupied    PropertyStatus = "OCCUPIED"
	PropertyMaintenance PropertyStatus = "MAINTENANCE"
)

// Property is a rentable unit owned by a landlord profile
type Property struct {
	bun.BaseModel `bun:"table:properties,alias:prp"`
	ID            uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string         `bun:"name,notnull" json:"name,omitempty"`
	Description   string         `bun:"description" json:"description,omitempty"`
	Address       string         `bun:"address,notnull" json:"address,omitempty"`
	City          string         `bun:"city,notnull" json:"city,omitempty"`
	State         string         `bun:"state,notnull" json:"state,omitempty"`
	ZipCode       string         `bun:"zip_code,notnull" json:"zip_code,omitempty"`
	Type          PropertyType   `bun:"type,notnull" json:"type,omitempty"`
	Size          float64        `bun:"size" json:"size,omitempty"`
	Bedrooms      int            `bun:"bedrooms" json:"bedrooms,omitempty"`
	Bathrooms     int            `bun:"bathrooms" json:"bathrooms,omitempty"`
	RentAmount    float64        `bun:"rent_amount,notnull" json:"rent_amount,omitempty"`
	Deposit       float64        `bun:"deposit" json:"deposit,omitempty"`
	Status        PropertyStatus `bun:"status,notnull" json:"status,omitempty"`
	LandlordID    uuid.UUID      `bun:"landlord_id,notnull,type:uuid" json:"landlord_id,omitempty"`
	CreatedAt     *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// RentalStatus is the lease lifecycle status
type RentalStatus = string

const (
	RentalActive     RentalStatus = "ACTIVE"
	RentalExpired    RentalStatus = "EXPIRED"
	RentalTerminated RentalStatus = "TERMINATED"
)

// Rental links a tenant profile to a property for a lease term
type Rental struct {
	bun.BaseModel `bun:"table:rentals,alias:rnt"`
	ID            uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	PropertyID    uuid.UUID    `bun:"property_id,notnull,type:uuid" json:"property_id,omitempty"`
	TenantID      uuid.UUID    `bun:"tenant_id,notnull,type:uuid" json:"tenant_id,omitempty"`
	StartDate     time.Time    `bun:"start_date,notnull" json:"start_date,omitempty"`
	EndDate       *time.Time   `bun:"end_date,nullzero" json:"end_date,omitempty"`
	MonthlyRent   float64      `bun:"monthly_rent,notnull" json:"monthly_rent,omitempty"`
	Deposit       float64      `bun:"deposit,notnull" json:"deposit,omitempty"`
	Status        RentalStatus `bun:"status,notnull" json:"status,omitempty"`
	CreatedAt     *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// PaymentStatus is the rent payment status
type PaymentStatus = string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentOverdue   PaymentStatus = "OVERDUE"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// RentPayment is a single rent installment for a rental
type RentPayment struct {
	bun.BaseModel `bun:"table:rent_payments,alias:pay"`
	ID            uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	RentalID      uuid.UUID     `bun:"rental_id,notnull,type:uuid" json:"rental_id,omitempty"`
	Rental        *Rental       `bun:"rel:belongs-to,join:rental_id=id" json:"rental,omitempty"`
	Amount        float64       `bun:"amount,notnull" json:"amount,omitempty"`
	DueDate       time.Time     `bun:"due_date,notnull" json:"due_date,omitempty"`
	PaidDate      *time.Time    `bun:"paid_date,nullzero" json:"paid_date,omitempty"`
	Status        PaymentStatus `bun:"status,notnull" json:"status,omitempty"`
	LateFee       float64       `bun:"late_fee" json:"late_fee,omitempty"`
	Notes         string        `bun:"notes" json:"notes,omitempty"`
	CreatedAt     *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// FederatedAccount links an external OAuth identity to an Account.
// The federation flow itself lives with the session issuer; we only
// persist the link.
type FederatedAccount struct {
	bun.BaseModel     `bun:"table:federated_accounts,alias:fed"`
	ID                uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AccountID         uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	Provider          string     `bun:"provider,notnull" json:"provider,omitempty"`
	ProviderAccountID string     `bun:"provider_account_id,notnull" json:"provider_account_id,omitempty"`
	AccessToken       string     `bun:"access_token" json:"-"`
	RefreshToken      string     `bun:"refresh_token" json:"-"`
	TokenExpiresAt    *time.Time `bun:"token_expires_at,nullzero" json:"token_expires_at,omitempty"`
	CreatedAt         *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// VerificationToken backs magic-link sign in. Consumed once, expires.
type VerificationToken struct {
	bun.BaseModel `bun:"table:verification_tokens,alias:vtk"`
	Identifier    string    `bun:"identifier,pk" json:"identifier,omitempty"`
	Token         string    `bun:"token,pk" json:"token,omitempty"`
	Expires       time.Time `bun:"expires,notnull" json:"expires,omitempty"`
}
