package rental

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	LandlordProfiles() LandlordProfiles
	TenantProfiles() TenantProfiles
	Properties() repository.Repository[*Property]
	Rentals() repository.Repository[*Rental]
	RentPayments() repository.Repository[*RentPayment]
	FederatedAccounts() FederatedAccounts
}

func NewPropertiesRepository(db *bun.DB) repository.Repository[*Property] {
	handlers := repository.ModelHandlers[*Property]{
		NewRecord: func() *Property {
			return &Property{}
		},
		GetID: func(record *Property) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Property, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "address"
		},
	}
	return repository.NewRepository(db, handlers)
}

func NewRentalsRepository(db *bun.DB) repository.Repository[*Rental] {
	handlers := repository.ModelHandlers[*Rental]{
		NewRecord: func() *Rental {
			return &Rental{}
		},
		GetID: func(record *Rental) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *Rental, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
	}
	return repository.NewRepository(db, handlers)
}

func NewRentPaymentsRepository(db *bun.DB) repository.Repository[*RentPayment] {
	handlers := repository.ModelHandlers[*RentPayment]{
		NewRecord: func() *RentPayment {
			return &RentPayment{}
		},
		GetID: func(record *RentPayment) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *RentPayment, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
	}
	return repository.NewRepository(db, handlers)
}

type mngr struct {
	db                *bun.DB
	accounts          Accounts
	landlordProfiles  LandlordProfiles
	tenantProfiles    TenantProfiles
	properties        repository.Repository[*Property]
	rentals           repository.Repository[*Rental]
	rentPayments      repository.Repository[*RentPayment]
	federatedAccounts FederatedAccounts
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:                db,
		accounts:          NewAccountsRepository(db),
		landlordProfiles:  NewLandlordProfilesRepository(db),
		tenantProfiles:    NewTenantProfilesRepository(db),
		properties:        NewPropertiesRepository(db),
		rentals:           NewRentalsRepository(db),
		rentPayments:      NewRentPaymentsRepository(db),
		federatedAccounts: NewFederatedAccountsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.landlordProfiles == nil {
		return errors.New("repository landlordProfiles should be initialized")
	}

	if m.tenantProfiles == nil {
		return errors.New("repository tenantProfiles should be initialized")
	}

	if m.properties == nil {
		return errors.New("repository properties should be initialized")
	}

	if m.rentals == nil {
		return errors.New("repository rentals should be initialized")
	}

	if m.rentPayments == nil {
		return errors.New("repository rentPayments should be initialized")
	}

	if m.federatedAccounts == nil {
		return errors.New("repository federatedAccounts should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Accounts() Accounts {
	return m.accounts
}

func (m mngr) LandlordProfiles() LandlordProfiles {
	return m.landlordProfiles
}

func (m mngr) TenantProfiles() TenantProfiles {
	return m.tenantProfiles
}

func (m mngr) Properties() repository.Repository[*Property] {
	return m.properties
}

func (m mngr) Rentals() repository.Repository[*Rental] {
	return m.rentals
}

func (m mngr) RentPayments() repository.Repository[*RentPayment] {
	return m.rentPayments
}

func (m mngr) FederatedAccounts() FederatedAccounts {
	return m.federatedAccounts
}
