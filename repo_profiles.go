package rental

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LandlordProfiles stores the landlord variant of the role profile
type LandlordProfiles interface {
	repository.Repository[*LandlordProfile]

	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*LandlordProfile, error)
	GetByAccountIDTx(ctx context.Context, tx bun.IDB, accountID uuid.UUID) (*LandlordProfile, error)
}

// TenantProfiles stores the tenant variant of the role profile
type TenantProfiles interface {
	repository.Repository[*TenantProfile]

	GetByAccountID(ctx context.Context, accountID uuid.UUID) (*TenantProfile, error)
	GetByAccountIDTx(ctx context.Context, tx bun.IDB, accountID uuid.UUID) (*TenantProfile, error)
}

type landlordProfiles struct {
	repository.Repository[*LandlordProfile]
	db *bun.DB
}

type tenantProfiles struct {
	repository.Repository[*TenantProfile]
	db *bun.DB
}

var (
	_ LandlordProfiles = (*landlordProfiles)(nil)
	_ TenantProfiles   = (*tenantProfiles)(nil)
)

// NewLandlordProfilesRepository builds the landlord profile repository
func NewLandlordProfilesRepository(db *bun.DB) LandlordProfiles {
	repo := repository.NewRepository[*LandlordProfile](db, repository.ModelHandlers[*LandlordProfile]{
		NewRecord: func() *LandlordProfile { return &LandlordProfile{} },
		GetID: func(p *LandlordProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *LandlordProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "user_id"
		},
	})

	return &landlordProfiles{
		Repository: repo,
		db:         db,
	}
}

// NewTenantProfilesRepository builds the tenant profile repository
func NewTenantProfilesRepository(db *bun.DB) TenantProfiles {
	repo := repository.NewRepository[*TenantProfile](db, repository.ModelHandlers[*TenantProfile]{
		NewRecord: func() *TenantProfile { return &TenantProfile{} },
		GetID: func(p *TenantProfile) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *TenantProfile, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "user_id"
		},
	})

	return &tenantProfiles{
		Repository: repo,
		db:         db,
	}
}

func (r *landlordProfiles) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*LandlordProfile, error) {
	return r.GetByAccountIDTx(ctx, r.db, accountID)
}

func (r *landlordProfiles) GetByAccountIDTx(ctx context.Context, tx bun.IDB, accountID uuid.UUID) (*LandlordProfile, error) {
	record := &LandlordProfile{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", accountID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"account_id": accountID.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

func (r *tenantProfiles) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*TenantProfile, error) {
	return r.GetByAccountIDTx(ctx, r.db, accountID)
}

func (r *tenantProfiles) GetByAccountIDTx(ctx context.Context, tx bun.IDB, accountID uuid.UUID) (*TenantProfile, error) {
	record := &TenantProfile{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.user_id = ?", accountID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"account_id": accountID.String(),
				})
		}
		return nil, err
	}

	return record, nil
}
