package rental

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FederatedAccounts persists OAuth provider links and magic-link
// verification tokens. The federation handshake itself belongs to the
// external session issuer; we only store its artifacts.
type FederatedAccounts interface {
	FindByProviderID(ctx context.Context, provider, providerAccountID string) (*FederatedAccount, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*FederatedAccount, error)
	Upsert(ctx context.Context, link *FederatedAccount) error
	UpsertTx(ctx context.Context, tx bun.IDB, link *FederatedAccount) error

	IssueVerificationToken(ctx context.Context, identifier string, ttl time.Duration) (*VerificationToken, error)
	ConsumeVerificationToken(ctx context.Context, identifier, token string) (*VerificationToken, error)
}

type federatedAccounts struct {
	db  *bun.DB
	now func() time.Time
}

var _ FederatedAccounts = (*federatedAccounts)(nil)

// NewFederatedAccountsRepository creates the repository
func NewFederatedAccountsRepository(db *bun.DB) FederatedAccounts {
	return &federatedAccounts{db: db, now: time.Now}
}

func (r *federatedAccounts) FindByProviderID(ctx context.Context, provider, providerAccountID string) (*FederatedAccount, error) {
	record := &FederatedAccount{}
	err := r.db.NewSelect().
		Model(record).
		Where("provider = ? AND provider_account_id = ?", provider, providerAccountID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound.WithMetadata(map[string]any{
				"provider": provider,
			})
		}
		return nil, err
	}
	return record, nil
}

func (r *federatedAccounts) FindByAccountID(ctx context.Context, accountID uuid.UUID) ([]*FederatedAccount, error) {
	var records []FederatedAccount
	err := r.db.NewSelect().
		Model(&records).
		Where("user_id = ?", accountID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return []*FederatedAccount{}, nil
		}
		return nil, err
	}

	links := make([]*FederatedAccount, len(records))
	for i := range records {
		links[i] = &records[i]
	}
	return links, nil
}

func (r *federatedAccounts) Upsert(ctx context.Context, link *FederatedAccount) error {
	return r.UpsertTx(ctx, r.db, link)
}

func (r *federatedAccounts) UpsertTx(ctx context.Context, tx bun.IDB, link *FederatedAccount) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	now := r.now()
	link.UpdatedAt = &now

	_, err := tx.NewInsert().
		Model(link).
		On("CONFLICT (provider, provider_account_id) DO UPDATE").
		Set("access_token = EXCLUDED.access_token").
		Set("refresh_token = EXCLUDED.refresh_token").
		Set("token_expires_at = EXCLUDED.token_expires_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (r *federatedAccounts) IssueVerificationToken(ctx context.Context, identifier string, ttl time.Duration) (*VerificationToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to generate verification token")
	}

	record := &VerificationToken{
		Identifier: NormalizeEmail(identifier),
		Token:      hex.EncodeToString(raw),
		Expires:    r.now().Add(ttl),
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// ConsumeVerificationToken deletes the token as it reads it so a
// magic link works at most once. Expired tokens are rejected.
func (r *federatedAccounts) ConsumeVerificationToken(ctx context.Context, identifier, token string) (*VerificationToken, error) {
	record := &VerificationToken{}
	err := r.db.NewSelect().
		Model(record).
		Where("identifier = ? AND token = ?", NormalizeEmail(identifier), token).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTokenMalformed
		}
		return nil, err
	}

	if _, err := r.db.NewDelete().
		Model((*VerificationToken)(nil)).
		Where("identifier = ? AND token = ?", record.Identifier, record.Token).
		Exec(ctx); err != nil {
		return nil, err
	}

	if record.Expires.Before(r.now()) {
		return nil, ErrTokenExpired
	}

	return record, nil
}
