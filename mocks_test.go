package rental_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	rental "github.com/goliatone/go-rental"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// testConfig implements rental.Config for token and guard tests
type testConfig struct {
	signingKey      string
	contextKey      string
	tokenExpiration int
	extendedTokens  int
	issuer          string
	audience        []string
}

func (c testConfig) GetSigningKey() string        { return c.signingKey }
func (c testConfig) GetContextKey() string        { return c.contextKey }
func (c testConfig) GetTokenExpiration() int      { return c.tokenExpiration }
func (c testConfig) GetExtendedTokenDuration() int { return c.extendedTokens }
func (c testConfig) GetIssuer() string            { return c.issuer }
func (c testConfig) GetAudience() []string        { return c.audience }

func testAuther(t *testing.T, signingKey, issuer string) *rental.Auther {
	t.Helper()
	return rental.NewAuthenticator(nil, testConfig{
		signingKey:      signingKey,
		contextKey:      "session",
		tokenExpiration: 24,
		issuer:          issuer,
	})
}

func repositoryNotFound() error {
	return repository.NewRecordNotFound()
}

func requireRichError(t *testing.T, err error) *goerrors.Error {
	t.Helper()
	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr), "expected a rich error, got %T: %v", err, err)
	return richErr
}

// MockRepositoryManager implements rental.RepositoryManager. RunInTx
// runs the callback inline with a zero transaction so command logic is
// exercised without a database.
type MockRepositoryManager struct {
	mock.Mock
	AccountsRepo         *MockAccounts
	LandlordProfilesRepo *MockLandlordProfiles
	TenantProfilesRepo   *MockTenantProfiles
	TxErr                error
}

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{
		AccountsRepo:         &MockAccounts{},
		LandlordProfilesRepo: &MockLandlordProfiles{},
		TenantProfilesRepo:   &MockTenantProfiles{},
	}
}

func (m *MockRepositoryManager) Validate() error { return nil }
func (m *MockRepositoryManager) MustValidate()   {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	if m.TxErr != nil {
		return m.TxErr
	}
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Accounts() rental.Accounts {
	return m.AccountsRepo
}

func (m *MockRepositoryManager) LandlordProfiles() rental.LandlordProfiles {
	return m.LandlordProfilesRepo
}

func (m *MockRepositoryManager) TenantProfiles() rental.TenantProfiles {
	return m.TenantProfilesRepo
}

func (m *MockRepositoryManager) Properties() repository.Repository[*rental.Property] {
	return nil
}

func (m *MockRepositoryManager) Rentals() repository.Repository[*rental.Rental] {
	return nil
}

func (m *MockRepositoryManager) RentPayments() repository.Repository[*rental.RentPayment] {
	return nil
}

func (m *MockRepositoryManager) FederatedAccounts() rental.FederatedAccounts {
	return nil
}

// MockAccounts implements rental.Accounts for the methods tests touch.
// The embedded interface panics on anything unmocked, which is what we
// want: an unexpected repository call is a test failure.
type MockAccounts struct {
	mock.Mock
	rental.Accounts
}

func (m *MockAccounts) Register(ctx context.Context, account *rental.Account) (*rental.Account, error) {
	args := m.Called(ctx, account)
	var record *rental.Account
	if v := args.Get(0); v != nil {
		record = v.(*rental.Account)
	}
	return record, args.Error(1)
}

func (m *MockAccounts) RegisterTx(ctx context.Context, tx bun.IDB, account *rental.Account) (*rental.Account, error) {
	args := m.Called(ctx, tx, account)
	var record *rental.Account
	if v := args.Get(0); v != nil {
		record = v.(*rental.Account)
	}
	return record, args.Error(1)
}

func (m *MockAccounts) GetByEmail(ctx context.Context, email string) (*rental.Account, error) {
	args := m.Called(ctx, email)
	var record *rental.Account
	if v := args.Get(0); v != nil {
		record = v.(*rental.Account)
	}
	return record, args.Error(1)
}

func (m *MockAccounts) TrackAttemptedLogin(ctx context.Context, account *rental.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccounts) TrackSuccessfulLogin(ctx context.Context, account *rental.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccounts) UpdatePhoneTx(ctx context.Context, tx bun.IDB, id uuid.UUID, phone string) error {
	args := m.Called(ctx, tx, id, phone)
	return args.Error(0)
}

// MockLandlordProfiles implements rental.LandlordProfiles
type MockLandlordProfiles struct {
	mock.Mock
	rental.LandlordProfiles
}

func (m *MockLandlordProfiles) CreateTx(ctx context.Context, tx bun.IDB, record *rental.LandlordProfile, criteria ...repository.InsertCriteria) (*rental.LandlordProfile, error) {
	args := m.Called(ctx, tx, record)
	var out *rental.LandlordProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.LandlordProfile)
	}
	return out, args.Error(1)
}

func (m *MockLandlordProfiles) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*rental.LandlordProfile, error) {
	args := m.Called(ctx, accountID)
	var out *rental.LandlordProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.LandlordProfile)
	}
	return out, args.Error(1)
}

func (m *MockLandlordProfiles) GetByAccountIDTx(ctx context.Context, tx bun.IDB, accountID uuid.UUID) (*rental.LandlordProfile, error) {
	args := m.Called(ctx, tx, accountID)
	var out *rental.LandlordProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.LandlordProfile)
	}
	return out, args.Error(1)
}

func (m *MockLandlordProfiles) UpdateTx(ctx context.Context, tx bun.IDB, record *rental.LandlordProfile, criteria ...repository.UpdateCriteria) (*rental.LandlordProfile, error) {
	args := m.Called(ctx, tx, record)
	var out *rental.LandlordProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.LandlordProfile)
	}
	return out, args.Error(1)
}

// MockTenantProfiles implements rental.TenantProfiles
type MockTenantProfiles struct {
	mock.Mock
	rental.TenantProfiles
}

func (m *MockTenantProfiles) CreateTx(ctx context.Context, tx bun.IDB, record *rental.TenantProfile, criteria ...repository.InsertCriteria) (*rental.TenantProfile, error) {
	args := m.Called(ctx, tx, record)
	var out *rental.TenantProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.TenantProfile)
	}
	return out, args.Error(1)
}

func (m *MockTenantProfiles) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*rental.TenantProfile, error) {
	args := m.Called(ctx, accountID)
	var out *rental.TenantProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.TenantProfile)
	}
	return out, args.Error(1)
}

func (m *MockTenantProfiles) GetByAccountIDTx(ctx context.Context, tx bun.IDB, accountID uuid.UUID) (*rental.TenantProfile, error) {
	args := m.Called(ctx, tx, accountID)
	var out *rental.TenantProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.TenantProfile)
	}
	return out, args.Error(1)
}

func (m *MockTenantProfiles) UpdateTx(ctx context.Context, tx bun.IDB, record *rental.TenantProfile, criteria ...repository.UpdateCriteria) (*rental.TenantProfile, error) {
	args := m.Called(ctx, tx, record)
	var out *rental.TenantProfile
	if v := args.Get(0); v != nil {
		out = v.(*rental.TenantProfile)
	}
	return out, args.Error(1)
}

// testSession is a minimal rental.Session for guard tests
type testSession struct {
	id    string
	role  rental.Role
	email string
	name  string
}

func (s testSession) GetAccountID() string { return s.id }

func (s testSession) GetAccountUUID() (uuid.UUID, error) {
	return uuid.Parse(s.id)
}

func (s testSession) GetRole() rental.Role      { return s.role }
func (s testSession) GetEmail() string          { return s.email }
func (s testSession) GetName() string           { return s.name }
func (s testSession) GetIssuedAt() *time.Time   { return nil }
func (s testSession) GetExpiration() *time.Time { return nil }
