package rental

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountState is the derived lifecycle state of an account. There is
// no stored flag to desync: state is recomputed from the role profile's
// completeness predicate on every read.
type AccountState string

const (
	// StateUnregistered means no account exists yet
	StateUnregistered AccountState = "unregistered"
	// StateIncomplete means the account exists but its role profile is
	// missing required onboarding fields
	StateIncomplete AccountState = "registered_incomplete"
	// StateComplete is terminal: later profile edits are plain
	// mutations, not transitions
	StateComplete AccountState = "registered_complete"
)

// MinimumTenantAge is the age gate for tenant onboarding
const MinimumTenantAge = 18

// LandlordOnboarding is the input completing a landlord profile
type LandlordOnboarding struct {
	BusinessName string
	Phone        string
}

// TenantOnboarding is the input completing a tenant profile
type TenantOnboarding struct {
	DateOfBirth time.Time
	Occupation  string
	Phone       string
}

// OnboardingMachine drives the registered-incomplete to
// registered-complete transition for both role variants.
type OnboardingMachine struct {
	repo   RepositoryManager
	now    func() time.Time
	logger Logger
}

// OnboardingOption customizes machine construction
type OnboardingOption func(*OnboardingMachine)

// WithOnboardingClock injects a custom clock (useful for tests)
func WithOnboardingClock(clock func() time.Time) OnboardingOption {
	return func(m *OnboardingMachine) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithOnboardingLogger overrides the machine's logger
func WithOnboardingLogger(logger Logger) OnboardingOption {
	return func(m *OnboardingMachine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewOnboardingMachine returns the machine backed by the provided repositories
func NewOnboardingMachine(repo RepositoryManager, opts ...OnboardingOption) *OnboardingMachine {
	m := &OnboardingMachine{
		repo:   repo,
		now:    time.Now,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// LandlordState derives the current state from the profile
func (m *OnboardingMachine) LandlordState(p *LandlordProfile) AccountState {
	if p == nil {
		return StateUnregistered
	}
	if p.IsComplete() {
		return StateComplete
	}
	return StateIncomplete
}

// TenantState derives the current state from the profile
func (m *OnboardingMachine) TenantState(p *TenantProfile) AccountState {
	if p == nil {
		return StateUnregistered
	}
	if p.IsComplete() {
		return StateComplete
	}
	return StateIncomplete
}

// CompleteLandlord validates and persists the landlord onboarding
// transition. The optional phone never blocks the transition.
func (m *OnboardingMachine) CompleteLandlord(ctx context.Context, accountID uuid.UUID, input LandlordOnboarding) (*LandlordProfile, error) {
	businessName := strings.TrimSpace(input.BusinessName)
	if businessName == "" {
		return nil, goerrors.New("business name is required", goerrors.CategoryValidation).
			WithTextCode("BUSINESS_NAME_REQUIRED").
			WithCode(goerrors.CodeBadRequest)
	}

	var profile *LandlordProfile

	err := m.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing, err := m.repo.LandlordProfiles().GetByAccountIDTx(ctx, tx, accountID)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrProfileNotFound.WithMetadata(map[string]any{
					"account_id": accountID.String(),
				})
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load landlord profile")
		}

		existing.BusinessName = &businessName
		if profile, err = m.repo.LandlordProfiles().UpdateTx(ctx, tx, existing); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update landlord profile")
		}

		return m.updateAccountPhone(ctx, tx, accountID, input.Phone)
	})

	if err != nil {
		return nil, asRichError(err)
	}

	return profile, nil
}

// CompleteTenant validates and persists the tenant onboarding
// transition, enforcing the age gate against the machine's clock.
func (m *OnboardingMachine) CompleteTenant(ctx context.Context, accountID uuid.UUID, input TenantOnboarding) (*TenantProfile, error) {
	occupation := strings.TrimSpace(input.Occupation)
	if occupation == "" {
		return nil, goerrors.New("occupation is required", goerrors.CategoryValidation).
			WithTextCode("OCCUPATION_REQUIRED").
			WithCode(goerrors.CodeBadRequest)
	}

	if input.DateOfBirth.IsZero() {
		return nil, goerrors.New("date of birth is required", goerrors.CategoryValidation).
			WithTextCode("DATE_OF_BIRTH_REQUIRED").
			WithCode(goerrors.CodeBadRequest)
	}

	if age := AgeAt(input.DateOfBirth, m.now()); age < MinimumTenantAge {
		return nil, ErrUnderage.WithMetadata(map[string]any{
			"age": age,
		})
	}

	var profile *TenantProfile
	birthDate := input.DateOfBirth

	err := m.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing, err := m.repo.TenantProfiles().GetByAccountIDTx(ctx, tx, accountID)
		if err != nil {
			if goerrors.IsNotFound(err) {
				return ErrProfileNotFound.WithMetadata(map[string]any{
					"account_id": accountID.String(),
				})
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load tenant profile")
		}

		existing.DateOfBirth = &birthDate
		existing.Occupation = &occupation
		if profile, err = m.repo.TenantProfiles().UpdateTx(ctx, tx, existing); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update tenant profile")
		}

		return m.updateAccountPhone(ctx, tx, accountID, input.Phone)
	})

	if err != nil {
		return nil, asRichError(err)
	}

	return profile, nil
}

func (m *OnboardingMachine) updateAccountPhone(ctx context.Context, tx bun.Tx, accountID uuid.UUID, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}

	if err := m.repo.Accounts().UpdatePhoneTx(ctx, tx, accountID, NormalizePhone(phone)); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update account phone")
	}
	return nil
}

// AgeAt computes age in whole years at the reference time, decrementing
// when the (month, day) pair has not come around yet.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}

func asRichError(err error) *goerrors.Error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "onboarding transaction failed")
}
