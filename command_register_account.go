package rental

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type RegisterAccountMessage struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
	UseHashid bool
}

func (e RegisterAccountMessage) Type() string { return "account.register" }

func (e RegisterAccountMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Name, validation.Required),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&e.Role, validation.Required, validation.By(func(value any) error {
			role, ok := value.(Role)
			if !ok || !role.IsValid() {
				return validation.NewError("validation_role", "must be LANDLORD or TENANT")
			}
			return nil
		})),
	)
}

// RegisterAccountHandler creates an account together with its
// role-matching profile in a single transaction. Either both rows
// land or neither does.
type RegisterAccountHandler struct {
	repo RepositoryManager
}

func NewRegisterAccountHandler(repo RepositoryManager) *RegisterAccountHandler {
	return &RegisterAccountHandler{repo: repo}
}

func (h *RegisterAccountHandler) Execute(ctx context.Context, event RegisterAccountMessage) (*Account, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterAccountHandler) execute(ctx context.Context, event RegisterAccountMessage) (*Account, error) {
	if err := event.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithCode(goerrors.CodeBadRequest)
	}

	account := &Account{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		account.PasswordHash = hash
		account.Name = event.Name
		account.Email = NormalizeEmail(event.Email)
		account.Role = event.Role
		if event.UseHashid {
			if id, err := hashid.NewUUID(account.Email); err == nil {
				account.ID = id
			}
		}

		if account, err = h.repo.Accounts().RegisterTx(ctx, tx, account); err != nil {
			if IsUniqueViolation(err) {
				return ErrDuplicateEmail.WithMetadata(map[string]any{
					"email": account.Email,
				})
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create account")
		}

		switch account.Role {
		case RoleLandlord:
			profile := &LandlordProfile{AccountID: account.ID}
			if _, err := h.repo.LandlordProfiles().CreateTx(ctx, tx, profile); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create landlord profile")
			}
		case RoleTenant:
			profile := &TenantProfile{AccountID: account.ID}
			if _, err := h.repo.TenantProfiles().CreateTx(ctx, tx, profile); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create tenant profile")
			}
		default:
			return goerrors.New("unsupported account role", goerrors.CategoryValidation).
				WithMetadata(map[string]any{"role": account.Role})
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "account registration transaction failed")
	}

	return account, nil
}
