package rental

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// RegisterAppRoutes mounts the rental application's auth and
// onboarding surface on the given router. The guard middleware is
// expected to be registered app-wide before these routes.
func RegisterAppRoutes[T any](app router.Router[T], opts ...AppControllerOption) {
	controller := NewAppController(opts...)

	app.Post("/api/auth/signup", controller.SignupCreate).SetName("signup.post")

	app.Get("/landlord/login", controller.LoginShow(RoleLandlord)).SetName("landlord.sign-in.get")
	app.Post("/landlord/login", controller.LoginPost(RoleLandlord)).SetName("landlord.sign-in.post")
	app.Get("/tenant/login", controller.LoginShow(RoleTenant)).SetName("tenant.sign-in.get")
	app.Post("/tenant/login", controller.LoginPost(RoleTenant)).SetName("tenant.sign-in.post")
	app.Get("/logout", controller.LogOut).SetName("sign-out.get")

	app.Post("/api/landlord/onboarding", controller.LandlordOnboarding).SetName("landlord.onboarding.post")
	app.Post("/api/tenant/onboarding", controller.TenantOnboarding).SetName("tenant.onboarding.post")

	app.Get("/landlord/dashboard", controller.LandlordDashboard).SetName("landlord.dashboard.get")
	app.Get("/tenant/dashboard", controller.TenantDashboard).SetName("tenant.dashboard.get")
}

type AppControllerViews struct {
	LandlordLogin     string
	TenantLogin       string
	LandlordDashboard string
	TenantDashboard   string
}

type AppController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Guard        HTTPGuard
	Machine      *OnboardingMachine
	Views        *AppControllerViews
	ErrorHandler router.ErrorHandler
}

type AppControllerOption func(*AppController) *AppController

func WithControllerRepo(repo RepositoryManager) AppControllerOption {
	return func(c *AppController) *AppController {
		c.Repo = repo
		return c
	}
}

func WithControllerGuard(guard HTTPGuard) AppControllerOption {
	return func(c *AppController) *AppController {
		c.Guard = guard
		return c
	}
}

func WithControllerMachine(machine *OnboardingMachine) AppControllerOption {
	return func(c *AppController) *AppController {
		c.Machine = machine
		return c
	}
}

func WithControllerLogger(logger Logger) AppControllerOption {
	return func(c *AppController) *AppController {
		c.Logger = logger
		return c
	}
}

func NewAppController(opts ...AppControllerOption) *AppController {
	c := &AppController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Views: &AppControllerViews{
			LandlordLogin:     "landlord_login",
			TenantLogin:       "tenant_login",
			LandlordDashboard: "landlord_dashboard",
			TenantDashboard:   "tenant_dashboard",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in app controller...")
	}

	if c.Guard == nil {
		panic("Missing HTTPGuard in app controller...")
	}

	if c.Machine == nil {
		c.Machine = NewOnboardingMachine(c.Repo)
	}

	return c
}

func defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	code := richErr.Code
	if code == 0 {
		code = fiber.StatusInternalServerError
	}

	return c.JSON(code, map[string]any{
		"error": richErr.Message,
		"code":  richErr.TextCode,
	})
}

// SignupPayload is the registration form/JSON body
type SignupPayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Role     string `form:"role" json:"role"`
}

// Validate will run validation rules
func (r SignupPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.Role, validation.Required, validation.In(string(RoleLandlord), string(RoleTenant))),
	)
}

func (a *AppController) SignupCreate(ctx router.Context) error {
	payload := new(SignupPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("signup parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("signup validate payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error":      "invalid signup payload",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	role, _ := ParseRole(payload.Role)

	register := NewRegisterAccountHandler(a.Repo)
	account, err := register.Execute(ctx.Context(), RegisterAccountMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		Role:     role,
	})
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryConflict {
			return ctx.JSON(fiber.StatusConflict, map[string]any{
				"error": richErr.Message,
				"code":  richErr.TextCode,
			})
		}
		a.Logger.Error("signup execute", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusCreated, map[string]any{
		"id":    account.ID.String(),
		"name":  account.Name,
		"email": account.Email,
		"role":  account.Role,
	})
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Identifier
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// GetExtendedSession will return the extended session flag
func (r LoginRequest) GetExtendedSession() bool {
	return r.RememberMe
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Identifier,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AppController) loginView(role Role) string {
	if role == RoleLandlord {
		return a.Views.LandlordLogin
	}
	return a.Views.TenantLogin
}

func (a *AppController) LoginShow(role Role) router.HandlerFunc {
	return func(ctx router.Context) error {
		return ctx.Render(a.loginView(role), router.ViewContext{
			"errors": nil,
			"record": nil,
		})
	}
}

func (a *AppController) LoginPost(role Role) router.HandlerFunc {
	return func(ctx router.Context) error {
		payload := new(LoginRequest)

		if err := ctx.Bind(payload); err != nil {
			return a.ErrorHandler(ctx, err)
		}

		if err := payload.Validate(); err != nil {
			return ctx.Render(a.loginView(role), router.ViewContext{
				"record":     payload,
				"validation": FormatValidationErrorToMap(err),
			})
		}

		if a.Debug {
			fmt.Println("======= AUTH LOGIN ======")
			fmt.Println(print.MaybePrettyJSON(payload))
			fmt.Println("=========================")
		}

		if err := a.Guard.Login(ctx, payload); err != nil {
			return flash.WithError(ctx, router.ViewContext{
				"error_message": "Authentication Error",
			}).Render(a.loginView(role), router.ViewContext{
				"record": payload,
			})
		}

		redirect := ctx.Query(CallbackParam, role.DashboardPath())

		return ctx.Redirect(redirect, router.StatusSeeOther)
	}
}

func (a *AppController) LogOut(ctx router.Context) error {
	a.Guard.Logout(ctx)
	return ctx.Redirect("/", router.StatusTemporaryRedirect)
}

// LandlordOnboardingPayload is the landlord onboarding body
type LandlordOnboardingPayload struct {
	BusinessName string `form:"business_name" json:"businessName"`
	Phone        string `form:"phone" json:"phone"`
}

// Validate will run validation rules
func (r LandlordOnboardingPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BusinessName, validation.Required, validation.Length(1, 200)),
	)
}

func (a *AppController) LandlordOnboarding(ctx router.Context) error {
	session, ok := GetRouterSession(ctx, SessionLocalsKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrSessionRequired)
	}

	payload := new(LandlordOnboardingPayload)
	if err := ctx.Bind(payload); err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error":      "invalid onboarding payload",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	accountID, err := session.GetAccountUUID()
	if err != nil {
		return a.ErrorHandler(ctx, ErrUnableToMapClaims)
	}

	profile, err := a.Machine.CompleteLandlord(ctx.Context(), accountID, LandlordOnboarding{
		BusinessName: payload.BusinessName,
		Phone:        payload.Phone,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"state":        a.Machine.LandlordState(profile),
		"businessName": profile.BusinessName,
	})
}

// TenantOnboardingPayload is the tenant onboarding body
type TenantOnboardingPayload struct {
	DateOfBirth string `form:"date_of_birth" json:"dateOfBirth"`
	Occupation  string `form:"occupation" json:"occupation"`
	Phone       string `form:"phone" json:"phone"`
}

// Validate will run validation rules
func (r TenantOnboardingPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DateOfBirth, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.Occupation, validation.Required, validation.Length(1, 200)),
	)
}

func (a *AppController) TenantOnboarding(ctx router.Context) error {
	session, ok := GetRouterSession(ctx, SessionLocalsKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrSessionRequired)
	}

	payload := new(TenantOnboardingPayload)
	if err := ctx.Bind(payload); err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error":      "invalid onboarding payload",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	dob, err := time.Parse("2006-01-02", payload.DateOfBirth)
	if err != nil {
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"error": "date of birth must be YYYY-MM-DD",
		})
	}

	accountID, err := session.GetAccountUUID()
	if err != nil {
		return a.ErrorHandler(ctx, ErrUnableToMapClaims)
	}

	profile, err := a.Machine.CompleteTenant(ctx.Context(), accountID, TenantOnboarding{
		DateOfBirth: dob,
		Occupation:  payload.Occupation,
		Phone:       payload.Phone,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"state":      a.Machine.TenantState(profile),
		"occupation": profile.Occupation,
	})
}

func (a *AppController) LandlordDashboard(ctx router.Context) error {
	session, ok := GetRouterSession(ctx, SessionLocalsKey)
	if !ok {
		return ctx.Redirect(RoleLandlord.LoginPath(), router.StatusFound)
	}

	accountID, err := session.GetAccountUUID()
	if err != nil {
		return a.ErrorHandler(ctx, ErrUnableToMapClaims)
	}

	profile, err := a.Repo.LandlordProfiles().GetByAccountID(ctx.Context(), accountID)
	if err != nil && !errors.IsNotFound(err) {
		return a.ErrorHandler(ctx, err)
	}

	state := a.Machine.LandlordState(profile)

	return ctx.Render(a.Views.LandlordDashboard, router.ViewContext{
		"session":         session,
		"profile":         profile,
		"needsOnboarding": state != StateComplete,
	})
}

func (a *AppController) TenantDashboard(ctx router.Context) error {
	session, ok := GetRouterSession(ctx, SessionLocalsKey)
	if !ok {
		return ctx.Redirect(RoleTenant.LoginPath(), router.StatusFound)
	}

	accountID, err := session.GetAccountUUID()
	if err != nil {
		return a.ErrorHandler(ctx, ErrUnableToMapClaims)
	}

	profile, err := a.Repo.TenantProfiles().GetByAccountID(ctx.Context(), accountID)
	if err != nil && !errors.IsNotFound(err) {
		return a.ErrorHandler(ctx, err)
	}

	state := a.Machine.TenantState(profile)

	return ctx.Render(a.Views.TenantDashboard, router.ViewContext{
		"session":         session,
		"profile":         profile,
		"needsOnboarding": state != StateComplete,
	})
}
