package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"clubhub/internal/rbac"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Register custom validation tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	for tag, fn := range map[string]playgroundvalidator.Func{
		"club_role":         validateClubRole,
		"club_module":       validateClubModule,
		"permission_level":  validatePermissionLevel,
		"provider_type":     validateProviderType,
		"invite_status":     validateInviteStatus,
		"newsletter_status": validateNewsletterStatus,
		"lead_status":       validateLeadStatus,
		"contract_status":   validateContractStatus,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil
		}
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateClubRole(fl playgroundvalidator.FieldLevel) bool {
	return rbac.IsValidRole(rbac.Role(fl.Field().String()))
}

func validateClubModule(fl playgroundvalidator.FieldLevel) bool {
	return rbac.IsValidModule(rbac.Module(fl.Field().String()))
}

func validatePermissionLevel(fl playgroundvalidator.FieldLevel) bool {
	return rbac.IsValidLevel(rbac.Level(fl.Field().String()))
}

func validateProviderType(fl playgroundvalidator.FieldLevel) bool {
	t := fl.Field().String()
	return t == rbac.ProviderTypeTravel || t == rbac.ProviderTypeCamp || t == rbac.ProviderTypeEquipment
}

func validateInviteStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "PENDING" || status == "ACCEPTED" || status == "REJECTED"
}

func validateNewsletterStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "DRAFT" || status == "SCHEDULED" || status == "SENT" || status == "FAILED"
}

func validateLeadStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "OPEN" || status == "CONTACTED" || status == "WON" || status == "LOST"
}

func validateContractStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "DRAFT" || status == "ACTIVE" || status == "EXPIRED"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// LoginRequest accepts either an email address or a club login name; the
// resolver decides which it is.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ActiveRoleRequest struct {
	Role string `json:"role" validate:"required,club_role"`
}

type MemberInviteRequest struct {
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name" validate:"required"`
	Roles     []string  `json:"roles" validate:"required,min=1,dive,club_role"`
	ExpiresAt time.Time `json:"expiresAt" validate:"required,gt"`
}

type AcceptInviteRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type PasswordResetRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type PasswordResetConfirmRequest struct {
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type MatrixOverrideRequest struct {
	Role   string `json:"role" validate:"required,club_role"`
	Module string `json:"module" validate:"required,club_module"`
	Level  string `json:"level" validate:"required,permission_level"`
}

type SMTPSettingsRequest struct {
	Host     string `json:"host" validate:"required,hostname"`
	Port     int    `json:"port" validate:"required,min=1,max=65535"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	From     string `json:"from" validate:"required,email"`
}
