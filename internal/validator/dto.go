package validator

import (
	"github.com/SAP-F-2025/account-service/internal/models"
)

// TeacherSignUpRequest carries the teacher profile fields and password; the
// verification fields are generated server-side, never accepted from input.
type TeacherSignUpRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Region      string `json:"region" validate:"required"`
	City        string `json:"city" validate:"required"`
	School      string `json:"school" validate:"required"`
	Grade       string `json:"grade" validate:"required"`
}

// DonorSignUpRequest carries the donor profile fields and password.
type DonorSignUpRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
	Country     string `json:"country" validate:"required"`
	Region      string `json:"region" validate:"required"`
	City        string `json:"city" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyAccountRequest struct {
	Email            string      `json:"email" validate:"required,email"`
	Role             models.Role `json:"role" validate:"required,oneof=teacher donor"`
	VerificationCode string      `json:"verificationCode" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email            string `json:"email" validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required"`
	NewPassword      string `json:"newPassword" validate:"required"`
}

// ValidateNewAccount validates a fully built record (generated code
// included) against the role schema before it is persisted.
func (v *Validator) ValidateNewAccount(role models.Role, account *models.Account) ValidationErrors {
	errs := v.Validate(account)

	// A pending record must carry a well-formed code and an unverified
	// status.
	errs = append(errs, v.ValidateVar("verificationCode", account.VerificationCode, "required,verification_code")...)
	if account.VerificationStatus {
		errs = append(errs, ValidationError{
			Field:   "verificationStatus",
			Message: "must be false at creation",
			Rule:    "eq=false",
		})
	}

	for _, field := range roleRequiredFields(role, account) {
		if field.value == "" {
			errs = append(errs, ValidationError{
				Field:   field.name,
				Message: "is required",
				Rule:    "required",
			})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type requiredField struct {
	name  string
	value string
}

func roleRequiredFields(role models.Role, a *models.Account) []requiredField {
	if role == models.RoleTeacher {
		return []requiredField{
			{"region", a.Region},
			{"city", a.City},
			{"school", a.School},
			{"grade", a.Grade},
		}
	}
	return []requiredField{
		{"country", a.Country},
		{"region", a.Region},
		{"city", a.City},
	}
}
