package services

import (
	"fmt"

	"github.com/SAP-F-2025/account-service/internal/models"
)

// Typed failures of the account workflows. All of them are converted into
// result structs at the operation boundary; none cross it as raw errors.

// ConflictError reports a duplicate email inside one role collection.
type ConflictError struct {
	Role  models.Role
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s account with email %s already exists", e.Role, e.Email)
}

// NotFoundError reports that no account matched the lookup.
type NotFoundError struct {
	Email string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no account found for %s", e.Email)
}

// CredentialMismatchError reports a wrong password or a wrong code.
type CredentialMismatchError struct {
	Field string // "password", "verificationCode" or "resetCode"
}

func (e *CredentialMismatchError) Error() string {
	return fmt.Sprintf("submitted %s does not match", e.Field)
}

// UnverifiedAccountError blocks sign-in for a pending account. The stored
// verification code rides along as a recovery aid since there is no real
// delivery channel.
type UnverifiedAccountError struct {
	Role             models.Role
	VerificationCode string
}

func (e *UnverifiedAccountError) Error() string {
	return fmt.Sprintf("%s account is not verified", e.Role)
}
