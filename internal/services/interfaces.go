package services

import (
	"context"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Use validator request types
type TeacherSignUpRequest = validator.TeacherSignUpRequest
type DonorSignUpRequest = validator.DonorSignUpRequest

// ===== SERVICE INTERFACES =====

// AccountService owns the registration, verification, sign-in and
// password-reset workflows. Operations always return a result struct with
// a user-facing message; internal failures never escape as errors.
type AccountService interface {
	RegisterTeacher(ctx context.Context, req *TeacherSignUpRequest) *models.RegisterResult
	RegisterDonor(ctx context.Context, req *DonorSignUpRequest) *models.RegisterResult

	// SignIn searches teachers before donors and requires an exact
	// email+password match on a verified account.
	SignIn(ctx context.Context, email, password string) *models.SignInResult

	// Verify activates the account in the given role collection when the
	// submitted code matches the stored one.
	Verify(ctx context.Context, email string, role models.Role, code string) *models.VerifyResult

	RequestPasswordReset(ctx context.Context, email string) *models.ResetRequestResult
	ResetPassword(ctx context.Context, email, code, newPassword string) *models.ResetResult
}

// DirectoryService serves the public listing pages.
type DirectoryService interface {
	List(ctx context.Context, role models.Role, page, size int) (*DirectoryPage, error)
	ExportRoster(ctx context.Context, role models.Role) ([]byte, error)
}

type DirectoryPage struct {
	Profiles []models.PublicProfile `json:"profiles"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	Size     int                    `json:"size"`
}

// SessionManager owns the authenticated flag. Consumers receive it by
// injection instead of reading shared storage ad hoc.
type SessionManager interface {
	Login(ctx context.Context, role models.Role, email string) error
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*Session, error)
}

// Session describes the signed-in principal. Nil is returned when nobody
// is signed in.
type Session struct {
	Role  models.Role `json:"role"`
	Email string      `json:"email"`
}
