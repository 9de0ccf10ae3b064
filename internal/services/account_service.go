package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/SAP-F-2025/account-service/internal/events"
	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
	"github.com/SAP-F-2025/account-service/internal/validator"
)

// User-facing messages. Kept byte-for-byte stable: clients and tests match
// on them, and sign-in deliberately does not reveal which credential was
// wrong.
const (
	msgEmailInUse      = "Email already in use"
	msgInvalidInput    = "Invalid input data"
	msgUserNotFound    = "User not found"
	msgInvalidCode     = "Invalid verification code"
	msgVerified        = "Account verified successfully"
	msgVerifyAccount   = "Please verify your account"
	msgInvalidSignIn   = "Invalid email or password"
	msgEmailNotFound   = "Email not found"
	msgInvalidReset    = "Invalid email or verification code"
	msgPasswordReset   = "Password reset successfully"
	msgSignUpFailed    = "An error occurred during sign-up"
	msgSignInFailed    = "An error occurred during sign-in"
	msgResetReqFailed  = "An error occurred during password reset request"
	msgResetFailed     = "An error occurred during password reset"
	redirectVerifyPage = "/verify-account"
	redirectSignInPage = "/sign-in"
)

type accountService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	// latency mimics a network round-trip before the store is consulted.
	latency time.Duration
}

func NewAccountService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
	latency time.Duration,
) AccountService {
	return &accountService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
		latency:   latency,
	}
}

// generateCode issues a 4-digit numeric code, 1000-9999.
func generateCode() string {
	return fmt.Sprintf("%d", 1000+rand.IntN(9000))
}

// simulateLatency blocks for the configured delay, honoring cancellation.
func (s *accountService) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ===== REGISTRATION =====

func (s *accountService) RegisterTeacher(ctx context.Context, req *TeacherSignUpRequest) *models.RegisterResult {
	account := &models.Account{
		AccountBase: models.AccountBase{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
		},
		Region: req.Region,
		City:   req.City,
		School: req.School,
		Grade:  req.Grade,
	}
	return s.register(ctx, models.RoleTeacher, account)
}

func (s *accountService) RegisterDonor(ctx context.Context, req *DonorSignUpRequest) *models.RegisterResult {
	account := &models.Account{
		AccountBase: models.AccountBase{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
		},
		Country: req.Country,
		Region:  req.Region,
		City:    req.City,
	}
	return s.register(ctx, models.RoleDonor, account)
}

func (s *accountService) register(ctx context.Context, role models.Role, account *models.Account) *models.RegisterResult {
	// A fresh record always starts unverified with an issued code.
	account.VerificationStatus = false
	account.VerificationCode = generateCode()

	if err := s.doRegister(ctx, role, account); err != nil {
		return s.registerFailure(role, account.Email, err)
	}

	s.publish(ctx, events.EventAccountRegistered, &events.AccountEvent{Email: account.Email, Role: role})
	s.publish(ctx, events.EventVerificationCodeIssued, &events.CodeIssuedEvent{
		Email: account.Email,
		Role:  role,
		Code:  account.VerificationCode,
	})

	s.logger.Info("account registered", "role", role, "email", account.Email)
	return &models.RegisterResult{
		Success: true,
		Message: fmt.Sprintf("%s signed up successfully. Please verify your account. Your verification code is %s",
			roleTitle(role), account.VerificationCode),
		RedirectTo: redirectVerifyPage,
		Role:       role,
	}
}

func (s *accountService) doRegister(ctx context.Context, role models.Role, account *models.Account) error {
	if errs := s.validator.ValidateNewAccount(role, account); len(errs) > 0 {
		return errs
	}

	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	accounts := s.repo.Accounts(role)
	exists, err := accounts.ExistsByEmail(ctx, account.Email)
	if err != nil {
		return err
	}
	if exists {
		return &ConflictError{Role: role, Email: account.Email}
	}

	return accounts.Insert(ctx, account)
}

func (s *accountService) registerFailure(role models.Role, email string, err error) *models.RegisterResult {
	var conflict *ConflictError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &conflict):
		return &models.RegisterResult{Success: false, Message: msgEmailInUse}
	case errors.As(err, &validationErrs):
		s.logger.Warn("registration rejected", "role", role, "email", email, "error", err)
		return &models.RegisterResult{Success: false, Message: msgInvalidInput}
	default:
		s.logger.Error("registration failed", "role", role, "email", email, "error", err)
		return &models.RegisterResult{Success: false, Message: msgSignUpFailed}
	}
}

// ===== SIGN-IN =====

func (s *accountService) SignIn(ctx context.Context, email, password string) *models.SignInResult {
	account, role, err := s.authenticate(ctx, email, password)
	if err != nil {
		return s.signInFailure(email, err)
	}

	s.logger.Info("account signed in", "role", role, "email", account.Email)
	return &models.SignInResult{
		Success: true,
		Message: fmt.Sprintf("%s signed in successfully", roleTitle(role)),
		Role:    role,
	}
}

// authenticate checks the teacher collection before the donor collection
// and requires exact email+password equality.
func (s *accountService) authenticate(ctx context.Context, email, password string) (*models.Account, models.Role, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, "", err
	}

	for _, role := range []models.Role{models.RoleTeacher, models.RoleDonor} {
		account, err := s.repo.Accounts(role).FindByCredentials(ctx, email, password)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				continue
			}
			return nil, "", err
		}

		if !account.Verified() {
			return nil, "", &UnverifiedAccountError{
				Role:             role,
				VerificationCode: account.VerificationCode,
			}
		}
		return account, role, nil
	}

	return nil, "", &NotFoundError{Email: email}
}

func (s *accountService) signInFailure(email string, err error) *models.SignInResult {
	var unverified *UnverifiedAccountError
	var notFound *NotFoundError

	switch {
	case errors.As(err, &unverified):
		return &models.SignInResult{
			Success:          false,
			Message:          msgVerifyAccount,
			Role:             unverified.Role,
			VerificationCode: unverified.VerificationCode,
		}
	case errors.As(err, &notFound):
		// Generic on purpose: do not reveal which field was wrong.
		return &models.SignInResult{Success: false, Message: msgInvalidSignIn}
	default:
		s.logger.Error("sign-in failed", "email", email, "error", err)
		return &models.SignInResult{Success: false, Message: msgSignInFailed}
	}
}

// ===== VERIFICATION =====

func (s *accountService) Verify(ctx context.Context, email string, role models.Role, code string) *models.VerifyResult {
	account, err := s.repo.Accounts(role).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return &models.VerifyResult{Success: false, Message: msgUserNotFound}
		}
		s.logger.Error("verification lookup failed", "role", role, "email", email, "error", err)
		return &models.VerifyResult{Success: false, Message: msgInvalidCode}
	}

	// An already-verified account carries an empty stored code, so
	// re-verification fails here. Preserved behavior.
	if account.VerificationCode != code {
		return &models.VerifyResult{Success: false, Message: msgInvalidCode}
	}

	account.VerificationStatus = true
	account.VerificationCode = ""
	if err := s.repo.Accounts(role).Update(ctx, account); err != nil {
		s.logger.Error("verification update failed", "role", role, "email", email, "error", err)
		return &models.VerifyResult{Success: false, Message: msgInvalidCode}
	}

	s.publish(ctx, events.EventAccountVerified, &events.AccountEvent{Email: email, Role: role})
	s.logger.Info("account verified", "role", role, "email", email)

	return &models.VerifyResult{
		Success:    true,
		Message:    msgVerified,
		RedirectTo: redirectSignInPage,
	}
}

// ===== PASSWORD RESET =====

func (s *accountService) RequestPasswordReset(ctx context.Context, email string) *models.ResetRequestResult {
	if err := s.simulateLatency(ctx); err != nil {
		s.logger.Error("password reset request failed", "email", email, "error", err)
		return &models.ResetRequestResult{Success: false, Message: msgResetReqFailed}
	}

	account, role, err := s.findByEmailAcrossRoles(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return &models.ResetRequestResult{Success: false, Message: msgEmailNotFound}
		}
		s.logger.Error("password reset request failed", "email", email, "error", err)
		return &models.ResetRequestResult{Success: false, Message: msgResetReqFailed}
	}

	code := generateCode()
	account.ResetCode = code
	// Only the collection containing the match is rewritten.
	if err := s.repo.Accounts(role).Update(ctx, account); err != nil {
		s.logger.Error("password reset request failed", "email", email, "error", err)
		return &models.ResetRequestResult{Success: false, Message: msgResetReqFailed}
	}

	s.publish(ctx, events.EventResetCodeIssued, &events.CodeIssuedEvent{Email: email, Role: role, Code: code})
	s.logger.Info("reset code issued", "role", role, "email", email)

	return &models.ResetRequestResult{
		Success:          true,
		Message:          fmt.Sprintf("To reset your password, please use this code: %s", code),
		VerificationCode: code,
	}
}

func (s *accountService) ResetPassword(ctx context.Context, email, code, newPassword string) *models.ResetResult {
	if err := s.simulateLatency(ctx); err != nil {
		s.logger.Error("password reset failed", "email", email, "error", err)
		return &models.ResetResult{Success: false, Message: msgResetFailed}
	}

	account, role, err := s.findByEmailAcrossRoles(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return &models.ResetResult{Success: false, Message: msgInvalidReset}
		}
		s.logger.Error("password reset failed", "email", email, "error", err)
		return &models.ResetResult{Success: false, Message: msgResetFailed}
	}

	// A reset code is single-use: it must exist and match exactly.
	if account.ResetCode == "" || account.ResetCode != code {
		return &models.ResetResult{Success: false, Message: msgInvalidReset}
	}

	account.Password = newPassword
	account.ResetCode = ""
	if err := s.repo.Accounts(role).Update(ctx, account); err != nil {
		s.logger.Error("password reset failed", "email", email, "error", err)
		return &models.ResetResult{Success: false, Message: msgResetFailed}
	}

	s.publish(ctx, events.EventPasswordReset, &events.AccountEvent{Email: email, Role: role})
	s.logger.Info("password reset", "role", role, "email", email)

	return &models.ResetResult{Success: true, Message: msgPasswordReset}
}

// findByEmailAcrossRoles searches teachers first, then donors.
func (s *accountService) findByEmailAcrossRoles(ctx context.Context, email string) (*models.Account, models.Role, error) {
	for _, role := range []models.Role{models.RoleTeacher, models.RoleDonor} {
		account, err := s.repo.Accounts(role).FindByEmail(ctx, email)
		if err == nil {
			return account, role, nil
		}
		if !errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, "", err
		}
	}
	return nil, "", repositories.ErrAccountNotFound
}

func (s *accountService) publish(ctx context.Context, eventType events.EventType, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		// Event delivery is best-effort; the operation already succeeded.
		s.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}

func roleTitle(role models.Role) string {
	if role == models.RoleTeacher {
		return "Teacher"
	}
	return "Donor"
}
