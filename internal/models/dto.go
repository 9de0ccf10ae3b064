package models

// Operation results returned across the service boundary. Every operation
// reports success plus a user-facing message; failures never surface as raw
// errors to callers.

// RegisterResult is returned by account registration.
type RegisterResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// SignInResult is returned by sign-in. VerificationCode is populated only
// when the matched account is still unverified, as a recovery aid: there
// is no real delivery channel for the code.
type SignInResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	Role             Role   `json:"role,omitempty"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

// VerifyResult is returned by account verification.
type VerifyResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// ResetRequestResult is returned by a password-reset request.
type ResetRequestResult struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	VerificationCode string `json:"verificationCode,omitempty"`
}

// ResetResult is returned by password-reset completion.
type ResetResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PublicProfile is the sanitized directory view of an account: no
// credentials, no verification or reset codes.
type PublicProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Verified  bool   `json:"verified"`
	School    string `json:"school,omitempty"`
	Grade     string `json:"grade,omitempty"`
	Country   string `json:"country,omitempty"`
	Region    string `json:"region,omitempty"`
	City      string `json:"city,omitempty"`
}

// PublicProfileOf strips credential and code fields from an account.
func PublicProfileOf(a *Account) PublicProfile {
	return PublicProfile{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Verified:  a.VerificationStatus,
		School:    a.School,
		Grade:     a.Grade,
		Country:   a.Country,
		Region:    a.Region,
		City:      a.City,
	}
}
