package events

import (
	"time"

	"github.com/SAP-F-2025/account-service/internal/models"
)

// AccountEventsTopic carries all account lifecycle events.
const AccountEventsTopic = "account-events"

const (
	EventAccountRegistered EventType = "account.registered"
	EventAccountVerified   EventType = "account.verified"
	EventPasswordReset     EventType = "account.password_reset"

	// Code issuance events stand in for the missing email channel: the
	// delivery subscriber surfaces the code to the user.
	EventVerificationCodeIssued EventType = "account.verification_code_issued"
	EventResetCodeIssued        EventType = "account.reset_code_issued"
)

type EventType string

// Event is the envelope published for every account lifecycle change.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// AccountEvent describes the account an event refers to.
type AccountEvent struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// CodeIssuedEvent carries an issued verification or reset code.
type CodeIssuedEvent struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	Code  string      `json:"code"`
}
