package models

// Role discriminates the two account collections. Teacher and donor
// accounts never share a collection, so email uniqueness is per role.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleDonor   Role = "donor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleDonor
}

// StorageKey returns the key the role collection is persisted under.
func (r Role) StorageKey() string {
	if r == RoleTeacher {
		return "teachers"
	}
	return "donors"
}

// AccountBase holds the fields shared by both roles. JSON names match the
// persisted collection layout, so records round-trip unchanged.
type AccountBase struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`

	// Verification state: a fresh account carries a 4-digit code and
	// VerificationStatus false; verifying flips the status and clears
	// the code. ResetCode exists only while a password reset is pending.
	VerificationStatus bool   `json:"verificationStatus"`
	VerificationCode   string `json:"verificationCode"`
	ResetCode          string `json:"resetCode,omitempty"`
}

// Account is a record of either role. Teacher-only and donor-only profile
// fields are omitted from JSON when empty, so a teachers collection never
// carries a country and a donors collection never carries a school.
type Account struct {
	AccountBase

	// Teacher profile extension.
	School string `json:"school,omitempty"`
	Grade  string `json:"grade,omitempty"`

	// Shared by both extensions (teacher: region/city, donor: country/region/city).
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

// Verified reports whether the account may sign in.
func (a *Account) Verified() bool {
	return a.VerificationStatus
}
