package validator

import (
	"testing"

	"github.com/SAP-F-2025/account-service/internal/models"
)

func pendingAccount() *models.Account {
	return &models.Account{
		AccountBase: models.AccountBase{
			FirstName:        "Amina",
			LastName:         "Yusupova",
			Email:            "amina@example.com",
			PhoneNumber:      "+99893 111 22 33",
			Password:         "pw",
			VerificationCode: "1234",
		},
		Region: "Bukhara",
		City:   "Bukhara",
		School: "School 4",
		Grade:  "6",
	}
}

func TestValidateNewAccount(t *testing.T) {
	v := New()

	t.Run("Valid_Teacher", func(t *testing.T) {
		if errs := v.ValidateNewAccount(models.RoleTeacher, pendingAccount()); len(errs) > 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})

	t.Run("Malformed_Email", func(t *testing.T) {
		account := pendingAccount()
		account.Email = "not-an-email"
		errs := v.ValidateNewAccount(models.RoleTeacher, account)
		if len(errs) == 0 {
			t.Fatal("expected email validation error")
		}
	})

	t.Run("Code_Shape", func(t *testing.T) {
		for _, code := range []string{"", "123", "12345", "abcd", "12a4"} {
			account := pendingAccount()
			account.VerificationCode = code
			if errs := v.ValidateNewAccount(models.RoleTeacher, account); len(errs) == 0 {
				t.Errorf("code %q must be rejected", code)
			}
		}
	})

	t.Run("Verified_Status_Rejected", func(t *testing.T) {
		account := pendingAccount()
		account.VerificationStatus = true
		if errs := v.ValidateNewAccount(models.RoleTeacher, account); len(errs) == 0 {
			t.Error("a new record must not be pre-verified")
		}
	})

	t.Run("Teacher_Requires_School_Fields", func(t *testing.T) {
		account := pendingAccount()
		account.School = ""
		account.Grade = ""
		errs := v.ValidateNewAccount(models.RoleTeacher, account)
		if len(errs) != 2 {
			t.Errorf("expected 2 missing-field errors, got %v", errs)
		}
	})

	t.Run("Donor_Requires_Country", func(t *testing.T) {
		account := &models.Account{
			AccountBase: models.AccountBase{
				FirstName:        "Li",
				LastName:         "Wei",
				Email:            "li@example.com",
				PhoneNumber:      "+86 10 0000 0000",
				Password:         "pw",
				VerificationCode: "8765",
			},
			Region: "Beijing",
			City:   "Beijing",
		}
		errs := v.ValidateNewAccount(models.RoleDonor, account)
		if len(errs) != 1 || errs[0].Field != "country" {
			t.Errorf("expected a single country error, got %v", errs)
		}

		account.Country = "China"
		if errs := v.ValidateNewAccount(models.RoleDonor, account); len(errs) > 0 {
			t.Errorf("expected no errors, got %v", errs)
		}
	})
}
