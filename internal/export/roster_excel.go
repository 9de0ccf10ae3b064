package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/account-service/internal/models"
)

// RosterWorkbook holds a directory listing rendered as a spreadsheet.
type RosterWorkbook struct {
	File *excelize.File
}

// NewRosterWorkbook renders one role collection as a single-sheet workbook.
// Credential and code columns are never exported.
func NewRosterWorkbook(role models.Role, accounts []*models.Account) (*RosterWorkbook, error) {
	f := excelize.NewFile()

	sheet := "Teachers"
	if role == models.RoleDonor {
		sheet = "Donors"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := rosterHeader(role)
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for r, account := range accounts {
		for c, value := range rosterRow(role, account) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	return &RosterWorkbook{File: f}, nil
}

// Bytes serializes the workbook.
func (w *RosterWorkbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.File.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rosterHeader(role models.Role) []string {
	if role == models.RoleTeacher {
		return []string{"First Name", "Last Name", "Email", "Phone", "Region", "City", "School", "Grade", "Verified"}
	}
	return []string{"First Name", "Last Name", "Email", "Phone", "Country", "Region", "City", "Verified"}
}

func rosterRow(role models.Role, a *models.Account) []string {
	verified := "no"
	if a.VerificationStatus {
		verified = "yes"
	}
	if role == models.RoleTeacher {
		return []string{a.FirstName, a.LastName, a.Email, a.PhoneNumber, a.Region, a.City, a.School, a.Grade, verified}
	}
	return []string{a.FirstName, a.LastName, a.Email, a.PhoneNumber, a.Country, a.Region, a.City, verified}
}
