// internal/common/validation/forms_test.go
package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDomains = []string{"snsu.edu.ph", "ssct.edu.ph"}

func TestValidateInstitutionalEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "snsu domain", email: "juan.delacruz@snsu.edu.ph"},
		{name: "ssct domain", email: "maria@ssct.edu.ph"},
		{name: "uppercase domain", email: "maria@SNSU.EDU.PH"},
		{name: "gmail rejected", email: "juan@gmail.com", wantErr: true},
		{name: "lookalike domain rejected", email: "juan@snsu.edu.ph.evil.com", wantErr: true},
		{name: "not an email", email: "not-an-email", wantErr: true},
		{name: "empty", email: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstitutionalEmail(tt.email, testDomains)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("longenough1", "longenough1", 8))
	assert.Error(t, ValidatePassword("short", "short", 8))
	assert.Error(t, ValidatePassword("longenough1", "different1", 8))
}

func TestMaskReceiptCode(t *testing.T) {
	assert.Equal(t, "VR-A1B2-...5F6-G7H8", MaskReceiptCode("VR-A1B2-C3D4-E5F6-G7H8"))

	// short codes pass through
	assert.Equal(t, "VR-A1B2", MaskReceiptCode("VR-A1B2"))
}

func TestSchoolYearTitle(t *testing.T) {
	august := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SY 2025-2026", SchoolYearTitle(august))

	february := time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "SY 2025-2026", SchoolYearTitle(february))
}

func TestFormatTimestamp_Nil(t *testing.T) {
	assert.Empty(t, FormatTimestamp(nil))
}
