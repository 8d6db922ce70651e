// server/internal/api/handlers/user_handler_test.go
package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp := generateOTP()
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "OTP must be numeric, got %q", otp)
		}
	}
}

func TestFeedbackEnumValidators(t *testing.T) {
	assert.True(t, validExperience("excellent"))
	assert.True(t, validExperience("poor"))
	assert.False(t, validExperience("amazing"))
	assert.False(t, validExperience(""))

	assert.True(t, validWaitTime("less_than_15"))
	assert.True(t, validWaitTime("more_than_60"))
	assert.False(t, validWaitTime("forever"))
}
