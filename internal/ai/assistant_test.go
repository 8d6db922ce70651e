// server/internal/ai/assistant_test.go
package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseBookingAction(t *testing.T) {
	raw := `{"action": "book_appointment", "bloodBankId": "65f1c0ffee", "date": "2026-09-15", "bankName": "City Blood Bank"}`

	action, ok := ParseBookingAction(raw)
	require.True(t, ok)
	assert.Equal(t, "65f1c0ffee", action.BloodBankID)
	assert.Equal(t, "2026-09-15", action.Date)
	assert.Equal(t, "City Blood Bank", action.BankName)
}

func TestParseBookingActionFenced(t *testing.T) {
	fenced := "```json\n{\"action\": \"book_appointment\", \"bloodBankId\": \"abc\", \"date\": \"2026-01-01\", \"bankName\": \"X\"}\n```"

	action, ok := ParseBookingAction(fenced)
	require.True(t, ok)
	assert.Equal(t, "abc", action.BloodBankID)
}

func TestParseBookingActionPlainText(t *testing.T) {
	_, ok := ParseBookingAction("Sure! Which blood bank would you like to visit?")
	assert.False(t, ok)
}

func TestParseBookingActionOtherJSON(t *testing.T) {
	// JSON that is not the booking command is treated as normal text.
	_, ok := ParseBookingAction(`{"action": "something_else"}`)
	assert.False(t, ok)

	_, ok = ParseBookingAction(`{"broken": `)
	assert.False(t, ok)
}

func TestHistoryRoleMapping(t *testing.T) {
	assert.Equal(t, genai.Role(genai.RoleUser), historyRole("user"))
	assert.Equal(t, genai.Role(genai.RoleModel), historyRole("model"))
	// Unknown or empty roles fall back to the user side.
	assert.Equal(t, genai.Role(genai.RoleUser), historyRole(""))
	assert.Equal(t, genai.Role(genai.RoleUser), historyRole("assistant"))
}

func TestSystemPromptListsBanks(t *testing.T) {
	prompt := systemPrompt([]BankSummary{
		{ID: "id-1", Name: "Central Bank", City: "Pune"},
		{ID: "id-2", Name: "North Bank", City: "Delhi"},
	})
	assert.Contains(t, prompt, "Central Bank (ID: id-1, City: Pune)")
	assert.Contains(t, prompt, "North Bank (ID: id-2, City: Delhi)")
	assert.Contains(t, prompt, "book_appointment")
}
