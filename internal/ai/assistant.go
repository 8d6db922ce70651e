// server/internal/ai/assistant.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Assistant wraps the Gemini API for the chat helper and the post-donation
// health insight.
type Assistant struct {
	client *genai.Client
	model  string
}

// ChatTurn is one prior message in the conversation, role is "user" or "model".
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// BookingAction is the structured booking command the model may reply with.
type BookingAction struct {
	Action      string `json:"action"`
	BloodBankID string `json:"bloodBankId"`
	Date        string `json:"date"`
	BankName    string `json:"bankName"`
}

// BankSummary is the roster entry fed into the chat prompt.
type BankSummary struct {
	ID   string
	Name string
	City string
}

// NewAssistant creates the Gemini client. apiKey must be non-empty.
func NewAssistant(ctx context.Context, apiKey, model string) (*Assistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Assistant{client: client, model: model}, nil
}

func systemPrompt(banks []BankSummary) string {
	var roster strings.Builder
	for _, b := range banks {
		fmt.Fprintf(&roster, "%s (ID: %s, City: %s)\n", b.Name, b.ID, b.City)
	}
	return fmt.Sprintf(`
You are a helpful assistant for a blood donation system.
Current Date: %s

Available Blood Banks:
%s
You can help users book appointments.
1. If the user wants to book an appointment, ask for the Blood Bank Name and the Date (YYYY-MM-DD).
2. If you have both the Blood Bank Name (matched to an ID) and the Date, you MUST output a JSON object strictly in this format:

{"action": "book_appointment", "bloodBankId": "EXACT_ID_FROM_LIST", "date": "YYYY-MM-DD", "bankName": "NAME_OF_BANK"}

Do not include any other text with the JSON. Just the JSON string.
If the user is just chatting, respond normally.`,
		time.Now().Format("2006-01-02"), roster.String())
}

// historyRole maps a stored turn role onto the genai role type. Anything that
// is not the model counts as the user.
func historyRole(role string) genai.Role {
	if role == "model" {
		return genai.RoleModel
	}
	return genai.RoleUser
}

// Chat sends the conversation to Gemini and returns the raw reply text.
func (a *Assistant) Chat(ctx context.Context, banks []BankSummary, history []ChatTurn, message string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(systemPrompt(banks), genai.RoleUser),
		genai.NewContentFromText("Understood. I am ready to assist users with blood donation and appointments.", genai.RoleModel),
	}
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Text, historyRole(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini chat failed: %w", err)
	}
	return resp.Text(), nil
}

// HealthInsight asks Gemini for a short encouragement based on recorded vitals.
func (a *Assistant) HealthInsight(ctx context.Context, hemoglobin, bloodPressure, weight, pulse string) (string, error) {
	prompt := fmt.Sprintf(`
Act as a friendly medical assistant for a blood donor.
Analyze these health stats recorded after a blood donation:
- Hemoglobin: %s g/dL
- Blood Pressure: %s
- Weight: %s kg
- Pulse: %s bpm

Provide a very short (max 2 sentences) personalized health tip or positive reinforcement based on these numbers.
Focus on nutrition or hydration if any value is borderline, otherwise give a general "Keep it up!" message.
Do not give medical advice or diagnosis. Keep it encouraging.`,
		hemoglobin, bloodPressure, weight, pulse)

	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini insight failed: %w", err)
	}
	return resp.Text(), nil
}

// ParseBookingAction extracts the booking command from a model reply, if the
// reply is the action JSON (optionally wrapped in a markdown fence). Plain
// conversational replies return (nil, false).
func ParseBookingAction(reply string) (*BookingAction, bool) {
	clean := strings.ReplaceAll(reply, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	if !strings.HasPrefix(clean, "{") || !strings.HasSuffix(clean, "}") {
		return nil, false
	}

	var action BookingAction
	if err := json.Unmarshal([]byte(clean), &action); err != nil {
		return nil, false
	}
	if action.Action != "book_appointment" {
		return nil, false
	}
	return &action, true
}
