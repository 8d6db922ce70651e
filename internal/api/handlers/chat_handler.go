// server/internal/api/handlers/chat_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"jeevan-api-server/internal/ai"
	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ChatHandler struct {
	DB        *mongo.Database
	Assistant *ai.Assistant
	Logger    *zap.Logger
}

type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ai.ChatTurn `json:"history"`
}

type HealthInsightRequest struct {
	Hemoglobin    string `json:"hemoglobin"`
	BloodPressure string `json:"bloodPressure"`
	Weight        string `json:"weight"`
	Pulse         string `json:"pulse"`
}

// Chat relays a conversation turn to the assistant. When the model replies
// with the booking action and the caller is signed in, the appointment is
// created right here.
func (h *ChatHandler) Chat(c *gin.Context) {
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	banks, err := h.bankRoster()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blood banks"})
		return
	}

	reply, err := h.Assistant.Chat(context.Background(), banks, req.History, req.Message)
	if err != nil {
		h.Logger.Error("chat relay failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is unavailable"})
		return
	}

	action, ok := ai.ParseBookingAction(reply)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"reply": reply})
		return
	}

	userID, authed := sessionUserID(c)
	if !authed {
		c.JSON(http.StatusOK, gin.H{"reply": "Please log in to book an appointment."})
		return
	}

	appointment, err := h.bookFromAction(userID, action)
	if err != nil {
		h.Logger.Error("chat booking failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"reply": "I could not book that appointment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply": "Your appointment at " + action.BankName + " on " + action.Date +
			" is booked and pending confirmation.",
		"appointment": appointment,
	})
}

func (h *ChatHandler) bankRoster() ([]ai.BankSummary, error) {
	cursor, err := h.DB.Collection("bloodbanks").Find(context.Background(),
		bson.M{"status": models.BankStatusActive})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	var banks []models.BloodBank
	if err := cursor.All(context.Background(), &banks); err != nil {
		return nil, err
	}

	roster := make([]ai.BankSummary, 0, len(banks))
	for _, b := range banks {
		roster = append(roster, ai.BankSummary{ID: b.ID.Hex(), Name: b.Name, City: b.Address.City})
	}
	return roster, nil
}

func (h *ChatHandler) bookFromAction(userID primitive.ObjectID, action *ai.BookingAction) (*models.Appointment, error) {
	bankID, err := primitive.ObjectIDFromHex(action.BloodBankID)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", action.Date)
	if err != nil {
		return nil, err
	}

	appointment := models.Appointment{
		Donor:          userID,
		BloodBank:      bankID,
		Date:           date,
		TimeSlot:       "10:00",
		Notes:          "Booked via assistant",
		Status:         models.AppointmentPending,
		TrackingStatus: models.TrackingCollected,
		CreatedAt:      time.Now(),
	}
	result, err := h.DB.Collection("appointments").InsertOne(context.Background(), appointment)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appointment.ID = oid
	}
	return &appointment, nil
}

// HealthInsight returns a short assistant-written tip from donation vitals.
func (h *ChatHandler) HealthInsight(c *gin.Context) {
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var req HealthInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	insight, err := h.Assistant.HealthInsight(context.Background(),
		req.Hemoglobin, req.BloodPressure, req.Weight, req.Pulse)
	if err != nil {
		h.Logger.Error("health insight failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant is unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insight": insight})
}
