// server/internal/api/handlers/sos_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"jeevan-api-server/internal/models"
	"jeevan-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type SOSHandler struct {
	DB     *mongo.Database
	Hub    *socket.Hub
	Logger *zap.Logger
}

type TriggerSOSRequest struct {
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Address       string   `json:"address"`
	ContactNumber string   `json:"contactNumber"`
	Message       string   `json:"message"`
}

type UpdateSOSRequest struct {
	Status string `json:"status" binding:"required"`
}

// TriggerSOS raises an emergency alert. Works anonymously; an authenticated
// caller gets linked to the alert.
func (h *SOSHandler) TriggerSOS(c *gin.Context) {
	var req TriggerSOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := req.Message
	if message == "" {
		message = "Emergency blood requirement"
	}

	alert := models.EmergencyAlert{
		Status:        models.SOSActive,
		ContactNumber: req.ContactNumber,
		Message:       message,
		CreatedAt:     time.Now(),
	}
	if userID, ok := sessionUserID(c); ok {
		alert.User = &userID
	}
	if req.Lat != nil && req.Lng != nil {
		alert.Location = models.SOSLocation{Lat: *req.Lat, Lng: *req.Lng, Address: req.Address}
	} else if req.Address != "" {
		alert.Location = models.SOSLocation{Address: req.Address}
	}

	result, err := h.DB.Collection("emergency_alerts").InsertOne(context.Background(), alert)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create SOS alert"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		alert.ID = oid
	}

	h.Hub.Broadcast("sos_triggered", map[string]any{
		"id":      alert.ID.Hex(),
		"message": alert.Message,
		"address": alert.Location.Address,
	})
	if alert.User != nil {
		// Targeted acknowledgment so the raiser's dashboard confirms receipt.
		if err := h.Hub.Send(alert.User.Hex(), "sos_acknowledged", map[string]any{
			"id": alert.ID.Hex(),
		}); err != nil {
			h.Logger.Warn("failed to acknowledge SOS to raiser",
				zap.String("userID", alert.User.Hex()), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "SOS alert raised", "alert": alert})
}

// ListActiveSOS returns active alerts, newest first.
func (h *SOSHandler) ListActiveSOS(c *gin.Context) {
	cursor, err := h.DB.Collection("emergency_alerts").Find(context.Background(),
		bson.M{"status": models.SOSActive},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query SOS alerts"})
		return
	}
	defer cursor.Close(context.Background())

	var alerts []models.EmergencyAlert
	if err = cursor.All(context.Background(), &alerts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode SOS alerts"})
		return
	}
	if alerts == nil {
		alerts = []models.EmergencyAlert{}
	}

	c.JSON(http.StatusOK, alerts)
}

// sosStatusUpdate builds the status write. Both closing outcomes, resolved
// and false_alarm, stamp resolvedAt.
func sosStatusUpdate(status string, now time.Time) bson.M {
	set := bson.M{"status": status}
	if status == models.SOSResolved || status == models.SOSFalseAlarm {
		set["resolvedAt"] = now
	}
	return set
}

// UpdateSOS changes an alert's status; closing it stamps resolvedAt.
func (h *SOSHandler) UpdateSOS(c *gin.Context) {
	alertID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid alert id"})
		return
	}

	var req UpdateSOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.SOSActive, models.SOSResolved, models.SOSFalseAlarm:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	set := sosStatusUpdate(req.Status, time.Now())

	var updated models.EmergencyAlert
	err = h.DB.Collection("emergency_alerts").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": alertID},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "SOS alert not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update SOS alert"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
