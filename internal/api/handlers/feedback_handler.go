// server/internal/api/handlers/feedback_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type FeedbackHandler struct {
	DB         *mongo.Database
	Mailer     *mailer.Mailer
	Logger     *zap.Logger
	AdminEmail string
}

type SubmitFeedbackRequest struct {
	AppointmentID  string `json:"appointmentId" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Experience     string `json:"experience" binding:"required"`
	StaffBehavior  int    `json:"staffBehavior" binding:"required,min=1,max=5"`
	Cleanliness    int    `json:"cleanliness" binding:"required,min=1,max=5"`
	WaitTime       string `json:"waitTime" binding:"required"`
	WouldRecommend *bool  `json:"wouldRecommend" binding:"required"`
	Comments       string `json:"comments"`
	Suggestions    string `json:"suggestions"`
}

func validExperience(e string) bool {
	switch e {
	case "excellent", "good", "average", "poor":
		return true
	}
	return false
}

func validWaitTime(w string) bool {
	switch w {
	case "less_than_15", "15_to_30", "30_to_60", "more_than_60":
		return true
	}
	return false
}

// SubmitFeedback records a donor's review of their own completed appointment.
// One feedback per appointment, enforced by a pre-check and the unique index.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validExperience(req.Experience) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid experience value"})
		return
	}
	if !validWaitTime(req.WaitTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waitTime value"})
		return
	}

	appointmentID, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	var appointment models.Appointment
	err = h.DB.Collection("appointments").FindOne(context.Background(), bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointment"})
		}
		return
	}
	if appointment.Donor != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only review your own appointments"})
		return
	}
	if appointment.Status != models.AppointmentCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback is only accepted for completed donations"})
		return
	}

	count, err := h.DB.Collection("feedback").CountDocuments(context.Background(), bson.M{"appointment": appointmentID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing feedback"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already submitted for this appointment"})
		return
	}

	feedback := models.Feedback{
		Donor:          userID,
		Appointment:    appointmentID,
		Rating:         req.Rating,
		Experience:     req.Experience,
		StaffBehavior:  req.StaffBehavior,
		Cleanliness:    req.Cleanliness,
		WaitTime:       req.WaitTime,
		WouldRecommend: *req.WouldRecommend,
		Comments:       req.Comments,
		Suggestions:    req.Suggestions,
		CreatedAt:      time.Now(),
	}
	result, err := h.DB.Collection("feedback").InsertOne(context.Background(), feedback)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback already submitted for this appointment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = oid
	}

	if _, err := h.DB.Collection("appointments").UpdateOne(context.Background(),
		bson.M{"_id": appointmentID},
		bson.M{"$set": bson.M{"feedbackSubmitted": true}}); err != nil {
		h.Logger.Error("failed to flag appointment feedback",
			zap.String("appointment", appointmentID.Hex()), zap.Error(err))
	}

	h.notifyAdmin(userID, appointment, feedback)

	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) notifyAdmin(donorID primitive.ObjectID, appointment models.Appointment, feedback models.Feedback) {
	if h.AdminEmail == "" {
		return
	}
	var donor models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": donorID}).Decode(&donor); err != nil {
		return
	}
	var bank models.BloodBank
	_ = h.DB.Collection("bloodbanks").FindOne(context.Background(), bson.M{"_id": appointment.BloodBank}).Decode(&bank)

	err := h.Mailer.SendFeedbackNotice(h.AdminEmail, donor.Name, donor.Email, bank.Name,
		feedback.Rating, feedback.Experience, feedback.Comments)
	if err != nil {
		h.Logger.Error("failed to send feedback notice", zap.Error(err))
	}
}

// ListFeedback returns feedback. Admins may request all of it or filter by
// appointment; everyone else gets their own.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := bson.M{"donor": userID}
	if appointmentIDStr := c.Query("appointmentId"); appointmentIDStr != "" {
		appointmentID, err := primitive.ObjectIDFromHex(appointmentIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
			return
		}
		query = bson.M{"appointment": appointmentID}
		if sessionRole(c) != models.RoleAdmin {
			query["donor"] = userID
		}
	} else if c.Query("all") == "true" {
		if sessionRole(c) != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		query = bson.M{}
	}

	cursor, err := h.DB.Collection("feedback").Find(context.Background(), query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query feedback"})
		return
	}
	defer cursor.Close(context.Background())

	var feedback []models.Feedback
	if err = cursor.All(context.Background(), &feedback); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode feedback"})
		return
	}
	if feedback == nil {
		feedback = []models.Feedback{}
	}

	c.JSON(http.StatusOK, feedback)
}
