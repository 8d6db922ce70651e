// server/internal/api/handlers/volunteer_handler.go
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

type VolunteerHandler struct {
	DB         *mongo.Database
	Mailer     *mailer.Mailer
	Logger     *zap.Logger
	AdminEmail string
}

type JoinRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address"`
	Reason  string `json:"reason"`
}

type UpdateVolunteerRequest struct {
	Status string `json:"status" binding:"required"`
}

// Join files a volunteer application and notifies the admin. The mail is best
// effort.
func (h *VolunteerHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	volunteer := models.Volunteer{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Reason:    req.Reason,
		Status:    models.VolunteerPending,
		CreatedAt: time.Now(),
	}
	result, err := h.DB.Collection("volunteers").InsertOne(context.Background(), volunteer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		volunteer.ID = oid
	}

	if h.AdminEmail != "" {
		err := h.Mailer.SendVolunteerApplicationNotice(h.AdminEmail,
			req.Name, req.Email, req.Phone, req.Address, req.Reason)
		if err != nil {
			h.Logger.Error("failed to send volunteer application notice", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted", "volunteer": volunteer})
}

// ListVolunteers returns all applications, newest first. Admin only.
func (h *VolunteerHandler) ListVolunteers(c *gin.Context) {
	cursor, err := h.DB.Collection("volunteers").Find(context.Background(), bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query volunteers"})
		return
	}
	defer cursor.Close(context.Background())

	var volunteers []models.Volunteer
	if err = cursor.All(context.Background(), &volunteers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode volunteers"})
		return
	}
	if volunteers == nil {
		volunteers = []models.Volunteer{}
	}

	c.JSON(http.StatusOK, volunteers)
}

// UpdateVolunteer records the admin's decision and mails the applicant.
func (h *VolunteerHandler) UpdateVolunteer(c *gin.Context) {
	volunteerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid volunteer id"})
		return
	}

	var req UpdateVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.VolunteerPending, models.VolunteerApproved, models.VolunteerRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var updated models.Volunteer
	err = h.DB.Collection("volunteers").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": volunteerID},
		bson.M{"$set": bson.M{"status": req.Status}},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update volunteer"})
		}
		return
	}

	if req.Status == models.VolunteerApproved || req.Status == models.VolunteerRejected {
		err := h.Mailer.SendVolunteerDecision(updated.Email, updated.Name,
			req.Status == models.VolunteerApproved)
		if err != nil {
			h.Logger.Error("failed to send volunteer decision mail",
				zap.String("email", updated.Email), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteVolunteer removes an application. Admin only.
func (h *VolunteerHandler) DeleteVolunteer(c *gin.Context) {
	volunteerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid volunteer id"})
		return
	}

	result, err := h.DB.Collection("volunteers").DeleteOne(context.Background(), bson.M{"_id": volunteerID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete volunteer"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Volunteer not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Volunteer deleted"})
}
