// server/internal/api/handlers/camp_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type CampHandler struct {
	DB     *mongo.Database
	Logger *zap.Logger
}

type ProposeCampRequest struct {
	OrganizerName    string `json:"organizerName" binding:"required"`
	OrganizationName string `json:"organizationName" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required"`
	ExpectedDonors   int    `json:"expectedDonors" binding:"required,min=1"`
	ProposedDate     string `json:"proposedDate" binding:"required"` // YYYY-MM-DD
	Venue            string `json:"venue" binding:"required"`
	City             string `json:"city" binding:"required"`
	Message          string `json:"message"`
}

type UpdateCampRequest struct {
	Status string `json:"status" binding:"required"`
}

// ProposeCamp files a camp proposal. Open to the public.
func (h *CampHandler) ProposeCamp(c *gin.Context) {
	var req ProposeCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposedDate, err := time.Parse("2006-01-02", req.ProposedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposedDate, expected YYYY-MM-DD"})
		return
	}

	camp := models.Camp{
		OrganizerName:    req.OrganizerName,
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		Phone:            req.Phone,
		ExpectedDonors:   req.ExpectedDonors,
		ProposedDate:     proposedDate,
		Venue:            req.Venue,
		City:             req.City,
		Message:          req.Message,
		Status:           models.CampPending,
		CreatedAt:        time.Now(),
	}
	result, err := h.DB.Collection("camps").InsertOne(context.Background(), camp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit camp proposal"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		camp.ID = oid
	}

	c.JSON(http.StatusCreated, camp)
}

// ListCamps returns camps, newest first, optionally filtered by status.
func (h *CampHandler) ListCamps(c *gin.Context) {
	query := bson.M{}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	cursor, err := h.DB.Collection("camps").Find(context.Background(), query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query camps"})
		return
	}
	defer cursor.Close(context.Background())

	var camps []models.Camp
	if err = cursor.All(context.Background(), &camps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode camps"})
		return
	}
	if camps == nil {
		camps = []models.Camp{}
	}

	c.JSON(http.StatusOK, camps)
}

// UpdateCamp changes a camp's status. Admin only.
func (h *CampHandler) UpdateCamp(c *gin.Context) {
	campID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid camp id"})
		return
	}

	var req UpdateCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.CampPending, models.CampApproved, models.CampRejected, models.CampCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var updated models.Camp
	err = h.DB.Collection("camps").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": campID},
		bson.M{"$set": bson.M{"status": req.Status}},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Camp not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update camp"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}
