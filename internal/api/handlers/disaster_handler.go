// server/internal/api/handlers/disaster_handler.go
package handlers

import (
	"context"
	"net/http"

	"jeevan-api-server/internal/broadcast"
	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DisasterHandler struct {
	Coordinator *broadcast.Coordinator
	Logger      *zap.Logger
}

type DisasterActionRequest struct {
	Action              string   `json:"action" binding:"required"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	Location            string   `json:"location"`
	Radius              float64  `json:"radius"`
	RequiredBloodGroups []string `json:"requiredBloodGroups"`
}

// GetActiveAlert returns the current active disaster alert, or null.
func (h *DisasterHandler) GetActiveAlert(c *gin.Context) {
	alert, err := h.Coordinator.ActiveAlert(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query disaster alerts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": alert})
}

// HandleAction creates or resolves disaster alerts. Admin only.
func (h *DisasterHandler) HandleAction(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req DisasterActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "create":
		if req.Title == "" || req.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
			return
		}
		for _, group := range req.RequiredBloodGroups {
			if !models.IsValidBloodGroup(group) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood group: " + group})
				return
			}
		}

		alert, err := h.Coordinator.CreateAlert(context.Background(), broadcast.CreateAlertInput{
			Title:               req.Title,
			Description:         req.Description,
			Location:            req.Location,
			Radius:              req.Radius,
			RequiredBloodGroups: req.RequiredBloodGroups,
			CreatedBy:           userID,
		})
		if err != nil {
			h.Logger.Error("failed to create disaster alert", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create disaster alert"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Disaster alert created", "alert": alert})

	case "resolve":
		if err := h.Coordinator.ResolveAll(context.Background()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve disaster alerts"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Disaster alerts resolved"})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}
