// server/internal/api/handlers/badge_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"jeevan-api-server/internal/badges"
	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type BadgeHandler struct {
	DB        *mongo.Database
	Evaluator *badges.Evaluator
	Logger    *zap.Logger
}

type AwardBadgeRequest struct {
	UserID    string `json:"userId" binding:"required"`
	BadgeType string `json:"badgeType" binding:"required"`
}

type ownedBadge struct {
	models.Badge
	Info models.BadgeMeta `json:"info"`
}

type catalogueEntry struct {
	Type   string           `json:"type"`
	Info   models.BadgeMeta `json:"info"`
	Earned bool             `json:"earned"`
}

// GetBadges recomputes and returns a user's badges. Evaluation runs on every
// read so badges earned since the last visit show up immediately.
func (h *BadgeHandler) GetBadges(c *gin.Context) {
	var userID primitive.ObjectID
	if userIDStr := c.Query("userId"); userIDStr != "" {
		id, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
			return
		}
		userID = id
	} else {
		id, ok := sessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID = id
	}

	newBadges, err := h.Evaluator.Evaluate(context.Background(), userID)
	if err != nil {
		h.Logger.Error("badge evaluation failed", zap.String("userID", userID.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate badges"})
		return
	}

	cursor, err := h.DB.Collection("badges").Find(context.Background(),
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "earnedAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query badges"})
		return
	}
	defer cursor.Close(context.Background())

	var owned []models.Badge
	if err = cursor.All(context.Background(), &owned); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode badges"})
		return
	}

	ownedTypes := make([]string, 0, len(owned))
	badgeList := make([]ownedBadge, 0, len(owned))
	for _, b := range owned {
		ownedTypes = append(ownedTypes, b.BadgeType)
		badgeList = append(badgeList, ownedBadge{Badge: b, Info: models.BadgeInfo[b.BadgeType]})
	}
	earned := make(map[string]bool, len(ownedTypes))
	for _, t := range ownedTypes {
		earned[t] = true
	}

	catalogue := make([]catalogueEntry, 0, len(models.BadgeInfo))
	for badgeType, info := range models.BadgeInfo {
		catalogue = append(catalogue, catalogueEntry{Type: badgeType, Info: info, Earned: earned[badgeType]})
	}

	if newBadges == nil {
		newBadges = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"badges":      badgeList,
		"newBadges":   newBadges,
		"catalogue":   catalogue,
		"totalPoints": badges.TotalPoints(ownedTypes),
	})
}

// AwardBadge lets an admin grant any catalogue badge manually, e.g. the
// community or camp-organizer awards the evaluator cannot derive.
func (h *BadgeHandler) AwardBadge(c *gin.Context) {
	var req AwardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
		return
	}
	if _, ok := models.BadgeInfo[req.BadgeType]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown badge type"})
		return
	}

	badge := models.Badge{
		UserID:    userID,
		BadgeType: req.BadgeType,
		EarnedAt:  time.Now(),
		Metadata:  map[string]any{"awardedBy": "admin"},
	}
	if _, err := h.DB.Collection("badges").InsertOne(context.Background(), badge); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already has this badge"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to award badge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Badge awarded", "badgeType": req.BadgeType})
}
