// server/internal/api/handlers/leaderboard_handler.go
package handlers

import (
	"context"
	"net/http"

	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type LeaderboardHandler struct {
	DB     *mongo.Database
	Logger *zap.Logger
}

type leaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	BloodGroup    string `json:"bloodGroup"`
	Points        int    `json:"points"`
	DonationCount int    `json:"donationCount"`
}

// GetLeaderboard returns the top 10 donors by points, donation count breaking
// ties.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	cursor, err := h.DB.Collection("users").Find(context.Background(),
		bson.M{"role": models.RoleDonor},
		options.Find().
			SetSort(bson.D{{Key: "points", Value: -1}, {Key: "donationCount", Value: -1}}).
			SetLimit(10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query leaderboard"})
		return
	}
	defer cursor.Close(context.Background())

	var donors []models.User
	if err = cursor.All(context.Background(), &donors); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode leaderboard"})
		return
	}

	entries := make([]leaderboardEntry, 0, len(donors))
	for i, donor := range donors {
		entries = append(entries, leaderboardEntry{
			Rank:          i + 1,
			Name:          donor.Name,
			BloodGroup:    donor.BloodGroup,
			Points:        donor.Points,
			DonationCount: donor.DonationCount,
		})
	}

	c.JSON(http.StatusOK, entries)
}
