// server/internal/api/handlers/admin_handler.go
package handlers

import (
	"context"
	"net/http"

	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AdminHandler struct {
	DB     *mongo.Database
	Logger *zap.Logger
}

type UpdateUserRequest struct {
	Role        string   `json:"role"`
	HospitalIDs []string `json:"hospitalIds"`
}

// GetStats counts the dashboard figures in parallel.
func (h *AdminHandler) GetStats(c *gin.Context) {
	ctx := context.Background()
	var donors, banks, appointments, pendingAppointments, requests, pendingRequests int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		donors, err = h.DB.Collection("users").CountDocuments(gctx, bson.M{"role": models.RoleDonor})
		return err
	})
	g.Go(func() error {
		var err error
		banks, err = h.DB.Collection("bloodbanks").CountDocuments(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = h.DB.Collection("appointments").CountDocuments(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		pendingAppointments, err = h.DB.Collection("appointments").CountDocuments(gctx,
			bson.M{"status": models.AppointmentPending})
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = h.DB.Collection("requests").CountDocuments(gctx, bson.M{})
		return err
	})
	g.Go(func() error {
		var err error
		pendingRequests, err = h.DB.Collection("requests").CountDocuments(gctx,
			bson.M{"status": models.RequestPending})
		return err
	})
	if err := g.Wait(); err != nil {
		h.Logger.Error("stats aggregation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donors":              donors,
		"bloodBanks":          banks,
		"appointments":        appointments,
		"pendingAppointments": pendingAppointments,
		"requests":            requests,
		"pendingRequests":     pendingRequests,
	})
}

// ListUsers returns all users, optionally filtered by role.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	query := bson.M{}
	if role := c.Query("role"); role != "" {
		query["role"] = role
	}

	cursor, err := h.DB.Collection("users").Find(context.Background(), query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer cursor.Close(context.Background())

	var users []models.User
	if err = cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser changes a user's role and blood bank linkage. The legacy single
// hospitalId field is kept in sync with the first linked bank.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	unset := bson.M{}
	if req.Role != "" {
		switch req.Role {
		case models.RoleDonor, models.RoleRecipient, models.RoleAdmin, models.RoleHospital:
			set["role"] = req.Role
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
	}
	if req.HospitalIDs != nil {
		bankIDs := make([]primitive.ObjectID, 0, len(req.HospitalIDs))
		for _, hexID := range req.HospitalIDs {
			bankID, err := primitive.ObjectIDFromHex(hexID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital id: " + hexID})
				return
			}
			bankIDs = append(bankIDs, bankID)
		}
		set["hospitalIds"] = bankIDs
		if len(bankIDs) > 0 {
			set["hospitalId"] = bankIDs[0]
		} else {
			unset["hospitalId"] = ""
		}
	}

	if len(set) == 0 && len(unset) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var updated models.User
	err = h.DB.Collection("users").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": targetID},
		update,
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteUser removes any account except the admin's own.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	if targetID == adminID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot delete your own account"})
		return
	}

	result, err := h.DB.Collection("users").DeleteOne(context.Background(), bson.M{"_id": targetID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
