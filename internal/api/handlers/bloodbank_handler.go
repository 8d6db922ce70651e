// server/internal/api/handlers/bloodbank_handler.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type BloodBankHandler struct {
	DB     *mongo.Database
	Logger *zap.Logger
}

type CreateBloodBankRequest struct {
	Name    string         `json:"name" binding:"required"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address models.Address `json:"address"`
	Lat     *float64       `json:"lat"`
	Lng     *float64       `json:"lng"`
	Stock   map[string]int `json:"stock"`
	Admins  []string       `json:"admins"`
}

type UpdateBloodBankRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address *models.Address `json:"address"`
	Lat     *float64        `json:"lat"`
	Lng     *float64        `json:"lng"`
	Stock   map[string]int  `json:"stock"`
	Status  string          `json:"status"`
}

// ListBloodBanks returns all banks sorted by name. With lat/lng (and an
// optional radius in km, default 50) it becomes a $near query instead.
func (h *BloodBankHandler) ListBloodBanks(c *gin.Context) {
	query := bson.M{}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	var opts *options.FindOptions
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
			return
		}
		radiusKm := 50.0
		if r := c.Query("radius"); r != "" {
			if parsed, err := strconv.ParseFloat(r, 64); err == nil && parsed > 0 {
				radiusKm = parsed
			}
		}
		query["location"] = bson.M{"$near": bson.M{
			"$geometry":    models.NewGeoPoint(lng, lat),
			"$maxDistance": radiusKm * 1000,
		}}
		// $near results are distance-ordered, a sort would conflict.
		opts = options.Find()
	} else {
		opts = options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	}

	cursor, err := h.DB.Collection("bloodbanks").Find(context.Background(), query, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query blood banks"})
		return
	}
	defer cursor.Close(context.Background())

	var banks []models.BloodBank
	if err = cursor.All(context.Background(), &banks); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode blood banks"})
		return
	}
	if banks == nil {
		banks = []models.BloodBank{}
	}

	c.JSON(http.StatusOK, banks)
}

// GetBloodBank returns a single bank by id.
func (h *BloodBankHandler) GetBloodBank(c *gin.Context) {
	bankID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood bank id"})
		return
	}

	var bank models.BloodBank
	err = h.DB.Collection("bloodbanks").FindOne(context.Background(), bson.M{"_id": bankID}).Decode(&bank)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blood bank not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve blood bank"})
		}
		return
	}

	c.JSON(http.StatusOK, bank)
}

// CreateBloodBank registers a new bank. Admin only.
func (h *BloodBankHandler) CreateBloodBank(c *gin.Context) {
	var req CreateBloodBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stock := models.EmptyStock()
	for group, units := range req.Stock {
		if !models.IsValidBloodGroup(group) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood group in stock: " + group})
			return
		}
		if units < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock units cannot be negative"})
			return
		}
		stock[group] = units
	}

	var admins []primitive.ObjectID
	for _, hexID := range req.Admins {
		adminID, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin id: " + hexID})
			return
		}
		admins = append(admins, adminID)
	}

	bank := models.BloodBank{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Stock:     stock,
		Admins:    admins,
		Status:    models.BankStatusActive,
		CreatedAt: time.Now(),
	}
	if req.Lat != nil && req.Lng != nil {
		bank.Location = models.NewGeoPoint(*req.Lng, *req.Lat)
	}

	result, err := h.DB.Collection("bloodbanks").InsertOne(context.Background(), bank)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blood bank"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		bank.ID = oid
	}

	c.JSON(http.StatusCreated, bank)
}

// UpdateBloodBank edits a bank. Admins may edit any bank; hospital users only
// one they are linked to.
func (h *BloodBankHandler) UpdateBloodBank(c *gin.Context) {
	bankID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood bank id"})
		return
	}

	if sessionRole(c) == models.RoleHospital {
		userID, ok := sessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user models.User
		if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}
		linked := false
		for _, id := range user.LinkedBankIDs() {
			if id == bankID {
				linked = true
				break
			}
		}
		if !linked {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not linked to this blood bank"})
			return
		}
	}

	var req UpdateBloodBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Email != "" {
		set["email"] = req.Email
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.Address != nil {
		set["address"] = req.Address
	}
	if req.Lat != nil && req.Lng != nil {
		set["location"] = models.NewGeoPoint(*req.Lng, *req.Lat)
	}
	if req.Status != "" {
		switch req.Status {
		case models.BankStatusActive, models.BankStatusInactive, models.BankStatusOutOfStock:
			set["status"] = req.Status
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}
	for group, units := range req.Stock {
		if !models.IsValidBloodGroup(group) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood group in stock: " + group})
			return
		}
		if units < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock units cannot be negative"})
			return
		}
		set["stock."+group] = units
	}

	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var updated models.BloodBank
	err = h.DB.Collection("bloodbanks").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": bankID},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blood bank not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blood bank"})
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteBloodBank removes a bank. Admin only.
func (h *BloodBankHandler) DeleteBloodBank(c *gin.Context) {
	bankID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood bank id"})
		return
	}

	result, err := h.DB.Collection("bloodbanks").DeleteOne(context.Background(), bson.M{"_id": bankID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blood bank"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blood bank not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blood bank deleted"})
}
