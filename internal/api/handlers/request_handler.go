// server/internal/api/handlers/request_handler.go
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"jeevan-api-server/internal/models"
	"jeevan-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type RequestHandler struct {
	DB     *mongo.Database
	Logger *zap.Logger
}

type CreateBloodRequest struct {
	PatientName   string   `json:"patientName" binding:"required"`
	BloodGroup    string   `json:"bloodGroup" binding:"required"`
	Units         int      `json:"units" binding:"required,min=1"`
	Urgency       string   `json:"urgency"`
	HospitalName  string   `json:"hospitalName"`
	ContactNumber string   `json:"contactNumber"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
}

type UpdateBloodRequest struct {
	Status string `json:"status" binding:"required"`
}

func validUrgency(u string) bool {
	switch u {
	case models.UrgencyNormal, models.UrgencyUrgent, models.UrgencyCritical, models.UrgencyEmergency:
		return true
	}
	return false
}

// ListRequests returns blood requests filtered by the query parameters.
func (h *RequestHandler) ListRequests(c *gin.Context) {
	query := bson.M{}
	if bg := c.Query("bloodGroup"); bg != "" {
		query["bloodGroup"] = bg
	}
	if urgency := c.Query("urgency"); urgency != "" {
		query["urgency"] = urgency
	}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId"})
			return
		}
		query["requester"] = userID
	}

	var opts *options.FindOptions
	latStr, lngStr := c.Query("lat"), c.Query("lng")
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
		opts = options.Find()
	} else {
		opts = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}

	cursor, err := h.DB.Collection("requests").Find(context.Background(), query, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query requests"})
		return
	}
	defer cursor.Close(context.Background())

	var requests []models.Request
	if err = cursor.All(context.Background(), &requests); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode requests"})
		return
	}
	if requests == nil {
		requests = []models.Request{}
	}

	c.JSON(http.StatusOK, requests)
}

// CreateRequest files a new blood request for the caller.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateBloodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidBloodGroup(req.BloodGroup) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood group"})
		return
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = models.UrgencyNormal
	}
	if !validUrgency(urgency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid urgency"})
		return
	}

	request := models.Request{
		Requester:     userID,
		PatientName:   req.PatientName,
		BloodGroup:    req.BloodGroup,
		Units:         req.Units,
		HospitalName:  req.HospitalName,
		ContactNumber: req.ContactNumber,
		Status:        models.RequestPending,
		Urgency:       urgency,
		CreatedAt:     time.Now(),
	}
	if req.Lat != nil && req.Lng != nil {
		request.Location = models.NewGeoPoint(*req.Lng, *req.Lat)
	}

	result, err := h.DB.Collection("requests").InsertOne(context.Background(), request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		request.ID = oid
	}

	c.JSON(http.StatusCreated, request)
}

// GetRequest returns a single blood request.
func (h *RequestHandler) GetRequest(c *gin.Context) {
	requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var request models.Request
	err = h.DB.Collection("requests").FindOne(context.Background(), bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// UpdateRequest moves a request through its status pipeline. Hospital and
// admin only; the fulfilling hospital user is recorded on fulfilment.
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role := sessionRole(c)

	requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var req UpdateBloodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("requests")
	var request models.Request
	if err := collection.FindOne(context.Background(), bson.M{"_id": requestID}).Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve request"})
		}
		return
	}

	if err := workflow.CheckRequestTransition(role, request.Status, req.Status); err != nil {
		status := http.StatusForbidden
		if !workflow.IsRequestStatus(req.Status) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{"status": req.Status}
	if req.Status == models.RequestFulfilled {
		set["fulfilledBy"] = userID
	}

	var updated models.Request
	err = collection.FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": requestID},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRequest removes a request. The requester may delete their own, admins
// may delete any.
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	requestID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	query := bson.M{"_id": requestID}
	if sessionRole(c) != models.RoleAdmin {
		query["requester"] = userID
	}

	result, err := h.DB.Collection("requests").DeleteOne(context.Background(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete request"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}
