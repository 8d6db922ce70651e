// server/internal/api/handlers/appointment_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/models"
	"jeevan-api-server/internal/socket"
	"jeevan-api-server/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	DB     *mongo.Database
	Mailer *mailer.Mailer
	Hub    *socket.Hub
	Logger *zap.Logger
}

type CreateAppointmentRequest struct {
	BloodBank string `json:"bloodBank" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status         string              `json:"status"`
	TrackingStatus string              `json:"trackingStatus"`
	HealthStats    *models.HealthStats `json:"healthStats"`
}

// ListAppointments returns the caller's view of appointments: donors see their
// own, hospital users see those of their linked bank(s), admins see all.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := bson.M{}
	switch sessionRole(c) {
	case models.RoleDonor, models.RoleRecipient:
		query["donor"] = userID
	case models.RoleHospital:
		var user models.User
		if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}
		bankIDs := user.LinkedBankIDs()
		if len(bankIDs) == 0 {
			// Hospital user not linked to any bank sees nothing.
			c.JSON(http.StatusOK, []models.Appointment{})
			return
		}
		query["bloodBank"] = bson.M{"$in": bankIDs}
	}

	cursor, err := h.DB.Collection("appointments").Find(context.Background(), query,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query appointments"})
		return
	}
	defer cursor.Close(context.Background())

	var appointments []models.Appointment
	if err = cursor.All(context.Background(), &appointments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode appointments"})
		return
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	c.JSON(http.StatusOK, appointments)
}

// CreateAppointment books a new donation slot for the caller.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bankID, err := primitive.ObjectIDFromHex(req.BloodBank)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood bank id"})
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	appointment := models.Appointment{
		Donor:          userID,
		BloodBank:      bankID,
		Date:           date,
		TimeSlot:       req.Time,
		Notes:          req.Notes,
		Status:         models.AppointmentPending,
		TrackingStatus: models.TrackingCollected,
		CreatedAt:      time.Now(),
	}

	result, err := h.DB.Collection("appointments").InsertOne(context.Background(), appointment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create appointment"})
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appointment.ID = oid
	}

	c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointment applies a status change, tracking update or health stats
// to an appointment. On the transition into completed it increments the bank
// stock and the donor's statistics.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role := sessionRole(c)

	appointmentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("appointments")
	var appointment models.Appointment
	if err := collection.FindOne(context.Background(), bson.M{"_id": appointmentID}).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointment"})
		}
		return
	}

	owns := appointment.Donor == userID

	// Route-level guard: only staff or the owning donor may touch an
	// appointment at all, regardless of which fields the body carries.
	if !canTouchAppointment(role, owns) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Appointment belongs to another donor"})
		return
	}

	// Validate everything before writing anything.
	if req.Status != "" {
		if err := workflow.CheckAppointmentTransition(role, owns, appointment.Status, req.Status); err != nil {
			status := http.StatusForbidden
			if !workflow.IsAppointmentStatus(req.Status) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
	}
	if req.TrackingStatus != "" {
		// The tracking pipeline only opens once the donation is completed,
		// including when completion happens in this same call.
		effectiveStatus := appointment.Status
		if req.Status != "" {
			effectiveStatus = req.Status
		}
		if err := workflow.CheckTrackingTransition(role, effectiveStatus, req.TrackingStatus); err != nil {
			status := http.StatusForbidden
			if !workflow.IsTrackingStatus(req.TrackingStatus) {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
	}

	// Completion side effects: one stock increment and one donor stat update,
	// guarded by the previous status not already being completed. The two
	// writes are independent, not transactional.
	if req.Status != "" && workflow.CompletionEffectsDue(appointment.Status, req.Status) {
		h.applyCompletionEffects(&appointment)
	}

	set := bson.M{}
	if req.Status != "" {
		set["status"] = req.Status
	}
	if req.TrackingStatus != "" {
		set["trackingStatus"] = req.TrackingStatus
	}
	if req.HealthStats != nil {
		set["healthStats"] = req.HealthStats
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var updated models.Appointment
	err = collection.FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": appointmentID},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}

	if req.Status != "" {
		h.notifyDonor(updated, req.Status)
	}

	c.JSON(http.StatusOK, updated)
}

// canTouchAppointment is the access check applied before any appointment
// write. Hospital staff and admins may edit any appointment, everyone else
// only their own.
func canTouchAppointment(role string, ownsAppointment bool) bool {
	return role == models.RoleAdmin || role == models.RoleHospital || ownsAppointment
}

// applyCompletionEffects increments the bank stock for the donor's blood group
// and bumps the donor's statistics. Failures are logged, the status write
// still proceeds.
func (h *AppointmentHandler) applyCompletionEffects(appointment *models.Appointment) {
	var donor models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": appointment.Donor}).Decode(&donor); err != nil {
		h.Logger.Error("completion effects: donor lookup failed",
			zap.String("appointment", appointment.ID.Hex()), zap.Error(err))
		return
	}
	if donor.BloodGroup == "" {
		h.Logger.Warn("completion effects skipped: donor has no blood group",
			zap.String("donor", donor.ID.Hex()))
		return
	}

	_, err := h.DB.Collection("bloodbanks").UpdateOne(context.Background(),
		bson.M{"_id": appointment.BloodBank},
		bson.M{"$inc": bson.M{"stock." + donor.BloodGroup: 1}})
	if err != nil {
		h.Logger.Error("completion effects: stock increment failed",
			zap.String("bank", appointment.BloodBank.Hex()), zap.Error(err))
	}

	_, err = h.DB.Collection("users").UpdateOne(context.Background(),
		bson.M{"_id": appointment.Donor},
		bson.M{
			"$set": bson.M{"lastDonationDate": time.Now()},
			"$inc": bson.M{"donationCount": 1, "points": 50},
		})
	if err != nil {
		h.Logger.Error("completion effects: donor stat update failed",
			zap.String("donor", appointment.Donor.Hex()), zap.Error(err))
	}
}

// notifyDonor sends the best-effort status mail and, on completion, pushes a
// live activity event. Failures are logged and swallowed.
func (h *AppointmentHandler) notifyDonor(appointment models.Appointment, newStatus string) {
	var donor models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": appointment.Donor}).Decode(&donor); err != nil || donor.Email == "" {
		return
	}
	var bank models.BloodBank
	if err := h.DB.Collection("bloodbanks").FindOne(context.Background(), bson.M{"_id": appointment.BloodBank}).Decode(&bank); err != nil {
		return
	}

	var err error
	switch newStatus {
	case models.AppointmentConfirmed:
		address := fmt.Sprintf("%s, %s, %s %s", bank.Address.Street, bank.Address.City, bank.Address.State, bank.Address.Zip)
		mapLink := "#"
		if len(bank.Location.Coordinates) == 2 {
			mapLink = fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%f,%f",
				bank.Location.Coordinates[1], bank.Location.Coordinates[0])
		}
		err = h.Mailer.SendAppointmentConfirmation(donor.Email, donor.Name, appointment.Date, bank.Name, address, mapLink)
	case models.AppointmentCancelled:
		err = h.Mailer.SendAppointmentRejection(donor.Email, donor.Name, appointment.Date, bank.Name)
	case models.AppointmentCompleted:
		err = h.Mailer.SendDonationAppreciation(donor.Email, donor.Name, donor.BloodGroup, bank.Name, appointment.Date, donor.DonationCount)
		h.Hub.Broadcast("donation_completed", map[string]any{
			"bloodGroup": donor.BloodGroup,
			"bankName":   bank.Name,
			"city":       bank.Address.City,
		})
	}
	if err != nil {
		h.Logger.Error("failed to send appointment notification",
			zap.String("email", donor.Email), zap.String("status", newStatus), zap.Error(err))
	}
}
