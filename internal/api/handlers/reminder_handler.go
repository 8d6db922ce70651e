// server/internal/api/handlers/reminder_handler.go
package handlers

import (
	"context"
	"fmt"
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

// Whole blood donors must wait 56 days between donations.
const donationCooldownDays = 56

type ReminderHandler struct {
	DB     *mongo.Database
	Logger *zap.Logger
}

type ReminderActionRequest struct {
	Action        string `json:"action" binding:"required"`
	AppointmentID string `json:"appointmentId"`
	HoursBefore   int    `json:"hoursBefore"`
}

// Eligibility is the donation-cooldown block returned alongside reminders.
type Eligibility struct {
	CanDonateNow  bool       `json:"canDonateNow"`
	LastDonation  *time.Time `json:"lastDonation,omitempty"`
	EligibleDate  *time.Time `json:"eligibleDate,omitempty"`
	DaysRemaining int        `json:"daysRemaining"`
}

// ComputeEligibility applies the cooldown rule to a last-donation date.
func ComputeEligibility(lastDonation *time.Time, now time.Time) Eligibility {
	if lastDonation == nil {
		return Eligibility{CanDonateNow: true}
	}
	eligibleDate := lastDonation.Add(donationCooldownDays * 24 * time.Hour)
	remaining := int(eligibleDate.Sub(now).Hours() / 24)
	if remaining < 0 {
		remaining = 0
	}
	return Eligibility{
		CanDonateNow:  !now.Before(eligibleDate),
		LastDonation:  lastDonation,
		EligibleDate:  &eligibleDate,
		DaysRemaining: remaining,
	}
}

// ListReminders returns the caller's reminders plus their donation
// eligibility.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := bson.M{"userId": userID}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	cursor, err := h.DB.Collection("reminders").Find(context.Background(), query,
		options.Find().SetSort(bson.D{{Key: "scheduledFor", Value: 1}}).SetLimit(20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query reminders"})
		return
	}
	defer cursor.Close(context.Background())

	var reminders []models.Reminder
	if err = cursor.All(context.Background(), &reminders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reminders"})
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}

	var user models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders":   reminders,
		"eligibility": ComputeEligibility(user.LastDonationDate, time.Now()),
	})
}

// HandleAction creates reminders. Three actions are supported, anything else
// is a 400.
func (h *ReminderHandler) HandleAction(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ReminderActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "setup_donation_reminder":
		h.setupDonationReminder(c, userID)
	case "create_appointment_reminder":
		h.createAppointmentReminder(c, userID, req)
	case "create_post_donation_reminder":
		h.createPostDonationReminders(c, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
	}
}

// setupDonationReminder schedules a nudge 3 days before the donor becomes
// eligible again. Only one pending donation_due reminder exists at a time.
func (h *ReminderHandler) setupDonationReminder(c *gin.Context, userID primitive.ObjectID) {
	var user models.User
	if err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user.LastDonationDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No previous donation on record"})
		return
	}

	eligibleDate := user.LastDonationDate.Add(donationCooldownDays * 24 * time.Hour)
	scheduledFor := eligibleDate.Add(-3 * 24 * time.Hour)
	if scheduledFor.Before(time.Now()) {
		scheduledFor = time.Now()
	}

	count, err := h.DB.Collection("reminders").CountDocuments(context.Background(), bson.M{
		"userId": userID,
		"type":   models.ReminderDonationDue,
		"status": models.ReminderPending,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing reminders"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Donation reminder already scheduled"})
		return
	}

	reminder := models.Reminder{
		UserID:       userID,
		Type:         models.ReminderDonationDue,
		Title:        "You can donate again soon!",
		Message:      fmt.Sprintf("You become eligible to donate on %s. Book your next appointment now.", eligibleDate.Format("Jan 2, 2006")),
		ScheduledFor: scheduledFor,
		Status:       models.ReminderPending,
		Channel:      "email",
		CreatedAt:    time.Now(),
	}
	if _, err := h.DB.Collection("reminders").InsertOne(context.Background(), reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Donation reminder scheduled", "scheduledFor": scheduledFor})
}

// createAppointmentReminder schedules a nudge N hours before an appointment.
func (h *ReminderHandler) createAppointmentReminder(c *gin.Context, userID primitive.ObjectID, req ReminderActionRequest) {
	if req.AppointmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "appointmentId is required"})
		return
	}
	appointmentID, err := primitive.ObjectIDFromHex(req.AppointmentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment id"})
		return
	}
	hoursBefore := req.HoursBefore
	if hoursBefore <= 0 {
		hoursBefore = 24
	}

	var appointment models.Appointment
	err = h.DB.Collection("appointments").FindOne(context.Background(),
		bson.M{"_id": appointmentID, "donor": userID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointment"})
		}
		return
	}

	scheduledFor := appointment.Date.Add(-time.Duration(hoursBefore) * time.Hour)
	reminder := models.Reminder{
		UserID:       userID,
		Type:         models.ReminderAppointment,
		Title:        "Upcoming donation appointment",
		Message:      fmt.Sprintf("Your donation appointment is on %s at %s.", appointment.Date.Format("Jan 2, 2006"), appointment.TimeSlot),
		ScheduledFor: scheduledFor,
		Status:       models.ReminderPending,
		Channel:      "email",
		Metadata:     map[string]any{"appointmentId": appointmentID.Hex()},
		CreatedAt:    time.Now(),
	}
	if _, err := h.DB.Collection("reminders").InsertOne(context.Background(), reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment reminder scheduled", "scheduledFor": scheduledFor})
}

// createPostDonationReminders schedules the care series after a donation:
// immediately, next day and one week out.
func (h *ReminderHandler) createPostDonationReminders(c *gin.Context, userID primitive.ObjectID) {
	now := time.Now()
	series := []struct {
		Offset  time.Duration
		Title   string
		Message string
	}{
		{0, "Post-donation care", "Drink plenty of fluids and avoid heavy lifting for the next 24 hours."},
		{24 * time.Hour, "How are you feeling?", "Keep eating iron-rich foods and stay hydrated while your body recovers."},
		{7 * 24 * time.Hour, "One week check-in", "Your red blood cells are regenerating. Thank you again for donating!"},
	}

	docs := make([]any, 0, len(series))
	for _, s := range series {
		docs = append(docs, models.Reminder{
			UserID:       userID,
			Type:         models.ReminderPostDonationCare,
			Title:        s.Title,
			Message:      s.Message,
			ScheduledFor: now.Add(s.Offset),
			Status:       models.ReminderPending,
			Channel:      "email",
			CreatedAt:    now,
		})
	}
	if _, err := h.DB.Collection("reminders").InsertMany(context.Background(), docs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminders"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post-donation care reminders scheduled", "count": len(docs)})
}

// CancelReminder marks one of the caller's reminders cancelled.
func (h *ReminderHandler) CancelReminder(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reminderID, err := primitive.ObjectIDFromHex(c.Query("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder id"})
		return
	}

	result, err := h.DB.Collection("reminders").UpdateOne(context.Background(),
		bson.M{"_id": reminderID, "userId": userID},
		bson.M{"$set": bson.M{"status": models.ReminderCancelled}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel reminder"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder cancelled"})
}
