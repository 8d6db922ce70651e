// server/internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"jeevan-api-server/internal/auth"
	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type UserHandler struct {
	DB     *mongo.Database
	Mailer *mailer.Mailer
	Logger *zap.Logger
}

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role"`
	BloodGroup string `json:"bloodGroup"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// Register creates (or refreshes) an unverified account and mails the OTP.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(req.Email)
	if req.BloodGroup != "" && !models.IsValidBloodGroup(req.BloodGroup) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood group"})
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleDonor
	}
	if role != models.RoleDonor && role != models.RoleRecipient && role != models.RoleHospital {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	collection := h.DB.Collection("users")

	var existing models.User
	err := collection.FindOne(context.Background(), bson.M{"email": email}).Decode(&existing)
	if err == nil && existing.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for user"})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	otp := generateOTP()
	otpExpiry := time.Now().Add(10 * time.Minute)

	// The OTP is also logged so local setups work without SMTP.
	h.Logger.Info("registration OTP generated", zap.String("email", email), zap.String("otp", otp))

	update := bson.M{"$set": bson.M{
		"name":        req.Name,
		"email":       email,
		"password":    hashedPassword,
		"role":        role,
		"bloodGroup":  req.BloodGroup,
		"phone":       req.Phone,
		"address":     req.Address,
		"location":    models.NewGeoPoint(0, 0),
		"isAvailable": true,
		"isVerified":  false,
		"otp":         otp,
		"otpExpiry":   otpExpiry,
	}, "$setOnInsert": bson.M{
		"createdAt":     time.Now(),
		"donationCount": 0,
		"points":        0,
	}}

	opts := optionsUpsert()
	if _, err := collection.UpdateOne(context.Background(), bson.M{"email": email}, update, opts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := h.Mailer.SendOTP(email, otp); err != nil {
		// Registration still succeeds, the OTP is in the server log.
		h.Logger.Error("failed to send OTP email", zap.String("email", email), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"message": "OTP sent to email", "email": email})
}

// VerifyOTP flips the account to verified when the code matches.
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.ToLower(req.Email)

	collection := h.DB.Collection("users")
	var user models.User
	if err := collection.FindOne(context.Background(), bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already verified"})
		return
	}
	if user.OTP != req.OTP {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}
	if user.OTPExpiry != nil && user.OTPExpiry.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "OTP expired"})
		return
	}

	_, err := collection.UpdateOne(context.Background(), bson.M{"_id": user.ID}, bson.M{
		"$set":   bson.M{"isVerified": true},
		"$unset": bson.M{"otp": "", "otpExpiry": ""},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

// Login verifies credentials and issues a JWT.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.ToLower(req.Email)

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email not verified"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// GetProfile returns the caller's own user document.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user models.User
	err := h.DB.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	BloodGroup       string     `json:"bloodGroup"`
	Address          string     `json:"address"`
	IsAvailable      *bool      `json:"isAvailable"`
	HealthConditions *string    `json:"healthConditions"`
	Lat              *float64   `json:"lat"`
	Lng              *float64   `json:"lng"`
}

// UpdateProfile edits the caller's own profile. Role, email and password are
// not updatable here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.BloodGroup != "" {
		if !models.IsValidBloodGroup(req.BloodGroup) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood group"})
			return
		}
		set["bloodGroup"] = req.BloodGroup
	}
	if req.Address != "" {
		set["address"] = req.Address
	}
	if req.IsAvailable != nil {
		set["isAvailable"] = *req.IsAvailable
	}
	if req.HealthConditions != nil {
		set["healthConditions"] = *req.HealthConditions
	}
	if req.Lat != nil && req.Lng != nil {
		set["location"] = models.NewGeoPoint(*req.Lng, *req.Lat)
	}

	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	var updated models.User
	err := h.DB.Collection("users").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": userID},
		bson.M{"$set": set},
		findOneAndUpdateReturnAfter(),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
