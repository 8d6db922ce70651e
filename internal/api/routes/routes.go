// server/internal/api/routes/routes.go
package routes

import (
	"jeevan-api-server/config"
	"jeevan-api-server/internal/ai"
	"jeevan-api-server/internal/api/handlers"
	"jeevan-api-server/internal/api/middleware"
	"jeevan-api-server/internal/badges"
	"jeevan-api-server/internal/broadcast"
	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/models"
	"jeevan-api-server/internal/payment"
	"jeevan-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SetupRouter wires every handler behind its route group.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	mail *mailer.Mailer,
	assistant *ai.Assistant,
	payments *payment.Client,
	wsHub *socket.Hub,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.App.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	coordinator := &broadcast.Coordinator{DB: db, Mailer: mail, Logger: logger, BaseURL: cfg.App.BaseURL}
	evaluator := &badges.Evaluator{DB: db}

	userHandler := &handlers.UserHandler{DB: db, Mailer: mail, Logger: logger}
	bankHandler := &handlers.BloodBankHandler{DB: db, Logger: logger}
	appointmentHandler := &handlers.AppointmentHandler{DB: db, Mailer: mail, Hub: wsHub, Logger: logger}
	requestHandler := &handlers.RequestHandler{DB: db, Logger: logger}
	badgeHandler := &handlers.BadgeHandler{DB: db, Evaluator: evaluator, Logger: logger}
	disasterHandler := &handlers.DisasterHandler{Coordinator: coordinator, Logger: logger}
	sosHandler := &handlers.SOSHandler{DB: db, Hub: wsHub, Logger: logger}
	feedbackHandler := &handlers.FeedbackHandler{DB: db, Mailer: mail, Logger: logger, AdminEmail: cfg.App.AdminEmail}
	reminderHandler := &handlers.ReminderHandler{DB: db, Logger: logger}
	campHandler := &handlers.CampHandler{DB: db, Logger: logger}
	volunteerHandler := &handlers.VolunteerHandler{DB: db, Mailer: mail, Logger: logger, AdminEmail: cfg.App.AdminEmail}
	leaderboardHandler := &handlers.LeaderboardHandler{DB: db, Logger: logger}
	adminHandler := &handlers.AdminHandler{DB: db, Logger: logger}
	chatHandler := &handlers.ChatHandler{DB: db, Assistant: assistant, Logger: logger}
	paymentHandler := &handlers.PaymentHandler{Payments: payments, Logger: logger}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Logger: logger}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// Public routes.
		apiV1.POST("/register", userHandler.Register)
		apiV1.POST("/register/verify", userHandler.VerifyOTP)
		apiV1.POST("/auth/login", userHandler.Login)

		apiV1.GET("/bloodbanks", bankHandler.ListBloodBanks)
		apiV1.GET("/bloodbanks/:id", bankHandler.GetBloodBank)

		apiV1.GET("/disaster", disasterHandler.GetActiveAlert)
		apiV1.GET("/sos", sosHandler.ListActiveSOS)
		apiV1.POST("/sos", middleware.OptionalAuthenticate(), sosHandler.TriggerSOS)
		apiV1.PATCH("/sos/:id", sosHandler.UpdateSOS)

		apiV1.POST("/camps", campHandler.ProposeCamp)
		apiV1.GET("/camps", campHandler.ListCamps)
		apiV1.POST("/join", volunteerHandler.Join)

		apiV1.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		apiV1.POST("/payments/order", paymentHandler.CreateOrder)
		apiV1.POST("/chat", middleware.OptionalAuthenticate(), chatHandler.Chat)

		// Authenticated routes.
		authed := apiV1.Group("/")
		authed.Use(middleware.Authenticate())
		{
			authed.GET("/profile", userHandler.GetProfile)
			authed.PUT("/profile", userHandler.UpdateProfile)

			authed.GET("/appointments", appointmentHandler.ListAppointments)
			authed.POST("/appointments", appointmentHandler.CreateAppointment)
			authed.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)

			authed.GET("/requests", requestHandler.ListRequests)
			authed.POST("/requests", requestHandler.CreateRequest)
			authed.GET("/requests/:id", requestHandler.GetRequest)
			authed.DELETE("/requests/:id", requestHandler.DeleteRequest)

			authed.GET("/badges", badgeHandler.GetBadges)

			authed.GET("/feedback", feedbackHandler.ListFeedback)
			authed.POST("/feedback", feedbackHandler.SubmitFeedback)

			authed.GET("/reminders", reminderHandler.ListReminders)
			authed.POST("/reminders", reminderHandler.HandleAction)
			authed.DELETE("/reminders", reminderHandler.CancelReminder)

			authed.POST("/ai/health-insight", chatHandler.HealthInsight)
		}

		// Hospital staff and admins.
		staff := apiV1.Group("/")
		staff.Use(middleware.Authenticate())
		staff.Use(middleware.Authorize(models.RoleHospital, models.RoleAdmin))
		{
			staff.PUT("/bloodbanks/:id", bankHandler.UpdateBloodBank)
			staff.PUT("/requests/:id", requestHandler.UpdateRequest)
		}

		// Admin only.
		admin := apiV1.Group("/")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize(models.RoleAdmin))
		{
			admin.POST("/bloodbanks", bankHandler.CreateBloodBank)
			admin.DELETE("/bloodbanks/:id", bankHandler.DeleteBloodBank)

			admin.POST("/disaster", disasterHandler.HandleAction)
			admin.POST("/badges", badgeHandler.AwardBadge)
			admin.PUT("/camps/:id", campHandler.UpdateCamp)

			admin.GET("/volunteers", volunteerHandler.ListVolunteers)
			admin.PUT("/volunteers/:id", volunteerHandler.UpdateVolunteer)
			admin.DELETE("/volunteers/:id", volunteerHandler.DeleteVolunteer)

			admin.GET("/admin/stats", adminHandler.GetStats)
			admin.GET("/admin/users", adminHandler.ListUsers)
			admin.PUT("/admin/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/admin/users/:id", adminHandler.DeleteUser)
		}
	}

	return router
}
