// server/internal/database/seeder.go
package database

import (
	"context"
	"log"
	"time"

	"jeevan-api-server/internal/auth"
	"jeevan-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin makes sure the system admin account exists so the dashboard is
// reachable on a fresh database.
func SeedAdmin(db *mongo.Database) error {
	userCollection := db.Collection("users")
	adminEmail := "admin@jeevan.org"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": adminEmail})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin already exists. Seeding skipped.")
		return nil
	}

	log.Println("Admin not found. Seeding...")
	hashedPassword, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	admin := models.User{
		Name:        "System Admin",
		Email:       adminEmail,
		Password:    hashedPassword,
		Role:        models.RoleAdmin,
		IsVerified:  true,
		IsAvailable: false,
		CreatedAt:   time.Now(),
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	log.Println("Admin seeded successfully.")
	return nil
}
