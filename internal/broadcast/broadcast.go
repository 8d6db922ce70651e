// server/internal/broadcast/broadcast.go
package broadcast

import (
	"context"
	"sync"
	"time"

	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MaxRecipients caps how many donors a single broadcast notifies.
const MaxRecipients = 50

// Coordinator activates disaster alerts and fans out donor notifications.
type Coordinator struct {
	DB      *mongo.Database
	Mailer  *mailer.Mailer
	Logger  *zap.Logger
	BaseURL string
}

// CreateAlertInput carries the admin's alert parameters.
type CreateAlertInput struct {
	Title               string
	Description         string
	Location            string
	Radius              float64
	RequiredBloodGroups []string
	CreatedBy           primitive.ObjectID
}

// CapRecipients truncates the notified set to MaxRecipients.
func CapRecipients(donors []models.User) []models.User {
	if len(donors) > MaxRecipients {
		return donors[:MaxRecipients]
	}
	return donors
}

// CreateAlert deactivates every previous alert, inserts the new one as active
// and notifies matching donors. The alert is created regardless of how many
// notifications succeed; each send failure is logged and dropped.
func (c *Coordinator) CreateAlert(ctx context.Context, in CreateAlertInput) (*models.DisasterAlert, error) {
	// Deactivate all previous alerts before activating the new one.
	if _, err := c.DB.Collection("disaster_alerts").UpdateMany(ctx,
		bson.M{}, bson.M{"$set": bson.M{"isActive": false}}); err != nil {
		return nil, err
	}

	alert := models.DisasterAlert{
		Title:               in.Title,
		Description:         in.Description,
		Location:            in.Location,
		Radius:              in.Radius,
		RequiredBloodGroups: in.RequiredBloodGroups,
		IsActive:            true,
		CreatedBy:           &in.CreatedBy,
		CreatedAt:           time.Now(),
	}
	result, err := c.DB.Collection("disaster_alerts").InsertOne(ctx, alert)
	if err != nil {
		return nil, err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		alert.ID = oid
	}

	c.notifyDonors(ctx, alert)

	return &alert, nil
}

// notifyDonors mails up to MaxRecipients matching donors concurrently. A
// broadcast failure never fails the alert creation.
func (c *Coordinator) notifyDonors(ctx context.Context, alert models.DisasterAlert) {
	groups := alert.RequiredBloodGroups
	if groups == nil {
		groups = []string{}
	}
	cursor, err := c.DB.Collection("users").Find(ctx, bson.M{
		"role":        models.RoleDonor,
		"isAvailable": true,
		"bloodGroup":  bson.M{"$in": groups},
	})
	if err != nil {
		c.Logger.Error("broadcast donor query failed", zap.Error(err))
		return
	}
	var donors []models.User
	if err := cursor.All(ctx, &donors); err != nil {
		c.Logger.Error("broadcast donor decode failed", zap.Error(err))
		return
	}

	recipients := CapRecipients(donors)

	var wg sync.WaitGroup
	for _, donor := range recipients {
		wg.Add(1)
		go func(d models.User) {
			defer wg.Done()
			err := c.Mailer.SendDisasterAlert(d.Email, d.Name, d.BloodGroup,
				alert.Title, alert.Description, alert.Location, c.BaseURL)
			if err != nil {
				c.Logger.Error("failed to send disaster alert",
					zap.String("email", d.Email), zap.Error(err))
			}
		}(donor)
	}
	wg.Wait()

	c.Logger.Info("disaster broadcast sent",
		zap.String("title", alert.Title), zap.Int("recipients", len(recipients)))
}

// ResolveAll marks every alert inactive.
func (c *Coordinator) ResolveAll(ctx context.Context) error {
	_, err := c.DB.Collection("disaster_alerts").UpdateMany(ctx,
		bson.M{}, bson.M{"$set": bson.M{"isActive": false}})
	return err
}

// ActiveAlert returns the most recently created alert still flagged active, or
// nil when there is none.
func (c *Coordinator) ActiveAlert(ctx context.Context) (*models.DisasterAlert, error) {
	var alert models.DisasterAlert
	err := c.DB.Collection("disaster_alerts").FindOne(ctx,
		bson.M{"isActive": true},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}
