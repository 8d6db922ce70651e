// server/internal/broadcast/broadcast_test.go
package broadcast

import (
	"context"
	"fmt"
	"testing"

	"jeevan-api-server/config"
	"jeevan-api-server/internal/mailer"
	"jeevan-api-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func TestCapRecipients(t *testing.T) {
	assert.Empty(t, CapRecipients(nil))

	few := make([]models.User, 10)
	assert.Len(t, CapRecipients(few), 10)

	exact := make([]models.User, MaxRecipients)
	assert.Len(t, CapRecipients(exact), MaxRecipients)

	many := make([]models.User, 120)
	for i := range many {
		many[i].Email = fmt.Sprintf("donor%d@example.com", i)
	}
	capped := CapRecipients(many)
	assert.Len(t, capped, MaxRecipients)
	// The first donors in query order are kept.
	assert.Equal(t, "donor0@example.com", capped[0].Email)
	assert.Equal(t, "donor49@example.com", capped[MaxRecipients-1].Email)
}

func newTestCoordinator(mt *mtest.T) *Coordinator {
	return &Coordinator{
		DB:     mt.DB,
		Mailer: mailer.New(config.SMTPConfig{}, zap.NewNop()),
		Logger: zap.NewNop(),
	}
}

func TestAlertActivationSequence(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deactivate-all runs before the new alert is inserted", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(), // UpdateMany flipping previous alerts inactive
			mtest.CreateSuccessResponse(), // InsertOne for the new alert
			mtest.CreateCursorResponse(0, "jeevan.users", mtest.FirstBatch), // no donors to notify
		)

		c := newTestCoordinator(mt)
		alert, err := c.CreateAlert(context.Background(), CreateAlertInput{
			Title:               "City flood",
			Description:         "Urgent need for O- units",
			RequiredBloodGroups: []string{"O-"},
			CreatedBy:           primitive.NewObjectID(),
		})
		require.NoError(mt, err)
		assert.True(mt, alert.IsActive)

		var commands []string
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
		}
		// Every prior alert is deactivated before the new one exists, so a
		// reader never sees two active alerts.
		require.GreaterOrEqual(mt, len(commands), 2)
		assert.Equal(mt, "update", commands[0])
		assert.Equal(mt, "insert", commands[1])
	})

	mt.Run("active read returns the one alert left active", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "jeevan.disaster_alerts", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "title", Value: "Second alert"},
			{Key: "isActive", Value: true},
		}))

		alert, err := newTestCoordinator(mt).ActiveAlert(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, alert)
		assert.Equal(mt, "Second alert", alert.Title)
		assert.True(mt, alert.IsActive)
	})

	mt.Run("no active alert yields nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "jeevan.disaster_alerts", mtest.FirstBatch))

		alert, err := newTestCoordinator(mt).ActiveAlert(context.Background())
		require.NoError(mt, err)
		assert.Nil(mt, alert)
	})
}
