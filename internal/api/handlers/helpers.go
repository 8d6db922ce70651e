// server/internal/api/handlers/helpers.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sessionUserID returns the caller's user id from the request context.
func sessionUserID(c *gin.Context) (primitive.ObjectID, bool) {
	idInterface, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	idStr, ok := idInterface.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// sessionRole returns the caller's role from the request context.
func sessionRole(c *gin.Context) string {
	roleInterface, _ := c.Get("user_role")
	role, _ := roleInterface.(string)
	return role
}

func optionsUpsert() *options.UpdateOptions {
	return options.Update().SetUpsert(true)
}

func findOneAndUpdateReturnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
