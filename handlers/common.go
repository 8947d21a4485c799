package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"snapfeed/engagement"
	"snapfeed/store"
)

// fail writes the structured error body every failure shares.
func fail(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": kind, "message": message})
}

// failFor maps a store or engagement error to its HTTP shape.
func failFor(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, "NotFound", notFoundMsg)
	case errors.Is(err, engagement.ErrPartialUpdate):
		fail(c, http.StatusInternalServerError, "PartialUpdate",
			"Engagement state may be inconsistent, retry the operation")
	case errors.Is(err, store.ErrDuplicate):
		fail(c, http.StatusConflict, "Conflict", "Duplicate value for a unique field")
	default:
		fail(c, http.StatusInternalServerError, "Internal", "Database error")
	}
}

// actorID returns the authenticated user's id from the context.
func actorID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		fail(c, http.StatusUnauthorized, "Unauthorized", "Invalid user ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// viewerID returns the optional viewer id when the request carried a
// valid token. nil means anonymous, which projections must distinguish
// from a viewer who has not engaged.
func viewerID(c *gin.Context) *primitive.ObjectID {
	userID := c.GetString("userId")
	if userID == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	return &id
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "InvalidInput", "Invalid ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
