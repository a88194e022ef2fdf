package middleware

import (
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Keys for values the auth middleware stores in the request context.
const (
	userIDKey        = contextKey("userID")
	pointOfSaleIDKey = contextKey("pointOfSaleID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetPointOfSaleIDFromContext retrieves the point of sale the token was issued for.
func GetPointOfSaleIDFromContext(c *gin.Context) (int64, bool) {
	posID, ok := c.Request.Context().Value(pointOfSaleIDKey).(int64)
	return posID, ok
}

// GetActorFromContext combines user and point of sale into a domain.Actor.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	posID, ok := GetPointOfSaleIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: userID, PointOfSaleID: posID}, true
}
