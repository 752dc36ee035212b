package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campuskeep/outpass-api/internal/middleware"
	"github.com/campuskeep/outpass-api/internal/models"
)

// claimsFromContext returns the authenticated caller, or nil when the route
// was reached without the JWT middleware.
func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
