package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"household_ledger/internal/domain"     // Domain types
	"household_ledger/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Identifiers
)

// callerID returns the authenticated user id, answering 401 when absent
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		abortUnauthorized(c)
	}
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		invalidParam(c, "id", "must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body into dest, answering 400 on failure
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name string) (*domain.Date, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		invalidParam(c, name, "must be a date in YYYY-MM-DD format")
		return nil, false
	}
	return &d, true
}

// queryUUID parses an optional UUID query parameter
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		invalidParam(c, name, "must be a valid UUID")
		return nil, false
	}
	return &id, true
}

// queryInt parses an optional integer query parameter
func queryInt(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		invalidParam(c, name, "must be an integer")
		return nil, false
	}
	return &n, true
}

// queryBool parses an optional boolean query parameter
func queryBool(c *gin.Context, name string) (bool, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		invalidParam(c, name, "must be true or false")
		return false, false
	}
	return v, true
}
