package api

import (
	"net/http" // HTTP status codes

	"household_ledger/internal/ledger"     // Ledger service
	"household_ledger/internal/middleware" // Caller identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RegisterHandler creates an account and returns it without the password hash
func RegisterHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ledger.RegisterInput // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, log, err) // Conflict on a taken email
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a bearer token
func LoginHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ledger.LoginInput // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		token, err := svc.Authenticate(c.Request.Context(), req)
		if err != nil {
			respondError(c, log, err) // Same 401 for unknown email and wrong password
			return
		}
		c.JSON(http.StatusOK, token)
	}
}

// MeHandler returns the authenticated user
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteMeHandler deletes the authenticated user and everything they own
func DeleteMeHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		if err := svc.DeleteUser(c.Request.Context(), userID); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
