package api

import (
	"errors"   // Error kind matching
	"net/http" // HTTP status codes

	"household_ledger/internal/ledger" // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// statusFor maps a service error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Unclassified errors never
// reach the client verbatim.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	status := statusFor(err)
	msg := "internal server error"
	var lerr *ledger.Error
	if errors.As(err, &lerr) && status != http.StatusInternalServerError {
		msg = lerr.Message
	}
	if status == http.StatusInternalServerError && !errors.Is(err, ledger.ErrInternal) {
		// Already logged by the service when classified as internal
		log.WithFields(logrus.Fields{"path": c.FullPath(), "error": err.Error()}).Error("Unhandled error")
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// badRequest rejects a body that could not be decoded
func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}

// invalidParam rejects a malformed path or query parameter
func invalidParam(c *gin.Context, name, msg string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": name + " " + msg})
}
