package api

import (
	"net/http" // HTTP status codes

	"household_ledger/internal/ledger" // Ledger service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CreateCategoryHandler adds a category for the caller
func CreateCategoryHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		var req ledger.CategoryInput
		if !bindJSON(c, &req) {
			return
		}
		cat, err := svc.CreateCategory(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// ListCategoriesHandler returns the caller's categories, newest first
func ListCategoriesHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		cats, err := svc.ListCategories(c.Request.Context(), userID)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}

// GetCategoryHandler returns one category; 404 when missing, 403 when not the caller's
func GetCategoryHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		cat, err := svc.GetCategory(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// UpdateCategoryHandler applies a partial update
func UpdateCategoryHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var patch ledger.CategoryPatch // Absent fields stay untouched
		if !bindJSON(c, &patch) {
			return
		}
		cat, err := svc.UpdateCategory(c.Request.Context(), userID, id, patch)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

// DeleteCategoryHandler removes a category; ?force=true also removes its transactions
func DeleteCategoryHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		force, ok := queryBool(c, "force")
		if !ok {
			return
		}
		if err := svc.DeleteCategory(c.Request.Context(), userID, id, force); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// UnregisteredRecurringHandler lists recurring categories with no transaction in ?month
func UnregisteredRecurringHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		month, ok := queryDate(c, "month") // Defaults to the current month
		if !ok {
			return
		}
		cats, err := svc.UnregisteredRecurring(c.Request.Context(), userID, month)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, cats)
	}
}
