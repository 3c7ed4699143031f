package api

import (
	"net/http" // HTTP status codes

	"household_ledger/internal/ledger" // Ledger service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CreateBudgetHandler plans a monthly budget for one of the caller's categories
func CreateBudgetHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		var req ledger.BudgetInput
		if !bindJSON(c, &req) {
			return
		}
		budget, err := svc.CreateBudget(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, log, err) // 409 when the month already has a budget
			return
		}
		c.JSON(http.StatusCreated, budget)
	}
}

// ListBudgetsHandler returns the caller's budgets filtered by ?month and ?category_id
func ListBudgetsHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		var q ledger.BudgetQuery
		if q.Month, ok = queryDate(c, "month"); !ok {
			return
		}
		if q.CategoryID, ok = queryUUID(c, "category_id"); !ok {
			return
		}
		budgets, err := svc.ListBudgets(c.Request.Context(), userID, q)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, budgets)
	}
}

// GetBudgetHandler returns one budget
func GetBudgetHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		budget, err := svc.GetBudget(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

// UpdateBudgetHandler applies a partial update
func UpdateBudgetHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var patch ledger.BudgetPatch
		if !bindJSON(c, &patch) {
			return
		}
		budget, err := svc.UpdateBudget(c.Request.Context(), userID, id, patch)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

// DeleteBudgetHandler removes one budget
func DeleteBudgetHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.DeleteBudget(c.Request.Context(), userID, id); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
