package api

import (
	"net/http" // HTTP status codes

	"household_ledger/internal/domain" // Domain types
	"household_ledger/internal/ledger" // Ledger service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// CreateTransactionHandler records a transaction for the caller
func CreateTransactionHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		var req ledger.TransactionInput
		if !bindJSON(c, &req) {
			return
		}
		txn, err := svc.CreateTransaction(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, txn)
	}
}

// ListTransactionsHandler returns a filtered page of the caller's transactions
func ListTransactionsHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		var q ledger.TransactionQuery
		if q.StartDate, ok = queryDate(c, "start_date"); !ok {
			return
		}
		if q.EndDate, ok = queryDate(c, "end_date"); !ok {
			return
		}
		if q.CategoryID, ok = queryUUID(c, "category_id"); !ok {
			return
		}
		if raw := c.Query("type"); raw != "" {
			typ, err := domain.ParseTransactionType(raw)
			if err != nil {
				invalidParam(c, "type", "must be one of income, expense")
				return
			}
			q.Type = &typ
		}
		skip, ok := queryInt(c, "skip") // Offset, default 0
		if !ok {
			return
		}
		if skip != nil {
			q.Skip = *skip
		}
		if q.Limit, ok = queryInt(c, "limit"); !ok { // Page size, default from config
			return
		}

		txns, err := svc.ListTransactions(c.Request.Context(), userID, q)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, txns)
	}
}

// GetTransactionHandler returns one transaction
func GetTransactionHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		txn, err := svc.GetTransaction(c.Request.Context(), userID, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}

// UpdateTransactionHandler applies a partial update
func UpdateTransactionHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var patch ledger.TransactionPatch // "memo": null clears the memo
		if !bindJSON(c, &patch) {
			return
		}
		txn, err := svc.UpdateTransaction(c.Request.Context(), userID, id, patch)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, txn)
	}
}

// DeleteTransactionHandler removes one transaction
func DeleteTransactionHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
			respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
