package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	s := newServer(t)
	token := s.signup("cat@example.com")

	id := s.create("/categories", token, "category_id", map[string]any{"name": "food", "type": "expense"})

	w := s.do(http.MethodGet, "/categories/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cat := decode[map[string]any](t, w)
	assert.Equal(t, "#808080", cat["color"])
	assert.Equal(t, false, cat["is_recurring"])
	assert.Nil(t, cat["frequency"])

	w = s.do(http.MethodPut, "/categories/"+id, token, map[string]any{"color": "#FF0000"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cat = decode[map[string]any](t, w)
	assert.Equal(t, "#FF0000", cat["color"])
	assert.Equal(t, "food", cat["name"])

	w = s.do(http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = s.do(http.MethodDelete, "/categories/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodGet, "/categories/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryValidation(t *testing.T) {
	s := newServer(t)
	token := s.signup("val@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"type": "expense"}},
		{"unknown type", map[string]any{"name": "x", "type": "transfer"}},
		{"bad color", map[string]any{"name": "x", "type": "expense", "color": "red"}},
		{"recurring without frequency", map[string]any{"name": "x", "type": "expense", "is_recurring": true, "default_amount": 100}},
		{"recurring without amount", map[string]any{"name": "x", "type": "expense", "is_recurring": true, "frequency": "monthly"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/categories", token, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}
}

func TestCategoryOwnership(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice@example.com")
	bob := s.signup("bob@example.com")
	id := s.create("/categories", alice, "category_id", map[string]any{"name": "rent", "type": "expense"})

	w := s.do(http.MethodGet, "/categories/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPut, "/categories/"+id, bob, map[string]any{"name": "mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodDelete, "/categories/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/categories", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = s.do(http.MethodGet, "/categories/"+uuid.NewString(), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodPut, "/categories/"+uuid.NewString(), bob, map[string]any{"name": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/categories/not-a-uuid", bob, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteCategoryWithTransactionsNeedsForce(t *testing.T) {
	s := newServer(t)
	token := s.signup("force@example.com")
	id := s.create("/categories", token, "category_id", map[string]any{"name": "food", "type": "expense"})
	txnID := s.create("/transactions", token, "transaction_id", map[string]any{"category_id": id, "amount": 1200, "date": "2024-05-03"})
	s.create("/budgets", token, "budget_id", map[string]any{"category_id": id, "amount": 30000, "month": "2024-05-01"})

	w := s.do(http.MethodDelete, "/categories/"+id, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodDelete, "/categories/"+id+"?force=maybe", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodDelete, "/categories/"+id+"?force=true", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/transactions/"+txnID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/budgets", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUnregisteredRecurringEndpoint(t *testing.T) {
	s := newServer(t)
	token := s.signup("rec@example.com")
	rent := s.create("/categories", token, "category_id", map[string]any{
		"name": "rent", "type": "expense", "is_recurring": true, "frequency": "monthly", "default_amount": 80000,
	})
	phone := s.create("/categories", token, "category_id", map[string]any{
		"name": "phone", "type": "expense", "is_recurring": true, "frequency": "monthly", "default_amount": 3000,
	})
	s.create("/categories", token, "category_id", map[string]any{"name": "snacks", "type": "expense"})
	s.create("/transactions", token, "transaction_id", map[string]any{"category_id": rent, "amount": 80000, "date": "2024-05-25"})

	w := s.do(http.MethodGet, "/categories/recurring/unregistered?month=2024-05-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[[]map[string]any](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, phone, got[0]["category_id"])

	w = s.do(http.MethodGet, "/categories/recurring/unregistered?month=2024-06-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)

	w = s.do(http.MethodGet, "/categories/recurring/unregistered?month=May", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
