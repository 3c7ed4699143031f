package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionTypeFollowsCategory(t *testing.T) {
	s := newServer(t)
	token := s.signup("type@example.com")
	salary := s.create("/categories", token, "category_id", map[string]any{"name": "salary", "type": "income"})

	w := s.do(http.MethodPost, "/transactions", token, map[string]any{"category_id": salary, "amount": 300000, "date": "2024-05-25"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "income", decode[map[string]any](t, w)["type"])

	w = s.do(http.MethodPost, "/transactions", token, map[string]any{"category_id": salary, "amount": 100, "type": "expense", "date": "2024-05-25"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/transactions", token, map[string]any{"category_id": salary, "amount": 0, "date": "2024-05-25"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPost, "/transactions", token, map[string]any{"category_id": salary, "amount": 100, "date": "25/05/2024"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactionsFilters(t *testing.T) {
	s := newServer(t)
	token := s.signup("list@example.com")
	food := s.create("/categories", token, "category_id", map[string]any{"name": "food", "type": "expense"})
	salary := s.create("/categories", token, "category_id", map[string]any{"name": "salary", "type": "income"})

	s.create("/transactions", token, "transaction_id", map[string]any{"category_id": food, "amount": 500, "date": "2024-04-30"})
	s.create("/transactions", token, "transaction_id", map[string]any{"category_id": food, "amount": 700, "date": "2024-05-02"})
	s.create("/transactions", token, "transaction_id", map[string]any{"category_id": salary, "amount": 250000, "date": "2024-05-25"})

	list := func(query string) []map[string]any {
		t.Helper()
		w := s.do(http.MethodGet, "/transactions"+query, token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[[]map[string]any](t, w)
	}

	all := list("")
	require.Len(t, all, 3)
	assert.Equal(t, "2024-05-25", all[0]["date"])
	assert.Equal(t, "2024-04-30", all[2]["date"])

	assert.Len(t, list("?start_date=2024-05-01&end_date=2024-05-31"), 2)
	assert.Len(t, list("?category_id="+food), 2)
	assert.Len(t, list("?type=income"), 1)

	page := list("?skip=1&limit=1")
	require.Len(t, page, 1)
	assert.Equal(t, "2024-05-02", page[0]["date"])

	for _, bad := range []string{"?limit=0", "?limit=1001", "?skip=-1", "?limit=ten", "?type=gift", "?start_date=yesterday", "?category_id=123"} {
		w := s.do(http.MethodGet, "/transactions"+bad, token, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, bad)
	}
}

func TestUpdateTransactionMemo(t *testing.T) {
	s := newServer(t)
	token := s.signup("memo@example.com")
	food := s.create("/categories", token, "category_id", map[string]any{"name": "food", "type": "expense"})
	id := s.create("/transactions", token, "transaction_id", map[string]any{"category_id": food, "amount": 900, "date": "2024-05-02", "memo": "lunch"})

	w := s.do(http.MethodPut, "/transactions/"+id, token, map[string]any{"amount": 950})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	txn := decode[map[string]any](t, w)
	assert.EqualValues(t, 950, txn["amount"])
	assert.Equal(t, "lunch", txn["memo"])

	w = s.do(http.MethodPut, "/transactions/"+id, token, `{"memo": null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, decode[map[string]any](t, w)["memo"])

	w = s.do(http.MethodPut, "/transactions/"+id, token, `{"amount": null}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodDelete, "/transactions/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/transactions/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionOwnership(t *testing.T) {
	s := newServer(t)
	alice := s.signup("alice@example.com")
	bob := s.signup("bob@example.com")
	food := s.create("/categories", alice, "category_id", map[string]any{"name": "food", "type": "expense"})
	id := s.create("/transactions", alice, "transaction_id", map[string]any{"category_id": food, "amount": 900, "date": "2024-05-02"})

	w := s.do(http.MethodGet, "/transactions/"+id, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPut, "/transactions/"+uuid.NewString(), alice, map[string]any{"amount": 5})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// bob cannot book against alice's category either
	w = s.do(http.MethodPost, "/transactions", bob, map[string]any{"category_id": food, "amount": 1, "date": "2024-05-02"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/transactions", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
