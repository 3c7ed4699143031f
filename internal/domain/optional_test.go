package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoPatch struct {
	Memo   Optional[string] `json:"memo"`
	Amount Optional[int64]  `json:"amount"`
}

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var absent memoPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Memo.Set)
	assert.False(t, absent.Memo.Present())

	var null memoPatch
	require.NoError(t, json.Unmarshal([]byte(`{"memo":null}`), &null))
	assert.True(t, null.Memo.Set)
	assert.True(t, null.Memo.Null)
	assert.Nil(t, null.Memo.Ptr())

	var set memoPatch
	require.NoError(t, json.Unmarshal([]byte(`{"memo":"rent","amount":1200}`), &set))
	assert.True(t, set.Memo.Present())
	assert.Equal(t, "rent", *set.Memo.Ptr())
	assert.Equal(t, int64(1200), set.Amount.Value)
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p memoPatch
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"lots"}`), &p))
}

func TestOptionalConstructors(t *testing.T) {
	assert.True(t, Some(3).Present())
	assert.True(t, Null[int]().Set)
	assert.False(t, Null[int]().Present())
}
