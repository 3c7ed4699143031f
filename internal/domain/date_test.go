package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		in          Date
		first, last string
	}{
		{NewDate(2024, time.January, 17), "2024-01-01", "2024-01-31"},
		{NewDate(2024, time.February, 29), "2024-02-01", "2024-02-29"},
		{NewDate(2023, time.February, 1), "2023-02-01", "2023-02-28"},
		{NewDate(2024, time.April, 30), "2024-04-01", "2024-04-30"},
		{NewDate(2024, time.December, 5), "2024-12-01", "2024-12-31"},
	}
	for _, tt := range tests {
		first, last := tt.in.MonthBounds()
		assert.Equal(t, tt.first, first.String(), tt.in.String())
		assert.Equal(t, tt.last, last.String(), tt.in.String())
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-09"}`), &payload))
	assert.Equal(t, NewDate(2024, time.March, 9), payload.Date)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-09"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"09/03/2024"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20240309}`), &payload))
}

func TestDateScan(t *testing.T) {
	want := NewDate(2024, time.July, 4)
	inputs := []any{
		time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC),
		"2024-07-04",
		"2024-07-04 00:00:00+00:00",
		[]byte("2024-07-04T00:00:00Z"),
	}
	for _, in := range inputs {
		var d Date
		require.NoError(t, d.Scan(in), "%v", in)
		assert.Equal(t, want, d)
	}

	var d Date
	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("not a date"))
}

func TestDateValueIsMidnightUTC(t *testing.T) {
	v, err := NewDate(2024, time.May, 1).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), v)
}
