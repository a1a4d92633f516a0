package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/busfleet/internal/model"
)

func TestDate_ScanToleratesBadValues(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  model.Date
	}{
		{"nil", nil, model.Date{}},
		{"garbage string", "31/31/2024", model.Date{}},
		{"garbage bytes", []byte("yesterday"), model.Date{}},
		{"unsupported type", 42, model.Date{}},
		{"iso string", "2024-02-29", model.NewDate(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))},
		{"timestamp", time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC), model.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		{"sqlite datetime", "2024-03-01 00:00:00+00:00", model.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d model.Date
			require.NoError(t, d.Scan(tc.value))
			assert.Equal(t, tc.want, d)
		})
	}
}

func TestDate_Value(t *testing.T) {
	v, err := model.Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = model.ParseDate("2024-07-04").Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-07-04", v)
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		When model.Date `json:"when"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"when":"2024-07-04"}`), &payload))
	assert.True(t, payload.When.Valid)
	assert.Equal(t, "2024-07-04", payload.When.String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"2024-07-04"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"when":null}`), &payload))
	assert.False(t, payload.When.Valid)

	assert.Error(t, json.Unmarshal([]byte(`{"when":"04.07.2024"}`), &payload))
}

func TestDateRange_Contains(t *testing.T) {
	r := model.DateRange{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 20, 23, 0, 0, 0, time.UTC),
	}
	assert.True(t, r.Contains(model.ParseDate("2024-05-01")))
	assert.True(t, r.Contains(model.ParseDate("2024-05-20")))
	assert.False(t, r.Contains(model.ParseDate("2024-05-21")))
	assert.False(t, r.Contains(model.Date{}))
}

func TestShift_Complete(t *testing.T) {
	id := uint(1)
	s := model.Shift{DriverID: &id, ConductorID: &id, BusID: &id, RouteID: &id}
	assert.True(t, s.Complete())
	s.BusID = nil
	assert.False(t, s.Complete())
}
