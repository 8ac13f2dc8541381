package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.October, 18), d)

	_, err = ParseDate("18/10/2026")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	t.Run("marshals as ISO date", func(t *testing.T) {
		b, err := json.Marshal(NewDate(2026, time.January, 2))
		require.NoError(t, err)
		assert.JSONEq(t, `"2026-01-02"`, string(b))
	})

	t.Run("unmarshals null into zero date", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("rejects non-string", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`20261018`), &d))
	})

	t.Run("pointer field stays nil when absent", func(t *testing.T) {
		var req OrderCreateRequest
		require.NoError(t, json.Unmarshal([]byte(`{"clientName":"Alice"}`), &req))
		assert.Nil(t, req.DeliveryDate)
	})
}

func TestDate_Arithmetic(t *testing.T) {
	today := NewDate(2026, time.December, 31)
	tomorrow := today.AddDays(1)

	assert.Equal(t, NewDate(2027, time.January, 1), tomorrow)
	assert.True(t, today.Before(tomorrow))
	assert.True(t, tomorrow.After(today))
	assert.True(t, tomorrow.Equal(NewDate(2027, time.January, 1)))
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, time.October, 17, 23, 30, 0, 0, loc)

	assert.Equal(t, NewDate(2026, time.October, 17), DateOf(ts))
}

func TestDate_SQL(t *testing.T) {
	d := NewDate(2026, time.October, 18)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", v)

	var fromTime, fromString, fromBytes Date
	require.NoError(t, fromTime.Scan(time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, fromString.Scan("2026-10-18T00:00:00Z"))
	require.NoError(t, fromBytes.Scan([]byte("2026-10-18")))

	assert.Equal(t, d, fromTime)
	assert.Equal(t, d, fromString)
	assert.Equal(t, d, fromBytes)
	assert.Error(t, fromTime.Scan(42))
}
