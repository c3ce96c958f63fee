package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientNumber(t *testing.T) {
	cases := map[string]float64{
		`null`:       0,
		`""`:         0,
		`"  "`:       0,
		`"2"`:        2,
		`" 3 "`:      3,
		`"250000.5"`: 250000.5,
		`280000`:     280000,
	}
	for in, want := range cases {
		var n LenientNumber
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, want, float64(n), in)
	}

	for _, in := range []string{`"dos"`, `true`, `{}`} {
		var n LenientNumber
		assert.ErrorIs(t, json.Unmarshal([]byte(in), &n), ErrInvalidField, in)
	}
}

func TestContactUnmarshal_FormNumbers(t *testing.T) {
	var c Contact
	err := json.Unmarshal([]byte(`{"id":"1717","name":"Ana","zones":["Gràcia"],
		"minBudget":"","maxBudget":"300000","minRooms":2,"minBathrooms":""}`), &c)
	require.NoError(t, err)

	assert.Equal(t, "1717", c.ID)
	assert.Equal(t, []string{"Gràcia"}, c.Zones)
	assert.Zero(t, c.MinBudget)
	assert.Equal(t, 300000.0, c.MaxBudget)
	assert.Equal(t, 2, c.MinRooms)
	assert.Zero(t, c.MinBathrooms)
}

func TestContactUnmarshal_RejectsFractionalRooms(t *testing.T) {
	var c Contact
	err := json.Unmarshal([]byte(`{"name":"Ana","minRooms":"2.5"}`), &c)
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestContactUnmarshal_RoundTrip(t *testing.T) {
	in := Contact{ID: "a", Name: "Ana", MinBudget: 1000.5, MaxBudget: 2000, MinRooms: 3, MinBathrooms: 1, Zones: []string{}}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Contact
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
