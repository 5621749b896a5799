package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()
	d := NewDate(1895, time.December, 28)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1895-12-28"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDateJSONZeroIsNull(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var d Date
	require.NoError(t, json.Unmarshal([]byte("null"), &d))
	assert.True(t, d.IsZero())
}

func TestDateUnmarshalRejectsGarbage(t *testing.T) {
	t.Parallel()
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"28-12-1895"`), &d))
}

func TestDateScan(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan(time.Date(1967, time.November, 25, 13, 37, 0, 0, time.Local)))
	assert.Equal(t, "1967-11-25", d.String())

	// SQLite hands dates back as RFC3339 strings.
	require.NoError(t, d.Scan("1967-11-25T00:00:00Z"))
	assert.Equal(t, "1967-11-25", d.String())

	require.NoError(t, d.Scan("1967-11-25"))
	assert.Equal(t, "1967-11-25", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(12345))
}
