package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
	})

	t.Run("rejects malformed UUID", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseUserID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(valid), id)
	})
}

func TestParsePingID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{"empty", "", false},
		{"garbage", "zzz", false},
		{"truncated", "123e4567-e89b-12d3-a456", false},
		{"nil uuid", uuid.Nil.String(), false},
		{"valid", uuid.NewString(), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePingID(tc.input)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIDStringRoundTrip(t *testing.T) {
	raw := uuid.New()
	id := PingID(raw)
	assert.Equal(t, raw.String(), id.String())
	assert.False(t, id.IsNil())
	assert.True(t, PingID{}.IsNil())
}
