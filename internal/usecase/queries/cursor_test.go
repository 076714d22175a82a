//go:build unit

package queries

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2025, 6, 15, 14, 30, 0, 123456000, time.UTC)

	cursor := EncodeAfterCursor(ts, id)
	gotTime, gotID, err := DecodeAfterCursor(cursor)

	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.True(t, ts.Equal(gotTime), "expected %v, got %v", ts, gotTime)
}

func TestDecodeAfterCursor_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
	}{
		{name: "empty cursor", cursor: ""},
		{name: "not base64", cursor: "!!!not-base64!!!"},
		{name: "wrong version", cursor: base64.URLEncoding.EncodeToString([]byte("v2:123-" + uuid.NewString()))},
		{name: "missing separator", cursor: base64.URLEncoding.EncodeToString([]byte("v1:12345"))},
		{name: "non numeric timestamp", cursor: base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString()))},
		{name: "invalid uuid", cursor: base64.URLEncoding.EncodeToString([]byte("v1:12345-not-a-uuid"))},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := DecodeAfterCursor(c.cursor)
			require.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 1, ValidateLimit(1))
	assert.Equal(t, 200, ValidateLimit(200))
	assert.Equal(t, 200, ValidateLimit(201))
	assert.Equal(t, 200, ValidateLimit(10000))
}
