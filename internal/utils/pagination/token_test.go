package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	at := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(at, "shift-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	cursor, err := DecodeToken(token)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.True(t, at.Equal(cursor.At), "Time should match after decode")
	assert.Equal(t, "shift-1", cursor.ID)
}

func TestDecodeToken_Empty(t *testing.T) {
	cursor, err := DecodeToken("")
	assert.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, err := DecodeToken("not base64!!")
	assert.Error(t, err)

	_, err = DecodeToken(rawToken("only-one-part"))
	assert.Error(t, err)

	_, err = DecodeToken(rawToken("yesterday|id"))
	assert.Error(t, err)
}

func TestCursorBefore(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := &Cursor{At: at, ID: "m"}

	assert.True(t, c.Before(at.Add(-time.Minute), "z"))
	assert.False(t, c.Before(at.Add(time.Minute), "a"))
	assert.True(t, c.Before(at, "a"))
	assert.False(t, c.Before(at, "m"))

	var none *Cursor
	assert.True(t, none.Before(at, "x"))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 20, NormalizeLimit(0, 20, 100))
	assert.Equal(t, 100, NormalizeLimit(500, 20, 100))
	assert.Equal(t, 7, NormalizeLimit(7, 20, 100))
}

func rawToken(raw string) string {
	return base64.URLEncoding.EncodeToString([]byte(raw))
}
