package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	journalDate := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(journalDate, createdAt, "e-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	cursor, err := DecodeToken(token)
	require.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, journalDate, cursor.Date, "Journal date should match after decode")
	assert.Equal(t, createdAt, cursor.CreatedAt, "Created at time should match after decode")
	assert.Equal(t, "e-1", cursor.ID)

	now := time.Now().UTC()
	cursor, err = DecodeToken(EncodeToken(now, now, "e-2"))
	require.NoError(t, err)
	assert.True(t, now.Equal(cursor.Date), "Current date should match after decode")
	assert.True(t, now.Equal(cursor.CreatedAt), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	onlyDate := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z"))
	_, err = DecodeToken(onlyDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|2023-05-15T14:30:45Z|e-1"))
	_, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "journal date parse")

	noID := base64.URLEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|2023-05-15T14:30:45Z|"))
	_, err = DecodeToken(noID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}
