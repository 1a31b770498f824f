package db_test

import (
	"encoding/base64"
	"testing"

	"github.com/alwitt/livegate/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	assert := assert.New(t)

	// Case 0: round trip offsets
	for _, offset := range []int{0, 1, 25, 1000000} {
		cursor := db.EncodeCursor(offset)
		decoded, err := db.DecodeCursor(cursor)
		assert.Nil(err)
		assert.Equal(offset, decoded)
	}

	// Case 1: not base64
	{
		_, err := db.DecodeCursor("not a cursor!!")
		assert.NotNil(err)
	}

	// Case 2: base64 but wrong payload
	{
		cursor := base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
		_, err := db.DecodeCursor(cursor)
		assert.NotNil(err)
	}

	// Case 3: negative offset
	{
		cursor := base64.RawURLEncoding.EncodeToString([]byte("o:-5"))
		_, err := db.DecodeCursor(cursor)
		assert.NotNil(err)
	}

	// Case 4: non numeric offset
	{
		cursor := base64.RawURLEncoding.EncodeToString([]byte("o:abc"))
		_, err := db.DecodeCursor(cursor)
		assert.NotNil(err)
	}
}
