package utils_test

import (
	"testing"

	"github.com/alwitt/livegate/utils"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestApplyShardPrefix(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	// Case 0: prefix replaced in place
	assert.Equal("abcd5678", utils.ApplyShardPrefix("abcdzzzz", "12345678"))

	// Case 1: short shard source leaves the value alone
	assert.Equal("12345678", utils.ApplyShardPrefix("ab", "12345678"))

	// Case 2: short value is left alone
	assert.Equal("12", utils.ApplyShardPrefix("abcdzzzz", "12"))

	// Case 3: four character value is replaced whole
	assert.Equal("abcd", utils.ApplyShardPrefix("abcdzzzz", "1234"))
}

func TestNewStreamIdentity(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	id, playbackID, streamKey := utils.NewStreamIdentity()

	// All three identifiers carry the same shard key
	assert.Equal(id[:4], playbackID[:4])
	assert.Equal(id[:4], streamKey[:4])

	// The playback ID is dash free
	assert.NotContains(playbackID, "-")
	assert.Len(playbackID, 32)

	// Identities do not repeat
	id2, playbackID2, streamKey2 := utils.NewStreamIdentity()
	assert.NotEqual(id, id2)
	assert.NotEqual(playbackID, playbackID2)
	assert.NotEqual(streamKey, streamKey2)
}

func TestNewSessionID(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	// Sessions shard with their parent's playback ID
	sessionID := utils.NewSessionID("wxyz12345678")
	assert.Equal("wxyz", sessionID[:4])
	assert.NotEqual(utils.NewSessionID("wxyz12345678"), sessionID)
}
