package utils

import (
	"strings"

	"github.com/google/uuid"
)

// shardKeyLength leading characters of a record ID that route it to a shard
const shardKeyLength = 4

/*
ApplyShardPrefix overwrite the leading characters of a value with a shard key

	@param shard string - shard key source, its first four characters are used
	@param value string - value to re-prefix
	@return the re-prefixed value
*/
func ApplyShardPrefix(shard, value string) string {
	if len(shard) < shardKeyLength || len(value) < shardKeyLength {
		return value
	}
	return shard[:shardKeyLength] + value[shardKeyLength:]
}

/*
NewStreamIdentity generate the identifier set of a new parent stream.

The stream key and playback ID carry the shard key of the record ID as their
prefix, so all three land on the same shard. Dashes are stripped from the
playback ID.

	@return record ID, playback ID and stream key
*/
func NewStreamIdentity() (id, playbackID, streamKey string) {
	id = uuid.NewString()
	playbackID = ApplyShardPrefix(id, strings.ReplaceAll(uuid.NewString(), "-", ""))
	streamKey = ApplyShardPrefix(id, uuid.NewString())
	return
}

/*
NewSessionID generate the record ID of a new stream session.

Sessions shard with their parent's playback ID, keeping every session of a
stream on the shard playback reads hit.

	@param parentPlaybackID string - playback ID of the parent stream
	@return the session record ID
*/
func NewSessionID(parentPlaybackID string) string {
	return ApplyShardPrefix(parentPlaybackID, uuid.NewString())
}
