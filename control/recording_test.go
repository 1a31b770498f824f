package control_test

import (
	"testing"
	"time"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecordingReady(t *testing.T) {
	assert := assert.New(t)

	now := time.Now()
	settleDelay := time.Minute * 5

	// Case 0: never seen, never ready
	assert.False(control.RecordingReady(0, now, settleDelay))

	// Case 1: seen recently, still settling
	assert.False(control.RecordingReady(now.Add(-time.Minute).UnixMilli(), now, settleDelay))

	// Case 2: silent past the settling delay
	assert.True(control.RecordingReady(now.Add(-time.Minute*10).UnixMilli(), now, settleDelay))

	// Case 3: exactly at the boundary is not yet ready
	boundary := now.Add(-settleDelay).UnixMilli()
	assert.False(control.RecordingReady(boundary, now, settleDelay))
}

func TestRecordingURLs(t *testing.T) {
	assert := assert.New(t)

	recordingID := uuid.NewString()

	// Case 0: normal base
	hlsURL, mp4URL := control.RecordingURLs("https://cdn.example.com", recordingID)
	assert.Equal(
		"https://cdn.example.com/recordings/"+recordingID+"/index.m3u8", hlsURL,
	)
	assert.Equal(
		"https://cdn.example.com/recordings/"+recordingID+"/source.mp4", mp4URL,
	)

	// Case 1: trailing slash is absorbed
	hlsURL2, mp4URL2 := control.RecordingURLs("https://cdn.example.com/", recordingID)
	assert.Equal(hlsURL, hlsURL2)
	assert.Equal(mp4URL, mp4URL2)
}

func TestEvaluateRecording(t *testing.T) {
	assert := assert.New(t)

	now := time.Now()
	settleDelay := time.Minute * 5
	ingestBase := "https://cdn.example.com"

	newSession := func() common.UserSession {
		return common.UserSession{
			ID:                  uuid.NewString(),
			UserID:              uuid.NewString(),
			ParentID:            uuid.NewString(),
			Record:              true,
			RecordObjectStoreID: uuid.NewString(),
			LastSeen:            now.Add(-time.Minute * 10).UnixMilli(),
		}
	}

	// Case 0: not recording, no status at all
	{
		session := newSession()
		session.Record = false
		view := control.EvaluateRecording(session, ingestBase, now, settleDelay, false)
		assert.Empty(view.Status)
		assert.Empty(view.RecordingURL)
	}

	// Case 1: recording but never pinned to a store
	{
		session := newSession()
		session.RecordObjectStoreID = ""
		view := control.EvaluateRecording(session, ingestBase, now, settleDelay, false)
		assert.Empty(view.Status)
	}

	// Case 2: still settling, waiting with no URLs
	{
		session := newSession()
		session.LastSeen = now.Add(-time.Minute).UnixMilli()
		view := control.EvaluateRecording(session, ingestBase, now, settleDelay, false)
		assert.Equal(common.RecordingStatusWaiting, view.Status)
		assert.Empty(view.RecordingURL)
		assert.Empty(view.Mp4URL)
	}

	// Case 3: settled, ready with URLs keyed by the session's own ID
	{
		session := newSession()
		view := control.EvaluateRecording(session, ingestBase, now, settleDelay, false)
		assert.Equal(common.RecordingStatusReady, view.Status)
		assert.Contains(view.RecordingURL, session.ID)
		assert.Contains(view.Mp4URL, session.ID)
	}

	// Case 4: the chain tail wins as the recording ID
	{
		session := newSession()
		session.LastSessionID = uuid.NewString()
		view := control.EvaluateRecording(session, ingestBase, now, settleDelay, false)
		assert.Contains(view.RecordingURL, session.LastSessionID)
		assert.NotContains(view.RecordingURL, session.ID)
	}

	// Case 5: forceURL exposes URLs before settling
	{
		session := newSession()
		session.LastSeen = now.Add(-time.Minute).UnixMilli()
		view := control.EvaluateRecording(session, ingestBase, now, settleDelay, true)
		assert.Equal(common.RecordingStatusWaiting, view.Status)
		assert.Contains(view.RecordingURL, session.ID)
	}
}
