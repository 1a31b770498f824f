package control

import (
	"fmt"
	"strings"
	"time"

	"github.com/alwitt/livegate/common"
)

// RecordingView computed recording fields of one user session
type RecordingView struct {
	// Status recording pipeline state, empty when the session never recorded
	Status common.RecordingStatus
	// RecordingURL HLS playback URL, set once the recording is ready
	RecordingURL string
	// Mp4URL MP4 download URL, set once the recording is ready
	Mp4URL string
}

/*
RecordingReady whether a recording has settled.

A recording is ready once the session reported at least once and then stayed
silent for the full settling delay.

	@param lastSeen int64 - epoch ms of the session's most recent report
	@param now time.Time - current time
	@param settleDelay time.Duration - required silence before ready
	@return true if the recording is ready
*/
func RecordingReady(lastSeen int64, now time.Time, settleDelay time.Duration) bool {
	return lastSeen > 0 && lastSeen < now.Add(-settleDelay).UnixMilli()
}

/*
RecordingURLs playback URLs of a recording

	@param ingestBase string - base URL recordings are served from
	@param recordingID string - session ID the recording is stored under
	@return HLS playback URL and MP4 download URL
*/
func RecordingURLs(ingestBase, recordingID string) (hlsURL, mp4URL string) {
	base := strings.TrimSuffix(ingestBase, "/")
	hlsURL = fmt.Sprintf("%s/recordings/%s/index.m3u8", base, recordingID)
	mp4URL = fmt.Sprintf("%s/recordings/%s/source.mp4", base, recordingID)
	return
}

/*
EvaluateRecording compute the recording view of one user session.

Sessions which are not recorded, or were never pinned to an object store, get
no recording status at all. URLs appear once the recording is ready, or
immediately when forceURL is set.

	@param session common.UserSession - the session under evaluation
	@param ingestBase string - base URL recordings are served from
	@param now time.Time - current time
	@param settleDelay time.Duration - required silence before ready
	@param forceURL bool - expose URLs before the recording settles
	@return the computed view
*/
func EvaluateRecording(
	session common.UserSession,
	ingestBase string,
	now time.Time,
	settleDelay time.Duration,
	forceURL bool,
) RecordingView {
	if !session.Record || session.RecordObjectStoreID == "" {
		return RecordingView{}
	}

	view := RecordingView{Status: common.RecordingStatusWaiting}
	ready := RecordingReady(session.LastSeen, now, settleDelay)
	if ready {
		view.Status = common.RecordingStatusReady
	}
	if ready || forceURL {
		recordingID := session.LastSessionID
		if recordingID == "" {
			recordingID = session.ID
		}
		view.RecordingURL, view.Mp4URL = RecordingURLs(ingestBase, recordingID)
	}
	return view
}
