package control

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/db"
	"github.com/alwitt/livegate/utils"
	"github.com/apex/log"
)

// detectionEventName webhook event detection reports fan out on
const detectionEventName = "stream.detection"

// IngestHookRequest media server ingest admission request
type IngestHookRequest struct {
	// URL the inbound connection URL as seen by the media server
	URL string `json:"url"`
}

// IngestHookResponse ingest admission verdict and connection configuration
type IngestHookResponse struct {
	// ManifestID manifest the connection publishes or reads under
	ManifestID string `json:"manifestID"`
	// Profiles transcode renditions to produce
	Profiles []common.TranscodeProfile `json:"profiles,omitempty"`
	// ObjectStore URL of the store holding stream artifacts
	ObjectStore string `json:"objectStore,omitempty"`
	// RecordObjectStore URL of the store the recording lands in
	RecordObjectStore string `json:"recordObjectStore,omitempty"`
	// RecordObjectStoreURL public URL of the recording store
	RecordObjectStoreURL string `json:"recordObjectStoreUrl,omitempty"`
	// PreviousSessions chain of session IDs this connection continues
	PreviousSessions []string `json:"previousSessions,omitempty"`
	// Detection content detection settings, present only when detection applies
	Detection *common.DetectionConfig `json:"detection,omitempty"`
}

// DetectionResult one scene class probability from the content detector
type DetectionResult struct {
	// Name scene class name
	Name string `json:"name" validate:"required"`
	// Probability detector confidence
	Probability float64 `json:"probability"`
}

// DetectionReport content detection callback from the media server
type DetectionReport struct {
	// ManifestID manifest the detection ran against
	ManifestID string `json:"manifestID" validate:"required"`
	// SeqNo segment sequence number sampled
	SeqNo int64 `json:"seqNo"`
	// SceneClassification per scene class results
	SceneClassification []DetectionResult `json:"sceneClassification" validate:"required,dive"`
}

// defaultDetectionConfig detection block handed out when a stream has no override
func defaultDetectionConfig() common.DetectionConfig {
	return common.DetectionConfig{
		// Process 1 / freq segments, 1 / sampleRate frames of each
		Freq:       4,
		SampleRate: 10,
		SceneClassification: []common.DetectionProfile{
			{Name: "soccer"}, {Name: "adult"},
		},
	}
}

// parseHookURL validate and decompose the inbound connection URL.
//
// Accepted shapes:
//
//	rtmp://host/live/{streamId}
//	http(s)://host/[live|recordings]/{streamId}/...
func parseHookURL(rawURL string) (prefix, streamID string, err error) {
	if rawURL == "" {
		return "", "", NewAPIError(http.StatusUnprocessableEntity, "missing url")
	}
	parsed, parseErr := url.Parse(rawURL)
	if parseErr != nil {
		return "", "", NewAPIError(http.StatusUnprocessableEntity, "malformed url")
	}
	scheme := parsed.Scheme
	// Some broadcasters omit the protocol
	if scheme == "" || scheme == "https" {
		scheme = "http"
	}
	if scheme != "http" && scheme != "rtmp" {
		return "", "", NewAPIError(
			http.StatusUnprocessableEntity, fmt.Sprintf("unknown protocol: %s:", scheme),
		)
	}

	segments := []string{}
	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 2 {
		return "", "", NewAPIError(http.StatusUnauthorized, "stream key is required")
	}
	prefix = segments[0]
	streamID = segments[1]
	rest := len(segments) - 2
	if scheme == "rtmp" && rest > 0 {
		return "", "", NewAPIError(
			http.StatusUnprocessableEntity,
			"RTMP address should be rtmp://example.com/live. Stream key should be a UUID.",
		)
	}
	if scheme == "http" && rest > 3 {
		return "", "", NewAPIError(
			http.StatusUnprocessableEntity,
			"acceptable URL format: http://example.com/live/:streamId/:number.ts",
		)
	}
	if prefix != "live" && prefix != "recordings" {
		return "", "", NewAPIError(http.StatusNotFound, "ingest url must start with /live/")
	}
	return prefix, streamID, nil
}

// resolveManifestID manifest of a stream record. Sessions publish under their
// parent's playback ID so playback stays shard consistent.
func (m *streamManagerImpl) resolveManifestID(
	ctxt context.Context, record common.StreamRecord,
) (string, error) {
	if !record.IsSession() {
		return record.Base().ID, nil
	}
	session := record.Session

	if m.lookupCache != nil {
		if cached, err := m.lookupCache.GetStreamID(ctxt, session.ID); err == nil {
			return cached, nil
		} else if !utils.IsCacheMiss(err) {
			log.
				WithError(err).
				WithFields(m.GetLogTagsForContext(ctxt)).
				Warn("Manifest lookup cache read failed")
		}
	}

	parent, err := m.db.GetParentStream(ctxt, session.ParentID)
	if err != nil {
		return "", err
	}
	if m.lookupCache != nil {
		if err := m.lookupCache.CacheStreamID(
			ctxt, session.ID, parent.PlaybackID, m.lookupTTL,
		); err != nil {
			log.
				WithError(err).
				WithFields(m.GetLogTagsForContext(ctxt)).
				Warn("Manifest lookup cache write failed")
		}
	}
	return parent.PlaybackID, nil
}

// pinRecordStore stick the gateway's configured record store onto a stream record
// that is due to record but has no store yet. The pin is sticky once set.
func (m *streamManagerImpl) pinRecordStore(
	ctxt context.Context, base *common.StreamBase, record common.StreamRecord,
) {
	logTags := m.GetLogTagsForContext(ctxt)

	store, err := m.db.GetObjectStore(ctxt, m.streamsCfg.RecordObjectStoreID)
	if err != nil || store.Disabled || store.Deleted {
		return
	}
	storeID := m.streamsCfg.RecordObjectStoreID
	if err := m.db.UpdateStream(ctxt, base.ID, db.StreamPatch{
		RecordObjectStoreID: &storeID,
	}); err != nil {
		log.WithError(err).WithFields(logTags).Warn("Record store pinning failed")
		return
	}
	base.RecordObjectStoreID = storeID

	// A chain head session mirrors the pin onto its projection
	if record.IsSession() && len(record.Session.PreviousSessions) == 0 {
		if err := m.db.UpdateUserSession(ctxt, base.ID, db.UserSessionPatch{
			RecordObjectStoreID: &storeID,
		}); err != nil {
			log.WithError(err).WithFields(logTags).Warn("Record store pin mirror failed")
		}
	}
}

func (m *streamManagerImpl) ResolveIngestHook(
	ctxt context.Context, request IngestHookRequest,
) (IngestHookResponse, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	recordVerdict := func(verdict string) {
		if m.metrics != nil {
			m.metrics.hookVerdicts.WithLabelValues(verdict).Inc()
		}
	}

	prefix, streamID, err := parseHookURL(request.URL)
	if err != nil {
		recordVerdict("malformed")
		return IngestHookResponse{}, err
	}

	record, err := m.db.GetStreamRecord(ctxt, streamID)
	if err != nil {
		recordVerdict("unknown")
		return IngestHookResponse{}, NewAPIError(http.StatusNotFound, "not found")
	}
	base := record.Base()
	if base.Suspended {
		recordVerdict("suspended")
		return IngestHookResponse{}, NewAPIError(http.StatusForbidden, "stream is suspended")
	}
	owner, err := m.db.GetUser(ctxt, base.UserID)
	if err != nil {
		recordVerdict("unknown")
		return IngestHookResponse{}, NewAPIError(http.StatusNotFound, "not found")
	}
	if owner.Suspended {
		recordVerdict("suspended")
		return IngestHookResponse{}, NewAPIError(http.StatusForbidden, "user is suspended")
	}

	response := IngestHookResponse{}
	if base.Profiles.V != nil {
		response.Profiles = *base.Profiles.V
	}

	// Store references on the record must resolve
	if base.ObjectStoreID != "" {
		store, err := m.db.GetObjectStore(ctxt, base.ObjectStoreID)
		if err != nil {
			return IngestHookResponse{}, NewAPIError(
				http.StatusInternalServerError,
				fmt.Sprintf("data integrity error: object store %s not found", base.ObjectStoreID),
			)
		}
		response.ObjectStore = store.URL
	}

	isLive := prefix == "live"
	if isLive && base.Record && m.streamsCfg.RecordObjectStoreID != "" &&
		base.RecordObjectStoreID == "" {
		m.pinRecordStore(ctxt, base, record)
	}
	if base.RecordObjectStoreID != "" {
		store, err := m.db.GetObjectStore(ctxt, base.RecordObjectStoreID)
		if err != nil {
			return IngestHookResponse{}, NewAPIError(
				http.StatusInternalServerError,
				fmt.Sprintf(
					"data integrity error: record object store %s not found",
					base.RecordObjectStoreID,
				),
			)
		}
		response.RecordObjectStore = store.URL
		response.RecordObjectStoreURL = store.PublicURL
	}

	manifestID, err := m.resolveManifestID(ctxt, record)
	if err != nil {
		return IngestHookResponse{}, err
	}
	response.ManifestID = manifestID
	if record.IsSession() {
		response.PreviousSessions = record.Session.PreviousSessions
	}

	// Detection applies when the owner subscribes to detection events, or the
	// stream itself opts in
	subscribed, err := m.db.ListSubscribedWebhooks(ctxt, owner.ID, detectionEventName)
	if err != nil {
		log.WithError(err).WithFields(logTags).Warn("Detection webhook lookup failed")
	}
	if len(subscribed) > 0 || base.Detection.V != nil {
		detection := defaultDetectionConfig()
		if base.Detection.V != nil && len(base.Detection.V.SceneClassification) > 0 {
			detection.SceneClassification = base.Detection.V.SceneClassification
		}
		response.Detection = &detection
	}

	recordVerdict("allowed")
	log.
		WithFields(logTags).
		WithField("stream", base.ID).
		WithField("manifest", manifestID).
		Debug("Resolved ingest admission")
	return response, nil
}

func (m *streamManagerImpl) RecordDetection(
	ctxt context.Context, request DetectionReport,
) error {
	if err := m.validator.Struct(&request); err != nil {
		return NewAPIError(http.StatusUnprocessableEntity, err.Error())
	}
	parent, err := m.db.GetParentStreamByPlaybackID(ctxt, request.ManifestID)
	if err != nil {
		return NewAPIError(http.StatusNotFound, "stream not found")
	}
	m.queueEvent(ctxt, common.StreamEvent{
		Channel:  "webhooks",
		Event:    detectionEventName,
		StreamID: parent.ID,
		UserID:   parent.UserID,
		Payload: map[string]interface{}{
			"seqNo":               request.SeqNo,
			"sceneClassification": request.SceneClassification,
		},
	})
	return nil
}
