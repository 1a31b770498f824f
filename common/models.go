package common

// StreamStats ingest counters reported by the media server for one stream or session
type StreamStats struct {
	// SourceBytes total bytes received from the broadcaster
	SourceBytes int64 `json:"sourceBytes" gorm:"column:source_bytes;default:0"`
	// TranscodedBytes total bytes produced by the transcoder
	TranscodedBytes int64 `json:"transcodedBytes" gorm:"column:transcoded_bytes;default:0"`
	// SourceSegments number of source segments received
	SourceSegments int64 `json:"sourceSegments" gorm:"column:source_segments;default:0"`
	// TranscodedSegments number of transcoded segments produced
	TranscodedSegments int64 `json:"transcodedSegments" gorm:"column:transcoded_segments;default:0"`
	// SourceSegmentsDuration total duration in seconds of source segments
	SourceSegmentsDuration float64 `json:"sourceSegmentsDuration" gorm:"column:source_segments_duration;default:0"`
	// TranscodedSegmentsDuration total duration in seconds of transcoded segments
	TranscodedSegmentsDuration float64 `json:"transcodedSegmentsDuration" gorm:"column:transcoded_segments_duration;default:0"`
}

// TranscodeProfile one rendition the transcoder produces for a stream
type TranscodeProfile struct {
	// Name rendition name
	Name string `json:"name" validate:"required"`
	// Width rendition frame width
	Width int `json:"width" validate:"required,gte=1"`
	// Height rendition frame height
	Height int `json:"height" validate:"required,gte=1"`
	// Bitrate rendition bitrate in bits per second
	Bitrate int `json:"bitrate" validate:"required,gte=1"`
	// FPS rendition frame rate
	FPS int `json:"fps" validate:"gte=0"`
}

// DetectionConfig content detection settings attached to an ingest hook response
type DetectionConfig struct {
	// Freq detection invocation frequency
	Freq int `json:"freq"`
	// SampleRate frames sampled per invocation
	SampleRate int `json:"sampleRate"`
	// SceneClassification scene classes the detector reports on
	SceneClassification []DetectionProfile `json:"sceneClassification"`
}

// DetectionProfile one scene class the content detector reports on
type DetectionProfile struct {
	// Name scene class name
	Name string `json:"name" validate:"required"`
}

// MultistreamTargetRef reference from a stream to a push target. Exactly one of
// ID or Spec is set.
type MultistreamTargetRef struct {
	// ID ID of a stored push target
	ID *string `json:"id,omitempty"`
	// Spec inline push target definition
	Spec *PushTargetSpec `json:"spec,omitempty"`
	// Profile rendition to push. "source" pushes the unmodified ingest.
	Profile string `json:"profile" validate:"required"`
	// VideoOnly whether to strip audio from the push
	VideoOnly bool `json:"videoOnly"`
}

// MultistreamConfig stream multistream (restream) settings
type MultistreamConfig struct {
	// Targets the set of push destinations
	Targets []MultistreamTargetRef `json:"targets"`
}

// StreamBase fields shared by parent streams and stream sessions
type StreamBase struct {
	// ID record ID. The first four characters double as the shard key.
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// UserID owning user
	UserID string `json:"userId" gorm:"column:user_id;not null;index:stream_user_index" validate:"required"`
	// Name stream name as registered with the media server
	Name string `json:"name" gorm:"column:name;not null" validate:"required"`
	// Profiles transcode renditions requested for this stream
	Profiles JSONColumn[[]TranscodeProfile] `json:"profiles" gorm:"column:profiles;type:text"`
	// PlaybackID public playback identifier
	PlaybackID string `json:"playbackId" gorm:"column:playback_id;index:stream_playback_index"`
	// IsActive whether the media server currently reports this stream live
	IsActive bool `json:"isActive" gorm:"column:is_active;default:false"`
	// LastSeen epoch ms of the most recent media server report, zero if never seen
	LastSeen int64 `json:"lastSeen" gorm:"column:last_seen;default:0"`
	// CreatedAt epoch ms the record was created
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at;autoCreateTime:milli"`
	// Region region of the media server node serving the stream
	Region string `json:"region,omitempty" gorm:"column:region"`
	// MistHost host of the media server node serving the stream
	MistHost string `json:"mistHost,omitempty" gorm:"column:mist_host"`
	// Record whether segments of this stream are recorded
	Record bool `json:"record" gorm:"column:record;default:false"`
	// RecordObjectStoreID object store the recording is pinned to
	RecordObjectStoreID string `json:"recordObjectStoreId,omitempty" gorm:"column:record_object_store_id"`
	// ObjectStoreID object store holding stream artifacts
	ObjectStoreID string `json:"objectStoreId,omitempty" gorm:"column:object_store_id"`
	// Suspended whether API access to the stream is suspended
	Suspended bool `json:"suspended" gorm:"column:suspended;default:false"`
	// Deleted soft deletion marker
	Deleted bool `json:"deleted,omitempty" gorm:"column:deleted;default:false"`
	// BroadcasterHost host of the broadcaster node serving the stream
	BroadcasterHost string `json:"broadcasterHost,omitempty" gorm:"column:broadcaster_host"`
	// Multistream restream settings
	Multistream JSONColumn[MultistreamConfig] `json:"multistream" gorm:"column:multistream;type:text"`
	// Detection per-stream content detection override
	Detection JSONColumn[DetectionConfig] `json:"detection,omitempty" gorm:"column:detection;type:text"`
	// Stats ingest counters for this record alone
	Stats StreamStats `json:"-" gorm:"embedded"`
}

// ParentStream a long lived stream registration a broadcaster pushes to
type ParentStream struct {
	StreamBase
	// StreamKey ingest secret the broadcaster authenticates pushes with
	StreamKey string `json:"streamKey" gorm:"column:stream_key;uniqueIndex:stream_key_index"`
	// LastSessionID most recent session chain head under this stream
	LastSessionID string `json:"lastSessionId,omitempty" gorm:"column:last_session_id"`
}

// StreamSession one media server ingest under a parent stream
type StreamSession struct {
	StreamBase
	// ParentID ID of the parent stream
	ParentID string `json:"parentId" gorm:"column:parent_id;index:stream_parent_index" validate:"required"`
	// PreviousSessions chain of preceding session IDs, index zero is the chain head
	PreviousSessions StringList `json:"previousSessions,omitempty" gorm:"column:previous_sessions;type:text"`
	// PreviousStats combined counters of all preceding sessions in the chain
	PreviousStats JSONColumn[StreamStats] `json:"previousStats,omitempty" gorm:"column:previous_stats;type:text"`
	// UserSessionCreatedAt epoch ms the logical user session began
	UserSessionCreatedAt int64 `json:"userSessionCreatedAt,omitempty" gorm:"column:user_session_created_at;default:0"`
	// PartialSession whether this session was superseded by a chained continuation
	PartialSession bool `json:"partialSession,omitempty" gorm:"column:partial_session;default:false"`
	// LastSessionID most recent continuation of this session's chain
	LastSessionID string `json:"lastSessionId,omitempty" gorm:"column:last_session_id"`
}

// StreamRecord tagged view of one stream record. Exactly one of Parent or
// Session is set.
type StreamRecord struct {
	Parent  *ParentStream
	Session *StreamSession
}

// IsSession whether the record is a stream session
func (r StreamRecord) IsSession() bool {
	return r.Session != nil
}

// Base the fields shared by both record kinds
func (r *StreamRecord) Base() *StreamBase {
	if r.Session != nil {
		return &r.Session.StreamBase
	}
	return &r.Parent.StreamBase
}

// RecordingStatus user session recording pipeline state
type RecordingStatus string

// Recording pipeline states
const (
	RecordingStatusWaiting RecordingStatus = "waiting"
	RecordingStatusReady   RecordingStatus = "ready"
	RecordingStatusNone    RecordingStatus = "none"
)

// UserSession queryable projection of one logical broadcast. Keyed by the
// chain head session ID.
type UserSession struct {
	// ID chain head session ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// UserID owning user
	UserID string `json:"userId" gorm:"column:user_id;not null;index:user_session_user_index" validate:"required"`
	// ParentID parent stream ID
	ParentID string `json:"parentId" gorm:"column:parent_id;index:user_session_parent_index" validate:"required"`
	// Name stream name of the chain head session
	Name string `json:"name" gorm:"column:name"`
	// PlaybackID playback ID inherited from the parent stream
	PlaybackID string `json:"playbackId" gorm:"column:playback_id"`
	// Profiles transcode renditions of the chain head session
	Profiles JSONColumn[[]TranscodeProfile] `json:"profiles" gorm:"column:profiles;type:text"`
	// CreatedAt epoch ms the logical broadcast began
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at"`
	// LastSeen epoch ms of the most recent media server report across the chain
	LastSeen int64 `json:"lastSeen" gorm:"column:last_seen;default:0"`
	// Record whether the broadcast was recorded
	Record bool `json:"record" gorm:"column:record;default:false"`
	// RecordObjectStoreID object store the recording is pinned to
	RecordObjectStoreID string `json:"recordObjectStoreId,omitempty" gorm:"column:record_object_store_id"`
	// LastSessionID chain tail session ID, the recording is stored under it
	LastSessionID string `json:"lastSessionId,omitempty" gorm:"column:last_session_id"`
	// RecordingStatus recording pipeline state
	RecordingStatus RecordingStatus `json:"recordingStatus,omitempty" gorm:"column:recording_status"`
	// RecordingURL HLS playback URL of the finished recording
	RecordingURL string `json:"recordingUrl,omitempty" gorm:"column:recording_url"`
	// Mp4URL MP4 download URL of the finished recording
	Mp4URL string `json:"mp4Url,omitempty" gorm:"column:mp4_url"`
	// Deleted soft deletion marker
	Deleted bool `json:"deleted,omitempty" gorm:"column:deleted;default:false"`
	// Stats combined ingest counters across the whole chain
	Stats StreamStats `json:"-" gorm:"embedded"`
}

// Webhook a user registered event notification endpoint
type Webhook struct {
	// ID webhook ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// UserID owning user
	UserID string `json:"userId" gorm:"column:user_id;not null;index:webhook_user_index" validate:"required"`
	// Name display name
	Name string `json:"name" gorm:"column:name;not null" validate:"required"`
	// Kind object kind discriminator
	Kind string `json:"kind" gorm:"column:kind;default:webhook"`
	// URL endpoint the event notification is delivered to
	URL string `json:"url" gorm:"column:url;not null" validate:"required,uri"`
	// Event event name this webhook subscribes to
	Event string `json:"event" gorm:"column:event;index:webhook_event_index" validate:"required"`
	// Blocking whether hook style invocations wait for the endpoint's verdict
	Blocking bool `json:"blocking" gorm:"column:blocking;default:true"`
	// Deleted soft deletion marker
	Deleted bool `json:"deleted,omitempty" gorm:"column:deleted;default:false"`
	// CreatedAt epoch ms the webhook was created
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at;autoCreateTime:milli"`
}

// PushTargetSpec definition of one RTMP(S) push destination
type PushTargetSpec struct {
	// Name display name, defaults to the URL host
	Name string `json:"name"`
	// URL rtmp / rtmps destination URL
	URL string `json:"url" validate:"required,uri"`
}

// PushTarget a stored RTMP(S) push destination
type PushTarget struct {
	// ID push target ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// UserID owning user
	UserID string `json:"userId" gorm:"column:user_id;not null;index:push_target_user_index" validate:"required"`
	// Name display name, defaults to the URL host
	Name string `json:"name" gorm:"column:name"`
	// URL rtmp / rtmps destination URL
	URL string `json:"url" gorm:"column:url;not null" validate:"required,uri"`
	// Disabled whether pushes to this target are disabled
	Disabled bool `json:"disabled" gorm:"column:disabled;default:false"`
	// CreatedAt epoch ms the push target was created
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at;autoCreateTime:milli"`
}

// ObjectStore a user registered recording storage location
type ObjectStore struct {
	// ID object store ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// UserID owning user
	UserID string `json:"userId" gorm:"column:user_id;not null;index:object_store_user_index" validate:"required"`
	// URL s3+https style storage URL
	URL string `json:"url" gorm:"column:url;not null" validate:"required,uri"`
	// PublicURL base URL recordings stored here are served from
	PublicURL string `json:"publicUrl,omitempty" gorm:"column:public_url"`
	// Disabled whether the store is disabled for new recordings
	Disabled bool `json:"disabled" gorm:"column:disabled;default:false"`
	// Deleted soft deletion marker
	Deleted bool `json:"deleted,omitempty" gorm:"column:deleted;default:false"`
	// CreatedAt epoch ms the store was registered
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at;autoCreateTime:milli"`
}

// User an account that owns streams and webhooks
type User struct {
	// ID user ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// Email account email
	Email string `json:"email" gorm:"column:email;uniqueIndex:user_email_index" validate:"required,email"`
	// Admin whether the user holds the admin role
	Admin bool `json:"admin" gorm:"column:admin;default:false"`
	// Suspended whether the account is suspended
	Suspended bool `json:"suspended" gorm:"column:suspended;default:false"`
	// LastStreamedAt epoch ms the user last had an active stream
	LastStreamedAt int64 `json:"lastStreamedAt,omitempty" gorm:"column:last_streamed_at;default:0"`
	// CreatedAt epoch ms the account was created
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at;autoCreateTime:milli"`
}

// APIToken bearer credential tied to a user
type APIToken struct {
	// ID the token value presented in the Authorization header
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// UserID owning user
	UserID string `json:"userId" gorm:"column:user_id;not null;index:api_token_user_index" validate:"required"`
	// Name display name
	Name string `json:"name,omitempty" gorm:"column:name"`
	// Deleted soft deletion marker
	Deleted bool `json:"deleted,omitempty" gorm:"column:deleted;default:false"`
	// CreatedAt epoch ms the token was created
	CreatedAt int64 `json:"createdAt" gorm:"column:created_at;autoCreateTime:milli"`
}

// Caller identity of an authenticated API caller
type Caller struct {
	// UserID user the presented token belongs to
	UserID string `json:"userId" validate:"required"`
	// Admin whether the caller holds the admin role
	Admin bool `json:"admin"`
	// AuthHeader raw Authorization header, forwarded on cross region relays
	AuthHeader string `json:"-"`
}

// IsAuthorized whether the caller may act on a record owned by ownerID
func (c Caller) IsAuthorized(ownerID string) bool {
	return c.Admin || c.UserID == ownerID
}

// StreamEvent one lifecycle event published to the event queue
type StreamEvent struct {
	// Channel logical channel consumers subscribe on
	Channel string `json:"channel" validate:"required"`
	// Event event name, e.g. "stream.started"
	Event string `json:"event" validate:"required"`
	// StreamID parent stream the event concerns
	StreamID string `json:"streamId,omitempty"`
	// SessionID session the event concerns
	SessionID string `json:"sessionId,omitempty"`
	// UserID owner of the stream
	UserID string `json:"userId,omitempty"`
	// Timestamp epoch ms the event occurred
	Timestamp int64 `json:"timestamp" validate:"required"`
	// Payload optional event specific payload
	Payload interface{} `json:"payload,omitempty"`
}
