package control

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/db"
	"github.com/alwitt/livegate/event"
	"github.com/alwitt/livegate/mist"
	"github.com/alwitt/livegate/utils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// reservedProfileName rendition name reserved for the unmodified ingest
const reservedProfileName = "source"

// NewStreamRequest parameters for registering a new parent stream
type NewStreamRequest struct {
	// Name stream name
	Name string `json:"name" validate:"required"`
	// Profiles transcode renditions to produce
	Profiles []common.TranscodeProfile `json:"profiles" validate:"omitempty,dive"`
	// Record whether to record sessions of this stream
	Record bool `json:"record"`
	// ObjectStoreID object store holding stream artifacts
	ObjectStoreID string `json:"objectStoreId"`
	// Multistream restream settings
	Multistream *common.MultistreamConfig `json:"multistream"`
	// Detection per-stream content detection override
	Detection *common.DetectionConfig `json:"detection"`
}

// NewSessionRequest parameters for opening a new ingest session
type NewSessionRequest struct {
	// Name media server stream name of the session
	Name string `json:"name" validate:"required"`
	// Profiles transcode renditions, parent's profiles when empty
	Profiles []common.TranscodeProfile `json:"profiles" validate:"omitempty,dive"`
}

// PatchStreamRequest partial update of a parent stream
type PatchStreamRequest struct {
	// Record whether to record sessions of this stream
	Record *bool `json:"record"`
	// Suspended whether API access to the stream is suspended
	Suspended *bool `json:"suspended"`
	// Multistream restream settings
	Multistream *common.MultistreamConfig `json:"multistream"`
}

// SetActiveRequest media server liveness report for one stream record
type SetActiveRequest struct {
	// Active whether the stream is live
	Active bool `json:"active"`
	// HostName media server node making the report
	HostName string `json:"hostName"`
	// StartedAt epoch ms the ingest began
	StartedAt int64 `json:"startedAt"`
}

// ListStreamsRequest selection criteria for listing stream records
type ListStreamsRequest struct {
	// Filter DB level selection criteria
	Filter db.StreamRecordFilter
	// Page pagination request
	Page db.PageRequest
}

// TerminateResult outcome of a stream terminate
type TerminateResult struct {
	// Result whether a live stream was actually killed, local terminations only
	Result bool `json:"result"`
	// Relayed response of the remote gateway when the stream lived in another region
	Relayed *RelayedResponse `json:"-"`
}

// StreamInfo resolution of an ambiguous stream reference
type StreamInfo struct {
	// IsStreamKey the reference was an ingest stream key
	IsStreamKey bool `json:"isStreamKey,omitempty"`
	// IsPlaybackID the reference was a playback ID
	IsPlaybackID bool `json:"isPlaybackid,omitempty"`
	// IsSession the reference was a session record ID
	IsSession bool `json:"isSession,omitempty"`
	// Stream the parent stream the reference resolved to
	Stream *common.ParentStream `json:"stream"`
	// Session the most recent session under the stream, if any
	Session *common.StreamSession `json:"session,omitempty"`
}

// StreamManager core stream and session lifecycle manager
type StreamManager interface {
	/*
		Ready check whether the manager is ready to serve

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	/*
		CreateStream register a new parent stream

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param request NewStreamRequest - stream parameters
			@returns the new parent stream
	*/
	CreateStream(
		ctxt context.Context, caller common.Caller, request NewStreamRequest,
	) (common.ParentStream, error)

	/*
		CreateSession open a new ingest session under a parent stream.

		The chain resolver decides whether the session continues a recently ended
		one. Chain back links are written after the fact by a support worker.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param parentRef string - parent stream ID
			@param request NewSessionRequest - session parameters
			@returns the new stream session
	*/
	CreateSession(
		ctxt context.Context, caller common.Caller, parentRef string, request NewSessionRequest,
	) (common.StreamSession, error)

	/*
		GetStream retrieve one stream record

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - record ID
			@returns the record in tagged form
	*/
	GetStream(ctxt context.Context, caller common.Caller, id string) (common.StreamRecord, error)

	/*
		GetStreamByPlaybackID retrieve one parent stream by playback ID

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param playbackID string - public playback ID
			@returns the parent stream
	*/
	GetStreamByPlaybackID(
		ctxt context.Context, caller common.Caller, playbackID string,
	) (common.ParentStream, error)

	/*
		GetStreamByKey retrieve one parent stream by ingest stream key

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param streamKey string - ingest stream key
			@returns the parent stream
	*/
	GetStreamByKey(
		ctxt context.Context, caller common.Caller, streamKey string,
	) (common.ParentStream, error)

	/*
		ListStreams list stream records visible to the caller

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param request ListStreamsRequest - selection criteria
			@returns one page of records, and the continuation cursor if more remain
	*/
	ListStreams(
		ctxt context.Context, caller common.Caller, request ListStreamsRequest,
	) ([]common.StreamRecord, string, error)

	/*
		ListChildSessions list the raw session records under a parent stream

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param parentID string - parent stream ID
			@param page db.PageRequest - pagination request
			@returns one page of sessions, and the continuation cursor if more remain
	*/
	ListChildSessions(
		ctxt context.Context, caller common.Caller, parentID string, page db.PageRequest,
	) ([]common.StreamSession, string, error)

	/*
		PatchStream apply a partial update to a parent stream.

		Stream sessions cannot be patched. Suspending a stream also terminates it
		best effort.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - record ID
			@param request PatchStreamRequest - fields to change
	*/
	PatchStream(
		ctxt context.Context, caller common.Caller, id string, request PatchStreamRequest,
	) error

	/*
		DeleteStream soft delete one stream. An active stream is terminated best
		effort first.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - record ID
	*/
	DeleteStream(ctxt context.Context, caller common.Caller, id string) error

	/*
		DeleteStreams soft delete multiple streams. The caller must own every named
		stream, or hold the admin role.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param ids []string - record IDs
	*/
	DeleteStreams(ctxt context.Context, caller common.Caller, ids []string) error

	/*
		SetActive apply a media server liveness report to a stream record.

		Propagates liveness to the non-deleted parent of a session, bumps the
		owner's last streamed timestamp, and queues a lifecycle event.

			@param ctxt context.Context - execution context
			@param id string - record ID
			@param request SetActiveRequest - the liveness report
	*/
	SetActive(ctxt context.Context, id string, request SetActiveRequest) error

	/*
		Terminate kill the live stream behind a parent stream record.

		A stream served by another region is relayed to that region's gateway and
		the remote response returned verbatim.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - record ID
			@returns the terminate outcome
	*/
	Terminate(ctxt context.Context, caller common.Caller, id string) (TerminateResult, error)

	/*
		ResolveStreamInfo resolve an ambiguous stream reference.

		The reference may be a stream key, playback ID, stream record ID or
		session record ID.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param ref string - the reference
			@returns what the reference was and the stream it resolved to
	*/
	ResolveStreamInfo(ctxt context.Context, caller common.Caller, ref string) (StreamInfo, error)

	/*
		GetUserSession retrieve one user session with computed recording fields

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - chain head session ID
			@param forceURL bool - expose recording URLs before the recording settles
			@returns the session
	*/
	GetUserSession(
		ctxt context.Context, caller common.Caller, id string, forceURL bool,
	) (common.UserSession, error)

	/*
		ListUserSessions list user sessions with computed recording fields

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param filter db.UserSessionFilter - selection criteria
			@param page db.PageRequest - pagination request
			@param forceURL bool - expose recording URLs before recordings settle
			@returns one page of sessions, and the continuation cursor if more remain
	*/
	ListUserSessions(
		ctxt context.Context,
		caller common.Caller,
		filter db.UserSessionFilter,
		page db.PageRequest,
		forceURL bool,
	) ([]common.UserSession, string, error)

	/*
		ResolveIngestHook answer a media server ingest admission request

			@param ctxt context.Context - execution context
			@param request IngestHookRequest - the admission request
			@returns the admission verdict
	*/
	ResolveIngestHook(ctxt context.Context, request IngestHookRequest) (IngestHookResponse, error)

	/*
		RecordDetection accept a content detection report and queue it for webhook
		consumers

			@param ctxt context.Context - execution context
			@param request DetectionReport - the detection report
	*/
	RecordDetection(ctxt context.Context, request DetectionReport) error

	/*
		BackfillUserSessions rebuild missing user session projections from raw
		session chains. Progress is streamed to the provided sink.

			@param ctxt context.Context - execution context
			@param progress func(string) - progress sink
			@returns number of sessions processed
	*/
	BackfillUserSessions(ctxt context.Context, progress func(string)) (int, error)

	/*
		BackfillSessionLinks copy chain tail links from parent streams onto their
		chain head sessions where missing. Progress is streamed to the provided
		sink.

			@param ctxt context.Context - execution context
			@param progress func(string) - progress sink
			@returns number of sessions processed
	*/
	BackfillSessionLinks(ctxt context.Context, progress func(string)) (int, error)

	/*
		Stop stop the manager's support worker

			@param ctxt context.Context - execution context
	*/
	Stop(ctxt context.Context) error
}

// managerMetrics stream lifecycle counters
type managerMetrics struct {
	sessionsStarted *prometheus.CounterVec
	hookVerdicts    *prometheus.CounterVec
	terminations    prometheus.Counter
}

// streamManagerImpl implements StreamManager
type streamManagerImpl struct {
	goutils.Component
	db          db.PersistenceManager
	chainer     SessionChainer
	events      event.Queue
	mistClient  mist.Client
	relay       RegionRelay
	catalog     utils.IngestCatalog
	lookupCache utils.StreamLookupCache
	streamsCfg  common.StreamManagementConfig
	regionCfg   common.RegionConfig
	lookupTTL   time.Duration
	validator   *validator.Validate
	metrics     *managerMetrics

	/* Support worker related below */
	worker           goutils.TaskProcessor
	wg               sync.WaitGroup
	workerContext    context.Context
	workerCtxtCancel context.CancelFunc
}

/*
NewStreamManager define a new stream lifecycle manager

	@param parentContext context.Context - lifetime context of the manager
	@param dbClient db.PersistenceManager - persistence manager
	@param chainer SessionChainer - session chain resolver
	@param events event.Queue - lifecycle event queue
	@param mistClient mist.Client - media server API client, nil when unconfigured
	@param relay RegionRelay - cross region request relay
	@param catalog utils.IngestCatalog - ingest endpoint catalog
	@param lookupCache utils.StreamLookupCache - hook path lookup cache, optional
	@param config common.GatewayConfig - gateway node config
	@param registry prometheus.Registerer - metrics registry, optional
	@returns new manager
*/
func NewStreamManager(
	parentContext context.Context,
	dbClient db.PersistenceManager,
	chainer SessionChainer,
	events event.Queue,
	mistClient mist.Client,
	relay RegionRelay,
	catalog utils.IngestCatalog,
	lookupCache utils.StreamLookupCache,
	config common.GatewayConfig,
	registry prometheus.Registerer,
) (StreamManager, error) {
	logTags := log.Fields{"module": "control", "component": "stream-manager"}

	worker, err := goutils.GetNewTaskProcessorInstance(parentContext, "stream-manager", 8, logTags)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define support worker")
		return nil, err
	}

	workerCtxt, cancel := context.WithCancel(parentContext)

	var metrics *managerMetrics
	if registry != nil {
		metrics = &managerMetrics{
			sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "livegate_sessions_started_total",
				Help: "Ingest sessions opened, by chain outcome",
			}, []string{"outcome"}),
			hookVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "livegate_ingest_hook_verdicts_total",
				Help: "Ingest admission hook verdicts",
			}, []string{"verdict"}),
			terminations: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "livegate_stream_terminations_total",
				Help: "Stream terminate operations executed locally",
			}),
		}
		registry.MustRegister(metrics.sessionsStarted, metrics.hookVerdicts, metrics.terminations)
	}

	manager := &streamManagerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:               dbClient,
		chainer:          chainer,
		events:           events,
		mistClient:       mistClient,
		relay:            relay,
		catalog:          catalog,
		lookupCache:      lookupCache,
		streamsCfg:       config.Streams,
		regionCfg:        config.Region,
		lookupTTL:        config.LookupCache.TTL(),
		validator:        validator.New(),
		metrics:          metrics,
		worker:           worker,
		wg:               sync.WaitGroup{},
		workerContext:    workerCtxt,
		workerCtxtCancel: cancel,
	}

	// -----------------------------------------------------------------------------
	// Define support tasks

	if err := worker.AddToTaskExecutionMap(
		reflect.TypeOf(chainBackLinkTask{}), manager.writeChainBackLink,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to install task definition")
		return nil, err
	}

	if err := worker.AddToTaskExecutionMap(
		reflect.TypeOf(publishEventTask{}), manager.publishEvent,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to install task definition")
		return nil, err
	}

	// -----------------------------------------------------------------------------
	// Start the worker

	if err := worker.StartEventLoop(&manager.wg); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to start the worker thread")
		return nil, err
	}

	return manager, nil
}

func (m *streamManagerImpl) Ready(ctxt context.Context) error {
	return m.db.Ready(ctxt)
}

func (m *streamManagerImpl) Stop(ctxt context.Context) error {
	m.workerCtxtCancel()
	if err := m.worker.StopEventLoop(); err != nil {
		return err
	}
	return goutils.TimeBoundedWaitGroupWait(ctxt, &m.wg, time.Second*5)
}

// ===========================================================================================
// Support worker tasks

type chainBackLinkTask struct {
	chainHead    string
	candidateID  string
	newSessionID string
}

type publishEventTask struct {
	event common.StreamEvent
}

// queueEvent submit a lifecycle event for async publication
func (m *streamManagerImpl) queueEvent(ctxt context.Context, streamEvent common.StreamEvent) {
	if err := m.worker.Submit(ctxt, publishEventTask{event: streamEvent}); err != nil {
		log.
			WithError(err).
			WithFields(m.GetLogTagsForContext(ctxt)).
			WithField("event", streamEvent.Event).
			Error("Failed to submit event publish job")
	}
}

func (m *streamManagerImpl) publishEvent(params interface{}) error {
	task, ok := params.(publishEventTask)
	if !ok {
		return fmt.Errorf("received unexpected call parameters: %s", reflect.TypeOf(params))
	}
	// Failures are logged by the queue, the originating request already finished
	_ = m.events.Publish(m.workerContext, task.event)
	return nil
}

func (m *streamManagerImpl) writeChainBackLink(params interface{}) error {
	task, ok := params.(chainBackLinkTask)
	if !ok {
		return fmt.Errorf("received unexpected call parameters: %s", reflect.TypeOf(params))
	}
	logTags := m.GetLogTagsForContext(m.workerContext)

	// The chain head row learns its newest continuation
	if err := m.db.UpdateStream(m.workerContext, task.chainHead, db.StreamPatch{
		LastSessionID: &task.newSessionID,
	}); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("chain-head", task.chainHead).
			Error("Chain head back link update failed")
	}

	// Mirror onto the queryable projection
	if err := m.db.UpdateUserSession(m.workerContext, task.chainHead, db.UserSessionPatch{
		LastSessionID: &task.newSessionID,
	}); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("chain-head", task.chainHead).
			Warn("User session back link update failed")
	}

	// The superseded candidate is now a partial session
	partial := true
	if err := m.db.UpdateStream(m.workerContext, task.candidateID, db.StreamPatch{
		PartialSession: &partial,
	}); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("candidate", task.candidateID).
			Error("Partial session marker update failed")
	}
	return nil
}

// ===========================================================================================
// Stream CRUD

// validateMultistream validate restream settings against the stream's renditions,
// materializing inline push target specs into stored targets
func (m *streamManagerImpl) validateMultistream(
	ctxt context.Context,
	caller common.Caller,
	config *common.MultistreamConfig,
	profiles []common.TranscodeProfile,
) error {
	if config == nil {
		return nil
	}
	profileNames := map[string]bool{reservedProfileName: true}
	for _, profile := range profiles {
		profileNames[profile.Name] = true
	}

	for idx := range config.Targets {
		target := &config.Targets[idx]
		if (target.ID == nil) == (target.Spec == nil) {
			return NewAPIError(
				http.StatusUnprocessableEntity,
				"multistream target must name exactly one of 'id' or 'spec'",
			)
		}
		if !profileNames[target.Profile] {
			return NewAPIError(
				http.StatusUnprocessableEntity,
				fmt.Sprintf("multistream target references unknown profile '%s'", target.Profile),
			)
		}
		if target.ID != nil {
			stored, err := m.db.GetPushTarget(ctxt, *target.ID)
			if err != nil || !caller.IsAuthorized(stored.UserID) {
				return NewAPIError(
					http.StatusBadRequest,
					fmt.Sprintf("multistream target '%s' not found", *target.ID),
				)
			}
			continue
		}
		// Materialize the inline spec
		created, err := m.materializePushTarget(ctxt, caller, *target.Spec)
		if err != nil {
			return err
		}
		target.ID = &created.ID
		target.Spec = nil
	}
	return nil
}

// materializePushTarget store an inline push target definition
func (m *streamManagerImpl) materializePushTarget(
	ctxt context.Context, caller common.Caller, spec common.PushTargetSpec,
) (common.PushTarget, error) {
	parsed, err := url.Parse(spec.URL)
	if err != nil || (parsed.Scheme != "rtmp" && parsed.Scheme != "rtmps") {
		return common.PushTarget{}, NewAPIError(
			http.StatusUnprocessableEntity, "push target URL must be rtmp or rtmps",
		)
	}
	name := spec.Name
	if name == "" {
		name = parsed.Host
	}
	target := common.PushTarget{
		ID:     uuid.NewString(),
		UserID: caller.UserID,
		Name:   name,
		URL:    spec.URL,
	}
	if err := m.db.CreatePushTarget(ctxt, target); err != nil {
		return common.PushTarget{}, err
	}
	return target, nil
}

func (m *streamManagerImpl) CreateStream(
	ctxt context.Context, caller common.Caller, request NewStreamRequest,
) (common.ParentStream, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	if err := m.validator.Struct(&request); err != nil {
		return common.ParentStream{}, NewAPIError(http.StatusUnprocessableEntity, err.Error())
	}
	for _, profile := range request.Profiles {
		if profile.Name == reservedProfileName {
			return common.ParentStream{}, NewAPIError(
				http.StatusUnprocessableEntity,
				fmt.Sprintf("profile name '%s' is reserved", reservedProfileName),
			)
		}
	}

	// Artifact object store must exist and be usable
	if request.ObjectStoreID != "" {
		store, err := m.db.GetObjectStore(ctxt, request.ObjectStoreID)
		if err != nil || store.Deleted || store.Disabled || !caller.IsAuthorized(store.UserID) {
			return common.ParentStream{}, NewAPIError(
				http.StatusBadRequest,
				fmt.Sprintf("object store '%s' not usable", request.ObjectStoreID),
			)
		}
	}

	if err := m.validateMultistream(ctxt, caller, request.Multistream, request.Profiles); err != nil {
		return common.ParentStream{}, err
	}

	// Generate a collision free identity
	var id, playbackID, streamKey string
	for attempt := 0; ; attempt++ {
		id, playbackID, streamKey = utils.NewStreamIdentity()
		_, keyErr := m.db.GetParentStreamByKey(ctxt, streamKey)
		_, playbackErr := m.db.GetParentStreamByPlaybackID(ctxt, playbackID)
		if db.IsRecordNotFound(keyErr) && db.IsRecordNotFound(playbackErr) {
			break
		}
		if attempt >= 2 {
			return common.ParentStream{}, fmt.Errorf("unable to generate unique stream identity")
		}
	}

	parent := common.ParentStream{
		StreamBase: common.StreamBase{
			ID:            id,
			UserID:        caller.UserID,
			Name:          request.Name,
			PlaybackID:    playbackID,
			CreatedAt:     time.Now().UnixMilli(),
			Record:        request.Record,
			ObjectStoreID: request.ObjectStoreID,
		},
		StreamKey: streamKey,
	}
	if request.Profiles != nil {
		profiles := request.Profiles
		parent.Profiles = common.JSONColumn[[]common.TranscodeProfile]{V: &profiles}
	}
	if request.Multistream != nil {
		parent.Multistream = common.JSONColumn[common.MultistreamConfig]{V: request.Multistream}
	}
	if request.Detection != nil {
		parent.Detection = common.JSONColumn[common.DetectionConfig]{V: request.Detection}
	}

	if err := m.db.CreateParentStream(ctxt, parent); err != nil {
		log.WithError(err).WithFields(logTags).Error("Parent stream creation failed")
		return common.ParentStream{}, err
	}
	return parent, nil
}

// resolveSessionParent resolve the parent stream a new session belongs to.
//
// When the reference does not name a stream record directly, a session name of
// the form "<base>+<playbackId>" locates the parent through its playback ID.
func (m *streamManagerImpl) resolveSessionParent(
	ctxt context.Context, parentRef, sessionName string,
) (common.ParentStream, error) {
	parent, err := m.db.GetParentStream(ctxt, parentRef)
	if err == nil {
		return parent, nil
	}
	if !db.IsRecordNotFound(err) {
		return common.ParentStream{}, err
	}
	if idx := strings.LastIndex(sessionName, "+"); idx >= 0 {
		return m.db.GetParentStreamByPlaybackID(ctxt, sessionName[idx+1:])
	}
	return common.ParentStream{}, err
}

func (m *streamManagerImpl) CreateSession(
	ctxt context.Context, caller common.Caller, parentRef string, request NewSessionRequest,
) (common.StreamSession, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	if err := m.validator.Struct(&request); err != nil {
		return common.StreamSession{}, NewAPIError(http.StatusUnprocessableEntity, err.Error())
	}

	parent, err := m.resolveSessionParent(ctxt, parentRef, request.Name)
	if err != nil || parent.Deleted {
		// Existence is not revealed
		return common.StreamSession{}, NewAPIError(http.StatusNotFound, "stream not found")
	}
	if !caller.IsAuthorized(parent.UserID) {
		return common.StreamSession{}, NewAPIError(http.StatusNotFound, "stream not found")
	}

	now := time.Now().UnixMilli()
	session := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  utils.NewSessionID(parent.PlaybackID),
			UserID:              parent.UserID,
			Name:                request.Name,
			PlaybackID:          parent.PlaybackID,
			CreatedAt:           now,
			Record:              parent.Record,
			RecordObjectStoreID: parent.RecordObjectStoreID,
			ObjectStoreID:       parent.ObjectStoreID,
		},
		ParentID: parent.ID,
	}
	// Sessions borrow the parent's renditions unless they bring their own
	if request.Profiles != nil {
		profiles := request.Profiles
		session.Profiles = common.JSONColumn[[]common.TranscodeProfile]{V: &profiles}
	} else {
		session.Profiles = parent.Profiles
	}

	// Chain resolution only applies to recorded sessions with a pinned store
	outcome := ChainOutcome{ChainHead: session.ID}
	if session.Record && m.streamsCfg.RecordObjectStoreID != "" {
		if outcome, err = m.chainer.Thread(ctxt, &session); err != nil {
			return common.StreamSession{}, err
		}
	} else {
		session.UserSessionCreatedAt = session.CreatedAt
	}

	if err := m.db.CreateStreamSession(ctxt, session); err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream session creation failed")
		return common.StreamSession{}, err
	}

	if outcome.Continuation {
		// Back links are written after the response
		if err := m.worker.Submit(ctxt, chainBackLinkTask{
			chainHead:    outcome.ChainHead,
			candidateID:  outcome.CandidateID,
			newSessionID: session.ID,
		}); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to submit chain back link job")
		}
	} else {
		// A first session opens a fresh queryable projection
		projection := common.UserSession{
			ID:                  session.ID,
			UserID:              session.UserID,
			ParentID:            parent.ID,
			Name:                session.Name,
			PlaybackID:          parent.PlaybackID,
			Profiles:            session.Profiles,
			CreatedAt:           session.CreatedAt,
			Record:              session.Record,
			RecordObjectStoreID: session.RecordObjectStoreID,
			RecordingStatus:     common.RecordingStatusNone,
		}
		// The store may still be unpinned here; the ingest hook mirrors it later
		if session.Record {
			projection.RecordingStatus = common.RecordingStatusWaiting
		}
		if err := m.db.CreateUserSession(ctxt, projection); err != nil {
			log.WithError(err).WithFields(logTags).Error("User session projection creation failed")
			return common.StreamSession{}, err
		}
	}

	if m.metrics != nil {
		label := "new"
		if outcome.Continuation {
			label = "continuation"
		}
		m.metrics.sessionsStarted.WithLabelValues(label).Inc()
	}

	// Usage tracking is fire and forget
	m.queueEvent(ctxt, common.StreamEvent{
		Channel:   "usage",
		Event:     "session.created",
		StreamID:  parent.ID,
		SessionID: session.ID,
		UserID:    session.UserID,
	})

	return session, nil
}

// effectiveActive report and opportunistically repair staleness of an active marker
func (m *streamManagerImpl) effectiveActive(ctxt context.Context, base *common.StreamBase) {
	if !base.IsActive {
		return
	}
	staleBefore := time.Now().Add(-m.streamsCfg.ActiveTimeout()).UnixMilli()
	if base.LastSeen >= staleBefore {
		return
	}
	base.IsActive = false
	inactive := false
	if err := m.db.UpdateStream(ctxt, base.ID, db.StreamPatch{IsActive: &inactive}); err != nil {
		log.
			WithError(err).
			WithFields(m.GetLogTagsForContext(ctxt)).
			WithField("stream", base.ID).
			Warn("Stale active marker repair failed")
	}
}

func (m *streamManagerImpl) GetStream(
	ctxt context.Context, caller common.Caller, id string,
) (common.StreamRecord, error) {
	record, err := m.db.GetStreamRecord(ctxt, id)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return common.StreamRecord{}, NewAPIError(http.StatusNotFound, "stream not found")
		}
		return common.StreamRecord{}, err
	}
	base := record.Base()
	if base.Deleted && !caller.Admin {
		return common.StreamRecord{}, NewAPIError(http.StatusNotFound, "stream not found")
	}
	if !caller.IsAuthorized(base.UserID) {
		return common.StreamRecord{}, NewAPIError(http.StatusForbidden, "access forbidden")
	}
	m.effectiveActive(ctxt, base)
	return record, nil
}

func (m *streamManagerImpl) GetStreamByPlaybackID(
	ctxt context.Context, caller common.Caller, playbackID string,
) (common.ParentStream, error) {
	parent, err := m.db.GetParentStreamByPlaybackID(ctxt, playbackID)
	if err != nil || parent.Deleted {
		return common.ParentStream{}, NewAPIError(http.StatusNotFound, "stream not found")
	}
	if !caller.IsAuthorized(parent.UserID) {
		return common.ParentStream{}, NewAPIError(http.StatusForbidden, "access forbidden")
	}
	m.effectiveActive(ctxt, &parent.StreamBase)
	return parent, nil
}

func (m *streamManagerImpl) GetStreamByKey(
	ctxt context.Context, caller common.Caller, streamKey string,
) (common.ParentStream, error) {
	parent, err := m.db.GetParentStreamByKey(ctxt, streamKey)
	if err != nil || parent.Deleted {
		return common.ParentStream{}, NewAPIError(http.StatusNotFound, "stream not found")
	}
	if !caller.IsAuthorized(parent.UserID) {
		return common.ParentStream{}, NewAPIError(http.StatusForbidden, "access forbidden")
	}
	m.effectiveActive(ctxt, &parent.StreamBase)
	return parent, nil
}

func (m *streamManagerImpl) ListStreams(
	ctxt context.Context, caller common.Caller, request ListStreamsRequest,
) ([]common.StreamRecord, string, error) {
	filter := request.Filter
	// Non-admin callers only ever see their own records
	if !caller.Admin {
		filter.UserID = caller.UserID
		filter.IncludeDeleted = false
	}
	records, cursor, err := m.db.ListStreamRecords(ctxt, filter, request.Page)
	if err != nil {
		return nil, "", err
	}
	for idx := range records {
		m.effectiveActive(ctxt, records[idx].Base())
	}
	return records, cursor, nil
}

func (m *streamManagerImpl) ListChildSessions(
	ctxt context.Context, caller common.Caller, parentID string, page db.PageRequest,
) ([]common.StreamSession, string, error) {
	// Parent visibility check first
	if _, err := m.GetStream(ctxt, caller, parentID); err != nil {
		return nil, "", err
	}
	records, cursor, err := m.db.ListStreamRecords(
		ctxt, db.StreamRecordFilter{ParentID: parentID, SessionsOnly: true}, page,
	)
	if err != nil {
		return nil, "", err
	}
	sessions := make([]common.StreamSession, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, *record.Session)
	}
	return sessions, cursor, nil
}

func (m *streamManagerImpl) PatchStream(
	ctxt context.Context, caller common.Caller, id string, request PatchStreamRequest,
) error {
	record, err := m.GetStream(ctxt, caller, id)
	if err != nil {
		return err
	}
	if record.IsSession() {
		return NewAPIError(http.StatusBadRequest, "can't patch stream session")
	}
	parent := record.Parent

	if request.Multistream != nil {
		var profiles []common.TranscodeProfile
		if parent.Profiles.V != nil {
			profiles = *parent.Profiles.V
		}
		if err := m.validateMultistream(ctxt, caller, request.Multistream, profiles); err != nil {
			return err
		}
	}

	patch := db.StreamPatch{
		Record:      request.Record,
		Suspended:   request.Suspended,
		Multistream: request.Multistream,
	}
	if err := m.db.UpdateStream(ctxt, id, patch); err != nil {
		return err
	}

	// Suspension also kicks the broadcaster off
	if request.Suspended != nil && *request.Suspended {
		if _, err := m.Terminate(ctxt, caller, id); err != nil {
			log.
				WithError(err).
				WithFields(m.GetLogTagsForContext(ctxt)).
				WithField("stream", id).
				Warn("Terminate on suspension failed")
		}
	}
	return nil
}

func (m *streamManagerImpl) DeleteStream(
	ctxt context.Context, caller common.Caller, id string,
) error {
	record, err := m.GetStream(ctxt, caller, id)
	if err != nil {
		return err
	}
	if record.Base().IsActive {
		if _, err := m.Terminate(ctxt, caller, id); err != nil {
			log.
				WithError(err).
				WithFields(m.GetLogTagsForContext(ctxt)).
				WithField("stream", id).
				Warn("Terminate on deletion failed")
		}
	}
	return m.db.SetStreamsDeleted(ctxt, []string{id})
}

func (m *streamManagerImpl) DeleteStreams(
	ctxt context.Context, caller common.Caller, ids []string,
) error {
	if len(ids) == 0 {
		return NewAPIError(http.StatusBadRequest, "no stream ids given")
	}
	records, err := m.db.GetStreamRecords(ctxt, ids)
	if err != nil {
		return err
	}
	if len(records) != len(ids) {
		return NewAPIError(http.StatusNotFound, "stream not found")
	}
	for _, record := range records {
		// Existence of another user's stream is not revealed
		if !caller.IsAuthorized(record.Base().UserID) {
			return NewAPIError(http.StatusNotFound, "stream not found")
		}
	}
	return m.db.SetStreamsDeleted(ctxt, ids)
}

// ===========================================================================================
// Liveness

func (m *streamManagerImpl) SetActive(
	ctxt context.Context, id string, request SetActiveRequest,
) error {
	logTags := m.GetLogTagsForContext(ctxt)

	record, err := m.db.GetStreamRecord(ctxt, id)
	if err != nil || record.Base().Deleted {
		return NewAPIError(http.StatusNotFound, "stream not found")
	}
	base := record.Base()
	if base.Suspended {
		return NewAPIError(http.StatusForbidden, "stream is suspended")
	}
	owner, err := m.db.GetUser(ctxt, base.UserID)
	if err != nil {
		return NewAPIError(http.StatusNotFound, "stream owner not found")
	}
	if owner.Suspended {
		return NewAPIError(http.StatusForbidden, "stream owner is suspended")
	}

	now := time.Now().UnixMilli()
	patch := db.StreamPatch{
		IsActive: &request.Active,
		LastSeen: &now,
		MistHost: &request.HostName,
		Region:   &m.regionCfg.OwnRegion,
	}
	if err := m.db.UpdateStream(ctxt, id, patch); err != nil {
		return err
	}

	if request.Active {
		if err := m.db.UpdateUser(ctxt, owner.ID, db.UserPatch{LastStreamedAt: &now}); err != nil {
			log.WithError(err).WithFields(logTags).Warn("Owner last streamed update failed")
		}
	}

	// Liveness flows up to the parent as well
	streamID := base.ID
	if record.IsSession() {
		streamID = record.Session.ParentID
		parent, err := m.db.GetParentStream(ctxt, record.Session.ParentID)
		if err == nil && !parent.Deleted {
			if err := m.db.UpdateStream(ctxt, parent.ID, patch); err != nil {
				log.WithError(err).WithFields(logTags).Warn("Parent liveness propagation failed")
			}
		}
	}

	eventName := "stream.started"
	if !request.Active {
		eventName = "stream.idle"
	}
	m.queueEvent(ctxt, common.StreamEvent{
		Channel:   "webhooks",
		Event:     eventName,
		StreamID:  streamID,
		SessionID: base.ID,
		UserID:    base.UserID,
	})

	log.
		WithFields(logTags).
		WithField("stream", id).
		WithField("active", request.Active).
		Info("Applied liveness report")
	return nil
}

// ===========================================================================================
// Terminate

func (m *streamManagerImpl) Terminate(
	ctxt context.Context, caller common.Caller, id string,
) (TerminateResult, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	record, err := m.GetStream(ctxt, caller, id)
	if err != nil {
		return TerminateResult{}, err
	}
	base := record.Base()

	if !base.IsActive {
		return TerminateResult{}, NewAPIError(http.StatusGone, "stream is not active")
	}
	if base.Region == "" || base.MistHost == "" {
		return TerminateResult{}, NewAPIError(
			http.StatusBadRequest, "stream has no known media server location",
		)
	}

	// A stream live in another region is handed to that region's gateway
	if base.Region != m.regionCfg.OwnRegion {
		if m.regionCfg.OwnRegion == "" || m.regionCfg.FrontendDomain == "" {
			return TerminateResult{}, NewAPIError(
				http.StatusInternalServerError, "region relay is not configured",
			)
		}
		relayed, err := m.relay.RelayTerminate(ctxt, base.Region, id, caller.AuthHeader)
		if err != nil {
			return TerminateResult{}, err
		}
		return TerminateResult{Relayed: &relayed}, nil
	}

	if m.mistClient == nil {
		return TerminateResult{}, NewAPIError(
			http.StatusInternalServerError, "media server access is not configured",
		)
	}

	names, err := m.mistClient.ListActiveStreams(ctxt, base.MistHost)
	if err != nil {
		return TerminateResult{}, err
	}
	result := false
	for _, name := range names {
		if !strings.HasSuffix(name, base.PlaybackID) {
			continue
		}
		if err := m.mistClient.TerminateStream(ctxt, base.MistHost, name); err == nil {
			result = true
		}
	}

	if m.metrics != nil {
		m.metrics.terminations.Inc()
	}
	log.
		WithFields(logTags).
		WithField("stream", id).
		WithField("result", result).
		Info("Processed stream terminate")
	return TerminateResult{Result: result}, nil
}

// ===========================================================================================
// Stream info

func (m *streamManagerImpl) ResolveStreamInfo(
	ctxt context.Context, caller common.Caller, ref string,
) (StreamInfo, error) {
	info := StreamInfo{}

	// Try each identity space in turn
	if parent, err := m.db.GetParentStreamByKey(ctxt, ref); err == nil {
		info.IsStreamKey = true
		info.Stream = &parent
	} else if parent, err := m.db.GetParentStreamByPlaybackID(ctxt, ref); err == nil {
		info.IsPlaybackID = true
		info.Stream = &parent
	} else if record, err := m.db.GetStreamRecord(ctxt, ref); err == nil {
		if record.IsSession() {
			info.IsSession = true
			parent, err := m.db.GetParentStream(ctxt, record.Session.ParentID)
			if err != nil {
				return StreamInfo{}, NewAPIError(http.StatusNotFound, "stream not found")
			}
			info.Stream = &parent
		} else {
			info.Stream = record.Parent
		}
	} else {
		return StreamInfo{}, NewAPIError(http.StatusNotFound, "stream not found")
	}

	if info.Stream.Deleted && !caller.Admin {
		return StreamInfo{}, NewAPIError(http.StatusNotFound, "stream not found")
	}
	if !caller.IsAuthorized(info.Stream.UserID) {
		return StreamInfo{}, NewAPIError(http.StatusForbidden, "access forbidden")
	}
	m.effectiveActive(ctxt, &info.Stream.StreamBase)

	// Attach the most recent session under the stream
	sessions, _, err := m.db.ListStreamRecords(ctxt, db.StreamRecordFilter{
		ParentID: info.Stream.ID, SessionsOnly: true,
	}, db.PageRequest{Limit: 1})
	if err == nil && len(sessions) > 0 {
		info.Session = sessions[0].Session
	}
	return info, nil
}

// ===========================================================================================
// User sessions

// attachRecordingView compute and attach the recording fields of one projection
func (m *streamManagerImpl) attachRecordingView(
	ctxt context.Context, session *common.UserSession, forceURL bool,
) {
	ingestBase := ""
	if primary, err := m.catalog.Primary(ctxt); err == nil {
		ingestBase = primary.Base
	}
	view := EvaluateRecording(
		*session, ingestBase, time.Now(), m.streamsCfg.UserSessionTimeout(), forceURL,
	)
	if view.Status != "" {
		session.RecordingStatus = view.Status
	}
	session.RecordingURL = view.RecordingURL
	session.Mp4URL = view.Mp4URL
}

func (m *streamManagerImpl) GetUserSession(
	ctxt context.Context, caller common.Caller, id string, forceURL bool,
) (common.UserSession, error) {
	session, err := m.db.GetUserSession(ctxt, id)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return common.UserSession{}, NewAPIError(http.StatusNotFound, "session not found")
		}
		return common.UserSession{}, err
	}
	if session.Deleted && !caller.Admin {
		return common.UserSession{}, NewAPIError(http.StatusNotFound, "session not found")
	}
	if !caller.IsAuthorized(session.UserID) {
		return common.UserSession{}, NewAPIError(http.StatusForbidden, "access forbidden")
	}
	m.attachRecordingView(ctxt, &session, forceURL && caller.Admin)
	return session, nil
}

func (m *streamManagerImpl) ListUserSessions(
	ctxt context.Context,
	caller common.Caller,
	filter db.UserSessionFilter,
	page db.PageRequest,
	forceURL bool,
) ([]common.UserSession, string, error) {
	if !caller.Admin {
		filter.UserID = caller.UserID
		filter.IncludeDeleted = false
	}
	sessions, cursor, err := m.db.ListUserSessions(ctxt, filter, page)
	if err != nil {
		return nil, "", err
	}
	for idx := range sessions {
		m.attachRecordingView(ctxt, &sessions[idx], forceURL && caller.Admin)
	}
	return sessions, cursor, nil
}
