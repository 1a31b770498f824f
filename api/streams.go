package api

import (
	"encoding/json"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// StreamAPIHandler REST API interface to the stream lifecycle manager
type StreamAPIHandler struct {
	goutils.RestAPIHandler
	validate   *validator.Validate
	manager    control.StreamManager
	streamsCfg common.StreamManagementConfig
}

/*
NewStreamAPIHandler define a new stream API handler

	@param manager control.StreamManager - stream lifecycle manager
	@param streamsCfg common.StreamManagementConfig - stream management settings
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new StreamAPIHandler
*/
func NewStreamAPIHandler(
	manager control.StreamManager,
	streamsCfg common.StreamManagementConfig,
	logConfig common.HTTPRequestLogging,
) (StreamAPIHandler, error) {
	return StreamAPIHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "stream-handler"},
				LogTagModifiers: []goutils.LogMetadataModifier{
					goutils.ModifyLogMetadataByRestRequestParam,
				},
			},
			CallRequestIDHeaderField: &logConfig.RequestIDHeader,
			DoNotLogHeaders: func() map[string]bool {
				result := map[string]bool{}
				for _, v := range logConfig.DoNotLogHeaders {
					result[v] = true
				}
				return result
			}(),
			LogLevel: logConfig.LogLevel,
		}, validate: validator.New(), manager: manager, streamsCfg: streamsCfg,
	}, nil
}

// writeResponse flush one response, handling bodiless status codes
func (h StreamAPIHandler) writeResponse(
	w http.ResponseWriter, r *http.Request, respCode int, response interface{},
	headers map[string]string,
) {
	logTags := h.GetLogTagsForContext(r.Context())
	if respCode == http.StatusNoContent {
		for name, value := range headers {
			w.Header().Set(name, value)
		}
		w.WriteHeader(respCode)
		return
	}
	if err := h.WriteRESTResponse(w, respCode, response, headers); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// ====================================================================================
// Health checks

// Alive godoc
// @Summary Gateway API liveness check
// @Description Will return success to indicate gateway REST API module is live
// @tags util
// @Produce json
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Router /alive [get]
func (h StreamAPIHandler) Alive(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())
	if err := h.WriteRESTResponse(
		w, http.StatusOK, h.GetStdRESTSuccessMsg(r.Context()), nil,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// AliveHandler Wrapper around Alive
func (h StreamAPIHandler) AliveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Alive(w, r)
	}
}

// Ready godoc
// @Summary Gateway API readiness check
// @Description Will return success if the gateway REST API module is ready for use
// @tags util
// @Produce json
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 500 {object} ErrorResponse "error"
// @Router /ready [get]
func (h StreamAPIHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()
	if err := h.manager.Ready(r.Context()); err != nil {
		respCode = http.StatusInternalServerError
		response = ErrorResponse{Errors: []string{"not ready"}}
	} else {
		respCode = http.StatusOK
		response = h.GetStdRESTSuccessMsg(r.Context())
	}
}

// ReadyHandler Wrapper around Ready
func (h StreamAPIHandler) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Ready(w, r)
	}
}

// ====================================================================================
// Stream CRUD

// CreateStream godoc
// @Summary Register a new parent stream
// @Description Register a new parent stream for the caller.
// @tags streams
// @Accept json
// @Produce json
// @Param param body control.NewStreamRequest true "Stream parameters"
// @Success 201 {object} common.ParentStream "the new stream"
// @Failure 400 {object} ErrorResponse "error"
// @Failure 422 {object} ErrorResponse "error"
// @Router /streams [post]
func (h StreamAPIHandler) CreateStream(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	var params control.NewStreamRequest
	if r.Body == nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing stream parameters"}}
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to parse stream parameters")
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{err.Error()}}
		return
	}

	stream, err := h.manager.CreateStream(r.Context(), caller, params)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream creation failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusCreated
	response = stream
}

// CreateStreamHandler Wrapper around CreateStream
func (h StreamAPIHandler) CreateStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.CreateStream(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ListStreams godoc
// @Summary List stream records
// @Description List stream records visible to the caller, cursor paginated.
// @tags streams
// @Produce json
// @Param cursor query string false "Continuation cursor"
// @Param limit query int false "Page size"
// @Param streamsonly query bool false "Parent streams only"
// @Param sessionsonly query bool false "Stream sessions only"
// @Param isActive query bool false "Restrict by liveness"
// @Param record query bool false "Restrict by recording flag"
// @Success 200 {array} common.StreamRecord "one page of records"
// @Router /streams [get]
func (h StreamAPIHandler) ListStreams(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	query := r.URL.Query()
	request := control.ListStreamsRequest{
		Filter: db.StreamRecordFilter{
			UserID:         query.Get("userId"),
			IsActive:       boolQueryParam(query, "isActive"),
			Record:         boolQueryParam(query, "record"),
			IncludeDeleted: query.Get("all") == "true",
		},
		Page: parsePageRequest(r, h.streamsCfg),
	}
	if only := boolQueryParam(query, "streamsonly"); only != nil && *only {
		request.Filter.ParentsOnly = true
	}
	if only := boolQueryParam(query, "sessionsonly"); only != nil && *only {
		request.Filter.SessionsOnly = true
	}

	records, cursor, err := h.manager.ListStreams(r.Context(), caller, request)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream listing failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = records
	headers = nextPageHeaders(r, cursor)
}

// ListStreamsHandler Wrapper around ListStreams
func (h StreamAPIHandler) ListStreamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListStreams(w, r)
	}
}

// ------------------------------------------------------------------------------------

// bulkDeleteRequest body of a bulk stream delete
type bulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,gt=0"`
}

// DeleteStreams godoc
// @Summary Bulk delete streams
// @Description Soft delete multiple streams owned by the caller.
// @tags streams
// @Accept json
// @Success 204 "deleted"
// @Failure 403 {object} ErrorResponse "error"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams [delete]
func (h StreamAPIHandler) DeleteStreams(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	var params bulkDeleteRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil ||
		len(params.IDs) == 0 {
		respCode = http.StatusBadRequest
		response = ErrorResponse{Errors: []string{"missing ids"}}
		return
	}

	if err := h.manager.DeleteStreams(r.Context(), caller, params.IDs); err != nil {
		log.WithError(err).WithFields(logTags).Error("Bulk stream delete failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// DeleteStreamsHandler Wrapper around DeleteStreams
func (h StreamAPIHandler) DeleteStreamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeleteStreams(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetStream godoc
// @Summary Fetch one stream record
// @Description Fetch one stream record by ID.
// @tags streams
// @Produce json
// @Param id path string true "Stream record ID"
// @Success 200 {object} common.StreamRecord "the record"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/{id} [get]
func (h StreamAPIHandler) GetStream(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	record, err := h.manager.GetStream(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		log.WithError(err).WithFields(logTags).Debug("Stream fetch failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = record
}

// GetStreamHandler Wrapper around GetStream
func (h StreamAPIHandler) GetStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetStream(w, r)
	}
}

// ------------------------------------------------------------------------------------

// PatchStream godoc
// @Summary Patch a parent stream
// @Description Apply a partial update to a parent stream. Sessions cannot be patched.
// @tags streams
// @Accept json
// @Param id path string true "Stream record ID"
// @Success 204 "updated"
// @Failure 400 {object} ErrorResponse "error"
// @Router /streams/{id} [patch]
func (h StreamAPIHandler) PatchStream(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	var params control.PatchStreamRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusBadRequest
		response = ErrorResponse{Errors: []string{"missing patch body"}}
		return
	}

	if err := h.manager.PatchStream(r.Context(), caller, mux.Vars(r)["id"], params); err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream patch failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// PatchStreamHandler Wrapper around PatchStream
func (h StreamAPIHandler) PatchStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.PatchStream(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DeleteStream godoc
// @Summary Delete one stream
// @Description Soft delete one stream, terminating it first if active.
// @tags streams
// @Param id path string true "Stream record ID"
// @Success 204 "deleted"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/{id} [delete]
func (h StreamAPIHandler) DeleteStream(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	if err := h.manager.DeleteStream(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream delete failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// DeleteStreamHandler Wrapper around DeleteStream
func (h StreamAPIHandler) DeleteStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeleteStream(w, r)
	}
}

// ====================================================================================
// Session creation and liveness

// CreateSession godoc
// @Summary Open a new ingest session
// @Description Open a new ingest session under a parent stream.
// @tags streams
// @Accept json
// @Produce json
// @Param id path string true "Parent stream ID"
// @Param param body control.NewSessionRequest true "Session parameters"
// @Success 201 {object} common.StreamSession "the new session"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/{id}/stream [post]
func (h StreamAPIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	var params control.NewSessionRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing session parameters"}}
		return
	}

	session, err := h.manager.CreateSession(r.Context(), caller, mux.Vars(r)["id"], params)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Session creation failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusCreated
	response = session
}

// CreateSessionHandler Wrapper around CreateSession
func (h StreamAPIHandler) CreateSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.CreateSession(w, r)
	}
}

// ------------------------------------------------------------------------------------

// SetActive godoc
// @Summary Apply a liveness report
// @Description Apply a media server liveness report to a stream record.
// @tags streams
// @Accept json
// @Param id path string true "Stream record ID"
// @Param param body control.SetActiveRequest true "Liveness report"
// @Success 204 "applied"
// @Failure 403 {object} ErrorResponse "error"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/{id}/setactive [put]
func (h StreamAPIHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	var params control.SetActiveRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusBadRequest
		response = ErrorResponse{Errors: []string{"missing liveness report"}}
		return
	}

	if err := h.manager.SetActive(r.Context(), mux.Vars(r)["id"], params); err != nil {
		log.WithError(err).WithFields(logTags).Error("Liveness report rejected")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// SetActiveHandler Wrapper around SetActive
func (h StreamAPIHandler) SetActiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.SetActive(w, r)
	}
}

// ------------------------------------------------------------------------------------

// SetRecord godoc
// @Summary Patch the recording flag
// @Description Change whether sessions of a parent stream are recorded.
// @tags streams
// @Accept json
// @Param id path string true "Stream record ID"
// @Success 204 "updated"
// @Failure 400 {object} ErrorResponse "error"
// @Router /streams/{id}/record [patch]
func (h StreamAPIHandler) SetRecord(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	var params struct {
		Record *bool `json:"record"`
	}
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil ||
		params.Record == nil {
		respCode = http.StatusBadRequest
		response = ErrorResponse{Errors: []string{"record field required"}}
		return
	}

	if err := h.manager.PatchStream(
		r.Context(), caller, mux.Vars(r)["id"], control.PatchStreamRequest{Record: params.Record},
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Record flag patch failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// SetRecordHandler Wrapper around SetRecord
func (h StreamAPIHandler) SetRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.SetRecord(w, r)
	}
}

// ------------------------------------------------------------------------------------

// SetSuspended godoc
// @Summary Patch the suspension flag
// @Description Suspend or unsuspend a parent stream. Suspension terminates the stream.
// @tags streams
// @Accept json
// @Param id path string true "Stream record ID"
// @Success 204 "updated"
// @Failure 400 {object} ErrorResponse "error"
// @Router /streams/{id}/suspended [patch]
func (h StreamAPIHandler) SetSuspended(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	var params struct {
		Suspended *bool `json:"suspended"`
	}
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil ||
		params.Suspended == nil {
		respCode = http.StatusBadRequest
		response = ErrorResponse{Errors: []string{"suspended field required"}}
		return
	}

	if err := h.manager.PatchStream(
		r.Context(), caller, mux.Vars(r)["id"],
		control.PatchStreamRequest{Suspended: params.Suspended},
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Suspension patch failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// SetSuspendedHandler Wrapper around SetSuspended
func (h StreamAPIHandler) SetSuspendedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.SetSuspended(w, r)
	}
}

// ====================================================================================
// Terminate

// Terminate godoc
// @Summary Kill a live stream
// @Description Kill the live ingest behind a stream record, relaying cross region.
// @tags streams
// @Produce json
// @Param id path string true "Stream record ID"
// @Success 200 {object} control.TerminateResult "outcome"
// @Failure 400 {object} ErrorResponse "error"
// @Failure 410 {object} ErrorResponse "error"
// @Router /streams/{id}/terminate [delete]
func (h StreamAPIHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())

	caller, ok := callerFromRequest(r)
	if !ok {
		h.writeResponse(
			w, r, http.StatusUnauthorized,
			ErrorResponse{Errors: []string{"unauthorized"}}, nil,
		)
		return
	}

	result, err := h.manager.Terminate(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream terminate failed")
		respCode, response := errorResponse(err)
		h.writeResponse(w, r, respCode, response, nil)
		return
	}

	// Relayed responses pass through verbatim
	if result.Relayed != nil {
		if result.Relayed.ContentType != "" {
			w.Header().Set("Content-Type", result.Relayed.ContentType)
		}
		w.WriteHeader(result.Relayed.StatusCode)
		if _, err := w.Write(result.Relayed.Body); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to relay response body")
		}
		return
	}

	h.writeResponse(w, r, http.StatusOK, result, nil)
}

// TerminateHandler Wrapper around Terminate
func (h StreamAPIHandler) TerminateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Terminate(w, r)
	}
}

// ====================================================================================
// Lookups

// GetStreamInfo godoc
// @Summary Resolve a stream reference
// @Description Resolve an ambiguous reference: stream key, playback ID, stream or session ID.
// @tags streams
// @Produce json
// @Param id path string true "The reference"
// @Success 200 {object} control.StreamInfo "resolution"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/{id}/info [get]
func (h StreamAPIHandler) GetStreamInfo(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	info, err := h.manager.ResolveStreamInfo(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		log.WithError(err).WithFields(logTags).Debug("Stream reference resolution failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = info
}

// GetStreamInfoHandler Wrapper around GetStreamInfo
func (h StreamAPIHandler) GetStreamInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetStreamInfo(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetStreamByPlaybackID godoc
// @Summary Fetch a stream by playback ID
// @tags streams
// @Produce json
// @Param playbackId path string true "Playback ID"
// @Success 200 {object} common.ParentStream "the stream"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/playback/{playbackId} [get]
func (h StreamAPIHandler) GetStreamByPlaybackID(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	stream, err := h.manager.GetStreamByPlaybackID(r.Context(), caller, mux.Vars(r)["playbackId"])
	if err != nil {
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = stream
}

// GetStreamByPlaybackIDHandler Wrapper around GetStreamByPlaybackID
func (h StreamAPIHandler) GetStreamByPlaybackIDHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetStreamByPlaybackID(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetStreamByKey godoc
// @Summary Fetch a stream by ingest stream key
// @tags streams
// @Produce json
// @Param streamKey path string true "Stream key"
// @Success 200 {object} common.ParentStream "the stream"
// @Failure 404 {object} ErrorResponse "error"
// @Router /streams/key/{streamKey} [get]
func (h StreamAPIHandler) GetStreamByKey(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	stream, err := h.manager.GetStreamByKey(r.Context(), caller, mux.Vars(r)["streamKey"])
	if err != nil {
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = stream
}

// GetStreamByKeyHandler Wrapper around GetStreamByKey
func (h StreamAPIHandler) GetStreamByKeyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetStreamByKey(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ListStreamUserSessions godoc
// @Summary List user sessions of a stream
// @Description List user sessions under a parent stream, recording fields computed.
// @tags streams
// @Produce json
// @Param id path string true "Parent stream ID"
// @Success 200 {array} common.UserSession "one page of sessions"
// @Router /streams/{id}/sessions [get]
func (h StreamAPIHandler) ListStreamUserSessions(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	query := r.URL.Query()
	forceURL := query.Get("forceUrl") == "true"
	sessions, cursor, err := h.manager.ListUserSessions(
		r.Context(), caller,
		db.UserSessionFilter{ParentID: mux.Vars(r)["id"]},
		parsePageRequest(r, h.streamsCfg),
		forceURL,
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("User session listing failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = sessions
	headers = nextPageHeaders(r, cursor)
}

// ListStreamUserSessionsHandler Wrapper around ListStreamUserSessions
func (h StreamAPIHandler) ListStreamUserSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListStreamUserSessions(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ListChildSessions godoc
// @Summary List raw child sessions
// @Description List the raw session records under a parent stream.
// @tags streams
// @Produce json
// @Param id path string true "Parent stream ID"
// @Success 200 {array} common.StreamSession "one page of sessions"
// @Router /streams/{id}/all-sessions [get]
func (h StreamAPIHandler) ListChildSessions(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	var headers map[string]string
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response, headers) }()

	caller, ok := callerFromRequest(r)
	if !ok {
		respCode = http.StatusUnauthorized
		response = ErrorResponse{Errors: []string{"unauthorized"}}
		return
	}

	sessions, cursor, err := h.manager.ListChildSessions(
		r.Context(), caller, mux.Vars(r)["id"], parsePageRequest(r, h.streamsCfg),
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Child session listing failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = sessions
	headers = nextPageHeaders(r, cursor)
}

// ListChildSessionsHandler Wrapper around ListChildSessions
func (h StreamAPIHandler) ListChildSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListChildSessions(w, r)
	}
}
