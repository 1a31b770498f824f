package api

import (
	"encoding/json"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/apex/log"
)

// HookAPIHandler REST API interface for media server callbacks. These endpoints sit
// outside the API token middleware since the media server authenticates at the
// network layer.
type HookAPIHandler struct {
	goutils.RestAPIHandler
	manager control.StreamManager
}

/*
NewHookAPIHandler define a new media server hook handler

	@param manager control.StreamManager - stream lifecycle manager
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new HookAPIHandler
*/
func NewHookAPIHandler(
	manager control.StreamManager, logConfig common.HTTPRequestLogging,
) (HookAPIHandler, error) {
	return HookAPIHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "hook-handler"},
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
		}, manager: manager,
	}, nil
}

// writeResponse flush one response, handling bodiless status codes
func (h HookAPIHandler) writeResponse(
	w http.ResponseWriter, r *http.Request, respCode int, response interface{},
) {
	logTags := h.GetLogTagsForContext(r.Context())
	if respCode == http.StatusNoContent {
		w.WriteHeader(respCode)
		return
	}
	if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// IngestHook godoc
// @Summary Answer an ingest admission request
// @Description Decide whether the media server should accept an incoming ingest
// @Description connection, and with what transcode and storage settings.
// @tags hook
// @Accept json
// @Produce json
// @Param param body control.IngestHookRequest true "The admission request"
// @Success 200 {object} control.IngestHookResponse "admission verdict"
// @Failure 403 {object} ErrorResponse "error"
// @Failure 422 {object} ErrorResponse "error"
// @Router /hook [post]
func (h HookAPIHandler) IngestHook(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response) }()

	var params control.IngestHookRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing request body"}}
		return
	}

	verdict, err := h.manager.ResolveIngestHook(r.Context(), params)
	if err != nil {
		log.WithError(err).WithFields(logTags).Info("Ingest admission denied")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = verdict
}

// IngestHookHandler Wrapper around IngestHook
func (h HookAPIHandler) IngestHookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.IngestHook(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DetectionHook godoc
// @Summary Record a content detection report
// @Description Accept a scene classification report from the media server and fan it
// @Description out to detection webhook subscribers.
// @tags hook
// @Accept json
// @Param param body control.DetectionReport true "The detection report"
// @Success 204 "accepted"
// @Failure 404 {object} ErrorResponse "error"
// @Router /hook/detection [post]
func (h HookAPIHandler) DetectionHook(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() { h.writeResponse(w, r, respCode, response) }()

	var params control.DetectionReport
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing request body"}}
		return
	}

	if err := h.manager.RecordDetection(r.Context(), params); err != nil {
		log.WithError(err).WithFields(logTags).Error("Detection report rejected")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// DetectionHookHandler Wrapper around DetectionHook
func (h HookAPIHandler) DetectionHookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DetectionHook(w, r)
	}
}
