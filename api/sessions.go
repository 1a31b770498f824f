package api

import (
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/apex/log"
	"github.com/gorilla/mux"
)

// SessionAPIHandler REST API interface to user session queries and backfill jobs
type SessionAPIHandler struct {
	goutils.RestAPIHandler
	manager    control.StreamManager
	streamsCfg common.StreamManagementConfig
}

/*
NewSessionAPIHandler define a new user session API handler

	@param manager control.StreamManager - stream lifecycle manager
	@param streamsCfg common.StreamManagementConfig - stream management settings
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new SessionAPIHandler
*/
func NewSessionAPIHandler(
	manager control.StreamManager,
	streamsCfg common.StreamManagementConfig,
	logConfig common.HTTPRequestLogging,
) (SessionAPIHandler, error) {
	return SessionAPIHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "session-handler"},
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
		}, manager: manager, streamsCfg: streamsCfg,
	}, nil
}

// writeResponse flush one response, handling bodiless status codes
func (h SessionAPIHandler) writeResponse(
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

// ListSessions godoc
// @Summary List user sessions
// @Description List user sessions visible to the caller, recording fields computed.
// @tags sessions
// @Produce json
// @Param cursor query string false "Continuation cursor"
// @Param limit query int false "Page size"
// @Param record query bool false "Restrict by recording flag"
// @Param parentId query string false "Restrict to one parent stream"
// @Success 200 {array} common.UserSession "one page of sessions"
// @Router /sessions [get]
func (h SessionAPIHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
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
	filter := db.UserSessionFilter{
		UserID:   query.Get("userId"),
		ParentID: query.Get("parentId"),
		Record:   boolQueryParam(query, "record"),
	}
	forceURL := query.Get("forceUrl") == "true"

	sessions, cursor, err := h.manager.ListUserSessions(
		r.Context(), caller, filter, parsePageRequest(r, h.streamsCfg), forceURL,
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

// ListSessionsHandler Wrapper around ListSessions
func (h SessionAPIHandler) ListSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListSessions(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetSession godoc
// @Summary Fetch one user session
// @Description Fetch one user session by chain head ID, recording fields computed.
// @tags sessions
// @Produce json
// @Param id path string true "User session ID"
// @Success 200 {object} common.UserSession "the session"
// @Failure 404 {object} ErrorResponse "error"
// @Router /sessions/{id} [get]
func (h SessionAPIHandler) GetSession(w http.ResponseWriter, r *http.Request) {
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

	forceURL := r.URL.Query().Get("forceUrl") == "true"
	session, err := h.manager.GetUserSession(r.Context(), caller, mux.Vars(r)["id"], forceURL)
	if err != nil {
		log.WithError(err).WithFields(logTags).Debug("User session fetch failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = session
}

// GetSessionHandler Wrapper around GetSession
func (h SessionAPIHandler) GetSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetSession(w, r)
	}
}

// ====================================================================================
// Backfill jobs

// runBackfill drive one backfill job, streaming progress as plain text
func (h SessionAPIHandler) runBackfill(
	w http.ResponseWriter,
	r *http.Request,
	job func(progress func(string)) (int, error),
) {
	logTags := h.GetLogTagsForContext(r.Context())

	caller, ok := callerFromRequest(r)
	if !ok || !caller.Admin {
		h.writeResponse(
			w, r, http.StatusForbidden, ErrorResponse{Errors: []string{"admin required"}}, nil,
		)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	progress := func(msg string) {
		if _, err := w.Write([]byte(msg)); err != nil {
			log.WithError(err).WithFields(logTags).Warn("Progress write failed")
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	if _, err := job(progress); err != nil {
		log.WithError(err).WithFields(logTags).Error("Backfill job failed")
		progress("error: " + err.Error() + "\n")
	}
}

// BackfillUserSessions godoc
// @Summary Rebuild user session projections
// @Description Walk settled recorded sessions and create any missing user session
// @Description projections. Admin only. Progress streams as plain text.
// @tags sessions
// @Produce plain
// @Success 200 {string} string "progress"
// @Failure 403 {object} ErrorResponse "error"
// @Router /sessions/migrate [get]
func (h SessionAPIHandler) BackfillUserSessions(w http.ResponseWriter, r *http.Request) {
	h.runBackfill(w, r, func(progress func(string)) (int, error) {
		return h.manager.BackfillUserSessions(r.Context(), progress)
	})
}

// BackfillUserSessionsHandler Wrapper around BackfillUserSessions
func (h SessionAPIHandler) BackfillUserSessionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.BackfillUserSessions(w, r)
	}
}

// BackfillSessionLinks godoc
// @Summary Repair user session chain links
// @Description Copy missing last session links from stream records onto user session
// @Description projections. Admin only. Progress streams as plain text.
// @tags sessions
// @Produce plain
// @Success 200 {string} string "progress"
// @Failure 403 {object} ErrorResponse "error"
// @Router /sessions/migrate2 [get]
func (h SessionAPIHandler) BackfillSessionLinks(w http.ResponseWriter, r *http.Request) {
	h.runBackfill(w, r, func(progress func(string)) (int, error) {
		return h.manager.BackfillSessionLinks(r.Context(), progress)
	})
}

// BackfillSessionLinksHandler Wrapper around BackfillSessionLinks
func (h SessionAPIHandler) BackfillSessionLinksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.BackfillSessionLinks(w, r)
	}
}
