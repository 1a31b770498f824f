package api

import (
	"encoding/json"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/apex/log"
	"github.com/gorilla/mux"
)

// RegistryAPIHandler REST API interface to webhook, push target, and object store
// registration
type RegistryAPIHandler struct {
	goutils.RestAPIHandler
	manager    control.RegistryManager
	streamsCfg common.StreamManagementConfig
}

/*
NewRegistryAPIHandler define a new registry API handler

	@param manager control.RegistryManager - resource registry manager
	@param streamsCfg common.StreamManagementConfig - stream management settings
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new RegistryAPIHandler
*/
func NewRegistryAPIHandler(
	manager control.RegistryManager,
	streamsCfg common.StreamManagementConfig,
	logConfig common.HTTPRequestLogging,
) (RegistryAPIHandler, error) {
	return RegistryAPIHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "registry-handler"},
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
func (h RegistryAPIHandler) writeResponse(
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
// Webhooks

// CreateWebhook godoc
// @Summary Register a new webhook
// @Description Register a new webhook subscription for the caller.
// @tags registry
// @Accept json
// @Produce json
// @Param param body control.NewWebhookRequest true "Webhook definition"
// @Success 201 {object} common.Webhook "the new webhook"
// @Failure 406 {object} ErrorResponse "error"
// @Router /webhook [post]
func (h RegistryAPIHandler) CreateWebhook(w http.ResponseWriter, r *http.Request) {
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

	var params control.NewWebhookRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing webhook definition"}}
		return
	}

	hook, err := h.manager.CreateWebhook(r.Context(), caller, params)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Webhook creation failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusCreated
	response = hook
}

// CreateWebhookHandler Wrapper around CreateWebhook
func (h RegistryAPIHandler) CreateWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.CreateWebhook(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ListWebhooks godoc
// @Summary List webhooks
// @Description List webhook subscriptions visible to the caller.
// @tags registry
// @Produce json
// @Param cursor query string false "Continuation cursor"
// @Param limit query int false "Page size"
// @Param event query string false "Restrict to one subscribed event"
// @Success 200 {array} common.Webhook "one page of webhooks"
// @Router /webhook [get]
func (h RegistryAPIHandler) ListWebhooks(w http.ResponseWriter, r *http.Request) {
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
	filter := db.WebhookFilter{
		UserID:         query.Get("userId"),
		Event:          query.Get("event"),
		IncludeDeleted: query.Get("all") == "true",
	}

	hooks, cursor, err := h.manager.ListWebhooks(
		r.Context(), caller, filter, parsePageRequest(r, h.streamsCfg),
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Webhook listing failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = hooks
	headers = nextPageHeaders(r, cursor)
}

// ListWebhooksHandler Wrapper around ListWebhooks
func (h RegistryAPIHandler) ListWebhooksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListWebhooks(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetWebhook godoc
// @Summary Fetch one webhook
// @tags registry
// @Produce json
// @Param id path string true "Webhook ID"
// @Success 200 {object} common.Webhook "the webhook"
// @Failure 404 {object} ErrorResponse "error"
// @Router /webhook/{id} [get]
func (h RegistryAPIHandler) GetWebhook(w http.ResponseWriter, r *http.Request) {
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

	hook, err := h.manager.GetWebhook(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = hook
}

// GetWebhookHandler Wrapper around GetWebhook
func (h RegistryAPIHandler) GetWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetWebhook(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ReplaceWebhook godoc
// @Summary Replace one webhook
// @Description Overwrite one webhook with a new definition, keeping owner and
// @Description creation time.
// @tags registry
// @Accept json
// @Produce json
// @Param id path string true "Webhook ID"
// @Param param body control.NewWebhookRequest true "New definition"
// @Success 200 {object} common.Webhook "the updated webhook"
// @Failure 404 {object} ErrorResponse "error"
// @Router /webhook/{id} [put]
func (h RegistryAPIHandler) ReplaceWebhook(w http.ResponseWriter, r *http.Request) {
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

	var params control.NewWebhookRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing webhook definition"}}
		return
	}

	hook, err := h.manager.ReplaceWebhook(r.Context(), caller, mux.Vars(r)["id"], params)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Webhook replace failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = hook
}

// ReplaceWebhookHandler Wrapper around ReplaceWebhook
func (h RegistryAPIHandler) ReplaceWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ReplaceWebhook(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DeleteWebhook godoc
// @Summary Delete one webhook
// @tags registry
// @Param id path string true "Webhook ID"
// @Success 204 "deleted"
// @Failure 404 {object} ErrorResponse "error"
// @Router /webhook/{id} [delete]
func (h RegistryAPIHandler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
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

	if err := h.manager.DeleteWebhook(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
		log.WithError(err).WithFields(logTags).Error("Webhook delete failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// DeleteWebhookHandler Wrapper around DeleteWebhook
func (h RegistryAPIHandler) DeleteWebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeleteWebhook(w, r)
	}
}

// ====================================================================================
// Push targets

// CreatePushTarget godoc
// @Summary Register a multistream push target
// @Description Register a reusable RTMP push target for the caller.
// @tags registry
// @Accept json
// @Produce json
// @Param param body common.PushTargetSpec true "Push target definition"
// @Success 201 {object} common.PushTarget "the new push target"
// @Failure 422 {object} ErrorResponse "error"
// @Router /push-target [post]
func (h RegistryAPIHandler) CreatePushTarget(w http.ResponseWriter, r *http.Request) {
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

	var spec common.PushTargetSpec
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&spec) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing push target definition"}}
		return
	}

	target, err := h.manager.CreatePushTarget(r.Context(), caller, spec)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Push target creation failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusCreated
	response = target
}

// CreatePushTargetHandler Wrapper around CreatePushTarget
func (h RegistryAPIHandler) CreatePushTargetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.CreatePushTarget(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ListPushTargets godoc
// @Summary List push targets
// @tags registry
// @Produce json
// @Param userId query string false "Owner to list for, admin only"
// @Success 200 {array} common.PushTarget "one page of push targets"
// @Router /push-target [get]
func (h RegistryAPIHandler) ListPushTargets(w http.ResponseWriter, r *http.Request) {
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

	targets, cursor, err := h.manager.ListPushTargets(
		r.Context(), caller, r.URL.Query().Get("userId"), parsePageRequest(r, h.streamsCfg),
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Push target listing failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = targets
	headers = nextPageHeaders(r, cursor)
}

// ListPushTargetsHandler Wrapper around ListPushTargets
func (h RegistryAPIHandler) ListPushTargetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListPushTargets(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetPushTarget godoc
// @Summary Fetch one push target
// @tags registry
// @Produce json
// @Param id path string true "Push target ID"
// @Success 200 {object} common.PushTarget "the push target"
// @Failure 404 {object} ErrorResponse "error"
// @Router /push-target/{id} [get]
func (h RegistryAPIHandler) GetPushTarget(w http.ResponseWriter, r *http.Request) {
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

	target, err := h.manager.GetPushTarget(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = target
}

// GetPushTargetHandler Wrapper around GetPushTarget
func (h RegistryAPIHandler) GetPushTargetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetPushTarget(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DeletePushTarget godoc
// @Summary Delete one push target
// @tags registry
// @Param id path string true "Push target ID"
// @Success 204 "deleted"
// @Failure 404 {object} ErrorResponse "error"
// @Router /push-target/{id} [delete]
func (h RegistryAPIHandler) DeletePushTarget(w http.ResponseWriter, r *http.Request) {
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

	if err := h.manager.DeletePushTarget(r.Context(), caller, mux.Vars(r)["id"]); err != nil {
		log.WithError(err).WithFields(logTags).Error("Push target delete failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusNoContent
}

// DeletePushTargetHandler Wrapper around DeletePushTarget
func (h RegistryAPIHandler) DeletePushTargetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeletePushTarget(w, r)
	}
}

// ====================================================================================
// Object stores

// CreateObjectStore godoc
// @Summary Register an object store
// @Description Register a recording object store. The store is probed for
// @Description reachability unless skipped.
// @tags registry
// @Accept json
// @Produce json
// @Param param body control.NewObjectStoreRequest true "Object store definition"
// @Success 201 {object} common.ObjectStore "the new object store"
// @Failure 400 {object} ErrorResponse "error"
// @Router /object-store [post]
func (h RegistryAPIHandler) CreateObjectStore(w http.ResponseWriter, r *http.Request) {
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

	var params control.NewObjectStoreRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&params) != nil {
		respCode = http.StatusUnprocessableEntity
		response = ErrorResponse{Errors: []string{"missing object store definition"}}
		return
	}

	store, err := h.manager.CreateObjectStore(r.Context(), caller, params)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Object store creation failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusCreated
	response = store
}

// CreateObjectStoreHandler Wrapper around CreateObjectStore
func (h RegistryAPIHandler) CreateObjectStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.CreateObjectStore(w, r)
	}
}

// ------------------------------------------------------------------------------------

// ListObjectStores godoc
// @Summary List object stores
// @tags registry
// @Produce json
// @Param userId query string false "Owner to list for, admin only"
// @Success 200 {array} common.ObjectStore "one page of object stores"
// @Router /object-store [get]
func (h RegistryAPIHandler) ListObjectStores(w http.ResponseWriter, r *http.Request) {
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

	stores, cursor, err := h.manager.ListObjectStores(
		r.Context(), caller, r.URL.Query().Get("userId"), parsePageRequest(r, h.streamsCfg),
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Object store listing failed")
		respCode, response = errorResponse(err)
		return
	}
	respCode = http.StatusOK
	response = stores
	headers = nextPageHeaders(r, cursor)
}

// ListObjectStoresHandler Wrapper around ListObjectStores
func (h RegistryAPIHandler) ListObjectStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListObjectStores(w, r)
	}
}
