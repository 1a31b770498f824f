package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alwitt/livegate/api"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// testAuth token auth middleware accepting one fixed bearer token
type testAuth struct {
	authenticator api.APITokenAuthenticator
	header        string
	userID        string
}

func newTestAuth(t *testing.T, admin bool) testAuth {
	assert := assert.New(t)

	mockDB := mocks.NewPersistenceManager(t)
	authenticator, err := api.NewAPITokenAuthenticator(mockDB)
	assert.Nil(err)

	token := uuid.NewString()
	userID := uuid.NewString()
	mockDB.On("GetAPIToken", mock.Anything, token).Return(
		common.APIToken{ID: token, UserID: userID}, nil,
	).Maybe()
	mockDB.On("GetUser", mock.Anything, userID).Return(
		common.User{ID: userID, Email: "ut@example.com", Admin: admin}, nil,
	).Maybe()

	return testAuth{
		authenticator: authenticator,
		header:        "Bearer " + token,
		userID:        userID,
	}
}

func testStreamsCfg() common.StreamManagementConfig {
	return common.StreamManagementConfig{
		UserSessionTimeoutInSec: 300,
		ActiveTimeoutInSec:      60,
		MaxPageSize:             100,
		DefaultPageSize:         20,
	}
}

func testLogCfg() common.HTTPRequestLogging {
	return common.HTTPRequestLogging{
		RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
	}
}

func TestStreamAPICreateStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewStreamAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("POST").Path("/v1/streams").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.CreateStreamHandler())),
	)

	// Case 0: no credentials
	{
		req, err := http.NewRequest(
			"POST", "/v1/streams", bytes.NewBufferString(`{"name":"my-stream"}`),
		)
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
	}

	// Case 1: stream registered for the caller
	{
		expected := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: auth.userID, Name: "my-stream",
		}}
		var caller common.Caller
		mockManager.On(
			"CreateStream", mock.Anything, mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("control.NewStreamRequest"),
		).Run(func(args mock.Arguments) {
			caller = args.Get(1).(common.Caller)
		}).Return(expected, nil).Once()

		req, err := http.NewRequest(
			"POST", "/v1/streams", bytes.NewBufferString(`{"name":"my-stream"}`),
		)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusCreated, respRecorder.Code)
		assert.Equal(auth.userID, caller.UserID)
		var created common.ParentStream
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &created))
		assert.Equal(expected.ID, created.ID)
	}

	// Case 2: manager rejection maps onto the error body
	{
		mockManager.On(
			"CreateStream", mock.Anything, mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("control.NewStreamRequest"),
		).Return(
			common.ParentStream{},
			control.NewAPIError(http.StatusUnprocessableEntity, "profile name 'source' is reserved"),
		).Once()

		req, err := http.NewRequest(
			"POST", "/v1/streams", bytes.NewBufferString(`{"name":"my-stream"}`),
		)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusUnprocessableEntity, respRecorder.Code)
		var body api.ErrorResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &body))
		assert.Equal([]string{"profile name 'source' is reserved"}, body.Errors)
	}
}

func TestStreamAPIListStreams(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewStreamAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("GET").Path("/v1/streams").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.ListStreamsHandler())),
	)

	// Case 0: filters and clamped page size reach the manager, cursor comes
	// back as a Link header
	{
		var request control.ListStreamsRequest
		mockManager.On(
			"ListStreams", mock.Anything, mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("control.ListStreamsRequest"),
		).Run(func(args mock.Arguments) {
			request = args.Get(2).(control.ListStreamsRequest)
		}).Return([]common.StreamRecord{}, "next-cursor", nil).Once()

		req, err := http.NewRequest(
			"GET", "/v1/streams?limit=500&sessionsonly=true&record=true", nil,
		)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		assert.Equal(100, request.Page.Limit)
		assert.True(request.Filter.SessionsOnly)
		assert.NotNil(request.Filter.Record)
		assert.True(*request.Filter.Record)
		link := respRecorder.Header().Get("Link")
		assert.Contains(link, "cursor=next-cursor")
		assert.Contains(link, `rel="next"`)
	}

	// Case 1: final page carries no Link header
	{
		var request control.ListStreamsRequest
		mockManager.On(
			"ListStreams", mock.Anything, mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("control.ListStreamsRequest"),
		).Run(func(args mock.Arguments) {
			request = args.Get(2).(control.ListStreamsRequest)
		}).Return([]common.StreamRecord{}, "", nil).Once()

		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		assert.Equal(20, request.Page.Limit)
		assert.Empty(respRecorder.Header().Get("Link"))
	}
}

func TestStreamAPIDeleteStreams(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewStreamAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("DELETE").Path("/v1/streams").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.DeleteStreamsHandler())),
	)

	// Case 0: missing ids
	{
		req, err := http.NewRequest("DELETE", "/v1/streams", bytes.NewBufferString(`{}`))
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 1: bulk delete succeeds with no body
	{
		ids := []string{uuid.NewString(), uuid.NewString()}
		mockManager.On(
			"DeleteStreams", mock.Anything, mock.AnythingOfType("common.Caller"), ids,
		).Return(nil).Once()

		payload, err := json.Marshal(map[string]interface{}{"ids": ids})
		assert.Nil(err)
		req, err := http.NewRequest("DELETE", "/v1/streams", bytes.NewBuffer(payload))
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNoContent, respRecorder.Code)
		assert.Empty(respRecorder.Body.Bytes())
	}
}

func TestStreamAPISetActive(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)

	uut, err := api.NewStreamAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	// Liveness reports come from the media server, not API token holders
	router := mux.NewRouter()
	router.HandleFunc(
		"/v1/streams/{id}/setactive", uut.LoggingMiddleware(uut.SetActiveHandler()),
	)

	streamID := uuid.NewString()
	var request control.SetActiveRequest
	mockManager.On(
		"SetActive", mock.Anything, streamID, mock.AnythingOfType("control.SetActiveRequest"),
	).Run(func(args mock.Arguments) {
		request = args.Get(2).(control.SetActiveRequest)
	}).Return(nil).Once()

	payload := `{"active":true,"hostName":"mist-0.example.com","startedAt":1700000000000}`
	req, err := http.NewRequest(
		"PUT", "/v1/streams/"+streamID+"/setactive", bytes.NewBufferString(payload),
	)
	assert.Nil(err)
	respRecorder := httptest.NewRecorder()
	router.ServeHTTP(respRecorder, req)

	assert.Equal(http.StatusNoContent, respRecorder.Code)
	assert.True(request.Active)
	assert.Equal("mist-0.example.com", request.HostName)
}

func TestStreamAPITerminate(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewStreamAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("DELETE").Path("/v1/streams/{id}/terminate").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.TerminateHandler())),
	)

	// Case 0: local terminate outcome
	{
		streamID := uuid.NewString()
		mockManager.On(
			"Terminate", mock.Anything, mock.AnythingOfType("common.Caller"), streamID,
		).Return(control.TerminateResult{Result: true}, nil).Once()

		req, err := http.NewRequest("DELETE", "/v1/streams/"+streamID+"/terminate", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var result control.TerminateResult
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &result))
		assert.True(result.Result)
	}

	// Case 1: remote gateway response passes through verbatim
	{
		streamID := uuid.NewString()
		mockManager.On(
			"Terminate", mock.Anything, mock.AnythingOfType("common.Caller"), streamID,
		).Return(control.TerminateResult{Relayed: &control.RelayedResponse{
			StatusCode:  http.StatusBadGateway,
			ContentType: "text/plain",
			Body:        []byte("remote gateway unavailable"),
		}}, nil).Once()

		req, err := http.NewRequest("DELETE", "/v1/streams/"+streamID+"/terminate", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadGateway, respRecorder.Code)
		assert.Equal("text/plain", respRecorder.Header().Get("Content-Type"))
		assert.Equal("remote gateway unavailable", respRecorder.Body.String())
	}

	// Case 2: gone streams are reported as such
	{
		streamID := uuid.NewString()
		mockManager.On(
			"Terminate", mock.Anything, mock.AnythingOfType("common.Caller"), streamID,
		).Return(
			control.TerminateResult{}, control.NewAPIError(http.StatusGone, "stream is not active"),
		).Once()

		req, err := http.NewRequest("DELETE", "/v1/streams/"+streamID+"/terminate", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusGone, respRecorder.Code)
	}
}

func TestHookAPIEndpoints(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)

	uut, err := api.NewHookAPIHandler(mockManager, testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.HandleFunc("/hook", uut.LoggingMiddleware(uut.IngestHookHandler()))
	router.HandleFunc("/hook/detection", uut.LoggingMiddleware(uut.DetectionHookHandler()))

	// Case 0: admission granted
	{
		verdict := control.IngestHookResponse{ManifestID: uuid.NewString()}
		mockManager.On(
			"ResolveIngestHook", mock.Anything, mock.AnythingOfType("control.IngestHookRequest"),
		).Return(verdict, nil).Once()

		req, err := http.NewRequest(
			"POST", "/hook",
			bytes.NewBufferString(`{"url":"rtmp://ingest.example.com/live/abcd"}`),
		)
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var response control.IngestHookResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &response))
		assert.Equal(verdict.ManifestID, response.ManifestID)
	}

	// Case 1: admission denied
	{
		mockManager.On(
			"ResolveIngestHook", mock.Anything, mock.AnythingOfType("control.IngestHookRequest"),
		).Return(
			control.IngestHookResponse{},
			control.NewAPIError(http.StatusForbidden, "stream is suspended"),
		).Once()

		req, err := http.NewRequest(
			"POST", "/hook",
			bytes.NewBufferString(`{"url":"rtmp://ingest.example.com/live/abcd"}`),
		)
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusForbidden, respRecorder.Code)
	}

	// Case 2: detection report accepted
	{
		mockManager.On(
			"RecordDetection", mock.Anything, mock.AnythingOfType("control.DetectionReport"),
		).Return(nil).Once()

		payload := `{"manifestID":"abcd1234","seqNo":12,"sceneClassification":[{"name":"soccer","probability":0.8}]}`
		req, err := http.NewRequest("POST", "/hook/detection", bytes.NewBufferString(payload))
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNoContent, respRecorder.Code)
	}
}
