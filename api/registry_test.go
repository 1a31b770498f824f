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

func TestRegistryAPIWebhooks(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewRegistryManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewRegistryAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("POST").Path("/v1/webhooks").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.CreateWebhookHandler())),
	)

	// Case 0: no credentials
	{
		req, err := http.NewRequest("POST", "/v1/webhooks", bytes.NewBufferString(`{}`))
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
	}

	// Case 1: webhook registered
	{
		expected := common.Webhook{
			ID:       uuid.NewString(),
			UserID:   auth.userID,
			Name:     "notify",
			URL:      "https://hooks.example.com/notify",
			Event:    "stream.started",
			Blocking: true,
		}
		var request control.NewWebhookRequest
		mockManager.On(
			"CreateWebhook", mock.Anything, mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("control.NewWebhookRequest"),
		).Run(func(args mock.Arguments) {
			request = args.Get(2).(control.NewWebhookRequest)
		}).Return(expected, nil).Once()

		payload := `{"name":"notify","event":"stream.started","url":"https://hooks.example.com/notify"}`
		req, err := http.NewRequest("POST", "/v1/webhooks", bytes.NewBufferString(payload))
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusCreated, respRecorder.Code)
		assert.Equal("stream.started", request.Event)
		var created common.Webhook
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &created))
		assert.Equal(expected.ID, created.ID)
		assert.True(created.Blocking)
	}

	// Case 2: scheme rejection maps onto the error body
	{
		mockManager.On(
			"CreateWebhook", mock.Anything, mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("control.NewWebhookRequest"),
		).Return(
			common.Webhook{},
			control.NewAPIError(http.StatusNotAcceptable, "url provided should be http or https only"),
		).Once()

		payload := `{"name":"notify","event":"stream.started","url":"ftp://hooks.example.com"}`
		req, err := http.NewRequest("POST", "/v1/webhooks", bytes.NewBufferString(payload))
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNotAcceptable, respRecorder.Code)
	}
}

func TestRegistryAPIListPushTargets(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewRegistryManager(t)
	auth := newTestAuth(t, true)

	uut, err := api.NewRegistryAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("GET").Path("/v1/push-targets").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.ListPushTargetsHandler())),
	)

	// The owner query parameter and cursor pagination pass through
	otherUser := uuid.NewString()
	targets := []common.PushTarget{{
		ID: uuid.NewString(), UserID: otherUser, URL: "rtmp://restream.example.com/live",
	}}
	mockManager.On(
		"ListPushTargets", mock.Anything, mock.AnythingOfType("common.Caller"),
		otherUser, mock.AnythingOfType("db.PageRequest"),
	).Return(targets, "more", nil).Once()

	req, err := http.NewRequest("GET", "/v1/push-targets?userId="+otherUser, nil)
	assert.Nil(err)
	req.Header.Set("Authorization", auth.header)
	respRecorder := httptest.NewRecorder()
	router.ServeHTTP(respRecorder, req)

	assert.Equal(http.StatusOK, respRecorder.Code)
	var listed []common.PushTarget
	assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &listed))
	assert.Len(listed, 1)
	assert.Contains(respRecorder.Header().Get("Link"), "cursor=more")
}
