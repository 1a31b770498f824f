package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alwitt/livegate/api"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSessionAPIGetSession(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewSessionAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("GET").Path("/v1/sessions/{id}").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.GetSessionHandler())),
	)

	// Case 0: the forceUrl query parameter passes through
	{
		sessionID := uuid.NewString()
		mockManager.On(
			"GetUserSession", mock.Anything, mock.AnythingOfType("common.Caller"), sessionID, true,
		).Return(common.UserSession{ID: sessionID, UserID: auth.userID}, nil).Once()

		req, err := http.NewRequest("GET", "/v1/sessions/"+sessionID+"?forceUrl=true", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusOK, respRecorder.Code)
	}

	// Case 1: unknown sessions are reported as such
	{
		sessionID := uuid.NewString()
		mockManager.On(
			"GetUserSession", mock.Anything, mock.AnythingOfType("common.Caller"), sessionID, false,
		).Return(
			common.UserSession{}, control.NewAPIError(http.StatusNotFound, "session not found"),
		).Once()

		req, err := http.NewRequest("GET", "/v1/sessions/"+sessionID, nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusNotFound, respRecorder.Code)
	}
}

func TestSessionAPIListSessions(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)
	auth := newTestAuth(t, false)

	uut, err := api.NewSessionAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	router := mux.NewRouter()
	router.Methods("GET").Path("/v1/sessions").Handler(
		auth.authenticator.Middleware(uut.LoggingMiddleware(uut.ListSessionsHandler())),
	)

	// Case 0: filters pass through and the next page link is advertised
	{
		parentID := uuid.NewString()
		var seenFilter db.UserSessionFilter
		var seenPage db.PageRequest
		mockManager.On(
			"ListUserSessions",
			mock.Anything,
			mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("db.UserSessionFilter"),
			mock.AnythingOfType("db.PageRequest"),
			false,
		).Run(func(args mock.Arguments) {
			seenFilter = args.Get(2).(db.UserSessionFilter)
			seenPage = args.Get(3).(db.PageRequest)
		}).Return(
			[]common.UserSession{{ID: uuid.NewString(), UserID: auth.userID}}, "next-page", nil,
		).Once()

		req, err := http.NewRequest(
			"GET", "/v1/sessions?parentId="+parentID+"&record=true&limit=5", nil,
		)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		assert.Equal(parentID, seenFilter.ParentID)
		assert.NotNil(seenFilter.Record)
		assert.True(*seenFilter.Record)
		assert.Equal(5, seenPage.Limit)
		var sessions []common.UserSession
		assert.Nil(json.NewDecoder(respRecorder.Body).Decode(&sessions))
		assert.Len(sessions, 1)
		linkHeader := respRecorder.Header().Get("Link")
		assert.Contains(linkHeader, "cursor=next-page")
		assert.Contains(linkHeader, `rel="next"`)
	}

	// Case 1: empty cursor means no next page link
	{
		mockManager.On(
			"ListUserSessions",
			mock.Anything,
			mock.AnythingOfType("common.Caller"),
			mock.AnythingOfType("db.UserSessionFilter"),
			mock.AnythingOfType("db.PageRequest"),
			false,
		).Return([]common.UserSession{}, "", nil).Once()

		req, err := http.NewRequest("GET", "/v1/sessions", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		assert.Empty(respRecorder.Header().Get("Link"))
	}
}

func TestSessionAPIBackfill(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewStreamManager(t)

	uut, err := api.NewSessionAPIHandler(mockManager, testStreamsCfg(), testLogCfg())
	assert.Nil(err)

	buildRouter := func(auth testAuth) *mux.Router {
		router := mux.NewRouter()
		router.Methods("GET").Path("/v1/sessions/migrate").Handler(
			auth.authenticator.Middleware(
				uut.LoggingMiddleware(uut.BackfillUserSessionsHandler()),
			),
		)
		return router
	}

	// Case 0: non-admin callers are rejected
	{
		auth := newTestAuth(t, false)
		req, err := http.NewRequest("GET", "/v1/sessions/migrate", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		buildRouter(auth).ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusForbidden, respRecorder.Code)
	}

	// Case 1: admin run streams progress as plain text
	{
		auth := newTestAuth(t, true)
		mockManager.On(
			"BackfillUserSessions", mock.Anything, mock.AnythingOfType("func(string)"),
		).Run(func(args mock.Arguments) {
			progress := args.Get(1).(func(string))
			progress(".")
			progress("\n")
			progress("processed 3 sessions\n")
		}).Return(3, nil).Once()

		req, err := http.NewRequest("GET", "/v1/sessions/migrate", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", auth.header)
		respRecorder := httptest.NewRecorder()
		buildRouter(auth).ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		assert.Contains(respRecorder.Header().Get("Content-Type"), "text/plain")
		assert.Contains(respRecorder.Body.String(), "processed 3 sessions")
	}
}
