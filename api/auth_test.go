package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alwitt/livegate/api"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestAPITokenAuthenticatorMiddleware(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockDB := mocks.NewPersistenceManager(t)
	uut, err := api.NewAPITokenAuthenticator(mockDB)
	assert.Nil(err)

	nextCalled := false
	handler := uut.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	readErrors := func(recorder *httptest.ResponseRecorder) []string {
		var body api.ErrorResponse
		assert.Nil(json.Unmarshal(recorder.Body.Bytes(), &body))
		return body.Errors
	}

	// Case 0: no authorization header
	{
		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		handler.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
		assert.Equal([]string{"no authorization header"}, readErrors(respRecorder))
		assert.False(nextCalled)
	}

	// Case 1: non-bearer authorization header
	{
		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		respRecorder := httptest.NewRecorder()
		handler.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
		assert.False(nextCalled)
	}

	// Case 2: unknown token
	{
		token := uuid.NewString()
		mockDB.On("GetAPIToken", mock.Anything, token).Return(
			common.APIToken{}, gorm.ErrRecordNotFound,
		).Once()

		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		respRecorder := httptest.NewRecorder()
		handler.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
		assert.Equal([]string{"no token object found"}, readErrors(respRecorder))
		assert.False(nextCalled)
	}

	// Case 3: deleted token
	{
		token := uuid.NewString()
		mockDB.On("GetAPIToken", mock.Anything, token).Return(
			common.APIToken{ID: token, UserID: uuid.NewString(), Deleted: true}, nil,
		).Once()

		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		respRecorder := httptest.NewRecorder()
		handler.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
		assert.False(nextCalled)
	}

	// Case 4: token points at a missing user
	{
		token := uuid.NewString()
		userID := uuid.NewString()
		mockDB.On("GetAPIToken", mock.Anything, token).Return(
			common.APIToken{ID: token, UserID: userID}, nil,
		).Once()
		mockDB.On("GetUser", mock.Anything, userID).Return(
			common.User{}, gorm.ErrRecordNotFound,
		).Once()

		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		respRecorder := httptest.NewRecorder()
		handler.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusUnauthorized, respRecorder.Code)
		assert.Equal([]string{"no user found for token"}, readErrors(respRecorder))
		assert.False(nextCalled)
	}

	// Case 5: valid token passes the request on
	{
		token := uuid.NewString()
		userID := uuid.NewString()
		mockDB.On("GetAPIToken", mock.Anything, token).Return(
			common.APIToken{ID: token, UserID: userID}, nil,
		).Once()
		mockDB.On("GetUser", mock.Anything, userID).Return(
			common.User{ID: userID, Email: "ut@example.com"}, nil,
		).Once()

		req, err := http.NewRequest("GET", "/v1/streams", nil)
		assert.Nil(err)
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		respRecorder := httptest.NewRecorder()
		handler.ServeHTTP(respRecorder, req)
		assert.Equal(http.StatusOK, respRecorder.Code)
		assert.True(nextCalled)
	}
}
