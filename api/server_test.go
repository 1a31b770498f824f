package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alwitt/livegate/api"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func testAPIServerConfig() common.APIServerConfig {
	return common.APIServerConfig{
		Enabled: true,
		Server: common.HTTPServerConfig{
			ListenOn: "127.0.0.1",
			Port:     8080,
			Timeouts: common.HTTPServerTimeoutConfig{
				ReadTimeout: 60, WriteTimeout: 60, IdleTimeout: 60,
			},
		},
		APIs: common.APIConfig{
			Endpoint:       common.EndpointConfig{PathPrefix: "/"},
			RequestLogging: testLogCfg(),
		},
	}
}

func TestGatewayAPIServerRoutes(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockStreams := mocks.NewStreamManager(t)
	mockRegistry := mocks.NewRegistryManager(t)
	mockDB := mocks.NewPersistenceManager(t)

	srv, err := api.BuildGatewayAPIServer(
		testAPIServerConfig(), testStreamsCfg(), mockStreams, mockRegistry, mockDB,
	)
	assert.Nil(err)

	probeRoute := func(method, path string) int {
		req, err := http.NewRequest(method, path, nil)
		assert.Nil(err)
		respRecorder := httptest.NewRecorder()
		srv.Handler.ServeHTTP(respRecorder, req)
		return respRecorder.Code
	}

	// Case 0: health check routes answer without credentials
	assert.Equal(http.StatusOK, probeRoute("GET", "/v1/alive"))

	// Case 1: token gated collection routes reject missing credentials instead of 404
	for _, route := range []struct {
		method string
		path   string
	}{
		{"GET", "/v1/streams"},
		{"GET", "/v1/sessions"},
		{"GET", "/v1/webhooks"},
		{"POST", "/v1/webhooks"},
		{"GET", "/v1/push-targets"},
		{"POST", "/v1/push-targets"},
		{"GET", "/v1/object-stores"},
		{"POST", "/v1/object-stores"},
	} {
		assert.Equalf(
			http.StatusUnauthorized, probeRoute(route.method, route.path),
			"%s %s", route.method, route.path,
		)
	}

	// Case 2: unknown paths are not registered
	assert.Equal(http.StatusNotFound, probeRoute("GET", "/v1/no-such-resource"))
}
