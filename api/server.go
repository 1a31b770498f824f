package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ====================================================================================
// Gateway API Server

/*
BuildGatewayAPIServer create the stream gateway API server

Media server hook endpoints sit outside the API token middleware. Everything else
requires a bearer token.

	@param httpCfg common.APIServerConfig - HTTP server configuration
	@param streamsCfg common.StreamManagementConfig - stream management settings
	@param streams control.StreamManager - stream lifecycle manager
	@param registry control.RegistryManager - resource registry manager
	@param dbClient db.PersistenceManager - persistence manager
	@returns HTTP server instance
*/
func BuildGatewayAPIServer(
	httpCfg common.APIServerConfig,
	streamsCfg common.StreamManagementConfig,
	streams control.StreamManager,
	registry control.RegistryManager,
	dbClient db.PersistenceManager,
) (*http.Server, error) {
	streamHandler, err := NewStreamAPIHandler(streams, streamsCfg, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}
	sessionHandler, err := NewSessionAPIHandler(streams, streamsCfg, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}
	registryHandler, err := NewRegistryAPIHandler(
		registry, streamsCfg, httpCfg.APIs.RequestLogging,
	)
	if err != nil {
		return nil, err
	}
	hookHandler, err := NewHookAPIHandler(streams, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}
	authenticator, err := NewAPITokenAuthenticator(dbClient)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	mainRouter := registerPathPrefix(router, httpCfg.APIs.Endpoint.PathPrefix, nil)
	v1Router := registerPathPrefix(mainRouter, "/v1", nil)

	// --------------------------------------------------------------------------------
	// Health check
	_ = registerPathPrefix(v1Router, "/alive", map[string]http.HandlerFunc{
		"get": streamHandler.AliveHandler(),
	})
	_ = registerPathPrefix(v1Router, "/ready", map[string]http.HandlerFunc{
		"get": streamHandler.ReadyHandler(),
	})

	// --------------------------------------------------------------------------------
	// Media server hooks. The media server authenticates at the network layer.
	hookRouter := registerPathPrefix(v1Router, "/hook", map[string]http.HandlerFunc{
		"post": hookHandler.IngestHookHandler(),
	})
	_ = registerPathPrefix(hookRouter, "/detection", map[string]http.HandlerFunc{
		"post": hookHandler.DetectionHookHandler(),
	})

	// --------------------------------------------------------------------------------
	// Streams
	streamsRouter := registerPathPrefix(v1Router, "/streams", map[string]http.HandlerFunc{
		"post":   streamHandler.CreateStreamHandler(),
		"get":    streamHandler.ListStreamsHandler(),
		"delete": streamHandler.DeleteStreamsHandler(),
	})
	streamsRouter.Use(authenticator.Middleware)

	_ = registerPathPrefix(streamsRouter, "/playback/{playbackId}", map[string]http.HandlerFunc{
		"get": streamHandler.GetStreamByPlaybackIDHandler(),
	})
	_ = registerPathPrefix(streamsRouter, "/key/{streamKey}", map[string]http.HandlerFunc{
		"get": streamHandler.GetStreamByKeyHandler(),
	})

	perStreamRouter := registerPathPrefix(streamsRouter, "/{id}", map[string]http.HandlerFunc{
		"get":    streamHandler.GetStreamHandler(),
		"patch":  streamHandler.PatchStreamHandler(),
		"delete": streamHandler.DeleteStreamHandler(),
	})

	_ = registerPathPrefix(perStreamRouter, "/stream", map[string]http.HandlerFunc{
		"post": streamHandler.CreateSessionHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/setactive", map[string]http.HandlerFunc{
		"put": streamHandler.SetActiveHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/record", map[string]http.HandlerFunc{
		"patch": streamHandler.SetRecordHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/suspended", map[string]http.HandlerFunc{
		"patch": streamHandler.SetSuspendedHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/terminate", map[string]http.HandlerFunc{
		"delete": streamHandler.TerminateHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/info", map[string]http.HandlerFunc{
		"get": streamHandler.GetStreamInfoHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/sessions", map[string]http.HandlerFunc{
		"get": streamHandler.ListStreamUserSessionsHandler(),
	})
	_ = registerPathPrefix(perStreamRouter, "/all-sessions", map[string]http.HandlerFunc{
		"get": streamHandler.ListChildSessionsHandler(),
	})

	// --------------------------------------------------------------------------------
	// User sessions
	sessionsRouter := registerPathPrefix(v1Router, "/sessions", map[string]http.HandlerFunc{
		"get": sessionHandler.ListSessionsHandler(),
	})
	sessionsRouter.Use(authenticator.Middleware)

	_ = registerPathPrefix(sessionsRouter, "/migrate", map[string]http.HandlerFunc{
		"get": sessionHandler.BackfillUserSessionsHandler(),
	})
	_ = registerPathPrefix(sessionsRouter, "/migrate2", map[string]http.HandlerFunc{
		"get": sessionHandler.BackfillSessionLinksHandler(),
	})
	_ = registerPathPrefix(sessionsRouter, "/{id}", map[string]http.HandlerFunc{
		"get": sessionHandler.GetSessionHandler(),
	})

	// --------------------------------------------------------------------------------
	// Resource registry
	webhookRouter := registerPathPrefix(v1Router, "/webhooks", map[string]http.HandlerFunc{
		"post": registryHandler.CreateWebhookHandler(),
		"get":  registryHandler.ListWebhooksHandler(),
	})
	webhookRouter.Use(authenticator.Middleware)

	_ = registerPathPrefix(webhookRouter, "/{id}", map[string]http.HandlerFunc{
		"get":    registryHandler.GetWebhookHandler(),
		"put":    registryHandler.ReplaceWebhookHandler(),
		"delete": registryHandler.DeleteWebhookHandler(),
	})

	pushTargetRouter := registerPathPrefix(v1Router, "/push-targets", map[string]http.HandlerFunc{
		"post": registryHandler.CreatePushTargetHandler(),
		"get":  registryHandler.ListPushTargetsHandler(),
	})
	pushTargetRouter.Use(authenticator.Middleware)

	_ = registerPathPrefix(pushTargetRouter, "/{id}", map[string]http.HandlerFunc{
		"get":    registryHandler.GetPushTargetHandler(),
		"delete": registryHandler.DeletePushTargetHandler(),
	})

	objectStoreRouter := registerPathPrefix(v1Router, "/object-stores", map[string]http.HandlerFunc{
		"post": registryHandler.CreateObjectStoreHandler(),
		"get":  registryHandler.ListObjectStoresHandler(),
	})
	objectStoreRouter.Use(authenticator.Middleware)

	// --------------------------------------------------------------------------------
	// Middleware

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Link"},
	})
	router.Use(corsMiddleware.Handler)

	router.Use(func(next http.Handler) http.Handler {
		return streamHandler.LoggingMiddleware(next.ServeHTTP)
	})

	// --------------------------------------------------------------------------------
	// HTTP Server

	serverListen := fmt.Sprintf(
		"%s:%d", httpCfg.Server.ListenOn, httpCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.IdleTimeout),
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}

	return httpSrv, nil
}

// ====================================================================================
// Metrics Server

/*
BuildMetricsServer create the Prometheus metrics server

	@param metricsCfg common.MetricsConfig - metrics framework configuration
	@param registry *prometheus.Registry - application metrics registry
	@returns HTTP server instance
*/
func BuildMetricsServer(
	metricsCfg common.MetricsConfig, registry *prometheus.Registry,
) (*http.Server, error) {
	if metricsCfg.Features.EnableAppMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	router := mux.NewRouter()
	router.Path(metricsCfg.MetricsEndpoint).Handler(promhttp.HandlerFor(
		registry, promhttp.HandlerOpts{
			MaxRequestsInFlight: metricsCfg.MaxRequests,
			EnableOpenMetrics:   true,
		},
	))

	serverListen := fmt.Sprintf(
		"%s:%d", metricsCfg.Server.ListenOn, metricsCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(metricsCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(metricsCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(metricsCfg.Server.Timeouts.IdleTimeout),
		Handler:      router,
	}

	return httpSrv, nil
}
