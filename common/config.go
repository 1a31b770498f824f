package common

import (
	"time"

	"github.com/alwitt/goutils"
	"github.com/spf13/viper"
)

// ===============================================================================
// Common Submodule Config

// HTTPServerTimeoutConfig defines the timeout settings for HTTP server
type HTTPServerTimeoutConfig struct {
	// ReadTimeout is the maximum duration for reading the entire
	// request, including the body in seconds. A zero or negative
	// value means there will be no timeout.
	ReadTimeout int `mapstructure:"read" json:"read" validate:"gte=0"`
	// WriteTimeout is the maximum duration before timing out
	// writes of the response in seconds. A zero or negative value
	// means there will be no timeout.
	WriteTimeout int `mapstructure:"write" json:"write" validate:"gte=0"`
	// IdleTimeout is the maximum amount of time to wait for the
	// next request when keep-alives are enabled in seconds. If
	// IdleTimeout is zero, the value of ReadTimeout is used. If
	// both are zero, there is no timeout.
	IdleTimeout int `mapstructure:"idle" json:"idle" validate:"gte=0"`
}

// HTTPServerConfig defines the HTTP server parameters
type HTTPServerConfig struct {
	// ListenOn is the interface the HTTP server will listen on
	ListenOn string `mapstructure:"listenOn" json:"listenOn" validate:"required,ip"`
	// Port is the port the HTTP server will listen on
	Port uint16 `mapstructure:"appPort" json:"appPort" validate:"required,gt=0,lt=65536"`
	// Timeouts sets the HTTP timeout settings
	Timeouts HTTPServerTimeoutConfig `mapstructure:"timeoutSecs" json:"timeoutSecs" validate:"required,dive"`
}

// HTTPRequestLogging defines HTTP request logging parameters
type HTTPRequestLogging struct {
	// LogLevel output request logs at this level
	LogLevel goutils.HTTPRequestLogLevel `mapstructure:"logLevel" json:"logLevel" validate:"oneof=warn info debug"`
	// HealthLogLevel output health check logs at this level
	HealthLogLevel goutils.HTTPRequestLogLevel `mapstructure:"healthLogLevel" json:"healthLogLevel" validate:"oneof=warn info debug"`
	// RequestIDHeader is the HTTP header containing the API request ID
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader"`
	// DoNotLogHeaders is the list of headers to not include in logging metadata
	DoNotLogHeaders []string `mapstructure:"skipHeaders" json:"skipHeaders"`
}

// EndpointConfig defines API endpoint config
type EndpointConfig struct {
	// PathPrefix is the end-point path prefix for the APIs
	PathPrefix string `mapstructure:"pathPrefix" json:"pathPrefix" validate:"required"`
}

// APIConfig defines API settings for a submodule
type APIConfig struct {
	// Endpoint sets API endpoint related parameters
	Endpoint EndpointConfig `mapstructure:"endPoint" json:"endPoint" validate:"required,dive"`
	// RequestLogging sets API request logging parameters
	RequestLogging HTTPRequestLogging `mapstructure:"requestLogging" json:"requestLogging" validate:"required,dive"`
}

// APIServerConfig defines HTTP API / server parameters
type APIServerConfig struct {
	// Enabled whether this API is enabled
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required_with=Enabled,dive"`
	// APIs defines API settings for a submodule
	APIs APIConfig `mapstructure:"apis" json:"apis" validate:"required_with=Enabled,dive"`
}

// MetricsFeatureConfig metrics framework features to enable
type MetricsFeatureConfig struct {
	// EnableAppMetrics whether to enable application metrics
	EnableAppMetrics bool `mapstructure:"enableAppMetrics" json:"enableAppMetrics"`
	// EnableHTTPMetrics whether to enable HTTP request tracking metrics
	EnableHTTPMetrics bool `mapstructure:"enableHTTPMetrics" json:"enableHTTPMetrics"`
}

// MetricsConfig application metrics config
type MetricsConfig struct {
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required,dive"`
	// MetricsEndpoint path to host the Prometheus metrics endpoint
	MetricsEndpoint string `mapstructure:"metricsEndpoint" json:"metricsEndpoint" validate:"required"`
	// MaxRequests max number of metrics requests in parallel to support
	MaxRequests int `mapstructure:"maxRequests" json:"maxRequests" validate:"gte=1"`
	// Features metrics framework features to enable
	Features MetricsFeatureConfig `mapstructure:"features" json:"features"`
}

// HTTPClientRetryConfig HTTP client retry configuration
type HTTPClientRetryConfig struct {
	// MaxAttempts max number of retry attempts
	MaxAttempts int `mapstructure:"maxAttempts" json:"maxAttempts" validate:"gte=0"`
	// InitWaitTimeInSec wait time before the first wait retry
	InitWaitTimeInSec uint32 `mapstructure:"initialWaitTimeInSec" json:"initialWaitTimeInSec" validate:"gte=1"`
	// MaxWaitTimeInSec max wait time
	MaxWaitTimeInSec uint32 `mapstructure:"maxWaitTimeInSec" json:"maxWaitTimeInSec" validate:"gte=1"`
}

// InitWaitTime convert InitWaitTimeInSec to time.Duration
func (c HTTPClientRetryConfig) InitWaitTime() time.Duration {
	return time.Second * time.Duration(c.InitWaitTimeInSec)
}

// MaxWaitTime convert MaxWaitTimeInSec to time.Duration
func (c HTTPClientRetryConfig) MaxWaitTime() time.Duration {
	return time.Second * time.Duration(c.MaxWaitTimeInSec)
}

// HTTPClientConfig HTTP client configuration
type HTTPClientConfig struct {
	// Retry client retry configuration
	Retry HTTPClientRetryConfig `mapstructure:"retry" json:"retry" validate:"required,dive"`
}

// ===============================================================================
// Persistence Configuration Structures

// PostgresSSLConfig Postgres connection SSL config
type PostgresSSLConfig struct {
	// Enabled whether to enable SSL when connecting to Postgres
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// CAFile the CA cert file to challenge remote with
	CAFile *string `mapstructure:"caFile" json:"caFile,omitempty" validate:"omitempty,file"`
}

// PostgresConfig Postgres connection config
type PostgresConfig struct {
	// Host Postgres server host
	Host string `mapstructure:"host" json:"host" validate:"required"`
	// Port Postgres server port
	Port uint16 `mapstructure:"port" json:"port" validate:"lte=65535,gte=0"`
	// Database the specific database to use
	Database string `mapstructure:"db" json:"db" validate:"required"`
	// User the user to connect with
	User string `mapstructure:"user" json:"user" validate:"required"`
	// SSL the connection SSL settings
	SSL PostgresSSLConfig `mapstructure:"ssl" json:"ssl" validate:"required,dive"`
}

// ===============================================================================
// Stream Management Configuration Structures

// StreamManagementConfig stream and session lifecycle settings
type StreamManagementConfig struct {
	// UserSessionTimeoutInSec window in secs after a session's last report during
	// which a new ingest of the same parent continues that session's chain. Also
	// the settling delay before a recording is considered ready.
	UserSessionTimeoutInSec uint32 `mapstructure:"userSessionTimeoutInSec" json:"userSessionTimeoutInSec" validate:"gte=1"`
	// ActiveTimeoutInSec silence in secs after which an active stream is treated as idle
	ActiveTimeoutInSec uint32 `mapstructure:"activeTimeoutInSec" json:"activeTimeoutInSec" validate:"gte=1"`
	// RecordObjectStoreID object store new recorded sessions are pinned to
	RecordObjectStoreID string `mapstructure:"recordObjectStoreId" json:"recordObjectStoreId"`
	// MaxPageSize hard cap on list endpoint page sizes
	MaxPageSize int `mapstructure:"maxPageSize" json:"maxPageSize" validate:"gte=1"`
	// DefaultPageSize page size used when a list request names none
	DefaultPageSize int `mapstructure:"defaultPageSize" json:"defaultPageSize" validate:"gte=1"`
}

// UserSessionTimeout convert UserSessionTimeoutInSec to time.Duration
func (c StreamManagementConfig) UserSessionTimeout() time.Duration {
	return time.Second * time.Duration(c.UserSessionTimeoutInSec)
}

// ActiveTimeout convert ActiveTimeoutInSec to time.Duration
func (c StreamManagementConfig) ActiveTimeout() time.Duration {
	return time.Second * time.Duration(c.ActiveTimeoutInSec)
}

// IngestEndpointConfig ingest endpoint catalog settings
type IngestEndpointConfig struct {
	// CatalogFile path of the JSON file listing the ingest endpoints. The file is
	// watched and reloaded on change.
	CatalogFile string `mapstructure:"catalogFile" json:"catalogFile" validate:"required,file"`
}

// MistConfig media server API client settings
type MistConfig struct {
	// APIPort media server API port on each node
	APIPort uint16 `mapstructure:"apiPort" json:"apiPort" validate:"required,gt=0,lt=65536"`
	// Username media server API user
	Username string `mapstructure:"username" json:"username" validate:"required"`
	// RequestTimeoutInSec media server API request timeout in secs
	RequestTimeoutInSec uint32 `mapstructure:"requestTimeoutInSec" json:"requestTimeoutInSec" validate:"gte=1"`
}

// RequestTimeout convert RequestTimeoutInSec to time.Duration
func (c MistConfig) RequestTimeout() time.Duration {
	return time.Second * time.Duration(c.RequestTimeoutInSec)
}

// RegionConfig multi region deployment settings
type RegionConfig struct {
	// OwnRegion region this node runs in
	OwnRegion string `mapstructure:"ownRegion" json:"ownRegion"`
	// FrontendDomain domain cross region API relays are addressed under
	FrontendDomain string `mapstructure:"frontendDomain" json:"frontendDomain"`
	// Protocol scheme used for cross region API relays
	Protocol string `mapstructure:"protocol" json:"protocol" validate:"oneof=http https"`
}

// ===============================================================================
// Event Queue Configuration Structures

// PubSubTopicConfig PubSub topic config
type PubSubTopicConfig struct {
	// Topic the pubsub topic to publish on
	Topic string `mapstructure:"topic" json:"topic" validate:"required"`
	// MsgTTLInSec message retention within the attached subscription in secs
	MsgTTLInSec uint32 `mapstructure:"msgTTL" json:"msgTTL" validate:"gte=600,lte=604800"`
}

// MsgTTL convert MsgTTLInSec to time.Duration
func (c PubSubTopicConfig) MsgTTL() time.Duration {
	return time.Second * time.Duration(c.MsgTTLInSec)
}

// EventQueueConfig stream lifecycle event queue config
type EventQueueConfig struct {
	// GCPProject the GCP project to operate in
	GCPProject string `mapstructure:"gcpProject" json:"gcpProject" validate:"required"`
	// PubSub event PubSub topic settings
	PubSub PubSubTopicConfig `mapstructure:"pubsub" json:"pubsub" validate:"required,dive"`
}

// ===============================================================================
// Lookup Cache Configuration Structures

// LookupCacheConfig memcached playback ID lookup cache config
type LookupCacheConfig struct {
	// Enabled whether the lookup cache is used on the ingest hook path
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Servers list of memcached servers to establish connection with
	Servers []string `mapstructure:"servers" json:"servers" validate:"required_with=Enabled"`
	// TTLInSec cache entry lifetime in secs
	TTLInSec uint32 `mapstructure:"ttlInSec" json:"ttlInSec" validate:"gte=1"`
}

// TTL convert TTLInSec to time.Duration
func (c LookupCacheConfig) TTL() time.Duration {
	return time.Second * time.Duration(c.TTLInSec)
}

// ===============================================================================
// Gateway Node Configuration Structures

// GatewayConfig define stream gateway node settings and behavior
type GatewayConfig struct {
	// Metrics metrics framework configuration
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" validate:"required,dive"`
	// Postgres postgres DB configuration
	Postgres PostgresConfig `mapstructure:"postgres" json:"postgres" validate:"required,dive"`
	// API REST API server config
	API APIServerConfig `mapstructure:"api" json:"api" validate:"required,dive"`
	// Streams stream and session lifecycle settings
	Streams StreamManagementConfig `mapstructure:"streams" json:"streams" validate:"required,dive"`
	// Ingest ingest endpoint catalog settings
	Ingest IngestEndpointConfig `mapstructure:"ingest" json:"ingest" validate:"required,dive"`
	// Mist media server API client settings
	Mist MistConfig `mapstructure:"mist" json:"mist" validate:"required,dive"`
	// Region multi region deployment settings
	Region RegionConfig `mapstructure:"region" json:"region" validate:"required,dive"`
	// EventQueue stream lifecycle event queue config
	EventQueue EventQueueConfig `mapstructure:"events" json:"events" validate:"required,dive"`
	// LookupCache memcached playback ID lookup cache config
	LookupCache LookupCacheConfig `mapstructure:"lookupCache" json:"lookupCache" validate:"omitempty,dive"`
	// HTTPClient outbound HTTP client config shared by the media server client and
	// cross region relays
	HTTPClient HTTPClientConfig `mapstructure:"httpClient" json:"httpClient" validate:"required,dive"`
}

// ===============================================================================
// Default Configuration Setter

// InstallDefaultGatewayConfigValues installs default config parameters in viper for
// gateway node
func InstallDefaultGatewayConfigValues() {
	// Default metrics config
	viper.SetDefault("metrics.metricsEndpoint", "/metrics")
	viper.SetDefault("metrics.maxRequests", 4)
	// Default metrics features config
	viper.SetDefault("metrics.features.enableAppMetrics", true)
	viper.SetDefault("metrics.features.enableHTTPMetrics", true)
	// Default metrics HTTP server config
	viper.SetDefault("metrics.service.listenOn", "0.0.0.0")
	viper.SetDefault("metrics.service.appPort", 3001)
	viper.SetDefault("metrics.service.timeoutSecs.read", 60)
	viper.SetDefault("metrics.service.timeoutSecs.write", 60)
	viper.SetDefault("metrics.service.timeoutSecs.idle", 60)

	// Default Postgres config
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.ssl.enabled", false)

	// Default REST API server config
	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.service.listenOn", "0.0.0.0")
	viper.SetDefault("api.service.appPort", 8080)
	viper.SetDefault("api.service.timeoutSecs.read", 60)
	viper.SetDefault("api.service.timeoutSecs.write", 60)
	viper.SetDefault("api.service.timeoutSecs.idle", 60)
	viper.SetDefault("api.apis.endPoint.pathPrefix", "/")
	viper.SetDefault("api.apis.requestLogging.logLevel", "warn")
	viper.SetDefault("api.apis.requestLogging.healthLogLevel", "debug")
	viper.SetDefault("api.apis.requestLogging.requestIDHeader", "X-Request-ID")
	viper.SetDefault("api.apis.requestLogging.skipHeaders", []string{
		"WWW-Authenticate", "Authorization", "Proxy-Authenticate", "Proxy-Authorization",
	})

	// Default stream management config
	viper.SetDefault("streams.userSessionTimeoutInSec", 300)
	viper.SetDefault("streams.activeTimeoutInSec", 90)
	viper.SetDefault("streams.maxPageSize", 1000)
	viper.SetDefault("streams.defaultPageSize", 100)

	// Default media server client config
	viper.SetDefault("mist.apiPort", 4242)
	viper.SetDefault("mist.requestTimeoutInSec", 15)

	// Default region config
	viper.SetDefault("region.protocol", "https")

	// Default event queue config
	viper.SetDefault("events.pubsub.topic", "stream-events")
	viper.SetDefault("events.pubsub.msgTTL", 600)

	// Default lookup cache config
	viper.SetDefault("lookupCache.enabled", false)
	viper.SetDefault("lookupCache.ttlInSec", 120)

	// Default outbound HTTP client config
	viper.SetDefault("httpClient.retry.maxAttempts", 3)
	viper.SetDefault("httpClient.retry.initialWaitTimeInSec", 1)
	viper.SetDefault("httpClient.retry.maxWaitTimeInSec", 30)
}
