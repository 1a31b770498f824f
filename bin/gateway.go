package bin

import (
	"context"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/api"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/alwitt/livegate/event"
	"github.com/alwitt/livegate/mist"
	"github.com/alwitt/livegate/utils"
	"github.com/apex/log"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm/logger"
)

// GatewayNode stream gateway node
type GatewayNode struct {
	psClient      goutils.PubSubClient
	catalog       utils.IngestCatalog
	streams       control.StreamManager
	APIServer     *http.Server
	MetricsServer *http.Server
}

/*
Cleanup stop and clean up the stream gateway node

	@param ctxt context.Context - execution context
*/
func (n GatewayNode) Cleanup(ctxt context.Context) error {
	if err := n.streams.Stop(ctxt); err != nil {
		return err
	}
	if err := n.catalog.Stop(ctxt); err != nil {
		return err
	}
	return n.psClient.Close(ctxt)
}

/*
DefineGatewayNode setup new stream gateway node

	@param parentCtxt context.Context - parent execution context
	@param config common.GatewayConfig - stream gateway node configuration
	@param psqlPassword string - Postgres SQL user password
	@param mistPassword string - media server API password
	@returns new stream gateway node
*/
func DefineGatewayNode(
	parentCtxt context.Context,
	config common.GatewayConfig,
	psqlPassword string,
	mistPassword string,
) (GatewayNode, error) {
	/*
		Steps for preparing the gateway are

		* Prepare database
		* Prepare event queue
		* Prepare media server client, cross region relay, and support components
		* Prepare stream and registry managers
		* Prepare HTTP servers
	*/

	theNode := GatewayNode{}

	sqlDSN := db.GetPostgresDialector(config.Postgres, psqlPassword)

	// Define the persistence manager
	dbManager, err := db.NewManager(sqlDSN, logger.Error)
	if err != nil {
		log.WithError(err).Error("Failed to define persistence manager")
		return theNode, err
	}

	// Define the session chain resolver
	chainer, err := control.NewSessionChainer(dbManager, config.Streams)
	if err != nil {
		log.WithError(err).Error("Failed to define session chain resolver")
		return theNode, err
	}

	// Prepare the event queue PubSub client
	theNode.psClient, err = buildPubSubClient(parentCtxt, config.EventQueue.GCPProject)
	if err != nil {
		log.WithError(err).Error("PubSub client initialization failed")
		return theNode, err
	}
	events, err := event.NewPubSubQueue(theNode.psClient, config.EventQueue.PubSub.Topic)
	if err != nil {
		log.WithError(err).Error("Failed to define stream event queue")
		return theNode, err
	}

	// Define media server API client
	mistHTTPClient, err := utils.DefineHTTPClient(config.HTTPClient)
	if err != nil {
		log.WithError(err).Error("Failed to define media server HTTP client")
		return theNode, err
	}
	mistClient, err := mist.NewClient(
		config.Mist, mistPassword, mistHTTPClient.SetTimeout(config.Mist.RequestTimeout()),
	)
	if err != nil {
		log.WithError(err).Error("Failed to define media server API client")
		return theNode, err
	}

	// Define cross region request relay
	relayHTTPClient, err := utils.DefineHTTPClient(config.HTTPClient)
	if err != nil {
		log.WithError(err).Error("Failed to define cross region HTTP client")
		return theNode, err
	}
	relay, err := control.NewRegionRelay(
		config.Region, config.API.APIs.RequestLogging.RequestIDHeader, relayHTTPClient,
	)
	if err != nil {
		log.WithError(err).Error("Failed to define cross region relay")
		return theNode, err
	}

	// Define ingest endpoint catalog
	theNode.catalog, err = utils.NewFileIngestCatalog(parentCtxt, config.Ingest.CatalogFile)
	if err != nil {
		log.WithError(err).Error("Failed to define ingest endpoint catalog")
		return theNode, err
	}

	// Define playback ID lookup cache when enabled
	var lookupCache utils.StreamLookupCache
	if config.LookupCache.Enabled {
		lookupCache, err = utils.NewMemcachedStreamLookupCache(config.LookupCache.Servers)
		if err != nil {
			log.WithError(err).Error("Failed to define playback ID lookup cache")
			return theNode, err
		}
	}

	metricsRegistry := prometheus.NewRegistry()

	// Define the stream lifecycle manager
	theNode.streams, err = control.NewStreamManager(
		parentCtxt,
		dbManager,
		chainer,
		events,
		mistClient,
		relay,
		theNode.catalog,
		lookupCache,
		config,
		metricsRegistry,
	)
	if err != nil {
		log.WithError(err).Error("Failed to define stream lifecycle manager")
		return theNode, err
	}

	// Define the resource registry manager
	probe, err := utils.NewObjectStoreProbe()
	if err != nil {
		log.WithError(err).Error("Failed to define object store probe")
		return theNode, err
	}
	registry, err := control.NewRegistryManager(dbManager, probe)
	if err != nil {
		log.WithError(err).Error("Failed to define resource registry manager")
		return theNode, err
	}

	// Define gateway API HTTP server
	apiServer, err := api.BuildGatewayAPIServer(
		config.API, config.Streams, theNode.streams, registry, dbManager,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create gateway API HTTP server")
		return theNode, err
	}
	theNode.APIServer = apiServer

	// Define metrics HTTP server
	metricsServer, err := api.BuildMetricsServer(config.Metrics, metricsRegistry)
	if err != nil {
		log.WithError(err).Error("Failed to create metrics HTTP server")
		return theNode, err
	}
	theNode.MetricsServer = metricsServer

	return theNode, nil
}
