package bin

import (
	"context"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

// buildPubSubClient helper function for defining the event queue PubSub client
func buildPubSubClient(ctxt context.Context, gcpProject string) (goutils.PubSubClient, error) {
	var psClient goutils.PubSubClient
	rawPSClient, err := goutils.CreateBasicGCPPubSubClient(ctxt, gcpProject)
	if err != nil {
		log.WithError(err).Error("Failed to create core PubSub client")
		return psClient, err
	}

	// Define PubSub client
	psClient, err = goutils.GetNewPubSubClientInstance(rawPSClient, log.Fields{
		"module": "go-utils", "component": "pubsub-client", "project": gcpProject,
	})
	if err != nil {
		log.WithError(err).Error("Failed to create PubSub client")
		return psClient, err
	}

	// Sync PubSub client with currently existing topics and subscriptions
	if err := psClient.UpdateLocalTopicCache(ctxt); err != nil {
		log.WithError(err).Error("Errored when syncing existing topics in GCP project")
		return psClient, err
	}
	if err := psClient.UpdateLocalSubscriptionCache(ctxt); err != nil {
		log.WithError(err).Error("Errored when syncing existing subscriptions in GCP project")
		return psClient, err
	}

	return psClient, nil
}
