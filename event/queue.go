package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

// Queue stream lifecycle event publisher
type Queue interface {
	/*
		Publish hand a stream lifecycle event to downstream consumers

			@param ctxt context.Context - execution context
			@param event common.StreamEvent - the event to publish
	*/
	Publish(ctxt context.Context, event common.StreamEvent) error
}

// pubsubQueueImpl implements Queue
type pubsubQueueImpl struct {
	goutils.Component
	psClient  goutils.PubSubClient
	topic     string
	validator *validator.Validate
}

/*
NewPubSubQueue define new PubSub backed event queue

	@param psClient goutils.PubSubClient - PubSub client
	@param topic string - event PubSub topic
	@returns new queue
*/
func NewPubSubQueue(psClient goutils.PubSubClient, topic string) (Queue, error) {
	return &pubsubQueueImpl{
		Component: goutils.Component{
			LogTags: log.Fields{
				"module":      "event",
				"component":   "pubsub-queue",
				"event-topic": topic,
			},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, psClient: psClient, topic: topic, validator: validator.New(),
	}, nil
}

func (q *pubsubQueueImpl) Publish(ctxt context.Context, event common.StreamEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	if err := q.validator.Struct(&event); err != nil {
		return err
	}
	payload, err := json.Marshal(&event)
	if err != nil {
		return err
	}
	if _, err = q.psClient.Publish(ctxt, q.topic, payload, nil, true); err != nil {
		log.
			WithError(err).
			WithFields(q.GetLogTagsForContext(ctxt)).
			WithField("event", event.Event).
			WithField("stream", event.StreamID).
			Error("Event publish failed")
		return err
	}
	return nil
}
