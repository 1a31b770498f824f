package event_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/event"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPubSubQueuePublish(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	testTopic := "stream-events"
	mockClient := mocks.NewPubSubClient(t)

	uut, err := event.NewPubSubQueue(mockClient, testTopic)
	assert.Nil(err)

	// Case 0: missing timestamp is filled in before publish
	{
		var payload []byte
		mockClient.On(
			"Publish", mock.Anything, testTopic, mock.AnythingOfType("[]uint8"),
			map[string]string(nil), true,
		).Run(func(args mock.Arguments) {
			payload = args.Get(2).([]byte)
		}).Return(nil, nil).Once()

		streamID := uuid.NewString()
		assert.Nil(uut.Publish(utCtxt, common.StreamEvent{
			Channel: "webhooks", Event: "stream.started", StreamID: streamID,
		}))

		var published common.StreamEvent
		assert.Nil(json.Unmarshal(payload, &published))
		assert.Equal("stream.started", published.Event)
		assert.Equal(streamID, published.StreamID)
		assert.Greater(published.Timestamp, int64(0))
	}

	// Case 1: a caller supplied timestamp is left untouched
	{
		var payload []byte
		mockClient.On(
			"Publish", mock.Anything, testTopic, mock.AnythingOfType("[]uint8"),
			map[string]string(nil), true,
		).Run(func(args mock.Arguments) {
			payload = args.Get(2).([]byte)
		}).Return(nil, nil).Once()

		assert.Nil(uut.Publish(utCtxt, common.StreamEvent{
			Channel: "usage", Event: "session.created", Timestamp: 1700000000000,
		}))

		var published common.StreamEvent
		assert.Nil(json.Unmarshal(payload, &published))
		assert.Equal(int64(1700000000000), published.Timestamp)
	}

	// Case 2: events without a channel never reach the transport
	{
		assert.NotNil(uut.Publish(utCtxt, common.StreamEvent{Event: "stream.started"}))
	}

	// Case 3: transport errors surface to the caller
	{
		mockClient.On(
			"Publish", mock.Anything, testTopic, mock.AnythingOfType("[]uint8"),
			map[string]string(nil), true,
		).Return(nil, fmt.Errorf("dummy error")).Once()

		assert.NotNil(uut.Publish(utCtxt, common.StreamEvent{
			Channel: "webhooks", Event: "stream.started",
		}))
	}
}
