package control_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm/logger"
)

// newBackfillManager stream manager against a real DB for backfill runs
func newBackfillManager(
	t *testing.T, dbClient db.PersistenceManager, config common.GatewayConfig,
) control.StreamManager {
	assert := assert.New(t)

	queue := mocks.NewQueue(t)
	queue.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	uut, err := control.NewStreamManager(
		context.Background(),
		dbClient,
		mocks.NewSessionChainer(t),
		queue,
		mocks.NewClient(t),
		mocks.NewRegionRelay(t),
		mocks.NewIngestCatalog(t),
		nil,
		config,
		nil,
	)
	assert.Nil(err)
	return uut
}

func TestBackfillUserSessions(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	testDB := fmt.Sprintf("/tmp/ut-%s.db", uuid.NewString())
	log.Debugf("Using %s", testDB)
	dbClient, err := db.NewManager(db.GetSqliteDialector(testDB), logger.Info)
	assert.Nil(err)

	config := testGatewayConfig()
	storeID := uuid.NewString()
	config.Streams.RecordObjectStoreID = storeID
	uut := newBackfillManager(t, dbClient, config)
	defer func() {
		assert.Nil(uut.Stop(utCtxt))
	}()

	userID := uuid.NewString()
	parent := common.ParentStream{StreamBase: common.StreamBase{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       "my-stream",
		PlaybackID: "abcd1234",
		CreatedAt:  time.Now().Add(-time.Hour * 2).UnixMilli(),
	}}
	assert.Nil(dbClient.CreateParentStream(utCtxt, parent))

	settled := time.Now().Add(-time.Hour).UnixMilli()

	// A lone settled session, its own chain head
	lone := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              userID,
			Name:                "video+abcd1234",
			CreatedAt:           settled - 60000,
			LastSeen:            settled,
			Record:              true,
			RecordObjectStoreID: storeID,
			Stats:               common.StreamStats{SourceBytes: 100, SourceSegmentsDuration: 10},
		},
		ParentID: parent.ID,
	}
	assert.Nil(dbClient.CreateStreamSession(utCtxt, lone))

	// A two session chain, head superseded by the tail
	head := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              userID,
			Name:                "video+abcd1234",
			CreatedAt:           settled - 120000,
			LastSeen:            settled - 60000,
			Record:              true,
			RecordObjectStoreID: storeID,
			Stats:               common.StreamStats{SourceBytes: 40, SourceSegmentsDuration: 4},
		},
		ParentID: parent.ID,
	}
	head.PartialSession = true
	assert.Nil(dbClient.CreateStreamSession(utCtxt, head))
	headStats := head.Stats
	tail := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              userID,
			Name:                "video+abcd1234",
			CreatedAt:           settled - 50000,
			LastSeen:            settled,
			Record:              true,
			RecordObjectStoreID: storeID,
			Stats:               common.StreamStats{SourceBytes: 60, SourceSegmentsDuration: 6},
		},
		ParentID:             parent.ID,
		PreviousSessions:     common.StringList{head.ID},
		PreviousStats:        common.JSONColumn[common.StreamStats]{V: &headStats},
		UserSessionCreatedAt: head.CreatedAt,
	}
	assert.Nil(dbClient.CreateStreamSession(utCtxt, tail))

	// A session still live, left alone
	live := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              userID,
			Name:                "video+abcd1234",
			CreatedAt:           time.Now().UnixMilli(),
			LastSeen:            time.Now().UnixMilli(),
			Record:              true,
			RecordObjectStoreID: storeID,
			Stats:               common.StreamStats{SourceBytes: 10, SourceSegmentsDuration: 1},
		},
		ParentID: parent.ID,
	}
	assert.Nil(dbClient.CreateStreamSession(utCtxt, live))

	// A settled session that never pinned a record store, left alone
	unpinned := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      "video+abcd1234",
			CreatedAt: settled - 60000,
			LastSeen:  settled,
			Record:    true,
			Stats:     common.StreamStats{SourceBytes: 10, SourceSegmentsDuration: 1},
		},
		ParentID: parent.ID,
	}
	assert.Nil(dbClient.CreateStreamSession(utCtxt, unpinned))

	progress := func(string) {}

	// Case 0: first pass materializes the two missing projections
	processed, err := uut.BackfillUserSessions(utCtxt, progress)
	assert.Nil(err)
	assert.Equal(2, processed)

	loneProjection, err := dbClient.GetUserSession(utCtxt, lone.ID)
	assert.Nil(err)
	assert.Equal(lone.Stats, loneProjection.Stats)
	assert.Equal(lone.CreatedAt, loneProjection.CreatedAt)

	chainProjection, err := dbClient.GetUserSession(utCtxt, head.ID)
	assert.Nil(err)
	assert.Equal(parent.PlaybackID, chainProjection.PlaybackID)
	assert.Equal(head.CreatedAt, chainProjection.CreatedAt)
	assert.Equal(int64(100), chainProjection.Stats.SourceBytes)
	assert.Equal(10.0, chainProjection.Stats.SourceSegmentsDuration)

	// Case 1: second pass is a no-op
	processed, err = uut.BackfillUserSessions(utCtxt, progress)
	assert.Nil(err)
	assert.Equal(0, processed)
}

func TestBackfillSessionLinks(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	testDB := fmt.Sprintf("/tmp/ut-%s.db", uuid.NewString())
	log.Debugf("Using %s", testDB)
	dbClient, err := db.NewManager(db.GetSqliteDialector(testDB), logger.Info)
	assert.Nil(err)

	config := testGatewayConfig()
	storeID := uuid.NewString()
	config.Streams.RecordObjectStoreID = storeID
	uut := newBackfillManager(t, dbClient, config)
	defer func() {
		assert.Nil(uut.Stop(utCtxt))
	}()

	userID := uuid.NewString()
	parent := common.ParentStream{StreamBase: common.StreamBase{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       "my-stream",
		PlaybackID: "abcd1234",
	}}
	assert.Nil(dbClient.CreateParentStream(utCtxt, parent))

	// The chain head stream record knows its tail, the projection does not
	tailID := uuid.NewString()
	head := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              userID,
			Name:                "video+abcd1234",
			Record:              true,
			RecordObjectStoreID: storeID,
		},
		ParentID:      parent.ID,
		LastSessionID: tailID,
	}
	assert.Nil(dbClient.CreateStreamSession(utCtxt, head))
	assert.Nil(dbClient.CreateUserSession(utCtxt, common.UserSession{
		ID:                  head.ID,
		UserID:              userID,
		ParentID:            parent.ID,
		Name:                head.Name,
		PlaybackID:          parent.PlaybackID,
		Record:              true,
		RecordObjectStoreID: storeID,
	}))

	// A projection already carrying its link, still counted
	linked := common.UserSession{
		ID:                  uuid.NewString(),
		UserID:              userID,
		ParentID:            parent.ID,
		Name:                "video+abcd1234",
		Record:              true,
		RecordObjectStoreID: storeID,
		LastSessionID:       uuid.NewString(),
	}
	assert.Nil(dbClient.CreateUserSession(utCtxt, linked))

	// A projection with no pinned store, not counted
	assert.Nil(dbClient.CreateUserSession(utCtxt, common.UserSession{
		ID:       uuid.NewString(),
		UserID:   userID,
		ParentID: parent.ID,
		Name:     "video+abcd1234",
		Record:   true,
	}))

	// Case 0: the missing link is borrowed from the stream record
	processed, err := uut.BackfillSessionLinks(utCtxt, func(string) {})
	assert.Nil(err)
	assert.Equal(2, processed)

	projection, err := dbClient.GetUserSession(utCtxt, head.ID)
	assert.Nil(err)
	assert.Equal(tailID, projection.LastSessionID)

	// The pre-linked projection is untouched
	projection, err = dbClient.GetUserSession(utCtxt, linked.ID)
	assert.Nil(err)
	assert.Equal(linked.LastSessionID, projection.LastSessionID)
}
