package control_test

import (
	"context"
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
	"gorm.io/gorm"
)

// managerTestFixture stream manager under test with all collaborators mocked
type managerTestFixture struct {
	db      *mocks.PersistenceManager
	chainer *mocks.SessionChainer
	queue   *mocks.Queue
	mist    *mocks.Client
	relay   *mocks.RegionRelay
	catalog *mocks.IngestCatalog
	uut     control.StreamManager
}

func newManagerFixture(t *testing.T, config common.GatewayConfig) *managerTestFixture {
	assert := assert.New(t)

	fixture := &managerTestFixture{
		db:      mocks.NewPersistenceManager(t),
		chainer: mocks.NewSessionChainer(t),
		queue:   mocks.NewQueue(t),
		mist:    mocks.NewClient(t),
		relay:   mocks.NewRegionRelay(t),
		catalog: mocks.NewIngestCatalog(t),
	}
	// Event publication happens on the support worker after the originating
	// call returned
	fixture.queue.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	uut, err := control.NewStreamManager(
		context.Background(),
		fixture.db,
		fixture.chainer,
		fixture.queue,
		fixture.mist,
		fixture.relay,
		fixture.catalog,
		nil,
		config,
		nil,
	)
	assert.Nil(err)
	fixture.uut = uut
	return fixture
}

func testGatewayConfig() common.GatewayConfig {
	return common.GatewayConfig{
		Streams: common.StreamManagementConfig{
			UserSessionTimeoutInSec: 300,
			ActiveTimeoutInSec:      60,
			MaxPageSize:             100,
			DefaultPageSize:         20,
		},
		Region: common.RegionConfig{
			OwnRegion:      "lax",
			FrontendDomain: "livegate.example.com",
			Protocol:       "https",
		},
	}
}

func TestStreamManagerCreateStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fixture := newManagerFixture(t, testGatewayConfig())
	defer func() {
		assert.Nil(fixture.uut.Stop(utCtxt))
	}()

	caller := common.Caller{UserID: uuid.NewString()}

	// Case 0: request fails validation
	{
		_, err := fixture.uut.CreateStream(utCtxt, caller, control.NewStreamRequest{})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(422, apiErr.Code)
	}

	// Case 1: the source rendition name is reserved
	{
		_, err := fixture.uut.CreateStream(utCtxt, caller, control.NewStreamRequest{
			Name:     "my-stream",
			Profiles: []common.TranscodeProfile{
				{Name: "source", Width: 1280, Height: 720, Bitrate: 3000000},
			},
		})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(422, apiErr.Code)
	}

	// Case 2: artifact object store is unusable
	{
		storeID := uuid.NewString()
		fixture.db.On("GetObjectStore", mock.Anything, storeID).Return(
			common.ObjectStore{ID: storeID, UserID: caller.UserID, Disabled: true}, nil,
		).Once()

		_, err := fixture.uut.CreateStream(utCtxt, caller, control.NewStreamRequest{
			Name: "my-stream", ObjectStoreID: storeID,
		})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(400, apiErr.Code)
	}

	// Case 3: stream registered with a fresh identity
	{
		fixture.db.On("GetParentStreamByKey", mock.Anything, mock.AnythingOfType("string")).Return(
			common.ParentStream{}, gorm.ErrRecordNotFound,
		).Once()
		fixture.db.On(
			"GetParentStreamByPlaybackID", mock.Anything, mock.AnythingOfType("string"),
		).Return(
			common.ParentStream{}, gorm.ErrRecordNotFound,
		).Once()
		fixture.db.On(
			"CreateParentStream", mock.Anything, mock.AnythingOfType("common.ParentStream"),
		).Return(nil).Once()

		parent, err := fixture.uut.CreateStream(utCtxt, caller, control.NewStreamRequest{
			Name: "my-stream", Record: true,
		})
		assert.Nil(err)
		assert.Equal(caller.UserID, parent.UserID)
		assert.Equal("my-stream", parent.Name)
		assert.True(parent.Record)
		assert.NotEmpty(parent.ID)
		assert.NotEmpty(parent.PlaybackID)
		assert.NotEmpty(parent.StreamKey)
		assert.NotContains(parent.PlaybackID, "-")
	}
}

func TestStreamManagerCreateSession(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	config := testGatewayConfig()
	config.Streams.RecordObjectStoreID = uuid.NewString()
	fixture := newManagerFixture(t, config)
	defer func() {
		assert.Nil(fixture.uut.Stop(utCtxt))
	}()

	userID := uuid.NewString()
	caller := common.Caller{UserID: userID}

	// Case 0: parent does not exist
	{
		parentRef := uuid.NewString()
		fixture.db.On("GetParentStream", mock.Anything, parentRef).Return(
			common.ParentStream{}, gorm.ErrRecordNotFound,
		).Once()

		_, err := fixture.uut.CreateSession(utCtxt, caller, parentRef, control.NewSessionRequest{
			Name: "video",
		})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 1: parent belongs to another user, existence is not revealed
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: uuid.NewString(), Name: "other",
		}}
		fixture.db.On("GetParentStream", mock.Anything, parent.ID).Return(parent, nil).Once()

		_, err := fixture.uut.CreateSession(utCtxt, caller, parent.ID, control.NewSessionRequest{
			Name: "video",
		})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 2: unrecorded session opens a fresh projection without chain resolution
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "my-stream", PlaybackID: "abcd1234",
		}}
		fixture.db.On("GetParentStream", mock.Anything, parent.ID).Return(parent, nil).Once()
		fixture.db.On(
			"CreateStreamSession", mock.Anything, mock.AnythingOfType("common.StreamSession"),
		).Return(nil).Once()
		var projection common.UserSession
		fixture.db.On(
			"CreateUserSession", mock.Anything, mock.AnythingOfType("common.UserSession"),
		).Run(func(args mock.Arguments) {
			projection = args.Get(1).(common.UserSession)
		}).Return(nil).Once()

		session, err := fixture.uut.CreateSession(utCtxt, caller, parent.ID, control.NewSessionRequest{
			Name: "video+abcd1234",
		})
		assert.Nil(err)
		assert.Equal(parent.ID, session.ParentID)
		assert.Equal(parent.PlaybackID, session.PlaybackID)
		assert.Equal(session.CreatedAt, session.UserSessionCreatedAt)
		assert.Equal(session.ID, projection.ID)
		assert.Equal(common.RecordingStatusNone, projection.RecordingStatus)
	}

	// Case 3: parent located through the session name playback ID suffix
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "my-stream", PlaybackID: "wxyz9876",
		}}
		ref := uuid.NewString()
		fixture.db.On("GetParentStream", mock.Anything, ref).Return(
			common.ParentStream{}, gorm.ErrRecordNotFound,
		).Once()
		fixture.db.On("GetParentStreamByPlaybackID", mock.Anything, "wxyz9876").Return(
			parent, nil,
		).Once()
		fixture.db.On(
			"CreateStreamSession", mock.Anything, mock.AnythingOfType("common.StreamSession"),
		).Return(nil).Once()
		fixture.db.On(
			"CreateUserSession", mock.Anything, mock.AnythingOfType("common.UserSession"),
		).Return(nil).Once()

		session, err := fixture.uut.CreateSession(utCtxt, caller, ref, control.NewSessionRequest{
			Name: "video+wxyz9876",
		})
		assert.Nil(err)
		assert.Equal(parent.ID, session.ParentID)
	}

	// Case 4: recorded session continues an existing chain, no new projection
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:         uuid.NewString(),
			UserID:     userID,
			Name:       "my-stream",
			PlaybackID: "qrst5678",
			Record:     true,
		}}
		chainHead := uuid.NewString()
		candidate := uuid.NewString()
		fixture.db.On("GetParentStream", mock.Anything, parent.ID).Return(parent, nil).Once()
		fixture.chainer.On(
			"Thread", mock.Anything, mock.AnythingOfType("*common.StreamSession"),
		).Return(control.ChainOutcome{
			Continuation: true, ChainHead: chainHead, CandidateID: candidate,
		}, nil).Once()
		fixture.db.On(
			"CreateStreamSession", mock.Anything, mock.AnythingOfType("common.StreamSession"),
		).Return(nil).Once()
		// The back links are written by the support worker after the call returns
		fixture.db.On(
			"UpdateStream", mock.Anything, chainHead, mock.AnythingOfType("db.StreamPatch"),
		).Return(nil).Maybe()
		fixture.db.On(
			"UpdateUserSession", mock.Anything, chainHead, mock.AnythingOfType("db.UserSessionPatch"),
		).Return(nil).Maybe()
		fixture.db.On(
			"UpdateStream", mock.Anything, candidate, mock.AnythingOfType("db.StreamPatch"),
		).Return(nil).Maybe()

		session, err := fixture.uut.CreateSession(utCtxt, caller, parent.ID, control.NewSessionRequest{
			Name: "video+qrst5678",
		})
		assert.Nil(err)
		assert.True(session.Record)
	}

	// Case 5: recorded first session is waiting even before the ingest hook pins a store
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:         uuid.NewString(),
			UserID:     userID,
			Name:       "my-stream",
			PlaybackID: "lmno2468",
			Record:     true,
		}}
		fixture.db.On("GetParentStream", mock.Anything, parent.ID).Return(parent, nil).Once()
		fixture.chainer.On(
			"Thread", mock.Anything, mock.AnythingOfType("*common.StreamSession"),
		).Return(control.ChainOutcome{Continuation: false}, nil).Once()
		fixture.db.On(
			"CreateStreamSession", mock.Anything, mock.AnythingOfType("common.StreamSession"),
		).Return(nil).Once()
		var projection common.UserSession
		fixture.db.On(
			"CreateUserSession", mock.Anything, mock.AnythingOfType("common.UserSession"),
		).Run(func(args mock.Arguments) {
			projection = args.Get(1).(common.UserSession)
		}).Return(nil).Once()

		session, err := fixture.uut.CreateSession(utCtxt, caller, parent.ID, control.NewSessionRequest{
			Name: "video+lmno2468",
		})
		assert.Nil(err)
		assert.True(session.Record)
		assert.Empty(projection.RecordObjectStoreID)
		assert.Equal(common.RecordingStatusWaiting, projection.RecordingStatus)
	}
}

func TestStreamManagerGetStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fixture := newManagerFixture(t, testGatewayConfig())
	defer func() {
		assert.Nil(fixture.uut.Stop(utCtxt))
	}()

	userID := uuid.NewString()
	caller := common.Caller{UserID: userID}

	// Case 0: unknown record
	{
		id := uuid.NewString()
		fixture.db.On("GetStreamRecord", mock.Anything, id).Return(
			common.StreamRecord{}, gorm.ErrRecordNotFound,
		).Once()

		_, err := fixture.uut.GetStream(utCtxt, caller, id)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 1: deleted records are hidden from non-admin callers
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "gone", Deleted: true,
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()

		_, err := fixture.uut.GetStream(utCtxt, caller, parent.ID)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 2: records of other users are forbidden
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: uuid.NewString(), Name: "other",
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()

		_, err := fixture.uut.GetStream(utCtxt, caller, parent.ID)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(403, apiErr.Code)
	}

	// Case 3: stale active marker is repaired on read
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     "stale",
			IsActive: true,
			LastSeen: time.Now().Add(-time.Minute * 10).UnixMilli(),
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()
		fixture.db.On(
			"UpdateStream", mock.Anything, parent.ID, mock.AnythingOfType("db.StreamPatch"),
		).Return(nil).Once()

		record, err := fixture.uut.GetStream(utCtxt, caller, parent.ID)
		assert.Nil(err)
		assert.False(record.Base().IsActive)
	}

	// Case 4: fresh active marker is left alone
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     "live",
			IsActive: true,
			LastSeen: time.Now().UnixMilli(),
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()

		record, err := fixture.uut.GetStream(utCtxt, caller, parent.ID)
		assert.Nil(err)
		assert.True(record.Base().IsActive)
	}
}

func TestStreamManagerDeleteStreams(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fixture := newManagerFixture(t, testGatewayConfig())
	defer func() {
		assert.Nil(fixture.uut.Stop(utCtxt))
	}()

	userID := uuid.NewString()
	caller := common.Caller{UserID: userID}

	// Case 0: empty request
	{
		err := fixture.uut.DeleteStreams(utCtxt, caller, []string{})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(400, apiErr.Code)
	}

	// Case 1: one of the named streams does not exist
	{
		existing := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "one",
		}}
		ids := []string{existing.ID, uuid.NewString()}
		fixture.db.On("GetStreamRecords", mock.Anything, ids).Return(
			[]common.StreamRecord{{Parent: &existing}}, nil,
		).Once()

		err := fixture.uut.DeleteStreams(utCtxt, caller, ids)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 2: another user's stream in the list is indistinguishable from a missing one
	{
		mine := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "mine",
		}}
		theirs := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: uuid.NewString(), Name: "theirs",
		}}
		ids := []string{mine.ID, theirs.ID}
		fixture.db.On("GetStreamRecords", mock.Anything, ids).Return(
			[]common.StreamRecord{{Parent: &mine}, {Parent: &theirs}}, nil,
		).Once()

		err := fixture.uut.DeleteStreams(utCtxt, caller, ids)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 3: all named streams soft deleted
	{
		one := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "one",
		}}
		two := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "two",
		}}
		ids := []string{one.ID, two.ID}
		fixture.db.On("GetStreamRecords", mock.Anything, ids).Return(
			[]common.StreamRecord{{Parent: &one}, {Parent: &two}}, nil,
		).Once()
		fixture.db.On("SetStreamsDeleted", mock.Anything, ids).Return(nil).Once()

		assert.Nil(fixture.uut.DeleteStreams(utCtxt, caller, ids))
	}
}

func TestStreamManagerSetActive(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fixture := newManagerFixture(t, testGatewayConfig())
	defer func() {
		assert.Nil(fixture.uut.Stop(utCtxt))
	}()

	// Case 0: unknown record
	{
		id := uuid.NewString()
		fixture.db.On("GetStreamRecord", mock.Anything, id).Return(
			common.StreamRecord{}, gorm.ErrRecordNotFound,
		).Once()

		err := fixture.uut.SetActive(utCtxt, id, control.SetActiveRequest{Active: true})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(404, apiErr.Code)
	}

	// Case 1: suspended stream rejects liveness reports
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: uuid.NewString(), Name: "held", Suspended: true,
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()

		err := fixture.uut.SetActive(utCtxt, parent.ID, control.SetActiveRequest{Active: true})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(403, apiErr.Code)
	}

	// Case 2: suspended owner rejects liveness reports
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: uuid.NewString(), Name: "held",
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()
		fixture.db.On("GetUser", mock.Anything, parent.UserID).Return(
			common.User{ID: parent.UserID, Suspended: true}, nil,
		).Once()

		err := fixture.uut.SetActive(utCtxt, parent.ID, control.SetActiveRequest{Active: true})
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(403, apiErr.Code)
	}

	// Case 3: session liveness propagates to the parent
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: uuid.NewString(), Name: "my-stream",
		}}
		session := common.StreamSession{
			StreamBase: common.StreamBase{
				ID: uuid.NewString(), UserID: parent.UserID, Name: "video",
			},
			ParentID: parent.ID,
		}
		fixture.db.On("GetStreamRecord", mock.Anything, session.ID).Return(
			common.StreamRecord{Session: &session}, nil,
		).Once()
		fixture.db.On("GetUser", mock.Anything, parent.UserID).Return(
			common.User{ID: parent.UserID}, nil,
		).Once()
		var sessionPatch db.StreamPatch
		fixture.db.On(
			"UpdateStream", mock.Anything, session.ID, mock.AnythingOfType("db.StreamPatch"),
		).Run(func(args mock.Arguments) {
			sessionPatch = args.Get(2).(db.StreamPatch)
		}).Return(nil).Once()
		fixture.db.On(
			"UpdateUser", mock.Anything, parent.UserID, mock.AnythingOfType("db.UserPatch"),
		).Return(nil).Once()
		fixture.db.On("GetParentStream", mock.Anything, parent.ID).Return(parent, nil).Once()
		fixture.db.On(
			"UpdateStream", mock.Anything, parent.ID, mock.AnythingOfType("db.StreamPatch"),
		).Return(nil).Once()

		err := fixture.uut.SetActive(utCtxt, session.ID, control.SetActiveRequest{
			Active: true, HostName: "mist-0.example.com",
		})
		assert.Nil(err)
		assert.NotNil(sessionPatch.IsActive)
		assert.True(*sessionPatch.IsActive)
		assert.NotNil(sessionPatch.MistHost)
		assert.Equal("mist-0.example.com", *sessionPatch.MistHost)
		assert.NotNil(sessionPatch.Region)
		assert.Equal("lax", *sessionPatch.Region)
	}
}

func TestStreamManagerTerminate(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	fixture := newManagerFixture(t, testGatewayConfig())
	defer func() {
		assert.Nil(fixture.uut.Stop(utCtxt))
	}()

	userID := uuid.NewString()
	caller := common.Caller{UserID: userID, AuthHeader: "Bearer ut-token"}

	// Case 0: stream is not live
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID: uuid.NewString(), UserID: userID, Name: "idle",
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()

		_, err := fixture.uut.Terminate(utCtxt, caller, parent.ID)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(410, apiErr.Code)
	}

	// Case 1: stream has no known media server location
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     "lost",
			IsActive: true,
			LastSeen: time.Now().UnixMilli(),
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()

		_, err := fixture.uut.Terminate(utCtxt, caller, parent.ID)
		apiErr, ok := control.AsAPIError(err)
		assert.True(ok)
		assert.Equal(400, apiErr.Code)
	}

	// Case 2: stream live in another region is relayed
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     "remote",
			IsActive: true,
			LastSeen: time.Now().UnixMilli(),
			Region:   "fra",
			MistHost: "mist-9.example.com",
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()
		fixture.relay.On(
			"RelayTerminate", mock.Anything, "fra", parent.ID, caller.AuthHeader,
		).Return(control.RelayedResponse{
			StatusCode:  200,
			ContentType: "application/json",
			Body:        []byte(`{"result":true}`),
		}, nil).Once()

		result, err := fixture.uut.Terminate(utCtxt, caller, parent.ID)
		assert.Nil(err)
		assert.NotNil(result.Relayed)
		assert.Equal(200, result.Relayed.StatusCode)
	}

	// Case 3: local stream killed through the media server API
	{
		parent := common.ParentStream{StreamBase: common.StreamBase{
			ID:         uuid.NewString(),
			UserID:     userID,
			Name:       "local",
			PlaybackID: "abcd1234",
			IsActive:   true,
			LastSeen:   time.Now().UnixMilli(),
			Region:     "lax",
			MistHost:   "mist-0.example.com",
		}}
		fixture.db.On("GetStreamRecord", mock.Anything, parent.ID).Return(
			common.StreamRecord{Parent: &parent}, nil,
		).Once()
		fixture.mist.On("ListActiveStreams", mock.Anything, "mist-0.example.com").Return(
			[]string{"video+abcd1234", "video+zzzz0000"}, nil,
		).Once()
		fixture.mist.On(
			"TerminateStream", mock.Anything, "mist-0.example.com", "video+abcd1234",
		).Return(nil).Once()

		result, err := fixture.uut.Terminate(utCtxt, caller, parent.ID)
		assert.Nil(err)
		assert.Nil(result.Relayed)
		assert.True(result.Result)
	}
}
