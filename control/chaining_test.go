package control_test

import (
	"context"
	"testing"
	"time"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/mocks"
	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// testChainConfig lifecycle settings used by the chaining tests
func testChainConfig(recordStoreID string) common.StreamManagementConfig {
	return common.StreamManagementConfig{
		UserSessionTimeoutInSec: 300,
		ActiveTimeoutInSec:      60,
		RecordObjectStoreID:     recordStoreID,
		MaxPageSize:             100,
		DefaultPageSize:         20,
	}
}

func TestSessionChainerFirstSession(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	mockDB := mocks.NewPersistenceManager(t)
	recordStoreID := uuid.NewString()

	uut, err := control.NewSessionChainer(mockDB, testChainConfig(recordStoreID))
	assert.Nil(err)

	parentID := uuid.NewString()
	session := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:        uuid.NewString(),
			UserID:    uuid.NewString(),
			Name:      "ingest-0",
			CreatedAt: time.Now().UnixMilli(),
		},
		ParentID: parentID,
	}

	// Case 0: no recent sessions, the session starts its own chain
	mockDB.On(
		"ListRecentSessions", mock.Anything, parentID, mock.AnythingOfType("int64"),
	).Return([]common.StreamSession{}, nil).Once()

	outcome, err := uut.Thread(utCtxt, &session)
	assert.Nil(err)
	assert.False(outcome.Continuation)
	assert.Equal(session.ID, outcome.ChainHead)
	assert.Equal(session.CreatedAt, session.UserSessionCreatedAt)
	assert.Empty(session.PreviousSessions)
}

func TestSessionChainerStoreMismatch(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	mockDB := mocks.NewPersistenceManager(t)
	recordStoreID := uuid.NewString()

	uut, err := control.NewSessionChainer(mockDB, testChainConfig(recordStoreID))
	assert.Nil(err)

	parentID := uuid.NewString()
	candidate := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              uuid.NewString(),
			Name:                "ingest-0",
			CreatedAt:           time.Now().Add(-time.Minute).UnixMilli(),
			RecordObjectStoreID: uuid.NewString(),
		},
		ParentID: parentID,
	}
	session := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:        uuid.NewString(),
			UserID:    candidate.UserID,
			Name:      "ingest-1",
			CreatedAt: time.Now().UnixMilli(),
		},
		ParentID: parentID,
	}

	// Case 0: recent session exists but is pinned elsewhere, new chain begins
	mockDB.On(
		"ListRecentSessions", mock.Anything, parentID, mock.AnythingOfType("int64"),
	).Return([]common.StreamSession{candidate}, nil).Once()

	outcome, err := uut.Thread(utCtxt, &session)
	assert.Nil(err)
	assert.False(outcome.Continuation)
	assert.Equal(session.ID, outcome.ChainHead)
	assert.Empty(session.PreviousSessions)

	// Case 1: no pinned record store configured at all, chains never continue
	uutUnpinned, err := control.NewSessionChainer(mockDB, testChainConfig(""))
	assert.Nil(err)
	matching := candidate
	matching.RecordObjectStoreID = recordStoreID
	mockDB.On(
		"ListRecentSessions", mock.Anything, parentID, mock.AnythingOfType("int64"),
	).Return([]common.StreamSession{matching}, nil).Once()

	outcome, err = uutUnpinned.Thread(utCtxt, &session)
	assert.Nil(err)
	assert.False(outcome.Continuation)
}

func TestSessionChainerContinuation(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	mockDB := mocks.NewPersistenceManager(t)
	recordStoreID := uuid.NewString()

	uut, err := control.NewSessionChainer(mockDB, testChainConfig(recordStoreID))
	assert.Nil(err)

	parentID := uuid.NewString()
	chainHeadID := uuid.NewString()
	chainStart := time.Now().Add(-time.Minute * 20).UnixMilli()

	prior := common.StreamStats{SourceBytes: 100, SourceSegmentsDuration: 10}
	candidate := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:                  uuid.NewString(),
			UserID:              uuid.NewString(),
			Name:                "ingest-1",
			CreatedAt:           time.Now().Add(-time.Minute * 5).UnixMilli(),
			RecordObjectStoreID: recordStoreID,
			Stats: common.StreamStats{
				SourceBytes: 40, SourceSegmentsDuration: 4,
			},
		},
		ParentID:             parentID,
		PreviousSessions:     common.StringList{chainHeadID},
		PreviousStats:        common.JSONColumn[common.StreamStats]{V: &prior},
		UserSessionCreatedAt: chainStart,
	}
	session := common.StreamSession{
		StreamBase: common.StreamBase{
			ID:        uuid.NewString(),
			UserID:    candidate.UserID,
			Name:      "ingest-2",
			CreatedAt: time.Now().UnixMilli(),
		},
		ParentID: parentID,
	}

	// Case 0: the session continues the candidate's chain
	mockDB.On(
		"ListRecentSessions", mock.Anything, parentID, mock.AnythingOfType("int64"),
	).Return([]common.StreamSession{candidate}, nil).Once()

	outcome, err := uut.Thread(utCtxt, &session)
	assert.Nil(err)
	assert.True(outcome.Continuation)
	assert.Equal(chainHeadID, outcome.ChainHead)
	assert.Equal(candidate.ID, outcome.CandidateID)

	// The chain grows and the counters fold
	assert.Equal(common.StringList{chainHeadID, candidate.ID}, session.PreviousSessions)
	assert.Equal(chainStart, session.UserSessionCreatedAt)
	assert.NotNil(session.PreviousStats.V)
	assert.Equal(int64(140), session.PreviousStats.V.SourceBytes)
	assert.Equal(14.0, session.PreviousStats.V.SourceSegmentsDuration)
}
