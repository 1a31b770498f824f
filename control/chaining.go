package control

import (
	"context"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/db"
	"github.com/apex/log"
)

// ChainOutcome result of threading a new session against recent chain history
type ChainOutcome struct {
	// Continuation whether the session continues a prior chain
	Continuation bool
	// ChainHead chain head session ID. The new session's own ID for a first
	// session.
	ChainHead string
	// CandidateID the session the chain was continued from, continuations only
	CandidateID string
}

// SessionChainer decides whether a freshly created ingest session continues a
// recently ended one and threads the chain fields onto it
type SessionChainer interface {
	/*
		Thread resolve chain continuation for a new session.

		Mutates the session in place: a continuation inherits the candidate's
		logical start time, grows its previousSessions chain, and folds the
		candidate's counters into previousStats. A first session keeps its own
		identity and logical start.

			@param ctxt context.Context - execution context
			@param session *common.StreamSession - the new session, not yet persisted
			@returns the chain outcome
	*/
	Thread(ctxt context.Context, session *common.StreamSession) (ChainOutcome, error)
}

// sessionChainerImpl implements SessionChainer
type sessionChainerImpl struct {
	goutils.Component
	db             db.PersistenceManager
	sessionTimeout time.Duration
	recordStoreID  string
}

/*
NewSessionChainer define new session chain resolver

	@param dbClient db.PersistenceManager - persistence manager
	@param config common.StreamManagementConfig - lifecycle settings
	@returns new resolver
*/
func NewSessionChainer(
	dbClient db.PersistenceManager, config common.StreamManagementConfig,
) (SessionChainer, error) {
	return &sessionChainerImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "control", "component": "session-chainer"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:             dbClient,
		sessionTimeout: config.UserSessionTimeout(),
		recordStoreID:  config.RecordObjectStoreID,
	}, nil
}

func (c *sessionChainerImpl) Thread(
	ctxt context.Context, session *common.StreamSession,
) (ChainOutcome, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	// A first session is its own chain head and logical start
	session.UserSessionCreatedAt = session.CreatedAt
	outcome := ChainOutcome{ChainHead: session.ID}

	cutoff := time.Now().Add(-c.sessionTimeout).UnixMilli()
	candidates, err := c.db.ListRecentSessions(ctxt, session.ParentID, cutoff)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("stream", session.ParentID).
			Error("Chain candidate lookup failed")
		return outcome, err
	}
	if len(candidates) == 0 {
		return outcome, nil
	}

	// Most recently seen session wins
	candidate := candidates[0]

	// A chain only continues within one pinned record store. An unpinned
	// candidate never matches.
	if c.recordStoreID == "" || candidate.RecordObjectStoreID != c.recordStoreID {
		log.
			WithFields(logTags).
			WithField("session", session.ID).
			WithField("candidate", candidate.ID).
			Debug("Recent session found but record store mismatch, starting new chain")
		return outcome, nil
	}

	// Thread the chain onto the new session
	session.UserSessionCreatedAt = candidate.UserSessionCreatedAt
	if session.UserSessionCreatedAt == 0 {
		session.UserSessionCreatedAt = candidate.CreatedAt
	}
	session.PreviousSessions = append(
		append(common.StringList{}, candidate.PreviousSessions...), candidate.ID,
	)
	previous := common.StreamStats{}
	if candidate.PreviousStats.V != nil {
		previous = *candidate.PreviousStats.V
	}
	combined := CombineStats(candidate.Stats, previous)
	session.PreviousStats = common.JSONColumn[common.StreamStats]{V: &combined}

	outcome.Continuation = true
	outcome.CandidateID = candidate.ID
	outcome.ChainHead = session.PreviousSessions[0]

	log.
		WithFields(logTags).
		WithField("session", session.ID).
		WithField("candidate", candidate.ID).
		WithField("chain-head", outcome.ChainHead).
		Info("Session continues existing chain")
	return outcome, nil
}
