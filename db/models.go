package db

import (
	"github.com/alwitt/livegate/common"
)

// streamRecord one row of the stream_records table. A row is a parent stream
// when parent_id is NULL, and a stream session otherwise.
type streamRecord struct {
	common.StreamBase
	// StreamKey ingest secret, parent streams only
	StreamKey *string `gorm:"column:stream_key;uniqueIndex:stream_key_index"`
	// LastSessionID most recent chain head (parent) or continuation (session)
	LastSessionID string `gorm:"column:last_session_id"`
	// ParentID owning parent stream, sessions only
	ParentID *string `gorm:"column:parent_id;index:stream_parent_index"`
	// PreviousSessions chain of preceding session IDs
	PreviousSessions common.StringList `gorm:"column:previous_sessions;type:text"`
	// PreviousStats combined counters of the preceding chain
	PreviousStats common.JSONColumn[common.StreamStats] `gorm:"column:previous_stats;type:text"`
	// UserSessionCreatedAt epoch ms the logical user session began
	UserSessionCreatedAt int64 `gorm:"column:user_session_created_at;default:0"`
	// PartialSession whether a chained continuation superseded this session
	PartialSession bool `gorm:"column:partial_session;default:false"`
}

// TableName hard code table name
func (streamRecord) TableName() string {
	return "stream_records"
}

// record convert the row into its tagged form
func (e streamRecord) record() common.StreamRecord {
	if e.ParentID != nil {
		session := common.StreamSession{
			StreamBase:           e.StreamBase,
			ParentID:             *e.ParentID,
			PreviousSessions:     e.PreviousSessions,
			PreviousStats:        e.PreviousStats,
			UserSessionCreatedAt: e.UserSessionCreatedAt,
			PartialSession:       e.PartialSession,
			LastSessionID:        e.LastSessionID,
		}
		return common.StreamRecord{Session: &session}
	}
	parent := common.ParentStream{StreamBase: e.StreamBase, LastSessionID: e.LastSessionID}
	if e.StreamKey != nil {
		parent.StreamKey = *e.StreamKey
	}
	return common.StreamRecord{Parent: &parent}
}

// parentRow build the row for a parent stream
func parentRow(parent common.ParentStream) streamRecord {
	row := streamRecord{StreamBase: parent.StreamBase, LastSessionID: parent.LastSessionID}
	if parent.StreamKey != "" {
		key := parent.StreamKey
		row.StreamKey = &key
	}
	return row
}

// sessionRow build the row for a stream session
func sessionRow(session common.StreamSession) streamRecord {
	parentID := session.ParentID
	return streamRecord{
		StreamBase:           session.StreamBase,
		LastSessionID:        session.LastSessionID,
		ParentID:             &parentID,
		PreviousSessions:     session.PreviousSessions,
		PreviousStats:        session.PreviousStats,
		UserSessionCreatedAt: session.UserSessionCreatedAt,
		PartialSession:       session.PartialSession,
	}
}

// userSession one row of the user_sessions projection table
type userSession struct {
	common.UserSession
}

// TableName hard code table name
func (userSession) TableName() string {
	return "user_sessions"
}

// webhook one row of the webhooks table
type webhook struct {
	common.Webhook
}

// TableName hard code table name
func (webhook) TableName() string {
	return "webhooks"
}

// pushTarget one row of the push_targets table
type pushTarget struct {
	common.PushTarget
}

// TableName hard code table name
func (pushTarget) TableName() string {
	return "push_targets"
}

// objectStore one row of the object_stores table
type objectStore struct {
	common.ObjectStore
}

// TableName hard code table name
func (objectStore) TableName() string {
	return "object_stores"
}

// user one row of the users table
type user struct {
	common.User
}

// TableName hard code table name
func (user) TableName() string {
	return "users"
}

// apiToken one row of the api_tokens table
type apiToken struct {
	common.APIToken
}

// TableName hard code table name
func (apiToken) TableName() string {
	return "api_tokens"
}
