package db

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/alwitt/livegate/common"
)

// PageRequest cursor based pagination request for list queries
type PageRequest struct {
	// Cursor opaque continuation token from a prior page, empty for the first page
	Cursor string
	// Limit max entries to return
	Limit int
}

/*
EncodeCursor pack a row offset into an opaque continuation token

	@param offset int - row offset of the next page
	@return the continuation token
*/
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("o:%d", offset)))
}

/*
DecodeCursor unpack a continuation token

	@param cursor string - the continuation token
	@return the row offset it names
*/
func DecodeCursor(cursor string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("malformed cursor '%s'", cursor)
	}
	asStr := string(raw)
	if !strings.HasPrefix(asStr, "o:") {
		return 0, fmt.Errorf("malformed cursor '%s'", cursor)
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(asStr, "o:"))
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("malformed cursor '%s'", cursor)
	}
	return offset, nil
}

// StreamRecordFilter selection criteria for listing stream records
type StreamRecordFilter struct {
	// UserID restrict to records owned by this user
	UserID string
	// ParentID restrict to sessions under this parent stream
	ParentID string
	// ParentsOnly restrict to parent stream records
	ParentsOnly bool
	// SessionsOnly restrict to stream session records
	SessionsOnly bool
	// IsActive restrict by media server liveness
	IsActive *bool
	// Record restrict by recording flag
	Record *bool
	// IncludeDeleted include soft deleted records
	IncludeDeleted bool
	// OrderAscByID return rows ordered by ID ascending instead of newest first
	OrderAscByID bool
}

// UserSessionFilter selection criteria for listing user sessions
type UserSessionFilter struct {
	// UserID restrict to sessions owned by this user
	UserID string
	// ParentID restrict to sessions under this parent stream
	ParentID string
	// Record restrict by recording flag
	Record *bool
	// IncludeDeleted include soft deleted sessions
	IncludeDeleted bool
}

// WebhookFilter selection criteria for listing webhooks
type WebhookFilter struct {
	// UserID restrict to webhooks owned by this user
	UserID string
	// Event restrict to webhooks subscribed to this event
	Event string
	// IncludeDeleted include soft deleted webhooks
	IncludeDeleted bool
}

// StreamPatch partial update of one stream record. Only non-nil fields are
// written.
type StreamPatch struct {
	IsActive            *bool
	LastSeen            *int64
	Region              *string
	MistHost            *string
	BroadcasterHost     *string
	Record              *bool
	RecordObjectStoreID *string
	ObjectStoreID       *string
	Suspended           *bool
	Deleted             *bool
	LastSessionID       *string
	PartialSession      *bool
	Name                *string
	Multistream         *common.MultistreamConfig
}

// columns the gorm column assignments the patch names
func (p StreamPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.LastSeen != nil {
		updates["last_seen"] = *p.LastSeen
	}
	if p.Region != nil {
		updates["region"] = *p.Region
	}
	if p.MistHost != nil {
		updates["mist_host"] = *p.MistHost
	}
	if p.BroadcasterHost != nil {
		updates["broadcaster_host"] = *p.BroadcasterHost
	}
	if p.Record != nil {
		updates["record"] = *p.Record
	}
	if p.RecordObjectStoreID != nil {
		updates["record_object_store_id"] = *p.RecordObjectStoreID
	}
	if p.ObjectStoreID != nil {
		updates["object_store_id"] = *p.ObjectStoreID
	}
	if p.Suspended != nil {
		updates["suspended"] = *p.Suspended
	}
	if p.Deleted != nil {
		updates["deleted"] = *p.Deleted
	}
	if p.LastSessionID != nil {
		updates["last_session_id"] = *p.LastSessionID
	}
	if p.PartialSession != nil {
		updates["partial_session"] = *p.PartialSession
	}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Multistream != nil {
		updates["multistream"] = common.JSONColumn[common.MultistreamConfig]{V: p.Multistream}
	}
	return updates
}

// UserSessionPatch partial update of one user session projection
type UserSessionPatch struct {
	LastSeen            *int64
	LastSessionID       *string
	RecordingStatus     *string
	RecordingURL        *string
	Mp4URL              *string
	RecordObjectStoreID *string
	Deleted             *bool
}

// columns the gorm column assignments the patch names
func (p UserSessionPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.LastSeen != nil {
		updates["last_seen"] = *p.LastSeen
	}
	if p.LastSessionID != nil {
		updates["last_session_id"] = *p.LastSessionID
	}
	if p.RecordingStatus != nil {
		updates["recording_status"] = *p.RecordingStatus
	}
	if p.RecordingURL != nil {
		updates["recording_url"] = *p.RecordingURL
	}
	if p.Mp4URL != nil {
		updates["mp4_url"] = *p.Mp4URL
	}
	if p.RecordObjectStoreID != nil {
		updates["record_object_store_id"] = *p.RecordObjectStoreID
	}
	if p.Deleted != nil {
		updates["deleted"] = *p.Deleted
	}
	return updates
}

// PushTargetPatch partial update of one push target
type PushTargetPatch struct {
	Name     *string
	URL      *string
	Disabled *bool
}

// columns the gorm column assignments the patch names
func (p PushTargetPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.URL != nil {
		updates["url"] = *p.URL
	}
	if p.Disabled != nil {
		updates["disabled"] = *p.Disabled
	}
	return updates
}

// UserPatch partial update of one user
type UserPatch struct {
	Suspended      *bool
	LastStreamedAt *int64
}

// columns the gorm column assignments the patch names
func (p UserPatch) columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Suspended != nil {
		updates["suspended"] = *p.Suspended
	}
	if p.LastStreamedAt != nil {
		updates["last_streamed_at"] = *p.LastStreamedAt
	}
	return updates
}
