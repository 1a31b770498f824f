package db

import (
	"context"
	"errors"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersistenceManager database access layer
type PersistenceManager interface {
	/*
		Ready check whether the DB connection is working

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	// =====================================================================================
	// Stream records

	/*
		CreateParentStream create new parent stream record

			@param ctxt context.Context - execution context
			@param parent common.ParentStream - the record to create
	*/
	CreateParentStream(ctxt context.Context, parent common.ParentStream) error

	/*
		CreateStreamSession create new stream session record

			@param ctxt context.Context - execution context
			@param session common.StreamSession - the record to create
	*/
	CreateStreamSession(ctxt context.Context, session common.StreamSession) error

	/*
		GetStreamRecord retrieve one stream record of either kind

			@param ctxt context.Context - execution context
			@param id string - record ID
			@returns the record in tagged form
	*/
	GetStreamRecord(ctxt context.Context, id string) (common.StreamRecord, error)

	/*
		GetStreamRecords retrieve multiple stream records by ID

			@param ctxt context.Context - execution context
			@param ids []string - record IDs
			@returns the records found, in tagged form
	*/
	GetStreamRecords(ctxt context.Context, ids []string) ([]common.StreamRecord, error)

	/*
		GetParentStream retrieve one parent stream record

			@param ctxt context.Context - execution context
			@param id string - record ID
			@returns the parent stream
	*/
	GetParentStream(ctxt context.Context, id string) (common.ParentStream, error)

	/*
		GetStreamSession retrieve one stream session record

			@param ctxt context.Context - execution context
			@param id string - record ID
			@returns the stream session
	*/
	GetStreamSession(ctxt context.Context, id string) (common.StreamSession, error)

	/*
		GetParentStreamByKey retrieve the parent stream holding a stream key

			@param ctxt context.Context - execution context
			@param streamKey string - ingest stream key
			@returns the parent stream
	*/
	GetParentStreamByKey(ctxt context.Context, streamKey string) (common.ParentStream, error)

	/*
		GetParentStreamByPlaybackID retrieve the parent stream holding a playback ID

			@param ctxt context.Context - execution context
			@param playbackID string - public playback ID
			@returns the parent stream
	*/
	GetParentStreamByPlaybackID(ctxt context.Context, playbackID string) (common.ParentStream, error)

	/*
		ListStreamRecords list stream records matching a filter

			@param ctxt context.Context - execution context
			@param filter StreamRecordFilter - selection criteria
			@param page PageRequest - pagination request
			@returns one page of records, and the continuation cursor if more remain
	*/
	ListStreamRecords(
		ctxt context.Context, filter StreamRecordFilter, page PageRequest,
	) ([]common.StreamRecord, string, error)

	/*
		ListRecentSessions list sessions of a parent stream seen or created after a cutoff.

		Results are ordered most recently seen first, then most recently created.

			@param ctxt context.Context - execution context
			@param parentID string - parent stream ID
			@param cutoff int64 - epoch ms lower bound on last seen / creation time
			@returns matching sessions
	*/
	ListRecentSessions(ctxt context.Context, parentID string, cutoff int64) ([]common.StreamSession, error)

	/*
		UpdateStream apply a partial update to one stream record

			@param ctxt context.Context - execution context
			@param id string - record ID
			@param patch StreamPatch - fields to change
	*/
	UpdateStream(ctxt context.Context, id string, patch StreamPatch) error

	/*
		SetStreamsDeleted mark stream records deleted

			@param ctxt context.Context - execution context
			@param ids []string - record IDs
	*/
	SetStreamsDeleted(ctxt context.Context, ids []string) error

	// =====================================================================================
	// User session projections

	/*
		CreateUserSession create new user session projection

			@param ctxt context.Context - execution context
			@param session common.UserSession - the projection to create
	*/
	CreateUserSession(ctxt context.Context, session common.UserSession) error

	/*
		GetUserSession retrieve one user session projection

			@param ctxt context.Context - execution context
			@param id string - chain head session ID
			@returns the projection
	*/
	GetUserSession(ctxt context.Context, id string) (common.UserSession, error)

	/*
		ListUserSessions list user session projections matching a filter

			@param ctxt context.Context - execution context
			@param filter UserSessionFilter - selection criteria
			@param page PageRequest - pagination request
			@returns one page of projections, and the continuation cursor if more remain
	*/
	ListUserSessions(
		ctxt context.Context, filter UserSessionFilter, page PageRequest,
	) ([]common.UserSession, string, error)

	/*
		UpdateUserSession apply a partial update to one user session projection

			@param ctxt context.Context - execution context
			@param id string - chain head session ID
			@param patch UserSessionPatch - fields to change
	*/
	UpdateUserSession(ctxt context.Context, id string, patch UserSessionPatch) error

	// =====================================================================================
	// Webhooks

	/*
		CreateWebhook create new webhook

			@param ctxt context.Context - execution context
			@param hook common.Webhook - the webhook to create
	*/
	CreateWebhook(ctxt context.Context, hook common.Webhook) error

	/*
		GetWebhook retrieve one webhook

			@param ctxt context.Context - execution context
			@param id string - webhook ID
			@returns the webhook
	*/
	GetWebhook(ctxt context.Context, id string) (common.Webhook, error)

	/*
		ReplaceWebhook overwrite one webhook with a new definition

			@param ctxt context.Context - execution context
			@param hook common.Webhook - the replacement definition
	*/
	ReplaceWebhook(ctxt context.Context, hook common.Webhook) error

	/*
		SetWebhookDeleted mark one webhook deleted

			@param ctxt context.Context - execution context
			@param id string - webhook ID
	*/
	SetWebhookDeleted(ctxt context.Context, id string) error

	/*
		ListWebhooks list webhooks matching a filter

			@param ctxt context.Context - execution context
			@param filter WebhookFilter - selection criteria
			@param page PageRequest - pagination request
			@returns one page of webhooks, and the continuation cursor if more remain
	*/
	ListWebhooks(
		ctxt context.Context, filter WebhookFilter, page PageRequest,
	) ([]common.Webhook, string, error)

	/*
		ListSubscribedWebhooks list live webhooks of one user subscribed to an event

			@param ctxt context.Context - execution context
			@param userID string - owning user
			@param event string - event name
			@returns matching webhooks
	*/
	ListSubscribedWebhooks(ctxt context.Context, userID, event string) ([]common.Webhook, error)

	// =====================================================================================
	// Push targets

	/*
		CreatePushTarget create new push target

			@param ctxt context.Context - execution context
			@param target common.PushTarget - the target to create
	*/
	CreatePushTarget(ctxt context.Context, target common.PushTarget) error

	/*
		GetPushTarget retrieve one push target

			@param ctxt context.Context - execution context
			@param id string - push target ID
			@returns the push target
	*/
	GetPushTarget(ctxt context.Context, id string) (common.PushTarget, error)

	/*
		ListPushTargets list push targets of one user

			@param ctxt context.Context - execution context
			@param userID string - owning user, all users when empty
			@param page PageRequest - pagination request
			@returns one page of targets, and the continuation cursor if more remain
	*/
	ListPushTargets(
		ctxt context.Context, userID string, page PageRequest,
	) ([]common.PushTarget, string, error)

	/*
		UpdatePushTarget apply a partial update to one push target

			@param ctxt context.Context - execution context
			@param id string - push target ID
			@param patch PushTargetPatch - fields to change
	*/
	UpdatePushTarget(ctxt context.Context, id string, patch PushTargetPatch) error

	/*
		DeletePushTarget remove one push target

			@param ctxt context.Context - execution context
			@param id string - push target ID
	*/
	DeletePushTarget(ctxt context.Context, id string) error

	// =====================================================================================
	// Object stores

	/*
		CreateObjectStore register new object store

			@param ctxt context.Context - execution context
			@param store common.ObjectStore - the store to register
	*/
	CreateObjectStore(ctxt context.Context, store common.ObjectStore) error

	/*
		GetObjectStore retrieve one object store

			@param ctxt context.Context - execution context
			@param id string - object store ID
			@returns the object store
	*/
	GetObjectStore(ctxt context.Context, id string) (common.ObjectStore, error)

	/*
		ListObjectStores list object stores of one user

			@param ctxt context.Context - execution context
			@param userID string - owning user, all users when empty
			@param page PageRequest - pagination request
			@returns one page of stores, and the continuation cursor if more remain
	*/
	ListObjectStores(
		ctxt context.Context, userID string, page PageRequest,
	) ([]common.ObjectStore, string, error)

	/*
		SetObjectStoreDeleted mark one object store deleted

			@param ctxt context.Context - execution context
			@param id string - object store ID
	*/
	SetObjectStoreDeleted(ctxt context.Context, id string) error

	// =====================================================================================
	// Users and API tokens

	/*
		CreateUser create new user

			@param ctxt context.Context - execution context
			@param entry common.User - the user to create
	*/
	CreateUser(ctxt context.Context, entry common.User) error

	/*
		GetUser retrieve one user

			@param ctxt context.Context - execution context
			@param id string - user ID
			@returns the user
	*/
	GetUser(ctxt context.Context, id string) (common.User, error)

	/*
		UpdateUser apply a partial update to one user

			@param ctxt context.Context - execution context
			@param id string - user ID
			@param patch UserPatch - fields to change
	*/
	UpdateUser(ctxt context.Context, id string, patch UserPatch) error

	/*
		CreateAPIToken create new API token

			@param ctxt context.Context - execution context
			@param token common.APIToken - the token to create
	*/
	CreateAPIToken(ctxt context.Context, token common.APIToken) error

	/*
		GetAPIToken retrieve one API token by its value

			@param ctxt context.Context - execution context
			@param token string - the token value
			@returns the token record
	*/
	GetAPIToken(ctxt context.Context, token string) (common.APIToken, error)
}

// persistenceManagerImpl implements PersistenceManager
type persistenceManagerImpl struct {
	goutils.Component
	db        *gorm.DB
	validator *validator.Validate
}

/*
NewManager define a new DB access manager

	@param dbDialector gorm.Dialector - GORM SQL dialector
	@param logLevel logger.LogLevel - SQL log level
	@returns new manager
*/
func NewManager(dbDialector gorm.Dialector, logLevel logger.LogLevel) (PersistenceManager, error) {
	db, err := gorm.Open(dbDialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	// Prepare the databases
	for _, table := range []interface{}{
		&streamRecord{}, &userSession{}, &webhook{}, &pushTarget{}, &objectStore{}, &user{}, &apiToken{},
	} {
		if err := db.AutoMigrate(table); err != nil {
			return nil, err
		}
	}

	logTags := log.Fields{"module": "db", "component": "manager", "instance": dbDialector.Name()}
	return &persistenceManagerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        db,
		validator: validator.New(),
	}, nil
}

/*
IsRecordNotFound whether an error indicates a missing DB record

	@param err error - error returned by a manager call
	@return true if the error is a record-not-found
*/
func IsRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (m *persistenceManagerImpl) Ready(ctxt context.Context) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.Find(&[]streamRecord{}).Limit(1)
		return tmp.Error
	})
}

// =====================================================================================
// Stream records

func (m *persistenceManagerImpl) CreateParentStream(
	ctxt context.Context, parent common.ParentStream,
) error {
	if err := m.validator.Struct(&parent); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := parentRow(parent)
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("stream", parent.ID).
			WithField("playback-id", parent.PlaybackID).
			Info("Created new parent stream")
		return nil
	})
}

func (m *persistenceManagerImpl) CreateStreamSession(
	ctxt context.Context, session common.StreamSession,
) error {
	if err := m.validator.Struct(&session); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := sessionRow(session)
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("session", session.ID).
			WithField("stream", session.ParentID).
			Info("Created new stream session")
		return nil
	})
}

func (m *persistenceManagerImpl) GetStreamRecord(
	ctxt context.Context, id string,
) (common.StreamRecord, error) {
	var result common.StreamRecord
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry streamRecord
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.record()
		return nil
	})
}

func (m *persistenceManagerImpl) GetStreamRecords(
	ctxt context.Context, ids []string,
) ([]common.StreamRecord, error) {
	var results []common.StreamRecord
	return results, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []streamRecord
		if tmp := tx.Where("id in ?", ids).Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			results = append(results, entry.record())
		}
		return nil
	})
}

func (m *persistenceManagerImpl) GetParentStream(
	ctxt context.Context, id string,
) (common.ParentStream, error) {
	record, err := m.GetStreamRecord(ctxt, id)
	if err != nil {
		return common.ParentStream{}, err
	}
	if record.IsSession() {
		return common.ParentStream{}, gorm.ErrRecordNotFound
	}
	return *record.Parent, nil
}

func (m *persistenceManagerImpl) GetStreamSession(
	ctxt context.Context, id string,
) (common.StreamSession, error) {
	record, err := m.GetStreamRecord(ctxt, id)
	if err != nil {
		return common.StreamSession{}, err
	}
	if !record.IsSession() {
		return common.StreamSession{}, gorm.ErrRecordNotFound
	}
	return *record.Session, nil
}

func (m *persistenceManagerImpl) GetParentStreamByKey(
	ctxt context.Context, streamKey string,
) (common.ParentStream, error) {
	var result common.ParentStream
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry streamRecord
		if tmp := tx.First(&entry, "stream_key = ?", streamKey); tmp.Error != nil {
			return tmp.Error
		}
		record := entry.record()
		if record.IsSession() {
			return gorm.ErrRecordNotFound
		}
		result = *record.Parent
		return nil
	})
}

func (m *persistenceManagerImpl) GetParentStreamByPlaybackID(
	ctxt context.Context, playbackID string,
) (common.ParentStream, error) {
	var result common.ParentStream
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry streamRecord
		if tmp := tx.First(
			&entry, "playback_id = ? AND parent_id IS NULL", playbackID,
		); tmp.Error != nil {
			return tmp.Error
		}
		result = *entry.record().Parent
		return nil
	})
}

// applyStreamRecordFilter translate the filter into query conditions
func applyStreamRecordFilter(tx *gorm.DB, filter StreamRecordFilter) *gorm.DB {
	if filter.UserID != "" {
		tx = tx.Where("user_id = ?", filter.UserID)
	}
	if filter.ParentID != "" {
		tx = tx.Where("parent_id = ?", filter.ParentID)
	}
	if filter.ParentsOnly {
		tx = tx.Where("parent_id IS NULL")
	}
	if filter.SessionsOnly {
		tx = tx.Where("parent_id IS NOT NULL")
	}
	if filter.IsActive != nil {
		tx = tx.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Record != nil {
		tx = tx.Where("record = ?", *filter.Record)
	}
	if !filter.IncludeDeleted {
		tx = tx.Where("deleted = ?", false)
	}
	return tx
}

func (m *persistenceManagerImpl) ListStreamRecords(
	ctxt context.Context, filter StreamRecordFilter, page PageRequest,
) ([]common.StreamRecord, string, error) {
	var results []common.StreamRecord
	var nextCursor string
	offset := 0
	if page.Cursor != "" {
		var err error
		if offset, err = DecodeCursor(page.Cursor); err != nil {
			return nil, "", err
		}
	}
	return results, nextCursor, m.db.Transaction(func(tx *gorm.DB) error {
		query := applyStreamRecordFilter(tx.Model(&streamRecord{}), filter)
		if filter.OrderAscByID {
			query = query.Order("id asc")
		} else {
			query = query.Order("created_at desc").Order("id asc")
		}

		// Fetch one row past the page to learn whether more remain
		var entries []streamRecord
		if tmp := query.Offset(offset).Limit(page.Limit + 1).Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		if len(entries) > page.Limit {
			entries = entries[:page.Limit]
			nextCursor = EncodeCursor(offset + page.Limit)
		}
		for _, entry := range entries {
			results = append(results, entry.record())
		}
		return nil
	})
}

func (m *persistenceManagerImpl) ListRecentSessions(
	ctxt context.Context, parentID string, cutoff int64,
) ([]common.StreamSession, error) {
	var results []common.StreamSession
	return results, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []streamRecord
		if tmp := tx.
			Where("parent_id = ?", parentID).
			Where("last_seen > ? OR created_at > ?", cutoff, cutoff).
			Order("last_seen desc").
			Order("created_at desc").
			Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			results = append(results, *entry.record().Session)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateStream(
	ctxt context.Context, id string, patch StreamPatch,
) error {
	updates := patch.columns()
	if len(updates) == 0 {
		return nil
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		tmp := tx.Model(&streamRecord{}).Where("id = ?", id).Updates(updates)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("stream", id).
			Debug("Updated stream record")
		return nil
	})
}

func (m *persistenceManagerImpl) SetStreamsDeleted(ctxt context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		if tmp := tx.
			Model(&streamRecord{}).
			Where("id in ?", ids).
			Update("deleted", true); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("streams", ids).
			Info("Marked stream records deleted")
		return nil
	})
}

// =====================================================================================
// User session projections

func (m *persistenceManagerImpl) CreateUserSession(
	ctxt context.Context, session common.UserSession,
) error {
	if err := m.validator.Struct(&session); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := userSession{UserSession: session}
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("user-session", session.ID).
			WithField("stream", session.ParentID).
			Info("Created new user session projection")
		return nil
	})
}

func (m *persistenceManagerImpl) GetUserSession(
	ctxt context.Context, id string,
) (common.UserSession, error) {
	var result common.UserSession
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry userSession
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.UserSession
		return nil
	})
}

func (m *persistenceManagerImpl) ListUserSessions(
	ctxt context.Context, filter UserSessionFilter, page PageRequest,
) ([]common.UserSession, string, error) {
	var results []common.UserSession
	var nextCursor string
	offset := 0
	if page.Cursor != "" {
		var err error
		if offset, err = DecodeCursor(page.Cursor); err != nil {
			return nil, "", err
		}
	}
	return results, nextCursor, m.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&userSession{})
		if filter.UserID != "" {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.ParentID != "" {
			query = query.Where("parent_id = ?", filter.ParentID)
		}
		if filter.Record != nil {
			query = query.Where("record = ?", *filter.Record)
		}
		if !filter.IncludeDeleted {
			query = query.Where("deleted = ?", false)
		}
		query = query.Order("created_at desc").Order("id asc")

		var entries []userSession
		if tmp := query.Offset(offset).Limit(page.Limit + 1).Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		if len(entries) > page.Limit {
			entries = entries[:page.Limit]
			nextCursor = EncodeCursor(offset + page.Limit)
		}
		for _, entry := range entries {
			results = append(results, entry.UserSession)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateUserSession(
	ctxt context.Context, id string, patch UserSessionPatch,
) error {
	updates := patch.columns()
	if len(updates) == 0 {
		return nil
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		tmp := tx.Model(&userSession{}).Where("id = ?", id).Updates(updates)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("user-session", id).
			Debug("Updated user session projection")
		return nil
	})
}

// =====================================================================================
// Webhooks

func (m *persistenceManagerImpl) CreateWebhook(ctxt context.Context, hook common.Webhook) error {
	if err := m.validator.Struct(&hook); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := webhook{Webhook: hook}
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("webhook", hook.ID).
			WithField("event", hook.Event).
			Info("Created new webhook")
		return nil
	})
}

func (m *persistenceManagerImpl) GetWebhook(
	ctxt context.Context, id string,
) (common.Webhook, error) {
	var result common.Webhook
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry webhook
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.Webhook
		return nil
	})
}

func (m *persistenceManagerImpl) ReplaceWebhook(ctxt context.Context, hook common.Webhook) error {
	if err := m.validator.Struct(&hook); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := webhook{Webhook: hook}
		tmp := tx.Model(&webhook{}).Where("id = ?", hook.ID).Select("*").Omit("id").Updates(&entry)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("webhook", hook.ID).
			Info("Replaced webhook definition")
		return nil
	})
}

func (m *persistenceManagerImpl) SetWebhookDeleted(ctxt context.Context, id string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		tmp := tx.Model(&webhook{}).Where("id = ?", id).Update("deleted", true)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("webhook", id).
			Info("Marked webhook deleted")
		return nil
	})
}

func (m *persistenceManagerImpl) ListWebhooks(
	ctxt context.Context, filter WebhookFilter, page PageRequest,
) ([]common.Webhook, string, error) {
	var results []common.Webhook
	var nextCursor string
	offset := 0
	if page.Cursor != "" {
		var err error
		if offset, err = DecodeCursor(page.Cursor); err != nil {
			return nil, "", err
		}
	}
	return results, nextCursor, m.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&webhook{})
		if filter.UserID != "" {
			query = query.Where("user_id = ?", filter.UserID)
		}
		if filter.Event != "" {
			query = query.Where("event = ?", filter.Event)
		}
		if !filter.IncludeDeleted {
			query = query.Where("deleted = ?", false)
		}
		query = query.Order("created_at desc").Order("id asc")

		var entries []webhook
		if tmp := query.Offset(offset).Limit(page.Limit + 1).Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		if len(entries) > page.Limit {
			entries = entries[:page.Limit]
			nextCursor = EncodeCursor(offset + page.Limit)
		}
		for _, entry := range entries {
			results = append(results, entry.Webhook)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) ListSubscribedWebhooks(
	ctxt context.Context, userID, event string,
) ([]common.Webhook, error) {
	var results []common.Webhook
	return results, m.db.Transaction(func(tx *gorm.DB) error {
		var entries []webhook
		if tmp := tx.
			Where("user_id = ?", userID).
			Where("event = ?", event).
			Where("deleted = ?", false).
			Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		for _, entry := range entries {
			results = append(results, entry.Webhook)
		}
		return nil
	})
}

// =====================================================================================
// Push targets

func (m *persistenceManagerImpl) CreatePushTarget(
	ctxt context.Context, target common.PushTarget,
) error {
	if err := m.validator.Struct(&target); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := pushTarget{PushTarget: target}
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("push-target", target.ID).
			Info("Created new push target")
		return nil
	})
}

func (m *persistenceManagerImpl) GetPushTarget(
	ctxt context.Context, id string,
) (common.PushTarget, error) {
	var result common.PushTarget
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry pushTarget
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.PushTarget
		return nil
	})
}

func (m *persistenceManagerImpl) ListPushTargets(
	ctxt context.Context, userID string, page PageRequest,
) ([]common.PushTarget, string, error) {
	var results []common.PushTarget
	var nextCursor string
	offset := 0
	if page.Cursor != "" {
		var err error
		if offset, err = DecodeCursor(page.Cursor); err != nil {
			return nil, "", err
		}
	}
	return results, nextCursor, m.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&pushTarget{})
		if userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		query = query.Order("created_at desc").Order("id asc")

		var entries []pushTarget
		if tmp := query.Offset(offset).Limit(page.Limit + 1).Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		if len(entries) > page.Limit {
			entries = entries[:page.Limit]
			nextCursor = EncodeCursor(offset + page.Limit)
		}
		for _, entry := range entries {
			results = append(results, entry.PushTarget)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) UpdatePushTarget(
	ctxt context.Context, id string, patch PushTargetPatch,
) error {
	updates := patch.columns()
	if len(updates) == 0 {
		return nil
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		tmp := tx.Model(&pushTarget{}).Where("id = ?", id).Updates(updates)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("push-target", id).
			Info("Updated push target")
		return nil
	})
}

func (m *persistenceManagerImpl) DeletePushTarget(ctxt context.Context, id string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		tmp := tx.Delete(&pushTarget{}, "id = ?", id)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("push-target", id).
			Info("Deleted push target")
		return nil
	})
}

// =====================================================================================
// Object stores

func (m *persistenceManagerImpl) CreateObjectStore(
	ctxt context.Context, store common.ObjectStore,
) error {
	if err := m.validator.Struct(&store); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := objectStore{ObjectStore: store}
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("object-store", store.ID).
			Info("Registered new object store")
		return nil
	})
}

func (m *persistenceManagerImpl) GetObjectStore(
	ctxt context.Context, id string,
) (common.ObjectStore, error) {
	var result common.ObjectStore
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry objectStore
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.ObjectStore
		return nil
	})
}

func (m *persistenceManagerImpl) ListObjectStores(
	ctxt context.Context, userID string, page PageRequest,
) ([]common.ObjectStore, string, error) {
	var results []common.ObjectStore
	var nextCursor string
	offset := 0
	if page.Cursor != "" {
		var err error
		if offset, err = DecodeCursor(page.Cursor); err != nil {
			return nil, "", err
		}
	}
	return results, nextCursor, m.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&objectStore{}).Where("deleted = ?", false)
		if userID != "" {
			query = query.Where("user_id = ?", userID)
		}
		query = query.Order("created_at desc").Order("id asc")

		var entries []objectStore
		if tmp := query.Offset(offset).Limit(page.Limit + 1).Find(&entries); tmp.Error != nil {
			return tmp.Error
		}
		if len(entries) > page.Limit {
			entries = entries[:page.Limit]
			nextCursor = EncodeCursor(offset + page.Limit)
		}
		for _, entry := range entries {
			results = append(results, entry.ObjectStore)
		}
		return nil
	})
}

func (m *persistenceManagerImpl) SetObjectStoreDeleted(ctxt context.Context, id string) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		tmp := tx.Model(&objectStore{}).Where("id = ?", id).Update("deleted", true)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.
			WithFields(logTags).
			WithField("object-store", id).
			Info("Marked object store deleted")
		return nil
	})
}

// =====================================================================================
// Users and API tokens

func (m *persistenceManagerImpl) CreateUser(ctxt context.Context, entry common.User) error {
	if err := m.validator.Struct(&entry); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		row := user{User: entry}
		if tmp := tx.Create(&row); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("user", entry.ID).
			Info("Created new user")
		return nil
	})
}

func (m *persistenceManagerImpl) GetUser(ctxt context.Context, id string) (common.User, error) {
	var result common.User
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry user
		if tmp := tx.First(&entry, "id = ?", id); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.User
		return nil
	})
}

func (m *persistenceManagerImpl) UpdateUser(
	ctxt context.Context, id string, patch UserPatch,
) error {
	updates := patch.columns()
	if len(updates) == 0 {
		return nil
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		tmp := tx.Model(&user{}).Where("id = ?", id).Updates(updates)
		if tmp.Error != nil {
			return tmp.Error
		}
		if tmp.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (m *persistenceManagerImpl) CreateAPIToken(
	ctxt context.Context, token common.APIToken,
) error {
	if err := m.validator.Struct(&token); err != nil {
		return err
	}
	return m.db.Transaction(func(tx *gorm.DB) error {
		logTags := m.GetLogTagsForContext(ctxt)

		entry := apiToken{APIToken: token}
		if tmp := tx.Create(&entry); tmp.Error != nil {
			return tmp.Error
		}

		log.
			WithFields(logTags).
			WithField("user", token.UserID).
			Info("Created new API token")
		return nil
	})
}

func (m *persistenceManagerImpl) GetAPIToken(
	ctxt context.Context, token string,
) (common.APIToken, error) {
	var result common.APIToken
	return result, m.db.Transaction(func(tx *gorm.DB) error {
		var entry apiToken
		if tmp := tx.First(&entry, "id = ?", token); tmp.Error != nil {
			return tmp.Error
		}
		result = entry.APIToken
		return nil
	})
}
