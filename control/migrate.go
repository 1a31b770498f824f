package control

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/db"
	"github.com/apex/log"
)

// backfillPageSize rows fetched per cursor step during backfill passes
const backfillPageSize = 100

/*
BackfillUserSessions synthesize missing user session projections.

Walks every settled, recording enabled stream session that is not superseded by
a continuation, locates its chain head, and materializes the projection the
chain should have. Safe to re-run, existing projections are skipped.
*/
func (m *streamManagerImpl) BackfillUserSessions(
	ctxt context.Context, progress func(string),
) (int, error) {
	logTags := m.GetLogTagsForContext(ctxt)
	recordOnly := true
	settledBefore := time.Now().Add(-m.streamsCfg.UserSessionTimeout()).UnixMilli()

	processed := 0
	cursor := ""
	for {
		records, nextCursor, err := m.db.ListStreamRecords(ctxt, db.StreamRecordFilter{
			SessionsOnly: true,
			Record:       &recordOnly,
			OrderAscByID: true,
		}, db.PageRequest{Cursor: cursor, Limit: backfillPageSize})
		if err != nil {
			return processed, err
		}
		// Progress keeps the long lived request alive
		progress(".")

		for _, record := range records {
			session := record.Session
			if session.RecordObjectStoreID == "" || session.PartialSession {
				continue
			}
			if session.LastSeen == 0 || session.Stats.SourceSegmentsDuration == 0 {
				continue
			}
			if session.LastSeen >= settledBefore {
				continue
			}

			chainHead := session.ID
			if len(session.PreviousSessions) > 0 {
				chainHead = session.PreviousSessions[0]
			}
			if _, err := m.db.GetUserSession(ctxt, chainHead); err == nil {
				continue
			} else if !db.IsRecordNotFound(err) {
				return processed, err
			}

			parent, err := m.db.GetParentStream(ctxt, session.ParentID)
			if err != nil {
				log.
					WithError(err).
					WithFields(logTags).
					WithField("session", session.ID).
					Warn("Skipping session with missing parent")
				continue
			}

			combined := session.Stats
			if session.PreviousStats.V != nil {
				combined = CombineStats(session.Stats, *session.PreviousStats.V)
			}
			createdAt := session.UserSessionCreatedAt
			if createdAt == 0 {
				createdAt = session.CreatedAt
			}
			projection := common.UserSession{
				ID:                  chainHead,
				UserID:              session.UserID,
				ParentID:            session.ParentID,
				Name:                session.Name,
				PlaybackID:          parent.PlaybackID,
				Profiles:            session.Profiles,
				CreatedAt:           createdAt,
				LastSeen:            session.LastSeen,
				Record:              session.Record,
				RecordObjectStoreID: session.RecordObjectStoreID,
				LastSessionID:       session.LastSessionID,
				Stats:               combined,
			}
			if err := m.db.CreateUserSession(ctxt, projection); err != nil {
				log.
					WithError(err).
					WithFields(logTags).
					WithField("session", chainHead).
					Warn("User session backfill insert failed")
				continue
			}
			processed++
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	progress("\n")
	progress(fmt.Sprintf("processed %d sessions\n", processed))
	log.WithFields(logTags).WithField("processed", processed).Info("User session backfill done")
	return processed, nil
}

/*
BackfillSessionLinks copy chain tail pointers onto user session projections.

Every recording enabled projection missing its forward link looks up the stream
record of the same ID and borrows the link from there. Safe to re-run.
*/
func (m *streamManagerImpl) BackfillSessionLinks(
	ctxt context.Context, progress func(string),
) (int, error) {
	logTags := m.GetLogTagsForContext(ctxt)
	recordOnly := true

	processed := 0
	cursor := ""
	for {
		sessions, nextCursor, err := m.db.ListUserSessions(ctxt, db.UserSessionFilter{
			Record: &recordOnly,
		}, db.PageRequest{Cursor: cursor, Limit: backfillPageSize})
		if err != nil {
			return processed, err
		}
		progress(".")

		for _, session := range sessions {
			if session.RecordObjectStoreID == "" {
				continue
			}
			if session.LastSessionID == "" {
				record, err := m.db.GetStreamRecord(ctxt, session.ID)
				if err == nil && record.IsSession() && record.Session.LastSessionID != "" {
					if err := m.db.UpdateUserSession(ctxt, session.ID, db.UserSessionPatch{
						LastSessionID: &record.Session.LastSessionID,
					}); err != nil {
						log.
							WithError(err).
							WithFields(logTags).
							WithField("session", session.ID).
							Warn("Session link backfill update failed")
					}
				}
			}
			processed++
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	progress("\n")
	progress(fmt.Sprintf("processed %d sessions\n", processed))
	log.WithFields(logTags).WithField("processed", processed).Info("Session link backfill done")
	return processed, nil
}
