package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/db"
	"github.com/apex/log"
)

// APITokenAuthenticator resolves bearer API tokens into caller identities
type APITokenAuthenticator struct {
	goutils.Component
	db db.PersistenceManager
}

/*
NewAPITokenAuthenticator define a new API token authenticator

	@param dbClient db.PersistenceManager - persistence manager
	@returns new authenticator
*/
func NewAPITokenAuthenticator(dbClient db.PersistenceManager) (APITokenAuthenticator, error) {
	return APITokenAuthenticator{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "api", "component": "token-auth"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db: dbClient,
	}, nil
}

// reject write an auth failure response
func (a APITokenAuthenticator) reject(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Errors: []string{reason}})
}

/*
Middleware resolve the caller identity before passing the request on.

Requests without a valid bearer API token are rejected with 401.
*/
func (a APITokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logTags := a.GetLogTagsForContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		token := ""
		if fields := strings.SplitN(authHeader, " ", 2); len(fields) == 2 &&
			strings.EqualFold(fields[0], "Bearer") {
			token = strings.TrimSpace(fields[1])
		}
		if token == "" {
			a.reject(w, http.StatusUnauthorized, "no authorization header")
			return
		}

		entry, err := a.db.GetAPIToken(r.Context(), token)
		if err != nil || entry.Deleted {
			a.reject(w, http.StatusUnauthorized, "no token object found")
			return
		}
		user, err := a.db.GetUser(r.Context(), entry.UserID)
		if err != nil {
			log.WithError(err).WithFields(logTags).Warn("Token references missing user")
			a.reject(w, http.StatusUnauthorized, "no user found for token")
			return
		}

		caller := common.Caller{
			UserID:     user.ID,
			Admin:      user.Admin,
			AuthHeader: authHeader,
		}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), callerContextKey{}, caller),
		))
	})
}
