package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/alwitt/livegate/db"
	"github.com/gorilla/mux"
)

// methodHandlers DICT of method-endpoint handler
type methodHandlers map[string]http.HandlerFunc

// registerPathPrefix registers new method handler for a path prefix
func registerPathPrefix(parent *mux.Router, prefix string, handler methodHandlers) *mux.Router {
	router := parent.PathPrefix(prefix).Subrouter()
	for method, handler := range handler {
		router.Methods(method).Path("").HandlerFunc(handler)
	}
	return router
}

// ErrorResponse API error body
type ErrorResponse struct {
	// Errors the reasons the request failed
	Errors []string `json:"errors"`
}

// errorResponse map an error to its response code and body
func errorResponse(err error) (int, ErrorResponse) {
	if apiErr, ok := control.AsAPIError(err); ok {
		return apiErr.Code, ErrorResponse{Errors: apiErr.Reasons}
	}
	return http.StatusInternalServerError, ErrorResponse{Errors: []string{err.Error()}}
}

// callerContextKey context key the auth middleware stores the caller under
type callerContextKey struct{}

// callerFromRequest fetch the authenticated caller resolved by the auth middleware
func callerFromRequest(r *http.Request) (common.Caller, bool) {
	caller, ok := r.Context().Value(callerContextKey{}).(common.Caller)
	return caller, ok
}

// parsePageRequest read the cursor and limit query parameters of a list request
func parsePageRequest(r *http.Request, config common.StreamManagementConfig) db.PageRequest {
	query := r.URL.Query()
	page := db.PageRequest{
		Cursor: query.Get("cursor"),
		Limit:  int(config.DefaultPageSize),
	}
	if rawLimit := query.Get("limit"); rawLimit != "" {
		if limit, err := strconv.Atoi(rawLimit); err == nil && limit > 0 {
			page.Limit = limit
		}
	}
	if page.Limit > int(config.MaxPageSize) {
		page.Limit = int(config.MaxPageSize)
	}
	return page
}

// nextPageHeaders Link header pointing at the next page of the current request
func nextPageHeaders(r *http.Request, cursor string) map[string]string {
	if cursor == "" {
		return nil
	}
	next := *r.URL
	query := next.Query()
	query.Set("cursor", cursor)
	next.RawQuery = query.Encode()
	target := next.String()
	if next.Host == "" && r.Host != "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		target = fmt.Sprintf("%s://%s%s", scheme, r.Host, next.RequestURI())
	}
	return map[string]string{"Link": fmt.Sprintf("<%s>; rel=\"next\"", target)}
}

// boolQueryParam read an optional boolean query parameter
func boolQueryParam(values url.Values, name string) *bool {
	raw := values.Get(name)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &parsed
}
