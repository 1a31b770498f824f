package control

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/db"
	"github.com/alwitt/livegate/utils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// NewWebhookRequest parameters for registering a new webhook
type NewWebhookRequest struct {
	// Name display name
	Name string `json:"name" validate:"required"`
	// Event event name to subscribe to
	Event string `json:"event" validate:"required"`
	// URL endpoint notifications are delivered to
	URL string `json:"url" validate:"required"`
	// Blocking whether hook style invocations wait for the endpoint. Defaults to
	// true when absent.
	Blocking *bool `json:"blocking"`
}

// NewObjectStoreRequest parameters for registering a new object store
type NewObjectStoreRequest struct {
	// URL s3+https style storage URL
	URL string `json:"url" validate:"required"`
	// PublicURL base URL recordings stored here are served from
	PublicURL string `json:"publicUrl"`
	// SkipProbe skip the reachability probe against the store
	SkipProbe bool `json:"skipProbe"`
}

// RegistryManager manages webhooks, push targets and object stores
type RegistryManager interface {
	/*
		CreateWebhook register a new webhook

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param request NewWebhookRequest - webhook parameters
			@returns the new webhook
	*/
	CreateWebhook(
		ctxt context.Context, caller common.Caller, request NewWebhookRequest,
	) (common.Webhook, error)

	/*
		GetWebhook retrieve one webhook

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - webhook ID
			@returns the webhook
	*/
	GetWebhook(ctxt context.Context, caller common.Caller, id string) (common.Webhook, error)

	/*
		ReplaceWebhook overwrite one webhook with a new definition

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - webhook ID
			@param request NewWebhookRequest - the new definition
			@returns the updated webhook
	*/
	ReplaceWebhook(
		ctxt context.Context, caller common.Caller, id string, request NewWebhookRequest,
	) (common.Webhook, error)

	/*
		DeleteWebhook soft delete one webhook

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - webhook ID
	*/
	DeleteWebhook(ctxt context.Context, caller common.Caller, id string) error

	/*
		ListWebhooks list webhooks visible to the caller

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param filter db.WebhookFilter - selection criteria
			@param page db.PageRequest - pagination request
			@returns one page of webhooks, and the continuation cursor if more remain
	*/
	ListWebhooks(
		ctxt context.Context, caller common.Caller, filter db.WebhookFilter, page db.PageRequest,
	) ([]common.Webhook, string, error)

	/*
		CreatePushTarget register a new push target

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param spec common.PushTargetSpec - target definition
			@returns the new push target
	*/
	CreatePushTarget(
		ctxt context.Context, caller common.Caller, spec common.PushTargetSpec,
	) (common.PushTarget, error)

	/*
		GetPushTarget retrieve one push target

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - push target ID
			@returns the push target
	*/
	GetPushTarget(ctxt context.Context, caller common.Caller, id string) (common.PushTarget, error)

	/*
		ListPushTargets list push targets owned by the caller

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param userID string - owner to list for, admin only when not the caller
			@param page db.PageRequest - pagination request
			@returns one page of push targets, and the continuation cursor if more remain
	*/
	ListPushTargets(
		ctxt context.Context, caller common.Caller, userID string, page db.PageRequest,
	) ([]common.PushTarget, string, error)

	/*
		DeletePushTarget remove one push target

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param id string - push target ID
	*/
	DeletePushTarget(ctxt context.Context, caller common.Caller, id string) error

	/*
		CreateObjectStore register a new object store. Unless skipped, the store is
		probed for reachability first.

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param request NewObjectStoreRequest - store parameters
			@returns the new object store
	*/
	CreateObjectStore(
		ctxt context.Context, caller common.Caller, request NewObjectStoreRequest,
	) (common.ObjectStore, error)

	/*
		ListObjectStores list object stores owned by the caller

			@param ctxt context.Context - execution context
			@param caller common.Caller - authenticated caller
			@param userID string - owner to list for, admin only when not the caller
			@param page db.PageRequest - pagination request
			@returns one page of stores, and the continuation cursor if more remain
	*/
	ListObjectStores(
		ctxt context.Context, caller common.Caller, userID string, page db.PageRequest,
	) ([]common.ObjectStore, string, error)
}

// registryManagerImpl implements RegistryManager
type registryManagerImpl struct {
	goutils.Component
	db        db.PersistenceManager
	probe     utils.ObjectStoreProbe
	validator *validator.Validate
}

/*
NewRegistryManager define a new registry manager

	@param dbClient db.PersistenceManager - persistence manager
	@param probe utils.ObjectStoreProbe - object store reachability probe, optional
	@returns new manager
*/
func NewRegistryManager(
	dbClient db.PersistenceManager, probe utils.ObjectStoreProbe,
) (RegistryManager, error) {
	return &registryManagerImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "control", "component": "registry-manager"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:        dbClient,
		probe:     probe,
		validator: validator.New(),
	}, nil
}

// buildWebhook validate a webhook definition and fill in defaults
func (m *registryManagerImpl) buildWebhook(
	caller common.Caller, id string, request NewWebhookRequest,
) (common.Webhook, error) {
	if err := m.validator.Struct(&request); err != nil {
		return common.Webhook{}, NewAPIError(http.StatusUnprocessableEntity, err.Error())
	}
	parsed, err := url.Parse(request.URL)
	if err != nil {
		return common.Webhook{}, NewAPIError(http.StatusBadRequest, "could not parse url")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return common.Webhook{}, NewAPIError(
			http.StatusNotAcceptable, "url provided should be http or https only",
		)
	}
	blocking := true
	if request.Blocking != nil {
		blocking = *request.Blocking
	}
	return common.Webhook{
		ID:       id,
		UserID:   caller.UserID,
		Name:     request.Name,
		Kind:     "webhook",
		URL:      request.URL,
		Event:    request.Event,
		Blocking: blocking,
	}, nil
}

func (m *registryManagerImpl) CreateWebhook(
	ctxt context.Context, caller common.Caller, request NewWebhookRequest,
) (common.Webhook, error) {
	hook, err := m.buildWebhook(caller, uuid.NewString(), request)
	if err != nil {
		return common.Webhook{}, err
	}
	if err := m.db.CreateWebhook(ctxt, hook); err != nil {
		log.
			WithError(err).
			WithFields(m.GetLogTagsForContext(ctxt)).
			Error("Webhook creation failed")
		return common.Webhook{}, err
	}
	return hook, nil
}

func (m *registryManagerImpl) GetWebhook(
	ctxt context.Context, caller common.Caller, id string,
) (common.Webhook, error) {
	hook, err := m.db.GetWebhook(ctxt, id)
	if err != nil {
		return common.Webhook{}, NewAPIError(http.StatusNotFound, "not found")
	}
	if (hook.Deleted || !caller.IsAuthorized(hook.UserID)) && !caller.Admin {
		return common.Webhook{}, NewAPIError(http.StatusNotFound, "not found")
	}
	return hook, nil
}

func (m *registryManagerImpl) ReplaceWebhook(
	ctxt context.Context, caller common.Caller, id string, request NewWebhookRequest,
) (common.Webhook, error) {
	existing, err := m.GetWebhook(ctxt, caller, id)
	if err != nil {
		return common.Webhook{}, err
	}
	hook, err := m.buildWebhook(caller, id, request)
	if err != nil {
		return common.Webhook{}, err
	}
	// Ownership does not move on replace
	hook.UserID = existing.UserID
	hook.CreatedAt = existing.CreatedAt
	if err := m.db.ReplaceWebhook(ctxt, hook); err != nil {
		return common.Webhook{}, err
	}
	return hook, nil
}

func (m *registryManagerImpl) DeleteWebhook(
	ctxt context.Context, caller common.Caller, id string,
) error {
	if _, err := m.GetWebhook(ctxt, caller, id); err != nil {
		return err
	}
	return m.db.SetWebhookDeleted(ctxt, id)
}

func (m *registryManagerImpl) ListWebhooks(
	ctxt context.Context, caller common.Caller, filter db.WebhookFilter, page db.PageRequest,
) ([]common.Webhook, string, error) {
	if !caller.Admin {
		filter.UserID = caller.UserID
		filter.IncludeDeleted = false
	}
	return m.db.ListWebhooks(ctxt, filter, page)
}

func (m *registryManagerImpl) CreatePushTarget(
	ctxt context.Context, caller common.Caller, spec common.PushTargetSpec,
) (common.PushTarget, error) {
	if err := m.validator.Struct(&spec); err != nil {
		return common.PushTarget{}, NewAPIError(http.StatusUnprocessableEntity, err.Error())
	}
	parsed, err := url.Parse(spec.URL)
	if err != nil || (parsed.Scheme != "rtmp" && parsed.Scheme != "rtmps") {
		return common.PushTarget{}, NewAPIError(
			http.StatusUnprocessableEntity, "push target URL must be rtmp or rtmps",
		)
	}
	name := spec.Name
	if name == "" {
		name = parsed.Host
	}
	target := common.PushTarget{
		ID:     uuid.NewString(),
		UserID: caller.UserID,
		Name:   name,
		URL:    spec.URL,
	}
	if err := m.db.CreatePushTarget(ctxt, target); err != nil {
		return common.PushTarget{}, err
	}
	return target, nil
}

func (m *registryManagerImpl) GetPushTarget(
	ctxt context.Context, caller common.Caller, id string,
) (common.PushTarget, error) {
	target, err := m.db.GetPushTarget(ctxt, id)
	if err != nil || !caller.IsAuthorized(target.UserID) {
		return common.PushTarget{}, NewAPIError(http.StatusNotFound, "not found")
	}
	return target, nil
}

func (m *registryManagerImpl) ListPushTargets(
	ctxt context.Context, caller common.Caller, userID string, page db.PageRequest,
) ([]common.PushTarget, string, error) {
	if !caller.Admin || userID == "" {
		userID = caller.UserID
	}
	return m.db.ListPushTargets(ctxt, userID, page)
}

func (m *registryManagerImpl) DeletePushTarget(
	ctxt context.Context, caller common.Caller, id string,
) error {
	if _, err := m.GetPushTarget(ctxt, caller, id); err != nil {
		return err
	}
	return m.db.DeletePushTarget(ctxt, id)
}

func (m *registryManagerImpl) CreateObjectStore(
	ctxt context.Context, caller common.Caller, request NewObjectStoreRequest,
) (common.ObjectStore, error) {
	if err := m.validator.Struct(&request); err != nil {
		return common.ObjectStore{}, NewAPIError(http.StatusUnprocessableEntity, err.Error())
	}
	if m.probe != nil && !request.SkipProbe {
		if err := m.probe.Probe(ctxt, request.URL); err != nil {
			return common.ObjectStore{}, NewAPIError(
				http.StatusBadRequest, "object store is not reachable",
			)
		}
	}
	store := common.ObjectStore{
		ID:        uuid.NewString(),
		UserID:    caller.UserID,
		URL:       request.URL,
		PublicURL: request.PublicURL,
	}
	if err := m.db.CreateObjectStore(ctxt, store); err != nil {
		return common.ObjectStore{}, err
	}
	return store, nil
}

func (m *registryManagerImpl) ListObjectStores(
	ctxt context.Context, caller common.Caller, userID string, page db.PageRequest,
) ([]common.ObjectStore, string, error) {
	if !caller.Admin || userID == "" {
		userID = caller.UserID
	}
	return m.db.ListObjectStores(ctxt, userID, page)
}
