package utils

import (
	"context"
	"errors"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/bradfitz/gomemcache/memcache"
)

// StreamLookupCache cache mapping media server stream names to stream record IDs.
//
// Sits in front of the DB on the ingest hook path, where the media server
// re-resolves the same names on every segment push.
type StreamLookupCache interface {
	/*
		CacheStreamID record the stream record ID a media server stream name maps to

			@param ctxt context.Context - execution context
			@param name string - media server stream name
			@param streamID string - stream record ID
			@param ttl time.Duration - cache entry lifetime
	*/
	CacheStreamID(ctxt context.Context, name, streamID string, ttl time.Duration) error

	/*
		GetStreamID fetch the stream record ID a media server stream name maps to

			@param ctxt context.Context - execution context
			@param name string - media server stream name
			@returns the stream record ID
	*/
	GetStreamID(ctxt context.Context, name string) (string, error)

	/*
		PurgeStreamID drop the cached mapping of a media server stream name

			@param ctxt context.Context - execution context
			@param name string - media server stream name
	*/
	PurgeStreamID(ctxt context.Context, name string) error
}

/*
IsCacheMiss whether an error indicates a lookup cache miss

	@param err error - error returned by a cache call
	@return true if the error is a cache miss
*/
func IsCacheMiss(err error) bool {
	return errors.Is(err, memcache.ErrCacheMiss)
}

// memcachedLookupCacheImpl implements StreamLookupCache
type memcachedLookupCacheImpl struct {
	goutils.Component
	client *memcache.Client
}

/*
NewMemcachedStreamLookupCache define new memcached stream lookup cache

	@param servers []string - list of memcached servers to connect to
	@returns new StreamLookupCache
*/
func NewMemcachedStreamLookupCache(servers []string) (StreamLookupCache, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "stream-lookup-cache",
		"instance":  "memcached",
		"servers":   servers,
	}

	// Define memcached client
	mc := memcache.New(servers...)
	if err := mc.Ping(); err != nil {
		log.WithError(err).WithFields(logTags).Error("Server Up check failed")
		return nil, err
	}

	return &memcachedLookupCacheImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, client: mc,
	}, nil
}

func (c *memcachedLookupCacheImpl) CacheStreamID(
	ctxt context.Context, name, streamID string, ttl time.Duration,
) error {
	logTags := c.GetLogTagsForContext(ctxt)
	entry := &memcache.Item{
		Key: name, Value: []byte(streamID), Expiration: int32(ttl.Seconds()),
	}
	if err := c.client.Set(entry); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("stream-name", name).
			Error("Stream name mapping failed to cache")
		return err
	}
	log.
		WithFields(logTags).
		WithField("stream-name", name).
		WithField("stream", streamID).
		Debug("Cached stream name mapping")
	return nil
}

func (c *memcachedLookupCacheImpl) GetStreamID(
	ctxt context.Context, name string,
) (string, error) {
	entry, err := c.client.Get(name)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			log.
				WithError(err).
				WithFields(c.GetLogTagsForContext(ctxt)).
				WithField("stream-name", name).
				Error("Stream name mapping read failed")
		}
		return "", err
	}
	return string(entry.Value), nil
}

func (c *memcachedLookupCacheImpl) PurgeStreamID(ctxt context.Context, name string) error {
	if err := c.client.Delete(name); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		log.
			WithError(err).
			WithFields(c.GetLogTagsForContext(ctxt)).
			WithField("stream-name", name).
			Error("Stream name mapping purge failed")
		return err
	}
	return nil
}
