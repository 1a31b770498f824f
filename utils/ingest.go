package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"
)

// IngestEndpoint one regional ingest / playback endpoint pair
type IngestEndpoint struct {
	// Region region the endpoint serves
	Region string `json:"region"`
	// Ingest RTMP ingest URL broadcasters push to
	Ingest string `json:"ingest"`
	// Playback base URL live playback is served from
	Playback string `json:"playback"`
	// Base base URL recordings are served from
	Base string `json:"base"`
}

// IngestCatalog the set of ingest endpoints this deployment advertises.
//
// Backed by a JSON file which is watched and reloaded on change.
type IngestCatalog interface {
	/*
		Endpoints all currently advertised ingest endpoints

			@param ctxt context.Context - execution context
			@returns the endpoints
	*/
	Endpoints(ctxt context.Context) []IngestEndpoint

	/*
		Primary the first advertised ingest endpoint

			@param ctxt context.Context - execution context
			@returns the endpoint
	*/
	Primary(ctxt context.Context) (IngestEndpoint, error)

	/*
		Stop end the catalog file watch loop

			@param ctxt context.Context - execution context
	*/
	Stop(ctxt context.Context) error
}

// fileIngestCatalogImpl implements IngestCatalog
type fileIngestCatalogImpl struct {
	goutils.Component
	catalogFile string
	watcher     *fsnotify.Watcher
	lock        sync.RWMutex
	endpoints   []IngestEndpoint
	workerCtxt  context.Context
	ctxtCancel  context.CancelFunc
	wg          sync.WaitGroup
}

/*
NewFileIngestCatalog define new file backed ingest endpoint catalog

	@param ctxt context.Context - execution context
	@param catalogFile string - path of the JSON catalog file
	@returns new IngestCatalog
*/
func NewFileIngestCatalog(ctxt context.Context, catalogFile string) (IngestCatalog, error) {
	logTags := log.Fields{
		"module": "utils", "component": "ingest-catalog", "catalog": catalogFile,
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to define 'fsnotify' watcher")
		return nil, err
	}
	// Watch the parent DIR so atomic rename updates are seen as well
	if err := watcher.Add(filepath.Dir(catalogFile)); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to watch catalog DIR")
		return nil, err
	}

	workerCtxt, cancel := context.WithCancel(context.Background())
	instance := &fileIngestCatalogImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		catalogFile: catalogFile,
		watcher:     watcher,
		workerCtxt:  workerCtxt,
		ctxtCancel:  cancel,
	}

	if err := instance.reload(ctxt); err != nil {
		cancel()
		return nil, err
	}

	instance.wg.Add(1)
	go instance.watchLoop()
	return instance, nil
}

// reload parse the catalog file and swap in its content
func (c *fileIngestCatalogImpl) reload(ctxt context.Context) error {
	logTags := c.GetLogTagsForContext(ctxt)

	content, err := os.ReadFile(c.catalogFile)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Catalog file read failed")
		return err
	}
	var parsed []IngestEndpoint
	if err := json.Unmarshal(content, &parsed); err != nil {
		log.WithError(err).WithFields(logTags).Error("Catalog file parse failed")
		return err
	}

	c.lock.Lock()
	c.endpoints = parsed
	c.lock.Unlock()

	log.
		WithFields(logTags).
		WithField("endpoints", len(parsed)).
		Info("Reloaded ingest endpoint catalog")
	return nil
}

func (c *fileIngestCatalogImpl) watchLoop() {
	defer c.wg.Done()
	logTags := c.GetLogTagsForContext(c.workerCtxt)

	for {
		select {
		case <-c.workerCtxt.Done():
			return

		case fsEvent, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if fsEvent.Name != c.catalogFile {
				continue
			}
			if fsEvent.Op.Has(fsnotify.Write) || fsEvent.Op.Has(fsnotify.Create) {
				// A bad update keeps the previous catalog
				_ = c.reload(c.workerCtxt)
			}

		case watchErr, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(watchErr).WithFields(logTags).Error("Catalog watch error")
		}
	}
}

func (c *fileIngestCatalogImpl) Endpoints(ctxt context.Context) []IngestEndpoint {
	c.lock.RLock()
	defer c.lock.RUnlock()
	result := make([]IngestEndpoint, len(c.endpoints))
	copy(result, c.endpoints)
	return result
}

func (c *fileIngestCatalogImpl) Primary(ctxt context.Context) (IngestEndpoint, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if len(c.endpoints) == 0 {
		return IngestEndpoint{}, fmt.Errorf("ingest endpoint catalog is empty")
	}
	return c.endpoints[0], nil
}

func (c *fileIngestCatalogImpl) Stop(ctxt context.Context) error {
	c.ctxtCancel()
	err := c.watcher.Close()
	c.wg.Wait()
	return err
}
