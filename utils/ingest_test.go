package utils_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alwitt/livegate/utils"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func writeCatalogFile(t *testing.T, path string, endpoints []utils.IngestEndpoint) {
	assert := assert.New(t)
	content, err := json.Marshal(endpoints)
	assert.Nil(err)
	assert.Nil(os.WriteFile(path, content, 0o644))
}

func TestFileIngestCatalog(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	catalogFile := filepath.Join(t.TempDir(), "ingest.json")

	// Case 0: missing catalog file fails setup
	{
		_, err := utils.NewFileIngestCatalog(utCtxt, catalogFile)
		assert.NotNil(err)
	}

	initial := []utils.IngestEndpoint{
		{
			Region:   "lax",
			Ingest:   "rtmp://lax-ingest.example.com/live",
			Playback: "https://lax-playback.example.com/hls",
			Base:     "https://lax-cdn.example.com",
		},
		{
			Region:   "fra",
			Ingest:   "rtmp://fra-ingest.example.com/live",
			Playback: "https://fra-playback.example.com/hls",
			Base:     "https://fra-cdn.example.com",
		},
	}
	writeCatalogFile(t, catalogFile, initial)

	uut, err := utils.NewFileIngestCatalog(utCtxt, catalogFile)
	assert.Nil(err)
	defer func() {
		assert.Nil(uut.Stop(utCtxt))
	}()

	// Case 1: initial content loaded
	assert.Equal(initial, uut.Endpoints(utCtxt))
	primary, err := uut.Primary(utCtxt)
	assert.Nil(err)
	assert.Equal("lax", primary.Region)

	// Case 2: file rewrite is picked up
	updated := []utils.IngestEndpoint{
		{
			Region:   "fra",
			Ingest:   "rtmp://fra-ingest.example.com/live",
			Playback: "https://fra-playback.example.com/hls",
			Base:     "https://fra-cdn.example.com",
		},
	}
	writeCatalogFile(t, catalogFile, updated)
	assert.Eventually(func() bool {
		primary, err := uut.Primary(utCtxt)
		return err == nil && primary.Region == "fra"
	}, time.Second*5, time.Millisecond*20)

	// Case 3: a bad update keeps the previous catalog
	assert.Nil(os.WriteFile(catalogFile, []byte("not json"), 0o644))
	time.Sleep(time.Millisecond * 200)
	assert.Equal(updated, uut.Endpoints(utCtxt))
}

func TestFileIngestCatalogEmpty(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	catalogFile := filepath.Join(t.TempDir(), "ingest.json")
	writeCatalogFile(t, catalogFile, []utils.IngestEndpoint{})

	uut, err := utils.NewFileIngestCatalog(utCtxt, catalogFile)
	assert.Nil(err)
	defer func() {
		assert.Nil(uut.Stop(utCtxt))
	}()

	// An empty catalog has no primary endpoint
	assert.Empty(uut.Endpoints(utCtxt))
	_, err = uut.Primary(utCtxt)
	assert.NotNil(err)
}
