package common_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/alwitt/livegate/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestGatewayNodeConfig(t *testing.T) {
	assert := assert.New(t)

	validate := validator.New()

	// Case 0: by default the config is not valid
	{
		cfg := common.GatewayConfig{}
		assert.NotNil(validate.Struct(&cfg))
	}

	// Install defaults
	common.InstallDefaultGatewayConfigValues()

	{
		_, err := os.Create("/tmp/ingest_catalog.json")
		assert.Nil(err)
		_, err = os.Create("/tmp/psql_ca.pem")
		assert.Nil(err)
	}

	viper.SetConfigType("yaml")

	// Case 1: a complete valid case
	{
		config := []byte(`---
postgres:
  host: postgres
  db: postgres
  user: postgres
  ssl:
    enabled: true
    caFile: /tmp/psql_ca.pem

ingest:
  catalogFile: /tmp/ingest_catalog.json

mist:
  username: mist-admin

region:
  ownRegion: mdw
  frontendDomain: livegate.example.com

events:
  gcpProject: livegate
  pubsub:
    topic: stream-events
    msgTTL: 900`)
		assert.Nil(viper.ReadConfig(bytes.NewBuffer(config)))
		var cfg common.GatewayConfig
		assert.Nil(viper.Unmarshal(&cfg))
		err := validate.Struct(&cfg)
		assert.Nil(err)

		// Verify the some fields
		assert.Equal(60, cfg.API.Server.Timeouts.IdleTimeout)
		assert.Equal("postgres", cfg.Postgres.User)
		assert.NotNil(cfg.Postgres.SSL.CAFile)
		assert.Equal("/tmp/psql_ca.pem", *cfg.Postgres.SSL.CAFile)
		assert.Equal(uint32(300), cfg.Streams.UserSessionTimeoutInSec)
		assert.Equal(uint32(90), cfg.Streams.ActiveTimeoutInSec)
		assert.Equal("https", cfg.Region.Protocol)
		assert.Equal("stream-events", cfg.EventQueue.PubSub.Topic)
	}

	// Case 2: missing a config parameter
	{
		config := []byte(`---
postgres:
  host: postgres
  db: postgres
  user: postgres
  ssl:
    enabled: true
    caFile: /tmp/psql_ca.pem

ingest:
  catalogFile: /tmp/ingest_catalog.json

region:
  ownRegion: mdw
  frontendDomain: livegate.example.com

events:
  gcpProject: livegate
  pubsub:
    topic: stream-events
    msgTTL: 900`)
		assert.Nil(viper.ReadConfig(bytes.NewBuffer(config)))
		var cfg common.GatewayConfig
		assert.Nil(viper.Unmarshal(&cfg))
		// Media server username left unset
		err := validate.Struct(&cfg)
		assert.NotNil(err)
	}

	// Case 3: value fail constraint
	{
		config := []byte(`---
postgres:
  host: postgres
  db: postgres
  user: postgres
  ssl:
    enabled: true
    caFile: /tmp/psql_ca.pem

ingest:
  catalogFile: /tmp/ingest_catalog.json

mist:
  username: mist-admin

region:
  ownRegion: mdw
  frontendDomain: livegate.example.com
  protocol: gopher

events:
  gcpProject: livegate
  pubsub:
    topic: stream-events
    msgTTL: 900`)
		assert.Nil(viper.ReadConfig(bytes.NewBuffer(config)))
		var cfg common.GatewayConfig
		assert.Nil(viper.Unmarshal(&cfg))
		err := validate.Struct(&cfg)
		assert.NotNil(err)
	}
}
