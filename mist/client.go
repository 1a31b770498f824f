package mist

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/alwitt/goutils"
	"github.com/alwitt/livegate/common"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
)

// Client media server node API client
type Client interface {
	/*
		ListActiveStreams list names of streams currently live on a media server node

			@param ctxt context.Context - execution context
			@param host string - media server node host
			@returns active stream names
	*/
	ListActiveStreams(ctxt context.Context, host string) ([]string, error)

	/*
		TerminateStream kill one live stream on a media server node.

		Drops the ingest sessions of the stream and nukes its buffers.

			@param ctxt context.Context - execution context
			@param host string - media server node host
			@param name string - media server stream name
	*/
	TerminateStream(ctxt context.Context, host, name string) error
}

// apiCommand one media server API command envelope
type apiCommand map[string]interface{}

// apiResponse media server API response envelope
type apiResponse struct {
	Authorize struct {
		Status    string `json:"status"`
		Challenge string `json:"challenge"`
	} `json:"authorize"`
	ActiveStreams []string `json:"active_streams"`
}

// restClientImpl implements Client
type restClientImpl struct {
	goutils.Component
	config   common.MistConfig
	password string
	client   *resty.Client
}

/*
NewClient define a new media server API client

	@param config common.MistConfig - media server client settings
	@param password string - media server API password
	@param httpClient *resty.Client - HTTP client to use
	@return new client
*/
func NewClient(
	config common.MistConfig, password string, httpClient *resty.Client,
) (Client, error) {
	return &restClientImpl{
		Component: goutils.Component{
			LogTags: log.Fields{"module": "mist", "component": "api-client"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		config:   config,
		password: password,
		client:   httpClient,
	}, nil
}

// apiURL API endpoint of one media server node
func (c *restClientImpl) apiURL(host string) string {
	return fmt.Sprintf("http://%s:%d/api2", host, c.config.APIPort)
}

// call send one command to a media server node
func (c *restClientImpl) call(
	ctxt context.Context, host string, command apiCommand,
) (apiResponse, error) {
	var parsed apiResponse
	encoded, err := json.Marshal(command)
	if err != nil {
		return parsed, err
	}
	resp, err := c.client.R().
		SetContext(ctxt).
		SetQueryParam("command", string(encoded)).
		SetResult(&parsed).
		Get(c.apiURL(host))
	if err != nil {
		return parsed, err
	}
	if !resp.IsSuccess() {
		return parsed, fmt.Errorf("media server API call returned %d", resp.StatusCode())
	}
	return parsed, nil
}

// authorize build the authorize block answering a challenge.
//
// The media server expects MD5(MD5(password) + challenge).
func (c *restClientImpl) authorize(challenge string) map[string]interface{} {
	inner := md5.Sum([]byte(c.password))
	outer := md5.Sum([]byte(hex.EncodeToString(inner[:]) + challenge))
	return map[string]interface{}{
		"username": c.config.Username,
		"password": hex.EncodeToString(outer[:]),
	}
}

// authedCall send one command, answering the auth challenge when demanded
func (c *restClientImpl) authedCall(
	ctxt context.Context, host string, command apiCommand,
) (apiResponse, error) {
	resp, err := c.call(ctxt, host, command)
	if err != nil {
		return resp, err
	}
	if resp.Authorize.Status != "CHALL" {
		return resp, nil
	}
	command["authorize"] = c.authorize(resp.Authorize.Challenge)
	resp, err = c.call(ctxt, host, command)
	if err != nil {
		return resp, err
	}
	if resp.Authorize.Status == "NOACC" || resp.Authorize.Status == "CHALL" {
		return resp, fmt.Errorf("media server rejected API credentials")
	}
	return resp, nil
}

func (c *restClientImpl) ListActiveStreams(
	ctxt context.Context, host string,
) ([]string, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	resp, err := c.authedCall(ctxt, host, apiCommand{"active_streams": []string{}})
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("mist-host", host).
			Error("Active stream listing failed")
		return nil, err
	}
	return resp.ActiveStreams, nil
}

func (c *restClientImpl) TerminateStream(ctxt context.Context, host, name string) error {
	logTags := c.GetLogTagsForContext(ctxt)

	if _, err := c.authedCall(ctxt, host, apiCommand{
		"stop_sessions": name, "nuke_stream": name,
	}); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("mist-host", host).
			WithField("stream-name", name).
			Error("Stream terminate failed")
		return err
	}

	log.
		WithFields(logTags).
		WithField("mist-host", host).
		WithField("stream-name", name).
		Info("Terminated live stream")
	return nil
}
