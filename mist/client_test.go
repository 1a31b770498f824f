package mist_test

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/mist"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
)

const (
	testMistHost     = "mist-0.example.com"
	testMistUser     = "ut-admin"
	testMistPassword = "ut-password"
)

// challengeAnswer the digest the media server expects for a challenge
func challengeAnswer(password, challenge string) string {
	inner := md5.Sum([]byte(password))
	outer := md5.Sum([]byte(hex.EncodeToString(inner[:]) + challenge))
	return hex.EncodeToString(outer[:])
}

// mistResponder fake media server API answering the challenge auth flow
func mistResponder(
	t *testing.T, challenge string, handle func(command map[string]interface{}) map[string]interface{},
) httpmock.Responder {
	assert := assert.New(t)
	return func(req *http.Request) (*http.Response, error) {
		var command map[string]interface{}
		assert.Nil(json.Unmarshal([]byte(req.URL.Query().Get("command")), &command))

		auth, ok := command["authorize"].(map[string]interface{})
		if !ok {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"authorize": map[string]interface{}{
					"status": "CHALL", "challenge": challenge,
				},
			})
		}
		assert.Equal(testMistUser, auth["username"])
		if auth["password"] != challengeAnswer(testMistPassword, challenge) {
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"authorize": map[string]interface{}{"status": "NOACC"},
			})
		}
		body := handle(command)
		body["authorize"] = map[string]interface{}{"status": "OK"}
		return httpmock.NewJsonResponse(http.StatusOK, body)
	}
}

func TestMistListActiveStreams(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	httpClient := resty.New()
	httpmock.ActivateNonDefault(httpClient.GetClient())
	defer httpmock.DeactivateAndReset()

	uut, err := mist.NewClient(common.MistConfig{
		APIPort: 4242, Username: testMistUser, RequestTimeoutInSec: 5,
	}, testMistPassword, httpClient)
	assert.Nil(err)

	// Case 0: challenge answered and active streams returned
	httpmock.RegisterResponder(
		"GET",
		"http://mist-0.example.com:4242/api2",
		mistResponder(t, "ut-challenge", func(command map[string]interface{}) map[string]interface{} {
			_, present := command["active_streams"]
			assert.True(present)
			return map[string]interface{}{
				"active_streams": []string{"video+abcd1234", "video+wxyz9876"},
			}
		}),
	)

	names, err := uut.ListActiveStreams(utCtxt, testMistHost)
	assert.Nil(err)
	assert.Equal([]string{"video+abcd1234", "video+wxyz9876"}, names)

	// Case 1: wrong credentials are reported
	{
		badClient := resty.New()
		httpmock.ActivateNonDefault(badClient.GetClient())
		bad, err := mist.NewClient(common.MistConfig{
			APIPort: 4242, Username: testMistUser, RequestTimeoutInSec: 5,
		}, "wrong-password", badClient)
		assert.Nil(err)

		_, err = bad.ListActiveStreams(utCtxt, testMistHost)
		assert.NotNil(err)
	}
}

func TestMistTerminateStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)
	utCtxt := context.Background()

	httpClient := resty.New()
	httpmock.ActivateNonDefault(httpClient.GetClient())
	defer httpmock.DeactivateAndReset()

	uut, err := mist.NewClient(common.MistConfig{
		APIPort: 4242, Username: testMistUser, RequestTimeoutInSec: 5,
	}, testMistPassword, httpClient)
	assert.Nil(err)

	// Case 0: terminate drops the sessions and nukes the stream buffers
	var seen map[string]interface{}
	httpmock.RegisterResponder(
		"GET",
		"http://mist-0.example.com:4242/api2",
		mistResponder(t, "ut-challenge", func(command map[string]interface{}) map[string]interface{} {
			seen = command
			return map[string]interface{}{}
		}),
	)

	assert.Nil(uut.TerminateStream(utCtxt, testMistHost, "video+abcd1234"))
	assert.Equal("video+abcd1234", seen["stop_sessions"])
	assert.Equal("video+abcd1234", seen["nuke_stream"])

	// Case 1: API failure is reported
	httpmock.RegisterResponder(
		"GET",
		"http://mist-0.example.com:4242/api2",
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"),
	)
	assert.NotNil(uut.TerminateStream(utCtxt, testMistHost, "video+abcd1234"))
}
