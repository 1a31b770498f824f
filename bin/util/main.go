package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/alwitt/livegate/common"
	"github.com/alwitt/livegate/control"
	"github.com/apex/log"
	apexJSON "github.com/apex/log/handlers/json"
	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"
)

type newStreamList struct {
	Streams []control.NewStreamRequest `json:"streams" validate:"required,gte=1"`
}

type provisionStreamsArgs struct {
	DefinitionFile string `validate:"required,file"`
}

type cliArgs struct {
	JSONLog         bool
	LogLevel        string `validate:"required,oneof=debug info warn error"`
	APIBaseURL      string `validate:"required,url"`
	APIToken        string `validate:"required"`
	RequestIDHeader string `validate:"required"`
}

var cmdArgs cliArgs

var logTags log.Fields

var provStreamArgs provisionStreamsArgs

func main() {
	hostname, err := os.Hostname()
	if err != nil {
		log.WithError(err).Fatal("Unable to read hostname")
	}
	logTags = log.Fields{
		"module":    "main",
		"component": "main",
		"instance":  hostname,
	}

	app := &cli.App{
		Version:     "v0.1.0",
		Usage:       "application entrypoint",
		Description: "Livegate OPS support utility application",
		Flags: []cli.Flag{
			// LOGGING
			&cli.BoolFlag{
				Name:        "json-log",
				Usage:       "Whether to log in JSON format",
				Aliases:     []string{"j"},
				EnvVars:     []string{"LOG_AS_JSON"},
				Value:       false,
				DefaultText: "false",
				Destination: &cmdArgs.JSONLog,
				Required:    false,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Logging level: [debug info warn error]",
				Aliases:     []string{"l"},
				EnvVars:     []string{"LOG_LEVEL"},
				Value:       "warn",
				DefaultText: "warn",
				Destination: &cmdArgs.LogLevel,
				Required:    false,
			},
			// Gateway base URL
			&cli.StringFlag{
				Name:        "api-base-url",
				Usage:       "Livegate stream gateway API base URL",
				Aliases:     []string{"u"},
				EnvVars:     []string{"GATEWAY_API_BASE_URL"},
				Value:       "http://127.0.0.1:8080",
				DefaultText: "http://127.0.0.1:8080",
				Destination: &cmdArgs.APIBaseURL,
				Required:    false,
			},
			&cli.StringFlag{
				Name:        "api-token",
				Usage:       "Livegate API bearer token",
				Aliases:     []string{"t"},
				EnvVars:     []string{"GATEWAY_API_TOKEN"},
				Destination: &cmdArgs.APIToken,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "request-id-header",
				Usage:       "HTTP header for request ID",
				Aliases:     []string{"i"},
				EnvVars:     []string{"REQUEST_ID_HTTP_HEADER"},
				Value:       "X-Request-ID",
				DefaultText: "X-Request-ID",
				Destination: &cmdArgs.RequestIDHeader,
				Required:    false,
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "provision-streams",
				Aliases:     []string{"prov-streams"},
				Usage:       "Provision parent streams",
				Description: "Provision new parent streams in the system.",
				Flags: []cli.Flag{
					// Config file
					&cli.StringFlag{
						Name:        "definition-file",
						Usage:       "New stream definition file",
						Aliases:     []string{"c"},
						EnvVars:     []string{"DEFINITION_FILE"},
						Destination: &provStreamArgs.DefinitionFile,
						Required:    true,
					},
				},
				Action: provisionStreams,
			},
		},
	}

	err = app.Run(os.Args)
	if err != nil {
		log.WithError(err).WithFields(logTags).Fatal("Program shutdown")
	}
}

// setupLogging helper function to prepare the app logging
func setupLogging() {
	if cmdArgs.JSONLog {
		log.SetHandler(apexJSON.New(os.Stderr))
	}
	switch cmdArgs.LogLevel {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.ErrorLevel)
	}
}

// apiError condense a gateway error body into one error value
func apiError(resp *resty.Response) error {
	var errBody struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body(), &errBody); err == nil && len(errBody.Errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errBody.Errors, "; "))
	}
	return fmt.Errorf("status code %d", resp.StatusCode())
}

func provisionStreams(c *cli.Context) error {
	validate := validator.New()

	// Validate general config
	if err := validate.Struct(&cmdArgs); err != nil {
		return err
	}

	setupLogging()

	if err := validate.Struct(&provStreamArgs); err != nil {
		return err
	}

	// Process stream definition files
	var definitionFile newStreamList
	if theFile, err := os.Open(provStreamArgs.DefinitionFile); err != nil {
		return err
	} else if err := json.NewDecoder(theFile).Decode(&definitionFile); err != nil {
		return err
	}

	{
		t, _ := json.Marshal(definitionFile.Streams)
		log.WithFields(logTags).WithField("streams", string(t)).Info("Provision parent streams")
	}

	targetURL, err := url.Parse(fmt.Sprintf("%s/v1/streams", cmdArgs.APIBaseURL))
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("stream-define-url", fmt.Sprintf("%s/v1/streams", cmdArgs.APIBaseURL)).
			Error("Unable to parse stream define URL")
		return err
	}

	client := resty.New().SetAuthToken(cmdArgs.APIToken)

	reqID := ulid.Make().String()

	// Get all known parent streams
	resp, err := client.R().
		// Set request header
		SetHeader(cmdArgs.RequestIDHeader, reqID).
		SetQueryParam("streamsonly", "true").
		Get(targetURL.String())
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("request-id", reqID).
			Error("Stream query failed on call")
		return err
	}
	if resp.IsError() {
		err := apiError(resp)
		log.
			WithError(err).
			WithFields(logTags).
			WithField("request-id", reqID).
			Error("Stream query failed")
		return err
	}
	var existingStreams []common.ParentStream
	if err := json.Unmarshal(resp.Body(), &existingStreams); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to parse stream query response")
		return err
	}

	streamByName := map[string]common.ParentStream{}
	for _, stream := range existingStreams {
		streamByName[stream.Name] = stream
	}

	// Go through each stream
	for _, stream := range definitionFile.Streams {
		payload, _ := json.Marshal(&stream)
		// Check whether the stream already exist
		if _, ok := streamByName[stream.Name]; ok {
			log.
				WithFields(logTags).
				WithField("stream", string(payload)).
				Info("Parent stream already exist")
			continue
		}

		reqID = ulid.Make().String()

		// Define the missing stream
		resp, err := client.R().
			// Set request header
			SetHeader(cmdArgs.RequestIDHeader, reqID).
			// Set request payload
			SetBody(payload).
			Post(targetURL.String())

		if err != nil {
			log.
				WithError(err).
				WithFields(logTags).
				WithField("stream", string(payload)).
				WithField("request-id", reqID).
				Error("Stream define failed on call")
			return err
		}

		if resp.IsError() {
			err := apiError(resp)
			log.
				WithError(err).
				WithFields(logTags).
				WithField("stream", string(payload)).
				WithField("request-id", reqID).
				Error("Stream define failed")
			return err
		}

		log.
			WithFields(logTags).
			WithField("stream", string(payload)).
			WithField("request-id", reqID).
			Info("Parent stream defined")
	}

	return nil
}
