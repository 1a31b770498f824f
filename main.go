package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/alwitt/livegate/bin"
	"github.com/alwitt/livegate/common"
	"github.com/apex/log"
	apexJSON "github.com/apex/log/handlers/json"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

type gatewayNodeCliArgs struct {
	ConfigFile   string `validate:"required,file"`
	DBPassword   string
	MistPassword string
}

type cliArgs struct {
	JSONLog      bool
	LogLevel     string `validate:"required,oneof=debug info warn error"`
	Hostname     string
	GCPCredsFile string `validate:"required,file"`
}

var gatewayNodeArgs gatewayNodeCliArgs

var cmdArgs cliArgs

var logTags log.Fields

// @title livegate
// @version v0.1.0-rc1
// @description Live video streaming control plane

// @host localhost:8080
// @BasePath /
// @query.collection.format multi
func main() {
	hostname, err := os.Hostname()
	if err != nil {
		log.WithError(err).Fatal("Unable to read hostname")
	}
	cmdArgs.Hostname = hostname
	logTags = log.Fields{
		"module":    "main",
		"component": "main",
		"instance":  hostname,
	}

	app := &cli.App{
		Version:     "v0.1.0",
		Usage:       "application entrypoint",
		Description: "Live video stream lifecycle control plane",
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
			// GCP Cred
			&cli.PathFlag{
				Name:        "gcp-cred",
				Usage:       "Not directly used by the application, this option provides GCP cred to SDK.",
				EnvVars:     []string{"GOOGLE_APPLICATION_CREDENTIALS"},
				Destination: &cmdArgs.GCPCredsFile,
				Required:    true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "gateway",
				Aliases:     []string{"gw"},
				Usage:       "Run stream gateway node",
				Description: "Start the stream gateway node and its API servers.",
				Flags: []cli.Flag{
					// Config file
					&cli.StringFlag{
						Name:        "config-file",
						Usage:       "Application config file",
						Aliases:     []string{"c"},
						EnvVars:     []string{"CONFIG_FILE"},
						Destination: &gatewayNodeArgs.ConfigFile,
						Required:    true,
					},
					&cli.StringFlag{
						Name:        "db-password",
						Usage:       "Database user password",
						Aliases:     []string{"p"},
						EnvVars:     []string{"DB_USER_PASSWORD"},
						Value:       "",
						DefaultText: "",
						Destination: &gatewayNodeArgs.DBPassword,
						Required:    false,
					},
					&cli.StringFlag{
						Name:        "mist-password",
						Usage:       "Media server API password",
						Aliases:     []string{"m"},
						EnvVars:     []string{"MIST_API_PASSWORD"},
						Value:       "",
						DefaultText: "",
						Destination: &gatewayNodeArgs.MistPassword,
						Required:    false,
					},
				},
				Action: startGatewayNode,
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

func startGatewayNode(c *cli.Context) error {
	validate := validator.New()

	// Validate general config
	if err := validate.Struct(&cmdArgs); err != nil {
		return err
	}

	setupLogging()

	// ================================================================================
	// Process stream gateway node config
	if err := validate.Struct(&gatewayNodeArgs); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			Error("Invalid parameters provided to start stream gateway node")
		return err
	}

	// Process the config file
	common.InstallDefaultGatewayConfigValues()
	var configs common.GatewayConfig
	viper.SetConfigFile(gatewayNodeArgs.ConfigFile)
	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to load stream gateway node config")
		return err
	}
	if err := viper.Unmarshal(&configs); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to parse stream gateway node config")
		return err
	}

	// Validate stream gateway node config
	if err := validate.Struct(&configs); err != nil {
		log.WithError(err).WithFields(logTags).Error("Stream gateway node config file is not valid")
		return err
	}

	{
		t, _ := json.MarshalIndent(&configs, "", "  ")
		log.WithFields(logTags).Debugf("Running with config:\n%s", string(t))
	}

	// ================================================================================
	// Define stream gateway node

	runtimeCtxt, cancel := context.WithCancel(context.Background())
	defer cancel()

	gatewayNode, err := bin.DefineGatewayNode(
		runtimeCtxt, configs, gatewayNodeArgs.DBPassword, gatewayNodeArgs.MistPassword,
	)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define and start stream gateway node")
		return err
	}
	defer func() {
		if err := gatewayNode.Cleanup(runtimeCtxt); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failure during stream gateway clean up")
		}
	}()

	// ================================================================================
	// Start HTTP servers

	wg := sync.WaitGroup{}
	defer wg.Wait()
	apiServers := map[string]*http.Server{}

	defer func() {
		// Shutdown the servers
		for svrInstance, svr := range apiServers {
			ctx, cancel := context.WithTimeout(runtimeCtxt, time.Second*10)
			if err := svr.Shutdown(ctx); err != nil {
				log.
					WithError(err).
					WithFields(logTags).
					Errorf("Failure during HTTP Server %s shutdown", svrInstance)
			}
			cancel()
		}
	}()

	// Start gateway API HTTP server
	{
		svr := gatewayNode.APIServer
		apiServers["gateway-api"] = svr
		// Start the server
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Gateway API HTTP server failure")
			}
		}()
	}
	// Start metrics HTTP server
	{
		svr := gatewayNode.MetricsServer
		apiServers["metrics-api"] = svr
		// Start the server
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Metrics API HTTP server failure")
			}
		}()
	}

	// ------------------------------------------------------------------------------------
	// Wait for termination

	cc := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(cc, os.Interrupt)
	<-cc

	return nil
}
