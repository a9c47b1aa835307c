// entry point to app :)
package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/gif-overlay/config"
	"github.com/ds124wfegd/gif-overlay/internal/appServer"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(config.GetEnv("ENV_FILE", ".env")); err != nil {
		logrus.Debugf("No .env file loaded: %s", err.Error())
	}

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	if err := appServer.NewServer(cfg); err != nil {
		logrus.Fatalf("Server stopped with error: %s", err.Error())
	}
}
