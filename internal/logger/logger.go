package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/jobgyani/job-alerts/pkg/loki"
	log "github.com/sirupsen/logrus"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb        = "db"
	ErrorTypeCache     = "cache"
	ErrorTypeOriginApi = "origin_api"
	ErrorTypeMailer    = "mailer"
)

// Config for the logging stack. Loki shipping is enabled only when URL is set.
type Config struct {
	Level      string
	AppName    string
	OutputFile string
	LokiURL    string
	LokiUser   string
	LokiPass   string
}

var logFile *os.File

func Setup(ctx context.Context, cfg Config) {

	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
			log.Fatalf("failed to create log directory: %v", err)
		}

		var err error
		logFile, err = os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		log.SetOutput(io.MultiWriter(os.Stdout, logFile))
	}

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	})

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	addPrometheusHook()

	if cfg.LokiURL != "" {
		err := addLokiHook(ctx, loki.Config{
			URL:      cfg.LokiURL,
			Username: cfg.LokiUser,
			Password: cfg.LokiPass,
			Labels:   map[string]string{"app": cfg.AppName},
		}, log.InfoLevel)
		if err != nil {
			log.Errorf("failed to enable loki logging: %v", err)
		}
	}
}

func Cleanup() {
	if logFile != nil {
		_ = logFile.Close()
	}
}
