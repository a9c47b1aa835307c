// launching the server, staging janitor and kafka producer
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ds124wfegd/gif-overlay/config"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/cloudinary"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/kafka"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/metrics"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/storage"
	"github.com/ds124wfegd/gif-overlay/internal/pkg/transform"
	"github.com/ds124wfegd/gif-overlay/internal/service"
	"github.com/ds124wfegd/gif-overlay/internal/transport"
	"github.com/ds124wfegd/gif-overlay/internal/worker"
)

type Server struct {
	httpServer *http.Server
}

func NewHTTPServer(cfg *config.Config, handler http.Handler) *Server {
	return &Server{httpServer: &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}}
}

// writeTimeout covers reading the upload body within server.timeout and the
// provider call after it, so a slow but successful upload still gets its reply.
func writeTimeout(cfg *config.Config) time.Duration {
	return cfg.Server.Timeout + cfg.Cloudinary.UploadTimeout
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func configureLogging(cfg *config.Config) {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NewServer wires the pipeline and blocks until SIGINT/SIGTERM or a fatal
// component error.
func NewServer(cfg *config.Config) error {

	configureLogging(cfg)

	m := metrics.New()
	fileStorage := storage.NewFileStorage(cfg.App.UploadDir)

	uploader, err := cloudinary.NewUploader(cloudinary.Config{
		CloudName:     cfg.Cloudinary.CloudName,
		APIKey:        cfg.Cloudinary.APIKey,
		APISecret:     cfg.Cloudinary.APISecret,
		Folder:        cfg.Cloudinary.Folder,
		UploadTimeout: cfg.Cloudinary.UploadTimeout,
	})
	if err != nil {
		return err
	}

	builder, err := transform.NewBuilder(transform.Options{
		CloudName:  cfg.Cloudinary.CloudName,
		APIKey:     cfg.Cloudinary.APIKey,
		APISecret:  cfg.Cloudinary.APISecret,
		FontFamily: cfg.Cloudinary.FontFamily,
	})
	if err != nil {
		return err
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer func() {
		if err := producer.Close(); err != nil {
			logrus.Errorf("error occured on closing kafka producer: %s", err.Error())
		}
	}()

	overlayService := service.NewOverlayService(fileStorage, uploader, builder, producer, m)
	overlayHandler := transport.NewOverlayHandler(overlayService, m, cfg.MaxUploadBytes())
	janitor := worker.NewStagingJanitor(fileStorage, m, cfg.App.JanitorInterval, cfg.App.StaleFileAge)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	srv := NewHTTPServer(cfg, transport.InitRoutes(overlayHandler, m))

	g.Go(func() error {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("error occured while running http server: %s", err.Error())
			return err
		}
		return nil
	})

	g.Go(func() error {
		janitor.Start(ctx)
		return nil
	})

	logrus.Printf("App Started on port %s", cfg.Server.Port)

	g.Go(func() error {
		<-ctx.Done()
		logrus.Print("App Shutting Down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("error occured on server shutting down: %s", err.Error())
			return err
		}
		return nil
	})

	return g.Wait()
}
