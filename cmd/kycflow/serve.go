package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kycflow/internal/db"
	"kycflow/internal/facematch"
	"kycflow/internal/metrics"
	"kycflow/internal/server"
	"kycflow/internal/storage"
	"kycflow/internal/store"
	"kycflow/internal/submission"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validateServeConfig(config); err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx, config)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	s3Client := storage.NewS3Client(awsConfig, config.S3Endpoint, config.S3UsePathStyle)
	objects := storage.NewS3Storage(s3Client, config.S3BucketName, time.Duration(config.S3TimeoutSec)*time.Second)

	if err := objects.Ping(ctx); err != nil {
		logger.WithError(err).WithField("bucket", config.S3BucketName).Warn("object storage is not reachable")
	} else {
		logger.WithField("bucket", config.S3BucketName).Info("object storage reachable")
	}

	submissions := store.NewSubmissionRepository(pool, time.Duration(config.QueryTimeoutSec)*time.Second)

	comparator := facematch.NewClient(
		config.FaceMatchHost,
		config.FaceMatchThreshold,
		time.Duration(config.FaceMatchTimeoutMillis)*time.Millisecond,
		m,
	)
	logger.WithField("threshold", comparator.Threshold()).Info("face match client configured")

	svc := submission.NewService(logger, config.ErrorEntity, objects, submissions, comparator, m)

	var jwkCache *jwk.Cache
	if config.AuthJWKSURL != "" {
		jwkCache, err = jwk.NewCache(ctx, httprc.NewClient())
		if err != nil {
			return fmt.Errorf("failed to initialize jwk cache: %w", err)
		}

		if err := jwkCache.Register(ctx, config.AuthJWKSURL); err != nil {
			return fmt.Errorf("failed to register jwks url with cache: %w", err)
		}
	}

	srv, err := server.New(
		config,
		logger,
		svc,
		jwkCache,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
