package main

import (
	"context"
	"fmt"
	"time"

	"kycflow/internal/db"
	"kycflow/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply the database schema and create the document bucket",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "skip-bucket",
			Usage: "Only migrate the database",
		},
	},
	Action: func(c *cli.Context) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		logger := logrus.New()

		pool, err := db.Connect(ctx, config)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		if err := db.Migrate(ctx, pool, logger); err != nil {
			return err
		}

		if c.Bool("skip-bucket") || config.S3BucketName == "" {
			return nil
		}

		awsConfig, err := loadAWSConfig(ctx, config)
		if err != nil {
			return err
		}

		objects := storage.NewS3Storage(
			storage.NewS3Client(awsConfig, config.S3Endpoint, config.S3UsePathStyle),
			config.S3BucketName,
			time.Duration(config.S3TimeoutSec)*time.Second,
		)

		created, err := objects.EnsureBucket(ctx)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"bucket":  config.S3BucketName,
			"created": created,
		}).Info("bucket ready")

		return nil
	},
}
