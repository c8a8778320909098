package main

import (
	"context"
	"errors"
	"fmt"

	"kycflow/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.QueryTimeoutSec == 0 {
		c.QueryTimeoutSec = 5
	}

	return c, nil
}

// validateServeConfig checks the settings only the server needs.
func validateServeConfig(c *types.Config) error {
	var errs []error

	if c.S3BucketName == "" {
		errs = append(errs, errors.New("set S3_BUCKET_NAME"))
	}
	if c.FaceMatchHost == "" {
		errs = append(errs, errors.New("set FACE_MATCH_HOST"))
	}
	if c.FaceMatchThreshold <= 0 || c.FaceMatchThreshold > 1 {
		errs = append(errs, fmt.Errorf("FACE_MATCH_THRESHOLD must be in (0, 1], got %v", c.FaceMatchThreshold))
	}
	if c.CookieBlockKey != "" && c.CookieHashKey == "" {
		errs = append(errs, errors.New("COOKIE_BLOCK_KEY requires COOKIE_HASH_KEY"))
	}

	return errors.Join(errs...)
}

func loadAWSConfig(ctx context.Context, c *types.Config) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(c.S3Region),
	}

	if c.S3AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.S3AccessKeyID, c.S3SecretAccessKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return awsConfig, nil
}
