package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	uploadContentType = "image/jpeg"
	viewContentType   = "image/jpg"

	// ViewURLExpiry is how long a read URL handed to the comparator stays valid.
	ViewURLExpiry = time.Hour
)

// S3Storage issues presigned URLs for single objects in one bucket and
// performs direct uploads. It works against AWS S3 and MinIO alike.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	timeout time.Duration
}

// NewS3Client builds an S3 client. A non-empty endpoint points the client at
// an S3-compatible store such as MinIO.
func NewS3Client(awsConfig aws.Config, endpoint string, usePathStyle bool) *s3.Client {
	return s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = usePathStyle
	})
}

func NewS3Storage(client *s3.Client, bucket string, timeout time.Duration) *S3Storage {
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		timeout: timeout,
	}
}

// IssueUploadURL returns a URL that allows a single PUT of name until ttl
// elapses.
func (s *S3Storage) IssueUploadURL(ctx context.Context, name string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		ContentType: aws.String(uploadContentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload of %s: %w", name, err)
	}

	return req.URL, nil
}

// IssueViewURL returns a read URL for name valid for ViewURLExpiry.
func (s *S3Storage) IssueViewURL(ctx context.Context, name string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:              aws.String(s.bucket),
		Key:                 aws.String(name),
		ResponseContentType: aws.String(viewContentType),
	}, s3.WithPresignExpires(ViewURLExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign view of %s: %w", name, err)
	}

	return req.URL, nil
}

// Upload stores body under name.
func (s *S3Storage) Upload(ctx context.Context, name string, body []byte, contentType string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return nil
}

// Exists reports whether name is present in the bucket. A missing object is
// not an error.
func (s *S3Storage) Exists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object %s: %w", name, err)
	}

	return true, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (s *S3Storage) EnsureBucket(ctx context.Context) (created bool, err error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return false, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}

	return true, nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (s *S3Storage) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("failed to reach bucket %s: %w", s.bucket, err)
	}

	return nil
}

func (s *S3Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func isNotFound(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var noSuchBucket *s3types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}

	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
