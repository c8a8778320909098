package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	QueryTimeoutSec uint   `envconfig:"QUERY_TIMEOUT_SEC" default:"5"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"30"`

	// Object storage (S3 or MinIO)
	S3BucketName      string `envconfig:"S3_BUCKET_NAME"`
	S3Endpoint        string `envconfig:"S3_ENDPOINT"` // empty uses the AWS default resolver
	S3Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"true"`
	S3TimeoutSec      uint   `envconfig:"S3_TIMEOUT_SEC" default:"10"`

	// Biometric comparator
	FaceMatchHost          string  `envconfig:"FACE_MATCH_HOST"`
	FaceMatchThreshold     float64 `envconfig:"FACE_MATCH_THRESHOLD" default:"0.8"`
	FaceMatchTimeoutMillis uint    `envconfig:"FACE_MATCH_TIMEOUT_MILLIS" default:"10000"`

	// Caller identity. Sessions are issued elsewhere; this service only reads them.
	CookieName     string `envconfig:"SESSION_COOKIE_NAME" default:"session_id"`
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // base64, 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // base64, 16, 24, or 32 bytes
	AuthJWKSURL    string `envconfig:"AUTH_JWKS_URL"`

	ErrorEntity string `envconfig:"ERROR_ENTITY" default:"KYCFLOW_BE"`
}
