// Package submission orchestrates the identity-verification lifecycle:
// issuing upload credentials, comparing the submitted images and recording
// the verdict.
//
// Object storage and the submission table are not updated atomically. An
// object may be uploaded for a submission whose row is never written; such
// objects are left in place.
package submission

import (
	"context"
	"errors"
	"time"

	"kycflow/internal/metrics"
	"kycflow/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ObjectStore,SubmissionStore,Comparator

// UploadURLExpiry is the validity window of every caller-facing upload URL.
const UploadURLExpiry = 600 * time.Second

// ObjectStore issues scoped URLs for single stored objects and ingests
// inline documents.
type ObjectStore interface {
	IssueUploadURL(ctx context.Context, name string, ttl time.Duration) (string, error)
	IssueViewURL(ctx context.Context, name string) (string, error)
	Upload(ctx context.Context, name string, body []byte, contentType string) error
	Exists(ctx context.Context, name string) (bool, error)
}

// SubmissionStore persists submission rows. Lookups return
// types.ErrSubmissionNotFound when nothing matches.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission *types.Submission) error
	Submission(ctx context.Context, submissionID uuid.UUID) (*types.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, submissionID uuid.UUID, from, to types.SubmissionStatus) error
	LatestSubmissionByCorrelatorAndStatus(ctx context.Context, correlator string, status types.SubmissionStatus) (*types.Submission, error)
	LatestSubmissionStatusByCorrelatorAndType(ctx context.Context, submissionType types.SubmissionType, correlator string) (types.SubmissionStatus, error)
}

// Comparator returns a biometric verdict for two image URLs.
type Comparator interface {
	Compare(ctx context.Context, image1URL, image2URL, correlationID string) (*types.FaceMatchResult, error)
}

type Service struct {
	logger      *logrus.Logger
	entity      string
	objects     ObjectStore
	submissions SubmissionStore
	comparator  Comparator
	metrics     *metrics.Metrics

	// collapses concurrent processing of one submission id
	inflight singleflight.Group
}

func NewService(
	logger *logrus.Logger,
	entity string,
	objects ObjectStore,
	submissions SubmissionStore,
	comparator Comparator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		logger:      logger,
		entity:      entity,
		objects:     objects,
		submissions: submissions,
		comparator:  comparator,
		metrics:     m,
	}
}

func (s *Service) observe(endpoint string, submissionType types.SubmissionType, started time.Time, err error) {
	outcome := "success"
	var apiErrs types.APIErrors
	switch {
	case errors.As(err, &apiErrs) && len(apiErrs) > 0:
		outcome = apiErrs[0].Cause
	case err != nil:
		outcome = types.CauseSystemError
	}

	s.metrics.ObserveOperation(endpoint, submissionType.String(), outcome, time.Since(started))
}
