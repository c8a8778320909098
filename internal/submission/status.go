package submission

import (
	"context"
	"errors"
	"time"

	"kycflow/pkg/types"
)

// GetStatus reports whether the latest submission of submissionType for
// correlator is verified. Only a stored APPROVED status counts as verified;
// no submission at all is SUBMISSION_NOT_FOUND rather than NOT_KYC.
func (s *Service) GetStatus(ctx context.Context, submissionType types.SubmissionType, correlator string) (resp *types.SubmissionStatusResponse, err error) {
	started := time.Now()
	defer func() { s.observe("submission_status", submissionType, started, err) }()

	if _, err := types.ParseSubmissionType(submissionType.String()); err != nil {
		return nil, s.invalid(types.CauseInvalidSubmissionType, err)
	}

	correlator = types.TruncateCorrelator(stripDataURI(correlator))

	status, err := s.submissions.LatestSubmissionStatusByCorrelatorAndType(ctx, submissionType, correlator)
	if err != nil {
		if errors.Is(err, types.ErrSubmissionNotFound) {
			return nil, s.notFound(types.CauseSubmissionNotFound)
		}
		s.logger.WithError(err).WithField("submission_type", submissionType.String()).Error("failed to load submission status")
		return nil, s.persistenceError()
	}

	verdict := types.VerdictNotKYC
	if status == types.SubmissionStatusApproved {
		verdict = types.VerdictKYC
	}

	return &types.SubmissionStatusResponse{SubmissionStatus: verdict}, nil
}

// CompareFaces forwards a comparison straight to the comparator without
// touching any submission.
func (s *Service) CompareFaces(ctx context.Context, image1URL, image2URL, submissionID string) (resp *types.FaceMatchResult, err error) {
	started := time.Now()
	defer func() { s.observe("face_match", "", started, err) }()

	result, err := s.comparator.Compare(ctx, image1URL, image2URL, submissionID)
	if err != nil {
		s.logger.WithError(err).WithField("submission_id", submissionID).Error("face match failed")
		return nil, s.fail(types.CodeComparisonFailed, types.CauseFaceMatchFailed)
	}

	return result, nil
}
