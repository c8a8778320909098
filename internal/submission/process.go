package submission

import (
	"context"
	"errors"
	"time"

	"kycflow/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ProcessSubmission compares the submission's images and moves it to
// APPROVED or REJECTED.
//
// A submission is processed at most once. Concurrent calls for the same id
// within this process share one comparison; across processes the status
// write is conditional on the row still being INITIATED, and the loser gets
// SUBMISSION_ALREADY_PROCESSED.
func (s *Service) ProcessSubmission(ctx context.Context, submissionID string) (*types.ProcessSubmissionResponse, error) {
	// Joined callers share this run, so it must not inherit the first
	// caller's cancellation. Each collaborator applies its own timeout.
	shared := context.WithoutCancel(ctx)

	v, err, _ := s.inflight.Do(submissionID, func() (any, error) {
		return s.processSubmission(shared, submissionID)
	})
	if err != nil {
		return nil, err
	}

	return v.(*types.ProcessSubmissionResponse), nil
}

func (s *Service) processSubmission(ctx context.Context, submissionID string) (resp *types.ProcessSubmissionResponse, err error) {
	started := time.Now()
	var submissionType types.SubmissionType
	defer func() { s.observe("process_submission", submissionType, started, err) }()

	entry := s.logger.WithField("submission_id", submissionID)

	id, err := uuid.Parse(submissionID)
	if err != nil {
		return nil, s.notFound(types.CauseSubmissionNotFound)
	}

	submission, err := s.submissions.Submission(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrSubmissionNotFound) {
			return nil, s.notFound(types.CauseSubmissionNotFound)
		}
		entry.WithError(err).Error("failed to load submission")
		return nil, s.persistenceError()
	}

	submissionType = submission.Type
	entry = entry.WithField("submission_type", submissionType.String())

	if submission.Status.IsTerminal() {
		return nil, s.fail(types.CodeConflict, types.CauseSubmissionAlreadyProcessed)
	}

	documents, err := types.ParseDocuments(submission.Documents)
	if err != nil {
		entry.WithError(err).Warn("submission documents are malformed")
		return nil, s.invalid(types.CauseInvalidSubmissionData, nil)
	}

	selfieURL, err := s.resolveDocument(ctx, entry, documents, types.DocumentRoleSelfie, types.CauseSelfieDoesNotExist)
	if err != nil {
		return nil, err
	}

	var referenceURL string

	switch submission.Type {
	case types.SubmissionTypeKYC:
		referenceURL, err = s.resolveDocument(ctx, entry, documents, types.DocumentRoleNFC, types.CauseNFCDoesNotExist)
		if err != nil {
			return nil, err
		}

	case types.SubmissionTypeOnDemand:
		referenceURL, err = s.resolveApprovedSelfie(ctx, entry, submission.Correlator)
		if err != nil {
			return nil, err
		}

	default:
		return nil, s.invalid(types.CauseInvalidSubmissionType, nil)
	}

	result, err := s.comparator.Compare(ctx, referenceURL, selfieURL, submissionID)
	if err != nil {
		entry.WithError(err).Error("face match failed")
		return nil, s.fail(types.CodeComparisonFailed, types.CauseFaceMatchFailed)
	}

	status := types.StatusFromMatch(result.IsMatch)
	entry = entry.WithFields(logrus.Fields{
		"similarity_score": result.SimilarityScore,
		"is_match":         result.IsMatch,
		"status":           status.String(),
	})

	err = s.submissions.UpdateSubmissionStatus(ctx, id, types.SubmissionStatusInitiated, status)
	switch {
	case errors.Is(err, types.ErrStatusConflict):
		entry.Warn("submission was processed concurrently")
		return nil, s.fail(types.CodeConflict, types.CauseSubmissionAlreadyProcessed)
	case errors.Is(err, types.ErrSubmissionNotFound):
		return nil, s.notFound(types.CauseSubmissionNotFound)
	case err != nil:
		entry.WithError(err).Error("failed to record submission verdict")
		return nil, s.persistenceError()
	}

	entry.Info("submission processed")

	return &types.ProcessSubmissionResponse{SubmissionStatus: status.String()}, nil
}

// resolveDocument returns a view URL for role after checking that the
// backing object exists. A missing entry or object yields missingCause.
func (s *Service) resolveDocument(ctx context.Context, entry *logrus.Entry, documents types.Documents, role types.DocumentRole, missingCause string) (string, error) {
	doc, ok := documents[role]
	if !ok || doc.DocumentName == "" {
		return "", s.notFound(missingCause)
	}

	entry = entry.WithFields(logrus.Fields{
		"role":          string(role),
		"document_name": doc.DocumentName,
	})

	exists, err := s.objects.Exists(ctx, doc.DocumentName)
	if err != nil {
		entry.WithError(err).Error("failed to check document object")
		return "", s.storageError()
	}
	if !exists {
		return "", s.notFound(missingCause)
	}

	url, err := s.objects.IssueViewURL(ctx, doc.DocumentName)
	if err != nil {
		entry.WithError(err).Error("failed to issue view url")
		return "", s.storageError()
	}

	return url, nil
}

// resolveApprovedSelfie finds the latest APPROVED submission for the
// correlator and returns a view URL for its selfie.
func (s *Service) resolveApprovedSelfie(ctx context.Context, entry *logrus.Entry, correlator string) (string, error) {
	approved, err := s.submissions.LatestSubmissionByCorrelatorAndStatus(ctx, correlator, types.SubmissionStatusApproved)
	if err != nil {
		if errors.Is(err, types.ErrSubmissionNotFound) {
			return "", s.notFound(types.CauseApprovedSubmissionNotFound)
		}
		entry.WithError(err).Error("failed to load approved submission")
		return "", s.persistenceError()
	}

	documents, err := types.ParseDocuments(approved.Documents)
	if err != nil {
		entry.WithError(err).WithField("approved_submission_id", approved.ID.String()).Warn("approved submission documents are malformed")
		return "", s.invalid(types.CauseInvalidSubmissionData, nil)
	}

	entry = entry.WithField("approved_submission_id", approved.ID.String())

	return s.resolveDocument(ctx, entry, documents, types.DocumentRoleSelfie, types.CauseSelfieDoesNotExist)
}
