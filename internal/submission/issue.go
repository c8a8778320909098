package submission

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"kycflow/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// IssueUploadCredentials allocates a submission, issues one upload URL per
// caller-uploaded role, ingests the inline NFC image and records the
// INITIATED row.
//
// Nothing is rolled back on failure. URLs already issued are inert; an NFC
// object uploaded before a failed insert stays in the bucket.
func (s *Service) IssueUploadCredentials(ctx context.Context, actor types.Actor, req types.IssueRequest) (resp *types.PresignedURLsResponse, err error) {
	started := time.Now()
	defer func() { s.observe("presigned_urls", req.Type, started, err) }()

	if _, err := types.ParseSubmissionType(req.Type.String()); err != nil {
		return nil, s.invalid(types.CauseInvalidSubmissionType, err)
	}

	correlator := stripDataURI(req.Correlator)
	if correlator == "" {
		return nil, s.invalid(types.CauseInvalidPayload, errEmptyPayload)
	}

	payload := req.NFCPayload
	if payload == "" {
		payload = correlator
	}

	nfcImage, err := decodeNFCPayload(payload)
	if err != nil {
		return nil, s.invalid(types.CauseInvalidPayload, err)
	}

	submissionID := uuid.New()
	entry := s.logger.WithFields(logrus.Fields{
		"submission_id":   submissionID.String(),
		"submission_type": req.Type.String(),
	})

	roles := req.Type.UploadRoles()
	docs := make([]types.Document, len(roles))
	urls := make([]string, len(roles))

	g, gctx := errgroup.WithContext(ctx)
	for i, role := range roles {
		docs[i] = types.ObjectName(role)
		g.Go(func() error {
			url, err := s.objects.IssueUploadURL(gctx, docs[i].DocumentName, UploadURLExpiry)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		entry.WithError(err).Error("failed to issue upload url")
		return nil, s.storageError()
	}

	documents := make(types.Documents, len(roles)+1)
	resp = &types.PresignedURLsResponse{
		SubmissionID: submissionID.String(),
		Documents:    make(map[types.DocumentRole]types.UploadCredential, len(roles)),
	}

	expiry := formatSeconds(UploadURLExpiry)
	for i, role := range roles {
		documents[role] = docs[i]
		resp.Documents[role] = types.UploadCredential{
			DocumentURL:       urls[i],
			DocumentReference: docs[i].DocumentReference,
			ExpiryInSeconds:   expiry,
		}
	}

	nfc := types.ObjectName(types.DocumentRoleNFC)
	if err := s.objects.Upload(ctx, nfc.DocumentName, nfcImage, nfcContentType); err != nil {
		entry.WithError(err).Error("failed to upload nfc document")
		return nil, s.storageError()
	}
	documents[types.DocumentRoleNFC] = nfc

	documentData, err := json.Marshal(documents)
	if err != nil {
		entry.WithError(err).Error("failed to encode submission documents")
		return nil, s.fail(types.CodeSystemError, types.CauseSystemError)
	}

	submission := &types.Submission{
		ID:             submissionID,
		Type:           req.Type,
		SessionID:      actor.SessionID,
		ActorID:        actor.ActorID,
		Status:         types.SubmissionStatusInitiated,
		Documents:      documentData,
		RequestPayload: json.RawMessage(`{}`),
		Correlator:     types.TruncateCorrelator(correlator),
	}

	if err := s.submissions.CreateSubmission(ctx, submission); err != nil {
		entry.WithError(err).WithField("orphaned_object", nfc.DocumentName).Error("failed to persist submission")
		return nil, s.persistenceError()
	}

	entry.Info("submission initiated")

	return resp, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}
