package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"kycflow/pkg/types"
)

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (s *Service) handleIssueUploadURLs(w http.ResponseWriter, r *http.Request) {
	var req types.PresignedURLsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, s.invalidBody(err.Error()))
		return
	}

	resp, err := s.submissions.IssueUploadCredentials(r.Context(), actorFromContext(r.Context()), types.IssueRequest{
		Type:       types.SubmissionType(req.SubmissionType),
		Correlator: req.NFCIdentifier,
		NFCPayload: req.NFCImage,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, resp)
}

func (s *Service) handleProcessSubmission(w http.ResponseWriter, r *http.Request) {
	var req types.ProcessSubmissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, s.invalidBody(err.Error()))
		return
	}
	if req.SubmissionID == "" {
		s.respondError(w, r, s.invalidBody("submissionId is required"))
		return
	}

	resp, err := s.submissions.ProcessSubmission(r.Context(), req.SubmissionID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, resp)
}

// handleSubmissionStatus answers status inquiries. Only KYC submissions are
// queryable over HTTP.
func (s *Service) handleSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	var query types.SubmissionStatusQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		s.respondError(w, r, s.invalidBody(err.Error()))
		return
	}

	if types.SubmissionType(query.SubmissionType) != types.SubmissionTypeKYC {
		s.respondError(w, r, s.apiError(types.CodeInvalidInput, types.CauseInvalidSubmissionType, "submissionType must be KYC"))
		return
	}

	resp, err := s.submissions.GetStatus(r.Context(), types.SubmissionTypeKYC, query.NFCIdentifier)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, resp)
}

func (s *Service) handleFaceMatch(w http.ResponseWriter, r *http.Request) {
	var req types.FaceMatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, s.invalidBody(err.Error()))
		return
	}
	if req.Image1URL == "" || req.Image2URL == "" {
		s.respondError(w, r, s.invalidBody("image1Url and image2Url are required"))
		return
	}

	resp, err := s.submissions.CompareFaces(r.Context(), req.Image1URL, req.Image2URL, req.SubmissionID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondData(w, http.StatusOK, resp)
}
