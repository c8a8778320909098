package types

// PresignedURLsRequest is the body of POST /v1/submissions/urls.
// NFCImage is optional; when absent the NFC identifier carries the chip
// image itself.
type PresignedURLsRequest struct {
	SubmissionType string `json:"submissionType"`
	NFCIdentifier  string `json:"nfcIdentifier"`
	NFCImage       string `json:"nfcImage,omitempty"`
}

type ProcessSubmissionRequest struct {
	SubmissionID string `json:"submissionId"`
}

type SubmissionStatusQuery struct {
	SubmissionType string `form:"submissionType"`
	NFCIdentifier  string `form:"nfcIdentifier"`
}

type FaceMatchRequest struct {
	Image1URL    string `json:"image1Url"`
	Image2URL    string `json:"image2Url"`
	SubmissionID string `json:"submissionId"`
}

// IssueRequest is the orchestrator input for credential issuance.
type IssueRequest struct {
	Type       SubmissionType
	Correlator string
	NFCPayload string
}
