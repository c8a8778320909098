package types

// UploadCredential is a caller-facing presigned upload URL for one role.
type UploadCredential struct {
	DocumentURL       string `json:"documentUrl"`
	DocumentReference string `json:"documentReference"`
	ExpiryInSeconds   string `json:"expiryInSeconds"`
}

type PresignedURLsResponse struct {
	SubmissionID string                            `json:"submissionId"`
	Documents    map[DocumentRole]UploadCredential `json:"documents"`
}

type ProcessSubmissionResponse struct {
	SubmissionStatus string `json:"submissionStatus"`
}

type SubmissionStatusResponse struct {
	SubmissionStatus string `json:"submissionStatus"`
}

// FaceMatchResult is the comparator verdict as returned by the upstream
// service.
type FaceMatchResult struct {
	SubmissionID    string  `json:"submission_id"`
	SimilarityScore float64 `json:"similarity_score"`
	IsMatch         bool    `json:"is_match"`
	Threshold       float64 `json:"threshold"`
}
