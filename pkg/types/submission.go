package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrStatusConflict     = errors.New("submission status changed concurrently")
)

// MaxCorrelatorLength bounds the stored correlator. Lookups truncate the
// same way so long identifiers still match.
const MaxCorrelatorLength = 500

type SubmissionType string

const (
	SubmissionTypeKYC      SubmissionType = "KYC"
	SubmissionTypeOnDemand SubmissionType = "ON_DEMAND"
)

func ParseSubmissionType(s string) (SubmissionType, error) {
	switch t := SubmissionType(s); t {
	case SubmissionTypeKYC, SubmissionTypeOnDemand:
		return t, nil
	}
	return "", fmt.Errorf("unknown submission type %q", s)
}

func (t SubmissionType) String() string {
	return string(t)
}

// UploadRoles are the document roles a caller uploads through presigned
// URLs. NFC is ingested inline and never appears here.
func (t SubmissionType) UploadRoles() []DocumentRole {
	switch t {
	case SubmissionTypeKYC:
		return []DocumentRole{DocumentRoleKTP, DocumentRoleSelfie}
	case SubmissionTypeOnDemand:
		return []DocumentRole{DocumentRoleSelfie}
	}
	return nil
}

type SubmissionStatus string

const (
	SubmissionStatusInitiated SubmissionStatus = "INITIATED"
	SubmissionStatusApproved  SubmissionStatus = "APPROVED"
	SubmissionStatusRejected  SubmissionStatus = "REJECTED"
)

func ParseSubmissionStatus(s string) (SubmissionStatus, error) {
	switch st := SubmissionStatus(s); st {
	case SubmissionStatusInitiated, SubmissionStatusApproved, SubmissionStatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown submission status %q", s)
}

func (s SubmissionStatus) String() string {
	return string(s)
}

func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// StatusFromMatch maps a comparator verdict onto a terminal status.
func StatusFromMatch(isMatch bool) SubmissionStatus {
	if isMatch {
		return SubmissionStatusApproved
	}
	return SubmissionStatusRejected
}

// Verification verdicts returned by the status inquiry.
const (
	VerdictKYC    = "KYC"
	VerdictNotKYC = "NOT_KYC"
)

type DocumentRole string

const (
	DocumentRoleKTP    DocumentRole = "KTP"
	DocumentRoleSelfie DocumentRole = "SELFIE"
	DocumentRoleNFC    DocumentRole = "NFC"
)

// Document links a logical role to the object holding its bytes.
type Document struct {
	DocumentName      string `json:"documentName"`
	DocumentReference string `json:"documentReference"`
}

type Documents map[DocumentRole]Document

// ParseDocuments decodes a stored document map. An empty or null value
// decodes to an empty map; anything other than a JSON object is an error.
func ParseDocuments(raw []byte) (Documents, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Documents{}, nil
	}

	var docs = make(Documents)
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode submission documents: %w", err)
	}

	return docs, nil
}

// Submission is one identity-verification attempt.
type Submission struct {
	ID             uuid.UUID        `db:"submission_id"`
	Type           SubmissionType   `db:"submission_type"`
	SessionID      string           `db:"session_id"`
	ActorID        string           `db:"user_id"`
	Status         SubmissionStatus `db:"status"`
	Documents      json.RawMessage  `db:"submission_data"`
	RequestPayload json.RawMessage  `db:"request_data"`
	Correlator     string           `db:"nfc_identifier"`
	CreatedAt      time.Time        `db:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at"`
}

// ObjectName derives a fresh stored-object name and its caller-facing
// reference for role.
func ObjectName(role DocumentRole) Document {
	ref := uuid.New()
	return Document{
		DocumentName:      ref.String() + "_" + string(role),
		DocumentReference: ref.String(),
	}
}

// TruncateCorrelator replaces invalid UTF-8 with U+FFFD and caps the result
// at MaxCorrelatorLength runes.
func TruncateCorrelator(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	if utf8.RuneCountInString(s) <= MaxCorrelatorLength {
		return s
	}

	runes := []rune(s)
	return string(runes[:MaxCorrelatorLength])
}

// Actor carries the opaque provenance of a request.
type Actor struct {
	SessionID string
	ActorID   string
}
