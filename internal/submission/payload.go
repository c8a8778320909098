package submission

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const nfcContentType = "image/jpeg"

var errEmptyPayload = errors.New("nfc payload is empty")

// stripDataURI removes a "data:<mime>;base64," prefix.
func stripDataURI(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return s
	}

	_, rest, found := strings.Cut(s, ";base64,")
	if !found {
		return s
	}
	return rest
}

func decodeNFCPayload(payload string) ([]byte, error) {
	payload = stripDataURI(payload)
	if payload == "" {
		return nil, errEmptyPayload
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode nfc payload: %w", err)
	}
	if len(data) == 0 {
		return nil, errEmptyPayload
	}

	return data, nil
}
