package facematch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kycflow/internal/metrics"
	"kycflow/pkg/types"
)

// ErrComparisonFailed wraps every failure of a comparator call. No partial
// result is returned alongside it.
var ErrComparisonFailed = errors.New("face match comparison failed")

const submissionIDHeader = "x-submission-id"

type compareRequest struct {
	Image1URL string  `json:"image1_url"`
	Image2URL string  `json:"image2_url"`
	Threshold float64 `json:"threshold"`
}

// Client calls the external biometric comparison service.
type Client struct {
	baseURL    string
	threshold  float64
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(baseURL string, threshold float64, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		threshold:  threshold,
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

func (c *Client) Threshold() float64 {
	return c.threshold
}

// Compare asks the comparator whether the faces in the two images match.
// correlationID is forwarded so the upstream can tie the call to a
// submission.
func (c *Client) Compare(ctx context.Context, image1URL, image2URL, correlationID string) (*types.FaceMatchResult, error) {
	started := time.Now()

	result, err := c.compare(ctx, image1URL, image2URL, correlationID)
	if err != nil {
		c.metrics.ObserveFaceMatch("error", time.Since(started))
		return nil, fmt.Errorf("%w: %w", ErrComparisonFailed, err)
	}

	outcome := "no_match"
	if result.IsMatch {
		outcome = "match"
	}
	c.metrics.ObserveFaceMatch(outcome, time.Since(started))

	return result, nil
}

func (c *Client) compare(ctx context.Context, image1URL, image2URL, correlationID string) (*types.FaceMatchResult, error) {
	payload, err := json.Marshal(compareRequest{
		Image1URL: image1URL,
		Image2URL: image2URL,
		Threshold: c.threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/compare-faces", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(submissionIDHeader, correlationID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("face match api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result = new(types.FaceMatchResult)
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return result, nil
}
