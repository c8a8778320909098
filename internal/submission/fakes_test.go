package submission_test

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"kycflow/pkg/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// memoryObjects is an in-memory object store. Presigned URLs are plain
// strings; callers simulate a client upload with put.
type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	issued  []string
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) IssueUploadURL(ctx context.Context, name string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued = append(m.issued, name)
	return "https://objects.test/put/" + name, nil
}

func (m *memoryObjects) IssueViewURL(ctx context.Context, name string) (string, error) {
	return "https://objects.test/get/" + name, nil
}

func (m *memoryObjects) Upload(ctx context.Context, name string, body []byte, contentType string) error {
	m.put(name, body)
	return nil
}

func (m *memoryObjects) Exists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[name]
	return ok, nil
}

func (m *memoryObjects) put(name string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = body
}

// putFromURL stores an object at the name a presigned upload URL points to.
func (m *memoryObjects) putFromURL(url string, body []byte) {
	m.put(strings.TrimPrefix(url, "https://objects.test/put/"), body)
}

func (m *memoryObjects) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects)+len(m.issued))
	for name := range m.objects {
		out = append(out, name)
	}
	out = append(out, m.issued...)
	sort.Strings(out)
	return out
}

// memorySubmissions keeps rows in insertion order so "latest" means the
// highest sequence, as with the serial id in Postgres.
type memorySubmissions struct {
	mu   sync.Mutex
	rows []*types.Submission
}

func (m *memorySubmissions) CreateSubmission(ctx context.Context, submission *types.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := *submission
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	m.rows = append(m.rows, &row)
	return nil
}

func (m *memorySubmissions) Submission(ctx context.Context, submissionID uuid.UUID) (*types.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == submissionID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, types.ErrSubmissionNotFound
}

func (m *memorySubmissions) UpdateSubmissionStatus(ctx context.Context, submissionID uuid.UUID, from, to types.SubmissionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID != submissionID {
			continue
		}
		if row.Status != from {
			return types.ErrStatusConflict
		}
		row.Status = to
		row.UpdatedAt = time.Now()
		return nil
	}
	return types.ErrSubmissionNotFound
}

func (m *memorySubmissions) LatestSubmissionByCorrelatorAndStatus(ctx context.Context, correlator string, status types.SubmissionStatus) (*types.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Correlator == correlator && m.rows[i].Status == status {
			cp := *m.rows[i]
			return &cp, nil
		}
	}
	return nil, types.ErrSubmissionNotFound
}

func (m *memorySubmissions) LatestSubmissionStatusByCorrelatorAndType(ctx context.Context, submissionType types.SubmissionType, correlator string) (types.SubmissionStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].Correlator == correlator && m.rows[i].Type == submissionType {
			return m.rows[i].Status, nil
		}
	}
	return "", types.ErrSubmissionNotFound
}

type compareCall struct {
	image1URL, image2URL, correlationID string
}

// scriptedComparator returns a fixed verdict and records every call.
type scriptedComparator struct {
	mu      sync.Mutex
	calls   []compareCall
	count   atomic.Int32
	result  types.FaceMatchResult
	err     error
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (c *scriptedComparator) Compare(ctx context.Context, image1URL, image2URL, correlationID string) (*types.FaceMatchResult, error) {
	c.count.Add(1)
	c.mu.Lock()
	c.calls = append(c.calls, compareCall{image1URL, image2URL, correlationID})
	c.mu.Unlock()

	if c.entered != nil {
		c.once.Do(func() { close(c.entered) })
	}
	if c.release != nil {
		<-c.release
	}

	if c.err != nil {
		return nil, c.err
	}
	result := c.result
	result.SubmissionID = correlationID
	return &result, nil
}

// gatedObjects blocks the first existence check until release is closed and
// then honours the context it was given.
type gatedObjects struct {
	*memoryObjects
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedObjects) Exists(ctx context.Context, name string) (bool, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return g.memoryObjects.Exists(ctx, name)
}

func hasCause(errs types.APIErrors, cause string) bool {
	for _, err := range errs {
		if err.Cause == cause {
			return true
		}
	}
	return false
}
