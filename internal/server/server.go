package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"kycflow/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// maxBodyBytes bounds request bodies; the inline NFC image is the largest
// field we accept.
const maxBodyBytes = 8 << 20

// Submissions is the orchestrator surface the HTTP layer drives.
type Submissions interface {
	IssueUploadCredentials(ctx context.Context, actor types.Actor, req types.IssueRequest) (*types.PresignedURLsResponse, error)
	ProcessSubmission(ctx context.Context, submissionID string) (*types.ProcessSubmissionResponse, error)
	GetStatus(ctx context.Context, submissionType types.SubmissionType, correlator string) (*types.SubmissionStatusResponse, error)
	CompareFaces(ctx context.Context, image1URL, image2URL, submissionID string) (*types.FaceMatchResult, error)
}

type Service struct {
	logger      *logrus.Logger
	config      *types.Config
	submissions Submissions

	cookie    *securecookie.SecureCookie
	jwksCache *jwk.Cache

	metrics http.Handler
	server  *http.Server
}

// New builds the HTTP service. jwksCache and metricsHandler are optional;
// without a cache bearer tokens are ignored, without a handler /metrics is
// not mounted.
func New(
	config *types.Config,
	logger *logrus.Logger,
	submissions Submissions,
	jwksCache *jwk.Cache,
	metricsHandler http.Handler,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger:      logger,
		config:      config,
		submissions: submissions,
		jwksCache:   jwksCache,
		metrics:     metricsHandler,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	if config.CookieHashKey != "" {
		cookie, err := newSecureCookie(config.CookieHashKey, config.CookieBlockKey)
		if err != nil {
			return nil, err
		}
		s.cookie = cookie
	}

	s.buildRouter(mux)
	s.server.Handler = s.StripTrailingSlash(mux)

	return s, nil
}

func newSecureCookie(hashKeyB64, blockKeyB64 string) (*securecookie.SecureCookie, error) {
	hashKey, err := base64.StdEncoding.DecodeString(hashKeyB64)
	if err != nil {
		return nil, fmt.Errorf("decode cookie hash key: %w", err)
	}

	var blockKey []byte
	if blockKeyB64 != "" {
		blockKey, err = base64.StdEncoding.DecodeString(blockKeyB64)
		if err != nil {
			return nil, fmt.Errorf("decode cookie block key: %w", err)
		}
	}

	return securecookie.New(hashKey, blockKey), nil
}

func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics, http.MethodGet)
	}

	r.Group(func(r *flow.Mux) {
		r.Use(s.ResolveActor)

		r.HandleFunc("/v1/submissions/urls", s.handleIssueUploadURLs, http.MethodPost)
		r.HandleFunc("/v1/submissions/urls", s.handleProcessSubmission, http.MethodPut)
		r.HandleFunc("/v1/submissions/status", s.handleSubmissionStatus, http.MethodGet)
		r.HandleFunc("/v1/submissions/face-match", s.handleFaceMatch, http.MethodPost)
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondData(w, http.StatusOK, map[string]string{"status": "ok"})
}
